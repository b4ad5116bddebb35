package matching

import (
	"strings"

	"github.com/jonathan/skillmatch/internal/types"
)

// baseSkillMappings collapses common compound or suffixed skill names to the
// base skill they evidence.
var baseSkillMappings = map[string]string{
	"aws sagemaker": "aws",
	"aws bedrock":   "aws",
	"aws lambda":    "aws",
	"aws ec2":       "aws",
	"aws s3":        "aws",
	"aws rds":       "aws",
	"node.js":       "nodejs",
	"react.js":      "react",
	"vue.js":        "vue",
	"angular.js":    "angular",
}

// platformPrefixes are vendors whose compound skills collapse to the vendor
// name ("azure functions" evidences "azure").
var platformPrefixes = map[string]bool{
	"aws":       true,
	"azure":     true,
	"google":    true,
	"microsoft": true,
	"oracle":    true,
}

// baseSkillKey extracts the base skill lookup key from a skill name,
// collapsing variants like "AWS SageMaker" to "aws".
func baseSkillKey(name string) string {
	key := types.NormalizeSkillKey(name)

	if base, ok := baseSkillMappings[key]; ok {
		return base
	}

	words := strings.Fields(key)
	if len(words) > 1 && platformPrefixes[words[0]] {
		return words[0]
	}

	return key
}
