package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateResponse(t *testing.T) {
	t.Run("valid resume extraction", func(t *testing.T) {
		doc := `{"technical_skills": [{"name": "python", "level": "advanced", "confidence": 0.9}]}`
		assert.NoError(t, ValidateResponse("skill_extraction", ResumeExtraction, doc))
	})

	t.Run("missing required field", func(t *testing.T) {
		doc := `{"soft_skills": ["communication"]}`
		err := ValidateResponse("skill_extraction", ResumeExtraction, doc)
		require.Error(t, err)

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "skill_extraction", validationErr.Operation)
		assert.NotEmpty(t, validationErr.Errors)
	})

	t.Run("confidence out of range", func(t *testing.T) {
		doc := `{"technical_skills": [{"name": "python", "level": "advanced", "confidence": 1.5}]}`
		err := ValidateResponse("skill_extraction", ResumeExtraction, doc)
		assert.Error(t, err)
	})

	t.Run("malformed document", func(t *testing.T) {
		err := ValidateResponse("skill_extraction", ResumeExtraction, "not json at all")
		assert.Error(t, err)
	})

	t.Run("valid normalization", func(t *testing.T) {
		doc := `{"normalized_skills": [{"original": "K8s", "canonical": "kubernetes", "confidence": 0.95, "aliases": ["k8s"], "related_skills": ["docker"]}]}`
		assert.NoError(t, ValidateResponse("skill_normalization", Normalization, doc))
	})

	t.Run("normalization rejects empty canonical", func(t *testing.T) {
		doc := `{"normalized_skills": [{"original": "K8s", "canonical": "", "confidence": 0.95}]}`
		err := ValidateResponse("skill_normalization", Normalization, doc)
		assert.Error(t, err)
	})

	t.Run("valid job extraction", func(t *testing.T) {
		doc := `{"required_skills": [{"name": "go", "level": "senior", "importance": "critical"}]}`
		assert.NoError(t, ValidateResponse("skill_extraction", JobExtraction, doc))
	})

	t.Run("broken schema", func(t *testing.T) {
		err := ValidateResponse("op", `{"type": 42}`, `{}`)
		require.Error(t, err)
	})
}
