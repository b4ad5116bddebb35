// Package schemas provides JSON Schema validation for structured LLM responses.
// Every response shape the engine trusts is validated at the boundary; any
// schema violation is a typed error, never a shape assumed at point of use.
package schemas

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Operation string
	Errors    []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s response failed validation:\n", ve.Operation))
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaError represents errors loading or parsing the schema itself
type SchemaError struct {
	Operation string
	Cause     error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("failed to load schema for %s: %v", e.Operation, e.Cause)
}

func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// ValidateResponse validates a raw JSON document against the schema for the
// named operation. Returns *ValidationError when the document does not match,
// *SchemaError when the schema itself cannot be compiled.
func ValidateResponse(operation, schema, document string) error {
	schemaLoader := gojsonschema.NewStringLoader(schema)
	documentLoader := gojsonschema.NewStringLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		// gojsonschema reports malformed documents through err as well;
		// distinguish by trying to compile the schema alone.
		if _, schemaErr := gojsonschema.NewSchema(schemaLoader); schemaErr != nil {
			return &SchemaError{Operation: operation, Cause: schemaErr}
		}
		return &ValidationError{
			Operation: operation,
			Errors:    []FieldError{{Field: "(document)", Message: err.Error()}},
		}
	}

	if !result.Valid() {
		fieldErrors := make([]FieldError, 0, len(result.Errors()))
		for _, resultErr := range result.Errors() {
			fieldErrors = append(fieldErrors, FieldError{
				Field:   resultErr.Field(),
				Message: resultErr.Description(),
			})
		}
		return &ValidationError{Operation: operation, Errors: fieldErrors}
	}

	return nil
}
