// internal/common/validation/schema_test.go
package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"type": "object",
	"required": ["userId", "score"],
	"properties": {
		"userId": {"type": "string", "minLength": 1},
		"score": {"type": "number", "minimum": 0, "maximum": 100}
	}
}`

func TestSchema_Validate(t *testing.T) {
	schema := MustCompileSchema(testSchema)

	tests := []struct {
		name        string
		doc         interface{}
		valid       bool
		errorFields []string
	}{
		{"valid document", map[string]interface{}{"userId": "u-1", "score": 42.5}, true, nil},
		{"missing required field", map[string]interface{}{"userId": "u-1"}, false, []string{"(root)"}},
		{"out of range", map[string]interface{}{"userId": "u-1", "score": 101}, false, []string{"score"}},
		{"wrong type", map[string]interface{}{"userId": 7, "score": 1}, false, []string{"userId"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := schema.ValidateDocument(tt.doc)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, result.Valid)
			for _, f := range tt.errorFields {
				assert.True(t, result.HasErrors(f), "expected error on %s, got %v", f, result.GetErrorMessages())
			}
		})
	}
}

func TestSchema_ValidateJSON(t *testing.T) {
	schema := MustCompileSchema(testSchema)

	result, err := schema.ValidateJSON([]byte(`{"userId":"u-1","score":10}`))
	require.NoError(t, err)
	assert.True(t, result.Valid)

	_, err = schema.ValidateJSON([]byte(`{not json`))
	assert.Error(t, err)
}

func TestCompileSchema_Invalid(t *testing.T) {
	_, err := CompileSchema(`{"type": 12}`)
	assert.Error(t, err)
}

func TestContactFormats(t *testing.T) {
	assert.True(t, ValidateEmail("alex@example.com"))
	assert.False(t, ValidateEmail("alex@"))
	assert.True(t, ValidatePhone("+1 (555) 010-2000"))
	assert.False(t, ValidatePhone("12345"))
}
