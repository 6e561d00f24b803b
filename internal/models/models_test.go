package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSuccessResponse(t *testing.T) {
	resp := NewSuccessResponse(map[string]string{"a": "b"}, "ok")
	assert.True(t, resp.Success)
	assert.Equal(t, "ok", resp.Message)
	assert.False(t, resp.Timestamp.IsZero())
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse("bad_request", "nope", nil)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "bad_request", resp.Error.Code)
}

func TestNewValidationErrorResponse(t *testing.T) {
	resp := NewValidationErrorResponse("text", "text is required")
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "text", resp.Error.Field)
}

func TestValidateStructExtractRequest(t *testing.T) {
	err := ValidateStruct(&ExtractRequest{Text: ""})
	assert.Error(t, err)

	err = ValidateStruct(&ExtractRequest{Text: "410 U.S. 113"})
	assert.NoError(t, err)
}

func TestValidateStructBatchExtractRequest(t *testing.T) {
	err := ValidateStruct(&BatchExtractRequest{Documents: nil})
	assert.Error(t, err)

	err = ValidateStruct(&BatchExtractRequest{
		Documents: []BatchDocument{{ID: "doc-1", Text: "410 U.S. 113"}},
	})
	assert.NoError(t, err)
}

func TestFormatValidationErrors(t *testing.T) {
	err := ValidateStruct(&ExtractRequest{Text: ""})
	require.Error(t, err)

	formatted := FormatValidationErrors(err)
	require.Len(t, formatted, 1)
	assert.Equal(t, "Text", formatted[0].Field)
	assert.Equal(t, "required", formatted[0].Tag)
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "hello", SanitizeInput("hello\x00"))
	assert.Equal(t, "", SanitizeInput("<script>alert(1)</script>"))
	assert.Equal(t, "", SanitizeInput("javascript:alert(1)"))
}

func TestValidateSearchQuery(t *testing.T) {
	_, err := ValidateSearchQuery("")
	assert.Error(t, err)

	q, err := ValidateSearchQuery("410 U.S. 113")
	require.NoError(t, err)
	assert.Equal(t, "410 U.S. 113", q)
}

func TestDefaultFileValidationRules(t *testing.T) {
	rules := DefaultFileValidationRules()
	assert.Contains(t, rules.AllowedExtensions, "txt")
	assert.NotContains(t, rules.AllowedExtensions, "pdf")
}
