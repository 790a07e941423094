package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateString(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		required bool
		wantErr  string
	}{
		{"required missing", "", true, "field is required"},
		{"optional empty", "", false, ""},
		{"too short", "a", false, "at least 2"},
		{"too long", strings.Repeat("x", 11), false, "must not exceed 10"},
		{"null byte", "ab\x00c", false, "invalid characters"},
		{"valid", "hello", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateString(tt.value, "field", 2, 10, tt.required)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateToolID(t *testing.T) {
	assert.NoError(t, ValidateToolID("filesystem.create_directory", "tool_id", true))
	assert.NoError(t, ValidateToolID("registry.get", "tool_id", true))
	assert.ErrorContains(t, ValidateToolID("", "tool_id", true), "tool_id is required")
	assert.ErrorContains(t, ValidateToolID("filesystem/read", "tool_id", true), "invalid characters")
	assert.ErrorContains(t, ValidateToolID(strings.Repeat("a", MaxIDLength+1), "tool_id", true), "must not exceed")
}

func TestValidateCategory(t *testing.T) {
	assert.NoError(t, ValidateCategory("", false))
	assert.NoError(t, ValidateCategory("filesystem", false))
	assert.ErrorContains(t, ValidateCategory("File System", false), "lowercase")
	assert.ErrorContains(t, ValidateCategory("", true), "category is required")
}

func TestValidateQuery(t *testing.T) {
	assert.NoError(t, ValidateQuery("", "q", false))
	assert.NoError(t, ValidateQuery("weather rust", "q", false))
	assert.ErrorContains(t, ValidateQuery("", "intent", true), "intent is required")
	assert.ErrorContains(t, ValidateQuery(strings.Repeat("x", MaxQuerySize+1), "q", false), "exceeds maximum")
}

func TestValidateParams(t *testing.T) {
	assert.NoError(t, ValidateParams(nil))
	assert.NoError(t, ValidateParams(map[string]interface{}{"path": "/tmp/a", "content": "hi"}))

	big := map[string]interface{}{"content": strings.Repeat("x", MaxParamsSize)}
	assert.ErrorContains(t, ValidateParams(big), "exceeds maximum")
}
