package filesystem

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/GriffinCanCode/AgentOS/fsops/internal/shared/types"
	"github.com/saintfish/chardet"
)

// ErrInvalidUTF8 is wrapped by read failures on content that is not valid UTF-8
var ErrInvalidUTF8 = errors.New("stream did not contain valid UTF-8")

// BasicOps handles basic file operations
type BasicOps struct {
	*FilesystemOps
}

// GetTools returns basic file operation tool definitions
func (b *BasicOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "filesystem.read",
			Name:        "Read File",
			Description: "Read entire file contents as UTF-8 text",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path (~ expands to home)", Required: true},
			},
			Returns: "string",
		},
		{
			ID:          "filesystem.write",
			Name:        "Write File",
			Description: "Create or overwrite a file, creating missing parent directories",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path (~ expands to home)", Required: true},
				{Name: "content", Type: "string", Description: "Text to write", Required: true},
			},
			Returns: "string",
		},
		{
			ID:          "filesystem.exists",
			Name:        "Check Existence",
			Description: "Check if a file or directory exists",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File or directory path", Required: true},
			},
			Returns: "boolean",
		},
	}
}

// Read returns the whole file as text
func (b *BasicOps) Read(path string) (string, error) {
	resolved, err := b.resolvePath("read", path)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return "", newError(KindIO, "read", resolved, err,
			"Failed to read file '%s': %s", resolved, cause(err))
	}

	if !utf8.Valid(data) {
		decodeErr := fmt.Errorf("%w%s", ErrInvalidUTF8, detectedCharset(data))
		return "", newError(KindIO, "read", resolved, decodeErr,
			"Failed to read file '%s': %s", resolved, decodeErr)
	}

	return string(data), nil
}

// Write overwrites or creates path with content
func (b *BasicOps) Write(path, content string) (string, error) {
	resolved, err := b.resolvePath("write", path)
	if err != nil {
		return "", err
	}

	parent := filepath.Dir(resolved)
	if !exists(parent) {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return "", newError(KindIO, "write", parent, err,
				"Failed to create parent directory '%s': %s", parent, cause(err))
		}
	}

	if err := os.WriteFile(resolved, []byte(content), 0o644); err != nil {
		return "", newError(KindIO, "write", resolved, err,
			"Failed to write to file '%s': %s", resolved, cause(err))
	}

	return fmt.Sprintf("Successfully wrote to file '%s'", resolved), nil
}

// Exists reports whether path exists; only resolution can fail
func (b *BasicOps) Exists(path string) (bool, error) {
	resolved, err := b.resolvePath("exists", path)
	if err != nil {
		return false, err
	}
	return exists(resolved), nil
}

// detectedCharset names the most likely encoding of data for error messages
func detectedCharset(data []byte) string {
	result, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil || result == nil || result.Charset == "" {
		return ""
	}
	return fmt.Sprintf(" (detected %s)", result.Charset)
}
