package filesystem

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/GriffinCanCode/AgentOS/fsops/internal/shared/types"
)

// OperationsOps handles file operations (move, delete)
type OperationsOps struct {
	*FilesystemOps
}

// GetTools returns file operation tool definitions
func (o *OperationsOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "filesystem.move",
			Name:        "Move File",
			Description: "Move or rename a file or directory, creating missing destination parents",
			Parameters: []types.Parameter{
				{Name: "source", Type: "string", Description: "Source path", Required: true},
				{Name: "destination", Type: "string", Description: "Destination path", Required: true},
			},
			Returns: "string",
		},
		{
			ID:          "filesystem.delete_file",
			Name:        "Delete File",
			Description: "Delete a single file (directories are rejected)",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "string",
		},
	}
}

// Move renames source to destination. The destination is replaced if the
// platform allows it.
func (o *OperationsOps) Move(source, destination string) (string, error) {
	src, err := o.resolvePath("move", source)
	if err != nil {
		return "", err
	}
	dst, err := o.resolvePath("move", destination)
	if err != nil {
		return "", err
	}

	if !exists(src) {
		return "", newError(KindNotFound, "move", src, os.ErrNotExist,
			"Source path '%s' does not exist", src)
	}

	if parent := filepath.Dir(dst); parent != "" && !exists(parent) {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return "", newError(KindIO, "move", parent, err,
				"Failed to create destination parent directory '%s': %s", parent, cause(err))
		}
	}

	if err := os.Rename(src, dst); err != nil {
		return "", newError(KindIO, "move", src, err,
			"Failed to move '%s' to '%s': %s", src, dst, cause(err))
	}

	return fmt.Sprintf("Successfully moved '%s' to '%s'", src, dst), nil
}

// DeleteFile removes a single non-directory entry
func (o *OperationsOps) DeleteFile(path string) (string, error) {
	resolved, err := o.resolvePath("delete_file", path)
	if err != nil {
		return "", err
	}

	if !exists(resolved) {
		return "", newError(KindNotFound, "delete_file", resolved, os.ErrNotExist,
			"File '%s' does not exist", resolved)
	}
	if isDir(resolved) {
		return "", newError(KindWrongType, "delete_file", resolved, nil,
			"'%s' is a directory, use delete-directory instead", resolved)
	}

	if err := os.Remove(resolved); err != nil {
		return "", newError(KindIO, "delete_file", resolved, err,
			"Failed to delete file '%s': %s", resolved, cause(err))
	}

	return fmt.Sprintf("Successfully deleted file '%s'", resolved), nil
}
