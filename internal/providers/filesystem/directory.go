package filesystem

import (
	"fmt"
	"os"

	"github.com/GriffinCanCode/AgentOS/fsops/internal/shared/types"
)

// Entry tags used by List
const (
	tagDir     = "[DIR]"
	tagFile    = "[FILE]"
	tagUnknown = "[UNKNOWN]"
)

// DirectoryOps handles directory operations
type DirectoryOps struct {
	*FilesystemOps
}

// GetTools returns directory operation tool definitions
func (d *DirectoryOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "filesystem.list",
			Name:        "List Directory",
			Description: "List directory entries tagged [DIR], [FILE] or [UNKNOWN]",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory path", Required: true},
			},
			Returns: "array",
		},
		{
			ID:          "filesystem.create_directory",
			Name:        "Create Directory",
			Description: "Create a directory and all missing ancestors",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory path", Required: true},
			},
			Returns: "string",
		},
		{
			ID:          "filesystem.delete_directory",
			Name:        "Delete Directory",
			Description: "Delete an empty directory",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory path", Required: true},
			},
			Returns: "string",
		},
		{
			ID:          "filesystem.tree",
			Name:        "Directory Tree",
			Description: "Render a sorted, depth-bounded tree of a directory",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory path", Required: true},
				{Name: "max_depth", Type: "number", Description: "Deepest level to descend into (0 = immediate children only)", Required: false},
			},
			Returns: "string",
		},
	}
}

// List returns one "<TAG> <name>\n" line per entry, in directory order.
// Failures after the directory was opened are reported inline so the
// entries already read are still returned.
func (d *DirectoryOps) List(path string) ([]string, error) {
	resolved, err := d.resolvePath("list", path)
	if err != nil {
		return nil, err
	}

	dir, err := os.Open(resolved)
	if err != nil {
		return nil, newError(KindIO, "list", resolved, err,
			"Failed to read directory '%s': %s", resolved, cause(err))
	}
	defer dir.Close()

	entries, readErr := dir.ReadDir(-1)
	if readErr != nil && len(entries) == 0 {
		return nil, newError(KindIO, "list", resolved, readErr,
			"Failed to read directory '%s': %s", resolved, cause(readErr))
	}

	lines := make([]string, 0, len(entries)+1)
	for _, entry := range entries {
		lines = append(lines, fmt.Sprintf("%s %s\n", listTag(entry), entry.Name()))
	}
	if readErr != nil {
		lines = append(lines, fmt.Sprintf("Error reading entry: %s\n", cause(readErr)))
	}

	return lines, nil
}

// CreateDirectory creates path and every missing ancestor
func (d *DirectoryOps) CreateDirectory(path string) (string, error) {
	resolved, err := d.resolvePath("create_directory", path)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(resolved, 0o755); err != nil {
		return "", newError(KindIO, "create_directory", resolved, err,
			"Failed to create directory '%s': %s", resolved, cause(err))
	}

	return fmt.Sprintf("Successfully created directory '%s'", resolved), nil
}

// DeleteDirectory removes an empty directory
func (d *DirectoryOps) DeleteDirectory(path string) (string, error) {
	resolved, err := d.resolvePath("delete_directory", path)
	if err != nil {
		return "", err
	}

	if !exists(resolved) {
		return "", newError(KindNotFound, "delete_directory", resolved, os.ErrNotExist,
			"Directory '%s' does not exist", resolved)
	}
	if !isDir(resolved) {
		return "", newError(KindWrongType, "delete_directory", resolved, nil,
			"'%s' is not a directory, use delete-file instead", resolved)
	}

	if err := os.Remove(resolved); err != nil {
		msg := fmt.Sprintf("Failed to delete directory '%s': %s", resolved, cause(err))
		if isNotEmpty(err) {
			msg += " Remove all contents first."
		}
		return "", &Error{Kind: KindIO, Op: "delete_directory", Path: resolved, Message: msg, Err: err}
	}

	return fmt.Sprintf("Successfully deleted directory '%s'", resolved), nil
}

func listTag(entry os.DirEntry) string {
	if entry.IsDir() {
		return tagDir
	}
	if _, err := entry.Info(); err != nil {
		return tagUnknown
	}
	return tagFile
}
