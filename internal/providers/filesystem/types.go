package filesystem

import (
	"os"

	"github.com/GriffinCanCode/AgentOS/fsops/internal/shared/paths"
)

// DefaultTreeDepth is used by the tree tool when max_depth is omitted
const DefaultTreeDepth = 3

// FileType is the coarse kind reported by Info
type FileType string

const (
	TypeDirectory FileType = "Directory"
	TypeFile      FileType = "File"
	TypeSymlink   FileType = "Symlink"
	TypeUnknown   FileType = "Unknown"
)

// FilesystemOps provides common filesystem operation helpers
type FilesystemOps struct {
	// Resolve expands caller paths; defaults to paths.Resolve
	Resolve   func(string) (string, error)
	TreeDepth int
}

// NewFilesystemOps creates operation helpers using HOME for ~-expansion
func NewFilesystemOps(treeDepth int) *FilesystemOps {
	if treeDepth < 0 {
		treeDepth = DefaultTreeDepth
	}
	return &FilesystemOps{
		Resolve:   paths.Resolve,
		TreeDepth: treeDepth,
	}
}

// resolvePath runs the path resolver; it must precede every filesystem access
func (ops *FilesystemOps) resolvePath(op, path string) (string, error) {
	resolve := ops.Resolve
	if resolve == nil {
		resolve = paths.Resolve
	}
	resolved, err := resolve(path)
	if err != nil {
		return "", resolutionError(op, path, err)
	}
	return resolved, nil
}

// exists follows symlinks, so a dangling link does not exist
func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
