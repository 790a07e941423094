package filesystem

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/GriffinCanCode/AgentOS/fsops/internal/shared/types"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
)

// SearchOps handles search operations
type SearchOps struct {
	*FilesystemOps
}

// GetTools returns search operation tool definitions
func (s *SearchOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "filesystem.search",
			Name:        "Search Files",
			Description: "Recursively find entries whose name contains a pattern (case-insensitive)",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Root directory", Required: true},
				{Name: "pattern", Type: "string", Description: "Substring to look for in names", Required: true},
			},
			Returns: "string",
		},
		{
			ID:          "filesystem.glob",
			Name:        "Glob",
			Description: "Match paths below a root with ** aware glob patterns",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Root directory", Required: true},
				{Name: "pattern", Type: "string", Description: "Glob pattern, e.g. **/*.go", Required: true},
			},
			Returns: "string",
		},
	}
}

// Search returns the newline-joined full paths of every entry below path
// whose name contains pattern, ignoring case.
func (s *SearchOps) Search(ctx context.Context, path, pattern string) (string, error) {
	resolved, err := s.resolvePath("search", path)
	if err != nil {
		return "", err
	}

	matches, err := s.find(ctx, resolved, pattern)
	if err != nil {
		return "", newError(KindIO, "search", resolved, err,
			"Failed to search directory: %s", err.Error())
	}

	return joinMatches(matches, pattern, resolved), nil
}

// find walks root concurrently, following symlinks; result order is not
// stable. fastwalk skips links back into a directory already being walked.
func (s *SearchOps) find(ctx context.Context, root, pattern string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("'%s' is not a directory", root)
	}

	needle := strings.ToLower(pattern)
	var (
		mu      sync.Mutex
		matches = []string{}
	)
	conf := fastwalk.Config{Follow: true}

	err = fastwalk.Walk(&conf, root, func(p string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			return err
		}
		if p == root {
			return nil
		}

		if strings.Contains(strings.ToLower(d.Name()), needle) {
			mu.Lock()
			matches = append(matches, p)
			mu.Unlock()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return matches, nil
}

// Glob matches pattern relative to dir, supporting ** for any depth. The
// pattern is evaluated inside dir and may not climb out of it.
func (s *SearchOps) Glob(dir, pattern string) (string, error) {
	resolved, err := s.resolvePath("glob", dir)
	if err != nil {
		return "", err
	}

	if !isDir(resolved) {
		return "", newError(KindNotFound, "glob", resolved, os.ErrNotExist,
			"Directory '%s' does not exist", resolved)
	}
	cleaned := path.Clean(pattern)
	if !doublestar.ValidatePattern(cleaned) || escapesRoot(cleaned) {
		return "", newError(KindIO, "glob", resolved, doublestar.ErrBadPattern,
			"Invalid glob pattern '%s'", pattern)
	}

	matches, err := doublestar.Glob(os.DirFS(resolved), cleaned)
	if err != nil {
		return "", newError(KindIO, "glob", resolved, err,
			"Failed to search directory: %s", err.Error())
	}
	for i, m := range matches {
		matches[i] = filepath.Join(resolved, filepath.FromSlash(m))
	}

	return joinMatches(matches, pattern, resolved), nil
}

// escapesRoot reports whether a cleaned slash pattern leaves its root
func escapesRoot(pattern string) bool {
	return path.IsAbs(pattern) || pattern == ".." || strings.HasPrefix(pattern, "../")
}

func joinMatches(matches []string, pattern, root string) string {
	if len(matches) == 0 {
		return fmt.Sprintf("No files matching pattern '%s' found in '%s'", pattern, root)
	}
	return strings.Join(matches, "\n")
}
