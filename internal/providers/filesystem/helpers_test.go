package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/GriffinCanCode/AgentOS/fsops/internal/shared/paths"
	"github.com/stretchr/testify/require"
)

// newTestOps returns ops whose ~ resolves to a fresh temp directory
func newTestOps(t *testing.T) (*FilesystemOps, string) {
	t.Helper()
	home := t.TempDir()
	ops := NewFilesystemOps(DefaultTreeDepth)
	ops.Resolve = func(p string) (string, error) {
		return paths.ResolveWith(p, func(key string) (string, bool) {
			return home, key == paths.HomeEnv
		})
	}
	return ops, home
}

// homelessOps returns ops that fail every ~ expansion
func homelessOps() *FilesystemOps {
	return &FilesystemOps{
		Resolve: func(p string) (string, error) {
			return paths.ResolveWith(p, func(string) (string, bool) { return "", false })
		},
		TreeDepth: DefaultTreeDepth,
	}
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(path, 0o755))
}

func requireKind(t *testing.T, err error, want Kind) {
	t.Helper()
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok, "expected *filesystem.Error, got %T", err)
	require.Equal(t, want, kind)
}
