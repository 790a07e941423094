package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sortedLines(s string) []string {
	lines := strings.Split(s, "\n")
	sort.Strings(lines)
	return lines
}

// TestSearchOpsSearch tests case-insensitive recursive name matching
func TestSearchOpsSearch(t *testing.T) {
	ops, home := newTestOps(t)
	search := &SearchOps{FilesystemOps: ops}
	mustWrite(t, filepath.Join(home, "Report.TXT"), "x")
	mustWrite(t, filepath.Join(home, "docs", "report-2.md"), "x")
	mustWrite(t, filepath.Join(home, "docs", "other.go"), "x")
	mustMkdir(t, filepath.Join(home, "reports"))

	out, err := search.Search(context.Background(), "~", "REPORT")
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(home, "Report.TXT"),
		filepath.Join(home, "docs", "report-2.md"),
		filepath.Join(home, "reports"),
	}, sortedLines(out))
}

func TestSearchOpsSearchSkipsRoot(t *testing.T) {
	ops, _ := newTestOps(t)
	search := &SearchOps{FilesystemOps: ops}
	root := filepath.Join(t.TempDir(), "match")
	mustWrite(t, filepath.Join(root, "match.txt"), "x")

	out, err := search.Search(context.Background(), root, "match")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "match.txt"), out)
}

func TestSearchOpsSearchNoMatches(t *testing.T) {
	ops, home := newTestOps(t)
	search := &SearchOps{FilesystemOps: ops}
	mustWrite(t, filepath.Join(home, "a.txt"), "x")

	out, err := search.Search(context.Background(), home, "zzz")
	require.NoError(t, err)
	assert.Equal(t, "No files matching pattern 'zzz' found in '"+home+"'", out)
}

func TestSearchOpsSearchFollowsSymlinks(t *testing.T) {
	ops, home := newTestOps(t)
	search := &SearchOps{FilesystemOps: ops}
	mustWrite(t, filepath.Join(home, "real", "foo.txt"), "x")
	require.NoError(t, os.Symlink(filepath.Join(home, "real"), filepath.Join(home, "zlink")))

	out, err := search.Search(context.Background(), home, "foo")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(home, "real", "foo.txt"),
		filepath.Join(home, "zlink", "foo.txt"),
	}, sortedLines(out))
}

func TestSearchOpsSearchSymlinkCycle(t *testing.T) {
	ops, home := newTestOps(t)
	search := &SearchOps{FilesystemOps: ops}
	mustWrite(t, filepath.Join(home, "dir", "target.txt"), "x")
	require.NoError(t, os.Symlink(home, filepath.Join(home, "dir", "loop")))

	out, err := search.Search(context.Background(), home, "target")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "dir", "target.txt"), out)
}

func TestSearchOpsSearchErrors(t *testing.T) {
	ops, home := newTestOps(t)
	search := &SearchOps{FilesystemOps: ops}

	_, err := search.Search(context.Background(), filepath.Join(home, "missing"), "x")
	requireKind(t, err, KindIO)
	assert.True(t, strings.HasPrefix(err.Error(), "Failed to search directory: "))

	file := filepath.Join(home, "file.txt")
	mustWrite(t, file, "x")
	_, err = search.Search(context.Background(), file, "x")
	requireKind(t, err, KindIO)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = search.Search(ctx, home, "x")
	requireKind(t, err, KindIO)
	assert.ErrorIs(t, err, context.Canceled)
}

// TestSearchOpsGlob tests doublestar matching below a root
func TestSearchOpsGlob(t *testing.T) {
	ops, home := newTestOps(t)
	search := &SearchOps{FilesystemOps: ops}
	mustWrite(t, filepath.Join(home, "a.md"), "x")
	mustWrite(t, filepath.Join(home, "docs", "b.md"), "x")
	mustWrite(t, filepath.Join(home, "docs", "deep", "c.md"), "x")
	mustWrite(t, filepath.Join(home, "docs", "d.txt"), "x")

	out, err := search.Glob("~", "**/*.md")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(home, "a.md"),
		filepath.Join(home, "docs", "b.md"),
		filepath.Join(home, "docs", "deep", "c.md"),
	}, sortedLines(out))

	out, err = search.Glob(home, "*.go")
	require.NoError(t, err)
	assert.Equal(t, "No files matching pattern '*.go' found in '"+home+"'", out)

	_, err = search.Glob(home, "[")
	requireKind(t, err, KindIO)

	_, err = search.Glob(filepath.Join(home, "missing"), "*")
	requireKind(t, err, KindNotFound)
}

func TestSearchOpsGlobRootWithMetacharacters(t *testing.T) {
	ops, home := newTestOps(t)
	search := &SearchOps{FilesystemOps: ops}
	root := filepath.Join(home, "x[1]")
	mustWrite(t, filepath.Join(root, "a.txt"), "x")

	out, err := search.Glob(root, "*.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "a.txt"), out)
}

func TestSearchOpsGlobStaysInsideRoot(t *testing.T) {
	ops, home := newTestOps(t)
	search := &SearchOps{FilesystemOps: ops}
	mustWrite(t, filepath.Join(home, "secret.txt"), "x")
	root := filepath.Join(home, "sub")
	mustWrite(t, filepath.Join(root, "b.txt"), "x")

	for _, pattern := range []string{"../*.txt", "..", "sub/../../*.txt", "/*.txt"} {
		t.Run(pattern, func(t *testing.T) {
			_, err := search.Glob(root, pattern)
			requireKind(t, err, KindIO)
			assert.Equal(t, "Invalid glob pattern '"+pattern+"'", err.Error())
		})
	}

	out, err := search.Glob(root, "x/../*.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "b.txt"), out)
}
