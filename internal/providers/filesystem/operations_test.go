package filesystem

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOperationsOpsMove tests the Move operation
func TestOperationsOpsMove(t *testing.T) {
	ops, home := newTestOps(t)
	fileOps := &OperationsOps{FilesystemOps: ops}
	src := filepath.Join(home, "src.txt")
	dst := filepath.Join(home, "nested", "deeper", "dst.txt")
	mustWrite(t, src, "payload")

	msg, err := fileOps.Move("~/src.txt", "~/nested/deeper/dst.txt")
	require.NoError(t, err)
	assert.Equal(t, "Successfully moved '"+src+"' to '"+dst+"'", msg)
	assert.NoFileExists(t, src)
	assert.FileExists(t, dst)
}

func TestOperationsOpsMoveDirectory(t *testing.T) {
	ops, home := newTestOps(t)
	fileOps := &OperationsOps{FilesystemOps: ops}
	mustWrite(t, filepath.Join(home, "old", "inner.txt"), "x")

	_, err := fileOps.Move(filepath.Join(home, "old"), filepath.Join(home, "new"))
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(home, "new", "inner.txt"))
	assert.NoDirExists(t, filepath.Join(home, "old"))
}

func TestOperationsOpsMoveMissingSource(t *testing.T) {
	ops, home := newTestOps(t)
	fileOps := &OperationsOps{FilesystemOps: ops}
	src := filepath.Join(home, "ghost")

	_, err := fileOps.Move(src, filepath.Join(home, "dst", "ghost"))
	requireKind(t, err, KindNotFound)
	assert.Equal(t, "Source path '"+src+"' does not exist", err.Error())
	assert.NoDirExists(t, filepath.Join(home, "dst"))
}

func TestOperationsOpsMoveParentBlocked(t *testing.T) {
	ops, home := newTestOps(t)
	fileOps := &OperationsOps{FilesystemOps: ops}
	src := filepath.Join(home, "src.txt")
	blocker := filepath.Join(home, "blocker")
	mustWrite(t, src, "x")
	mustWrite(t, blocker, "x")

	parent := filepath.Join(blocker, "sub")
	_, err := fileOps.Move(src, filepath.Join(parent, "dst.txt"))
	requireKind(t, err, KindIO)
	assert.Contains(t, err.Error(), "Failed to create destination parent directory '"+parent+"': ")
	assert.FileExists(t, src)
}

// TestOperationsOpsDeleteFile tests the DeleteFile operation
func TestOperationsOpsDeleteFile(t *testing.T) {
	ops, home := newTestOps(t)
	fileOps := &OperationsOps{FilesystemOps: ops}
	target := filepath.Join(home, "gone.txt")
	mustWrite(t, target, "x")

	msg, err := fileOps.DeleteFile("~/gone.txt")
	require.NoError(t, err)
	assert.Equal(t, "Successfully deleted file '"+target+"'", msg)
	assert.NoFileExists(t, target)

	_, err = fileOps.DeleteFile(target)
	requireKind(t, err, KindNotFound)
	assert.Equal(t, "File '"+target+"' does not exist", err.Error())
}

func TestOperationsOpsDeleteFileRejectsDirectory(t *testing.T) {
	ops, home := newTestOps(t)
	fileOps := &OperationsOps{FilesystemOps: ops}
	dir := filepath.Join(home, "dir")
	mustMkdir(t, dir)

	_, err := fileOps.DeleteFile(dir)
	requireKind(t, err, KindWrongType)
	assert.Equal(t, "'"+dir+"' is a directory, use delete-directory instead", err.Error())
	assert.DirExists(t, dir)
}
