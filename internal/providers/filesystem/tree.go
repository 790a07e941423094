package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

const (
	connectorMid  = "├── "
	connectorLast = "└── "
	extensionMid  = "│   "
	extensionLast = "    "

	markerDir     = "[DIR] "
	markerUnknown = "[?] "
)

// Tree renders the directory at path down to maxDepth levels below it.
// Depth 0 lists only the immediate children.
func (d *DirectoryOps) Tree(ctx context.Context, path string, maxDepth int) (string, error) {
	resolved, err := d.resolvePath("tree", path)
	if err != nil {
		return "", err
	}

	if !exists(resolved) {
		return "", newError(KindNotFound, "tree", resolved, os.ErrNotExist,
			"Path '%s' does not exist", resolved)
	}
	if !isDir(resolved) {
		return "", newError(KindWrongType, "tree", resolved, nil,
			"'%s' is not a directory", resolved)
	}

	var out strings.Builder
	if err := renderTree(ctx, resolved, &out, maxDepth); err != nil {
		return "", newError(KindIO, "tree", resolved, err,
			"Failed to build directory tree: %s", err.Error())
	}

	return out.String(), nil
}

// treeFrame is one directory level on the render stack
type treeFrame struct {
	dir     string
	entries []os.DirEntry
	next    int
	prefix  string
	depth   int
}

// renderTree writes a pre-order listing of root into out. Entries are
// sorted by name at every level. Directories deeper than maxDepth are never
// opened. Symlinks to directories are descended but not marked [DIR]; maxDepth
// bounds any link cycle.
func renderTree(ctx context.Context, root string, out *strings.Builder, maxDepth int) error {
	if maxDepth < 0 {
		return nil
	}

	entries, err := readSortedDir(root)
	if err != nil {
		return err
	}

	stack := []*treeFrame{{dir: root, entries: entries}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next >= len(top.entries) {
			stack = stack[:len(stack)-1]
			continue
		}

		entry := top.entries[top.next]
		top.next++

		connector, extension := connectorMid, extensionMid
		if top.next == len(top.entries) {
			connector, extension = connectorLast, extensionLast
		}

		out.WriteString(top.prefix)
		out.WriteString(connector)
		out.WriteString(treeMarker(entry))
		out.WriteString(entry.Name())
		out.WriteByte('\n')

		if top.depth+1 > maxDepth {
			continue
		}
		child := filepath.Join(top.dir, entry.Name())
		if !descends(child, entry) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		childEntries, err := readSortedDir(child)
		if err != nil {
			return err
		}
		stack = append(stack, &treeFrame{
			dir:     child,
			entries: childEntries,
			prefix:  top.prefix + extension,
			depth:   top.depth + 1,
		})
	}

	return nil
}

// readSortedDir reads dir with entries sorted by file name
func readSortedDir(dir string) ([]os.DirEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, newError(KindIO, "tree", dir, err,
			"Failed to read directory '%s': %s", dir, cause(err))
	}
	return entries, nil
}

// descends reports whether the tree recurses into entry, following symlinks
func descends(path string, entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	return isDir(path)
}

func treeMarker(entry os.DirEntry) string {
	if entry.IsDir() {
		return markerDir
	}
	if _, err := entry.Info(); err != nil {
		return markerUnknown
	}
	return ""
}
