// Package filesystem provides local file system operations.
//
// This package is organized into specialized modules:
//   - basic: Core file operations (read, write, exists)
//   - directory: Directory operations (list, create, delete, tree)
//   - operations: File manipulation (move, delete)
//   - metadata: Path metadata and MIME sniffing
//   - search: Recursive name search and glob matching
//
// All operations:
//   - Expand a leading ~ against $HOME before touching the filesystem
//   - Return an *Error whose message is ready to show to callers
//   - Hold no state between calls
//
// Example Usage:
//
//	ops := filesystem.NewFilesystemOps(filesystem.DefaultTreeDepth)
//	dir := &filesystem.DirectoryOps{FilesystemOps: ops}
//	tree, err := dir.Tree(ctx, "~/projects", 2)
package filesystem
