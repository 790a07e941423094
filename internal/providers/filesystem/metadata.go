package filesystem

import (
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/GriffinCanCode/AgentOS/fsops/internal/shared/types"
	"github.com/gabriel-vasile/mimetype"
)

// MetadataOps handles file metadata operations
type MetadataOps struct {
	*FilesystemOps
}

// GetTools returns metadata operation tool definitions
func (m *MetadataOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "filesystem.info",
			Name:        "File Info",
			Description: "Describe type, size, permissions and modification time of a path",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File or directory path", Required: true},
			},
			Returns: "string",
		},
		{
			ID:          "filesystem.mime_type",
			Name:        "MIME Type",
			Description: "Detect file MIME type from its content",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "string",
		},
	}
}

// FileInfo is a point-in-time snapshot of a path's metadata
type FileInfo struct {
	Path     string
	Type     FileType
	Size     int64
	ReadOnly bool
	// Modified is nil when the platform cannot report a usable time
	Modified *time.Time
}

// String renders the snapshot as the multi-line info block
func (fi FileInfo) String() string {
	readOnly := "no"
	if fi.ReadOnly {
		readOnly = "yes"
	}
	modified := "Unknown"
	if fi.Modified != nil {
		modified = fmt.Sprintf("%d seconds since epoch", fi.Modified.Unix())
	}
	return fmt.Sprintf("Path: %s\nType: %s\nSize: %s (%d bytes)\nRead-only: %s\nModified: %s",
		fi.Path, fi.Type, formatSize(fi.Size), fi.Size, readOnly, modified)
}

// Stat reads metadata for path without following a final symlink
func (m *MetadataOps) Stat(path string) (*FileInfo, error) {
	resolved, err := m.resolvePath("info", path)
	if err != nil {
		return nil, err
	}

	info, err := os.Lstat(resolved)
	if err != nil {
		return nil, newError(KindIO, "info", resolved, err,
			"Failed to get metadata for '%s': %s", resolved, cause(err))
	}

	fi := &FileInfo{
		Path:     resolved,
		Type:     fileTypeOf(info.Mode()),
		Size:     info.Size(),
		ReadOnly: isReadOnly(info.Mode()),
	}
	if mod := info.ModTime(); !mod.IsZero() && mod.Unix() >= 0 {
		fi.Modified = &mod
	}
	return fi, nil
}

// Info describes path as a text block
func (m *MetadataOps) Info(path string) (string, error) {
	fi, err := m.Stat(path)
	if err != nil {
		return "", err
	}
	return fi.String(), nil
}

// MIMEType sniffs the content type of a file
func (m *MetadataOps) MIMEType(path string) (string, error) {
	resolved, err := m.resolvePath("mime_type", path)
	if err != nil {
		return "", err
	}

	if !exists(resolved) {
		return "", newError(KindNotFound, "mime_type", resolved, os.ErrNotExist,
			"File '%s' does not exist", resolved)
	}
	if isDir(resolved) {
		return "", newError(KindWrongType, "mime_type", resolved, nil,
			"'%s' is a directory", resolved)
	}

	mtype, err := mimetype.DetectFile(resolved)
	if err != nil {
		return "", newError(KindIO, "mime_type", resolved, err,
			"Failed to detect MIME type of '%s': %s", resolved, cause(err))
	}

	return fmt.Sprintf("Path: %s\nMIME type: %s\nExtension: %s",
		resolved, mtype.String(), mtype.Extension()), nil
}

func fileTypeOf(mode fs.FileMode) FileType {
	switch {
	case mode.IsDir():
		return TypeDirectory
	case mode&fs.ModeSymlink != 0:
		return TypeSymlink
	case mode.IsRegular():
		return TypeFile
	default:
		return TypeUnknown
	}
}

// isReadOnly reports whether no write bit is set for anyone
func isReadOnly(mode fs.FileMode) bool {
	return mode.Perm()&0o222 == 0
}

// formatSize formats bytes to human-readable size, capped at TB
func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	units := []string{"KB", "MB", "GB", "TB"}
	size := float64(bytes) / unit
	exp := 0
	for size >= unit && exp < len(units)-1 {
		size /= unit
		exp++
	}

	return fmt.Sprintf("%.2f %s", size, units[exp])
}
