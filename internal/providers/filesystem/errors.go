package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// Kind classifies a filesystem failure
type Kind int

const (
	// KindResolution means the home directory was unavailable during ~-expansion
	KindResolution Kind = iota
	// KindNotFound means the target path does not exist
	KindNotFound
	// KindWrongType means a file operation hit a directory or vice versa
	KindWrongType
	// KindIO covers read/write/rename/remove/metadata and decode failures
	KindIO
)

// String returns a string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindResolution:
		return "resolution"
	case KindNotFound:
		return "not_found"
	case KindWrongType:
		return "wrong_type"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// Error is the failure type returned by every filesystem operation.
// Error() yields the message shown to callers; the remaining fields are for
// logging and tests.
type Error struct {
	Kind    Kind
	Op      string
	Path    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the Kind of a filesystem error
func KindOf(err error) (Kind, bool) {
	var fsErr *Error
	if errors.As(err, &fsErr) {
		return fsErr.Kind, true
	}
	return 0, false
}

func newError(kind Kind, op, path string, err error, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Op:      op,
		Path:    path,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

func resolutionError(op, path string, err error) *Error {
	return newError(KindResolution, op, path, err, "%s", err.Error())
}

// cause renders the OS-level reason of err without the "op path:" prefix
// that *fs.PathError and friends add, since messages already name the path.
func cause(err error) string {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err.Error()
	}
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		return linkErr.Err.Error()
	}
	var sysErr *os.SyscallError
	if errors.As(err, &sysErr) {
		return sysErr.Err.Error()
	}
	return err.Error()
}

func isNotEmpty(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "not empty")
}
