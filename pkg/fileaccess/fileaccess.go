// Package fileaccess defines the byte-oriented file contract the core
// parsing pipeline is built against (spec §4.1, §6.2). The pipeline never
// assumes a local filesystem: a package tree may be backed by a local
// directory, a ZIP archive, or a remote object store, as long as the
// backend satisfies FileAccess. Only a local-directory reference backend
// ships with this module; ZIP and object-store backends are external
// collaborators per spec §1.
package fileaccess

import (
	"context"
	"io"
)

// FileAccess is the read-only capability set every package-tree backend
// must implement. All paths are forward-slash separated and relative to
// the package root.
type FileAccess interface {
	// List enumerates all paths under prefix (forward-slash, relative to
	// the package root). An empty prefix lists the whole tree.
	List(ctx context.Context, prefix string) ([]string, error)

	// Exists reports whether path names a file in the package tree. It
	// never returns an error: a backend-level failure while probing is
	// treated as non-existence, matching the non-throwing contract of
	// validation-time existence checks (spec §4.4 step 5).
	Exists(ctx context.Context, path string) bool

	// Open streams the bytes at path. Callers must Close the returned
	// ReadCloser along every exit path, including the error path (spec
	// §5's resource policy).
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// RootPath returns a backend-specific display path for diagnostics. It
	// is not guaranteed to be a real filesystem path for non-local
	// backends.
	RootPath() string

	// TotalSize returns the package's total byte size if the backend can
	// report it cheaply, or false if not.
	TotalSize(ctx context.Context) (uint64, bool)
}

// Operation identifies which FileAccess method failed, for FileAccessError.
type Operation string

const (
	OpList  Operation = "list"
	OpRead  Operation = "read"
	OpProbe Operation = "probe"
)

// Error is the structured failure type FileAccess backends return (spec
// §4.1). FileAccess.Exists never returns one — see its doc comment — but
// List and Open do.
type Error struct {
	Path      string
	Operation Operation
	Cause     error
}

func (e *Error) Error() string {
	return string(e.Operation) + " " + e.Path + ": " + e.Cause.Error()
}

func (e *Error) Unwrap() error { return e.Cause }

// LimitExceeded is returned by archive-backed implementations when a
// single file's decompressed size or the archive's overall expansion ratio
// exceeds the configured cap (spec §5, zip-bomb defense). The reference
// local-directory backend never returns this — it has no decompression
// step — but the type lives here so any backend can produce it uniformly.
type LimitExceeded struct {
	Path            string
	Limit           uint64
	Observed        uint64
	ExpansionRatio  bool // true if this was an expansion-ratio cap, not a per-file size cap
}

func (e *LimitExceeded) Error() string {
	kind := "decompressed size"
	if e.ExpansionRatio {
		kind = "expansion ratio"
	}
	return "fileaccess: " + e.Path + " exceeded " + kind + " limit"
}
