package fileaccess

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Local is a FileAccess backend rooted at a real directory on disk. It is
// the reference implementation used by tests and by cmd/elearnlint; the
// ZIP and object-store backends spec §1 treats as external collaborators
// are expected to satisfy the same interface.
type Local struct {
	root string
}

// NewLocal creates a Local backend rooted at dir. dir is resolved to an
// absolute path at construction time so later relative lookups are stable
// even if the process changes its working directory.
func NewLocal(dir string) (*Local, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, &Error{Path: dir, Operation: OpProbe, Cause: err}
	}
	return &Local{root: abs}, nil
}

// List implements FileAccess.
func (l *Local) List(ctx context.Context, prefix string) ([]string, error) {
	prefix = toSlash(prefix)
	var paths []string
	err := filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(l.root, path)
		if err != nil {
			return nil
		}
		rel = toSlash(rel)
		if prefix != "" && !strings.HasPrefix(rel, prefix) {
			return nil
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, &Error{Path: l.root, Operation: OpList, Cause: err}
	}
	return paths, nil
}

// Exists implements FileAccess. Per the interface contract, a backend
// failure while probing is reported as non-existence rather than an error.
func (l *Local) Exists(ctx context.Context, path string) bool {
	if !safeJoin(path) {
		return false
	}
	info, err := os.Stat(filepath.Join(l.root, filepath.FromSlash(path)))
	return err == nil && !info.IsDir()
}

// Open implements FileAccess.
func (l *Local) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if !safeJoin(path) {
		return nil, &Error{Path: path, Operation: OpRead, Cause: os.ErrInvalid}
	}
	f, err := os.Open(filepath.Join(l.root, filepath.FromSlash(path)))
	if err != nil {
		return nil, &Error{Path: path, Operation: OpRead, Cause: err}
	}
	return f, nil
}

// RootPath implements FileAccess.
func (l *Local) RootPath() string { return l.root }

// TotalSize implements FileAccess by summing regular-file sizes under the
// root. Returned as (0, false) if the walk fails partway through.
func (l *Local) TotalSize(ctx context.Context) (uint64, bool) {
	var total uint64
	err := filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		total += uint64(info.Size())
		return nil
	})
	if err != nil {
		return 0, false
	}
	return total, true
}

// FindCaseInsensitive looks for a file named name (case-insensitively)
// directly under dir within fa's tree. SCORM manifests have historically
// shipped as imsmanifest.xml, IMSMANIFEST.XML, and mixed case (spec §4.1).
// Returns the exact on-disk path and true if found.
func FindCaseInsensitive(ctx context.Context, fa FileAccess, dir, name string) (string, bool) {
	want := strings.ToLower(name)
	entries, err := fa.List(ctx, dir)
	if err != nil {
		return "", false
	}
	for _, entry := range entries {
		rel := strings.TrimPrefix(entry, dir)
		rel = strings.TrimPrefix(rel, "/")
		if strings.Contains(rel, "/") {
			continue // only direct children of dir
		}
		if strings.ToLower(rel) == want {
			return entry, true
		}
	}
	return "", false
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// safeJoin rejects traversal before it ever reaches the filesystem. The
// validator's path-safety rule (spec §4.5) is what surfaces this to an LMS
// integrator as an issue; this check exists purely to keep the local
// backend itself from ever reading outside its root.
func safeJoin(path string) bool {
	if path == "" {
		return false
	}
	clean := toSlash(path)
	if strings.HasPrefix(clean, "/") || strings.Contains(clean, "://") {
		return false
	}
	for _, seg := range strings.Split(clean, "/") {
		if seg == ".." {
			return false
		}
	}
	return true
}
