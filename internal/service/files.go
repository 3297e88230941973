package service

import (
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/comicdl/comicd/internal/domain/model"
	apperrors "github.com/comicdl/comicd/internal/errors"
	"github.com/comicdl/comicd/internal/pathsafe"
)

const fallbackContentType = "application/octet-stream"

// FileService serves listings and downloads from the shared download root.
// Every path goes through pathsafe.Resolve; the service itself is strictly
// read-only.
type FileService struct {
	root string
}

// NewFileService creates a file service rooted at root, creating the
// directory if it does not exist yet.
func NewFileService(root string) (*FileService, error) {
	if strings.TrimSpace(root) == "" {
		return nil, apperrors.Internal("download root is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrCodeInternal, "resolve download root %q", root)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrCodeInternal, "create download root %q", abs)
	}
	return &FileService{root: abs}, nil
}

// Root returns the absolute download root.
func (s *FileService) Root() string {
	return s.root
}

// List enumerates the children of rel, sorted by name ascending. The empty
// path lists the download root itself, which succeeds (and is empty) on a
// fresh install. Regular files yield a NotDirectory error so the caller can
// re-route to Read.
func (s *FileService) List(rel string) ([]model.DirectoryEntry, error) {
	abs, err := pathsafe.Resolve(s.root, rel)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NotFoundf("path %q does not exist", rel)
		}
		return nil, apperrors.Wrapf(err, apperrors.ErrCodeInternal, "stat %q", rel)
	}
	if !info.IsDir() {
		return nil, apperrors.NotDirectoryError("path is a file, not a directory")
	}

	children, err := os.ReadDir(abs)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrCodeInternal, "read directory %q", rel)
	}

	// os.ReadDir already sorts by filename in byte order, which is the
	// locale-independent ordering the listing contract requires.
	entries := make([]model.DirectoryEntry, 0, len(children))
	base := strings.Trim(filepath.ToSlash(rel), "/")
	for _, child := range children {
		entry := model.DirectoryEntry{
			Name:         child.Name(),
			Kind:         model.EntryKindFile,
			RelativePath: path.Join(base, child.Name()),
		}
		if child.IsDir() {
			entry.Kind = model.EntryKindDir
		}
		if fi, ferr := child.Info(); ferr == nil {
			entry.Size = fi.Size()
			entry.ModifiedAt = fi.ModTime()
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// FileContent is an open download: the caller owns closing Reader.
type FileContent struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.ReadCloser
}

// Read opens the regular file at rel for streaming, with a content type
// guessed from the extension. Directories yield an IsDirectory error so the
// caller can retry as a listing.
func (s *FileService) Read(rel string) (*FileContent, error) {
	abs, err := pathsafe.Resolve(s.root, rel)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NotFoundf("path %q does not exist", rel)
		}
		return nil, apperrors.Wrapf(err, apperrors.ErrCodeInternal, "stat %q", rel)
	}
	if info.IsDir() {
		return nil, apperrors.IsDirectoryError("path is a directory, not a file")
	}

	f, err := os.Open(abs)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrCodeInternal, "open %q", rel)
	}

	return &FileContent{
		Name:        info.Name(),
		ContentType: contentTypeFor(info.Name()),
		Size:        info.Size(),
		Reader:      f,
	}, nil
}

func contentTypeFor(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return fallbackContentType
}
