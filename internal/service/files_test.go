package service

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comicdl/comicd/internal/domain/model"
	apperrors "github.com/comicdl/comicd/internal/errors"
)

func newTestFileService(t *testing.T) (*FileService, string) {
	t.Helper()
	root := t.TempDir()
	svc, err := NewFileService(root)
	require.NoError(t, err)
	return svc, root
}

func TestNewFileServiceCreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "not", "yet", "there")
	svc, err := NewFileService(root)
	require.NoError(t, err)
	assert.DirExists(t, svc.Root())
}

func TestListEmptyRoot(t *testing.T) {
	svc, _ := newTestFileService(t)

	entries, err := svc.List("")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestListRootEnumeratesDownloads(t *testing.T) {
	svc, root := newTestFileService(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "12345"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "readme.txt"), []byte("hi"), 0o644))

	entries, err := svc.List("")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Sorted by name ascending: "12345" < "readme.txt".
	assert.Equal(t, "12345", entries[0].Name)
	assert.Equal(t, model.EntryKindDir, entries[0].Kind)
	assert.Equal(t, "12345", entries[0].RelativePath)

	assert.Equal(t, "readme.txt", entries[1].Name)
	assert.Equal(t, model.EntryKindFile, entries[1].Kind)
	assert.Equal(t, "readme.txt", entries[1].RelativePath)
	assert.Equal(t, int64(2), entries[1].Size)
}

func TestListSubdirectoryRelativePaths(t *testing.T) {
	svc, root := newTestFileService(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "12345"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "12345", "info.json"), []byte("{}"), 0o644))

	entries, err := svc.List("12345")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "12345/info.json", entries[0].RelativePath)
}

func TestListMissingPath(t *testing.T) {
	svc, _ := newTestFileService(t)

	_, err := svc.List("absent")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListRejectsEscape(t *testing.T) {
	svc, _ := newTestFileService(t)

	_, err := svc.List("../../etc")
	require.Error(t, err)
	assert.True(t, apperrors.IsPathEscape(err))
}

func TestListOnFileIsNotDirectory(t *testing.T) {
	svc, root := newTestFileService(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("x"), 0o644))

	_, err := svc.List("a.txt")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotDirectory(err))
}

func TestReadRoundTrip(t *testing.T) {
	svc, root := newTestFileService(t)
	payload := []byte("{\"id\": \"12345\"}")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "12345"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "12345", "info.json"), payload, 0o644))

	content, err := svc.Read("12345/info.json")
	require.NoError(t, err)
	defer content.Reader.Close()

	got, err := io.ReadAll(content.Reader)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
	assert.Equal(t, int64(len(payload)), content.Size)
	assert.Contains(t, content.ContentType, "application/json")
}

func TestReadUnknownExtensionFallsBack(t *testing.T) {
	svc, root := newTestFileService(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "blob.xyzzy"), []byte{0x00, 0x01}, 0o644))

	content, err := svc.Read("blob.xyzzy")
	require.NoError(t, err)
	defer content.Reader.Close()
	assert.Equal(t, "application/octet-stream", content.ContentType)
}

func TestReadDirectoryIsDirectory(t *testing.T) {
	svc, root := newTestFileService(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "12345"), 0o755))

	_, err := svc.Read("12345")
	require.Error(t, err)
	assert.True(t, apperrors.IsIsDirectory(err))
}

func TestReadMissingFile(t *testing.T) {
	svc, _ := newTestFileService(t)

	_, err := svc.Read("nope.bin")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestReadRejectsEscape(t *testing.T) {
	svc, _ := newTestFileService(t)

	_, err := svc.Read("../../etc/passwd")
	require.Error(t, err)
	assert.True(t, apperrors.IsPathEscape(err))
}
