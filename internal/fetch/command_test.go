package fetch

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/comicdl/comicd/internal/errors"
)

func TestNewCommandFetcherRequiresCommand(t *testing.T) {
	_, err := NewCommandFetcher(CommandFetcherOptions{})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestCommandFetcherRunsCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test relies on /bin/sh")
	}

	root := t.TempDir()
	f, err := NewCommandFetcher(CommandFetcherOptions{
		Command: "/bin/sh",
		Args:    []string{"-c", `mkdir -p "$1/$0" && touch "$1/$0/page1.jpg"`},
	})
	require.NoError(t, err)

	require.NoError(t, f.Fetch(context.Background(), "42", root))
	assert.FileExists(t, filepath.Join(root, "42", "page1.jpg"))
}

func TestCommandFetcherReportsStderr(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test relies on /bin/sh")
	}

	f, err := NewCommandFetcher(CommandFetcherOptions{
		Command: "/bin/sh",
		Args:    []string{"-c", `echo "album 42 not found" >&2; exit 3`},
	})
	require.NoError(t, err)

	err = f.Fetch(context.Background(), "42", t.TempDir())
	require.Error(t, err)
	assert.True(t, apperrors.IsFetchFailed(err))
	assert.Contains(t, err.Error(), "album 42 not found")
}

func TestCommandFetcherTimeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test relies on /bin/sh")
	}

	f, err := NewCommandFetcher(CommandFetcherOptions{
		Command: "/bin/sh",
		Args:    []string{"-c", "sleep 30"},
		Timeout: 50 * time.Millisecond,
	})
	require.NoError(t, err)

	err = f.Fetch(context.Background(), "42", t.TempDir())
	require.Error(t, err)
	assert.True(t, apperrors.IsFetchFailed(err))
	assert.Contains(t, err.Error(), "timed out")
}

func TestCommandFetcherMissingBinary(t *testing.T) {
	f, err := NewCommandFetcher(CommandFetcherOptions{
		Command: filepath.Join(t.TempDir(), "does-not-exist"),
	})
	require.NoError(t, err)

	err = f.Fetch(context.Background(), "42", t.TempDir())
	require.Error(t, err)
	assert.True(t, apperrors.IsFetchFailed(err))
}
