package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	apperrors "github.com/comicdl/comicd/internal/errors"
)

const manifestName = "info.json"

// SimulatedFetcher is the fallback used when no real fetch command is
// configured. It creates the per-comic directory, waits a configurable
// delay, and writes a small manifest so listings and downloads have
// something to serve. Useful for local development and tests.
type SimulatedFetcher struct {
	delay time.Duration
}

// NewSimulatedFetcher creates a simulated fetcher. A zero delay completes
// immediately.
func NewSimulatedFetcher(delay time.Duration) *SimulatedFetcher {
	return &SimulatedFetcher{delay: delay}
}

type simulatedManifest struct {
	ID       string             `json:"id"`
	Title    string             `json:"title"`
	Author   string             `json:"author"`
	Tags     []string           `json:"tags"`
	Chapters []simulatedChapter `json:"chapters"`
}

type simulatedChapter struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Fetch implements Fetcher.
func (f *SimulatedFetcher) Fetch(ctx context.Context, comicID, destRoot string) error {
	comicDir := filepath.Join(destRoot, comicID)
	if err := os.MkdirAll(comicDir, 0o755); err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeFetchFailed, "create comic directory %q", comicDir)
	}

	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return apperrors.Wrap(ctx.Err(), apperrors.ErrCodeFetchFailed, "simulated fetch interrupted")
		case <-time.After(f.delay):
		}
	}

	manifest := simulatedManifest{
		ID:     comicID,
		Title:  fmt.Sprintf("Comic %s", comicID),
		Author: "unknown",
		Tags:   []string{"simulated"},
		Chapters: []simulatedChapter{
			{ID: comicID + "_001", Title: "Chapter 1"},
			{ID: comicID + "_002", Title: "Chapter 2"},
		},
	}

	raw, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeFetchFailed, "encode manifest")
	}
	if err := os.WriteFile(filepath.Join(comicDir, manifestName), raw, 0o644); err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeFetchFailed, "write manifest for comic %s", comicID)
	}
	return nil
}
