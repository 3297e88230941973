package model

import "time"

// EntryKind distinguishes files from directories in download listings.
type EntryKind string

const (
	// EntryKindFile marks a regular file.
	EntryKindFile EntryKind = "file"
	// EntryKindDir marks a directory.
	EntryKindDir EntryKind = "dir"
)

// DirectoryEntry represents one child of a listed directory under the
// download root. RelativePath is usable as-is for a follow-up list or read.
// Entries are derived on demand from the filesystem and never persisted.
type DirectoryEntry struct {
	Name         string    `json:"name"`
	Kind         EntryKind `json:"kind"`
	RelativePath string    `json:"relative_path"`
	Size         int64     `json:"size"`
	ModifiedAt   time.Time `json:"modified_at"`
}
