// Package fetch defines the boundary to the external content-retrieval
// collaborator and the implementations comicd ships with.
//
// The core never inspects how content is fetched; it hands a comic id and
// the download root to a Fetcher and records the outcome on the job.
package fetch

import "context"

// Fetcher retrieves one comic into a per-comic subdirectory of destRoot.
// Implementations own their internal retry and timeout policy; any error
// they return is captured verbatim as the job failure message.
type Fetcher interface {
	Fetch(ctx context.Context, comicID, destRoot string) error
}

// Func adapts a plain function to the Fetcher interface.
type Func func(ctx context.Context, comicID, destRoot string) error

// Fetch implements Fetcher.
func (f Func) Fetch(ctx context.Context, comicID, destRoot string) error {
	return f(ctx, comicID, destRoot)
}
