package fetch

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	apperrors "github.com/comicdl/comicd/internal/errors"
)

// maxStderrTail bounds how much collaborator output ends up in a job message.
const maxStderrTail = 1024

// CommandFetcher invokes an external downloader process per fetch. The
// command receives the comic id and the destination root as its final two
// arguments and is expected to populate <destRoot>/<comicID> itself.
type CommandFetcher struct {
	command string
	args    []string
	timeout time.Duration
}

// CommandFetcherOptions configures a CommandFetcher.
type CommandFetcherOptions struct {
	// Command is the executable to run. Required.
	Command string
	// Args are fixed arguments placed before the comic id and destination root.
	Args []string
	// Timeout bounds a single invocation; zero means no limit beyond the
	// caller's context.
	Timeout time.Duration
}

// NewCommandFetcher creates a fetcher that shells out to an external downloader.
func NewCommandFetcher(opts CommandFetcherOptions) (*CommandFetcher, error) {
	if strings.TrimSpace(opts.Command) == "" {
		return nil, apperrors.Validation("fetch command is required")
	}
	return &CommandFetcher{
		command: opts.Command,
		args:    opts.Args,
		timeout: opts.Timeout,
	}, nil
}

// Fetch implements Fetcher. A non-zero exit is reported as a fetch failure
// with the tail of the process stderr attached, since that text is what
// surfaces in the job message.
func (f *CommandFetcher) Fetch(ctx context.Context, comicID, destRoot string) error {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	args := make([]string, 0, len(f.args)+2)
	args = append(args, f.args...)
	args = append(args, comicID, destRoot)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, f.command, args...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return apperrors.Wrapf(ctx.Err(), apperrors.ErrCodeFetchFailed,
				"fetch of comic %s timed out", comicID)
		}
		detail := stderrTail(stderr.Bytes())
		if detail == "" {
			return apperrors.Wrapf(err, apperrors.ErrCodeFetchFailed, "fetch of comic %s failed", comicID)
		}
		return apperrors.Wrapf(err, apperrors.ErrCodeFetchFailed,
			"fetch of comic %s failed: %s", comicID, detail)
	}
	return nil
}

func stderrTail(out []byte) string {
	s := strings.TrimSpace(string(out))
	if len(s) > maxStderrTail {
		s = s[len(s)-maxStderrTail:]
	}
	return s
}
