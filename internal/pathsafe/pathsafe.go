// Package pathsafe confines user-supplied relative paths to a root directory.
//
// Resolve is the single chokepoint between request path fragments and the
// filesystem: every listing and download goes through it, and anything that
// canonicalizes outside the root is rejected with a path-escape error.
package pathsafe

import (
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/comicdl/comicd/internal/errors"
)

// Resolve joins userPath onto root and returns the canonical absolute path,
// or a PathEscape error if the result is not root itself or a descendant of
// root. The check runs on cleaned absolute paths, never raw strings, and is
// re-applied after symlink evaluation when the target already exists.
func Resolve(root, userPath string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", apperrors.Wrapf(err, apperrors.ErrCodeInternal, "resolve root %q", root)
	}
	absRoot = filepath.Clean(absRoot)

	candidate := filepath.Clean(filepath.Join(absRoot, filepath.FromSlash(userPath)))
	if !within(absRoot, candidate) {
		return "", apperrors.PathEscapef("path %q escapes the download root", userPath)
	}

	// Lexical containment alone does not defeat symlinks pointing outside the
	// root, so re-check against the symlink-resolved paths when they exist.
	resolvedRoot, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return candidate, nil
		}
		return "", apperrors.Wrapf(err, apperrors.ErrCodeInternal, "canonicalize root %q", absRoot)
	}

	resolved, err := filepath.EvalSymlinks(candidate)
	if err != nil {
		if os.IsNotExist(err) {
			// Target does not exist yet; the lexical check above stands.
			return candidate, nil
		}
		return "", apperrors.Wrapf(err, apperrors.ErrCodeInternal, "canonicalize %q", candidate)
	}
	if !within(resolvedRoot, resolved) {
		return "", apperrors.PathEscapef("path %q escapes the download root", userPath)
	}

	return candidate, nil
}

// within reports whether p equals root or sits below it, using path
// components rather than string prefixes so "downloads-evil" never matches
// a root of "downloads".
func within(root, p string) bool {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
