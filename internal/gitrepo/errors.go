package gitrepo

import (
	"errors"
	"fmt"
)

// Common sentinel errors that can be checked with errors.Is().
// These wrap underlying go-git errors while providing a stable API for consumers.

// ErrNotARepository is returned when the working directory does not contain
// a git repository.
var ErrNotARepository = errors.New("not a git repository")

// ErrUpstreamNotConfigured is returned when a branch has no upstream
// tracking branch configured, or the tracking reference is missing locally.
var ErrUpstreamNotConfigured = errors.New("upstream branch not configured")

// ErrAuthRequired is returned when an operation requires authentication
// but no credentials were provided or available.
var ErrAuthRequired = errors.New("authentication required")

// ErrResolveFailed is returned when a revision specification cannot be resolved
// to a valid commit hash.
var ErrResolveFailed = errors.New("cannot resolve revision")

// ErrNoMergeBase is returned when two commits share no common ancestor.
var ErrNoMergeBase = errors.New("no merge base")

// ErrDetachedHead is returned when HEAD does not point to a branch.
var ErrDetachedHead = errors.New("detached HEAD")

// ErrRemoteOperation is returned when a fetch or push against the remote
// fails for a transport-level reason.
var ErrRemoteOperation = errors.New("remote operation failed")

// WrapError wraps an error with additional context while preserving
// the ability to check against sentinel errors using errors.Is().
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// WrapErrorf wraps an error with formatted additional context while preserving
// the ability to check against sentinel errors using errors.Is().
func WrapErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
