package release

import "errors"

// Precondition failures reported by the sync gate. All of them stop the run
// before any mutation; callers distinguish them with errors.Is().

// ErrUpToDate is returned when the local branch matches the remote and no
// force flag was passed, meaning there is nothing to release.
var ErrUpToDate = errors.New("repository is up-to-date, nothing to do")

// ErrNeedToPull is returned when the remote has commits the local branch
// does not; the repository must be pulled first.
var ErrNeedToPull = errors.New("repository needs to be pulled first")

// ErrDiverged is returned when local and remote branches have both moved;
// the conflict must be resolved manually.
var ErrDiverged = errors.New("branches have diverged, fix the conflict first")

// User-interactive outcomes. These are controlled terminations, distinct
// from technical errors.

// ErrUserDeclined is returned when the user answers no at the release
// confirmation prompt.
var ErrUserDeclined = errors.New("cancelling")

// ErrUserAborted is returned when the confirmation prompt is dismissed
// without an answer.
var ErrUserAborted = errors.New("aborting")
