package errs

import "errors"

// Errors the claim lifecycle surfaces to callers. All of them are
// recoverable at the caller; none are fatal to the process.
var (
	ErrForbidden = errors.New("operation not permitted for this role")

	ErrTaskNotFound   = errors.New("task not found")
	ErrTaskInactive   = errors.New("task is not active")
	ErrAlreadyClaimed = errors.New("task already claimed")

	ErrClaimNotFound    = errors.New("claim not found")
	ErrClaimExpired     = errors.New("claim has expired")
	ErrAlreadyCompleted = errors.New("claim already completed")

	ErrWrongFileCount = errors.New("wrong number of files")
	ErrInvalidFile    = errors.New("invalid file")
	ErrStorageFailure = errors.New("failed to store file")
)
