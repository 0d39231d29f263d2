// Package common defines the error taxonomy shared by the store, the CLI and
// the HTTP API. Every error returned by the store wraps exactly one of the
// kind sentinels below; callers match with errors.Is at either level.
package common

import (
	"errors"
	"fmt"
	"time"
)

// Error kinds.
var (
	ErrValidation    = errors.New("validation error")
	ErrAuthorization = errors.New("authorization error")
	ErrNotFound      = errors.New("not found")
	ErrDuplicate     = errors.New("duplicate")
	ErrRateLimit     = errors.New("rate limited")
	ErrStorage       = errors.New("storage error")
)

// Validation errors.
var (
	ErrUsernameTooShort = fmt.Errorf("%w: username must be at least 3 characters", ErrValidation)
	ErrPasswordTooShort = fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	ErrMissingURL       = fmt.Errorf("%w: url is required", ErrValidation)
	ErrMissingTitle     = fmt.Errorf("%w: title is required", ErrValidation)
	ErrInvalidURL       = fmt.Errorf("%w: url must be an http or https address", ErrValidation)
	ErrEmptyComment     = fmt.Errorf("%w: comment text is empty", ErrValidation)
	ErrMissingListName  = fmt.Errorf("%w: list name is required", ErrValidation)
	ErrBioTooLong       = fmt.Errorf("%w: bio must be at most 200 characters", ErrValidation)
	ErrInvalidDirection = fmt.Errorf("%w: vote direction must be up or down", ErrValidation)
	ErrInvalidTheme     = fmt.Errorf("%w: theme must be dark or light", ErrValidation)
	ErrSelfFollow       = fmt.Errorf("%w: cannot follow yourself", ErrValidation)
	ErrInvalidBackup    = fmt.Errorf("%w: invalid backup document", ErrValidation)
)

// Authorization errors.
var (
	ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", ErrAuthorization)
	ErrNotAuthenticated   = fmt.Errorf("%w: not authenticated", ErrAuthorization)
	ErrNotAuthor          = fmt.Errorf("%w: only the author may do this", ErrAuthorization)
	ErrInvalidToken       = fmt.Errorf("%w: invalid token", ErrAuthorization)
	ErrTokenExpired       = fmt.Errorf("%w: token expired", ErrAuthorization)
)

// Not-found errors.
var (
	ErrLinkNotFound    = fmt.Errorf("%w: link", ErrNotFound)
	ErrCommentNotFound = fmt.Errorf("%w: comment", ErrNotFound)
	ErrListNotFound    = fmt.Errorf("%w: list", ErrNotFound)
	ErrUserNotFound    = fmt.Errorf("%w: user", ErrNotFound)
	ErrLinkNotInList   = fmt.Errorf("%w: link is not in the list", ErrNotFound)
)

// Duplicate errors.
var (
	ErrDuplicateUsername = fmt.Errorf("%w: username already exists", ErrDuplicate)
	ErrDuplicateURL      = fmt.Errorf("%w: link with this url already exists", ErrDuplicate)
	ErrAlreadyInList     = fmt.Errorf("%w: link is already in the list", ErrDuplicate)
)

// LockedError is returned by authentication while an account is in its
// lockout cooldown. It unwraps to ErrRateLimit.
type LockedError struct {
	Username string
	Until    time.Time
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("account %q is locked until %s", e.Username, e.Until.Format(time.RFC3339))
}

func (e *LockedError) Unwrap() error {
	return ErrRateLimit
}

// StorageError wraps err so that it matches ErrStorage while keeping the
// underlying cause reachable through errors.Is/As.
func StorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
