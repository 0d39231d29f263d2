package store

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/portalroom/internal/common"
	"github.com/dmitrijs2005/portalroom/internal/cryptox"
	"github.com/dmitrijs2005/portalroom/internal/models"
	"github.com/dmitrijs2005/portalroom/internal/timex"
)

const (
	minUsernameLen = 3
	minPasswordLen = 6
)

// Session is the result of a successful authentication.
type Session struct {
	Username string
	Since    time.Time
	// Upgraded is set when the stored credential was re-encoded from a
	// legacy scheme during this login.
	Upgraded bool
}

// Register creates an account with the default profile and makes it the
// current session.
func (s *Store) Register(ctx context.Context, username, password string) (*models.Account, error) {
	username = strings.TrimSpace(username)
	if utf8.RuneCountInString(username) < minUsernameLen {
		return nil, common.ErrUsernameTooShort
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return nil, common.ErrPasswordTooShort
	}
	encoded := cryptox.HashPassword(password)

	var created *models.Account
	err := s.update(ctx, func(tx *txn) error {
		if _, exists := tx.accounts[username]; exists {
			return common.ErrDuplicateUsername
		}
		created = models.NewAccount(username, encoded, tx.now)
		tx.accounts[username] = created
		tx.currentUser = username
		tx.emit(Event{Type: EventUserRegistered, Actor: username})
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info(ctx, "user registered", "username", username)
	return created.Public(), nil
}

// Authenticate verifies a password, applying the lockout policy. Failed
// attempts are persisted, so the returned error may follow a successful
// save.
func (s *Store) Authenticate(ctx context.Context, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)

	var (
		session *Session
		authErr error
	)
	err := s.update(ctx, func(tx *txn) error {
		attempt := tx.failed[username]
		if attempt.Locked(tx.now) {
			authErr = &common.LockedError{Username: username, Until: timex.UnixMilli(attempt.LockUntil)}
			return nil
		}
		if attempt.LockUntil != 0 {
			attempt = models.FailedAttempt{}
		}

		acc, ok := tx.accounts[username]
		if !ok || !cryptox.VerifyPassword(acc.Password, password) {
			attempt.Count++
			if attempt.Count >= s.settings.LockoutThreshold {
				attempt.LockUntil = tx.now.Add(s.settings.LockoutDuration).UnixMilli()
			}
			tx.failed[username] = attempt
			authErr = common.ErrInvalidCredentials
			return nil
		}

		delete(tx.failed, username)
		upgraded := false
		if cryptox.NeedsRehash(acc.Password) {
			acc.Password = cryptox.HashPassword(password)
			upgraded = true
		}
		tx.currentUser = username
		session = &Session{Username: username, Since: tx.now, Upgraded: upgraded}
		tx.emit(Event{Type: EventUserLoggedIn, Actor: username})
		return nil
	})
	if err != nil {
		return nil, err
	}
	if authErr != nil {
		s.log.Warn(ctx, "login rejected", "username", username, "error", authErr)
		return nil, authErr
	}
	if session.Upgraded {
		s.log.Info(ctx, "password re-encoded", "username", username)
	}
	return session, nil
}

// Logout clears the current session.
func (s *Store) Logout(ctx context.Context) error {
	return s.update(ctx, func(tx *txn) error {
		if tx.currentUser != "" {
			tx.emit(Event{Type: EventUserLoggedOut, Actor: tx.currentUser})
		}
		tx.currentUser = ""
		return nil
	})
}

// CurrentUser returns the username of the active session, or "".
func (s *Store) CurrentUser() string {
	var u string
	s.view(func(st *state) { u = st.currentUser })
	return u
}
