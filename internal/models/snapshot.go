package models

import "time"

// Themes.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// FailedAttempt tracks consecutive login failures for one username.
// LockUntil is epoch milliseconds; zero means not locked.
type FailedAttempt struct {
	Count     int   `json:"count"`
	LockUntil int64 `json:"lockUntil"`
}

// Locked reports whether the lock is still in force at now.
func (f FailedAttempt) Locked(now time.Time) bool {
	return f.LockUntil > now.UnixMilli()
}

// Snapshot is the full persisted state.
type Snapshot struct {
	Users          map[string]*Account      `json:"users"`
	AllLinks       []*Link                  `json:"allLinks"`
	CurrentUser    string                   `json:"currentUser"`
	FailedAttempts map[string]FailedAttempt `json:"failedAttempts"`
	Theme          string                   `json:"theme"`
}

// EmptySnapshot returns a snapshot with all collections allocated.
func EmptySnapshot() *Snapshot {
	return &Snapshot{
		Users:          map[string]*Account{},
		AllLinks:       []*Link{},
		FailedAttempts: map[string]FailedAttempt{},
		Theme:          ThemeLight,
	}
}
