package models

import (
	"slices"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	DefaultBio   = "Hello! I love sharing interesting links."
	StarterBadge = "founder"
)

type Profile struct {
	Bio       string   `json:"bio"`
	Avatar    string   `json:"avatar"`
	Karma     int      `json:"karma"`
	Badges    []string `json:"badges"`
	Bookmarks []ID     `json:"bookmarks"`
	Following []string `json:"following"`
	Followers []string `json:"followers"`
}

// Account is a registered user. Links is a projection of the global link
// collection and is only filled in when a snapshot is produced.
type Account struct {
	Username string    `json:"username"`
	Password string    `json:"password"`
	Links    []*Link   `json:"links"`
	Lists    []*List   `json:"lists"`
	JoinedAt time.Time `json:"joinedAt"`
	Profile  Profile   `json:"profile"`
}

// NewAccount builds an account with the default profile.
func NewAccount(username, password string, now time.Time) *Account {
	return &Account{
		Username: username,
		Password: password,
		Links:    []*Link{},
		Lists:    []*List{},
		JoinedAt: now,
		Profile: Profile{
			Bio:       DefaultBio,
			Avatar:    Avatar(username),
			Badges:    []string{StarterBadge},
			Bookmarks: []ID{},
			Following: []string{},
			Followers: []string{},
		},
	}
}

// Avatar is the upper-cased first letter of username, or "?".
func Avatar(username string) string {
	r, _ := utf8.DecodeRuneInString(username)
	if r == utf8.RuneError {
		return "?"
	}
	return string(unicode.ToUpper(r))
}

// Normalize fills fields missing from records written by older releases.
// The map key the record is stored under is authoritative for Username.
func (a *Account) Normalize(username string) {
	a.Username = username
	if a.Profile.Avatar == "" {
		a.Profile.Avatar = Avatar(a.Username)
	}
	if a.Profile.Badges == nil {
		a.Profile.Badges = []string{}
	}
	if a.Profile.Bookmarks == nil {
		a.Profile.Bookmarks = []ID{}
	}
	if a.Profile.Following == nil {
		a.Profile.Following = []string{}
	}
	if a.Profile.Followers == nil {
		a.Profile.Followers = []string{}
	}
	if a.Lists == nil {
		a.Lists = []*List{}
	}
	for _, l := range a.Lists {
		l.Normalize(a.Username)
	}
	a.Links = nil
}

func (a *Account) HasBadge(badge string) bool {
	return slices.Contains(a.Profile.Badges, badge)
}

// AddBadge reports whether the badge was newly awarded.
func (a *Account) AddBadge(badge string) bool {
	var added bool
	a.Profile.Badges, added = addToSet(a.Profile.Badges, badge)
	return added
}

func (a *Account) HasBookmark(id ID) bool {
	return slices.Contains(a.Profile.Bookmarks, id)
}

func (a *Account) AddBookmark(id ID) {
	a.Profile.Bookmarks, _ = addToSet(a.Profile.Bookmarks, id)
}

func (a *Account) RemoveBookmark(id ID) {
	a.Profile.Bookmarks, _ = removeFromSet(a.Profile.Bookmarks, id)
}

func (a *Account) IsFollowing(username string) bool {
	return slices.Contains(a.Profile.Following, username)
}

func (a *Account) AddFollowing(username string) bool {
	var added bool
	a.Profile.Following, added = addToSet(a.Profile.Following, username)
	return added
}

func (a *Account) RemoveFollowing(username string) bool {
	var removed bool
	a.Profile.Following, removed = removeFromSet(a.Profile.Following, username)
	return removed
}

func (a *Account) AddFollower(username string) {
	a.Profile.Followers, _ = addToSet(a.Profile.Followers, username)
}

func (a *Account) RemoveFollower(username string) {
	a.Profile.Followers, _ = removeFromSet(a.Profile.Followers, username)
}

// List returns the owned list with the given id.
func (a *Account) List(id ID) (*List, bool) {
	for _, l := range a.Lists {
		if l.ID == id {
			return l, true
		}
	}
	return nil, false
}

// RemoveList reports whether the list was owned and removed.
func (a *Account) RemoveList(id ID) bool {
	i := slices.IndexFunc(a.Lists, func(l *List) bool { return l.ID == id })
	if i < 0 {
		return false
	}
	a.Lists = slices.Delete(a.Lists, i, i+1)
	return true
}

// Clone returns a deep copy. Links are not copied since they are a
// projection.
func (a *Account) Clone() *Account {
	c := *a
	c.Links = nil
	c.Lists = make([]*List, len(a.Lists))
	for i, l := range a.Lists {
		c.Lists[i] = l.Clone()
	}
	c.Profile.Badges = slices.Clone(a.Profile.Badges)
	c.Profile.Bookmarks = slices.Clone(a.Profile.Bookmarks)
	c.Profile.Following = slices.Clone(a.Profile.Following)
	c.Profile.Followers = slices.Clone(a.Profile.Followers)
	return &c
}

// Public returns a copy without the password credential.
func (a *Account) Public() *Account {
	c := a.Clone()
	c.Password = ""
	return c
}
