package models

import (
	"slices"
	"time"
)

const DefaultCategory = "other"

// VoteDirection is a single user's vote state on a link.
type VoteDirection string

const (
	VoteNone VoteDirection = "none"
	VoteUp   VoteDirection = "up"
	VoteDown VoteDirection = "down"
)

// Votes holds the users who voted in each direction. A user is in at most
// one of the two slices.
type Votes struct {
	Up   []string `json:"up"`
	Down []string `json:"down"`
}

func (v Votes) Of(username string) VoteDirection {
	switch {
	case slices.Contains(v.Up, username):
		return VoteUp
	case slices.Contains(v.Down, username):
		return VoteDown
	default:
		return VoteNone
	}
}

// Set moves username into the given direction, removing it from the other.
func (v *Votes) Set(username string, d VoteDirection) {
	v.Up, _ = removeFromSet(v.Up, username)
	v.Down, _ = removeFromSet(v.Down, username)
	switch d {
	case VoteUp:
		v.Up = append(v.Up, username)
	case VoteDown:
		v.Down = append(v.Down, username)
	}
}

// Score is ups minus downs.
func (v Votes) Score() int {
	return len(v.Up) - len(v.Down)
}

type Comment struct {
	ID        ID        `json:"id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type Link struct {
	ID           ID        `json:"id"`
	URL          string    `json:"url"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Tags         []string  `json:"tags"`
	Author       string    `json:"author"`
	Timestamp    time.Time `json:"timestamp"`
	Comments     []Comment `json:"comments"`
	Votes        Votes     `json:"votes"`
	Views        int       `json:"views"`
	BookmarkedBy []string  `json:"bookmarkedBy"`
}

// Normalize fills nil collections left by older records.
func (l *Link) Normalize() {
	if l.Tags == nil {
		l.Tags = []string{}
	}
	if l.Comments == nil {
		l.Comments = []Comment{}
	}
	if l.Votes.Up == nil {
		l.Votes.Up = []string{}
	}
	if l.Votes.Down == nil {
		l.Votes.Down = []string{}
	}
	if l.BookmarkedBy == nil {
		l.BookmarkedBy = []string{}
	}
	if l.Category == "" {
		l.Category = DefaultCategory
	}
}

func (l *Link) Comment(id ID) (Comment, bool) {
	for _, c := range l.Comments {
		if c.ID == id {
			return c, true
		}
	}
	return Comment{}, false
}

func (l *Link) RemoveComment(id ID) {
	l.Comments = slices.DeleteFunc(l.Comments, func(c Comment) bool { return c.ID == id })
}

func (l *Link) IsBookmarkedBy(username string) bool {
	return slices.Contains(l.BookmarkedBy, username)
}

func (l *Link) AddBookmarkedBy(username string) {
	l.BookmarkedBy, _ = addToSet(l.BookmarkedBy, username)
}

func (l *Link) RemoveBookmarkedBy(username string) {
	l.BookmarkedBy, _ = removeFromSet(l.BookmarkedBy, username)
}

func (l *Link) Clone() *Link {
	c := *l
	c.Tags = slices.Clone(l.Tags)
	c.Comments = slices.Clone(l.Comments)
	c.Votes.Up = slices.Clone(l.Votes.Up)
	c.Votes.Down = slices.Clone(l.Votes.Down)
	c.BookmarkedBy = slices.Clone(l.BookmarkedBy)
	return &c
}
