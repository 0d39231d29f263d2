package models

import (
	"slices"
	"time"
)

// List is a named, ordered collection of link references. Referenced links
// may no longer exist.
type List struct {
	ID          ID        `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Links       []ID      `json:"links"`
	Author      string    `json:"author"`
	Timestamp   time.Time `json:"timestamp"`
	IsPublic    bool      `json:"isPublic"`
}

func (l *List) Normalize(owner string) {
	if l.Links == nil {
		l.Links = []ID{}
	}
	if l.Author == "" {
		l.Author = owner
	}
}

func (l *List) Contains(id ID) bool {
	return slices.Contains(l.Links, id)
}

// AddLink reports false when id is already present.
func (l *List) AddLink(id ID) bool {
	var added bool
	l.Links, added = addToSet(l.Links, id)
	return added
}

// RemoveLink reports false when id was not present.
func (l *List) RemoveLink(id ID) bool {
	var removed bool
	l.Links, removed = removeFromSet(l.Links, id)
	return removed
}

func (l *List) Clone() *List {
	c := *l
	c.Links = slices.Clone(l.Links)
	return &c
}
