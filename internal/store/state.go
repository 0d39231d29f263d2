package store

import (
	"maps"
	"slices"

	"github.com/dmitrijs2005/portalroom/internal/models"
)

type state struct {
	accounts    map[string]*models.Account
	links       []*models.Link
	byID        map[models.ID]*models.Link
	owned       map[string][]models.ID
	currentUser string
	failed      map[string]models.FailedAttempt
	theme       string
}

// newState builds validated in-memory state from a loaded snapshot. The
// per-account links stored in the snapshot are ignored; ownership is derived
// from the global collection.
func newState(snap *models.Snapshot) *state {
	st := &state{
		accounts:    make(map[string]*models.Account, len(snap.Users)),
		links:       make([]*models.Link, 0, len(snap.AllLinks)),
		currentUser: snap.CurrentUser,
		failed:      maps.Clone(snap.FailedAttempts),
		theme:       snap.Theme,
	}
	if st.failed == nil {
		st.failed = map[string]models.FailedAttempt{}
	}
	if st.theme == "" {
		st.theme = models.ThemeLight
	}

	for username, acc := range snap.Users {
		if acc == nil {
			continue
		}
		acc.Normalize(username)
		st.accounts[username] = acc
	}

	seen := make(map[models.ID]bool, len(snap.AllLinks))
	for _, l := range snap.AllLinks {
		if l == nil || l.ID == "" || seen[l.ID] {
			continue
		}
		seen[l.ID] = true
		l.Normalize()
		st.links = append(st.links, l)
	}
	st.reindex()

	if _, ok := st.accounts[st.currentUser]; !ok {
		st.currentUser = ""
	}
	return st
}

func (st *state) reindex() {
	st.byID = make(map[models.ID]*models.Link, len(st.links))
	st.owned = make(map[string][]models.ID)
	for _, l := range st.links {
		st.byID[l.ID] = l
		st.owned[l.Author] = append(st.owned[l.Author], l.ID)
	}
}

func (st *state) clone() *state {
	c := &state{
		accounts:    make(map[string]*models.Account, len(st.accounts)),
		links:       make([]*models.Link, len(st.links)),
		currentUser: st.currentUser,
		failed:      maps.Clone(st.failed),
		theme:       st.theme,
	}
	for k, a := range st.accounts {
		c.accounts[k] = a.Clone()
	}
	for i, l := range st.links {
		c.links[i] = l.Clone()
	}
	c.reindex()
	return c
}

func (st *state) addLink(l *models.Link) {
	st.links = append(st.links, l)
	st.byID[l.ID] = l
	st.owned[l.Author] = append(st.owned[l.Author], l.ID)
}

func (st *state) removeLink(id models.ID) {
	l, ok := st.byID[id]
	if !ok {
		return
	}
	st.links = slices.DeleteFunc(st.links, func(x *models.Link) bool { return x.ID == id })
	delete(st.byID, id)
	st.owned[l.Author] = slices.DeleteFunc(st.owned[l.Author], func(x models.ID) bool { return x == id })
	if len(st.owned[l.Author]) == 0 {
		delete(st.owned, l.Author)
	}
}

// linksOf returns the links authored by username in global order.
func (st *state) linksOf(username string) []*models.Link {
	ids := st.owned[username]
	out := make([]*models.Link, 0, len(ids))
	for _, id := range ids {
		out = append(out, st.byID[id])
	}
	return out
}

// snapshot projects the state into the persisted shape. The returned value
// shares link pointers with st and must be consumed before st changes.
func (st *state) snapshot() *models.Snapshot {
	snap := &models.Snapshot{
		Users:          make(map[string]*models.Account, len(st.accounts)),
		AllLinks:       st.links,
		CurrentUser:    st.currentUser,
		FailedAttempts: st.failed,
		Theme:          st.theme,
	}
	for username, acc := range st.accounts {
		projected := *acc
		projected.Links = st.linksOf(username)
		snap.Users[username] = &projected
	}
	return snap
}
