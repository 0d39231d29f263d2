package store

import (
	"cmp"
	"slices"
	"strings"

	"github.com/dmitrijs2005/portalroom/internal/common"
	"github.com/dmitrijs2005/portalroom/internal/models"
)

// Link returns a copy of a link.
func (s *Store) Link(id models.ID) (*models.Link, error) {
	var (
		out *models.Link
		err error
	)
	s.view(func(st *state) {
		var l *models.Link
		if l, err = st.link(id); err == nil {
			out = l.Clone()
		}
	})
	return out, err
}

// Account returns the public view of username with its links projected.
// Private lists are only included when viewer is the owner.
func (s *Store) Account(username, viewer string) (*models.Account, error) {
	var (
		out *models.Account
		err error
	)
	s.view(func(st *state) {
		acc, ok := st.accounts[username]
		if !ok {
			err = common.ErrUserNotFound
			return
		}
		out = acc.Public()
		out.Links = cloneLinks(st.linksOf(username))
		if viewer != username {
			out.Lists = slices.DeleteFunc(out.Lists, func(l *models.List) bool { return !l.IsPublic })
		}
	})
	return out, err
}

// LinkFilter narrows Links. Empty fields match everything.
type LinkFilter struct {
	// Query matches case-insensitively against title, description, tags
	// and category.
	Query    string
	Category string
	Tag      string
	Author   string
	Limit    int
}

func (f LinkFilter) match(l *models.Link) bool {
	if f.Author != "" && l.Author != f.Author {
		return false
	}
	if f.Category != "" && !strings.EqualFold(l.Category, f.Category) {
		return false
	}
	if f.Tag != "" && !slices.Contains(l.Tags, strings.ToLower(f.Tag)) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		hay := strings.ToLower(l.Title + "\n" + l.Description + "\n" + l.Category + "\n" + strings.Join(l.Tags, "\n"))
		if !strings.Contains(hay, q) {
			return false
		}
	}
	return true
}

// Links returns matching links, most recently submitted first.
func (s *Store) Links(f LinkFilter) []*models.Link {
	var out []*models.Link
	s.view(func(st *state) {
		for i := len(st.links) - 1; i >= 0; i-- {
			if f.Limit > 0 && len(out) == f.Limit {
				break
			}
			if l := st.links[i]; f.match(l) {
				out = append(out, l.Clone())
			}
		}
	})
	return out
}

// Feed returns the most recent links for user: links by followed accounts
// and the user's own when the user follows anyone, otherwise all links.
func (s *Store) Feed(user string) []*models.Link {
	var out []*models.Link
	s.view(func(st *state) {
		var follows []string
		if acc, ok := st.accounts[user]; ok {
			follows = acc.Profile.Following
		}
		for i := len(st.links) - 1; i >= 0 && len(out) < s.settings.FeedSize; i-- {
			l := st.links[i]
			if len(follows) > 0 && l.Author != user && !slices.Contains(follows, l.Author) {
				continue
			}
			out = append(out, l.Clone())
		}
	})
	return out
}

// TrendingScore ranks links by net votes plus a tenth of their views.
func TrendingScore(l *models.Link) float64 {
	return float64(l.Votes.Score()) + float64(l.Views)*0.1
}

// Trending returns the n highest scoring links; newer links win ties.
func (s *Store) Trending(n int) []*models.Link {
	var out []*models.Link
	s.view(func(st *state) {
		out = make([]*models.Link, 0, len(st.links))
		for i := len(st.links) - 1; i >= 0; i-- {
			out = append(out, st.links[i])
		}
		slices.SortStableFunc(out, func(a, b *models.Link) int {
			return cmp.Compare(TrendingScore(b), TrendingScore(a))
		})
		if n >= 0 && len(out) > n {
			out = out[:n]
		}
		out = cloneLinks(out)
	})
	return out
}

// Bookmarks returns the links user bookmarked that still exist, in
// bookmark order.
func (s *Store) Bookmarks(user string) ([]*models.Link, error) {
	var (
		out []*models.Link
		err error
	)
	s.view(func(st *state) {
		var acc *models.Account
		if acc, err = st.actor(user); err != nil {
			return
		}
		for _, id := range acc.Profile.Bookmarks {
			if l, ok := st.byID[id]; ok {
				out = append(out, l.Clone())
			}
		}
	})
	return out, err
}

// Lists returns copies of owner's lists.
func (s *Store) Lists(owner string) ([]*models.List, error) {
	var (
		out []*models.List
		err error
	)
	s.view(func(st *state) {
		var acc *models.Account
		if acc, err = st.actor(owner); err != nil {
			return
		}
		for _, l := range acc.Lists {
			out = append(out, l.Clone())
		}
	})
	return out, err
}

// ResolveList returns one of owner's lists together with the links it
// references, in list order. References to deleted links are skipped.
func (s *Store) ResolveList(listID models.ID, owner string) (*models.List, []*models.Link, error) {
	var (
		list  *models.List
		links []*models.Link
		err   error
	)
	s.view(func(st *state) {
		acc, aerr := st.actor(owner)
		if aerr != nil {
			err = aerr
			return
		}
		l, ok := acc.List(listID)
		if !ok {
			err = common.ErrListNotFound
			return
		}
		list = l.Clone()
		links = make([]*models.Link, 0, len(l.Links))
		for _, id := range l.Links {
			if link, ok := st.byID[id]; ok {
				links = append(links, link.Clone())
			}
		}
	})
	return list, links, err
}

func cloneLinks(in []*models.Link) []*models.Link {
	out := make([]*models.Link, len(in))
	for i, l := range in {
		out[i] = l.Clone()
	}
	return out
}
