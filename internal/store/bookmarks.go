package store

import (
	"context"
	"strconv"

	"github.com/dmitrijs2005/portalroom/internal/models"
)

// ToggleBookmark flips whether user has bookmarked the link and returns the
// new state. The account's bookmark set decides the current state; the
// link's bookmarkedBy set is brought in line with it.
func (s *Store) ToggleBookmark(ctx context.Context, id models.ID, user string) (bool, error) {
	var on bool
	err := s.update(ctx, func(tx *txn) error {
		acc, err := tx.actor(user)
		if err != nil {
			return err
		}
		l, err := tx.link(id)
		if err != nil {
			return err
		}

		on = !acc.HasBookmark(id)
		if on {
			acc.AddBookmark(id)
			l.AddBookmarkedBy(user)
		} else {
			acc.RemoveBookmark(id)
			l.RemoveBookmarkedBy(user)
		}
		tx.emit(Event{Type: EventBookmarkToggled, Actor: user, LinkID: id, Detail: strconv.FormatBool(on)})
		return nil
	})
	return on, err
}
