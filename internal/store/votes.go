package store

import (
	"context"

	"github.com/dmitrijs2005/portalroom/internal/common"
	"github.com/dmitrijs2005/portalroom/internal/models"
)

// VoteResult is the link's vote state after a vote.
type VoteResult struct {
	LinkID      models.ID
	State       models.VoteDirection
	Up          int
	Down        int
	Score       int
	AuthorKarma int
}

// Vote applies a vote. Repeating the current direction retracts it, the
// opposite direction replaces it. The author's karma moves by the change in
// the link's score, so a switch from up to down costs two.
func (s *Store) Vote(ctx context.Context, id models.ID, voter string, dir models.VoteDirection) (*VoteResult, error) {
	if dir != models.VoteUp && dir != models.VoteDown {
		return nil, common.ErrInvalidDirection
	}

	var res *VoteResult
	err := s.update(ctx, func(tx *txn) error {
		if _, err := tx.actor(voter); err != nil {
			return err
		}
		l, err := tx.link(id)
		if err != nil {
			return err
		}

		next := dir
		if l.Votes.Of(voter) == dir {
			next = models.VoteNone
		}
		before := l.Votes.Score()
		l.Votes.Set(voter, next)
		delta := l.Votes.Score() - before

		res = &VoteResult{
			LinkID: id,
			State:  next,
			Up:     len(l.Votes.Up),
			Down:   len(l.Votes.Down),
			Score:  l.Votes.Score(),
		}
		if author, ok := tx.accounts[l.Author]; ok {
			author.Profile.Karma += delta
			tx.awardBadges(author)
			res.AuthorKarma = author.Profile.Karma
		}
		tx.emit(Event{Type: EventLinkVoted, Actor: voter, LinkID: id, Detail: string(next)})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
