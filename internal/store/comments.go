package store

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/portalroom/internal/common"
	"github.com/dmitrijs2005/portalroom/internal/models"
)

// AddComment appends a comment and credits the commenter with karma.
func (s *Store) AddComment(ctx context.Context, id models.ID, author, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, common.ErrEmptyComment
	}

	var created models.Comment
	err := s.update(ctx, func(tx *txn) error {
		acc, err := tx.actor(author)
		if err != nil {
			return err
		}
		l, err := tx.link(id)
		if err != nil {
			return err
		}

		created = models.Comment{ID: s.newID(), Author: author, Text: text, Timestamp: tx.now}
		l.Comments = append(l.Comments, created)

		acc.Profile.Karma += s.settings.KarmaPerComment
		tx.awardBadges(acc)
		tx.emit(Event{Type: EventCommentAdded, Actor: author, LinkID: id, Detail: string(created.ID)})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteComment removes a comment. Only its author may delete it and no
// karma is taken back.
func (s *Store) DeleteComment(ctx context.Context, id, commentID models.ID, requester string) error {
	return s.update(ctx, func(tx *txn) error {
		if _, err := tx.actor(requester); err != nil {
			return err
		}
		l, err := tx.link(id)
		if err != nil {
			return err
		}
		c, ok := l.Comment(commentID)
		if !ok {
			return common.ErrCommentNotFound
		}
		if c.Author != requester {
			return common.ErrNotAuthor
		}
		l.RemoveComment(commentID)
		tx.emit(Event{Type: EventCommentDeleted, Actor: requester, LinkID: id, Detail: string(commentID)})
		return nil
	})
}
