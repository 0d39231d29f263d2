package store

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/portalroom/internal/common"
	"github.com/dmitrijs2005/portalroom/internal/models"
)

// LinkInput carries the user-supplied fields of a submission.
type LinkInput struct {
	URL         string
	Title       string
	Description string
	Tags        []string
	Category    string
}

// SubmitLink adds a link to the global collection, credits the author with
// karma and re-evaluates badges.
func (s *Store) SubmitLink(ctx context.Context, author string, in LinkInput) (*models.Link, error) {
	in.URL = strings.TrimSpace(in.URL)
	in.Title = strings.TrimSpace(in.Title)
	if err := validateURL(in.URL); err != nil {
		return nil, err
	}
	if in.Title == "" {
		return nil, common.ErrMissingTitle
	}
	category := strings.ToLower(strings.TrimSpace(in.Category))
	if category == "" {
		category = models.DefaultCategory
	}

	var created *models.Link
	err := s.update(ctx, func(tx *txn) error {
		acc, err := tx.actor(author)
		if err != nil {
			return err
		}
		for _, l := range tx.links {
			if l.URL == in.URL {
				return common.ErrDuplicateURL
			}
		}

		created = &models.Link{
			ID:           s.newID(),
			URL:          in.URL,
			Title:        in.Title,
			Description:  strings.TrimSpace(in.Description),
			Category:     category,
			Tags:         NormalizeTags(in.Tags),
			Author:       author,
			Timestamp:    tx.now,
			Comments:     []models.Comment{},
			Votes:        models.Votes{Up: []string{}, Down: []string{}},
			BookmarkedBy: []string{},
		}
		tx.addLink(created)

		acc.Profile.Karma += s.settings.KarmaPerLink
		tx.awardBadges(acc)
		tx.emit(Event{Type: EventLinkSubmitted, Actor: author, LinkID: created.ID, Detail: created.URL})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created.Clone(), nil
}

// EditLink changes the descriptive fields of a link. Only the author may
// edit; the URL is fixed once submitted.
func (s *Store) EditLink(ctx context.Context, id models.ID, requester string, in LinkInput) (*models.Link, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, common.ErrMissingTitle
	}

	var edited *models.Link
	err := s.update(ctx, func(tx *txn) error {
		if _, err := tx.actor(requester); err != nil {
			return err
		}
		l, err := tx.link(id)
		if err != nil {
			return err
		}
		if l.Author != requester {
			return common.ErrNotAuthor
		}
		l.Title = in.Title
		l.Description = strings.TrimSpace(in.Description)
		l.Tags = NormalizeTags(in.Tags)
		if c := strings.ToLower(strings.TrimSpace(in.Category)); c != "" {
			l.Category = c
		}
		edited = l
		tx.emit(Event{Type: EventLinkEdited, Actor: requester, LinkID: id})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return edited.Clone(), nil
}

// DeleteLink removes a link from the global collection and so from its
// author's projection. Lists and bookmark sets that reference it are left
// alone.
func (s *Store) DeleteLink(ctx context.Context, id models.ID, requester string) error {
	return s.update(ctx, func(tx *txn) error {
		if _, err := tx.actor(requester); err != nil {
			return err
		}
		l, err := tx.link(id)
		if err != nil {
			return err
		}
		if l.Author != requester {
			return common.ErrNotAuthor
		}
		tx.removeLink(id)
		tx.emit(Event{Type: EventLinkDeleted, Actor: requester, LinkID: id})
		return nil
	})
}

// IncrementViews records one view of a link and returns the new count.
func (s *Store) IncrementViews(ctx context.Context, id models.ID) (int, error) {
	var views int
	err := s.update(ctx, func(tx *txn) error {
		l, err := tx.link(id)
		if err != nil {
			return err
		}
		l.Views++
		views = l.Views
		return nil
	})
	return views, err
}
