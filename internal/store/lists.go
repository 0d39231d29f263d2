package store

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/portalroom/internal/common"
	"github.com/dmitrijs2005/portalroom/internal/models"
)

// ListInput carries the user-supplied fields of a new list.
type ListInput struct {
	Name        string
	Description string
	IsPublic    bool
}

// CreateList adds an empty list to owner's lists.
func (s *Store) CreateList(ctx context.Context, owner string, in ListInput) (*models.List, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, common.ErrMissingListName
	}

	var created *models.List
	err := s.update(ctx, func(tx *txn) error {
		acc, err := tx.actor(owner)
		if err != nil {
			return err
		}
		created = &models.List{
			ID:          s.newID(),
			Name:        in.Name,
			Description: strings.TrimSpace(in.Description),
			Links:       []models.ID{},
			Author:      owner,
			Timestamp:   tx.now,
			IsPublic:    in.IsPublic,
		}
		acc.Lists = append(acc.Lists, created)
		tx.emit(Event{Type: EventListChanged, Actor: owner, ListID: created.ID, Detail: "created"})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created.Clone(), nil
}

// ownList finds listID among owner's own lists.
func (tx *txn) ownList(owner string, listID models.ID) (*models.List, error) {
	acc, err := tx.actor(owner)
	if err != nil {
		return nil, err
	}
	l, ok := acc.List(listID)
	if !ok {
		return nil, common.ErrListNotFound
	}
	return l, nil
}

// AddLinkToList appends an existing link to one of owner's lists.
func (s *Store) AddLinkToList(ctx context.Context, listID, linkID models.ID, owner string) error {
	return s.update(ctx, func(tx *txn) error {
		list, err := tx.ownList(owner, listID)
		if err != nil {
			return err
		}
		if _, err := tx.link(linkID); err != nil {
			return err
		}
		if !list.AddLink(linkID) {
			return common.ErrAlreadyInList
		}
		tx.emit(Event{Type: EventListChanged, Actor: owner, ListID: listID, LinkID: linkID, Detail: "link added"})
		return nil
	})
}

// RemoveLinkFromList drops a reference from one of owner's lists. It works
// for references whose link has since been deleted.
func (s *Store) RemoveLinkFromList(ctx context.Context, listID, linkID models.ID, owner string) error {
	return s.update(ctx, func(tx *txn) error {
		list, err := tx.ownList(owner, listID)
		if err != nil {
			return err
		}
		if !list.RemoveLink(linkID) {
			return common.ErrLinkNotInList
		}
		tx.emit(Event{Type: EventListChanged, Actor: owner, ListID: listID, LinkID: linkID, Detail: "link removed"})
		return nil
	})
}

// DeleteList removes one of owner's lists.
func (s *Store) DeleteList(ctx context.Context, listID models.ID, owner string) error {
	return s.update(ctx, func(tx *txn) error {
		acc, err := tx.actor(owner)
		if err != nil {
			return err
		}
		if !acc.RemoveList(listID) {
			return common.ErrListNotFound
		}
		tx.emit(Event{Type: EventListChanged, Actor: owner, ListID: listID, Detail: "deleted"})
		return nil
	})
}
