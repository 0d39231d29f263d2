package store

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/portalroom/internal/common"
	"github.com/dmitrijs2005/portalroom/internal/models"
)

const maxBioLen = 200

// UpdateProfile replaces the bio of username.
func (s *Store) UpdateProfile(ctx context.Context, username, bio string) (*models.Account, error) {
	bio = strings.TrimSpace(bio)
	if utf8.RuneCountInString(bio) > maxBioLen {
		return nil, common.ErrBioTooLong
	}

	var updated *models.Account
	err := s.update(ctx, func(tx *txn) error {
		acc, err := tx.actor(username)
		if err != nil {
			return err
		}
		acc.Profile.Bio = bio
		updated = acc
		tx.emit(Event{Type: EventProfileUpdated, Actor: username})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated.Public(), nil
}

// Follow makes follower follow target. Following twice is a no-op.
func (s *Store) Follow(ctx context.Context, follower, target string) error {
	if follower == target {
		return common.ErrSelfFollow
	}
	return s.update(ctx, func(tx *txn) error {
		acc, err := tx.actor(follower)
		if err != nil {
			return err
		}
		other, ok := tx.accounts[target]
		if !ok {
			return common.ErrUserNotFound
		}
		if acc.AddFollowing(target) {
			tx.emit(Event{Type: EventUserFollowed, Actor: follower, Detail: target})
		}
		other.AddFollower(follower)
		return nil
	})
}

// Unfollow reverses Follow. Unfollowing someone not followed is a no-op.
func (s *Store) Unfollow(ctx context.Context, follower, target string) error {
	return s.update(ctx, func(tx *txn) error {
		acc, err := tx.actor(follower)
		if err != nil {
			return err
		}
		if acc.RemoveFollowing(target) {
			tx.emit(Event{Type: EventUserUnfollowed, Actor: follower, Detail: target})
		}
		if other, ok := tx.accounts[target]; ok {
			other.RemoveFollower(follower)
		}
		return nil
	})
}

// Theme returns the persisted theme preference.
func (s *Store) Theme() string {
	var theme string
	s.view(func(st *state) { theme = st.theme })
	return theme
}

func (s *Store) SetTheme(ctx context.Context, theme string) error {
	if theme != models.ThemeDark && theme != models.ThemeLight {
		return common.ErrInvalidTheme
	}
	return s.update(ctx, func(tx *txn) error {
		tx.theme = theme
		return nil
	})
}
