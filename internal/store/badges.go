package store

import (
	"context"

	"github.com/dmitrijs2005/portalroom/internal/common"
	"github.com/dmitrijs2005/portalroom/internal/models"
)

const (
	BadgeContributor = "contributor"
	BadgeExpert      = "expert"
	BadgeActive      = "active"

	contributorKarma = 100
	expertKarma      = 500
	activeLinks      = 10
)

// EarnedBadges returns the threshold badges an account with the given karma
// and link count qualifies for.
func EarnedBadges(karma, links int) []string {
	var out []string
	if karma >= contributorKarma {
		out = append(out, BadgeContributor)
	}
	if karma >= expertKarma {
		out = append(out, BadgeExpert)
	}
	if links >= activeLinks {
		out = append(out, BadgeActive)
	}
	return out
}

// awardBadges adds newly earned badges to acc. Badges are never removed.
func (tx *txn) awardBadges(acc *models.Account) []string {
	var awarded []string
	for _, b := range EarnedBadges(acc.Profile.Karma, len(tx.owned[acc.Username])) {
		if acc.AddBadge(b) {
			awarded = append(awarded, b)
			tx.emit(Event{Type: EventBadgeAwarded, Actor: acc.Username, Detail: b})
		}
	}
	return awarded
}

// RecomputeBadges re-evaluates the thresholds for username and returns the
// badges awarded by this call.
func (s *Store) RecomputeBadges(ctx context.Context, username string) ([]string, error) {
	var awarded []string
	err := s.update(ctx, func(tx *txn) error {
		acc, ok := tx.accounts[username]
		if !ok {
			return common.ErrUserNotFound
		}
		awarded = tx.awardBadges(acc)
		return nil
	})
	return awarded, err
}
