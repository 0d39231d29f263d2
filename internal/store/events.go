package store

import (
	"context"
	"time"

	"github.com/dmitrijs2005/portalroom/internal/logging"
	"github.com/dmitrijs2005/portalroom/internal/models"
)

type EventType string

const (
	EventUserRegistered  EventType = "user.registered"
	EventUserLoggedIn    EventType = "user.logged_in"
	EventUserLoggedOut   EventType = "user.logged_out"
	EventProfileUpdated  EventType = "user.profile_updated"
	EventUserFollowed    EventType = "user.followed"
	EventUserUnfollowed  EventType = "user.unfollowed"
	EventBadgeAwarded    EventType = "user.badge_awarded"
	EventLinkSubmitted   EventType = "link.submitted"
	EventLinkEdited      EventType = "link.edited"
	EventLinkDeleted     EventType = "link.deleted"
	EventLinkVoted       EventType = "link.voted"
	EventBookmarkToggled EventType = "link.bookmark_toggled"
	EventCommentAdded    EventType = "comment.added"
	EventCommentDeleted  EventType = "comment.deleted"
	EventListChanged     EventType = "list.changed"
	EventDataImported    EventType = "data.imported"
	EventDataReset       EventType = "data.reset"
)

// Event describes a committed change. Events are delivered after the change
// is persisted and outside the store's lock.
type Event struct {
	Type   EventType `json:"type"`
	Actor  string    `json:"actor,omitempty"`
	LinkID models.ID `json:"linkId,omitempty"`
	ListID models.ID `json:"listId,omitempty"`
	Detail string    `json:"detail,omitempty"`
	At     time.Time `json:"at"`
}

// Notifier receives committed events. Implementations must not call back
// into the store synchronously.
type Notifier interface {
	Notify(ctx context.Context, e Event)
}

type NotifierFunc func(ctx context.Context, e Event)

func (f NotifierFunc) Notify(ctx context.Context, e Event) { f(ctx, e) }

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, Event) {}

// LogNotifier writes each event to a logger at info level.
type LogNotifier struct {
	Log logging.Logger
}

func (n LogNotifier) Notify(ctx context.Context, e Event) {
	args := []any{"type", e.Type}
	if e.Actor != "" {
		args = append(args, "actor", e.Actor)
	}
	if e.LinkID != "" {
		args = append(args, "link", e.LinkID)
	}
	if e.ListID != "" {
		args = append(args, "list", e.ListID)
	}
	if e.Detail != "" {
		args = append(args, "detail", e.Detail)
	}
	n.Log.Info(ctx, "event", args...)
}

// Fanout delivers every event to each notifier in order.
type Fanout []Notifier

func (f Fanout) Notify(ctx context.Context, e Event) {
	for _, n := range f {
		n.Notify(ctx, e)
	}
}
