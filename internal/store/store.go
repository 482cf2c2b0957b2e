// Package store persists participants and messages.
//
// Implementations must make participant insertion an atomic insert-if-absent and
// must wrap backend failures with model.ErrStoreUnavailable.
package store

import (
	"context"
	"time"

	"batepapo/internal/model"
)

// Store is the persistence collaborator of the chat services
type Store interface {
	// InsertParticipant adds p, failing with model.ErrConflict if the name is taken.
	InsertParticipant(ctx context.Context, p model.Participant) error
	GetParticipant(ctx context.Context, name string) (model.Participant, error)
	ListParticipants(ctx context.Context) ([]model.Participant, error)
	// TouchParticipant sets LastSeen, failing with model.ErrNotFound if absent.
	TouchParticipant(ctx context.Context, name string, at time.Time) error
	// RemoveIdleParticipant deletes name only if its LastSeen is at or before cutoff.
	RemoveIdleParticipant(ctx context.Context, name string, cutoff time.Time) (bool, error)

	// AppendMessage stores m as given; ID and CreatedAt must already be set.
	AppendMessage(ctx context.Context, m model.Message) error
	GetMessage(ctx context.Context, id string) (model.Message, error)
	// ListMessages returns every message, most recent first.
	ListMessages(ctx context.Context) ([]model.Message, error)
	UpdateMessage(ctx context.Context, m model.Message) error
	DeleteMessage(ctx context.Context, id string) error

	Close() error
}
