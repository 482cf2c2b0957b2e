package chat

import (
	"context"
	"errors"
	"log"
	"strings"

	"batepapo/internal/model"
	"batepapo/internal/store"
)

// Directory tracks the participants of the room
type Directory struct {
	store    store.Store
	messages *Messages
	opts     Options
}

// NewDirectory creates the participant directory. Join notices go through messages.
func NewDirectory(s store.Store, messages *Messages, opts Options) *Directory {
	return &Directory{store: s, messages: messages, opts: opts.withDefaults()}
}

// Join registers name. The join notice is best effort: once the participant
// is stored, a failure to append the notice is logged and not returned.
func (d *Directory) Join(ctx context.Context, name string) (model.Participant, error) {
	if strings.TrimSpace(name) == "" {
		return model.Participant{}, model.NewValidationError("name is required")
	}

	p := model.Participant{Name: name, LastSeen: d.opts.Now()}
	if err := d.store.InsertParticipant(ctx, p); err != nil {
		return model.Participant{}, err
	}
	d.opts.Metrics.Joins.Inc()

	if _, err := d.messages.Append(ctx, model.NewStatus(name, model.JoinText)); err != nil {
		log.Printf("[Directory] ⚠️  Join notice for %q not stored: %v", name, err)
	}
	return p, nil
}

// List returns every participant in no particular order
func (d *Directory) List(ctx context.Context) ([]model.Participant, error) {
	return d.store.ListParticipants(ctx)
}

// Heartbeat marks name as seen now
func (d *Directory) Heartbeat(ctx context.Context, name string) error {
	return d.store.TouchParticipant(ctx, name, d.opts.Now())
}

// Exists reports whether name is in the room
func (d *Directory) Exists(ctx context.Context, name string) (bool, error) {
	_, err := d.store.GetParticipant(ctx, name)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, model.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}
