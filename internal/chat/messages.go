package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"batepapo/internal/model"
	"batepapo/internal/store"
)

// Messages is the append-only chat log with author-scoped edits
type Messages struct {
	store store.Store
	opts  Options
}

// NewMessages creates the message service on top of s
func NewMessages(s store.Store, opts Options) *Messages {
	return &Messages{store: s, opts: opts.withDefaults()}
}

// Append assigns an id and timestamp to m and persists it
func (ms *Messages) Append(ctx context.Context, m model.Message) (model.Message, error) {
	if strings.TrimSpace(m.Text) == "" {
		return model.Message{}, model.NewValidationError("text is required")
	}
	if !m.Type.Valid() {
		return model.Message{}, model.NewValidationError(fmt.Sprintf("type %q is invalid", m.Type))
	}

	now := ms.opts.Now()
	m.ID = uuid.NewString()
	m.CreatedAt = now
	m.Time = now.Format(model.TimeLayout)

	if err := ms.store.AppendMessage(ctx, m); err != nil {
		return model.Message{}, err
	}

	ms.opts.Metrics.Messages.WithLabelValues(string(m.Type)).Inc()
	ms.opts.Publisher.Publish(model.Event{Type: model.EventMessageCreated, Message: m})
	return m, nil
}

// Post appends a message written by participant from.
// It fails with model.ErrNotFound when from is not in the room.
func (ms *Messages) Post(ctx context.Context, from, to, text string, kind model.Kind) (model.Message, error) {
	if !kind.Postable() {
		return model.Message{}, model.NewValidationError(fmt.Sprintf("type %q cannot be posted", kind))
	}
	if _, err := ms.store.GetParticipant(ctx, from); err != nil {
		return model.Message{}, err
	}

	return ms.Append(ctx, model.Message{From: from, To: to, Text: text, Type: kind})
}

// ListFor returns the messages requester may see, most recent first.
// limit <= 0 returns all of them.
func (ms *Messages) ListFor(ctx context.Context, requester string, limit int) ([]model.Message, error) {
	all, err := ms.store.ListMessages(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(all, requester, limit), nil
}

// authored loads message id and checks that requester wrote it.
// Status notices are owned by the system and cannot be changed.
func (ms *Messages) authored(ctx context.Context, id, requester string) (model.Message, error) {
	m, err := ms.store.GetMessage(ctx, id)
	if err != nil {
		return model.Message{}, err
	}
	if m.From != requester || m.Type == model.KindStatus {
		return model.Message{}, model.ErrForbidden
	}
	return m, nil
}

// UpdateAuthored merges patch into message id if requester is its author
func (ms *Messages) UpdateAuthored(ctx context.Context, id, requester string, patch model.MessagePatch) (model.Message, error) {
	if patch.Type != nil && !patch.Type.Postable() {
		return model.Message{}, model.NewValidationError(fmt.Sprintf("type %q cannot be posted", *patch.Type))
	}
	if patch.Text != nil && strings.TrimSpace(*patch.Text) == "" {
		return model.Message{}, model.NewValidationError("text is required")
	}

	m, err := ms.authored(ctx, id, requester)
	if err != nil {
		return model.Message{}, err
	}

	updated := patch.Apply(m)
	if err := ms.store.UpdateMessage(ctx, updated); err != nil {
		return model.Message{}, err
	}

	ms.opts.Publisher.Publish(model.Event{Type: model.EventMessageUpdated, Message: updated})
	return updated, nil
}

// DeleteAuthored removes message id if requester is its author
func (ms *Messages) DeleteAuthored(ctx context.Context, id, requester string) error {
	m, err := ms.authored(ctx, id, requester)
	if err != nil {
		return err
	}
	if err := ms.store.DeleteMessage(ctx, id); err != nil {
		return err
	}

	ms.opts.Publisher.Publish(model.Event{Type: model.EventMessageDeleted, Message: m})
	return nil
}
