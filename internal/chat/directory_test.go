package chat

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"batepapo/internal/model"
	"batepapo/internal/store"
)

// flakyStore fails selected operations with model.ErrStoreUnavailable
type flakyStore struct {
	*store.Memory
	failAppend bool
	failList   bool
}

func (s *flakyStore) AppendMessage(ctx context.Context, m model.Message) error {
	if s.failAppend {
		return model.ErrStoreUnavailable
	}
	return s.Memory.AppendMessage(ctx, m)
}

func (s *flakyStore) ListParticipants(ctx context.Context) ([]model.Participant, error) {
	if s.failList {
		return nil, model.ErrStoreUnavailable
	}
	return s.Memory.ListParticipants(ctx)
}

func newDirectory(s store.Store, clock *fakeClock) *Directory {
	opts := Options{Now: clock.Now}
	return NewDirectory(s, NewMessages(s, opts), opts)
}

func TestJoin(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	clock := newFakeClock()
	d := newDirectory(s, clock)

	p, err := d.Join(ctx, "Ana")
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.Name)
	assert.True(t, p.LastSeen.Equal(clock.Now()))

	_, err = d.Join(ctx, "Ana")
	assert.ErrorIs(t, err, model.ErrConflict)

	_, err = d.Join(ctx, "")
	assert.True(t, model.IsValidation(err))

	list, err := d.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Ana", list[0].Name)

	msgs, err := s.ListMessages(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 1, "only the successful join is announced")
	assert.Equal(t, model.KindStatus, msgs[0].Type)
	assert.Equal(t, model.Broadcast, msgs[0].To)
	assert.Equal(t, "Ana", msgs[0].From)
	assert.Equal(t, model.JoinText, msgs[0].Text)
}

func TestJoin_NoticeIsBestEffort(t *testing.T) {
	ctx := context.Background()
	s := &flakyStore{Memory: store.NewMemory(), failAppend: true}
	d := newDirectory(s, newFakeClock())

	_, err := d.Join(ctx, "Ana")
	require.NoError(t, err)

	ok, err := d.Exists(ctx, "Ana")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestHeartbeat(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	clock := newFakeClock()
	d := newDirectory(s, clock)

	assert.ErrorIs(t, d.Heartbeat(ctx, "Ana"), model.ErrNotFound)

	_, err := d.Join(ctx, "Ana")
	require.NoError(t, err)

	clock.Advance(7 * time.Second)
	require.NoError(t, d.Heartbeat(ctx, "Ana"))
	require.NoError(t, d.Heartbeat(ctx, "Ana"))

	p, err := s.GetParticipant(ctx, "Ana")
	require.NoError(t, err)
	assert.True(t, p.LastSeen.Equal(clock.Now()))

	ok, err := d.Exists(ctx, "Bia")
	require.NoError(t, err)
	assert.False(t, ok)
}
