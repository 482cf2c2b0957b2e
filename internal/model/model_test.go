package model

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind(t *testing.T) {
	assert.True(t, KindMessage.Postable())
	assert.True(t, KindPrivateMessage.Postable())
	assert.False(t, KindStatus.Postable())
	assert.True(t, KindStatus.Valid())
	assert.False(t, Kind("shout").Valid())
}

func TestParticipantJSON(t *testing.T) {
	seen := time.UnixMilli(1700000000123)
	body, err := json.Marshal(Participant{Name: "Ana", LastSeen: seen})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ana","lastSeen":1700000000123}`, string(body))

	var p Participant
	require.NoError(t, json.Unmarshal(body, &p))
	assert.Equal(t, "Ana", p.Name)
	assert.True(t, p.LastSeen.Equal(seen))
}

func TestIdleSince(t *testing.T) {
	now := time.Now()
	p := Participant{Name: "Ana", LastSeen: now.Add(-10 * time.Second)}
	assert.True(t, p.IdleSince(now, 10*time.Second))
	assert.False(t, p.IdleSince(now.Add(-time.Millisecond), 10*time.Second))
}

func TestMessagePatch_Apply(t *testing.T) {
	m := Message{ID: "1", From: "Ana", To: Broadcast, Text: "hi", Type: KindMessage}
	text := "edited"
	kind := KindPrivateMessage
	got := MessagePatch{Text: &text, Type: &kind}.Apply(m)

	assert.Equal(t, "Ana", got.From)
	assert.Equal(t, Broadcast, got.To)
	assert.Equal(t, "edited", got.Text)
	assert.Equal(t, KindPrivateMessage, got.Type)
}

func TestValidationError(t *testing.T) {
	err := fmt.Errorf("post: %w", NewValidationError("text is required", "type is invalid"))
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "text is required; type is invalid")
	assert.False(t, IsValidation(ErrNotFound))
}
