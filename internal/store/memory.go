package store

import (
	"context"
	"sync"
	"time"

	"github.com/samber/lo"

	"batepapo/internal/model"
)

// Memory is a Store kept in process memory
type Memory struct {
	mu           sync.RWMutex
	participants map[string]model.Participant
	messages     []model.Message // insertion order
}

// NewMemory creates an empty Memory store
func NewMemory() *Memory {
	return &Memory{participants: make(map[string]model.Participant)}
}

func (s *Memory) InsertParticipant(_ context.Context, p model.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.participants[p.Name]; ok {
		return model.ErrConflict
	}
	s.participants[p.Name] = p
	return nil
}

func (s *Memory) GetParticipant(_ context.Context, name string) (model.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.participants[name]
	if !ok {
		return model.Participant{}, model.ErrNotFound
	}
	return p, nil
}

func (s *Memory) ListParticipants(_ context.Context) ([]model.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lo.Values(s.participants), nil
}

func (s *Memory) TouchParticipant(_ context.Context, name string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.participants[name]
	if !ok {
		return model.ErrNotFound
	}
	p.LastSeen = at
	s.participants[name] = p
	return nil
}

func (s *Memory) RemoveIdleParticipant(_ context.Context, name string, cutoff time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.participants[name]
	if !ok || p.LastSeen.After(cutoff) {
		return false, nil
	}
	delete(s.participants, name)
	return true, nil
}

func (s *Memory) AppendMessage(_ context.Context, m model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, m)
	return nil
}

func (s *Memory) GetMessage(_ context.Context, id string) (model.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := lo.Find(s.messages, func(m model.Message) bool { return m.ID == id })
	if !ok {
		return model.Message{}, model.ErrNotFound
	}
	return m, nil
}

func (s *Memory) ListMessages(_ context.Context) ([]model.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Message, 0, len(s.messages))
	for i := len(s.messages) - 1; i >= 0; i-- {
		out = append(out, s.messages[i])
	}
	return out, nil
}

func (s *Memory) UpdateMessage(_ context.Context, m model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, i, ok := lo.FindIndexOf(s.messages, func(old model.Message) bool { return old.ID == m.ID })
	if !ok {
		return model.ErrNotFound
	}
	s.messages[i] = m
	return nil
}

func (s *Memory) DeleteMessage(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, i, ok := lo.FindIndexOf(s.messages, func(m model.Message) bool { return m.ID == id })
	if !ok {
		return model.ErrNotFound
	}
	s.messages = append(s.messages[:i], s.messages[i+1:]...)
	return nil
}

func (s *Memory) Close() error { return nil }
