// Package chat implements the participant directory, the message log with its
// visibility rules, and the presence sweeper that evicts idle participants.
package chat

import (
	"time"

	"batepapo/internal/metrics"
	"batepapo/internal/model"
)

// Publisher receives change notifications for stored messages.
// Publish must not block.
type Publisher interface {
	Publish(event model.Event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(model.Event) {}

// Options carries the collaborators shared by the chat services
type Options struct {
	Publisher Publisher
	Metrics   *metrics.Metrics
	Now       func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Publisher == nil {
		o.Publisher = nopPublisher{}
	}
	if o.Metrics == nil {
		o.Metrics = metrics.New(nil)
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}
