package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"batepapo/internal/model"
	"batepapo/internal/store"
)

// Default presence timings. StaleAfter is shorter than Interval, so a
// participant has to heartbeat more often than every StaleAfter.
const (
	DefaultSweepInterval = 15 * time.Second
	DefaultStaleAfter    = 10 * time.Second
)

// Sweeper periodically evicts participants that stopped sending heartbeats
// and appends a leave notice for each of them.
type Sweeper struct {
	store      store.Store
	messages   *Messages
	interval   time.Duration
	staleAfter time.Duration
	opts       Options

	busy atomic.Bool
	wg   sync.WaitGroup
}

// NewSweeper creates a sweeper. Zero durations fall back to the defaults.
func NewSweeper(s store.Store, messages *Messages, interval, staleAfter time.Duration, opts Options) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	return &Sweeper{
		store:      s,
		messages:   messages,
		interval:   interval,
		staleAfter: staleAfter,
		opts:       opts.withDefaults(),
	}
}

// Sweep runs one cycle and returns the names it evicted. Errors on one
// participant do not stop the others; they are joined into the result.
func (s *Sweeper) Sweep(ctx context.Context) ([]string, error) {
	participants, err := s.store.ListParticipants(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot participants: %w", err)
	}

	now := s.opts.Now()
	cutoff := now.Add(-s.staleAfter)

	var evicted []string
	var errs []error
	for _, p := range participants {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if !p.IdleSince(now, s.staleAfter) {
			continue
		}

		// the store re-checks the cutoff, so a heartbeat received since the
		// snapshot keeps the participant in the room
		removed, err := s.store.RemoveIdleParticipant(ctx, p.Name, cutoff)
		if err != nil {
			errs = append(errs, fmt.Errorf("remove %q: %w", p.Name, err))
			continue
		}
		if !removed {
			continue
		}

		evicted = append(evicted, p.Name)
		s.opts.Metrics.Evictions.Inc()

		if _, err := s.messages.Append(ctx, model.NewStatus(p.Name, model.LeaveText)); err != nil {
			errs = append(errs, fmt.Errorf("leave notice for %q: %w", p.Name, err))
		}
	}

	return evicted, errors.Join(errs...)
}

// tick runs a sweep unless one is already in progress. It never panics.
func (s *Sweeper) tick(ctx context.Context) {
	if !s.busy.CompareAndSwap(false, true) {
		s.opts.Metrics.SweepsSkipped.Inc()
		log.Printf("[Sweeper] ⏭️  Previous sweep still running, skipping tick")
		return
	}
	defer s.busy.Store(false)

	start := time.Now()
	defer func() {
		s.opts.Metrics.SweepDuration.Observe(time.Since(start).Seconds())
		if r := recover(); r != nil {
			s.opts.Metrics.SweepFailures.Inc()
			log.Printf("[Sweeper] ❌ Sweep panicked: %v", r)
		}
	}()

	evicted, err := s.Sweep(ctx)
	for _, name := range evicted {
		log.Printf("[Sweeper] 👋 Removed idle participant %q", name)
	}
	if err != nil {
		s.opts.Metrics.SweepFailures.Inc()
		if errors.Is(err, model.ErrStoreUnavailable) {
			log.Printf("[Sweeper] ⚠️  Store unavailable, retrying next tick: %v", err)
			return
		}
		log.Printf("[Sweeper] ❌ Sweep failed: %v", err)
	}
}

// Run sweeps every interval until ctx is cancelled, then waits for the
// sweep in flight to finish.
func (s *Sweeper) Run(ctx context.Context) {
	log.Printf("[Sweeper] 🚀 Started (interval=%s, stale after=%s)", s.interval, s.staleAfter)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.wg.Wait()
			log.Printf("[Sweeper] Stopped")
			return
		case <-ticker.C:
			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				s.tick(ctx)
			}()
		}
	}
}
