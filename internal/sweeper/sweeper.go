// Package sweeper expires participants that stopped sending heartbeats
// and announces their departure in the message log.
package sweeper

import (
	"context"
	"time"

	"github.com/LauraSouzaCastro/projeto13-batepapo-uol-api/internal/domain"
	"github.com/LauraSouzaCastro/projeto13-batepapo-uol-api/internal/log"
	"github.com/LauraSouzaCastro/projeto13-batepapo-uol-api/internal/metrics"
	"github.com/LauraSouzaCastro/projeto13-batepapo-uol-api/internal/queue"
)

type Store interface {
	FindStaleParticipants(ctx context.Context, cutoff time.Time) ([]domain.Participant, error)
	DeleteParticipantByName(ctx context.Context, name string) (bool, error)
	InsertMessage(ctx context.Context, m *domain.Message) error
}

type Sweeper struct {
	store      Store
	pub        queue.Publisher
	every      time.Duration
	staleAfter time.Duration
}

func New(store Store, pub queue.Publisher, every, staleAfter time.Duration) *Sweeper {
	return &Sweeper{store: store, pub: pub, every: every, staleAfter: staleAfter}
}

// Run ticks until ctx is cancelled. Sweeps execute sequentially in this
// goroutine, so runs cannot overlap; a failed sweep never stops the
// ticker.
func (s *Sweeper) Run(ctx context.Context) {
	t := time.NewTicker(s.every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.SweepOnce(ctx)
		}
	}
}

// SweepOnce expires every participant whose lastSeenAt fell behind the
// staleness threshold. Each participant is an independent unit: an error
// on one is logged and the rest still get processed. The leave message
// is only written when the delete actually removed the document, so each
// departure is announced at most once.
func (s *Sweeper) SweepOnce(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-s.staleAfter)
	stale, err := s.store.FindStaleParticipants(ctx, cutoff)
	if err != nil {
		log.Errorf("sweep: find stale participants: %v", err)
		return
	}

	for _, p := range stale {
		deleted, err := s.store.DeleteParticipantByName(ctx, p.Name)
		if err != nil {
			log.Errorf("sweep: delete %q: %v", p.Name, err)
			continue
		}
		if !deleted {
			continue
		}
		metrics.SweptParticipants.Inc()

		left := &domain.Message{
			From: p.Name,
			To:   domain.Broadcast,
			Text: domain.LeaveText,
			Type: domain.TypeStatus,
			Time: time.Now().Format(domain.TimeLayout),
		}
		if err := s.store.InsertMessage(ctx, left); err != nil {
			log.Errorf("sweep: leave message for %q: %v", p.Name, err)
			continue
		}
		_ = s.pub.Publish(ctx, queue.Exchange, queue.KeyParticipantLeft,
			queue.ParticipantLeft{Name: p.Name, At: left.Time}, "")
	}
}
