package store

import (
	"context"
	"sync"

	"github.com/etnz/household"
	"github.com/etnz/household/logger"
)

// Memory is an in-memory Store, safe for concurrent use.
// Data is lost when the process exits.
type Memory struct {
	mu     sync.RWMutex
	ledger *household.Ledger
}

// NewMemory creates a store holding a copy of initial, or an empty ledger if nil.
func NewMemory(initial *household.Ledger) *Memory {
	if initial == nil {
		return &Memory{ledger: household.NewLedger()}
	}
	return &Memory{ledger: initial.Clone()}
}

// Snapshot implements the Store interface.
func (s *Memory) Snapshot(ctx context.Context) (*household.Ledger, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.Clone(), nil
}

// Commit implements the Store interface.
func (s *Memory) Commit(ctx context.Context, batch household.Batch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.ledger.Apply(batch)
	if err != nil {
		return err
	}
	s.ledger = next
	log := logger.FromContext(ctx)
	log.Debug().Int("mutations", len(batch)).Msg("batch committed in memory")
	return nil
}

// AddMember implements the Store interface.
func (s *Memory) AddMember(ctx context.Context, m household.Member) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.ledger.Clone()
	if err := next.AddMember(m); err != nil {
		return err
	}
	s.ledger = next
	return nil
}
