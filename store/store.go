// Package store persists the household ledger.
//
// A store hands out snapshots of the ledger and commits batches of mutations
// atomically: a batch is applied entirely or not at all, and concurrent
// commits are serialized.
package store

import (
	"context"

	"github.com/etnz/household"
)

// Store is the persistence collaborator of the household ledger.
type Store interface {
	// Snapshot returns the current ledger. The caller owns the returned value.
	Snapshot(ctx context.Context) (*household.Ledger, error)
	// Commit applies batch atomically.
	Commit(ctx context.Context, batch household.Batch) error
	// AddMember declares a new member.
	AddMember(ctx context.Context, m household.Member) error
}

var (
	_ Store = (*Memory)(nil)
	_ Store = (*File)(nil)
)
