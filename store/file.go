package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/etnz/household"
	"github.com/etnz/household/logger"
)

// File is a Store backed by a JSONL ledger file.
//
// Every commit rewrites the whole file into a temporary file of the same
// directory and renames it over the ledger, so readers see either the old or
// the new content. File serializes the commits of one process only.
type File struct {
	mu       sync.Mutex
	path     string
	currency string
}

// NewFile creates a store for the ledger at path. Lines without currency are
// in currency. The file is created on the first commit.
func NewFile(path, currency string) *File {
	return &File{path: path, currency: currency}
}

// Path returns the ledger file path.
func (f *File) Path() string { return f.path }

// Snapshot implements the Store interface. A missing file is an empty ledger.
func (f *File) Snapshot(ctx context.Context) (*household.Ledger, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read(ctx)
}

// Commit implements the Store interface.
func (f *File) Commit(ctx context.Context, batch household.Batch) error {
	return f.update(ctx, func(l *household.Ledger) (*household.Ledger, error) {
		return l.Apply(batch)
	}, "mutations", len(batch))
}

// AddMember implements the Store interface.
func (f *File) AddMember(ctx context.Context, m household.Member) error {
	if err := m.Validate(); err != nil {
		return err
	}
	return f.update(ctx, func(l *household.Ledger) (*household.Ledger, error) {
		return l, l.AddMember(m)
	}, "member", m.ID)
}

// update reads the ledger, changes it with change and writes it back.
func (f *File) update(ctx context.Context, change func(*household.Ledger) (*household.Ledger, error), key string, val any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	log := logger.FromContext(ctx).With().Str("file", f.path).Interface(key, val).Logger()
	current, err := f.read(ctx)
	if err != nil {
		return err
	}
	next, err := change(current)
	if err != nil {
		log.Warn().Err(err).Msg("commit rejected")
		return err
	}
	if err := f.write(next); err != nil {
		log.Error().Err(err).Msg("commit failed")
		return err
	}
	log.Info().Msg("ledger committed")
	return nil
}

func (f *File) read(ctx context.Context) (*household.Ledger, error) {
	r, err := os.Open(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		log := logger.FromContext(ctx)
		log.Debug().Str("file", f.path).Msg("ledger does not exist yet, starting empty")
		return household.NewLedger(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open ledger: %w", err)
	}
	defer r.Close()

	l, err := household.DecodeLedger(r, f.currency)
	if err != nil {
		return nil, fmt.Errorf("cannot decode ledger %q: %w", f.path, err)
	}
	return l, nil
}

// write replaces the ledger file with l.
func (f *File) write(l *household.Ledger) error {
	dir, base := filepath.Split(f.path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return fmt.Errorf("cannot create temporary ledger: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op once renamed.

	if err := household.EncodeLedger(tmp, l); err != nil {
		tmp.Close()
		return fmt.Errorf("cannot write ledger: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("cannot sync ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cannot close ledger: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("cannot replace ledger: %w", err)
	}
	return nil
}
