// Package sequence issues unique monotonically increasing ids from named
// persistent counters. Counters live in the database and are advanced under
// a row lock, so the allocator is safe across instances.
package sequence

import (
	"errors"
	"fmt"

	"aurum/internal/repositories"
)

var ErrCounterNotFound = errors.New("sequence counter not found")

// Allocator hands out the next value of a named counter.
type Allocator interface {
	Next(name string) (uint64, error)
}

type allocator struct {
	repo repositories.LedgerRepository
}

func NewAllocator(repo repositories.LedgerRepository) Allocator {
	if repo == nil {
		panic("repo is required")
	}
	return &allocator{repo: repo}
}

func (a *allocator) Next(name string) (uint64, error) {
	value, err := a.repo.NextSequence(name)
	if err != nil {
		if errors.Is(err, repositories.ErrSequenceNotFound) {
			return 0, fmt.Errorf("%w: %s", ErrCounterNotFound, name)
		}
		return 0, fmt.Errorf("failed to allocate id from %q: %w", name, err)
	}
	return value, nil
}
