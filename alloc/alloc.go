package alloc

import (
	"errors"
	"fmt"
	"sync"
)

// ErrOutOfMemory is returned when an allocation cannot be satisfied.
var ErrOutOfMemory = errors.New("out of memory")

// Sizes charged for the fixed-size parts of a tree.
const (
	// BoolSize is charged for a boolean value holder or array element.
	BoolSize = 1
	// WordSize is charged for an int64, a double, or a pointer-sized slot.
	WordSize = 8
)

// StringSize returns the number of bytes charged for holding s,
// terminator included.
func StringSize(s string) int {
	return len(s) + 1
}

// Allocator accounts for memory owned by a parameter tree.
type Allocator interface {
	// Allocate reserves size bytes or returns an error wrapping ErrOutOfMemory.
	Allocate(size int) error
	// Deallocate releases size bytes previously reserved.
	Deallocate(size int)
}

type unbounded struct{}

func (unbounded) Allocate(int) error { return nil }

func (unbounded) Deallocate(int) {}

// Default returns an allocator that never fails.
//
//nolint:ireturn // the strategy is consumed through the interface
func Default() Allocator {
	return unbounded{}
}

// Budget is an Allocator with a hard limit on the bytes in use.
type Budget struct {
	mu    sync.Mutex
	limit int
	inUse int
	peak  int
	calls int
}

// NewBudget returns a Budget that fails any allocation that would push
// the bytes in use above limit.
func NewBudget(limit int) *Budget {
	return &Budget{limit: limit}
}

// Allocate implements Allocator.
func (b *Budget) Allocate(size int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.calls++

	if size < 0 || b.inUse+size > b.limit {
		return fmt.Errorf("%w: %d bytes requested, %d of %d in use", ErrOutOfMemory, size, b.inUse, b.limit)
	}

	b.inUse += size
	if b.inUse > b.peak {
		b.peak = b.inUse
	}

	return nil
}

// Deallocate implements Allocator.
func (b *Budget) Deallocate(size int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.inUse -= size
}

// InUse returns the bytes currently allocated.
func (b *Budget) InUse() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.inUse
}

// Peak returns the highest number of bytes ever in use at once.
func (b *Budget) Peak() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.peak
}

// Calls returns how many Allocate calls were made, failed ones included.
func (b *Budget) Calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.calls
}

// SetLimit changes the limit; bytes already in use are kept.
func (b *Budget) SetLimit(limit int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.limit = limit
}
