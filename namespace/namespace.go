// Package namespace tracks the two path accumulators used while walking a
// parameter document: the node namespace, joined by "/", and the parameter
// namespace, joined by ".".
package namespace

import (
	"fmt"
	"strings"

	"github.com/0xalexb/hjarta-params/alloc"
)

// Kind selects one of the two accumulators.
type Kind uint8

const (
	// Node is the accumulator of node name segments.
	Node Kind = iota
	// Parameter is the accumulator of parameter name segments.
	Parameter
)

// Separator returns the string segments of kind k are joined with.
func (k Kind) Separator() string {
	if k == Node {
		return "/"
	}

	return "."
}

func (k Kind) String() string {
	if k == Node {
		return "node"
	}

	return "parameter"
}

type accumulator struct {
	value string
	count int
}

// Tracker holds the node and parameter namespaces. It is not safe for
// concurrent use.
type Tracker struct {
	alloc alloc.Allocator
	node  accumulator
	param accumulator
}

// NewTracker returns an empty Tracker charging its strings to a.
func NewTracker(a alloc.Allocator) *Tracker {
	return &Tracker{alloc: a}
}

func (t *Tracker) accumulator(kind Kind) *accumulator {
	if kind == Node {
		return &t.node
	}

	return &t.param
}

// Value returns the accumulated namespace of kind, or "" when nothing is pushed.
func (t *Tracker) Value(kind Kind) string {
	return t.accumulator(kind).value
}

// Count returns the number of segments pushed onto kind.
func (t *Tracker) Count(kind Kind) int {
	return t.accumulator(kind).count
}

// Push appends segment to the namespace of kind. The separator is only
// inserted when the current value does not already end with it.
func (t *Tracker) Push(segment string, kind Kind) error {
	acc := t.accumulator(kind)

	if acc.count == 0 {
		err := t.alloc.Allocate(alloc.StringSize(segment))
		if err != nil {
			return fmt.Errorf("pushing %s namespace %q: %w", kind, segment, err)
		}

		acc.value = strings.Clone(segment)
		acc.count = 1

		return nil
	}

	sep := kind.Separator()
	if strings.HasSuffix(acc.value, sep) {
		sep = ""
	}

	joined := acc.value + sep + segment

	err := t.alloc.Allocate(alloc.StringSize(joined))
	if err != nil {
		return fmt.Errorf("pushing %s namespace %q: %w", kind, segment, err)
	}

	t.alloc.Deallocate(alloc.StringSize(acc.value))
	acc.value = joined
	acc.count++

	return nil
}

// Pop removes the last pushed segment of kind. Popping an empty namespace
// is a no-op. The value is cut at the last separator, so a segment that
// itself contains the separator is only partially removed.
func (t *Tracker) Pop(kind Kind) error {
	acc := t.accumulator(kind)

	switch acc.count {
	case 0:
		return nil
	case 1:
		t.alloc.Deallocate(alloc.StringSize(acc.value))
		*acc = accumulator{}

		return nil
	}

	sep := kind.Separator()
	last := -1

	for offset := 0; ; {
		idx := strings.Index(acc.value[offset:], sep)
		if idx < 0 {
			break
		}

		last = offset + idx
		offset = last + 1
	}

	if last >= 0 {
		truncated := acc.value[:last]

		err := t.alloc.Allocate(alloc.StringSize(truncated))
		if err != nil {
			return fmt.Errorf("popping %s namespace: %w", kind, err)
		}

		t.alloc.Deallocate(alloc.StringSize(acc.value))
		acc.value = truncated
	}

	acc.count--

	return nil
}

// Replace discards the namespace of kind and installs value with count segments.
func (t *Tracker) Replace(value string, count int, kind Kind) error {
	acc := t.accumulator(kind)

	if count == 0 {
		t.release(acc)

		return nil
	}

	err := t.alloc.Allocate(alloc.StringSize(value))
	if err != nil {
		return fmt.Errorf("replacing %s namespace with %q: %w", kind, value, err)
	}

	t.release(acc)
	acc.value = strings.Clone(value)
	acc.count = count

	return nil
}

// Release frees both namespaces.
func (t *Tracker) Release() {
	t.release(&t.node)
	t.release(&t.param)
}

func (t *Tracker) release(acc *accumulator) {
	if acc.count > 0 {
		t.alloc.Deallocate(alloc.StringSize(acc.value))
	}

	*acc = accumulator{}
}
