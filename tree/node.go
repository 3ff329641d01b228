package tree

import (
	"fmt"

	"github.com/0xalexb/hjarta-params/alloc"
	"github.com/0xalexb/hjarta-params/variant"
)

// DefaultParamCapacity is the number of parameter slots a node table starts with.
const DefaultParamCapacity = 128

// valueSlotSize is charged per parameter value slot.
const valueSlotSize = 10 * alloc.WordSize

// NodeParams is the parameter table of a single node: parameter names and
// values in parallel slices, in first-seen order.
type NodeParams struct {
	alloc  alloc.Allocator
	names  []string
	values []variant.Variant
	count  int
}

// NewNodeParams returns an empty table with room for capacity parameters.
func NewNodeParams(a alloc.Allocator, capacity int) (*NodeParams, error) {
	var params NodeParams

	err := params.Init(a, capacity)
	if err != nil {
		return nil, err
	}

	return &params, nil
}

// Init prepares an empty table with room for capacity parameters.
// p must be zero or finalized.
func (p *NodeParams) Init(a alloc.Allocator, capacity int) error {
	if a == nil {
		return fmt.Errorf("%w: nil allocator", ErrInvalidArgument)
	}

	if capacity <= 0 {
		return fmt.Errorf("%w: parameter capacity must be positive, got %d", ErrInvalidArgument, capacity)
	}

	err := a.Allocate(capacity * (alloc.WordSize + valueSlotSize))
	if err != nil {
		return fmt.Errorf("initializing parameter table: %w", err)
	}

	*p = NodeParams{
		alloc:  a,
		names:  make([]string, capacity),
		values: make([]variant.Variant, capacity),
		count:  0,
	}

	return nil
}

// Len returns the number of parameters.
func (p *NodeParams) Len() int {
	return p.count
}

// Capacity returns the number of parameter slots.
func (p *NodeParams) Capacity() int {
	return len(p.names)
}

// Name returns the name of parameter i.
func (p *NodeParams) Name(i int) string {
	return p.names[i]
}

// Value returns the value slot of parameter i. The pointer is valid until
// the table grows.
func (p *NodeParams) Value(i int) *variant.Variant {
	return &p.values[i]
}

// Index returns the slot of the parameter called name.
func (p *NodeParams) Index(name string) (int, bool) {
	for i := range p.count {
		if p.names[i] == name {
			return i, true
		}
	}

	return 0, false
}

// FindOrCreateParameter returns the slot of the parameter called name,
// appending an empty one when it does not exist yet. The table doubles its
// capacity when full.
func (p *NodeParams) FindOrCreateParameter(name string) (int, error) {
	idx, found := p.Index(name)
	if found {
		return idx, nil
	}

	if p.alloc == nil {
		return 0, fmt.Errorf("%w: parameter table is not initialized", ErrInvalidArgument)
	}

	if p.count >= len(p.names) {
		capacity := 2 * len(p.names)
		if capacity == 0 {
			capacity = DefaultParamCapacity
		}

		err := p.Reallocate(capacity)
		if err != nil {
			return 0, err
		}
	}

	err := p.alloc.Allocate(alloc.StringSize(name))
	if err != nil {
		return 0, fmt.Errorf("adding parameter %q: %w", name, err)
	}

	idx = p.count
	p.names[idx] = name
	p.count++

	return idx, nil
}

// Remove disposes parameter i and closes the gap, keeping the order of the
// remaining parameters. Out of range indices are ignored.
func (p *NodeParams) Remove(i int) {
	if i < 0 || i >= p.count {
		return
	}

	p.values[i].Dispose(p.alloc)
	p.alloc.Deallocate(alloc.StringSize(p.names[i]))

	copy(p.names[i:], p.names[i+1:p.count])
	copy(p.values[i:], p.values[i+1:p.count])

	p.count--
	p.names[p.count] = ""
	p.values[p.count] = variant.Variant{}
}

// Reallocate resizes the table to capacity slots, keeping every parameter.
// New slots are empty.
func (p *NodeParams) Reallocate(capacity int) error {
	if p.alloc == nil {
		return fmt.Errorf("%w: parameter table is not initialized", ErrInvalidArgument)
	}

	if capacity < p.count || capacity <= 0 {
		return fmt.Errorf("%w: capacity %d cannot hold %d parameters", ErrInvalidArgument, capacity, p.count)
	}

	err := p.alloc.Allocate(capacity * (alloc.WordSize + valueSlotSize))
	if err != nil {
		return fmt.Errorf("growing parameter table to %d: %w", capacity, err)
	}

	names := make([]string, capacity)
	values := make([]variant.Variant, capacity)

	copy(names, p.names[:p.count])
	copy(values, p.values[:p.count])

	p.alloc.Deallocate(len(p.names) * (alloc.WordSize + valueSlotSize))

	p.names = names
	p.values = values

	return nil
}

// Finalize disposes every name and value and releases the slots.
// Finalizing a zero or already finalized table is a no-op.
func (p *NodeParams) Finalize() {
	if p.alloc == nil {
		return
	}

	for i := range p.count {
		p.values[i].Dispose(p.alloc)
		p.alloc.Deallocate(alloc.StringSize(p.names[i]))
	}

	p.alloc.Deallocate(len(p.names) * (alloc.WordSize + valueSlotSize))
	*p = NodeParams{}
}

// copyInto duplicates every parameter of p into dst, which must be an
// initialized empty table. On failure dst holds whatever was copied so far
// and is still safe to finalize.
func (p *NodeParams) copyInto(dst *NodeParams) error {
	for i := range p.count {
		idx, err := dst.FindOrCreateParameter(p.names[i])
		if err != nil {
			return err
		}

		dup, err := p.values[i].Duplicate(dst.alloc)
		if err != nil {
			return fmt.Errorf("copying parameter %q: %w", p.names[i], err)
		}

		dst.values[idx] = dup
	}

	return nil
}
