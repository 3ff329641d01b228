package tree

import (
	"errors"
	"fmt"

	"github.com/0xalexb/hjarta-params/alloc"
	"github.com/0xalexb/hjarta-params/variant"
)

// DefaultNodeCapacity is the number of node slots a tree starts with.
const DefaultNodeCapacity = 128

// nodeSlotSize is charged per node table header slot.
const nodeSlotSize = 4 * alloc.WordSize

// ErrInvalidArgument is returned for a nil allocator, a zero capacity or a
// capacity smaller than the entries it must hold.
var ErrInvalidArgument = errors.New("invalid argument")

// Tree maps node names to their parameter tables. Names are unique and kept
// in first-seen order. A Tree is not safe for concurrent use.
type Tree struct {
	alloc alloc.Allocator
	names []string
	nodes []NodeParams
	count int
}

// New returns an empty tree with DefaultNodeCapacity node slots.
func New(a alloc.Allocator) (*Tree, error) {
	return NewWithCapacity(a, DefaultNodeCapacity)
}

// NewWithCapacity returns an empty tree with room for capacity nodes.
// Every allocation the tree and its descendants make is charged to a.
func NewWithCapacity(a alloc.Allocator, capacity int) (*Tree, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: nil allocator", ErrInvalidArgument)
	}

	if capacity <= 0 {
		return nil, fmt.Errorf("%w: node capacity must be positive, got %d", ErrInvalidArgument, capacity)
	}

	err := a.Allocate(capacity * (alloc.WordSize + nodeSlotSize))
	if err != nil {
		return nil, fmt.Errorf("initializing parameter tree: %w", err)
	}

	return &Tree{
		alloc: a,
		names: make([]string, capacity),
		nodes: make([]NodeParams, capacity),
		count: 0,
	}, nil
}

// Allocator returns the allocator the tree charges.
//
//nolint:ireturn // the strategy is injected through the interface
func (t *Tree) Allocator() alloc.Allocator {
	return t.alloc
}

// NumNodes returns the number of nodes.
func (t *Tree) NumNodes() int {
	return t.count
}

// CapacityNodes returns the number of node slots.
func (t *Tree) CapacityNodes() int {
	return len(t.names)
}

// NodeName returns the name of node i.
func (t *Tree) NodeName(i int) string {
	return t.names[i]
}

// Node returns the parameter table of node i. The pointer is valid until
// the tree grows.
func (t *Tree) Node(i int) *NodeParams {
	return &t.nodes[i]
}

// NodeIndex returns the slot of the node called name.
func (t *Tree) NodeIndex(name string) (int, bool) {
	for i := range t.count {
		if t.names[i] == name {
			return i, true
		}
	}

	return 0, false
}

// FindOrCreateNode returns the slot of the node called name, appending a
// node with an empty parameter table when it does not exist yet. The tree
// doubles its capacity when full.
func (t *Tree) FindOrCreateNode(name string) (int, error) {
	idx, found := t.NodeIndex(name)
	if found {
		return idx, nil
	}

	if t.alloc == nil {
		return 0, fmt.Errorf("%w: tree is not initialized", ErrInvalidArgument)
	}

	err := t.alloc.Allocate(alloc.StringSize(name))
	if err != nil {
		return 0, fmt.Errorf("adding node %q: %w", name, err)
	}

	if t.count >= len(t.names) {
		capacity := 2 * len(t.names)
		if capacity == 0 {
			capacity = DefaultNodeCapacity
		}

		err = t.Reallocate(capacity)
		if err != nil {
			t.alloc.Deallocate(alloc.StringSize(name))

			return 0, err
		}
	}

	err = t.nodes[t.count].Init(t.alloc, DefaultParamCapacity)
	if err != nil {
		t.alloc.Deallocate(alloc.StringSize(name))

		return 0, fmt.Errorf("adding node %q: %w", name, err)
	}

	idx = t.count
	t.names[idx] = name
	t.count++

	return idx, nil
}

// FindOrCreateParameter returns the node and parameter slots for
// (nodeName, paramName), creating either when missing.
func (t *Tree) FindOrCreateParameter(nodeName, paramName string) (int, int, error) {
	nodeIdx, err := t.FindOrCreateNode(nodeName)
	if err != nil {
		return 0, 0, err
	}

	paramIdx, err := t.nodes[nodeIdx].FindOrCreateParameter(paramName)
	if err != nil {
		return 0, 0, err
	}

	return nodeIdx, paramIdx, nil
}

// Reallocate resizes the tree to capacity node slots, keeping every node.
// New slots are empty.
func (t *Tree) Reallocate(capacity int) error {
	if t.alloc == nil {
		return fmt.Errorf("%w: tree is not initialized", ErrInvalidArgument)
	}

	if capacity < t.count || capacity <= 0 {
		return fmt.Errorf("%w: capacity %d cannot hold %d nodes", ErrInvalidArgument, capacity, t.count)
	}

	err := t.alloc.Allocate(capacity * (alloc.WordSize + nodeSlotSize))
	if err != nil {
		return fmt.Errorf("growing parameter tree to %d nodes: %w", capacity, err)
	}

	names := make([]string, capacity)
	nodes := make([]NodeParams, capacity)

	copy(names, t.names[:t.count])
	copy(nodes, t.nodes[:t.count])

	t.alloc.Deallocate(len(t.names) * (alloc.WordSize + nodeSlotSize))

	t.names = names
	t.nodes = nodes

	return nil
}

// GetValue returns the value slot of paramName under nodeName, creating the
// node and an empty parameter when they do not exist.
func (t *Tree) GetValue(nodeName, paramName string) (*variant.Variant, error) {
	nodeIdx, paramIdx, err := t.FindOrCreateParameter(nodeName, paramName)
	if err != nil {
		return nil, err
	}

	return t.nodes[nodeIdx].Value(paramIdx), nil
}

// Lookup returns the value of paramName under nodeName without creating
// anything.
func (t *Tree) Lookup(nodeName, paramName string) (*variant.Variant, bool) {
	nodeIdx, found := t.NodeIndex(nodeName)
	if !found {
		return nil, false
	}

	paramIdx, found := t.nodes[nodeIdx].Index(paramName)
	if !found {
		return nil, false
	}

	return t.nodes[nodeIdx].Value(paramIdx), true
}

// Copy returns a deep copy of the tree charged to the same allocator.
// On failure everything copied so far is released.
func (t *Tree) Copy() (*Tree, error) {
	if t.alloc == nil || len(t.names) == 0 {
		return nil, fmt.Errorf("%w: tree is not initialized", ErrInvalidArgument)
	}

	out, err := NewWithCapacity(t.alloc, len(t.names))
	if err != nil {
		return nil, err
	}

	for i := range t.count {
		name := t.names[i]

		err = out.alloc.Allocate(alloc.StringSize(name))
		if err != nil {
			out.Finalize()

			return nil, fmt.Errorf("copying node %q: %w", name, err)
		}

		err = out.nodes[i].Init(out.alloc, t.nodes[i].Capacity())
		if err != nil {
			out.alloc.Deallocate(alloc.StringSize(name))
			out.Finalize()

			return nil, fmt.Errorf("copying node %q: %w", name, err)
		}

		out.names[i] = name
		out.count++

		err = t.nodes[i].copyInto(&out.nodes[i])
		if err != nil {
			out.Finalize()

			return nil, fmt.Errorf("copying node %q: %w", name, err)
		}
	}

	return out, nil
}

// Finalize disposes every node name, parameter name and value and releases
// the tree's slots, leaving it empty. It is safe on a partially built tree,
// for example after a failed parse.
func (t *Tree) Finalize() {
	if t.alloc == nil {
		return
	}

	for i := range t.count {
		t.nodes[i].Finalize()
		t.alloc.Deallocate(alloc.StringSize(t.names[i]))
	}

	t.alloc.Deallocate(len(t.names) * (alloc.WordSize + nodeSlotSize))

	t.names = nil
	t.nodes = nil
	t.count = 0
}
