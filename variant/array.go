package variant

import (
	"fmt"
	"slices"
	"strings"

	"github.com/0xalexb/hjarta-params/alloc"
)

// Append adds the scalar held by elem to v's array arm.
//
// An empty v becomes a one-element array of elem's kind. Otherwise v must
// already be an array of that kind; its backing store is replaced by one
// element longer and the old store released. On success elem's holder is
// released (string bytes move into the array) and elem is left empty.
// On failure v is unchanged and elem still owns its value.
func (v *Variant) Append(a alloc.Allocator, elem *Variant) error {
	arrayKind := elem.kind.ArrayOf()
	if arrayKind == KindEmpty {
		return fmt.Errorf("%w: cannot append %s", ErrNotScalar, elem.kind)
	}

	if v.kind != KindEmpty && v.kind != arrayKind {
		return fmt.Errorf("%w: cannot append %s to %s", ErrTypeMismatch, elem.kind, v.kind)
	}

	var err error

	switch elem.kind {
	case KindBool:
		v.bools, err = growArray(a, v.bools, elem.boolValue, alloc.BoolSize)
	case KindInt64:
		v.ints, err = growArray(a, v.ints, elem.intValue, alloc.WordSize)
	case KindDouble:
		v.doubles, err = growArray(a, v.doubles, elem.doubleValue, alloc.WordSize)
	case KindString:
		v.strs, err = growArray(a, v.strs, elem.stringValue, alloc.WordSize)
		if err == nil {
			// the bytes now belong to the array; only the holder goes away
			*elem = Variant{}
		}
	case KindEmpty, KindBoolArray, KindInt64Array, KindDoubleArray, KindStringArray:
	}

	if err != nil {
		return err
	}

	v.kind = arrayKind
	elem.Dispose(a)

	return nil
}

// growArray returns a new backing store of len(old)+1 elements ending in
// elem, charging the new store and releasing the old one. On failure old is
// returned untouched.
func growArray[T any](a alloc.Allocator, old []T, elem T, elemSize int) ([]T, error) {
	err := a.Allocate((len(old) + 1) * elemSize)
	if err != nil {
		return old, fmt.Errorf("growing array to %d elements: %w", len(old)+1, err)
	}

	grown := make([]T, len(old)+1)
	copy(grown, old)
	grown[len(old)] = elem

	if len(old) > 0 {
		a.Deallocate(len(old) * elemSize)
	}

	return grown, nil
}

// SetBoolArray replaces the current value with a copy of values.
func (v *Variant) SetBoolArray(a alloc.Allocator, values []bool) error {
	err := a.Allocate(len(values) * alloc.BoolSize)
	if err != nil {
		return fmt.Errorf("bool array value: %w", err)
	}

	v.Dispose(a)
	v.kind = KindBoolArray
	v.bools = slices.Clone(values)

	return nil
}

// SetInt64Array replaces the current value with a copy of values.
func (v *Variant) SetInt64Array(a alloc.Allocator, values []int64) error {
	err := a.Allocate(len(values) * alloc.WordSize)
	if err != nil {
		return fmt.Errorf("integer array value: %w", err)
	}

	v.Dispose(a)
	v.kind = KindInt64Array
	v.ints = slices.Clone(values)

	return nil
}

// SetDoubleArray replaces the current value with a copy of values.
func (v *Variant) SetDoubleArray(a alloc.Allocator, values []float64) error {
	err := a.Allocate(len(values) * alloc.WordSize)
	if err != nil {
		return fmt.Errorf("double array value: %w", err)
	}

	v.Dispose(a)
	v.kind = KindDoubleArray
	v.doubles = slices.Clone(values)

	return nil
}

// SetStringArray replaces the current value with a copy of values.
func (v *Variant) SetStringArray(a alloc.Allocator, values []string) error {
	size := len(values) * alloc.WordSize
	for _, s := range values {
		size += alloc.StringSize(s)
	}

	err := a.Allocate(size)
	if err != nil {
		return fmt.Errorf("string array value: %w", err)
	}

	v.Dispose(a)
	v.kind = KindStringArray

	v.strs = make([]string, len(values))
	for i, s := range values {
		v.strs[i] = strings.Clone(s)
	}

	return nil
}
