package variant

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/0xalexb/hjarta-params/alloc"
)

// ErrTypeMismatch is returned when an element is appended to an array of a
// different element kind.
var ErrTypeMismatch = errors.New("type mismatch")

// ErrNotScalar is returned when a non-scalar variant is used as an array element.
var ErrNotScalar = errors.New("value is not a scalar")

// Variant is a parameter value holding at most one populated arm.
// The zero value is empty.
type Variant struct {
	kind Kind

	boolValue   bool
	intValue    int64
	doubleValue float64
	stringValue string

	bools   []bool
	ints    []int64
	doubles []float64
	strs    []string
}

// Kind returns the populated arm.
func (v *Variant) Kind() Kind {
	return v.kind
}

// IsEmpty reports whether no arm is populated.
func (v *Variant) IsEmpty() bool {
	return v.kind == KindEmpty
}

// Bool returns the boolean arm.
func (v *Variant) Bool() (bool, bool) {
	return v.boolValue, v.kind == KindBool
}

// Int64 returns the integer arm.
func (v *Variant) Int64() (int64, bool) {
	return v.intValue, v.kind == KindInt64
}

// Double returns the double arm.
func (v *Variant) Double() (float64, bool) {
	return v.doubleValue, v.kind == KindDouble
}

// Str returns the string arm.
func (v *Variant) Str() (string, bool) {
	return v.stringValue, v.kind == KindString
}

// BoolArray returns a copy of the boolean array arm.
func (v *Variant) BoolArray() ([]bool, bool) {
	return slices.Clone(v.bools), v.kind == KindBoolArray
}

// Int64Array returns a copy of the integer array arm.
func (v *Variant) Int64Array() ([]int64, bool) {
	return slices.Clone(v.ints), v.kind == KindInt64Array
}

// DoubleArray returns a copy of the double array arm.
func (v *Variant) DoubleArray() ([]float64, bool) {
	return slices.Clone(v.doubles), v.kind == KindDoubleArray
}

// StringArray returns a copy of the string array arm.
func (v *Variant) StringArray() ([]string, bool) {
	return slices.Clone(v.strs), v.kind == KindStringArray
}

// Len returns the number of array elements, 1 for a scalar and 0 when empty.
func (v *Variant) Len() int {
	switch v.kind {
	case KindEmpty:
		return 0
	case KindBoolArray:
		return len(v.bools)
	case KindInt64Array:
		return len(v.ints)
	case KindDoubleArray:
		return len(v.doubles)
	case KindStringArray:
		return len(v.strs)
	case KindBool, KindInt64, KindDouble, KindString:
		return 1
	}

	return 0
}

// Any returns the populated arm as a plain Go value, or nil when empty.
func (v *Variant) Any() any {
	switch v.kind {
	case KindBool:
		return v.boolValue
	case KindInt64:
		return v.intValue
	case KindDouble:
		return v.doubleValue
	case KindString:
		return v.stringValue
	case KindBoolArray:
		return slices.Clone(v.bools)
	case KindInt64Array:
		return slices.Clone(v.ints)
	case KindDoubleArray:
		return slices.Clone(v.doubles)
	case KindStringArray:
		return slices.Clone(v.strs)
	case KindEmpty:
	}

	return nil
}

// size returns the number of bytes this variant has charged to its allocator.
func (v *Variant) size() int {
	switch v.kind {
	case KindBool:
		return alloc.BoolSize
	case KindInt64, KindDouble:
		return alloc.WordSize
	case KindString:
		return alloc.StringSize(v.stringValue)
	case KindBoolArray:
		return len(v.bools) * alloc.BoolSize
	case KindInt64Array:
		return len(v.ints) * alloc.WordSize
	case KindDoubleArray:
		return len(v.doubles) * alloc.WordSize
	case KindStringArray:
		total := len(v.strs) * alloc.WordSize
		for _, s := range v.strs {
			total += alloc.StringSize(s)
		}

		return total
	case KindEmpty:
	}

	return 0
}

// Dispose releases whatever the variant owns and leaves it empty.
// Disposing an empty variant is a no-op.
func (v *Variant) Dispose(a alloc.Allocator) {
	if v.kind == KindEmpty {
		return
	}

	a.Deallocate(v.size())
	*v = Variant{}
}

// SetBool replaces the current value with a boolean.
func (v *Variant) SetBool(a alloc.Allocator, value bool) error {
	err := a.Allocate(alloc.BoolSize)
	if err != nil {
		return fmt.Errorf("bool value: %w", err)
	}

	v.Dispose(a)
	v.kind = KindBool
	v.boolValue = value

	return nil
}

// SetInt64 replaces the current value with an integer.
func (v *Variant) SetInt64(a alloc.Allocator, value int64) error {
	err := a.Allocate(alloc.WordSize)
	if err != nil {
		return fmt.Errorf("integer value: %w", err)
	}

	v.Dispose(a)
	v.kind = KindInt64
	v.intValue = value

	return nil
}

// SetDouble replaces the current value with a double.
func (v *Variant) SetDouble(a alloc.Allocator, value float64) error {
	err := a.Allocate(alloc.WordSize)
	if err != nil {
		return fmt.Errorf("double value: %w", err)
	}

	v.Dispose(a)
	v.kind = KindDouble
	v.doubleValue = value

	return nil
}

// SetString replaces the current value with a copy of value.
func (v *Variant) SetString(a alloc.Allocator, value string) error {
	err := a.Allocate(alloc.StringSize(value))
	if err != nil {
		return fmt.Errorf("string value: %w", err)
	}

	v.Dispose(a)
	v.kind = KindString
	v.stringValue = strings.Clone(value)

	return nil
}

// Assign moves src into v, disposing v's previous value first.
// src is left empty; no allocation takes place.
func (v *Variant) Assign(a alloc.Allocator, src *Variant) {
	if v == src {
		return
	}

	v.Dispose(a)
	*v = *src
	*src = Variant{}
}

// Duplicate returns a deep copy of v charged to a. On failure nothing stays
// allocated and the returned variant is empty.
func (v *Variant) Duplicate(a alloc.Allocator) (Variant, error) {
	if v.kind == KindStringArray {
		return v.duplicateStrings(a)
	}

	size := v.size()
	if size > 0 {
		err := a.Allocate(size)
		if err != nil {
			return Variant{}, fmt.Errorf("duplicating %s: %w", v.kind, err)
		}
	}

	dup := Variant{kind: v.kind}

	switch v.kind {
	case KindBool:
		dup.boolValue = v.boolValue
	case KindInt64:
		dup.intValue = v.intValue
	case KindDouble:
		dup.doubleValue = v.doubleValue
	case KindString:
		dup.stringValue = strings.Clone(v.stringValue)
	case KindBoolArray:
		dup.bools = slices.Clone(v.bools)
	case KindInt64Array:
		dup.ints = slices.Clone(v.ints)
	case KindDoubleArray:
		dup.doubles = slices.Clone(v.doubles)
	case KindEmpty, KindStringArray:
	}

	return dup, nil
}

func (v *Variant) duplicateStrings(a alloc.Allocator) (Variant, error) {
	slots := len(v.strs) * alloc.WordSize

	err := a.Allocate(slots)
	if err != nil {
		return Variant{}, fmt.Errorf("duplicating %s: %w", v.kind, err)
	}

	strs := make([]string, len(v.strs))

	for i, s := range v.strs {
		err = a.Allocate(alloc.StringSize(s))
		if err != nil {
			for _, done := range strs[:i] {
				a.Deallocate(alloc.StringSize(done))
			}

			a.Deallocate(slots)

			return Variant{}, fmt.Errorf("duplicating %s element %d: %w", v.kind, i, err)
		}

		strs[i] = strings.Clone(s)
	}

	return Variant{kind: KindStringArray, strs: strs}, nil
}

// Equal reports whether v and other hold the same kind and value.
// NaN compares equal to NaN.
func (v *Variant) Equal(other *Variant) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindBool:
		return v.boolValue == other.boolValue
	case KindInt64:
		return v.intValue == other.intValue
	case KindDouble:
		return sameDouble(v.doubleValue, other.doubleValue)
	case KindString:
		return v.stringValue == other.stringValue
	case KindBoolArray:
		return slices.Equal(v.bools, other.bools)
	case KindInt64Array:
		return slices.Equal(v.ints, other.ints)
	case KindDoubleArray:
		return slices.EqualFunc(v.doubles, other.doubles, sameDouble)
	case KindStringArray:
		return slices.Equal(v.strs, other.strs)
	case KindEmpty:
	}

	return true
}

func sameDouble(x, y float64) bool {
	return x == y || (math.IsNaN(x) && math.IsNaN(y))
}

// String renders the value for the human readable tree dump.
// Arrays are rendered as "[a, b, c]"; an empty variant renders as "".
func (v *Variant) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.boolValue)
	case KindInt64:
		return strconv.FormatInt(v.intValue, 10)
	case KindDouble:
		return formatDouble(v.doubleValue)
	case KindString:
		return v.stringValue
	case KindBoolArray:
		return joinArray(v.bools, strconv.FormatBool)
	case KindInt64Array:
		return joinArray(v.ints, func(i int64) string { return strconv.FormatInt(i, 10) })
	case KindDoubleArray:
		return joinArray(v.doubles, formatDouble)
	case KindStringArray:
		return joinArray(v.strs, func(s string) string { return s })
	case KindEmpty:
	}

	return ""
}

func formatDouble(d float64) string {
	return strconv.FormatFloat(d, 'f', 6, 64)
}

func joinArray[T any](values []T, format func(T) string) string {
	parts := make([]string, len(values))
	for i, value := range values {
		parts[i] = format(value)
	}

	return "[" + strings.Join(parts, ", ") + "]"
}
