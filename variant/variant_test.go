package variant_test

import (
	"math"
	"testing"

	"github.com/0xalexb/hjarta-params/alloc"
	"github.com/0xalexb/hjarta-params/variant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariant_ZeroValueIsEmpty(t *testing.T) {
	t.Parallel()

	var value variant.Variant

	assert.True(t, value.IsEmpty())
	assert.Equal(t, variant.KindEmpty, value.Kind())
	assert.Equal(t, "", value.String())
	assert.Nil(t, value.Any())
	assert.Zero(t, value.Len())
}

func TestVariant_SetterReplacesPreviousArm(t *testing.T) {
	t.Parallel()

	budget := alloc.NewBudget(1024)

	var value variant.Variant

	require.NoError(t, value.SetString(budget, "hello"))
	assert.Equal(t, alloc.StringSize("hello"), budget.InUse())

	require.NoError(t, value.SetInt64(budget, 42))
	assert.Equal(t, alloc.WordSize, budget.InUse(), "string must be released")

	_, isString := value.Str()
	assert.False(t, isString)

	got, isInt := value.Int64()
	require.True(t, isInt)
	assert.Equal(t, int64(42), got)

	value.Dispose(budget)
	assert.True(t, value.IsEmpty())
	assert.Zero(t, budget.InUse())
}

func TestVariant_SetterFailureKeepsOldValue(t *testing.T) {
	t.Parallel()

	budget := alloc.NewBudget(alloc.WordSize)

	var value variant.Variant

	require.NoError(t, value.SetDouble(budget, 1.5))

	err := value.SetString(budget, "too long for the budget")
	require.ErrorIs(t, err, alloc.ErrOutOfMemory)

	got, isDouble := value.Double()
	require.True(t, isDouble)
	assert.InDelta(t, 1.5, got, 0)
}

func TestVariant_Assign(t *testing.T) {
	t.Parallel()

	budget := alloc.NewBudget(1024)

	var dst, src variant.Variant

	require.NoError(t, dst.SetString(budget, "old"))
	require.NoError(t, src.SetBool(budget, true))

	dst.Assign(budget, &src)

	assert.True(t, src.IsEmpty())

	got, isBool := dst.Bool()
	require.True(t, isBool)
	assert.True(t, got)
	assert.Equal(t, alloc.BoolSize, budget.InUse())
}

func TestVariant_Duplicate(t *testing.T) {
	t.Parallel()

	budget := alloc.NewBudget(4096)

	values := map[string]func(v *variant.Variant) error{
		"bool":         func(v *variant.Variant) error { return v.SetBool(budget, true) },
		"int":          func(v *variant.Variant) error { return v.SetInt64(budget, -7) },
		"double":       func(v *variant.Variant) error { return v.SetDouble(budget, math.NaN()) },
		"string":       func(v *variant.Variant) error { return v.SetString(budget, "abc") },
		"bool array":   func(v *variant.Variant) error { return v.SetBoolArray(budget, []bool{true, false}) },
		"int array":    func(v *variant.Variant) error { return v.SetInt64Array(budget, []int64{1, 2, 3}) },
		"double array": func(v *variant.Variant) error { return v.SetDoubleArray(budget, []float64{0.5, math.Inf(-1)}) },
		"string array": func(v *variant.Variant) error { return v.SetStringArray(budget, []string{"a", "bc"}) },
	}

	for name, set := range values {
		t.Run(name, func(t *testing.T) {
			var original variant.Variant

			require.NoError(t, set(&original))

			before := budget.InUse()

			dup, err := original.Duplicate(budget)
			require.NoError(t, err)
			assert.True(t, dup.Equal(&original))
			assert.Equal(t, 2*before, budget.InUse(), "copy must charge as much as the original")

			original.Dispose(budget)
			assert.False(t, dup.IsEmpty(), "disposing the original must not touch the copy")

			dup.Dispose(budget)
		})
	}

	assert.Zero(t, budget.InUse())
}

func TestVariant_DuplicateFailureLeavesNothingAllocated(t *testing.T) {
	t.Parallel()

	source := alloc.Default()

	var original variant.Variant

	require.NoError(t, original.SetStringArray(source, []string{"alpha", "beta", "gamma"}))

	// room for the slots and the first string only
	budget := alloc.NewBudget(3*alloc.WordSize + alloc.StringSize("alpha"))

	dup, err := original.Duplicate(budget)
	require.ErrorIs(t, err, alloc.ErrOutOfMemory)
	assert.True(t, dup.IsEmpty())
	assert.Zero(t, budget.InUse())

	single := alloc.NewBudget(0)

	var number variant.Variant

	require.NoError(t, number.SetInt64(source, 1))

	dup, err = number.Duplicate(single)
	require.ErrorIs(t, err, alloc.ErrOutOfMemory)
	assert.True(t, dup.IsEmpty())
}

func TestVariant_DuplicateEmpty(t *testing.T) {
	t.Parallel()

	var empty variant.Variant

	dup, err := empty.Duplicate(alloc.NewBudget(0))
	require.NoError(t, err)
	assert.True(t, dup.IsEmpty())
}

func TestVariant_Equal(t *testing.T) {
	t.Parallel()

	allocator := alloc.Default()

	var left, right variant.Variant

	require.NoError(t, left.SetInt64(allocator, 1))
	require.NoError(t, right.SetDouble(allocator, 1))
	assert.False(t, left.Equal(&right), "kinds differ")

	require.NoError(t, right.SetInt64(allocator, 1))
	assert.True(t, left.Equal(&right))

	require.NoError(t, left.SetDoubleArray(allocator, []float64{math.NaN()}))
	require.NoError(t, right.SetDoubleArray(allocator, []float64{math.NaN()}))
	assert.True(t, left.Equal(&right))
}

func TestVariant_String(t *testing.T) {
	t.Parallel()

	allocator := alloc.Default()

	testCases := []struct {
		name     string
		set      func(v *variant.Variant) error
		expected string
	}{
		{"bool", func(v *variant.Variant) error { return v.SetBool(allocator, false) }, "false"},
		{"int", func(v *variant.Variant) error { return v.SetInt64(allocator, 12) }, "12"},
		{"double", func(v *variant.Variant) error { return v.SetDouble(allocator, 3.14) }, "3.140000"},
		{"string", func(v *variant.Variant) error { return v.SetString(allocator, "text") }, "text"},
		{"string array", func(v *variant.Variant) error {
			return v.SetStringArray(allocator, []string{"a", "b", "c"})
		}, "[a, b, c]"},
		{"int array", func(v *variant.Variant) error {
			return v.SetInt64Array(allocator, []int64{1, 2})
		}, "[1, 2]"},
		{"bool array", func(v *variant.Variant) error {
			return v.SetBoolArray(allocator, []bool{true})
		}, "[true]"},
		{"double array", func(v *variant.Variant) error {
			return v.SetDoubleArray(allocator, []float64{1, 0.5})
		}, "[1.000000, 0.500000]"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var value variant.Variant

			require.NoError(t, testCase.set(&value))
			assert.Equal(t, testCase.expected, value.String())
		})
	}
}

func TestKind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, variant.KindBoolArray, variant.KindBool.ArrayOf())
	assert.Equal(t, variant.KindStringArray, variant.KindString.ArrayOf())
	assert.Equal(t, variant.KindEmpty, variant.KindInt64Array.ArrayOf())
	assert.Equal(t, variant.KindDouble, variant.KindDoubleArray.Elem())
	assert.Equal(t, variant.KindEmpty, variant.KindInt64.Elem())
	assert.Equal(t, "integer", variant.KindInt64.String())
	assert.Equal(t, "unknown", variant.Kind(200).String())
}
