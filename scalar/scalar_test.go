package scalar_test

import (
	"math"
	"testing"

	"github.com/0xalexb/hjarta-params/alloc"
	"github.com/0xalexb/hjarta-params/scalar"
	"github.com/0xalexb/hjarta-params/variant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_Booleans(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"Y", "y", "yes", "Yes", "YES", "true", "True", "TRUE", "on", "On", "ON"} {
		result := scalar.Classify(text, scalar.Plain, "")
		assert.Equal(t, variant.KindBool, result.Kind, text)
		assert.True(t, result.Bool, text)
	}

	for _, text := range []string{"N", "n", "no", "No", "NO", "false", "False", "FALSE", "off", "Off", "OFF"} {
		result := scalar.Classify(text, scalar.Plain, "")
		assert.Equal(t, variant.KindBool, result.Kind, text)
		assert.False(t, result.Bool, text)
	}

	for _, text := range []string{"tRUE", "yES", "oN", "nO"} {
		assert.Equal(t, variant.KindString, scalar.Classify(text, scalar.Plain, "").Kind, text)
	}
}

func TestClassify_Integers(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		text     string
		expected int64
	}{
		{"1", 1},
		{"-42", -42},
		{"+7", 7},
		{"0", 0},
		{"0x1F", 31},
		{"0X10", 16},
		{"-0x10", -16},
		{"010", 8},
		{"9223372036854775807", math.MaxInt64},
		{"-9223372036854775808", math.MinInt64},
	}

	for _, testCase := range testCases {
		t.Run(testCase.text, func(t *testing.T) {
			t.Parallel()

			result := scalar.Classify(testCase.text, scalar.Plain, "")
			require.Equal(t, variant.KindInt64, result.Kind)
			assert.Equal(t, testCase.expected, result.Int64)
		})
	}
}

func TestClassify_Doubles(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		text     string
		expected float64
	}{
		{"3.14", 3.14},
		{"-0.5", -0.5},
		{".5", 0.5},
		{"1e3", 1000},
		{"1.", 1},
		// no valid octal digits, strtod reads it as decimal
		{"08", 8},
		// too large for int64
		{"99999999999999999999", 1e20},
		// too large for int64, strtod reads the hex mantissa
		{"0xFFFFFFFFFFFFFFFF", float64(math.MaxUint64)},
		{"0x1.8", 1.5},
		{"0x1p3", 8},
		{"0e-400", 0},
		{"1e-300", 1e-300},
		{".inf", math.Inf(1)},
		{".Inf", math.Inf(1)},
		{"+.INF", math.Inf(1)},
		{"-.inf", math.Inf(-1)},
		{"-.Inf", math.Inf(-1)},
		{"-.INF", math.Inf(-1)},
	}

	for _, testCase := range testCases {
		t.Run(testCase.text, func(t *testing.T) {
			t.Parallel()

			result := scalar.Classify(testCase.text, scalar.Plain, "")
			require.Equal(t, variant.KindDouble, result.Kind)
			assert.InDelta(t, testCase.expected, result.Double, 1e-9)
		})
	}

	for _, text := range []string{".nan", ".NaN", ".NAN"} {
		result := scalar.Classify(text, scalar.Plain, "")
		require.Equal(t, variant.KindDouble, result.Kind, text)
		assert.True(t, math.IsNaN(result.Double), text)
	}
}

func TestClassify_Strings(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"hello", "12abc", "0x", "1_000", "0b101", "0o17", "1e999", "1e-400", "-1e-400", "0x1p-2000", "1.2.3", "+-5", "", "- 1"} {
		result := scalar.Classify(text, scalar.Plain, "")
		assert.Equal(t, variant.KindString, result.Kind, text)
		assert.Equal(t, text, result.Text)
	}
}

func TestClassify_QuotingForcesString(t *testing.T) {
	t.Parallel()

	for _, style := range []scalar.Style{scalar.SingleQuoted, scalar.DoubleQuoted} {
		for _, text := range []string{"1", "true", ".inf", "3.14", "off"} {
			result := scalar.Classify(text, style, "")
			assert.Equal(t, variant.KindString, result.Kind, "%s %s", style, text)
			assert.Equal(t, text, result.Text)
		}
	}
}

func TestClassify_StringTag(t *testing.T) {
	t.Parallel()

	for _, tag := range []string{scalar.StringTag, scalar.StringTagLong} {
		result := scalar.Classify("123", scalar.Plain, tag)
		assert.Equal(t, variant.KindString, result.Kind, tag)
	}

	assert.Equal(t, variant.KindInt64, scalar.Classify("123", scalar.Plain, "!!int").Kind)
}

func TestClassify_BlockScalarsAreInferred(t *testing.T) {
	t.Parallel()

	assert.Equal(t, variant.KindInt64, scalar.Classify("5", scalar.Literal, "").Kind)
	assert.Equal(t, variant.KindBool, scalar.Classify("yes", scalar.Folded, "").Kind)
}

func TestClassify_IsPure(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"true", "1", ".inf", "x"} {
		assert.Equal(t, scalar.Classify(text, scalar.Plain, ""), scalar.Classify(text, scalar.Plain, ""))
	}
}

func TestInfer(t *testing.T) {
	t.Parallel()

	budget := alloc.NewBudget(1024)

	value, err := scalar.Infer(budget, "1", scalar.DoubleQuoted, "")
	require.NoError(t, err)

	text, isString := value.Str()
	require.True(t, isString)
	assert.Equal(t, "1", text)

	value.Dispose(budget)

	value, err = scalar.Infer(budget, "ON", scalar.Plain, "")
	require.NoError(t, err)

	flag, isBool := value.Bool()
	require.True(t, isBool)
	assert.True(t, flag)

	value.Dispose(budget)
	assert.Zero(t, budget.InUse())
}

func TestInfer_AllocationFailureIsNotAString(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"name", "1", "1.5", "true"} {
		value, err := scalar.Infer(alloc.NewBudget(0), text, scalar.Plain, "")
		require.ErrorIs(t, err, alloc.ErrOutOfMemory, text)
		assert.True(t, value.IsEmpty())
	}
}

func TestStyle_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "plain", scalar.Plain.String())
	assert.Equal(t, "double-quoted", scalar.DoubleQuoted.String())
	assert.True(t, scalar.SingleQuoted.Quoted())
	assert.False(t, scalar.Literal.Quoted())
}
