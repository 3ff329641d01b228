package scalar

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/0xalexb/hjarta-params/alloc"
	"github.com/0xalexb/hjarta-params/variant"
)

// Style is the quoting form of a scalar.
type Style uint8

const (
	// Plain is an unquoted scalar.
	Plain Style = iota
	// SingleQuoted is a 'quoted' scalar.
	SingleQuoted
	// DoubleQuoted is a "quoted" scalar.
	DoubleQuoted
	// Literal is a | block scalar.
	Literal
	// Folded is a > block scalar.
	Folded
)

func (s Style) String() string {
	switch s {
	case Plain:
		return "plain"
	case SingleQuoted:
		return "single-quoted"
	case DoubleQuoted:
		return "double-quoted"
	case Literal:
		return "literal"
	case Folded:
		return "folded"
	}

	return "unknown"
}

// Quoted reports whether s suppresses boolean and numeric inference.
func (s Style) Quoted() bool {
	return s == SingleQuoted || s == DoubleQuoted
}

// Tags that force a string result.
const (
	StringTag     = "!!str"
	StringTagLong = "tag:yaml.org,2002:str"
)

// leading characters C's strtol and strtod skip
const cSpace = " \t\n\v\f\r"

//nolint:gochecknoglobals // fixed spelling tables
var (
	trueSpellings = map[string]struct{}{
		"Y": {}, "y": {}, "yes": {}, "Yes": {}, "YES": {},
		"true": {}, "True": {}, "TRUE": {}, "on": {}, "On": {}, "ON": {},
	}
	falseSpellings = map[string]struct{}{
		"N": {}, "n": {}, "no": {}, "No": {}, "NO": {},
		"false": {}, "False": {}, "FALSE": {}, "off": {}, "Off": {}, "OFF": {},
	}
)

// Result is the outcome of classifying a scalar.
type Result struct {
	Kind   variant.Kind
	Bool   bool
	Int64  int64
	Double float64
	Text   string
}

// Classify returns the kind and value text, style and tag resolve to.
// It allocates nothing and always succeeds.
func Classify(text string, style Style, tag string) Result {
	if tag == StringTag || tag == StringTagLong || style.Quoted() {
		return Result{Kind: variant.KindString, Text: text}
	}

	if _, ok := trueSpellings[text]; ok {
		return Result{Kind: variant.KindBool, Bool: true, Text: text}
	}

	if _, ok := falseSpellings[text]; ok {
		return Result{Kind: variant.KindBool, Bool: false, Text: text}
	}

	if value, ok := ParseInt(text); ok {
		return Result{Kind: variant.KindInt64, Int64: value, Text: text}
	}

	if value, ok := ParseDouble(text); ok {
		return Result{Kind: variant.KindDouble, Double: value, Text: text}
	}

	return Result{Kind: variant.KindString, Text: text}
}

// Infer classifies the scalar and returns it as a variant charged to a.
// An allocation failure is returned as an error wrapping
// alloc.ErrOutOfMemory, never as a string result.
func Infer(a alloc.Allocator, text string, style Style, tag string) (variant.Variant, error) {
	result := Classify(text, style, tag)

	var (
		value variant.Variant
		err   error
	)

	switch result.Kind {
	case variant.KindBool:
		err = value.SetBool(a, result.Bool)
	case variant.KindInt64:
		err = value.SetInt64(a, result.Int64)
	case variant.KindDouble:
		err = value.SetDouble(a, result.Double)
	default:
		err = value.SetString(a, result.Text)
	}

	if err != nil {
		return variant.Variant{}, fmt.Errorf("inferring %q: %w", text, err)
	}

	return value, nil
}

// ParseInt parses text the way strtol with base 0 does when it must consume
// the whole string: optional leading space and sign, then decimal, 0x hex
// or leading-0 octal digits. Out of range values do not match.
func ParseInt(text string) (int64, bool) {
	body := strings.TrimLeft(text, cSpace)
	if body == "" || strings.ContainsRune(body, '_') {
		return 0, false
	}

	digits := strings.TrimLeft(body, "+-")
	if len(body)-len(digits) > 1 {
		return 0, false
	}

	if len(digits) > 1 && digits[0] == '0' && strings.ContainsRune("bBoO", rune(digits[1])) {
		return 0, false
	}

	value, err := strconv.ParseInt(body, 0, 64)
	if err != nil {
		return 0, false
	}

	return value, true
}

// ParseDouble parses text as a double when the whole string is a number, or
// one of the spellings .nan, .NaN, .NAN and [+-].inf, .Inf, .INF.
// Values that overflow a double, or underflow to zero, do not match. Hex
// mantissas need no binary exponent.
func ParseDouble(text string) (float64, bool) {
	switch text {
	case ".nan", ".NaN", ".NAN":
		return math.NaN(), true
	case ".inf", ".Inf", ".INF", "+.inf", "+.Inf", "+.INF":
		return math.Inf(1), true
	case "-.inf", "-.Inf", "-.INF":
		return math.Inf(-1), true
	}

	body := strings.TrimLeft(text, cSpace)
	if body == "" || strings.ContainsRune(body, '_') {
		return 0, false
	}

	hex := isHex(body)
	if hex && !strings.ContainsAny(body, "pP") {
		// strtod reads a hex mantissa without a binary exponent
		body += "p0"
	}

	value, err := strconv.ParseFloat(body, 64)
	if err != nil {
		return 0, false
	}

	// underflow to zero is a range error for strtod
	if value == 0 && nonZeroMantissa(body, hex) {
		return 0, false
	}

	return value, true
}

func isHex(body string) bool {
	digits := strings.TrimLeft(body, "+-")

	return len(digits) > 1 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X')
}

func nonZeroMantissa(body string, hex bool) bool {
	digits := strings.TrimLeft(body, "+-")
	if hex {
		mantissa, _, _ := strings.Cut(digits[2:], "p")
		mantissa, _, _ = strings.Cut(mantissa, "P")

		return strings.ContainsAny(mantissa, "123456789abcdefABCDEF")
	}

	mantissa := digits
	if i := strings.IndexAny(digits, "eE"); i >= 0 {
		mantissa = digits[:i]
	}

	return strings.ContainsAny(mantissa, "123456789")
}
