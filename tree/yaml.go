package tree

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/0xalexb/hjarta-params/variant"
)

// ParametersKey is the mapping key that ends a node name and opens its
// parameter definitions.
const ParametersKey = "ros__parameters"

// MarshalYAML renders the tree in the parameter document format: one
// mapping per node, keyed by the full node name, holding a ParametersKey
// mapping of fully qualified parameter names. Empty values are skipped.
// Strings are always double-quoted and doubles always carry a fraction or
// exponent, so the output parses back to the same kinds.
func (t *Tree) MarshalYAML() ([]byte, error) {
	doc := make(yaml.MapSlice, 0, t.count)

	for i := range t.count {
		params := &t.nodes[i]
		values := make(yaml.MapSlice, 0, params.count)

		for j := range params.count {
			value := yamlValue(&params.values[j])
			if value == nil {
				continue
			}

			values = append(values, yaml.MapItem{Key: params.names[j], Value: value})
		}

		doc = append(doc, yaml.MapItem{
			Key:   t.names[i],
			Value: yaml.MapSlice{{Key: ParametersKey, Value: values}},
		})
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding parameter tree: %w", err)
	}

	return out, nil
}

func yamlValue(value *variant.Variant) any {
	switch value.Kind() {
	case variant.KindBool, variant.KindInt64:
		return value.Any()
	case variant.KindDouble:
		d, _ := value.Double()

		return quotedDouble(d)
	case variant.KindString:
		s, _ := value.Str()

		return quotedString(s)
	case variant.KindBoolArray, variant.KindInt64Array:
		return value.Any()
	case variant.KindDoubleArray:
		doubles, _ := value.DoubleArray()

		return convert(doubles, func(d float64) quotedDouble { return quotedDouble(d) })
	case variant.KindStringArray:
		strs, _ := value.StringArray()

		return convert(strs, func(s string) quotedString { return quotedString(s) })
	case variant.KindEmpty:
	}

	return nil
}

func convert[T, U any](in []T, fn func(T) U) []U {
	out := make([]U, len(in))
	for i, v := range in {
		out[i] = fn(v)
	}

	return out
}

type quotedString string

func (s quotedString) MarshalYAML() ([]byte, error) {
	return []byte(strconv.Quote(string(s))), nil
}

type quotedDouble float64

func (d quotedDouble) MarshalYAML() ([]byte, error) {
	value := float64(d)

	switch {
	case math.IsNaN(value):
		return []byte(".nan"), nil
	case math.IsInf(value, 1):
		return []byte(".inf"), nil
	case math.IsInf(value, -1):
		return []byte("-.inf"), nil
	}

	text := strconv.FormatFloat(value, 'g', -1, 64)
	if !strings.ContainsAny(text, ".e") {
		text += ".0"
	}

	return []byte(text), nil
}
