package parser

import (
	"fmt"
	"strings"
)

// AllNodes is the node pattern an override applies to when it names none.
const AllNodes = "/**"

const assignToken = ":="

// Override is a parsed "[node:]param.name:=value" rule.
type Override struct {
	Node  string
	Param string
	Value string
}

// SplitOverride splits rule at the first ":=" into its target and value,
// and the target at its last ':' into node and parameter name. Parameter
// names are '.' separated tokens of letters, digits and underscores.
func SplitOverride(rule string) (Override, error) {
	target, value, found := strings.Cut(rule, assignToken)
	if !found {
		return Override{}, fmt.Errorf("%w: %q has no %q", ErrInvalidOverride, rule, assignToken)
	}

	if value == "" {
		return Override{}, fmt.Errorf("%w: %q has no value", ErrInvalidOverride, rule)
	}

	override := Override{Node: AllNodes, Param: target, Value: value}

	if sep := strings.LastIndexByte(target, ':'); sep >= 0 {
		override.Node = target[:sep]
		override.Param = target[sep+1:]

		if override.Node == "" {
			return Override{}, fmt.Errorf("%w: %q has an empty node name", ErrInvalidOverride, rule)
		}
	}

	err := checkParamName(override.Param)
	if err != nil {
		return Override{}, fmt.Errorf("%w: %q: %w", ErrInvalidOverride, rule, err)
	}

	return override, nil
}

func checkParamName(name string) error {
	if name == "" {
		return errEmptyParamName
	}

	for token := range strings.SplitSeq(name, ".") {
		if token == "" {
			return fmt.Errorf("parameter name %q has an empty token", name)
		}

		for _, r := range token {
			if !isTokenChar(r) {
				return fmt.Errorf("parameter name %q contains %q", name, r)
			}
		}
	}

	return nil
}

func isTokenChar(r rune) bool {
	return r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9')
}
