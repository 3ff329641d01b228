// Package validate checks the syntax of node names and namespaces.
//
// The parameter parser only depends on the Validator interface; Rules is the
// stock implementation of the usual naming rules and is what the parser uses
// when no other Validator is configured.
package validate

import (
	"strconv"
	"strings"
)

// Length limits enforced by Rules.
const (
	MaxNodeNameLength  = 255
	MaxNamespaceLength = 253
)

// Validator reports whether a node name or an absolute namespace is legal.
// A rejection carries a human readable reason.
type Validator interface {
	ValidateNodeName(name string) (bool, string)
	ValidateNamespace(namespace string) (bool, string)
}

// Rules enforces the standard node name and namespace syntax.
type Rules struct{}

// Default returns the standard Validator.
//
//nolint:ireturn // consumers hold the interface
func Default() Validator {
	return Rules{}
}

// ValidateNodeName implements Validator. A node name is a non-empty run of
// ASCII letters, digits and underscores that does not start with a digit.
func (Rules) ValidateNodeName(name string) (bool, string) {
	if name == "" {
		return false, "node name must not be empty"
	}

	for _, r := range name {
		if !isNameChar(r) {
			return false, "node name must not contain characters other than alphanumerics or '_'"
		}
	}

	if isDigit(rune(name[0])) {
		return false, "node name must not start with a number"
	}

	if len(name) > MaxNodeNameLength {
		return false, "node name should not exceed '" + strconv.Itoa(MaxNodeNameLength) + "'"
	}

	return true, ""
}

// ValidateNamespace implements Validator. A namespace is absolute, has no
// empty or digit-led tokens and only ends with '/' when it is exactly "/".
func (Rules) ValidateNamespace(namespace string) (bool, string) {
	if namespace == "" {
		return false, "namespace must not be empty"
	}

	if namespace[0] != '/' {
		return false, "namespace must be absolute, it must lead with a '/'"
	}

	if namespace == "/" {
		return true, ""
	}

	if strings.HasSuffix(namespace, "/") {
		return false, "namespace must not end with a '/', unless only a '/'"
	}

	for _, r := range namespace {
		if r != '/' && !isNameChar(r) {
			return false, "namespace must not contain characters other than alphanumerics, '_', or '/'"
		}
	}

	for _, token := range strings.Split(namespace[1:], "/") {
		if token == "" {
			return false, "namespace must not contain repeated '/'"
		}

		if isDigit(rune(token[0])) {
			return false, "namespace must not have a token that starts with a number"
		}
	}

	if len(namespace) > MaxNamespaceLength {
		return false, "namespace should not exceed '" + strconv.Itoa(MaxNamespaceLength) + "'"
	}

	return true, ""
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isNameChar(r rune) bool {
	return isDigit(r) || r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
