package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/0xalexb/hjarta-params/config"
)

// ErrEmptyData is returned when the input data is empty.
var ErrEmptyData = errors.New("empty data")

// ErrPathNotFound is returned when the section path does not exist. It is
// config.ErrSectionNotFound so optional sections can be detected.
var ErrPathNotFound = config.ErrSectionNotFound

// Parser implements config.Parser for YAML documents.
type Parser struct {
	options []yaml.DecodeOption
}

// NewParser creates a lenient parser that ignores unknown keys.
func NewParser() *Parser {
	return &Parser{}
}

// NewStrictParser creates a parser that fails on keys the target does not
// declare.
func NewStrictParser() *Parser {
	return &Parser{options: []yaml.DecodeOption{yaml.DisallowUnknownField()}}
}

// Parse decodes the section at path of data into target. An empty path
// decodes the whole document.
func (p *Parser) Parse(data []byte, target any, path string) error {
	if len(data) == 0 {
		return ErrEmptyData
	}

	if path == "" {
		err := yaml.UnmarshalWithOptions(data, target, p.options...)
		if err != nil {
			return fmt.Errorf("unmarshal error: %w", err)
		}

		return nil
	}

	yamlPath, err := yaml.PathString(toYAMLPath(path))
	if err != nil {
		return fmt.Errorf("invalid path %q: %w", path, err)
	}

	node, err := yamlPath.ReadNode(bytes.NewReader(data))
	if err != nil {
		if yaml.IsNotFoundNodeError(err) {
			return fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}

		return fmt.Errorf("reading path %q: %w", path, err)
	}

	err = yaml.NodeToValue(node, target, p.options...)
	if err != nil {
		return fmt.Errorf("decoding section %q: %w", path, err)
	}

	return nil
}

// toYAMLPath turns "http:tls" into "$.http.tls".
func toYAMLPath(path string) string {
	return "$." + strings.ReplaceAll(path, ":", ".")
}
