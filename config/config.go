package config

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrSectionNotFound is wrapped by Parser implementations when the
// requested path does not exist in the document.
var ErrSectionNotFound = errors.New("configuration section not found")

// Parser decodes the section at path of a configuration document into
// target. Paths use ':' between nested keys; "" selects the whole document.
type Parser interface {
	Parse(data []byte, target any, path string) error
}

// DataFetcher supplies raw configuration data.
type DataFetcher interface {
	Fetch() ([]byte, error)
}

// Validator is implemented by sections that can check themselves.
type Validator interface {
	Validate() error
}

// Defaulter is implemented by sections with default values. It reports
// whether anything was changed.
type Defaulter interface {
	SetDefaults() (changed bool)
}

// Provider returns an Fx friendly constructor that fetches the data,
// decodes the section at path into target, applies defaults and validates
// the result.
func Provider[T any](target *T, path string) func(Parser, DataFetcher) (*T, error) {
	return func(parser Parser, fetcher DataFetcher) (*T, error) {
		data, err := fetcher.Fetch()
		if err != nil {
			return nil, fmt.Errorf("reading configuration: %w", err)
		}

		err = parser.Parse(data, target, path)
		if err != nil {
			return nil, fmt.Errorf("parsing section %q: %w", path, err)
		}

		return finish(target, path)
	}
}

// OptionalProvider is Provider for a section that may be absent. A missing
// section, or an empty document, leaves target at its defaults.
func OptionalProvider[T any](target *T, path string) func(Parser, DataFetcher) (*T, error) {
	return func(parser Parser, fetcher DataFetcher) (*T, error) {
		data, err := fetcher.Fetch()
		if err != nil {
			return nil, fmt.Errorf("reading configuration: %w", err)
		}

		if len(data) > 0 {
			err = parser.Parse(data, target, path)
			if err != nil && !errors.Is(err, ErrSectionNotFound) {
				return nil, fmt.Errorf("parsing section %q: %w", path, err)
			}
		}

		return finish(target, path)
	}
}

func finish[T any](target *T, path string) (*T, error) {
	if defaulter, ok := any(target).(Defaulter); ok {
		if defaulter.SetDefaults() {
			slog.Debug("configuration defaults applied", slog.String("section", path))
		}
	}

	if validator, ok := any(target).(Validator); ok {
		err := validator.Validate()
		if err != nil {
			return nil, fmt.Errorf("validating section %q: %w", path, err)
		}
	}

	return target, nil
}
