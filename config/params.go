package config

import (
	"errors"
	"fmt"

	"github.com/0xalexb/hjarta-params/parser"
	"github.com/0xalexb/hjarta-params/tree"
)

// Section paths of the service configuration file.
const (
	LogPath    = "log"
	ParamsPath = "params"
	HTTPPath   = "http"
)

var (
	// ErrInvalidNodeCapacity is returned for a negative node capacity.
	ErrInvalidNodeCapacity = errors.New("node_capacity must not be negative")
	// ErrEmptyFilePath is returned when a parameter file entry is blank.
	ErrEmptyFilePath = errors.New("parameter file path must not be empty")
	// ErrInvalidMemoryLimit is returned for a negative memory limit.
	ErrInvalidMemoryLimit = errors.New("memory_limit must not be negative")
)

// Params describes how the parameter tree is built: the files are parsed in
// order, so later files override earlier ones, then the override rules are
// applied on top.
type Params struct {
	Files        []string `yaml:"files"`
	Overrides    []string `yaml:"overrides"`
	NodeCapacity int      `yaml:"node_capacity"`
	// MemoryLimit caps the bytes the tree may hold; zero means no limit.
	MemoryLimit int `yaml:"memory_limit"`
	// SkipMissing logs and skips parameter files that do not exist instead
	// of failing the load.
	SkipMissing bool `yaml:"skip_missing"`
}

// SetDefaults implements Defaulter.
func (p *Params) SetDefaults() bool {
	if p.NodeCapacity == 0 {
		p.NodeCapacity = tree.DefaultNodeCapacity

		return true
	}

	return false
}

// Validate implements Validator. Override rules are checked for syntax
// only; their values are parsed when the tree is built.
func (p *Params) Validate() error {
	if p.NodeCapacity < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidNodeCapacity, p.NodeCapacity)
	}

	if p.MemoryLimit < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMemoryLimit, p.MemoryLimit)
	}

	for i, file := range p.Files {
		if file == "" {
			return fmt.Errorf("%w: files[%d]", ErrEmptyFilePath, i)
		}
	}

	for _, rule := range p.Overrides {
		_, err := parser.SplitOverride(rule)
		if err != nil {
			return err
		}
	}

	return nil
}
