// Package listener runs the HTTP endpoints of the parameter service as
// named Fx modules.
package listener

import (
	"errors"
	"fmt"
	"time"
)

// Defaults applied by Config.SetDefaults.
const (
	DefaultAddress           = ":8080"
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultShutdownTimeout   = 15 * time.Second
)

var (
	// ErrEmptyAddress is returned when the address is empty.
	ErrEmptyAddress = errors.New("address must not be empty")
	// ErrInvalidTimeout is returned for negative timeouts.
	ErrInvalidTimeout = errors.New("timeout must not be negative")
	// ErrListenFailed is returned when the server cannot bind its address.
	ErrListenFailed = errors.New("failed to listen")
	// ErrShutdownFailed is returned when the server does not drain in time.
	ErrShutdownFailed = errors.New("shutdown failed")
	// ErrEmptyName is returned when the listener name is empty.
	ErrEmptyName = errors.New("listener name must not be empty")
	// ErrNilHandler is returned when a nil http.Handler is provided.
	ErrNilHandler = errors.New("handler must not be nil")
)

// Config is the "http" section of the service configuration.
type Config struct {
	Address           string        `yaml:"address"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	// ShutdownTimeout bounds Stop when the caller's context has no deadline.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// SetDefaults fills unset fields and reports whether it changed anything.
func (c *Config) SetDefaults() bool {
	changed := false

	if c.Address == "" {
		c.Address = DefaultAddress
		changed = true
	}

	if c.ReadHeaderTimeout == 0 {
		c.ReadHeaderTimeout = DefaultReadHeaderTimeout
		changed = true
	}

	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
		changed = true
	}

	return changed
}

// Validate checks the Config.
func (c *Config) Validate() error {
	if c.Address == "" {
		return ErrEmptyAddress
	}

	if c.ReadHeaderTimeout < 0 {
		return fmt.Errorf("%w: read_header_timeout %s", ErrInvalidTimeout, c.ReadHeaderTimeout)
	}

	if c.ShutdownTimeout < 0 {
		return fmt.Errorf("%w: shutdown_timeout %s", ErrInvalidTimeout, c.ShutdownTimeout)
	}

	return nil
}
