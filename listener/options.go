package listener

import "time"

// Option adjusts the Config of a listener.
type Option func(*Config)

// WithConfig replaces the whole Config, typically with the "http" section
// of the service configuration. Later options still apply on top.
func WithConfig(cfg Config) Option {
	return func(c *Config) {
		*c = cfg
	}
}

// WithAddress sets the address to listen on.
func WithAddress(addr string) Option {
	return func(c *Config) {
		c.Address = addr
	}
}

// WithReadHeaderTimeout sets how long a client may take to send headers.
func WithReadHeaderTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.ReadHeaderTimeout = timeout
	}
}
