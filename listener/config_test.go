package listener

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_SetDefaults(t *testing.T) {
	t.Parallel()

	var cfg Config

	assert.True(t, cfg.SetDefaults())
	assert.Equal(t, DefaultAddress, cfg.Address)
	assert.Equal(t, DefaultReadHeaderTimeout, cfg.ReadHeaderTimeout)
	assert.Equal(t, DefaultShutdownTimeout, cfg.ShutdownTimeout)
	assert.False(t, cfg.SetDefaults())

	custom := Config{Address: ":9090", ReadHeaderTimeout: time.Second, ShutdownTimeout: time.Minute}
	assert.False(t, custom.SetDefaults())
	assert.Equal(t, ":9090", custom.Address)
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, (&Config{Address: ":8080"}).Validate())
	require.ErrorIs(t, (&Config{}).Validate(), ErrEmptyAddress)
	require.ErrorIs(t, (&Config{Address: ":1", ReadHeaderTimeout: -1}).Validate(), ErrInvalidTimeout)
	require.ErrorIs(t, (&Config{Address: ":1", ShutdownTimeout: -1}).Validate(), ErrInvalidTimeout)
}

func TestOptions(t *testing.T) {
	t.Parallel()

	var cfg Config

	for _, apply := range []Option{
		WithConfig(Config{Address: ":1", ShutdownTimeout: time.Second}),
		WithAddress(":2"),
		WithReadHeaderTimeout(3 * time.Second),
	} {
		apply(&cfg)
	}

	assert.Equal(t, Config{Address: ":2", ReadHeaderTimeout: 3 * time.Second, ShutdownTimeout: time.Second}, cfg)
}
