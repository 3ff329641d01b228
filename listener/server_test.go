package listener

import (
	"context"
	"io"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freePort(t *testing.T) string {
	t.Helper()

	listenCfg := net.ListenConfig{}

	ln, err := listenCfg.Listen(context.Background(), "tcp", "127.0.0.1:0")
	require.NoError(t, err)

	defer func() { _ = ln.Close() }()

	return ln.Addr().String()
}

func get(t *testing.T, addr string) (int, string) {
	t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://"+addr+"/", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req) //nolint:gosec // test code, URL from test server
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(body)
}

func textHandler(text string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, text)
	})
}

func TestNewServer_Arguments(t *testing.T) {
	t.Parallel()

	_, err := NewServer("", textHandler("x"), Config{}, nil)
	require.ErrorIs(t, err, ErrEmptyName)

	_, err = NewServer("params", nil, Config{}, nil)
	require.ErrorIs(t, err, ErrNilHandler)

	_, err = NewServer("params", textHandler("x"), Config{ShutdownTimeout: -time.Second}, nil)
	require.ErrorIs(t, err, ErrInvalidTimeout)

	srv, err := NewServer("params", textHandler("x"), Config{}, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultAddress, srv.Config().Address)
	assert.Equal(t, DefaultAddress, srv.Addr(), "unstarted servers report the configured address")
}

func TestServer_StartStop(t *testing.T) {
	t.Parallel()

	srv, err := NewServer("params", textHandler("node1"), Config{Address: "127.0.0.1:0"}, nil)
	require.NoError(t, err)

	require.NoError(t, srv.Start(context.Background()))

	addr := srv.Addr()
	assert.NotEqual(t, "127.0.0.1:0", addr)

	status, body := get(t, addr)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "node1", body)

	require.NoError(t, srv.Stop(context.Background()))

	dialer := net.Dialer{Timeout: 100 * time.Millisecond}

	conn, dialErr := dialer.DialContext(context.Background(), "tcp", addr)
	if dialErr == nil {
		_ = conn.Close()
	}

	assert.Error(t, dialErr, "should not be able to connect after stop")
}

func TestServer_StartFailure(t *testing.T) {
	t.Parallel()

	listenCfg := net.ListenConfig{}

	ln, err := listenCfg.Listen(context.Background(), "tcp", "127.0.0.1:0")
	require.NoError(t, err)

	defer func() { _ = ln.Close() }()

	srv, err := NewServer("params", textHandler("x"), Config{Address: ln.Addr().String()}, nil)
	require.NoError(t, err)

	require.ErrorIs(t, srv.Start(context.Background()), ErrListenFailed)
}

func TestServer_ServeErrorCallsOnServeErr(t *testing.T) {
	t.Parallel()

	var called atomic.Bool

	srv, err := NewServer("params", textHandler("x"), Config{Address: "127.0.0.1:0"}, func() {
		called.Store(true)
	})
	require.NoError(t, err)
	require.NoError(t, srv.Start(context.Background()))

	// closing the listener behind the http.Server's back is a serve error
	_ = srv.listener.Close()

	assert.Eventually(t, called.Load, time.Second, 10*time.Millisecond)
}

func TestServer_StopTimesOut(t *testing.T) {
	t.Parallel()

	received := make(chan struct{})
	release := make(chan struct{})

	handler := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		close(received)
		<-release
	})

	srv, err := NewServer("params", handler, Config{Address: "127.0.0.1:0", ShutdownTimeout: 50 * time.Millisecond}, nil)
	require.NoError(t, err)
	require.NoError(t, srv.Start(context.Background()))

	defer close(release)

	go func() {
		req, reqErr := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://"+srv.Addr(), nil)
		if reqErr != nil {
			return
		}

		resp, doErr := http.DefaultClient.Do(req) //nolint:gosec // test code, URL from test server
		if doErr == nil {
			_ = resp.Body.Close()
		}
	}()

	<-received

	require.ErrorIs(t, srv.Stop(context.Background()), ErrShutdownFailed)
}
