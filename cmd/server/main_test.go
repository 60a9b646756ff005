package main

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/auction-house/internal/config"
)

func testConfig(port string) *config.Config {
	return &config.Config{
		Port:          port,
		GinMode:       "test",
		LogLevel:      "error",
		DBDriver:      config.DriverSQLite,
		SQLitePath:    ":memory:",
		SessionStore:  config.SessionStoreCookie,
		SessionSecret: "main-test-secret",
	}
}

func freePort(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return strconv.Itoa(port)
}

func TestRun_ListenFailureIsReturned(t *testing.T) {
	busy, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = busy.Close() })
	port := strconv.Itoa(busy.Addr().(*net.TCPAddr).Port)

	done := make(chan error, 1)
	go func() { done <- run(context.Background(), testConfig(port)) }()

	select {
	case err := <-done:
		assert.ErrorContains(t, err, "failed to start server")
	case <-time.After(10 * time.Second):
		t.Fatal("run did not return after the listener failed")
	}
}

func TestRun_SetupFailureIsReturned(t *testing.T) {
	cfg := testConfig(freePort(t))
	cfg.SessionStore = "memcached"

	err := run(context.Background(), cfg)
	assert.ErrorContains(t, err, "unsupported session store")
}

func TestRun_ShutsDownOnCancel(t *testing.T) {
	port := freePort(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- run(ctx, testConfig(port)) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://127.0.0.1:" + port + "/health")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}
