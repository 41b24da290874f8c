package main

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"podcaster/internal/configs"
)

func prepConf(t *testing.T, listen string) *configs.Conf {
	t.Helper()
	conf := &configs.Conf{}
	conf.Service.Listen = listen
	conf.Cache.DB = filepath.Join(t.TempDir(), "summaries.bdb")
	conf.SetDefaults()
	return conf
}

func TestRunFailsOnBusyPort(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close() // nolint

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = run(ctx, prepConf(t, ln.Addr().String()), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server failed")
}

func TestRunFailsOnBadCacheFile(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	conf := prepConf(t, "127.0.0.1:0")
	conf.Cache.DB = filepath.Join(blocker, "summaries.bdb")

	err := run(context.Background(), conf, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boltdb")
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, prepConf(t, "127.0.0.1:0"), true) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("run did not stop")
	}
}
