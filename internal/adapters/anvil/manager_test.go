package anvil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/solscripts/internal/domain"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m := NewManager(slog.New(slog.NewTextHandler(io.Discard, nil)))
	m.baseDir = t.TempDir()
	m.pollInterval = 10 * time.Millisecond
	return m
}

func TestBuildAnvilArgs(t *testing.T) {
	tests := []struct {
		name     string
		instance *domain.AnvilInstance
		want     []string
	}{
		{
			name:     "basic",
			instance: &domain.AnvilInstance{Port: "8545"},
			want:     []string{"--port", "8545", "--host", "127.0.0.1"},
		},
		{
			name:     "chain id",
			instance: &domain.AnvilInstance{Port: "9000", ChainID: "31337"},
			want:     []string{"--port", "9000", "--host", "127.0.0.1", "--chain-id", "31337"},
		},
		{
			name:     "fork",
			instance: &domain.AnvilInstance{Port: "9000", ChainID: "5", ForkURL: "https://goerli.example.org"},
			want: []string{
				"--port", "9000",
				"--host", "127.0.0.1",
				"--chain-id", "5",
				"--fork-url", "https://goerli.example.org",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildAnvilArgs(tt.instance))
		})
	}
}

func TestSetFilePaths(t *testing.T) {
	m := newTestManager(t)

	t.Run("defaults", func(t *testing.T) {
		instance := &domain.AnvilInstance{}
		m.setFilePaths(instance)
		assert.Equal(t, DefaultAnvilName, instance.Name)
		assert.Equal(t, DefaultAnvilPort, instance.Port)
		assert.Equal(t, filepath.Join(m.baseDir, "solscripts-anvil.pid"), instance.PidFile)
		assert.Equal(t, filepath.Join(m.baseDir, "solscripts-anvil.log"), instance.LogFile)
	})

	t.Run("named", func(t *testing.T) {
		instance := &domain.AnvilInstance{Name: "goerli-fork", Port: "9545"}
		m.setFilePaths(instance)
		assert.Equal(t, filepath.Join(m.baseDir, "solscripts-goerli-fork.pid"), instance.PidFile)
	})

	t.Run("preset paths preserved", func(t *testing.T) {
		instance := &domain.AnvilInstance{PidFile: "/custom/my.pid", LogFile: "/custom/my.log"}
		m.setFilePaths(instance)
		assert.Equal(t, "/custom/my.pid", instance.PidFile)
		assert.Equal(t, "/custom/my.log", instance.LogFile)
	})
}

// newBlockNumberServer answers eth_blockNumber with the given hex value
func newBlockNumberServer(t *testing.T, result string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			return
		}
		assert.Equal(t, "eth_blockNumber", req.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":` + string(req.ID) + `,"result":"` + result + `"}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func serverPort(server *httptest.Server) string {
	parts := strings.Split(server.URL, ":")
	return parts[len(parts)-1]
}

func TestGetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("not running", func(t *testing.T) {
		m := newTestManager(t)
		status, err := m.GetStatus(ctx, &domain.AnvilInstance{Name: "idle"})
		require.NoError(t, err)
		assert.False(t, status.Running)
		assert.Equal(t, "http://127.0.0.1:8545", status.RPCURL)
	})

	t.Run("stale pid file", func(t *testing.T) {
		m := newTestManager(t)
		instance := &domain.AnvilInstance{Name: "stale"}
		m.setFilePaths(instance)
		require.NoError(t, os.WriteFile(instance.PidFile, []byte("not-a-pid"), 0644))

		status, err := m.GetStatus(ctx, instance)
		require.NoError(t, err)
		assert.False(t, status.Running)
	})

	t.Run("running and healthy", func(t *testing.T) {
		m := newTestManager(t)
		server := newBlockNumberServer(t, "0x2a")
		instance := &domain.AnvilInstance{Name: "live", Port: serverPort(server)}
		m.setFilePaths(instance)
		require.NoError(t, writePidFile(instance.PidFile, os.Getpid()))

		status, err := m.GetStatus(ctx, instance)
		require.NoError(t, err)
		assert.True(t, status.Running)
		assert.Equal(t, os.Getpid(), status.PID)
		assert.True(t, status.RPCHealthy)
		assert.Equal(t, uint64(42), status.BlockNumber)
	})

	t.Run("start refuses a running instance", func(t *testing.T) {
		m := newTestManager(t)
		instance := &domain.AnvilInstance{Name: "busy"}
		m.setFilePaths(instance)
		require.NoError(t, writePidFile(instance.PidFile, os.Getpid()))

		err := m.Start(ctx, instance)
		assert.ErrorContains(t, err, "already running")
	})
}

func TestStartTimeoutCleansUp(t *testing.T) {
	m := newTestManager(t)
	m.startupWait = 200 * time.Millisecond

	// Stands in for an anvil that never opens its RPC port
	pidOut := filepath.Join(m.baseDir, "child.pid")
	m.binary = filepath.Join(m.baseDir, "fake-anvil")
	script := "#!/bin/sh\necho $$ > " + pidOut + "\nexec sleep 30\n"
	require.NoError(t, os.WriteFile(m.binary, []byte(script), 0755))

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := strconv.Itoa(listener.Addr().(*net.TCPAddr).Port)
	require.NoError(t, listener.Close())

	instance := &domain.AnvilInstance{Name: "slow", Port: port}
	err = m.Start(context.Background(), instance)
	assert.ErrorContains(t, err, "did not answer")
	assert.NoFileExists(t, instance.PidFile)

	data, err := os.ReadFile(pidOut)
	require.NoError(t, err)
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	require.NoError(t, err)
	assert.False(t, processAlive(pid), "node process %d left running", pid)
}

func TestStopWithoutPidFile(t *testing.T) {
	m := newTestManager(t)
	assert.NoError(t, m.Stop(context.Background(), &domain.AnvilInstance{Name: "gone"}))
}

func TestStreamLogs(t *testing.T) {
	m := newTestManager(t)
	instance := &domain.AnvilInstance{Name: "logs"}
	m.setFilePaths(instance)
	require.NoError(t, os.WriteFile(instance.LogFile, []byte("Listening on 127.0.0.1:8545\n"), 0644))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	var buf bytes.Buffer
	require.NoError(t, m.StreamLogs(ctx, instance, &buf))
	assert.Equal(t, "Listening on 127.0.0.1:8545\n", buf.String())
}

func TestStreamLogsMissingFile(t *testing.T) {
	m := newTestManager(t)
	err := m.StreamLogs(context.Background(), &domain.AnvilInstance{Name: "none"}, io.Discard)
	assert.ErrorContains(t, err, "log file does not exist")
}
