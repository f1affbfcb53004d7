package anvil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/trebuchet-org/solscripts/internal/domain"
	"github.com/trebuchet-org/solscripts/internal/usecase"
)

const (
	DefaultAnvilName = "anvil"
	DefaultAnvilPort = "8545"

	stopTimeout   = 5 * time.Second
	healthTimeout = 2 * time.Second
)

// Manager runs anvil as a background process tracked through PID and log files
type Manager struct {
	binary  string
	baseDir string
	log     *slog.Logger

	// startupWait is how long Start polls the RPC endpoint before giving up
	startupWait time.Duration
	// pollInterval is used by StreamLogs and the startup probe
	pollInterval time.Duration
}

// NewManager creates a manager that keeps its files under /tmp
func NewManager(log *slog.Logger) *Manager {
	return &Manager{
		binary:       "anvil",
		baseDir:      os.TempDir(),
		log:          log.With("component", "anvil"),
		startupWait:  10 * time.Second,
		pollInterval: 200 * time.Millisecond,
	}
}

// setFilePaths fills in defaults. Preset paths are kept.
func (m *Manager) setFilePaths(instance *domain.AnvilInstance) {
	if strings.TrimSpace(instance.Name) == "" {
		instance.Name = DefaultAnvilName
	}
	if strings.TrimSpace(instance.Port) == "" {
		instance.Port = DefaultAnvilPort
	}
	if instance.PidFile == "" {
		instance.PidFile = filepath.Join(m.baseDir, fmt.Sprintf("solscripts-%s.pid", instance.Name))
	}
	if instance.LogFile == "" {
		instance.LogFile = filepath.Join(m.baseDir, fmt.Sprintf("solscripts-%s.log", instance.Name))
	}
}

func buildAnvilArgs(instance *domain.AnvilInstance) []string {
	args := []string{"--port", instance.Port, "--host", "127.0.0.1"}
	if instance.ChainID != "" {
		args = append(args, "--chain-id", instance.ChainID)
	}
	if instance.ForkURL != "" {
		args = append(args, "--fork-url", instance.ForkURL)
	}
	return args
}

// Start launches anvil detached from the CLI and waits until its RPC answers
func (m *Manager) Start(ctx context.Context, instance *domain.AnvilInstance) error {
	m.setFilePaths(instance)
	if m.isRunning(instance) {
		return fmt.Errorf("anvil '%s' is already running (PID file exists at %s)", instance.Name, instance.PidFile)
	}

	logFile, err := os.Create(instance.LogFile)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer logFile.Close()

	cmd := exec.Command(m.binary, buildAnvilArgs(instance)...)
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	m.log.Debug("starting anvil", "args", cmd.Args, "log", instance.LogFile)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start anvil: %w", err)
	}

	if err := writePidFile(instance.PidFile, cmd.Process.Pid); err != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return fmt.Errorf("failed to write PID file: %w", err)
	}

	// abort tears down a node that never became healthy
	abort := func() {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		_ = os.Remove(instance.PidFile)
	}

	deadline := time.Now().Add(m.startupWait)
	for {
		if _, err := m.blockNumber(ctx, instance); err == nil {
			_ = cmd.Process.Release()
			return nil
		} else if time.Now().After(deadline) {
			abort()
			return fmt.Errorf("anvil did not answer on %s within %s (see %s): %w",
				instance.RPCURL(), m.startupWait, instance.LogFile, err)
		}
		select {
		case <-ctx.Done():
			abort()
			return ctx.Err()
		case <-time.After(m.pollInterval):
		}
	}
}

// Stop sends SIGTERM and removes the PID file
func (m *Manager) Stop(ctx context.Context, instance *domain.AnvilInstance) error {
	m.setFilePaths(instance)
	pid, err := readPidFile(instance.PidFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read PID file: %w", err)
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("failed to find process: %w", err)
	}
	if err := process.Signal(syscall.SIGTERM); err != nil && !errors.Is(err, os.ErrProcessDone) {
		if err := process.Kill(); err != nil {
			return fmt.Errorf("failed to kill process: %w", err)
		}
	}

	deadline := time.Now().Add(stopTimeout)
	for processAlive(pid) {
		if time.Now().After(deadline) {
			_ = process.Kill()
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}

	if err := os.Remove(instance.PidFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

// GetStatus reports whether the process is alive and whether its RPC responds
func (m *Manager) GetStatus(ctx context.Context, instance *domain.AnvilInstance) (*domain.AnvilStatus, error) {
	m.setFilePaths(instance)
	status := &domain.AnvilStatus{
		RPCURL:  instance.RPCURL(),
		LogFile: instance.LogFile,
	}

	pid, err := readPidFile(instance.PidFile)
	if err != nil || !processAlive(pid) {
		return status, nil
	}
	status.Running = true
	status.PID = pid

	block, err := m.blockNumber(ctx, instance)
	if err != nil {
		status.Error = err.Error()
		return status, nil
	}
	status.RPCHealthy = true
	status.BlockNumber = block
	return status, nil
}

// StreamLogs copies the log file to writer and follows it until ctx is cancelled
func (m *Manager) StreamLogs(ctx context.Context, instance *domain.AnvilInstance, writer io.Writer) error {
	m.setFilePaths(instance)
	file, err := os.Open(instance.LogFile)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("log file does not exist: %s", instance.LogFile)
		}
		return err
	}
	defer file.Close()

	for {
		if _, err := io.Copy(writer, file); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(m.pollInterval):
		}
	}
}

func (m *Manager) blockNumber(ctx context.Context, instance *domain.AnvilInstance) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	client, err := rpc.DialContext(ctx, instance.RPCURL())
	if err != nil {
		return 0, err
	}
	defer client.Close()

	var block hexutil.Uint64
	if err := client.CallContext(ctx, &block, "eth_blockNumber"); err != nil {
		return 0, err
	}
	return uint64(block), nil
}

func (m *Manager) isRunning(instance *domain.AnvilInstance) bool {
	pid, err := readPidFile(instance.PidFile)
	return err == nil && processAlive(pid)
}

func processAlive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}

func readPidFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid PID in file: %s", string(data))
	}
	return pid, nil
}

func writePidFile(path string, pid int) error {
	return os.WriteFile(path, []byte(strconv.Itoa(pid)), 0644)
}

var _ usecase.AnvilManager = (*Manager)(nil)
