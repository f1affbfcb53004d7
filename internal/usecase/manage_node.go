package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/trebuchet-org/solscripts/internal/domain"
)

// ManageNode handles local anvil node operations
type ManageNode struct {
	anvilManager AnvilManager
	progress     ProgressSink
}

// NewManageNode creates a new node management use case
func NewManageNode(anvilManager AnvilManager, progress ProgressSink) *ManageNode {
	return &ManageNode{
		anvilManager: anvilManager,
		progress:     progress,
	}
}

// Node operations
const (
	NodeStart   = "start"
	NodeStop    = "stop"
	NodeRestart = "restart"
	NodeStatus  = "status"
	NodeLogs    = "logs"
)

// ManageNodeParams contains parameters for node operations
type ManageNodeParams struct {
	Operation string
	Name      string
	Port      string
	ChainID   string
	ForkURL   string
	// Logs receives the log stream for the logs operation
	Logs io.Writer
}

// ManageNodeResult contains the result of node operations
type ManageNodeResult struct {
	Operation string
	Instance  *domain.AnvilInstance
	Status    *domain.AnvilStatus
	Message   string
}

// Run performs the node operation
func (m *ManageNode) Run(ctx context.Context, params ManageNodeParams) (*ManageNodeResult, error) {
	instance := &domain.AnvilInstance{
		Name:    params.Name,
		Port:    params.Port,
		ChainID: params.ChainID,
		ForkURL: params.ForkURL,
	}

	switch params.Operation {
	case NodeStart:
		return m.start(ctx, instance)
	case NodeStop:
		return m.stop(ctx, instance)
	case NodeRestart:
		return m.restart(ctx, instance)
	case NodeStatus:
		return m.status(ctx, instance)
	case NodeLogs:
		if params.Logs == nil {
			return nil, fmt.Errorf("no log writer given")
		}
		if err := m.anvilManager.StreamLogs(ctx, instance, params.Logs); err != nil {
			return nil, err
		}
		return &ManageNodeResult{Operation: NodeLogs, Instance: instance}, nil
	default:
		return nil, fmt.Errorf("unknown operation: %s", params.Operation)
	}
}

func (m *ManageNode) start(ctx context.Context, instance *domain.AnvilInstance) (*ManageNodeResult, error) {
	m.progress.Info(fmt.Sprintf("Starting anvil node '%s' on port %s", instance.Name, instance.Port))

	status, err := m.anvilManager.GetStatus(ctx, instance)
	if err == nil && status.Running {
		return nil, fmt.Errorf("anvil '%s' is already running (PID %d)", instance.Name, status.PID)
	}

	if err := m.anvilManager.Start(ctx, instance); err != nil {
		return nil, fmt.Errorf("failed to start anvil: %w", err)
	}

	status, err = m.anvilManager.GetStatus(ctx, instance)
	if err != nil {
		return nil, fmt.Errorf("failed to get status after start: %w", err)
	}

	return &ManageNodeResult{
		Operation: NodeStart,
		Instance:  instance,
		Status:    status,
		Message:   fmt.Sprintf("Anvil '%s' started with PID %d", instance.Name, status.PID),
	}, nil
}

func (m *ManageNode) stop(ctx context.Context, instance *domain.AnvilInstance) (*ManageNodeResult, error) {
	status, err := m.anvilManager.GetStatus(ctx, instance)
	if err != nil || !status.Running {
		return &ManageNodeResult{
			Operation: NodeStop,
			Instance:  instance,
			Message:   fmt.Sprintf("Anvil '%s' is not running", instance.Name),
		}, nil
	}

	m.progress.Info(fmt.Sprintf("Stopping anvil '%s'", instance.Name))
	if err := m.anvilManager.Stop(ctx, instance); err != nil {
		return nil, fmt.Errorf("failed to stop anvil: %w", err)
	}

	return &ManageNodeResult{
		Operation: NodeStop,
		Instance:  instance,
		Message:   fmt.Sprintf("Anvil '%s' stopped", instance.Name),
	}, nil
}

func (m *ManageNode) restart(ctx context.Context, instance *domain.AnvilInstance) (*ManageNodeResult, error) {
	m.progress.Info(fmt.Sprintf("Restarting anvil '%s'", instance.Name))

	status, err := m.anvilManager.GetStatus(ctx, instance)
	if err == nil && status.Running {
		if err := m.anvilManager.Stop(ctx, instance); err != nil {
			return nil, fmt.Errorf("failed to stop anvil: %w", err)
		}
	}

	if err := m.anvilManager.Start(ctx, instance); err != nil {
		return nil, fmt.Errorf("failed to start anvil: %w", err)
	}

	status, err = m.anvilManager.GetStatus(ctx, instance)
	if err != nil {
		return nil, fmt.Errorf("failed to get status after restart: %w", err)
	}

	return &ManageNodeResult{
		Operation: NodeRestart,
		Instance:  instance,
		Status:    status,
		Message:   fmt.Sprintf("Anvil '%s' restarted with PID %d", instance.Name, status.PID),
	}, nil
}

func (m *ManageNode) status(ctx context.Context, instance *domain.AnvilInstance) (*ManageNodeResult, error) {
	status, err := m.anvilManager.GetStatus(ctx, instance)
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}

	return &ManageNodeResult{
		Operation: NodeStatus,
		Instance:  instance,
		Status:    status,
	}, nil
}
