package temporal

import (
	"context"

	"go.temporal.io/sdk/client"
	"go.uber.org/zap"
)

// TemporalOrchestrator starts raffle job and reconcile workflows
//
//go:generate mockgen -source=client.go -destination=../../mocks/temporal_orchestrator.go -package=mocks -mock_names=TemporalOrchestrator=MockTemporalOrchestrator
type TemporalOrchestrator interface {
	ExecuteWorkflow(ctx context.Context, options client.StartWorkflowOptions, workflow interface{}, args ...interface{}) (client.WorkflowRun, error)
}

// Dial connects to a Temporal namespace with the SDK logging through zap
func Dial(hostPort, namespace string, logger *zap.Logger) (client.Client, error) {
	return client.Dial(client.Options{
		HostPort:  hostPort,
		Namespace: namespace,
		Logger:    NewZapLoggerAdapter(logger.Named("temporal")),
	})
}
