package logger

import (
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"
)

// WorkflowInfo identifies the workflow execution a log entry belongs to
type WorkflowInfo struct {
	WorkflowType string
	WorkflowID   string
	RunID        string
	Namespace    string
	TaskQueue    string
}

// GetWorkflowInfo extracts workflow information from workflow.Context.
// Returns nil if workflow info is not available.
func GetWorkflowInfo(ctx workflow.Context) *WorkflowInfo {
	info := workflow.GetInfo(ctx)
	if info == nil {
		return nil
	}

	workflowTypeName := info.WorkflowType.Name
	if workflowTypeName == "" {
		workflowTypeName = "unknown"
	}

	return &WorkflowInfo{
		WorkflowType: workflowTypeName,
		WorkflowID:   info.WorkflowExecution.ID,
		RunID:        info.WorkflowExecution.RunID,
		Namespace:    info.Namespace,
		TaskQueue:    info.TaskQueueName,
	}
}

// WithWorkflowInfo returns a logger carrying the workflow identity as fields.
// The fields become Sentry tags through zapsentry.
func WithWorkflowInfo(info WorkflowInfo) *zap.Logger {
	return log.With(
		zap.String("workflowType", info.WorkflowType),
		zap.String("workflowID", info.WorkflowID),
		zap.String("runID", info.RunID),
		zap.String("namespace", info.Namespace),
		zap.String("taskQueue", info.TaskQueue),
	)
}

// FromWorkflow returns a logger with the workflow identity attached
func FromWorkflow(ctx workflow.Context, info *WorkflowInfo) *zap.Logger {
	if info == nil {
		info = GetWorkflowInfo(ctx)
	}
	if info == nil {
		return log
	}
	return WithWorkflowInfo(*info)
}

// InfoWf logs an info message with workflow context. Nothing is logged during replay.
func InfoWf(ctx workflow.Context, msg string, fields ...zap.Field) {
	if workflow.IsReplaying(ctx) {
		return
	}
	FromWorkflow(ctx, nil).Info(msg, fields...)
}

// ErrorWf logs an error with workflow context. Nothing is logged during replay.
func ErrorWf(ctx workflow.Context, err error, fields ...zap.Field) {
	if workflow.IsReplaying(ctx) {
		return
	}
	l := FromWorkflow(ctx, nil)
	if err != nil {
		l.Error(err.Error(), fields...)
	} else {
		l.Error("error occurred", fields...)
	}
}

// WarnWf logs a warning with workflow context. Nothing is logged during replay.
func WarnWf(ctx workflow.Context, msg string, fields ...zap.Field) {
	if workflow.IsReplaying(ctx) {
		return
	}
	FromWorkflow(ctx, nil).Warn(msg, fields...)
}

// DebugWf logs a debug message with workflow context. Nothing is logged during replay.
func DebugWf(ctx workflow.Context, msg string, fields ...zap.Field) {
	if workflow.IsReplaying(ctx) {
		return
	}
	FromWorkflow(ctx, nil).Debug(msg, fields...)
}
