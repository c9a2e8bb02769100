package dto

import "time"

// WebhookAcceptedResponse represents the response for an accepted webhook notification
type WebhookAcceptedResponse struct {
	EventID  string `json:"event_id"`
	DedupKey string `json:"dedup_key"`
}

// TriggerReconcileResponse represents the response for triggering a reconciliation
type TriggerReconcileResponse struct {
	RaffleType string `json:"raffle_type"`
	WorkflowID string `json:"workflow_id"`
}

// ReissueJobResponse represents the response for re-issuing a raffle job
type ReissueJobResponse struct {
	Key         string    `json:"key"`
	Kind        string    `json:"kind"`
	RaffleID    string    `json:"raffle_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status string `json:"status"`
}
