package rest

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/feral-file/ff-raffle/internal/api/shared/constants"
	"github.com/feral-file/ff-raffle/internal/api/shared/dto"
	"github.com/feral-file/ff-raffle/internal/api/shared/executor"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// ListRaffles retrieves the current raffles
	// GET /api/v1/raffles
	ListRaffles(c *gin.Context)

	// GetRaffle retrieves a single raffle by its ID
	// GET /api/v1/raffles/:id
	GetRaffle(c *gin.Context)

	// GetWinners retrieves the winners recorded on-chain for a raffle
	// GET /api/v1/raffles/:id/winners
	GetWinners(c *gin.Context)

	// GetVerification re-derives the winners of a completed raffle
	// GET /api/v1/raffles/:id/verification
	GetVerification(c *gin.Context)

	// ReceiveWebhook accepts an indexer notification (requires the webhook secret)
	// POST /api/v1/webhooks/goldsky
	ReceiveWebhook(c *gin.Context)

	// TriggerReconcile starts a reconciliation of a raffle type (requires authentication)
	// POST /api/v1/admin/raffle-types/:type/reconcile
	TriggerReconcile(c *gin.Context)

	// ReissueJob re-issues the pending job of a raffle (requires authentication)
	// POST /api/v1/admin/raffles/:id/jobs/:kind
	ReissueJob(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	executor executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(exec executor.Executor) Handler {
	return &handler{
		executor: exec,
	}
}

// ListRaffles retrieves the current raffles
func (h *handler) ListRaffles(c *gin.Context) {
	raffles, err := h.executor.ListRaffles(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list raffles")
		return
	}

	c.JSON(http.StatusOK, raffles)
}

// GetRaffle retrieves a single raffle by its ID
func (h *handler) GetRaffle(c *gin.Context) {
	raffleID, ok := raffleIDParam(c)
	if !ok {
		return
	}

	raffle, err := h.executor.GetRaffle(c.Request.Context(), raffleID)
	if err != nil {
		respondError(c, err, "Failed to get raffle")
		return
	}

	c.JSON(http.StatusOK, raffle)
}

// GetWinners retrieves the winners recorded on-chain for a raffle
func (h *handler) GetWinners(c *gin.Context) {
	raffleID, ok := raffleIDParam(c)
	if !ok {
		return
	}

	winners, err := h.executor.GetWinners(c.Request.Context(), raffleID)
	if err != nil {
		respondError(c, err, "Failed to get winners")
		return
	}

	c.JSON(http.StatusOK, winners)
}

// GetVerification re-derives the winners of a completed raffle
func (h *handler) GetVerification(c *gin.Context) {
	raffleID, ok := raffleIDParam(c)
	if !ok {
		return
	}

	verification, err := h.executor.GetVerification(c.Request.Context(), raffleID)
	if err != nil {
		respondError(c, err, "Failed to verify raffle")
		return
	}

	c.JSON(http.StatusOK, verification)
}

// ReceiveWebhook accepts an indexer notification. The body is kept raw for the dedup key.
func (h *handler) ReceiveWebhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, constants.MAX_WEBHOOK_BODY_BYTES+1))
	if err != nil {
		respondBadRequest(c, "Failed to read request body", err.Error())
		return
	}
	if len(body) > constants.MAX_WEBHOOK_BODY_BYTES {
		respondBadRequest(c, "Request body too large")
		return
	}

	resp, err := h.executor.IngestWebhook(c.Request.Context(), body)
	if err != nil {
		respondError(c, err, "Failed to ingest webhook")
		return
	}

	c.JSON(http.StatusAccepted, resp)
}

// TriggerReconcile starts a reconciliation of a raffle type
func (h *handler) TriggerReconcile(c *gin.Context) {
	resp, err := h.executor.TriggerReconcile(c.Request.Context(), c.Param("type"))
	if err != nil {
		respondError(c, err, "Failed to trigger reconciliation")
		return
	}

	c.JSON(http.StatusAccepted, resp)
}

// ReissueJob re-issues the pending job of a raffle
func (h *handler) ReissueJob(c *gin.Context) {
	raffleID, ok := raffleIDParam(c)
	if !ok {
		return
	}

	resp, err := h.executor.ReissueJob(c.Request.Context(), raffleID, c.Param("kind"))
	if err != nil {
		respondError(c, err, "Failed to re-issue job")
		return
	}

	c.JSON(http.StatusAccepted, resp)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}

// raffleIDParam reads the :id path parameter and rejects anything that is not a uuid
func raffleIDParam(c *gin.Context) (string, bool) {
	raffleID := c.Param("id")
	if raffleID == "" {
		respondBadRequest(c, "Raffle ID is required")
		return "", false
	}

	if _, err := uuid.Parse(raffleID); err != nil {
		respondBadRequest(c, "Invalid raffle ID", err.Error())
		return "", false
	}

	return raffleID, true
}
