// internal/api/handlers.go
package api

import (
	"context"
	"io"
	"net/http"

	"transit-report/internal/common/errors"
	"transit-report/internal/common/logger"
	"transit-report/internal/models"
	"transit-report/internal/planner"

	"github.com/gin-gonic/gin"
)

// IdempotencyHeader carries the plan id of a create-plan request.
const IdempotencyHeader = "Idempotency-Key"

// PlanService is the part of planner.Service the HTTP surface uses.
type PlanService interface {
	CreatePlan(ctx context.Context, planID string, input *models.CreateResearchTaskInput) (*models.CreatePlanResult, error)
	MaterializeElements(ctx context.Context, planID string) (*models.ElementSet, error)
	GetElements(ctx context.Context, planID string) (*models.ElementSet, error)
}

type PlanHandler struct {
	service PlanService
	logger  logger.Logger
}

func NewPlanHandler(service PlanService, log logger.Logger) *PlanHandler {
	return &PlanHandler{
		service: service,
		logger:  log.With(map[string]interface{}{"component": "api"}),
	}
}

// POST /api/powerpoint/create-plan
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		RespondError(c, errors.NewInputValidationFailedError(err.Error()))
		return
	}

	input, err := planner.DecodeInput(raw)
	if err != nil {
		RespondError(c, err)
		return
	}

	planID := planner.PlanIDFor(c.GetHeader(IdempotencyHeader), input)

	result, err := h.service.CreatePlan(c.Request.Context(), planID, input)
	if err != nil {
		h.logger.Warn("create plan failed", map[string]interface{}{
			"planId": planID,
			"code":   string(errors.CodeOf(err)),
		})
		RespondError(c, err)
		return
	}

	RespondOK(c, result)
}

type materializeRequest struct {
	PlanID string `json:"planId" binding:"required"`
}

// POST /api/powerpoint/slide-elements
func (h *PlanHandler) MaterializeElements(c *gin.Context) {
	var req materializeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, errors.NewInputValidationFailedError(err.Error()))
		return
	}

	set, err := h.service.MaterializeElements(c.Request.Context(), req.PlanID)
	if err != nil {
		RespondError(c, err)
		return
	}

	RespondOK(c, set)
}

// GET /api/powerpoint/slide-elements/:planId
func (h *PlanHandler) GetElements(c *gin.Context) {
	set, err := h.service.GetElements(c.Request.Context(), c.Param("planId"))
	if err != nil {
		RespondError(c, err)
		return
	}

	RespondOK(c, set)
}

// ReadyCheck reports whether a dependency can serve traffic.
type ReadyCheck func(ctx context.Context) error

func HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// Ready runs every check and fails on the first error.
func Ready(checks map[string]ReadyCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		for name, check := range checks {
			if err := check(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "dependency": name, "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
