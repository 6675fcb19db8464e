package handler

import (
	"net/http"

	"billing-engine/internal/adapter/http/dto"
	"billing-engine/internal/core/ports"
	"billing-engine/internal/service"
	"billing-engine/pkg/apperror"
	"billing-engine/pkg/response"

	"github.com/gin-gonic/gin"
)

// PassTrigger starts a billing pass if one of the same mode is not already
// running. The scheduler implements this next to its cron firings so manual
// and scheduled runs share one overlap guard.
type PassTrigger interface {
	TryRunNow(mode service.PassMode) bool
}

// BillingHandler handles operator endpoints for the billing processor.
type BillingHandler struct {
	trigger PassTrigger
}

// NewBillingHandler creates a new BillingHandler.
func NewBillingHandler(trigger PassTrigger) *BillingHandler {
	return &BillingHandler{trigger: trigger}
}

// Run handles POST /api/v1/billing/run. The pass executes in the background;
// a 202 only means it was started.
func (h *BillingHandler) Run(c *gin.Context) {
	var req dto.BillingRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	mode, err := service.ParsePassMode(req.Mode)
	if err != nil {
		response.Error(c, apperror.ErrInvalidRunMode(req.Mode))
		return
	}

	if !h.trigger.TryRunNow(mode) {
		response.Error(c, apperror.ErrRunInProgress(string(mode)))
		return
	}

	response.Accepted(c, dto.BillingRunResponse{
		Mode:    string(mode),
		Started: true,
	})
}

// HealthCheck handles GET /health, verifying each wired dependency.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}

		deps := make(map[string]depStatus)
		allHealthy := true

		for _, checker := range checkers {
			if err := checker.Ping(c.Request.Context()); err != nil {
				deps[checker.Name()] = depStatus{Status: "unhealthy", Error: err.Error()}
				allHealthy = false
			} else {
				deps[checker.Name()] = depStatus{Status: "healthy"}
			}
		}

		status := "healthy"
		httpCode := http.StatusOK
		if !allHealthy {
			status = "degraded"
			httpCode = http.StatusServiceUnavailable
		}

		c.JSON(httpCode, gin.H{
			"status":       status,
			"dependencies": deps,
		})
	}
}
