package handlers

import (
	"context"
	"net/http"

	"demo-app-api/internal/models"
	"demo-app-api/internal/services"
	"demo-app-api/pkg/lambda"
)

// AnalyticsHandler handles analytics requests
type AnalyticsHandler struct {
	analyticsService services.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

type analyticsResponse struct {
	Success bool                      `json:"success"`
	Data    *models.AnalyticsSnapshot `json:"data"`
}

// HandleAnalytics reports store sizes and invocation metadata
// @Summary Get analytics
// @Tags analytics
// @Produce json
// @Success 200 {object} analyticsResponse
// @Failure 500 {object} ErrorResponse
// @Router /lambda/analytics [get]
func (h *AnalyticsHandler) HandleAnalytics(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	inv := &services.Invocation{}
	if ec := req.Context; ec != nil {
		inv.FunctionName = ec.FunctionName
		inv.InvokedFunctionARN = ec.InvokedFunctionARN
		inv.RemainingTimeMillis = ec.RemainingTimeInMillis()
	}

	snapshot, err := h.analyticsService.GetAnalytics(ctx, inv)
	if err != nil {
		return errorResponse(http.StatusInternalServerError, "Failed to get analytics", err)
	}

	return lambda.JSON(http.StatusOK, analyticsResponse{
		Success: true,
		Data:    snapshot,
	})
}
