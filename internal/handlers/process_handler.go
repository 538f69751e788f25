package handlers

import (
	"context"
	"net/http"

	"demo-app-api/internal/models"
	"demo-app-api/internal/services"
	"demo-app-api/pkg/lambda"
)

// ProcessingHandler handles data processing requests
type ProcessingHandler struct {
	processingService services.ProcessingService
}

// NewProcessingHandler creates a new processing handler
func NewProcessingHandler(processingService services.ProcessingService) *ProcessingHandler {
	return &ProcessingHandler{
		processingService: processingService,
	}
}

type processResponse struct {
	Success    bool                    `json:"success"`
	Data       *models.ProcessedRecord `json:"data"`
	S3Location string                  `json:"s3Location"`
}

// HandleProcess stores the request body as a processed record
// @Summary Process data
// @Description Wrap the payload in a processed record and store it in the processed-data bucket
// @Tags processing
// @Accept json
// @Produce json
// @Param payload body object false "Arbitrary JSON object; a records array is counted"
// @Success 200 {object} processResponse
// @Failure 500 {object} ErrorResponse
// @Router /lambda/process [post]
func (h *ProcessingHandler) HandleProcess(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	result, err := h.processingService.ProcessData(ctx, parseJSONObject(req.Body))
	if err != nil {
		return errorResponse(http.StatusInternalServerError, "Failed to process data", err)
	}

	return lambda.JSON(http.StatusOK, processResponse{
		Success:    true,
		Data:       result.Record,
		S3Location: result.Location,
	})
}
