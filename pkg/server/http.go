package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"demo-app-api/internal/adapters/storage"
	"demo-app-api/internal/middleware"
	"demo-app-api/pkg/lambda"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// localInvocationTimeout bounds a request served by the local HTTP server,
// standing in for the Lambda runtime deadline
const localInvocationTimeout = 30 * time.Second

// localFunctionName identifies the local server in analytics
const localFunctionName = "demo-app-local"

// NewHTTPHandler builds the gin engine for local development. Every /lambda/*
// request is dispatched through the same router as the Lambda function.
func NewHTTPHandler(c *Container) *gin.Engine {
	cfg := c.Config

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Recovery(c.Logger))
	engine.Use(middleware.StructuredLogger(c.Logger))
	engine.Use(middleware.SecurityHeaders())
	engine.Use(middleware.CORS())
	engine.Use(middleware.RateLimiter(c.Logger, cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))
	if cfg.Server.MaxBodyBytes > 0 {
		engine.Use(middleware.RequestSizeLimit(cfg.Server.MaxBodyBytes))
	}

	engine.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"status":      "healthy",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"version":     Version,
			"environment": cfg.Environment,
		})
	})

	// Swagger documentation
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	engine.GET("/files", listFiles(c.Files))

	engine.Any("/lambda/*path", func(ctx *gin.Context) {
		dispatchHTTP(ctx, c)
	})

	engine.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, gin.H{
			"error":  "Route not found",
			"path":   ctx.Request.URL.Path,
			"method": ctx.Request.Method,
		})
	})

	return engine
}

type listFilesResponse struct {
	Success bool                   `json:"success"`
	Data    []storage.FileMetadata `json:"data"`
	Count   int                    `json:"count"`
}

// listFiles returns the first page of the files bucket
// @Summary List files
// @Description List up to 1000 objects of the files bucket
// @Tags files
// @Produce json
// @Success 200 {object} listFilesResponse
// @Failure 500 {object} map[string]any
// @Router /files [get]
func listFiles(files storage.FileStorage) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		page, err := files.List(ctx.Request.Context(), nil)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Failed to list files",
				"message": err.Error(),
			})
			return
		}

		ctx.JSON(http.StatusOK, listFilesResponse{
			Success: true,
			Data:    page.Files,
			Count:   len(page.Files),
		})
	}
}

// dispatchHTTP converts an HTTP request into a lambda.Request, runs it
// through the router and writes the response back
func dispatchHTTP(ctx *gin.Context, c *Container) {
	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			ctx.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request too large"})
			return
		}
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), localInvocationTimeout)
	defer cancel()

	deadline, _ := reqCtx.Deadline()
	req := &lambda.Request{
		Method:      ctx.Request.Method,
		Path:        ctx.Request.URL.Path,
		Headers:     flatten(ctx.Request.Header),
		QueryParams: flatten(ctx.Request.URL.Query()),
		Body:        body,
		Context: &lambda.ExecutionContext{
			RequestID:          ctx.GetString(middleware.RequestIDKey),
			FunctionName:       localFunctionName,
			InvokedFunctionARN: fmt.Sprintf("arn:aws:lambda:%s:000000000000:function:%s", c.Config.AWS.Region, localFunctionName),
			Deadline:           deadline,
		},
	}

	resp := c.Router.Dispatch(reqCtx, req)
	for k, v := range resp.Headers {
		ctx.Header(k, v)
	}
	ctx.Data(resp.StatusCode, resp.Headers["Content-Type"], resp.Body)
}

// flatten keeps the first value of each multi-valued entry
func flatten(values map[string][]string) map[string]string {
	out := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}
