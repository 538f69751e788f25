package lambda

import (
	"context"
	"time"
)

// Request represents a generic HTTP request for serverless functions
type Request struct {
	Method      string            `json:"method"`
	Path        string            `json:"path"`
	Headers     map[string]string `json:"headers"`
	QueryParams map[string]string `json:"query_params"`
	Body        []byte            `json:"body"`
	PathParams  map[string]string `json:"path_params"`
	Context     *ExecutionContext `json:"context,omitempty"`
}

// ExecutionContext carries runtime metadata about the current invocation
type ExecutionContext struct {
	RequestID          string    `json:"request_id"`
	FunctionName       string    `json:"function_name"`
	InvokedFunctionARN string    `json:"invoked_function_arn"`
	Deadline           time.Time `json:"deadline"`
}

// RemainingTimeInMillis returns the time left before the runtime deadline.
// A zero deadline means the runtime did not set one.
func (e *ExecutionContext) RemainingTimeInMillis() int64 {
	if e == nil || e.Deadline.IsZero() {
		return 0
	}
	remaining := time.Until(e.Deadline).Milliseconds()
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Response represents a generic HTTP response for serverless functions
type Response struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers"`
	Body       []byte            `json:"body"`
}

// HandlerFunc is a framework-agnostic handler interface
type HandlerFunc func(ctx context.Context, req *Request) (*Response, error)
