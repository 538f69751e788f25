package lambda

import (
	"encoding/json"
	"fmt"
)

// Headers returned on every response
const (
	HeaderAllowHeaders = "Content-Type,X-Amz-Date,Authorization,X-Api-Key,X-Amz-Security-Token"
	HeaderAllowMethods = "GET,POST,PUT,DELETE,OPTIONS"
)

// DefaultHeaders returns a fresh copy of the JSON and CORS headers every
// response carries
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Headers": HeaderAllowHeaders,
		"Access-Control-Allow-Methods": HeaderAllowMethods,
	}
}

// JSON builds a response with the default headers and body encoded as JSON
func JSON(statusCode int, body any) (*Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode response body: %w", err)
	}

	return &Response{
		StatusCode: statusCode,
		Headers:    DefaultHeaders(),
		Body:       data,
	}, nil
}
