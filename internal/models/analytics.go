package models

import (
	"fmt"
	"strings"
)

// AnalyticsSnapshot is a read-only aggregation computed on demand
type AnalyticsSnapshot struct {
	TotalUsers        int64  `json:"totalUsers"`
	TotalFiles        int64  `json:"totalFiles"`
	LambdaInvocations int64  `json:"lambdaInvocations"`
	Timestamp         string `json:"timestamp"`
	Region            string `json:"region"`
	FunctionName      string `json:"functionName"`
}

// RegionFromARN extracts the region (fourth field) from an ARN such as
// arn:aws:lambda:us-east-1:123456789012:function:name.
func RegionFromARN(arn string) (string, error) {
	parts := strings.Split(arn, ":")
	if len(parts) < 4 {
		return "", fmt.Errorf("invalid function ARN %q", arn)
	}
	return parts[3], nil
}
