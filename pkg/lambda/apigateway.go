package lambda

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
)

// FromAPIGateway converts an API Gateway proxy event into a Request, pulling the
// execution metadata out of the invocation context.
func FromAPIGateway(ctx context.Context, event events.APIGatewayProxyRequest) *Request {
	return &Request{
		Method:      event.HTTPMethod,
		Path:        event.Path,
		Headers:     event.Headers,
		QueryParams: event.QueryStringParameters,
		Body:        []byte(event.Body),
		PathParams:  event.PathParameters,
		Context:     ExecutionContextFrom(ctx),
	}
}

// ExecutionContextFrom builds an ExecutionContext from the Lambda runtime context
func ExecutionContextFrom(ctx context.Context) *ExecutionContext {
	ec := &ExecutionContext{
		FunctionName: lambdacontext.FunctionName,
	}

	if lc, ok := lambdacontext.FromContext(ctx); ok {
		ec.RequestID = lc.AwsRequestID
		ec.InvokedFunctionARN = lc.InvokedFunctionArn
	}

	if deadline, ok := ctx.Deadline(); ok {
		ec.Deadline = deadline
	}

	return ec
}

// ToAPIGateway converts a Response into the API Gateway proxy response shape
func ToAPIGateway(resp *Response) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       string(resp.Body),
	}
}
