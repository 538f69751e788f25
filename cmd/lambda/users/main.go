package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"

	"demo-app-api/internal/router"
	"demo-app-api/pkg/lambda"
	"demo-app-api/pkg/server"
)

type proxyHandler func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// newHandler dispatches every event through the container held by manager.
// The container is built on the first invocation and reused while the
// execution environment stays warm.
func newHandler(manager *server.ConnectionManager) proxyHandler {
	return func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		container, err := manager.GetContainer(ctx)
		if err != nil {
			manager.Logger().WithError(err).Error("Failed to initialize container")
			return lambda.ToAPIGateway(router.InternalError(err.Error())), nil
		}

		resp := container.Router.Dispatch(ctx, lambda.FromAPIGateway(ctx, event))
		return lambda.ToAPIGateway(resp), nil
	}
}

func main() {
	awslambda.Start(newHandler(server.NewConnectionManager()))
}
