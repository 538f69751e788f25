package server

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ses"

	"demo-app-api/internal/adapters/email"
	"demo-app-api/internal/adapters/storage"
	"demo-app-api/internal/config"
	"demo-app-api/internal/repositories/dynamo"
)

// Clients holds the AWS service clients the container wires into the
// backends. A nil field is created from the AWS config on demand.
type Clients struct {
	DynamoDB dynamo.API
	S3       storage.S3API
	SES      email.SESAPI
}

// needsAWS reports whether any configured backend is an AWS service
func needsAWS(cfg *config.Config) bool {
	return cfg.Users.StoreType == "dynamodb" || cfg.Storage.Type == "s3" || cfg.Email.Provider == "ses"
}

// loadAWSConfig loads the shared AWS configuration for the configured region
// and optional custom endpoint
func loadAWSConfig(ctx context.Context, cfg *config.AWSConfig) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.EndpointURL != "" {
		opts = append(opts, awsconfig.WithBaseEndpoint(cfg.EndpointURL))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return awsCfg, nil
}

// fillClients creates every missing client the configuration needs
func fillClients(ctx context.Context, cfg *config.Config, clients *Clients) error {
	missing := (cfg.Users.StoreType == "dynamodb" && clients.DynamoDB == nil) ||
		(cfg.Storage.Type == "s3" && clients.S3 == nil) ||
		(cfg.Email.Provider == "ses" && clients.SES == nil)
	if !missing {
		return nil
	}

	awsCfg, err := loadAWSConfig(ctx, &cfg.AWS)
	if err != nil {
		return err
	}

	if clients.DynamoDB == nil {
		clients.DynamoDB = dynamodb.NewFromConfig(awsCfg)
	}
	if clients.S3 == nil {
		clients.S3 = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			// Local emulators serve buckets by path rather than virtual host
			o.UsePathStyle = cfg.AWS.EndpointURL != ""
		})
	}
	if clients.SES == nil {
		clients.SES = ses.NewFromConfig(awsCfg)
	}

	return nil
}
