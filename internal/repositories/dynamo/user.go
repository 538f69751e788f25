package dynamo

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sirupsen/logrus"

	"demo-app-api/internal/models"
	"demo-app-api/internal/repositories"
)

// API is the subset of the DynamoDB client used by the repository
type API interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// UserRepository implements repositories.UserRepository on a DynamoDB table
// keyed by the "id" string attribute.
type UserRepository struct {
	client    API
	tableName string
	logger    *logrus.Logger
}

// NewUserRepository creates a new DynamoDB user repository
func NewUserRepository(client API, tableName string, logger *logrus.Logger) *UserRepository {
	return &UserRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// Put stores the user unconditionally; an item with the same id is replaced
func (r *UserRepository) Put(ctx context.Context, user *models.User) error {
	if err := user.Validate(); err != nil {
		return repositories.ValidationError(repositories.UserEntity, user.ID, err)
	}

	item, err := attributevalue.MarshalMap(user)
	if err != nil {
		return repositories.MarshalError("put", repositories.UserEntity, user.ID, err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return repositories.NewRepositoryError("put", repositories.UserEntity, user.ID, err)
	}

	r.logger.WithFields(logrus.Fields{
		"table":   r.tableName,
		"user_id": user.ID,
	}).Debug("User stored")

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, repositories.NewRepositoryError("get", repositories.UserEntity, id, err)
	}

	if out.Item == nil {
		return nil, repositories.NotFoundError(repositories.UserEntity, id)
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(out.Item, &user); err != nil {
		return nil, repositories.MarshalError("get", repositories.UserEntity, id, err)
	}

	return &user, nil
}

// List scans the whole table, following pagination until the last page
func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	proj := expression.NamesList(
		expression.Name("id"),
		expression.Name("name"),
		expression.Name("email"),
		expression.Name("createdAt"),
		expression.Name("updatedAt"),
		expression.Name("source"),
	)

	expr, err := expression.NewBuilder().WithProjection(proj).Build()
	if err != nil {
		return nil, repositories.NewRepositoryError("scan", repositories.UserEntity, "", err)
	}

	paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName:                aws.String(r.tableName),
		ProjectionExpression:     expr.Projection(),
		ExpressionAttributeNames: expr.Names(),
	})

	users := make([]*models.User, 0)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, repositories.NewRepositoryError("scan", repositories.UserEntity, "", err)
		}

		var batch []models.User
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, repositories.MarshalError("scan", repositories.UserEntity, "", err)
		}

		for i := range batch {
			users = append(users, &batch[i])
		}
	}

	return users, nil
}

// Count runs a count-only scan over the table
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
		Select:    types.SelectCount,
	})

	var total int64
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return 0, repositories.NewRepositoryError("count", repositories.UserEntity, "", err)
		}
		total += int64(page.Count)
	}

	return total, nil
}
