package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/aoadenus/CIS-3343-Group-Project-sub004/internal/domain"
	pkgconfig "github.com/aoadenus/CIS-3343-Group-Project-sub004/pkg/config"
)

// DynamoStore keeps everything in one table:
//
//	ORDER#<id> / METADATA          order records (GSI1: TOKEN#<token>, GSI2: ORDER by created_at)
//	CUSTOMER#<id> / METADATA       customer records
//	ACTIVITY / <ts>#<uuid>         append-only activity log
//	COUNTER#orders / METADATA      id sequence (atomic ADD)
type DynamoStore struct {
	client    *dynamodb.Client
	tableName string
	timeout   time.Duration
}

const (
	skMetadata   = "METADATA"
	pkActivity   = "ACTIVITY"
	pkOrderIndex = "ORDER"
)

func NewDynamoDBClient(cfg *pkgconfig.Config) (*dynamodb.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return nil, err
	}

	if cfg.DynamoDBEndpoint != "" {
		return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}), nil
	}
	return dynamodb.NewFromConfig(awsCfg), nil
}

func NewDynamoStore(client *dynamodb.Client, tableName string, timeout time.Duration) *DynamoStore {
	return &DynamoStore{
		client:    client,
		tableName: tableName,
		timeout:   timeout,
	}
}

func (s *DynamoStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

func (s *DynamoStore) NextOrderID(ctx context.Context) (int, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	out, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: "COUNTER#orders"},
			"SK": &types.AttributeValueMemberS{Value: skMetadata},
		},
		UpdateExpression: aws.String("ADD seq :one"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, &domain.DependencyError{Op: "store.next_order_id", Err: err}
	}

	var seq struct {
		Seq int `dynamodbav:"seq"`
	}
	if err := attributevalue.UnmarshalMap(out.Attributes, &seq); err != nil {
		return 0, &domain.DependencyError{Op: "store.next_order_id", Err: err}
	}
	return seq.Seq, nil
}

func (s *DynamoStore) CreateOrder(ctx context.Context, order *domain.Order) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	av, err := attributevalue.MarshalMap(order)
	if err != nil {
		return &domain.DependencyError{Op: "store.create_order", Err: fmt.Errorf("marshal order: %w", err)}
	}

	av["PK"] = &types.AttributeValueMemberS{Value: orderPK(order.ID)}
	av["SK"] = &types.AttributeValueMemberS{Value: skMetadata}
	av["GSI1PK"] = &types.AttributeValueMemberS{Value: "TOKEN#" + order.TrackingToken}
	av["GSI1SK"] = &types.AttributeValueMemberS{Value: skMetadata}
	av["GSI2PK"] = &types.AttributeValueMemberS{Value: pkOrderIndex}
	av["GSI2SK"] = &types.AttributeValueMemberS{Value: order.CreatedAt.UTC().Format(time.RFC3339Nano)}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		var cond *types.ConditionalCheckFailedException
		if errors.As(err, &cond) {
			return domain.ErrConflict
		}
		return &domain.DependencyError{Op: "store.create_order", Err: err}
	}
	return nil
}

func (s *DynamoStore) GetOrder(ctx context.Context, id int) (*domain.Order, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: orderPK(id)},
			"SK": &types.AttributeValueMemberS{Value: skMetadata},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, &domain.DependencyError{Op: "store.get_order", Err: err}
	}
	if len(out.Item) == 0 {
		return nil, domain.ErrNotFound
	}

	var order domain.Order
	if err := attributevalue.UnmarshalMap(out.Item, &order); err != nil {
		return nil, &domain.DependencyError{Op: "store.get_order", Err: err}
	}
	return &order, nil
}

func (s *DynamoStore) GetOrderByToken(ctx context.Context, token string) (*domain.Order, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	out, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		IndexName:              aws.String("GSI1"),
		KeyConditionExpression: aws.String("GSI1PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: "TOKEN#" + token},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, &domain.DependencyError{Op: "store.get_order_by_token", Err: err}
	}
	if len(out.Items) == 0 {
		return nil, domain.ErrNotFound
	}

	var order domain.Order
	if err := attributevalue.UnmarshalMap(out.Items[0], &order); err != nil {
		return nil, &domain.DependencyError{Op: "store.get_order_by_token", Err: err}
	}
	return &order, nil
}

func (s *DynamoStore) UpdateOrder(ctx context.Context, order *domain.Order, expectedVersion int64) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	order.Version = expectedVersion + 1

	av, err := attributevalue.MarshalMap(order)
	if err != nil {
		order.Version = expectedVersion
		return &domain.DependencyError{Op: "store.update_order", Err: fmt.Errorf("marshal order: %w", err)}
	}
	av["PK"] = &types.AttributeValueMemberS{Value: orderPK(order.ID)}
	av["SK"] = &types.AttributeValueMemberS{Value: skMetadata}
	av["GSI1PK"] = &types.AttributeValueMemberS{Value: "TOKEN#" + order.TrackingToken}
	av["GSI1SK"] = &types.AttributeValueMemberS{Value: skMetadata}
	av["GSI2PK"] = &types.AttributeValueMemberS{Value: pkOrderIndex}
	av["GSI2SK"] = &types.AttributeValueMemberS{Value: order.CreatedAt.UTC().Format(time.RFC3339Nano)}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(PK) AND version = :expected"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", expectedVersion)},
		},
	})
	if err != nil {
		order.Version = expectedVersion
		var cond *types.ConditionalCheckFailedException
		if errors.As(err, &cond) {
			return domain.ErrConflict
		}
		return &domain.DependencyError{Op: "store.update_order", Err: err}
	}
	return nil
}

func (s *DynamoStore) ListOrdersSince(ctx context.Context, since time.Time) ([]*domain.Order, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	out, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		IndexName:              aws.String("GSI2"),
		KeyConditionExpression: aws.String("GSI2PK = :pk AND GSI2SK >= :since"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":    &types.AttributeValueMemberS{Value: pkOrderIndex},
			":since": &types.AttributeValueMemberS{Value: since.UTC().Format(time.RFC3339Nano)},
		},
	})
	if err != nil {
		return nil, &domain.DependencyError{Op: "store.list_orders", Err: err}
	}

	orders := make([]*domain.Order, 0, len(out.Items))
	for _, item := range out.Items {
		var order domain.Order
		if err := attributevalue.UnmarshalMap(item, &order); err != nil {
			return nil, &domain.DependencyError{Op: "store.list_orders", Err: err}
		}
		orders = append(orders, &order)
	}
	return orders, nil
}

func (s *DynamoStore) CreateCustomer(ctx context.Context, customer *domain.Customer) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	av, err := attributevalue.MarshalMap(customer)
	if err != nil {
		return &domain.DependencyError{Op: "store.create_customer", Err: fmt.Errorf("marshal customer: %w", err)}
	}
	av["PK"] = &types.AttributeValueMemberS{Value: fmt.Sprintf("CUSTOMER#%d", customer.ID)}
	av["SK"] = &types.AttributeValueMemberS{Value: skMetadata}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      av,
	})
	if err != nil {
		return &domain.DependencyError{Op: "store.create_customer", Err: err}
	}
	return nil
}

func (s *DynamoStore) GetCustomer(ctx context.Context, id int) (*domain.Customer, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("CUSTOMER#%d", id)},
			"SK": &types.AttributeValueMemberS{Value: skMetadata},
		},
	})
	if err != nil {
		return nil, &domain.DependencyError{Op: "store.get_customer", Err: err}
	}
	if len(out.Item) == 0 {
		return nil, domain.ErrNotFound
	}

	var customer domain.Customer
	if err := attributevalue.UnmarshalMap(out.Item, &customer); err != nil {
		return nil, &domain.DependencyError{Op: "store.get_customer", Err: err}
	}
	return &customer, nil
}

func (s *DynamoStore) AppendActivity(ctx context.Context, item domain.ActivityItem) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return &domain.DependencyError{Op: "store.append_activity", Err: fmt.Errorf("marshal activity: %w", err)}
	}
	av["PK"] = &types.AttributeValueMemberS{Value: pkActivity}
	av["SK"] = &types.AttributeValueMemberS{Value: item.Timestamp.UTC().Format(time.RFC3339Nano) + "#" + item.ID}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      av,
	})
	if err != nil {
		return &domain.DependencyError{Op: "store.append_activity", Err: err}
	}
	return nil
}

func (s *DynamoStore) ListActivities(ctx context.Context, limit int) ([]domain.ActivityItem, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	out, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: pkActivity},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(int32(limit)),
	})
	if err != nil {
		return nil, &domain.DependencyError{Op: "store.list_activities", Err: err}
	}

	items := make([]domain.ActivityItem, 0, len(out.Items))
	for _, raw := range out.Items {
		var item domain.ActivityItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			return nil, &domain.DependencyError{Op: "store.list_activities", Err: err}
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})
	return items, nil
}

func orderPK(id int) string {
	return fmt.Sprintf("ORDER#%d", id)
}
