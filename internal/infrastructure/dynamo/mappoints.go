package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/verdant-studio/portal-api/internal/domain"
)

// MapPointRepo provides typed DynamoDB operations for the map points table.
type MapPointRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewMapPointRepo(client *dynamodb.Client, tableName string) *MapPointRepo {
	return &MapPointRepo{client: client, tableName: tableName}
}

func (r *MapPointRepo) Put(ctx context.Context, p *domain.MapPoint) error {
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return fmt.Errorf("marshal map point: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *MapPointRepo) Get(ctx context.Context, pointID string) (*domain.MapPoint, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("point_id", pointID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("map point not found: %w", domain.ErrNotFound)
	}
	var p domain.MapPoint
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Scan returns every map point. The marketing map shows all of them at once.
func (r *MapPointRepo) Scan(ctx context.Context) ([]domain.MapPoint, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}
	var points []domain.MapPoint
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &points); err != nil {
		return nil, err
	}
	return points, nil
}

func (r *MapPointRepo) Update(ctx context.Context, pointID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	expr, names, values, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("point_id", pointID),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	return err
}

func (r *MapPointRepo) Delete(ctx context.Context, pointID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("point_id", pointID),
	})
	return err
}
