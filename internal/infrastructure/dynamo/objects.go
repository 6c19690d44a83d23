package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/verdant-studio/portal-api/internal/domain"
)

// ObjectRepo provides typed DynamoDB operations for the objects table.
type ObjectRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewObjectRepo(client *dynamodb.Client, tableName string) *ObjectRepo {
	return &ObjectRepo{client: client, tableName: tableName}
}

func (r *ObjectRepo) Put(ctx context.Context, o *domain.Object) error {
	item, err := attributevalue.MarshalMap(o)
	if err != nil {
		return fmt.Errorf("marshal object: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *ObjectRepo) Get(ctx context.Context, objectID string) (*domain.Object, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("object_id", objectID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("object not found: %w", domain.ErrNotFound)
	}
	var o domain.Object
	if err := attributevalue.UnmarshalMap(out.Item, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *ObjectRepo) Update(ctx context.Context, objectID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	expr, names, values, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("object_id", objectID),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	return err
}

func (r *ObjectRepo) Delete(ctx context.Context, objectID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("object_id", objectID),
	})
	return err
}

// ScanPage returns a page of objects for the staff listing.
func (r *ObjectRepo) ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.Object, string, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
		Limit:     aws.Int32(limit),
	}
	if cursor != "" {
		objectID, err := decodeCursor(cursor)
		if err != nil {
			return nil, "", fmt.Errorf("invalid cursor: %w", domain.ErrBadRequest)
		}
		input.ExclusiveStartKey = strKey("object_id", objectID)
	}
	out, err := r.client.Scan(ctx, input)
	if err != nil {
		return nil, "", err
	}
	var objects []domain.Object
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &objects); err != nil {
		return nil, "", err
	}
	nextCursor := ""
	if v, ok := out.LastEvaluatedKey["object_id"].(*types.AttributeValueMemberS); ok {
		nextCursor = encodeCursor(v.Value)
	}
	return objects, nextCursor, nil
}

// ListByMember scans for objects whose member_emails contain the given email.
// Member lists are short, so a filtered scan is acceptable at portal volume.
func (r *ObjectRepo) ListByMember(ctx context.Context, email string) ([]domain.Object, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName:        aws.String(r.tableName),
		FilterExpression: aws.String("contains(member_emails, :e)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":e": &types.AttributeValueMemberS{Value: email},
		},
	})
	if err != nil {
		return nil, err
	}
	var objects []domain.Object
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &objects); err != nil {
		return nil, err
	}
	return objects, nil
}
