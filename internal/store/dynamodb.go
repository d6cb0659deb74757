package store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"

	"github.com/sakarghimire/product-management-service/internal/product"
)

// RecordStore keeps product records in a DynamoDB table keyed by "id".
type RecordStore struct {
	client    dynamodbiface.DynamoDBAPI
	tableName string
}

func NewRecordStore(client dynamodbiface.DynamoDBAPI, tableName string) *RecordStore {
	return &RecordStore{
		client:    client,
		tableName: tableName,
	}
}

func (s *RecordStore) key(id string) map[string]*dynamodb.AttributeValue {
	return map[string]*dynamodb.AttributeValue{
		"id": {
			S: aws.String(id),
		},
	}
}

// Get returns product.ErrNotFound when the table has no item for id.
func (s *RecordStore) Get(ctx context.Context, id string) (*product.Record, error) {
	// Strongly consistent so a read right after a delete reports not found.
	out, err := s.client.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.tableName),
		Key:            s.key(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get product %q: %w", id, err)
	}

	if len(out.Item) == 0 {
		return nil, product.ErrNotFound
	}

	var rec product.Record
	if err := dynamodbattribute.UnmarshalMap(out.Item, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product %q: %w", id, err)
	}

	return &rec, nil
}

func (s *RecordStore) Put(ctx context.Context, rec *product.Record) error {
	item, err := dynamodbattribute.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal product: %w", err)
	}

	_, err = s.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put product %q: %w", rec.ID, err)
	}

	return nil
}

// List scans every page of the table.
func (s *RecordStore) List(ctx context.Context) ([]product.Record, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(s.tableName),
	}

	var (
		records   []product.Record
		decodeErr error
	)
	err := s.client.ScanPagesWithContext(ctx, input, func(page *dynamodb.ScanOutput, _ bool) bool {
		var batch []product.Record
		if err := dynamodbattribute.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			decodeErr = err
			return false
		}
		records = append(records, batch...)
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan products: %w", err)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("failed to unmarshal products: %w", decodeErr)
	}

	return records, nil
}

// Delete succeeds when the item is already gone.
func (s *RecordStore) Delete(ctx context.Context, id string) error {
	_, err := s.client.DeleteItemWithContext(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key:       s.key(id),
	})
	if err != nil {
		return fmt.Errorf("failed to delete product %q: %w", id, err)
	}

	return nil
}
