package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/donation-ledger/pkg/models"
)

// AppendActivity puts an audit entry. The condition makes the table append-only.
func (s *Store) AppendActivity(ctx context.Context, entry *models.ActivityLogEntry) error {
	record := *entry
	record.GSI1PK = activityPartition

	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("failed to marshal activity entry: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.ActivityTableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return fmt.Errorf("failed to put activity entry: %w", err)
	}
	return nil
}

// ListActivity returns the most recent entries, newest first.
func (s *Store) ListActivity(ctx context.Context, limit int32) ([]models.ActivityLogEntry, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.ActivityTableName),
		IndexName:              aws.String(activityIndex),
		KeyConditionExpression: aws.String("gsi1pk = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": stringAV(activityPartition),
		},
		ScanIndexForward: aws.Bool(false), // Sort by timestamp in descending order
		Limit:            &limit,
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity log: %w", err)
	}

	entries := []models.ActivityLogEntry{}
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal activity entries: %w", err)
	}
	return entries, nil
}
