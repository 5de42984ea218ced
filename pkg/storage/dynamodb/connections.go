package dynamodb

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// connectionTTL matches API Gateway's maximum websocket connection duration.
// Rows left behind by a missed $disconnect expire through the table's TTL on expires_at.
const connectionTTL = 2 * time.Hour

// connectionsPartition is shared by every row so the pk-index lists all subscribers in one query.
const connectionsPartition = "connections"

type connectionRecord struct {
	ConnectionID string `dynamodbav:"connection_id"`
	PK           string `dynamodbav:"pk"`
	ExpiresAt    int64  `dynamodbav:"expires_at"`
}

// AddConnection registers a client subscribed to live ledger updates.
func (s *Store) AddConnection(ctx context.Context, connectionID string) error {
	item, err := attributevalue.MarshalMap(connectionRecord{
		ConnectionID: connectionID,
		PK:           connectionsPartition,
		ExpiresAt:    time.Now().Add(connectionTTL).Unix(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal connection %s: %w", connectionID, err)
	}

	if _, err := s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.ConnectionsTableName),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("failed to store connection %s: %w", connectionID, err)
	}
	return nil
}

// RemoveConnection forgets a client. Unknown ids are ignored.
func (s *Store) RemoveConnection(ctx context.Context, connectionID string) error {
	if _, err := s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.ConnectionsTableName),
		Key:       map[string]types.AttributeValue{"connection_id": stringAV(connectionID)},
	}); err != nil {
		return fmt.Errorf("failed to delete connection %s: %w", connectionID, err)
	}
	return nil
}

// GetAllConnections lists the subscribed connection ids. Rows past their expiry
// that TTL has not yet removed are skipped.
func (s *Store) GetAllConnections(ctx context.Context) ([]string, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.ConnectionsTableName),
		IndexName:              aws.String(connectionsIndex),
		KeyConditionExpression: aws.String("pk = :pk"),
		FilterExpression:       aws.String("expires_at > :now"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":  stringAV(connectionsPartition),
			":now": &types.AttributeValueMemberN{Value: strconv.FormatInt(time.Now().Unix(), 10)},
		},
	}

	ids := []string{}
	paginator := dynamodb.NewQueryPaginator(s.Client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to query connections: %w", err)
		}
		var records []connectionRecord
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &records); err != nil {
			return nil, fmt.Errorf("failed to unmarshal connections: %w", err)
		}
		for _, r := range records {
			ids = append(ids, r.ConnectionID)
		}
	}
	return ids, nil
}
