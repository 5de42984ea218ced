package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"github.com/chris/donation-ledger/pkg/storage"
	"github.com/google/uuid"
)

// DynamoDBAPI is the subset of the DynamoDB client used by the store.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// Store implements the Storage interface using AWS DynamoDB.
type Store struct {
	Client               DynamoDBAPI
	DonationsTableName   string
	LeadsTableName       string
	ActivityTableName    string
	ConnectionsTableName string
}

// New creates a new Store.
func New(client DynamoDBAPI, donationsTable, leadsTable, activityTable, connectionsTable string) *Store {
	return &Store{
		Client:               client,
		DonationsTableName:   donationsTable,
		LeadsTableName:       leadsTable,
		ActivityTableName:    activityTable,
		ConnectionsTableName: connectionsTable,
	}
}

// Make sure we conform to the interface
var _ storage.Backend = (*Store)(nil)

const (
	donationStatusIndex = "status-created_at-index"
	activityIndex       = "gsi1pk-timestamp-index"
	activityPartition   = "ACTIVITY"
	connectionsIndex    = "pk-index"
)

// requestTokenNamespace scopes the idempotency tokens derived for TransactWriteItems.
var requestTokenNamespace = uuid.MustParse("6f1c2a4e-8d0b-4c57-9a3e-2b7f5d1e9c60")

// requestToken derives a ClientRequestToken (at most 36 characters) from an arbitrary key.
func requestToken(key string) string {
	return uuid.NewSHA1(requestTokenNamespace, []byte(key)).String()
}

func numberAV(n int64) types.AttributeValue {
	return &types.AttributeValueMemberN{Value: strconv.FormatInt(n, 10)}
}

func stringAV(s string) types.AttributeValue {
	return &types.AttributeValueMemberS{Value: s}
}

func idKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{"id": stringAV(id)}
}

// conditionFailure translates a failed conditional write. With ALL_OLD returned on
// failure, an empty item means the record did not exist.
func conditionFailure(err error, what string, otherwise error) error {
	var condErr *types.ConditionalCheckFailedException
	if !errors.As(err, &condErr) {
		return nil
	}
	if len(condErr.Item) == 0 {
		return fmt.Errorf("%s: %w", what, storage.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", what, otherwise)
}

// cancellationFailure translates a cancelled transaction using the per-item reasons.
// reasonErr maps the index of the failed item and whether it existed to a storage error.
func cancellationFailure(err error, reasonErr func(i int, existed bool) error) error {
	// A transaction with the same request token is still being applied.
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "TransactionInProgressException" {
		return fmt.Errorf("transaction in progress: %w", storage.ErrConflict)
	}

	var txErr *types.TransactionCanceledException
	if !errors.As(err, &txErr) {
		return nil
	}
	for i, reason := range txErr.CancellationReasons {
		if reason.Code == nil {
			continue
		}
		switch *reason.Code {
		case "ConditionalCheckFailed":
			return reasonErr(i, len(reason.Item) > 0)
		case "TransactionConflict":
			return fmt.Errorf("transaction conflict on item %d: %w", i, storage.ErrConflict)
		}
	}
	return nil
}
