package dynamodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/donation-ledger/pkg/models"
	"github.com/chris/donation-ledger/pkg/storage"
	"github.com/chris/donation-ledger/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestStore(client DynamoDBAPI) *Store {
	return New(client, "donations", "leads", "activity", "connections")
}

func testBatch() storage.AllocationBatch {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return storage.AllocationBatch{
		BatchId:         "0b0e6a52-7d5c-4b8e-9f0e-2f7f3c1a9d11-0",
		DonationId:      "donation-1",
		ExpectedVersion: 3,
		Allocations: []models.Allocation{
			{Id: "a1", LeadId: "lead-1", Amount: 600, AllocatedAt: now},
			{Id: "a2", LeadId: "lead-2", Amount: 400, AllocatedAt: now},
		},
		NewStatus: models.ALLOCATED,
		UpdatedAt: now,
	}
}

func cancelled(codes ...string) error {
	reasons := make([]types.CancellationReason, len(codes))
	for i, code := range codes {
		reasons[i] = types.CancellationReason{Code: aws.String(code)}
		if code == "ConditionalCheckFailed" {
			reasons[i].Item = map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: "x"}}
		}
	}
	return &types.TransactionCanceledException{CancellationReasons: reasons}
}

func TestApplyAllocation(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		var input *dynamodb.TransactWriteItemsInput
		mockClient.On("TransactWriteItems", mock.Anything, mock.AnythingOfType("*dynamodb.TransactWriteItemsInput")).
			Run(func(args mock.Arguments) { input = args.Get(1).(*dynamodb.TransactWriteItemsInput) }).
			Return(&dynamodb.TransactWriteItemsOutput{}, nil).Once()

		err := store.ApplyAllocation(context.Background(), testBatch())

		require.NoError(t, err)
		require.NotNil(t, input)
		require.Len(t, input.TransactItems, 3)

		donation := input.TransactItems[0].Update
		assert.Equal(t, "donations", *donation.TableName)
		assert.Contains(t, *donation.UpdateExpression, "list_append")
		assert.Equal(t, "version = :version AND #status = :verified", *donation.ConditionExpression)
		assert.Equal(t, &types.AttributeValueMemberN{Value: "1000"}, donation.ExpressionAttributeValues[":total"])
		assert.Equal(t, &types.AttributeValueMemberN{Value: "3"}, donation.ExpressionAttributeValues[":version"])
		assert.Equal(t, &types.AttributeValueMemberS{Value: "Allocated"}, donation.ExpressionAttributeValues[":new_status"])

		lead := input.TransactItems[2].Update
		assert.Equal(t, "leads", *lead.TableName)
		assert.Equal(t, &types.AttributeValueMemberS{Value: "lead-2"}, lead.Key["id"])
		assert.Contains(t, *lead.UpdateExpression, "ADD help_given :amount")
		assert.Equal(t, &types.AttributeValueMemberN{Value: "400"}, lead.ExpressionAttributeValues[":amount"])
		assert.Contains(t, *lead.ConditionExpression, "#status <> :closed")
		assert.Contains(t, *lead.ConditionExpression, "case_action <> :closed")

		require.NotNil(t, input.ClientRequestToken)
		assert.Len(t, *input.ClientRequestToken, 36)
		assert.Equal(t, requestToken(testBatch().BatchId), *input.ClientRequestToken)
		mockClient.AssertExpectations(t)
	})

	cases := []struct {
		name string
		err  error
		want error
	}{
		{"Donation version changed", cancelled("ConditionalCheckFailed", "None", "None"), storage.ErrConflict},
		{"Donation missing", &types.TransactionCanceledException{CancellationReasons: []types.CancellationReason{{Code: aws.String("ConditionalCheckFailed")}}}, storage.ErrNotFound},
		{"Lead closed", cancelled("None", "None", "ConditionalCheckFailed"), storage.ErrLeadClosed},
		{"Concurrent transaction", cancelled("TransactionConflict", "None", "None"), storage.ErrConflict},
		{"Same token in flight", &types.TransactionInProgressException{Message: aws.String("in progress")}, storage.ErrConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockClient := new(mocks.DynamoDBAPI)
			store := newTestStore(mockClient)
			mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, tc.err).Once()

			err := store.ApplyAllocation(context.Background(), testBatch())

			assert.ErrorIs(t, err, tc.want)
			mockClient.AssertExpectations(t)
		})
	}

	t.Run("Missing lead", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)
		err := &types.TransactionCanceledException{CancellationReasons: []types.CancellationReason{
			{Code: aws.String("None")},
			{Code: aws.String("ConditionalCheckFailed")},
			{Code: aws.String("None")},
		}}
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, err).Once()

		got := store.ApplyAllocation(context.Background(), testBatch())

		assert.ErrorIs(t, got, storage.ErrNotFound)
		assert.Contains(t, got.Error(), "lead-1")
	})

	t.Run("Transport failure", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, errors.New("throttled")).Once()

		err := store.ApplyAllocation(context.Background(), testBatch())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to execute allocation transaction")
	})
}

func TestRevertAllocation(t *testing.T) {
	reversal := storage.AllocationReversal{
		DonationId:      "donation-1",
		ExpectedVersion: 4,
		Index:           1,
		Allocation:      models.Allocation{Id: "a2", LeadId: "lead-2", Amount: 400},
		NewStatus:       models.VERIFIED,
	}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		var input *dynamodb.TransactWriteItemsInput
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { input = args.Get(1).(*dynamodb.TransactWriteItemsInput) }).
			Return(&dynamodb.TransactWriteItemsOutput{}, nil).Once()

		require.NoError(t, store.RevertAllocation(context.Background(), reversal))
		require.Len(t, input.TransactItems, 2)
		assert.Contains(t, *input.TransactItems[0].Update.UpdateExpression, "REMOVE allocations[1]")
		assert.Contains(t, *input.TransactItems[0].Update.ConditionExpression, "allocations[1].id = :allocation_id")
		assert.Equal(t, &types.AttributeValueMemberN{Value: "-400"}, input.TransactItems[1].Update.ExpressionAttributeValues[":debit"])
	})

	t.Run("Stale donation", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, cancelled("ConditionalCheckFailed", "None")).Once()

		assert.ErrorIs(t, store.RevertAllocation(context.Background(), reversal), storage.ErrConflict)
	})
}
