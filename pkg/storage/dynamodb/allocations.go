package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/donation-ledger/pkg/models"
	"github.com/chris/donation-ledger/pkg/storage"
)

// ApplyAllocation appends the batch to the donation and credits every lead in a
// single TransactWriteItems call. Lead credits are atomic ADDs, never read-modify-write.
// The batch id is the idempotency token, so a retried request is applied once.
func (s *Store) ApplyAllocation(ctx context.Context, batch storage.AllocationBatch) error {
	allocsAV, err := attributevalue.Marshal(batch.Allocations)
	if err != nil {
		return fmt.Errorf("failed to marshal allocations: %w", err)
	}
	nowAV, err := attributevalue.Marshal(batch.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	items := make([]types.TransactWriteItem, 0, len(batch.Allocations)+1)
	items = append(items, types.TransactWriteItem{
		// Item 0: append to the donation, guarded by its version and status.
		Update: &types.Update{
			TableName: aws.String(s.DonationsTableName),
			Key:       idKey(batch.DonationId),
			UpdateExpression: aws.String("SET allocations = list_append(if_not_exists(allocations, :empty), :allocs), " +
				"allocated_total = allocated_total + :total, #status = :new_status, updated_at = :now, version = version + :inc"),
			ConditionExpression: aws.String("version = :version AND #status = :verified"),
			ExpressionAttributeNames: map[string]string{
				"#status": "status",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":empty":      &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
				":allocs":     allocsAV,
				":total":      numberAV(batch.Total()),
				":new_status": stringAV(string(batch.NewStatus)),
				":now":        nowAV,
				":inc":        numberAV(1),
				":version":    numberAV(batch.ExpectedVersion),
				":verified":   stringAV(string(models.VERIFIED)),
			},
			ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
		},
	})

	for _, a := range batch.Allocations {
		// Items 1..n: credit each lead unless it is missing or closed.
		items = append(items, types.TransactWriteItem{
			Update: &types.Update{
				TableName:           aws.String(s.LeadsTableName),
				Key:                 idKey(a.LeadId),
				UpdateExpression:    aws.String("ADD help_given :amount, version :inc SET updated_at = :now"),
				ConditionExpression: aws.String("attribute_exists(id) AND #status <> :closed AND (attribute_not_exists(case_action) OR case_action <> :closed)"),
				ExpressionAttributeNames: map[string]string{
					"#status": "status",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":amount": numberAV(a.Amount),
					":inc":    numberAV(1),
					":now":    nowAV,
					":closed": stringAV(string(models.LeadClosed)),
				},
				ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
			},
		})
	}

	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems:      items,
		ClientRequestToken: aws.String(requestToken(batch.BatchId)),
	})
	if err != nil {
		mapped := cancellationFailure(err, func(i int, existed bool) error {
			if i == 0 {
				if !existed {
					return fmt.Errorf("donation %s: %w", batch.DonationId, storage.ErrNotFound)
				}
				return fmt.Errorf("donation %s: %w", batch.DonationId, storage.ErrConflict)
			}
			leadID := batch.Allocations[i-1].LeadId
			if !existed {
				return fmt.Errorf("lead %s: %w", leadID, storage.ErrNotFound)
			}
			return fmt.Errorf("lead %s: %w", leadID, storage.ErrLeadClosed)
		})
		if mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to execute allocation transaction: %w", err)
	}

	return nil
}

// RevertAllocation removes one allocation by index and debits its lead in one transaction.
// The condition on the allocation id keeps a stale index from removing the wrong entry.
func (s *Store) RevertAllocation(ctx context.Context, reversal storage.AllocationReversal) error {
	a := reversal.Allocation
	nowAV, err := attributevalue.Marshal(reversal.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Update: &types.Update{
					TableName: aws.String(s.DonationsTableName),
					Key:       idKey(reversal.DonationId),
					UpdateExpression: aws.String(fmt.Sprintf("REMOVE allocations[%d] "+
						"SET allocated_total = allocated_total - :amount, #status = :new_status, updated_at = :now, version = version + :inc",
						reversal.Index)),
					ConditionExpression: aws.String(fmt.Sprintf("version = :version AND allocations[%d].id = :allocation_id", reversal.Index)),
					ExpressionAttributeNames: map[string]string{
						"#status": "status",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":amount":        numberAV(a.Amount),
						":new_status":    stringAV(string(reversal.NewStatus)),
						":now":           nowAV,
						":inc":           numberAV(1),
						":version":       numberAV(reversal.ExpectedVersion),
						":allocation_id": stringAV(a.Id),
					},
					ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
				},
			},
			{
				Update: &types.Update{
					TableName:           aws.String(s.LeadsTableName),
					Key:                 idKey(a.LeadId),
					UpdateExpression:    aws.String("ADD help_given :debit, version :inc SET updated_at = :now"),
					ConditionExpression: aws.String("attribute_exists(id)"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":debit": numberAV(-a.Amount),
						":inc":   numberAV(1),
						":now":   nowAV,
					},
					ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
				},
			},
		},
		ClientRequestToken: aws.String(requestToken(fmt.Sprintf("revert-%s-%s-%d", reversal.DonationId, a.Id, reversal.ExpectedVersion))),
	}

	_, err = s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		mapped := cancellationFailure(err, func(i int, existed bool) error {
			if i == 0 && existed {
				return fmt.Errorf("donation %s: %w", reversal.DonationId, storage.ErrConflict)
			}
			if i == 0 {
				return fmt.Errorf("donation %s: %w", reversal.DonationId, storage.ErrNotFound)
			}
			return fmt.Errorf("lead %s: %w", a.LeadId, storage.ErrNotFound)
		})
		if mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to execute allocation reversal: %w", err)
	}

	return nil
}
