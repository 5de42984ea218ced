package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/donation-ledger/pkg/models"
	"github.com/chris/donation-ledger/pkg/storage"
)

// CreateDonation puts a new donation, refusing to overwrite an existing id.
func (s *Store) CreateDonation(ctx context.Context, donation *models.Donation) (*models.Donation, error) {
	created := *donation
	created.AllocatedTotal = 0
	created.Allocations = []models.Allocation{}

	item, err := attributevalue.MarshalMap(created)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal donation: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.DonationsTableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return nil, fmt.Errorf("donation %s: %w", donation.Id, storage.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("failed to put donation: %w", err)
	}

	return &created, nil
}

// GetDonation retrieves a donation with a strongly consistent read.
func (s *Store) GetDonation(ctx context.Context, donationID string) (*models.Donation, error) {
	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.DonationsTableName),
		Key:            idKey(donationID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get donation: %w", err)
	}
	if result.Item == nil {
		return nil, fmt.Errorf("donation %s: %w", donationID, storage.ErrNotFound)
	}

	var donation models.Donation
	if err := attributevalue.UnmarshalMap(result.Item, &donation); err != nil {
		return nil, fmt.Errorf("failed to unmarshal donation: %w", err)
	}
	if donation.Allocations == nil {
		donation.Allocations = []models.Allocation{}
	}
	return &donation, nil
}

// ListDonations returns donations, querying the status index when a status is given.
func (s *Store) ListDonations(ctx context.Context, status models.DonationStatus) ([]models.Donation, error) {
	var items []map[string]types.AttributeValue

	if status != "" {
		input := &dynamodb.QueryInput{
			TableName:              aws.String(s.DonationsTableName),
			IndexName:              aws.String(donationStatusIndex),
			KeyConditionExpression: aws.String("#status = :status"),
			ExpressionAttributeNames: map[string]string{
				"#status": "status",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":status": stringAV(string(status)),
			},
			ScanIndexForward: aws.Bool(false),
		}
		for {
			result, err := s.Client.Query(ctx, input)
			if err != nil {
				return nil, fmt.Errorf("failed to query donations by status: %w", err)
			}
			items = append(items, result.Items...)
			if len(result.LastEvaluatedKey) == 0 {
				break
			}
			input.ExclusiveStartKey = result.LastEvaluatedKey
		}
	} else {
		input := &dynamodb.ScanInput{
			TableName:      aws.String(s.DonationsTableName),
			ConsistentRead: aws.Bool(true),
		}
		for {
			result, err := s.Client.Scan(ctx, input)
			if err != nil {
				return nil, fmt.Errorf("failed to scan donations: %w", err)
			}
			items = append(items, result.Items...)
			if len(result.LastEvaluatedKey) == 0 {
				break
			}
			input.ExclusiveStartKey = result.LastEvaluatedKey
		}
	}

	donations := []models.Donation{}
	if err := attributevalue.UnmarshalListOfMaps(items, &donations); err != nil {
		return nil, fmt.Errorf("failed to unmarshal donations: %w", err)
	}
	return donations, nil
}

// TransitionDonation updates the status only if it is still change.From.
func (s *Store) TransitionDonation(ctx context.Context, change storage.StatusChange) error {
	now, err := attributevalue.Marshal(change.At)
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	update := "SET #status = :to, updated_at = :now, version = version + :inc"
	values := map[string]types.AttributeValue{
		":to":   stringAV(string(change.To)),
		":from": stringAV(string(change.From)),
		":now":  now,
		":inc":  numberAV(1),
	}
	if change.To == models.VERIFIED {
		update += ", verified_at = :now, verified_by_id = :actor"
		values[":actor"] = stringAV(change.ActorId)
	}

	_, err = s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.DonationsTableName),
		Key:                 idKey(change.DonationId),
		UpdateExpression:    aws.String(update),
		ConditionExpression: aws.String("#status = :from"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues:           values,
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err != nil {
		if mapped := conditionFailure(err, "donation "+change.DonationId, storage.ErrConflict); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to update donation status: %w", err)
	}
	return nil
}

// RecordPayment stores the gateway transaction id on a pending donation.
func (s *Store) RecordPayment(ctx context.Context, donationID, transactionID string) error {
	now, err := attributevalue.Marshal(time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	_, err = s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.DonationsTableName),
		Key:                 idKey(donationID),
		UpdateExpression:    aws.String("SET transaction_id = :txid, updated_at = :now, version = version + :inc"),
		ConditionExpression: aws.String("#status = :pending"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":txid":    stringAV(transactionID),
			":now":     now,
			":inc":     numberAV(1),
			":pending": stringAV(string(models.PENDING_VERIFICATION)),
		},
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err != nil {
		if mapped := conditionFailure(err, "donation "+donationID, storage.ErrConflict); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to record payment: %w", err)
	}
	return nil
}
