package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/donation-ledger/pkg/models"
	"github.com/chris/donation-ledger/pkg/storage"
)

// CreateLead puts a new lead with HelpGiven at zero.
func (s *Store) CreateLead(ctx context.Context, lead *models.Lead) (*models.Lead, error) {
	created := *lead
	created.HelpGiven = 0

	item, err := attributevalue.MarshalMap(created)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal lead: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.LeadsTableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return nil, fmt.Errorf("lead %s: %w", lead.Id, storage.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("failed to put lead: %w", err)
	}

	return &created, nil
}

// GetLead retrieves a lead with a strongly consistent read.
func (s *Store) GetLead(ctx context.Context, leadID string) (*models.Lead, error) {
	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.LeadsTableName),
		Key:            idKey(leadID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}
	if result.Item == nil {
		return nil, fmt.Errorf("lead %s: %w", leadID, storage.ErrNotFound)
	}

	var lead models.Lead
	if err := attributevalue.UnmarshalMap(result.Item, &lead); err != nil {
		return nil, fmt.Errorf("failed to unmarshal lead: %w", err)
	}
	return &lead, nil
}

// ListLeads scans the leads table.
func (s *Store) ListLeads(ctx context.Context) ([]models.Lead, error) {
	input := &dynamodb.ScanInput{
		TableName:      aws.String(s.LeadsTableName),
		ConsistentRead: aws.Bool(true),
	}

	var items []map[string]types.AttributeValue
	for {
		result, err := s.Client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leads: %w", err)
		}
		items = append(items, result.Items...)
		if len(result.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}

	leads := []models.Lead{}
	if err := attributevalue.UnmarshalListOfMaps(items, &leads); err != nil {
		return nil, fmt.Errorf("failed to unmarshal leads: %w", err)
	}
	return leads, nil
}

// UpdateLead writes the editable fields, guarded by lead.Version. help_given is never written here.
func (s *Store) UpdateLead(ctx context.Context, lead *models.Lead) error {
	fields := map[string]any{
		":name":           lead.Name,
		":purpose":        lead.Purpose,
		":category":       lead.Category,
		":degree_tags":    nonNilTags(lead.DegreeTags),
		":help_requested": lead.HelpRequested,
		":status":         lead.Status,
		":case_action":    lead.CaseAction,
		":due_date":       lead.DueDate,
		":updated_at":     lead.UpdatedAt,
	}
	values := make(map[string]types.AttributeValue, len(fields)+2)
	for k, v := range fields {
		av, err := attributevalue.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal %s: %w", k, err)
		}
		values[k] = av
	}
	values[":version"] = numberAV(lead.Version)
	values[":inc"] = numberAV(1)

	_, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.LeadsTableName),
		Key:       idKey(lead.Id),
		UpdateExpression: aws.String("SET #name = :name, purpose = :purpose, category = :category, " +
			"degree_tags = :degree_tags, help_requested = :help_requested, #status = :status, " +
			"case_action = :case_action, due_date = :due_date, updated_at = :updated_at, version = version + :inc"),
		ConditionExpression: aws.String("version = :version"),
		ExpressionAttributeNames: map[string]string{
			"#name":   "name",
			"#status": "status",
		},
		ExpressionAttributeValues:           values,
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err != nil {
		if mapped := conditionFailure(err, "lead "+lead.Id, storage.ErrConflict); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to update lead: %w", err)
	}
	return nil
}

// SetHelpGiven overwrites help_given if the lead is still at expectedVersion.
func (s *Store) SetHelpGiven(ctx context.Context, leadID string, expectedVersion, helpGiven int64) error {
	_, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.LeadsTableName),
		Key:                 idKey(leadID),
		UpdateExpression:    aws.String("SET help_given = :help_given, version = version + :inc"),
		ConditionExpression: aws.String("version = :version"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":help_given": numberAV(helpGiven),
			":version":    numberAV(expectedVersion),
			":inc":        numberAV(1),
		},
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err != nil {
		if mapped := conditionFailure(err, "lead "+leadID, storage.ErrConflict); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to set help given: %w", err)
	}
	return nil
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
