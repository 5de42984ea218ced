package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chris/donation-ledger/pkg/audit"
	"github.com/chris/donation-ledger/pkg/metrics"
	"github.com/chris/donation-ledger/pkg/models"
	"github.com/chris/donation-ledger/pkg/notify"
	"github.com/chris/donation-ledger/pkg/storage"
)

// NewLead holds the caller-supplied fields of a lead.
type NewLead struct {
	Name          string    `json:"name"`
	Purpose       string    `json:"purpose"`
	Category      string    `json:"category"`
	DegreeTags    []string  `json:"degreeTags,omitempty"`
	HelpRequested int64     `json:"helpRequested"`
	DueDate       time.Time `json:"dueDate,omitempty"`
}

// LeadUpdate is a partial update of a lead. Nil fields are left unchanged.
// HelpGiven is deliberately absent: only allocations change it.
type LeadUpdate struct {
	Name          *string            `json:"name,omitempty" audit:"name"`
	Purpose       *string            `json:"purpose,omitempty" audit:"purpose"`
	Category      *string            `json:"category,omitempty" audit:"category"`
	DegreeTags    *[]string          `json:"degreeTags,omitempty" audit:"degreeTags"`
	HelpRequested *int64             `json:"helpRequested,omitempty" audit:"helpRequested"`
	Status        *models.LeadStatus `json:"status,omitempty" audit:"status"`
	CaseAction    *models.LeadStatus `json:"caseAction,omitempty" audit:"caseAction"`
	DueDate       *time.Time         `json:"dueDate,omitempty" audit:"dueDate"`
}

func (u LeadUpdate) validate() error {
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return fmt.Errorf("%w: lead name cannot be empty", ErrInvalidArgument)
	}
	if u.HelpRequested != nil && *u.HelpRequested <= 0 {
		return fmt.Errorf("%w: help requested must be positive", ErrInvalidArgument)
	}
	if u.Status != nil && !u.Status.IsValid() {
		return fmt.Errorf("%w: unknown lead status %q", ErrInvalidArgument, *u.Status)
	}
	if u.CaseAction != nil && !u.CaseAction.IsValid() {
		return fmt.Errorf("%w: unknown case action %q", ErrInvalidArgument, *u.CaseAction)
	}
	return nil
}

func (u LeadUpdate) applyTo(lead *models.Lead) {
	if u.Name != nil {
		lead.Name = *u.Name
	}
	if u.Purpose != nil {
		lead.Purpose = *u.Purpose
	}
	if u.Category != nil {
		lead.Category = *u.Category
	}
	if u.DegreeTags != nil {
		lead.DegreeTags = *u.DegreeTags
	}
	if u.HelpRequested != nil {
		lead.HelpRequested = *u.HelpRequested
	}
	if u.Status != nil {
		lead.Status = *u.Status
	}
	if u.CaseAction != nil {
		lead.CaseAction = *u.CaseAction
	}
	if u.DueDate != nil {
		lead.DueDate = *u.DueDate
	}
}

// CreateLead registers a new help request.
func (s *Service) CreateLead(ctx context.Context, in NewLead, actor models.Actor) (lead *models.Lead, err error) {
	defer func() { metrics.Observe("create_lead", err, IsValidationError(err)) }()

	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: lead name is required", ErrInvalidArgument)
	}
	if in.HelpRequested <= 0 {
		return nil, fmt.Errorf("%w: help requested must be positive, got %d", ErrInvalidArgument, in.HelpRequested)
	}

	now := s.now()
	lead = &models.Lead{
		Id:            s.newID(),
		Name:          in.Name,
		Purpose:       in.Purpose,
		Category:      in.Category,
		DegreeTags:    in.DegreeTags,
		HelpRequested: in.HelpRequested,
		Status:        models.LeadPending,
		CaseAction:    models.LeadPending,
		DueDate:       in.DueDate,
		Version:       1,
		CreatedById:   actor.Id,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.store.CreateLead(ctx, lead)
	if err != nil {
		return nil, storageError(err, "lead "+lead.Id)
	}

	s.record(ctx, actor, "Lead Created", map[string]any{
		"leadId":        created.Id,
		"name":          created.Name,
		"helpRequested": created.HelpRequested,
	})

	return created, nil
}

// UpdateLead applies a partial update and logs the effective changes. An update
// that changes nothing performs no write and logs nothing.
func (s *Service) UpdateLead(ctx context.Context, leadID string, update LeadUpdate, actor models.Actor) (lead *models.Lead, err error) {
	defer func() { metrics.Observe("update_lead", err, IsValidationError(err)) }()

	if err := update.validate(); err != nil {
		return nil, err
	}

	var changes audit.ChangeSet
	for attempt := 0; ; attempt++ {
		lead, err = s.getLead(ctx, leadID)
		if err != nil {
			return nil, err
		}

		changes = audit.Diff(lead, update)
		if changes.Empty() {
			return lead, nil
		}

		updated := *lead
		update.applyTo(&updated)
		updated.UpdatedAt = s.now()

		err = s.store.UpdateLead(ctx, &updated)
		if errors.Is(err, storage.ErrConflict) && attempt < s.maxRetries {
			continue
		}
		if err != nil {
			if errors.Is(err, storage.ErrConflict) {
				return nil, fmt.Errorf("%w: lead %s kept changing during update", ErrPersistence, leadID)
			}
			return nil, storageError(err, "lead "+leadID)
		}

		updated.Version++
		lead = &updated
		break
	}

	details := changes.ToDetails()
	details["leadId"] = leadID
	s.record(ctx, actor, "Lead Updated", details)
	s.publish(ctx, notify.Event{Type: notify.LeadUpdated, LeadIds: []string{leadID}, ActorId: actor.Id})

	return lead, nil
}
