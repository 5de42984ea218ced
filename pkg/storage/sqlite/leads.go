package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/chris/donation-ledger/pkg/models"
	"github.com/chris/donation-ledger/pkg/storage"
)

const leadColumns = `id, name, purpose, category, degree_tags, help_requested, help_given,
	status, case_action, due_date, version, created_by_id, created_at, updated_at`

func scanLead(row scanner) (*models.Lead, error) {
	var (
		l                             models.Lead
		tags, status, caseAction      string
		dueDate, createdAt, updatedAt string
	)
	err := row.Scan(&l.Id, &l.Name, &l.Purpose, &l.Category, &tags, &l.HelpRequested, &l.HelpGiven,
		&status, &caseAction, &dueDate, &l.Version, &l.CreatedById, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	l.Status = models.LeadStatus(status)
	l.CaseAction = models.LeadStatus(caseAction)
	if err := json.Unmarshal([]byte(tags), &l.DegreeTags); err != nil {
		return nil, fmt.Errorf("failed to decode degree tags: %w", err)
	}
	if l.DueDate, err = parseTime(dueDate); err != nil {
		return nil, err
	}
	if l.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if l.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("failed to encode degree tags: %w", err)
	}
	return string(b), nil
}

// CreateLead stores a new lead. HelpGiven always starts at zero.
func (s *Store) CreateLead(ctx context.Context, lead *models.Lead) (*models.Lead, error) {
	tags, err := encodeTags(lead.DegreeTags)
	if err != nil {
		return nil, err
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO leads (`+leadColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, 0, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, lead.Id, lead.Name, lead.Purpose, lead.Category, tags, lead.HelpRequested,
		string(lead.Status), string(lead.CaseAction), formatTime(lead.DueDate), lead.Version,
		lead.CreatedById, formatTime(lead.CreatedAt), formatTime(lead.UpdatedAt))
	if err != nil {
		return nil, fmt.Errorf("failed to insert lead: %w", err)
	}
	n, err := affected(res)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("lead %s: %w", lead.Id, storage.ErrAlreadyExists)
	}

	created := *lead
	created.HelpGiven = 0
	return &created, nil
}

// GetLead retrieves a lead by id.
func (s *Store) GetLead(ctx context.Context, leadID string) (*models.Lead, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = ?`, leadID)
	lead, err := scanLead(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("lead %s: %w", leadID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}
	return lead, nil
}

// ListLeads retrieves every lead, newest first.
func (s *Store) ListLeads(ctx context.Context) ([]models.Lead, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+leadColumns+` FROM leads ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer rows.Close()

	leads := []models.Lead{}
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}
		leads = append(leads, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leads: %w", err)
	}
	return leads, nil
}

// UpdateLead writes the editable fields if the stored version still equals lead.Version.
func (s *Store) UpdateLead(ctx context.Context, lead *models.Lead) error {
	tags, err := encodeTags(lead.DegreeTags)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE leads SET
			name = ?, purpose = ?, category = ?, degree_tags = ?, help_requested = ?,
			status = ?, case_action = ?, due_date = ?, updated_at = ?, version = version + 1
		WHERE id = ? AND version = ?
	`, lead.Name, lead.Purpose, lead.Category, tags, lead.HelpRequested,
		string(lead.Status), string(lead.CaseAction), formatTime(lead.DueDate), formatTime(lead.UpdatedAt),
		lead.Id, lead.Version)
	if err != nil {
		return fmt.Errorf("failed to update lead: %w", err)
	}
	n, err := affected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return missingOr(ctx, s.db, "leads", lead.Id, fmt.Errorf("lead %s: %w", lead.Id, storage.ErrConflict))
	}
	return nil
}

// SetHelpGiven overwrites the HelpGiven aggregate if the lead is still at expectedVersion.
func (s *Store) SetHelpGiven(ctx context.Context, leadID string, expectedVersion, helpGiven int64) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE leads SET help_given = ?, version = version + 1
		WHERE id = ? AND version = ?
	`, helpGiven, leadID, expectedVersion)
	if err != nil {
		return fmt.Errorf("failed to set help given: %w", err)
	}
	n, err := affected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return missingOr(ctx, s.db, "leads", leadID, fmt.Errorf("lead %s: %w", leadID, storage.ErrConflict))
	}
	return nil
}
