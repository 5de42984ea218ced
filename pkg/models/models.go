package models

import (
	"time"
)

// DonationStatus defines the possible states of a donation.
type DonationStatus string

const (
	PENDING_VERIFICATION DonationStatus = "Pending verification"
	VERIFIED             DonationStatus = "Verified"
	ALLOCATED            DonationStatus = "Allocated"
	FAILED               DonationStatus = "Failed/Incomplete"
)

// transitions lists the normal (non-administrative) status transitions.
var transitions = map[DonationStatus][]DonationStatus{
	PENDING_VERIFICATION: {VERIFIED, FAILED},
	VERIFIED:             {ALLOCATED},
	// A corrective allocation removal sends an Allocated donation back to Verified.
	ALLOCATED: {VERIFIED},
}

// CanTransitionTo reports whether moving from s to next is a permitted transition.
func (s DonationStatus) CanTransitionTo(next DonationStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsValid reports whether s is a known donation status.
func (s DonationStatus) IsValid() bool {
	switch s {
	case PENDING_VERIFICATION, VERIFIED, ALLOCATED, FAILED:
		return true
	}
	return false
}

// LeadStatus defines the lifecycle tags of a lead.
type LeadStatus string

const (
	LeadPending      LeadStatus = "Pending"
	LeadReadyForHelp LeadStatus = "Ready For Help"
	LeadPublished    LeadStatus = "Publish"
	LeadPartial      LeadStatus = "Partial"
	LeadComplete     LeadStatus = "Complete"
	LeadClosed       LeadStatus = "Closed"
	LeadOnHold       LeadStatus = "On Hold"
	LeadCancelled    LeadStatus = "Cancelled"
)

// IsValid reports whether s is a known lead status.
func (s LeadStatus) IsValid() bool {
	switch s {
	case LeadPending, LeadReadyForHelp, LeadPublished, LeadPartial, LeadComplete, LeadClosed, LeadOnHold, LeadCancelled:
		return true
	}
	return false
}

// Actor is the acting user of a mutating call, as supplied by the identity provider.
type Actor struct {
	Id   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// Lead is a help request from a beneficiary.
// HelpGiven is a derived aggregate: the sum of every allocation that references this lead.
type Lead struct {
	Id            string     `json:"id" dynamodbav:"id"`
	Name          string     `json:"name" dynamodbav:"name" audit:"name"`
	Purpose       string     `json:"purpose" dynamodbav:"purpose" audit:"purpose"`
	Category      string     `json:"category" dynamodbav:"category" audit:"category"`
	DegreeTags    []string   `json:"degree_tags,omitempty" dynamodbav:"degree_tags,omitempty" audit:"degreeTags"`
	HelpRequested int64      `json:"help_requested" dynamodbav:"help_requested" audit:"helpRequested"`
	HelpGiven     int64      `json:"help_given" dynamodbav:"help_given"`
	Status        LeadStatus `json:"status" dynamodbav:"status" audit:"status"`
	CaseAction    LeadStatus `json:"case_action" dynamodbav:"case_action" audit:"caseAction"`
	DueDate       time.Time  `json:"due_date,omitempty" dynamodbav:"due_date,omitempty" audit:"dueDate"`
	Version       int64      `json:"version" dynamodbav:"version"`
	CreatedById   string     `json:"created_by_id" dynamodbav:"created_by_id"`
	CreatedAt     time.Time  `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" dynamodbav:"updated_at"`
}

// IsClosed reports whether the lead no longer accepts allocations. Either
// tag can close a lead: Status tracks the request and CaseAction the case
// handling, and admins set one or the other.
func (l *Lead) IsClosed() bool {
	return l.Status == LeadClosed || l.CaseAction == LeadClosed
}

// Allocation records part of a donation assigned to a lead.
type Allocation struct {
	Id                  string    `json:"id" dynamodbav:"id"`
	LeadId              string    `json:"lead_id" dynamodbav:"lead_id"`
	Amount              int64     `json:"amount" dynamodbav:"amount"`
	AllocatedByUserId   string    `json:"allocated_by_user_id" dynamodbav:"allocated_by_user_id"`
	AllocatedByUserName string    `json:"allocated_by_user_name" dynamodbav:"allocated_by_user_name"`
	AllocatedAt         time.Time `json:"allocated_at" dynamodbav:"allocated_at"`
}

// Donation represents a contribution and the allocations made from it.
// AllocatedTotal is kept equal to the sum of Allocations[].Amount in the same write.
type Donation struct {
	Id             string         `dynamodbav:"id"`
	DonorId        string         `dynamodbav:"donor_id"`
	DonorName      string         `dynamodbav:"donor_name"`
	Amount         int64          `dynamodbav:"amount"`
	Type           string         `dynamodbav:"type"`
	PaymentMethod  string         `dynamodbav:"payment_method"`
	TransactionId  string         `dynamodbav:"transaction_id,omitempty"`
	Status         DonationStatus `dynamodbav:"status"`
	Allocations    []Allocation   `dynamodbav:"allocations"`
	AllocatedTotal int64          `dynamodbav:"allocated_total"`
	Version        int64          `dynamodbav:"version"`
	CreatedAt      time.Time      `dynamodbav:"created_at"`
	UpdatedAt      time.Time      `dynamodbav:"updated_at"`
	VerifiedAt     *time.Time     `dynamodbav:"verified_at,omitempty"`
	VerifiedById   string         `dynamodbav:"verified_by_id,omitempty"`
}

// Remaining returns the unallocated balance of the donation.
func (d *Donation) Remaining() int64 {
	return d.Amount - d.AllocatedTotal
}

// FindAllocation returns the index of the allocation with the given id, or -1.
func (d *Donation) FindAllocation(allocationID string) int {
	for i, a := range d.Allocations {
		if a.Id == allocationID {
			return i
		}
	}
	return -1
}

// ActivityLogEntry is an append-only record of a state change.
type ActivityLogEntry struct {
	Id        string         `json:"id" dynamodbav:"id"`
	UserId    string         `json:"user_id" dynamodbav:"user_id"`
	UserName  string         `json:"user_name" dynamodbav:"user_name"`
	Role      string         `json:"role" dynamodbav:"role"`
	Activity  string         `json:"activity" dynamodbav:"activity"`
	Details   map[string]any `json:"details,omitempty" dynamodbav:"details,omitempty"`
	Timestamp time.Time      `json:"timestamp" dynamodbav:"timestamp"`
	GSI1PK    string         `json:"-" dynamodbav:"gsi1pk"`
}
