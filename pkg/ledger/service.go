// Package ledger implements the donation verification workflow and the
// allocation engine that moves verified funds onto beneficiary leads.
//
// Every mutation is validated before the datastore is touched and is then applied
// as one conditional write. The audit log and the notification publisher are
// invoked after the write commits; their failures are logged and never undo it.
package ledger

import (
	"context"
	"log/slog"
	"time"

	"github.com/chris/donation-ledger/pkg/metrics"
	"github.com/chris/donation-ledger/pkg/models"
	"github.com/chris/donation-ledger/pkg/notify"
	"github.com/chris/donation-ledger/pkg/payments"
	"github.com/chris/donation-ledger/pkg/storage"
	"github.com/google/uuid"
)

// DefaultMaxRetries is how often a write that lost an optimistic-concurrency race is retried.
const DefaultMaxRetries = 3

// Ledger is the set of ledger operations exposed to the API and CLI.
type Ledger interface {
	CreateDonation(ctx context.Context, donation NewDonation, actor models.Actor) (*models.Donation, error)
	VerifyDonation(ctx context.Context, donationID string, actor models.Actor) error
	MarkDonationFailed(ctx context.Context, donationID string, actor models.Actor) error
	CreatePaymentOrder(ctx context.Context, donationID string, actor models.Actor) (*payments.Order, error)
	ConfirmPayment(ctx context.Context, donationID string, confirmation payments.Confirmation, actor models.Actor) error
	Allocate(ctx context.Context, donationID string, targets []Target, actor models.Actor) (*models.Donation, error)
	RemoveAllocation(ctx context.Context, donationID, allocationID string, actor models.Actor) (*models.Donation, error)
	CreateLead(ctx context.Context, lead NewLead, actor models.Actor) (*models.Lead, error)
	UpdateLead(ctx context.Context, leadID string, update LeadUpdate, actor models.Actor) (*models.Lead, error)
	Reconcile(ctx context.Context, dryRun bool, actor models.Actor) ([]Discrepancy, error)
	Summary(ctx context.Context) (*Summary, error)
}

// Service implements Ledger on top of a storage backend.
type Service struct {
	store      storage.Storage
	publisher  notify.Publisher
	verifier   payments.SignatureVerifier
	gateway    payments.Gateway
	currency   string
	logger     *slog.Logger
	maxRetries int
	now        func() time.Time
	newID      func() string
}

// Option configures a Service.
type Option func(*Service)

// WithPaymentVerifier enables ConfirmPayment.
func WithPaymentVerifier(v payments.SignatureVerifier) Option {
	return func(s *Service) { s.verifier = v }
}

// WithPaymentGateway enables CreatePaymentOrder and ConfirmPayment. Orders are
// opened in currency.
func WithPaymentGateway(g payments.Gateway, currency string) Option {
	return func(s *Service) {
		s.gateway = g
		s.verifier = g
		s.currency = currency
	}
}

// WithLogger sets the logger used for best-effort side-effect failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMaxRetries sets how many times a conflicting write is retried.
func WithMaxRetries(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.maxRetries = n
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a new Service. A nil publisher disables notifications.
func NewService(store storage.Storage, publisher notify.Publisher, opts ...Option) *Service {
	if publisher == nil {
		publisher = &notify.NoOpPublisher{}
	}
	s := &Service{
		store:      store,
		publisher:  publisher,
		logger:     slog.Default(),
		maxRetries: DefaultMaxRetries,
		now:        func() time.Time { return time.Now().UTC() },
		newID:      func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Make sure we conform to the interface
var _ Ledger = (*Service)(nil)

// record appends an activity log entry. Failures are logged, not returned.
func (s *Service) record(ctx context.Context, actor models.Actor, activity string, details map[string]any) {
	entry := &models.ActivityLogEntry{
		Id:        s.newID(),
		UserId:    actor.Id,
		UserName:  actor.Name,
		Role:      actor.Role,
		Activity:  activity,
		Details:   details,
		Timestamp: s.now(),
	}
	if err := s.store.AppendActivity(ctx, entry); err != nil {
		metrics.SideEffectFailures.WithLabelValues("audit").Inc()
		s.logger.Error("failed to append activity log entry", "activity", activity, "user_id", actor.Id, "error", err)
	}
}

// publish sends a ledger event. Failures are logged, not returned.
func (s *Service) publish(ctx context.Context, event notify.Event) {
	event.OccurredAt = s.now()
	if err := s.publisher.Publish(ctx, event); err != nil {
		metrics.SideEffectFailures.WithLabelValues("notification").Inc()
		s.logger.Error("failed to publish ledger event", "type", event.Type, "donation_id", event.DonationId, "error", err)
	}
}

func (s *Service) getDonation(ctx context.Context, donationID string) (*models.Donation, error) {
	donation, err := s.store.GetDonation(ctx, donationID)
	if err != nil {
		return nil, storageError(err, "donation "+donationID)
	}
	return donation, nil
}

func (s *Service) getLead(ctx context.Context, leadID string) (*models.Lead, error) {
	lead, err := s.store.GetLead(ctx, leadID)
	if err != nil {
		return nil, storageError(err, "lead "+leadID)
	}
	return lead, nil
}
