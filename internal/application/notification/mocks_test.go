package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/paymentflow/backend/internal/domain/finance"
	"github.com/paymentflow/backend/internal/domain/notification"
	"github.com/paymentflow/backend/internal/domain/partner"
	"github.com/paymentflow/backend/internal/domain/shared"
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, msg notification.Message, attachment *notification.Attachment) error {
	return m.Called(ctx, msg, attachment).Error(0)
}

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, ref string) (*notification.Attachment, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Attachment), args.Error(1)
}

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) (*notification.EmailSettings, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.EmailSettings), args.Error(1)
}

func (m *MockSettingsRepository) Save(ctx context.Context, settings *notification.EmailSettings) error {
	return m.Called(ctx, settings).Error(0)
}

type recordingMetrics struct {
	outcomes []string
}

func (r *recordingMetrics) ObserveEmail(outcome string) {
	r.outcomes = append(r.outcomes, outcome)
}

// fakeClients serves FindNeedingReminder; other methods are unused here
type fakeClients struct {
	partner.ClientRepository
	clients []partner.Client
}

func (f *fakeClients) FindNeedingReminder(_ context.Context, _ uuid.UUID) ([]partner.Client, error) {
	return f.clients, nil
}

type fakeReceivables struct {
	finance.ReceivableRepository
	open  []finance.Receivable
	saved []*finance.Receivable
}

func (f *fakeReceivables) FindOpen(_ context.Context, _ uuid.UUID) ([]finance.Receivable, error) {
	return f.open, nil
}

func (f *fakeReceivables) Save(_ context.Context, r *finance.Receivable) error {
	f.saved = append(f.saved, r)
	return nil
}

type fakeProfiles struct {
	partner.ReminderProfileRepository
	profiles []partner.ReminderProfile
}

func (f *fakeProfiles) FindByIDs(_ context.Context, _ uuid.UUID, ids []uuid.UUID) ([]partner.ReminderProfile, error) {
	var out []partner.ReminderProfile
	for _, p := range f.profiles {
		for _, id := range ids {
			if p.ID == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func storedSettings(tenantID uuid.UUID) *notification.EmailSettings {
	return &notification.EmailSettings{
		TenantID: tenantID,
		SMTP: notification.SMTPSettings{
			Host:      "smtp.example.com",
			Port:      465,
			Username:  "mailer",
			Password:  "secret",
			FromEmail: "billing@example.com",
			Secure:    true,
		},
		UpdatedAt: time.Now(),
	}
}

var errNotFound = shared.ErrNotFound
