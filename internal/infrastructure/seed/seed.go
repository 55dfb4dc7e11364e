// Package seed fills a development database with a tenant, its reminder
// profiles, fake clients and their receivables.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/paymentflow/backend/internal/domain/finance"
	"github.com/paymentflow/backend/internal/domain/identity"
	"github.com/paymentflow/backend/internal/domain/partner"
	"github.com/paymentflow/backend/internal/infrastructure/persistence"
	"github.com/paymentflow/backend/internal/infrastructure/persistence/models"
)

//go:embed fixtures/reminder_profiles.yaml
var defaultProfiles []byte

// ProfileFixture is one reminder profile in the YAML fixture
type ProfileFixture struct {
	Name         string `yaml:"name"`
	IntervalDays int    `yaml:"interval_days"`
	MaxReminders int    `yaml:"max_reminders"`
	Subject      string `yaml:"subject"`
	Body         string `yaml:"body"`
}

type profileFile struct {
	Profiles []ProfileFixture `yaml:"profiles"`
}

// ParseProfiles decodes a profile fixture. An empty document yields the
// built-in fixture.
func ParseProfiles(data []byte) ([]ProfileFixture, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		data = defaultProfiles
	}
	var f profileFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse profile fixture: %w", err)
	}
	for i, p := range f.Profiles {
		switch {
		case strings.TrimSpace(p.Name) == "":
			return nil, fmt.Errorf("profile %d: name is required", i)
		case p.IntervalDays <= 0:
			return nil, fmt.Errorf("profile %q: interval_days must be positive", p.Name)
		case p.MaxReminders <= 0:
			return nil, fmt.Errorf("profile %q: max_reminders must be positive", p.Name)
		}
	}
	return f.Profiles, nil
}

// Options controls one seeding run
type Options struct {
	TenantID uuid.UUID
	Clients  int
	// ReminderShare is the fraction of clients with the reminder flag set
	ReminderShare float64
	Plan          identity.Plan
	// ValidFor sets the subscription expiry; 0 never expires
	ValidFor time.Duration
	// Seed makes the fake data reproducible; 0 picks a random seed
	Seed     uint64
	Profiles []ProfileFixture
}

// Summary reports what a run created
type Summary struct {
	TenantID    uuid.UUID
	Profiles    int
	Clients     int
	Receivables int
}

// Seeder writes fixture data through the service repositories
type Seeder struct {
	db          *gorm.DB
	clients     *persistence.GormClientRepository
	receivables *persistence.GormReceivableRepository
	subs        *persistence.GormSubscriptionRepository
	logger      *zap.Logger
	now         func() time.Time
}

// New creates a Seeder on db
func New(db *gorm.DB, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{
		db:          db,
		clients:     persistence.NewGormClientRepository(db),
		receivables: persistence.NewGormReceivableRepository(db),
		subs:        persistence.NewGormSubscriptionRepository(db),
		logger:      logger,
		now:         time.Now,
	}
}

// Run seeds one tenant
func (s *Seeder) Run(ctx context.Context, opts Options) (*Summary, error) {
	if opts.TenantID == uuid.Nil {
		opts.TenantID = uuid.New()
	}
	if opts.Plan == "" {
		opts.Plan = identity.PlanTrial
	}
	if opts.Clients < 0 {
		return nil, errors.New("client count cannot be negative")
	}
	if opts.Profiles == nil {
		profiles, err := ParseProfiles(nil)
		if err != nil {
			return nil, err
		}
		opts.Profiles = profiles
	}

	now := s.now()
	faker := gofakeit.New(opts.Seed)
	summary := &Summary{TenantID: opts.TenantID}

	var expiresAt *time.Time
	if opts.ValidFor != 0 {
		t := now.Add(opts.ValidFor)
		expiresAt = &t
	}
	sub, err := identity.NewSubscription(opts.TenantID, opts.Plan, expiresAt)
	if err != nil {
		return nil, err
	}
	if err := s.subs.Save(ctx, sub); err != nil {
		return nil, fmt.Errorf("save subscription: %w", err)
	}

	profileIDs := make([]uuid.UUID, 0, len(opts.Profiles))
	for _, f := range opts.Profiles {
		p := partner.DefaultReminderProfile(opts.TenantID)
		p.ID = uuid.New()
		p.CreatedAt, p.UpdatedAt = now, now
		p.Name = f.Name
		p.IntervalDays = f.IntervalDays
		p.MaxReminders = f.MaxReminders
		if f.Subject != "" {
			p.SubjectTemplate = f.Subject
		}
		if f.Body != "" {
			p.BodyTemplate = f.Body
		}
		if err := s.db.WithContext(ctx).Create(models.ReminderProfileModelFromDomain(p)).Error; err != nil {
			return nil, fmt.Errorf("save profile %q: %w", f.Name, err)
		}
		profileIDs = append(profileIDs, p.ID)
	}
	summary.Profiles = len(profileIDs)

	for i := 0; i < opts.Clients; i++ {
		client, err := s.fakeClient(faker, opts, profileIDs)
		if err != nil {
			return nil, err
		}
		if err := s.clients.Save(ctx, client); err != nil {
			return nil, fmt.Errorf("save client %q: %w", client.CompanyName, err)
		}
		summary.Clients++

		if !client.NeedsReminder {
			continue
		}
		for n := faker.IntRange(1, 3); n > 0; n-- {
			r, err := fakeReceivable(faker, client, summary.Receivables+1, now)
			if err != nil {
				return nil, err
			}
			if err := s.receivables.Save(ctx, r); err != nil {
				return nil, fmt.Errorf("save receivable %s: %w", r.InvoiceNumber, err)
			}
			summary.Receivables++
		}
	}

	s.logger.Info("Seeded tenant",
		zap.String("tenant_id", opts.TenantID.String()),
		zap.Int("profiles", summary.Profiles),
		zap.Int("clients", summary.Clients),
		zap.Int("receivables", summary.Receivables),
	)
	return summary, nil
}

func (s *Seeder) fakeClient(f *gofakeit.Faker, opts Options, profileIDs []uuid.UUID) (*partner.Client, error) {
	client, err := partner.NewClient(opts.TenantID, f.Company())
	if err != nil {
		return nil, err
	}
	emails := []string{f.Email()}
	if f.IntRange(0, 3) == 0 {
		emails = append(emails, f.Email())
	}
	if err := client.SetEmails(strings.Join(emails, ",")); err != nil {
		return nil, err
	}
	client.SetAddress(partner.Address{
		Street:     f.Street(),
		PostalCode: f.Zip(),
		City:       f.City(),
		Country:    f.Country(),
	})
	if len(profileIDs) > 0 && f.Bool() {
		id := profileIDs[f.IntRange(0, len(profileIDs)-1)]
		client.SetReminderProfile(&id)
	}
	client.SetNeedsReminder(f.Float64Range(0, 1) < opts.ReminderShare)
	return client, nil
}

func fakeReceivable(f *gofakeit.Faker, client *partner.Client, n int, now time.Time) (*finance.Receivable, error) {
	due := f.DateRange(now.AddDate(0, -2, 0), now.AddDate(0, 1, 0)).Truncate(24 * time.Hour)
	amount := decimal.NewFromFloat(f.Float64Range(50, 5000)).Round(2)
	invoice := fmt.Sprintf("INV-%s-%05d", client.TenantID.String()[:8], n)
	return finance.NewReceivable(client.TenantID, client.ID, invoice, amount, &due)
}
