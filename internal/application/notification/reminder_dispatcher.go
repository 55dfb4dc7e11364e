package notification

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/paymentflow/backend/internal/domain/finance"
	"github.com/paymentflow/backend/internal/domain/listing"
	"github.com/paymentflow/backend/internal/domain/notification"
	"github.com/paymentflow/backend/internal/domain/partner"
	"github.com/paymentflow/backend/internal/domain/shared"
	"github.com/paymentflow/backend/internal/infrastructure/telemetry"
)

// ReminderDispatcher sends reminder emails for overdue receivables of
// clients that have the reminder flag set
type ReminderDispatcher struct {
	clientRepo     partner.ClientRepository
	receivableRepo finance.ReceivableRepository
	profileRepo    partner.ReminderProfileRepository
	settingsRepo   notification.EmailSettingsRepository
	relay          *RelayService
	logger         *zap.Logger
	now            func() time.Time
}

// NewReminderDispatcher creates a new ReminderDispatcher
func NewReminderDispatcher(
	clientRepo partner.ClientRepository,
	receivableRepo finance.ReceivableRepository,
	profileRepo partner.ReminderProfileRepository,
	settingsRepo notification.EmailSettingsRepository,
	relay *RelayService,
	logger *zap.Logger,
) *ReminderDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderDispatcher{
		clientRepo:     clientRepo,
		receivableRepo: receivableRepo,
		profileRepo:    profileRepo,
		settingsRepo:   settingsRepo,
		relay:          relay,
		logger:         logger,
		now:            time.Now,
	}
}

// pendingReminder is the single email for one client and the receivables it covers
type pendingReminder struct {
	receivables []*finance.Receivable
	message     notification.Message
}

// Dispatch sends all reminders that are due for one tenant, one email per
// client covering all of its due receivables. Tenants without email settings
// are skipped. Send failures are counted, not returned; only
// backend failures abort the run.
func (d *ReminderDispatcher) Dispatch(ctx context.Context, tenantID uuid.UUID) (*DispatchResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "reminder", "dispatch", telemetry.SpanAttrTenantID, tenantID.String())
	defer span.End()

	result, err := d.dispatch(ctx, tenantID)
	if err != nil {
		telemetry.RecordError(span, err)
		return result, err
	}
	telemetry.SetAttributes(span,
		telemetry.SpanAttrClientCount, result.Clients,
		telemetry.SpanAttrEmailCount, result.Sent,
	)
	return result, nil
}

func (d *ReminderDispatcher) dispatch(ctx context.Context, tenantID uuid.UUID) (*DispatchResult, error) {
	result := &DispatchResult{}

	settings, err := d.settingsRepo.FindByTenant(ctx, tenantID)
	if errors.Is(err, shared.ErrNotFound) {
		d.logger.Info("Skipping reminders, email settings not configured",
			zap.String("tenant_id", tenantID.String()))
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load email settings: %w", err)
	}

	clients, err := d.clientRepo.FindNeedingReminder(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("load clients: %w", err)
	}
	result.Clients = len(clients)
	if len(clients) == 0 {
		return result, nil
	}

	open, err := d.receivableRepo.FindOpen(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("load receivables: %w", err)
	}
	byClient := make(map[uuid.UUID][]*finance.Receivable)
	for i := range open {
		byClient[open[i].ClientID] = append(byClient[open[i].ClientID], &open[i])
	}

	profiles, err := d.loadProfiles(ctx, tenantID, clients)
	if err != nil {
		return nil, err
	}

	now := d.now()
	var pending []pendingReminder
	for i := range clients {
		client := &clients[i]
		profile := profiles[uuid.Nil]
		if client.ReminderProfileID != nil {
			if p, ok := profiles[*client.ReminderProfileID]; ok {
				profile = p
			}
		}
		var due []*finance.Receivable
		for _, r := range byClient[client.ID] {
			if r.ReminderDue(now, profile.Interval(), profile.MaxReminders) {
				due = append(due, r)
			}
		}
		if len(due) == 0 {
			continue
		}
		result.Due += len(due)
		if client.Emails == "" {
			result.Skipped++
			continue
		}
		subject, html, err := profile.Render(reminderData(client, due))
		if err != nil {
			d.logger.Warn("Reminder template failed",
				zap.String("profile_id", profile.ID.String()),
				zap.String("client_id", client.ID.String()),
				zap.Error(err))
			result.Skipped++
			continue
		}
		pending = append(pending, pendingReminder{
			receivables: due,
			message: notification.Message{
				Settings: settings.SMTP,
				To:       client.Emails,
				Subject:  subject,
				HTML:     html,
			},
		})
	}
	if len(pending) == 0 {
		return result, nil
	}

	messages := make([]notification.Message, len(pending))
	for i, p := range pending {
		messages[i] = p.message
	}
	sent := d.relay.SendMessages(ctx, messages)

	failed := make(map[int]struct{}, len(sent.Failures))
	for _, f := range sent.Failures {
		failed[f.Index] = struct{}{}
	}
	result.Failed = len(sent.Failures)
	for i, p := range pending {
		if _, ok := failed[i]; ok {
			continue
		}
		result.Sent++
		for _, r := range p.receivables {
			if err := r.RecordReminderSent(now); err != nil {
				return result, err
			}
			if err := d.receivableRepo.Save(ctx, r); err != nil {
				return result, fmt.Errorf("record reminder: %w", err)
			}
			result.Reminded++
		}
	}

	d.logger.Info("Reminder dispatch finished",
		zap.String("tenant_id", tenantID.String()),
		zap.Int("due", result.Due),
		zap.Int("sent", result.Sent),
		zap.Int("reminded", result.Reminded),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

// reminderData builds the template input for one client, oldest invoice first
func reminderData(client *partner.Client, due []*finance.Receivable) partner.ReminderData {
	slices.SortStableFunc(due, func(a, b *finance.Receivable) int {
		return a.DueDate.Compare(*b.DueDate)
	})

	data := partner.ReminderData{
		CompanyName: client.CompanyName,
		Invoices:    make([]partner.ReminderInvoice, 0, len(due)),
	}
	total := decimal.Zero
	for _, r := range due {
		data.Invoices = append(data.Invoices, partner.ReminderInvoice{
			InvoiceNumber: r.InvoiceNumber,
			Amount:        r.Amount.StringFixed(2),
			DueDate:       listing.FormatDate(r.DueDate),
		})
		total = total.Add(r.Amount)
		if r.ReminderCount+1 > data.ReminderCount {
			data.ReminderCount = r.ReminderCount + 1
		}
	}
	first := data.Invoices[0]
	data.InvoiceNumber = first.InvoiceNumber
	data.Amount = first.Amount
	data.DueDate = first.DueDate
	data.Total = total.StringFixed(2)
	return data
}

// loadProfiles maps profile id to profile; uuid.Nil holds the default
func (d *ReminderDispatcher) loadProfiles(ctx context.Context, tenantID uuid.UUID, clients []partner.Client) (map[uuid.UUID]*partner.ReminderProfile, error) {
	profiles := map[uuid.UUID]*partner.ReminderProfile{
		uuid.Nil: partner.DefaultReminderProfile(tenantID),
	}
	var ids []uuid.UUID
	seen := make(map[uuid.UUID]struct{})
	for i := range clients {
		if pid := clients[i].ReminderProfileID; pid != nil {
			if _, ok := seen[*pid]; !ok {
				seen[*pid] = struct{}{}
				ids = append(ids, *pid)
			}
		}
	}
	if len(ids) == 0 {
		return profiles, nil
	}
	found, err := d.profileRepo.FindByIDs(ctx, tenantID, ids)
	if err != nil {
		return nil, fmt.Errorf("load reminder profiles: %w", err)
	}
	for i := range found {
		profiles[found[i].ID] = &found[i]
	}
	return profiles, nil
}
