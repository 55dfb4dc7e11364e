package partner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/paymentflow/backend/internal/domain/finance"
	"github.com/paymentflow/backend/internal/domain/identity"
	"github.com/paymentflow/backend/internal/domain/listing"
	"github.com/paymentflow/backend/internal/domain/partner"
	"github.com/paymentflow/backend/internal/domain/shared"
	"github.com/paymentflow/backend/internal/infrastructure/telemetry"
)

// ClientService handles client CRUD, the form submit side effects and the
// data fetch behind the client list.
type ClientService struct {
	clientRepo     partner.ClientRepository
	receivableRepo finance.ReceivableRepository
	profileRepo    partner.ReminderProfileRepository
	gate           identity.SubscriptionGate
	logger         *zap.Logger
	now            func() time.Time
}

// ClientServiceOption configures a ClientService
type ClientServiceOption func(*ClientService)

// WithClock overrides the time source used for placeholder invoice numbers
func WithClock(now func() time.Time) ClientServiceOption {
	return func(s *ClientService) {
		s.now = now
	}
}

// NewClientService creates a new ClientService. Mutations are checked
// against gate before they run.
func NewClientService(
	clientRepo partner.ClientRepository,
	receivableRepo finance.ReceivableRepository,
	profileRepo partner.ReminderProfileRepository,
	gate identity.SubscriptionGate,
	logger *zap.Logger,
	opts ...ClientServiceOption,
) *ClientService {
	if gate == nil {
		gate = identity.OpenGate
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ClientService{
		clientRepo:     clientRepo,
		receivableRepo: receivableRepo,
		profileRepo:    profileRepo,
		gate:           gate,
		logger:         logger,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch loads every client of the tenant together with its receivable
// summary as an ordered id -> row collection.
func (s *ClientService) Fetch(ctx context.Context, tenantID uuid.UUID) (*listing.Collection[ClientRow], error) {
	filter := shared.Filter{OrderBy: "company_name", OrderDir: "asc"}
	clients, err := s.clientRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, fmt.Errorf("fetch clients: %w", err)
	}

	clientIDs := make([]uuid.UUID, 0, len(clients))
	profileIDs := make([]uuid.UUID, 0)
	seenProfile := make(map[uuid.UUID]struct{})
	for i := range clients {
		clientIDs = append(clientIDs, clients[i].ID)
		if pid := clients[i].ReminderProfileID; pid != nil {
			if _, ok := seenProfile[*pid]; !ok {
				seenProfile[*pid] = struct{}{}
				profileIDs = append(profileIDs, *pid)
			}
		}
	}

	var receivables []finance.Receivable
	if len(clientIDs) > 0 {
		receivables, err = s.receivableRepo.FindByClients(ctx, tenantID, clientIDs)
		if err != nil {
			return nil, fmt.Errorf("fetch receivables: %w", err)
		}
	}

	profileNames := make(map[uuid.UUID]string, len(profileIDs))
	if len(profileIDs) > 0 {
		profiles, err := s.profileRepo.FindByIDs(ctx, tenantID, profileIDs)
		if err != nil {
			return nil, fmt.Errorf("fetch reminder profiles: %w", err)
		}
		for i := range profiles {
			profileNames[profiles[i].ID] = profiles[i].Name
		}
	}

	rows := buildClientRows(clients, receivables, profileNames)
	return listing.NewCollection(rows, clientRowID), nil
}

func clientRowID(r ClientRow) string {
	return r.ID.String()
}

func buildClientRows(clients []partner.Client, receivables []finance.Receivable, profileNames map[uuid.UUID]string) []ClientRow {
	type summary struct {
		count   int
		open    decimal.Decimal
		nextDue *time.Time
	}
	summaries := make(map[uuid.UUID]*summary, len(clients))
	for i := range receivables {
		r := &receivables[i]
		sum, ok := summaries[r.ClientID]
		if !ok {
			sum = &summary{open: decimal.Zero}
			summaries[r.ClientID] = sum
		}
		sum.count++
		if !r.Status.IsOpen() {
			continue
		}
		sum.open = sum.open.Add(r.Amount)
		if r.DueDate != nil && (sum.nextDue == nil || r.DueDate.Before(*sum.nextDue)) {
			due := *r.DueDate
			sum.nextDue = &due
		}
	}

	rows := make([]ClientRow, 0, len(clients))
	for i := range clients {
		c := &clients[i]
		row := ClientRow{
			ID:                c.ID,
			CompanyName:       c.CompanyName,
			Emails:            c.Emails,
			PrimaryEmail:      c.PrimaryEmail(),
			Street:            c.Address.Street,
			PostalCode:        c.Address.PostalCode,
			City:              c.Address.City,
			Country:           c.Address.Country,
			ReminderProfileID: c.ReminderProfileID,
			NeedsReminder:     c.NeedsReminder,
			OpenAmount:        decimal.Zero,
			CreatedAt:         c.CreatedAt,
			UpdatedAt:         c.UpdatedAt,
		}
		if c.ReminderProfileID != nil {
			row.ReminderProfileName = profileNames[*c.ReminderProfileID]
		}
		if sum, ok := summaries[c.ID]; ok {
			row.ReceivableCount = sum.count
			row.OpenAmount = sum.open
			row.NextDueDate = sum.nextDue
		}
		rows = append(rows, row)
	}
	return rows
}

// GetByID retrieves a client by ID
func (s *ClientService) GetByID(ctx context.Context, tenantID, clientID uuid.UUID) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByIDForTenant(ctx, tenantID, clientID)
	if err != nil {
		return nil, err
	}
	response := ToClientResponse(client)
	return &response, nil
}

// Create submits a create-mode form
func (s *ClientService) Create(ctx context.Context, tenantID uuid.UUID, req ClientRequest) (*SubmitResult, error) {
	draft := partner.NewClientDraft()
	req.applyTo(draft)
	return s.Submit(ctx, tenantID, draft, req.ConfirmDeleteReceivables)
}

// Update submits an edit-mode form for clientID
func (s *ClientService) Update(ctx context.Context, tenantID, clientID uuid.UUID, req ClientRequest) (*SubmitResult, error) {
	id := clientID
	draft := &partner.ClientDraft{ClientID: &id}
	req.applyTo(draft)
	return s.Submit(ctx, tenantID, draft, req.ConfirmDeleteReceivables)
}

// Submit persists a staged draft with one insert or update and then applies
// the reminder-flag side effect:
//   - flag on and no receivable yet: one placeholder receivable is created
//   - flag switched off while receivables exist: they are deleted, which
//     requires confirmDelete; without it nothing is written
//
// Steps are not transactional. A failing side effect leaves the saved client
// in place.
func (s *ClientService) Submit(ctx context.Context, tenantID uuid.UUID, draft *partner.ClientDraft, confirmDelete bool) (*SubmitResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "client", "submit",
		telemetry.SpanAttrTenantID, tenantID.String(),
		telemetry.SpanAttrNeedReminder, draft.NeedsReminder,
	)
	defer span.End()

	result, err := s.submit(ctx, tenantID, draft, confirmDelete)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrClientID, result.Client.ID.String())
	return result, nil
}

func (s *ClientService) submit(ctx context.Context, tenantID uuid.UUID, draft *partner.ClientDraft, confirmDelete bool) (*SubmitResult, error) {
	if err := s.checkGate(ctx, tenantID); err != nil {
		return nil, err
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkProfile(ctx, tenantID, draft.ReminderProfileID); err != nil {
		return nil, err
	}

	var (
		client     *partner.Client
		wasFlagged bool
		err        error
	)
	if draft.IsCreate() {
		client, err = draft.Build(tenantID)
		if err != nil {
			return nil, err
		}
	} else {
		client, err = s.clientRepo.FindByIDForTenant(ctx, tenantID, *draft.ClientID)
		if err != nil {
			return nil, err
		}
		wasFlagged = client.NeedsReminder

		if wasFlagged && !draft.NeedsReminder {
			count, err := s.receivableRepo.CountByClient(ctx, tenantID, client.ID)
			if err != nil {
				return nil, fmt.Errorf("count receivables: %w", err)
			}
			if count > 0 && !confirmDelete {
				return nil, shared.ErrConfirmationRequired.WithDetails(map[string]any{
					"receivable_count": count,
					"client_id":        client.ID.String(),
				})
			}
		}
		if err := draft.ApplyTo(client); err != nil {
			return nil, err
		}
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, fmt.Errorf("save client: %w", err)
	}

	result := &SubmitResult{}
	switch {
	case client.NeedsReminder:
		invoice, err := s.ensurePlaceholder(ctx, tenantID, client.ID)
		if err != nil {
			return nil, err
		}
		result.PlaceholderInvoice = invoice
	case wasFlagged:
		deleted, err := s.receivableRepo.DeleteByClientIDs(ctx, tenantID, []uuid.UUID{client.ID})
		if err != nil {
			return nil, fmt.Errorf("delete receivables: %w", err)
		}
		result.ReceivablesDeleted = deleted
		s.logger.Info("Reminder flag cleared, receivables deleted",
			zap.String("client_id", client.ID.String()),
			zap.Int64("deleted", deleted),
		)
	}

	result.Client = ToClientResponse(client)
	return result, nil
}

// ensurePlaceholder creates a zero-amount receivable when the client has
// none. The existence check and the insert are separate calls.
func (s *ClientService) ensurePlaceholder(ctx context.Context, tenantID, clientID uuid.UUID) (string, error) {
	exists, err := s.receivableRepo.ExistsForClient(ctx, tenantID, clientID)
	if err != nil {
		return "", fmt.Errorf("check receivables: %w", err)
	}
	if exists {
		return "", nil
	}
	placeholder, err := finance.NewPlaceholderReceivable(tenantID, clientID, s.now())
	if err != nil {
		return "", err
	}
	if err := s.receivableRepo.Save(ctx, placeholder); err != nil {
		return "", fmt.Errorf("create placeholder receivable: %w", err)
	}
	s.logger.Info("Placeholder receivable created",
		zap.String("client_id", clientID.String()),
		zap.String("invoice_number", placeholder.InvoiceNumber),
	)
	return placeholder.InvoiceNumber, nil
}

func (s *ClientService) checkProfile(ctx context.Context, tenantID uuid.UUID, profileID *uuid.UUID) error {
	if profileID == nil {
		return nil
	}
	if _, err := s.profileRepo.FindByIDForTenant(ctx, tenantID, *profileID); err != nil {
		return fmt.Errorf("reminder profile %s: %w", profileID, err)
	}
	return nil
}

// Delete removes a client after its receivables
func (s *ClientService) Delete(ctx context.Context, tenantID, clientID uuid.UUID) error {
	if err := s.checkGate(ctx, tenantID); err != nil {
		return err
	}
	if _, err := s.clientRepo.FindByIDForTenant(ctx, tenantID, clientID); err != nil {
		return err
	}
	if _, err := s.receivableRepo.DeleteByClientIDs(ctx, tenantID, []uuid.UUID{clientID}); err != nil {
		return fmt.Errorf("delete receivables: %w", err)
	}
	return s.clientRepo.DeleteForTenant(ctx, tenantID, clientID)
}

// DeleteMany removes the receivables of all clientIDs with one in-list call
// and then the clients with a second one.
func (s *ClientService) DeleteMany(ctx context.Context, tenantID uuid.UUID, clientIDs []uuid.UUID) (clients, receivables int64, err error) {
	if err := s.checkGate(ctx, tenantID); err != nil {
		return 0, 0, err
	}
	if len(clientIDs) == 0 {
		return 0, 0, nil
	}
	receivables, err = s.receivableRepo.DeleteByClientIDs(ctx, tenantID, clientIDs)
	if err != nil {
		return 0, 0, fmt.Errorf("delete receivables: %w", err)
	}
	clients, err = s.clientRepo.DeleteByIDs(ctx, tenantID, clientIDs)
	if err != nil {
		return 0, receivables, fmt.Errorf("delete clients: %w", err)
	}
	return clients, receivables, nil
}

func (s *ClientService) checkGate(ctx context.Context, tenantID uuid.UUID) error {
	decision, err := s.gate.Check(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("subscription check: %w", err)
	}
	return decision.Err()
}
