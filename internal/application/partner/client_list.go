package partner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/paymentflow/backend/internal/domain/listing"
	"github.com/paymentflow/backend/internal/domain/shared"
	"github.com/paymentflow/backend/internal/infrastructure/telemetry"
)

// ClientListView is the view name used in preference keys
const ClientListView = "clients"

// ClientListSchema describes the sortable columns and searchable fields of
// the client list
var ClientListSchema = listing.Schema[ClientRow]{
	Name: ClientListView,
	Columns: []listing.Column[ClientRow]{
		listing.TextColumn("company_name", func(r ClientRow) string { return r.CompanyName }),
		listing.TextColumn("emails", func(r ClientRow) string { return r.Emails }),
		listing.TextColumn("city", func(r ClientRow) string { return r.City }),
		listing.TextColumn("country", func(r ClientRow) string { return r.Country }),
		listing.TextColumn("reminder_profile", func(r ClientRow) string { return r.ReminderProfileName }),
		listing.BoolColumn("needs_reminder", func(r ClientRow) bool { return r.NeedsReminder }),
		listing.NumberColumn("receivable_count", func(r ClientRow) float64 { return float64(r.ReceivableCount) }),
		listing.NumberColumn("open_amount", func(r ClientRow) float64 { return r.OpenAmount.InexactFloat64() }),
		listing.DateColumn("next_due_date", func(r ClientRow) *time.Time { return r.NextDueDate }),
		listing.DateColumn("created_at", func(r ClientRow) *time.Time { return &r.CreatedAt }),
		listing.DateColumn("updated_at", func(r ClientRow) *time.Time { return &r.UpdatedAt }),
	},
	Searchable: []func(ClientRow) string{
		func(r ClientRow) string { return r.CompanyName },
		func(r ClientRow) string { return r.Emails },
		func(r ClientRow) string { return r.Street },
		func(r ClientRow) string { return r.PostalCode },
		func(r ClientRow) string { return r.City },
		func(r ClientRow) string { return r.Country },
		func(r ClientRow) string { return r.ReminderProfileName },
	},
	Default: listing.SortConfig{Key: "company_name", Sort: listing.Ascending},
}

// Viewer identifies whose preferences a list request reads and writes
type Viewer struct {
	TenantID uuid.UUID
	UserID   uuid.UUID
}

func (v Viewer) owner() string {
	return v.TenantID.String() + ":" + v.UserID.String()
}

// ClientListService renders the client list with its persisted sort
// configuration and runs bulk actions on the current selection.
type ClientListService struct {
	clients *ClientService
	prefs   *listing.JSONCodec[listing.SortConfig]
	logger  *zap.Logger
}

// NewClientListService creates a new ClientListService. Sort configurations
// are stored in store and expire after ttl (0 keeps them).
func NewClientListService(clients *ClientService, store listing.Store, ttl time.Duration, logger *zap.Logger) *ClientListService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClientListService{
		clients: clients,
		prefs:   listing.NewJSONCodec[listing.SortConfig](store, ttl),
		logger:  logger,
	}
}

func (s *ClientListService) key(v Viewer) string {
	return listing.SortConfigKey(ClientListView, v.owner())
}

// GetSortConfig returns the stored sort configuration or the default
func (s *ClientListService) GetSortConfig(ctx context.Context, v Viewer) listing.SortConfig {
	cfg, err := listing.LoadSortConfig(ctx, s.prefs, s.key(v), ClientListSchema)
	if err != nil {
		s.logger.Debug("Falling back to default sort config",
			zap.String("key", s.key(v)),
			zap.Error(err),
		)
	}
	return cfg
}

// ClearSortConfig drops the stored sort configuration
func (s *ClientListService) ClearSortConfig(ctx context.Context, v Viewer) error {
	return s.prefs.Clear(ctx, s.key(v))
}

// ClickHeader toggles the sort on column and persists the result
func (s *ClientListService) ClickHeader(ctx context.Context, v Viewer, column string) (listing.SortConfig, error) {
	view := listing.NewView(ClientListSchema, clientRowID)
	view.SetSort(s.GetSortConfig(ctx, v))
	cfg, err := view.ClickHeader(column)
	if err != nil {
		return view.Sort(), err
	}
	if err := s.prefs.Save(ctx, s.key(v), cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// List fetches the clients and renders them filtered by q.Search and sorted
// by the persisted configuration. An explicit q.Sort replaces and persists
// the configuration.
func (s *ClientListService) List(ctx context.Context, v Viewer, q ListQuery) (*ClientListResponse, error) {
	view, err := s.load(ctx, v)
	if err != nil {
		return nil, err
	}
	if q.Sort != "" {
		requested := listing.SortConfig{Key: q.Sort, Sort: listing.ParseDirection(q.Dir)}
		if q.Dir == "" {
			requested.Sort = listing.Ascending
		}
		if !ClientListSchema.Accepts(requested) {
			return nil, listing.ErrUnknownColumn.WithDetails(map[string]any{
				"column":  q.Sort,
				"allowed": ClientListSchema.ColumnKeys(),
			})
		}
		view.SetSort(requested)
		if err := s.prefs.Save(ctx, s.key(v), requested); err != nil {
			s.logger.Warn("Failed to persist sort config", zap.Error(err))
		}
	}
	view.SetSearch(q.Search)
	return render(view), nil
}

func (s *ClientListService) load(ctx context.Context, v Viewer) (*listing.View[ClientRow], error) {
	view := listing.NewView(ClientListSchema, clientRowID)
	view.SetSort(s.GetSortConfig(ctx, v))
	collection, err := s.clients.Fetch(ctx, v.TenantID)
	if err != nil {
		return nil, err
	}
	view.Load(collection)
	return view, nil
}

func render(view *listing.View[ClientRow]) *ClientListResponse {
	rows := view.Rows()
	return &ClientListResponse{
		Items:   rows,
		Sort:    view.Sort(),
		Search:  view.Search(),
		Total:   view.Collection().Len(),
		Visible: len(rows),
		Columns: ClientListSchema.ColumnKeys(),
	}
}

// BulkDelete deletes the selected clients after their receivables and
// returns the refetched list. The selection never includes clients the
// search filters out; with SelectAll it is every matching client.
func (s *ClientListService) BulkDelete(ctx context.Context, v Viewer, req BulkDeleteRequest) (*BulkDeleteResponse, error) {
	view, err := s.load(ctx, v)
	if err != nil {
		return nil, err
	}
	view.SetSearch(req.Search)

	selection := view.Selection()
	if req.SelectAll {
		view.ToggleSelectAll()
	} else {
		visible := make(map[string]struct{})
		for _, id := range view.VisibleIDs() {
			visible[id] = struct{}{}
		}
		for _, id := range req.IDs {
			key := id.String()
			if _, ok := visible[key]; ok && !selection.Has(key) {
				selection.Toggle(key)
			}
		}
	}
	if selection.Len() == 0 {
		return nil, shared.NewDomainError("EMPTY_SELECTION", "No clients selected")
	}
	if !req.Confirm {
		return nil, shared.ErrConfirmationRequired.WithDetails(map[string]any{
			"selected": selection.Len(),
		})
	}

	ids := make([]uuid.UUID, 0, selection.Len())
	for _, raw := range selection.IDs() {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("selection id %q: %w", raw, err)
		}
		ids = append(ids, id)
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "client", "bulk_delete",
		telemetry.SpanAttrTenantID, v.TenantID.String(),
		telemetry.SpanAttrClientCount, len(ids),
	)
	defer span.End()

	deletedClients, deletedReceivables, err := s.clients.DeleteMany(ctx, v.TenantID, ids)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrReceivables, deletedReceivables)
	view.Dismiss()

	s.logger.Info("Bulk deleted clients",
		zap.String("tenant_id", v.TenantID.String()),
		zap.Int64("clients", deletedClients),
		zap.Int64("receivables", deletedReceivables),
	)

	refreshed, err := s.load(ctx, v)
	if err != nil {
		return nil, err
	}
	return &BulkDeleteResponse{
		DeletedClients:     deletedClients,
		DeletedReceivables: deletedReceivables,
		List:               render(refreshed),
	}, nil
}
