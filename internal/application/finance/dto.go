package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paymentflow/backend/internal/domain/finance"
)

// ReceivableResponse represents a receivable in API responses
type ReceivableResponse struct {
	ID             uuid.UUID       `json:"id"`
	ClientID       uuid.UUID       `json:"client_id"`
	InvoiceNumber  string          `json:"invoice_number"`
	Amount         decimal.Decimal `json:"amount"`
	DueDate        *time.Time      `json:"due_date,omitempty"`
	Status         string          `json:"status"`
	ReminderCount  int             `json:"reminder_count"`
	LastRemindedAt *time.Time      `json:"last_reminded_at,omitempty"`
	Placeholder    bool            `json:"placeholder"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ToReceivableResponse converts a domain Receivable
func ToReceivableResponse(r *finance.Receivable) ReceivableResponse {
	return ReceivableResponse{
		ID:             r.ID,
		ClientID:       r.ClientID,
		InvoiceNumber:  r.InvoiceNumber,
		Amount:         r.Amount,
		DueDate:        r.DueDate,
		Status:         r.Status.String(),
		ReminderCount:  r.ReminderCount,
		LastRemindedAt: r.LastRemindedAt,
		Placeholder:    r.IsPlaceholder(),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// ReceivableListFilter filters the receivable list
type ReceivableListFilter struct {
	ClientID *uuid.UUID `form:"-"` // parsed from client_id by the handler
	Status   string     `form:"status" binding:"omitempty,oneof=pending paid overdue cancelled"`
	OrderBy  string     `form:"order_by" binding:"omitempty,max=50"`
	OrderDir string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}
