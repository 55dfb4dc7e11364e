package finance

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paymentflow/backend/internal/domain/shared"
)

// ReceivableStatus represents the status of a receivable
type ReceivableStatus string

const (
	ReceivableStatusPending   ReceivableStatus = "pending"   // Open, not yet due or not yet reminded
	ReceivableStatusOverdue   ReceivableStatus = "overdue"   // Open and at least one reminder was sent
	ReceivableStatusPaid      ReceivableStatus = "paid"      // Settled
	ReceivableStatusCancelled ReceivableStatus = "cancelled" // Written off
)

// IsValid checks if the status is a valid ReceivableStatus
func (s ReceivableStatus) IsValid() bool {
	switch s {
	case ReceivableStatusPending, ReceivableStatusOverdue, ReceivableStatusPaid, ReceivableStatusCancelled:
		return true
	}
	return false
}

// IsOpen returns true while money is still owed
func (s ReceivableStatus) IsOpen() bool {
	return s == ReceivableStatusPending || s == ReceivableStatusOverdue
}

// String returns the string representation of ReceivableStatus
func (s ReceivableStatus) String() string {
	return string(s)
}

// MaxInvoiceNumberLength bounds invoice numbers
const MaxInvoiceNumberLength = 50

// Receivable is an outstanding invoice owed by exactly one client
type Receivable struct {
	shared.TenantEntity
	ClientID       uuid.UUID
	InvoiceNumber  string
	Amount         decimal.Decimal
	DueDate        *time.Time
	Status         ReceivableStatus
	ReminderCount  int
	LastRemindedAt *time.Time
}

// NewReceivable creates a pending receivable
func NewReceivable(tenantID, clientID uuid.UUID, invoiceNumber string, amount decimal.Decimal, dueDate *time.Time) (*Receivable, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	invoiceNumber = strings.TrimSpace(invoiceNumber)
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if len(invoiceNumber) > MaxInvoiceNumberLength {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot exceed 50 characters")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}

	return &Receivable{
		TenantEntity:  shared.NewTenantEntity(tenantID),
		ClientID:      clientID,
		InvoiceNumber: invoiceNumber,
		Amount:        amount,
		DueDate:       dueDate,
		Status:        ReceivableStatusPending,
	}, nil
}

// NewPlaceholderReceivable creates the zero-amount receivable that marks a
// client as needing reminders until a real invoice is recorded.
func NewPlaceholderReceivable(tenantID, clientID uuid.UUID, now time.Time) (*Receivable, error) {
	return NewReceivable(tenantID, clientID, GenerateInvoiceNumber(now), decimal.Zero, nil)
}

const suffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateInvoiceNumber builds "INV-<unix millis>-<4 random base36 chars>".
func GenerateInvoiceNumber(now time.Time) string {
	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = suffixAlphabet[rand.IntN(len(suffixAlphabet))]
	}
	return "INV-" + strconv.FormatInt(now.UnixMilli(), 10) + "-" + string(suffix)
}

// IsPlaceholder reports whether this is a generated zero-amount receivable
func (r *Receivable) IsPlaceholder() bool {
	return r.Amount.IsZero() && r.DueDate == nil
}

// IsOverdue reports whether the receivable is open and past its due date
func (r *Receivable) IsOverdue(now time.Time) bool {
	return r.Status.IsOpen() && r.DueDate != nil && r.DueDate.Before(now)
}

// ReminderDue reports whether a reminder should be sent now, given the
// minimum interval between reminders and the maximum reminder count.
func (r *Receivable) ReminderDue(now time.Time, interval time.Duration, maxReminders int) bool {
	if !r.IsOverdue(now) {
		return false
	}
	if maxReminders > 0 && r.ReminderCount >= maxReminders {
		return false
	}
	return r.LastRemindedAt == nil || !now.Before(r.LastRemindedAt.Add(interval))
}

// RecordReminderSent marks a reminder as sent
func (r *Receivable) RecordReminderSent(now time.Time) error {
	if !r.Status.IsOpen() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot remind a %s receivable", r.Status))
	}
	r.ReminderCount++
	r.LastRemindedAt = &now
	r.Status = ReceivableStatusOverdue
	r.IncrementVersion()
	return nil
}

// MarkPaid settles the receivable
func (r *Receivable) MarkPaid() error {
	if !r.Status.IsOpen() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot mark a %s receivable as paid", r.Status))
	}
	r.Status = ReceivableStatusPaid
	r.IncrementVersion()
	return nil
}

// Cancel writes the receivable off
func (r *Receivable) Cancel() error {
	if !r.Status.IsOpen() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel a %s receivable", r.Status))
	}
	r.Status = ReceivableStatusCancelled
	r.IncrementVersion()
	return nil
}
