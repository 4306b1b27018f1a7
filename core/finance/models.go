// Package finance covers the student account, financial aid and card payments.
package finance

import (
	"context"
	"time"

	"github.com/trezcool/gateway/core"
)

// Payment statuses
const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
)

// Disbursement statuses
const (
	Disbursed = "disbursed"
	Pending   = "pending"
)

type (
	LineItem struct {
		Description string  `json:"description" yaml:"description"`
		Amount      float64 `json:"amount" yaml:"amount"` // charges are positive, credits negative
	}

	// Account is the student account; a negative balance is owed.
	Account struct {
		Balance float64    `json:"balance" yaml:"balance"`
		DueDate string     `json:"due_date" yaml:"due_date"`
		Items   []LineItem `json:"items" yaml:"items"`
	}

	Disbursement struct {
		Term   string  `json:"term" yaml:"term"`
		Amount float64 `json:"amount" yaml:"amount"`
		Status string  `json:"status" yaml:"status"` // disbursed | pending
	}

	Award struct {
		Name          string         `json:"name" yaml:"name"`
		Kind          string         `json:"kind" yaml:"kind"`
		Status        string         `json:"status" yaml:"status"` // Accepted | Offered
		Amount        float64        `json:"amount" yaml:"amount"` // per year
		Disbursements []Disbursement `json:"disbursements" yaml:"disbursements"`
	}

	KeyDate struct {
		Label string `json:"label" yaml:"label"`
		Date  string `json:"date" yaml:"date"`
	}

	AidYear struct {
		Year   string    `json:"year" yaml:"year"`
		Awards []Award   `json:"awards" yaml:"awards"`
		Dates  []KeyDate `json:"dates" yaml:"dates"`
	}

	// AidSummary is the award year with its totals. Pending is whatever is not disbursed yet.
	AidSummary struct {
		AidYear
		Total     float64 `json:"total"`
		Disbursed float64 `json:"disbursed"`
		Pending   float64 `json:"pending"`
	}

	Repository interface {
		GetAccount(ctx context.Context) (Account, error)
		GetAidYear(ctx context.Context) (AidYear, error)
	}

	// Ledger keeps the payments of each session.
	Ledger interface {
		// Begin records p unless a payment of the session is still processing.
		Begin(ctx context.Context, sessionID string, p Payment) error
		// Save replaces the recorded payment with p's ID.
		Save(ctx context.Context, sessionID string, p Payment) error
		Payments(ctx context.Context, sessionID string) ([]Payment, error)
	}

	Payment struct {
		ID             string     `json:"id"`
		ConfirmationID string     `json:"confirmation_id,omitempty"`
		Amount         float64    `json:"amount"`
		CardLast4      string     `json:"card_last4"`
		Status         string     `json:"status"`
		SubmittedAt    time.Time  `json:"submitted_at"`           // UTC
		CompletedAt    *time.Time `json:"completed_at,omitempty"` // UTC
	}
)

// AmountDue is the positive amount owed, 0 when the account is in credit.
func (a Account) AmountDue() float64 {
	if a.Balance < 0 {
		return core.Round(-a.Balance, 2)
	}
	return 0
}

// Processing reports whether one of the payments is still being processed.
func Processing(payments []Payment) bool {
	for _, p := range payments {
		if p.Status == StatusProcessing {
			return true
		}
	}
	return false
}

// Upsert replaces the payment with p's ID, or appends p.
func Upsert(payments []Payment, p Payment) []Payment {
	for i := range payments {
		if payments[i].ID == p.ID {
			payments[i] = p
			return payments
		}
	}
	return append(payments, p)
}

// Summarize totals the awards of the year.
func Summarize(year AidYear) AidSummary {
	sum := AidSummary{AidYear: year}
	for _, a := range year.Awards {
		sum.Total += a.Amount
		for _, d := range a.Disbursements {
			if d.Status == Disbursed {
				sum.Disbursed += d.Amount
			}
		}
	}
	sum.Total = core.Round(sum.Total, 2)
	sum.Disbursed = core.Round(sum.Disbursed, 2)
	sum.Pending = core.Round(sum.Total-sum.Disbursed, 2)
	return sum
}
