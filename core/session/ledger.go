package session

import (
	"context"

	"github.com/trezcool/gateway/core/finance"
)

// PaymentLedger keeps the payments on the session they were made in, so they end with it.
type PaymentLedger struct {
	store Store
}

var _ finance.Ledger = (*PaymentLedger)(nil)

func NewPaymentLedger(store Store) *PaymentLedger {
	return &PaymentLedger{store: store}
}

func (l *PaymentLedger) Begin(ctx context.Context, sessionID string, p finance.Payment) error {
	_, err := l.store.Update(ctx, sessionID, func(s *Session) error {
		if finance.Processing(s.Payments) {
			return finance.ErrPaymentInProgress
		}
		s.Payments = append(s.Payments, p)
		return nil
	})
	return err
}

func (l *PaymentLedger) Save(ctx context.Context, sessionID string, p finance.Payment) error {
	_, err := l.store.Update(ctx, sessionID, func(s *Session) error {
		s.Payments = finance.Upsert(s.Payments, p)
		return nil
	})
	return err
}

func (l *PaymentLedger) Payments(ctx context.Context, sessionID string) ([]finance.Payment, error) {
	s, err := l.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.Payments, nil
}
