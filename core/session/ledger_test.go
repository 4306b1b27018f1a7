package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/gateway/core/finance"
	"github.com/trezcool/gateway/core/session"
	"github.com/trezcool/gateway/storage/inmem"
)

func TestPaymentLedger(t *testing.T) {
	ctx := context.Background()
	store := inmem.NewSessionStore(time.Hour)
	ledger := session.NewPaymentLedger(store)

	s := session.New()
	require.NoError(t, store.Create(ctx, s))

	payments, err := ledger.Payments(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, payments)

	p := finance.Payment{ID: "p1", Amount: 500, Status: finance.StatusProcessing}
	require.NoError(t, ledger.Begin(ctx, s.ID, p))
	assert.Equal(t, finance.ErrPaymentInProgress, ledger.Begin(ctx, s.ID, finance.Payment{ID: "p2", Status: finance.StatusProcessing}))

	p.Status = finance.StatusCompleted
	p.ConfirmationID = "7K2M9Q4XPA"
	require.NoError(t, ledger.Save(ctx, s.ID, p))
	require.NoError(t, ledger.Begin(ctx, s.ID, finance.Payment{ID: "p2", Status: finance.StatusProcessing}))

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, got.Payments, 2, "payments live on the session")
	assert.Equal(t, p, got.Payments[0])
	assert.Equal(t, "p2", got.Payments[1].ID)

	other := session.New()
	require.NoError(t, store.Create(ctx, other))
	payments, err = ledger.Payments(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, payments, "sessions are independent")
}

func TestPaymentLedger_DeletedSession(t *testing.T) {
	ctx := context.Background()
	store := inmem.NewSessionStore(time.Hour)
	ledger := session.NewPaymentLedger(store)

	s := session.New()
	require.NoError(t, store.Create(ctx, s))
	p := finance.Payment{ID: "p1", Amount: 500, Status: finance.StatusProcessing}
	require.NoError(t, ledger.Begin(ctx, s.ID, p))

	require.NoError(t, store.Delete(ctx, s.ID))

	payments, err := ledger.Payments(ctx, s.ID)
	assert.Equal(t, session.ErrNotFound, err)
	assert.Empty(t, payments, "payments end with their session")

	p.Status = finance.StatusCompleted
	assert.Equal(t, session.ErrNotFound, ledger.Save(ctx, s.ID, p))
	assert.Zero(t, store.Len())
}
