package service

import (
	"context"
	"errors"
	"testing"

	"credit-arcade/internal/core/domain"
	"credit-arcade/internal/core/ports/mocks"
	"credit-arcade/pkg/apperror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAccountService_GetBalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	balances := mocks.NewMockBalanceStore(ctrl)
	svc := NewAccountService(balances, mocks.NewMockLedgerRepository(ctrl))
	ctx := context.Background()

	balances.EXPECT().GetBalance(ctx, "7").Return(decimal.RequireFromString("102.5"), nil)

	got, err := svc.GetBalance(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, "102.50", got.StringFixed(2))
}

func TestAccountService_GetBalance_StoreDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	balances := mocks.NewMockBalanceStore(ctrl)
	svc := NewAccountService(balances, mocks.NewMockLedgerRepository(ctrl))

	balances.EXPECT().GetBalance(gomock.Any(), "7").Return(decimal.Zero, errors.New("timeout"))

	_, err := svc.GetBalance(context.Background(), "7")
	assertAppError(t, err, apperror.CodeStoreUnavailable)
}

func TestAccountService_ListLedger_Limits(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		expected  int
	}{
		{"default when zero", 0, 20},
		{"default when negative", -5, 20},
		{"passthrough", 50, 50},
		{"capped", 1000, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			ledger := mocks.NewMockLedgerRepository(ctrl)
			svc := NewAccountService(mocks.NewMockBalanceStore(ctrl), ledger)

			entries := []domain.LedgerEntry{{Identity: "7", Kind: domain.EntryKindBet}}
			ledger.EXPECT().ListByIdentity(gomock.Any(), "7", tt.expected).Return(entries, nil)

			got, err := svc.ListLedger(context.Background(), "7", tt.requested)
			require.NoError(t, err)
			assert.Equal(t, entries, got)
		})
	}
}

func TestAccountService_ListLedger_StoreDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := mocks.NewMockLedgerRepository(ctrl)
	svc := NewAccountService(mocks.NewMockBalanceStore(ctrl), ledger)

	ledger.EXPECT().ListByIdentity(gomock.Any(), "7", 20).Return(nil, errors.New("timeout"))

	_, err := svc.ListLedger(context.Background(), "7", 0)
	assertAppError(t, err, apperror.CodeStoreUnavailable)
}
