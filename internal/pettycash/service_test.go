package pettycash_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/clinicdesk/internal/money"
	"github.com/MrJamesThe3rd/clinicdesk/internal/pettycash"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		args      pettycash.CreateParams
		setupMock func(m *pettycash.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Expense",
			args: pettycash.CreateParams{
				Kind:        pettycash.KindExpense,
				Amount:      money.ParseField("49.999"),
				Category:    " Supplies ",
				Description: "Gloves",
				ReceiptURL:  "https://files.example/r/1.jpg",
				Date:        time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			},
			setupMock: func(m *pettycash.MockRepository) {
				m.EXPECT().CreateEntry(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e *pettycash.Entry) error {
					assert.Equal(t, "50", e.Amount.String())
					assert.Equal(t, "Supplies", e.Category)
					return nil
				})
			},
		},
		{
			name:    "InvalidKind",
			args:    pettycash.CreateParams{Kind: "refund", Amount: money.ParseField("10")},
			wantErr: pettycash.ErrInvalidKind,
		},
		{
			name:    "ZeroAmount",
			args:    pettycash.CreateParams{Kind: pettycash.KindFund, Amount: money.ParseField("abc")},
			wantErr: pettycash.ErrInvalidEntry,
		},
		{
			name:    "NegativeAmountClampsToZero",
			args:    pettycash.CreateParams{Kind: pettycash.KindFund, Amount: money.ParseField("-20")},
			wantErr: pettycash.ErrInvalidEntry,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := pettycash.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := pettycash.NewService(repo)
			e, err := svc.Create(context.Background(), tt.args)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.args.Kind, e.Kind)
		})
	}
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	existing := &pettycash.Entry{ID: id, Kind: pettycash.KindExpense, Amount: decimal.RequireFromString("12"), Category: "Food"}

	repo := pettycash.NewMockRepository(ctrl)
	repo.EXPECT().GetEntry(gomock.Any(), id).Return(existing, nil)
	repo.EXPECT().UpdateEntry(gomock.Any(), existing).Return(nil)

	svc := pettycash.NewService(repo)
	amount := money.ParseField("15.5")
	e, err := svc.Update(context.Background(), id, pettycash.UpdateParams{Amount: &amount, Category: new("Transport")})
	require.NoError(t, err)
	assert.Equal(t, "15.5", e.Amount.String())
	assert.Equal(t, "Transport", e.Category)
}

func TestService_Update_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := pettycash.NewMockRepository(ctrl)
	repo.EXPECT().GetEntry(gomock.Any(), gomock.Any()).Return(nil, pettycash.ErrNotFound)

	_, err := pettycash.NewService(repo).Update(context.Background(), uuid.New(), pettycash.UpdateParams{})
	assert.ErrorIs(t, err, pettycash.ErrNotFound)
}

func TestService_Summary(t *testing.T) {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	t.Run("Totals", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := pettycash.NewMockRepository(ctrl)
		repo.EXPECT().ListEntries(gomock.Any(), pettycash.ListFilter{StartDate: &from, EndDate: &to}).Return([]*pettycash.Entry{
			{Kind: pettycash.KindFund, Amount: decimal.RequireFromString("500")},
			{Kind: pettycash.KindExpense, Amount: decimal.RequireFromString("120.25")},
			{Kind: pettycash.KindExpense, Amount: decimal.RequireFromString("79.75")},
			{Kind: pettycash.KindFund, Amount: decimal.RequireFromString("100")},
		}, nil)

		sum, err := pettycash.NewService(repo).Summary(context.Background(), &from, &to)
		require.NoError(t, err)
		assert.Equal(t, "600.00", money.Format(sum.Funded))
		assert.Equal(t, "200.00", money.Format(sum.Spent))
		assert.Equal(t, "400.00", money.Format(sum.Balance))
		assert.Equal(t, 4, sum.Entries)
	})

	t.Run("Empty", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := pettycash.NewMockRepository(ctrl)
		repo.EXPECT().ListEntries(gomock.Any(), gomock.Any()).Return(nil, nil)

		sum, err := pettycash.NewService(repo).Summary(context.Background(), nil, nil)
		require.NoError(t, err)
		assert.True(t, sum.Balance.IsZero())
	})

	t.Run("RepositoryError", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := pettycash.NewMockRepository(ctrl)
		repo.EXPECT().ListEntries(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

		_, err := pettycash.NewService(repo).Summary(context.Background(), nil, nil)
		assert.Error(t, err)
	})
}
