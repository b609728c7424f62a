package membership_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/clinicdesk/internal/membership"
	"github.com/MrJamesThe3rd/clinicdesk/internal/money"
)

func TestService_Create(t *testing.T) {
	tests := []struct {
		name      string
		params    membership.CreateParams
		setupMock func(m *membership.MockRepository)
		wantErr   error
	}{
		{
			name: "Success",
			params: membership.CreateParams{
				EMRNumber:     "EMR-10",
				PatientName:   "Sam Lee",
				PackageName:   "Gold",
				PackageAmount: money.ParseField("5000"),
			},
			setupMock: func(m *membership.MockRepository) {
				m.EXPECT().
					CreateMembership(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, ms *membership.Membership) error {
						assert.Equal(t, "5000.00", money.Format(ms.PackageAmount))
						ms.ID = uuid.New()

						return nil
					})
			},
		},
		{
			name: "SubCentPackageAmount",
			params: membership.CreateParams{
				EMRNumber:     "EMR-12",
				PackageAmount: money.ParseField("999.996"),
			},
			setupMock: func(m *membership.MockRepository) {
				m.EXPECT().
					CreateMembership(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, ms *membership.Membership) error {
						assert.True(t, decimal.NewFromInt(1000).Equal(ms.PackageAmount))
						ms.ID = uuid.New()

						return nil
					})
			},
		},
		{
			name:    "MissingEMR",
			params:  membership.CreateParams{PackageAmount: money.ParseField("100")},
			wantErr: membership.ErrInvalidEMR,
		},
		{
			name:   "AlreadyExists",
			params: membership.CreateParams{EMRNumber: "EMR-11"},
			setupMock: func(m *membership.MockRepository) {
				m.EXPECT().CreateMembership(gomock.Any(), gomock.Any()).Return(membership.ErrAlreadyExists)
			},
			wantErr: membership.ErrAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := membership.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := membership.NewService(repo).Create(context.Background(), tt.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, got.ID)
		})
	}
}

func TestService_AddTreatment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := membership.NewMockRepository(ctrl)
	svc := membership.NewService(repo)

	existing := &membership.Membership{ID: uuid.New(), EMRNumber: "EMR-20", PackageAmount: decimal.NewFromInt(1000)}

	repo.EXPECT().GetMembership(gomock.Any(), "EMR-20").Return(existing, nil)
	repo.EXPECT().
		AddTreatment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tr *membership.Treatment) error {
			assert.Equal(t, existing.ID, tr.MembershipID)
			tr.ID = uuid.New()

			return nil
		})

	got, err := svc.AddTreatment(context.Background(), "EMR-20", membership.TreatmentParams{
		TreatmentName: "Facial",
		UnitCount:     3,
		UnitPrice:     decimal.NewFromInt(120),
	})
	require.NoError(t, err)
	require.Len(t, got.Treatments, 1)
	assert.Equal(t, "640.00", money.Format(got.Balance().Remaining))
}

func TestService_AddTreatment_SubCentPrice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := membership.NewMockRepository(ctrl)
	svc := membership.NewService(repo)

	existing := &membership.Membership{ID: uuid.New(), EMRNumber: "EMR-21", PackageAmount: decimal.NewFromInt(10)}

	repo.EXPECT().GetMembership(gomock.Any(), "EMR-21").Return(existing, nil)
	repo.EXPECT().
		AddTreatment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tr *membership.Treatment) error {
			assert.Equal(t, "0.33", money.Format(tr.UnitPrice))
			tr.ID = uuid.New()

			return nil
		})

	got, err := svc.AddTreatment(context.Background(), "EMR-21", membership.TreatmentParams{
		TreatmentName: "Sample",
		UnitCount:     3,
		UnitPrice:     decimal.RequireFromString("0.333"),
	})
	require.NoError(t, err)

	balance := got.Balance()
	assert.Equal(t, "0.99", money.Format(balance.Consumed))
	assert.Equal(t, "9.01", money.Format(balance.Remaining))
}

func TestService_AddTreatment_Invalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := membership.NewService(membership.NewMockRepository(ctrl))

	for _, p := range []membership.TreatmentParams{
		{TreatmentName: "", UnitCount: 1},
		{TreatmentName: "Facial", UnitCount: 0},
		{TreatmentName: "Facial", UnitCount: 1, UnitPrice: decimal.NewFromInt(-1)},
	} {
		_, err := svc.AddTreatment(context.Background(), "EMR-20", p)
		assert.ErrorIs(t, err, membership.ErrInvalidTreatment)
	}
}

func TestService_Transfer(t *testing.T) {
	source := func() *membership.Membership {
		return &membership.Membership{
			EMRNumber:     "EMR-B",
			PackageAmount: decimal.NewFromInt(1000),
			Treatments:    []membership.Treatment{line("Massage", 1, "400")},
		}
	}
	target := func() *membership.Membership {
		return &membership.Membership{EMRNumber: "EMR-A", PatientName: "Ann", PackageAmount: decimal.NewFromInt(100)}
	}

	tests := []struct {
		name      string
		params    membership.TransferParams
		setupMock func(repo *membership.MockRepository, ttx *membership.MockTransferTx)
		wantErr   error
		wantMsg   string
	}{
		{
			name:   "Success",
			params: membership.TransferParams{FromEMR: "EMR-B", ToEMR: "EMR-A", Amount: decimal.NewFromInt(600), Note: "family"},
			setupMock: func(repo *membership.MockRepository, ttx *membership.MockTransferTx) {
				repo.EXPECT().BeginTransfer(gomock.Any()).Return(ttx, nil)
				gomock.InOrder(
					ttx.EXPECT().LockMembership(gomock.Any(), "EMR-A").Return(target(), nil),
					ttx.EXPECT().LockMembership(gomock.Any(), "EMR-B").Return(source(), nil),
				)
				ttx.EXPECT().
					AppendTransfer(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tr *membership.Transfer) error {
						assert.Equal(t, "Ann", tr.ToName)
						assert.Equal(t, "600.00", money.Format(tr.TransferredAmount))

						return nil
					})
				ttx.EXPECT().Commit().Return(nil)
				ttx.EXPECT().Rollback().Return(nil)
			},
		},
		{
			name:   "Insufficient",
			params: membership.TransferParams{FromEMR: "EMR-B", ToEMR: "EMR-A", Amount: decimal.RequireFromString("600.01")},
			setupMock: func(repo *membership.MockRepository, ttx *membership.MockTransferTx) {
				repo.EXPECT().BeginTransfer(gomock.Any()).Return(ttx, nil)
				ttx.EXPECT().LockMembership(gomock.Any(), "EMR-A").Return(target(), nil)
				ttx.EXPECT().LockMembership(gomock.Any(), "EMR-B").Return(source(), nil)
				ttx.EXPECT().Rollback().Return(nil)
			},
			wantErr: membership.ErrInsufficientBalance,
		},
		{
			name:   "TargetMissing",
			params: membership.TransferParams{FromEMR: "EMR-B", ToEMR: "EMR-A", Amount: decimal.NewFromInt(10)},
			setupMock: func(repo *membership.MockRepository, ttx *membership.MockTransferTx) {
				repo.EXPECT().BeginTransfer(gomock.Any()).Return(ttx, nil)
				ttx.EXPECT().LockMembership(gomock.Any(), "EMR-A").Return(nil, membership.ErrNotFound)
				ttx.EXPECT().Rollback().Return(nil)
			},
			wantErr: membership.ErrNotFound,
		},
		{
			name:    "SameEMR",
			params:  membership.TransferParams{FromEMR: "EMR-B", ToEMR: " EMR-B", Amount: decimal.NewFromInt(10)},
			wantErr: membership.ErrSelfTransfer,
		},
		{
			name:    "ZeroAmount",
			params:  membership.TransferParams{FromEMR: "EMR-B", ToEMR: "EMR-A"},
			wantErr: membership.ErrInvalidTransfer,
		},
		{
			name:    "SubCentAmount",
			params:  membership.TransferParams{FromEMR: "EMR-B", ToEMR: "EMR-A", Amount: decimal.RequireFromString("0.004")},
			wantErr: membership.ErrInvalidTransfer,
		},
		{
			name:   "RoundedBeforeRecording",
			params: membership.TransferParams{FromEMR: "EMR-B", ToEMR: "EMR-A", Amount: decimal.RequireFromString("600.004")},
			setupMock: func(repo *membership.MockRepository, ttx *membership.MockTransferTx) {
				repo.EXPECT().BeginTransfer(gomock.Any()).Return(ttx, nil)
				ttx.EXPECT().LockMembership(gomock.Any(), "EMR-A").Return(target(), nil)
				ttx.EXPECT().LockMembership(gomock.Any(), "EMR-B").Return(source(), nil)
				ttx.EXPECT().
					AppendTransfer(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tr *membership.Transfer) error {
						assert.True(t, decimal.NewFromInt(600).Equal(tr.TransferredAmount))

						return nil
					})
				ttx.EXPECT().Commit().Return(nil)
				ttx.EXPECT().Rollback().Return(nil)
			},
		},
		{
			name:   "BeginFails",
			params: membership.TransferParams{FromEMR: "EMR-B", ToEMR: "EMR-A", Amount: decimal.NewFromInt(10)},
			setupMock: func(repo *membership.MockRepository, _ *membership.MockTransferTx) {
				repo.EXPECT().BeginTransfer(gomock.Any()).Return(nil, errors.New("db down"))
			},
			wantMsg: "db down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := membership.NewMockRepository(ctrl)
			ttx := membership.NewMockTransferTx(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo, ttx)
			}

			got, err := membership.NewService(repo).Transfer(context.Background(), tt.params)
			if tt.wantErr != nil || tt.wantMsg != "" {
				assert.Nil(t, got)

				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}

				if tt.wantMsg != "" {
					assert.ErrorContains(t, err, tt.wantMsg)
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "EMR-B", got.FromEMR)
			assert.Equal(t, "EMR-A", got.ToEMR)
		})
	}
}
