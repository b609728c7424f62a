package membership_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/clinicdesk/internal/http/auth"
	httpmembership "github.com/MrJamesThe3rd/clinicdesk/internal/http/membership"
	"github.com/MrJamesThe3rd/clinicdesk/internal/membership"
	"github.com/MrJamesThe3rd/clinicdesk/internal/permission"
)

func serve(t *testing.T, repo membership.Repository, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	ctrl := gomock.NewController(t)
	checker := auth.NewMockChecker(ctrl)
	checker.EXPECT().Check(gomock.Any(), "tok", "billing", gomock.Any()).
		Return(permission.CRUD{Create: true, Read: true, Update: true}).AnyTimes()

	r := chi.NewRouter()
	httpmembership.NewHandler(membership.NewService(repo), auth.NewGate(checker)).Routes(r)

	req = req.WithContext(auth.WithIdentity(req.Context(), auth.Identity{Subject: "u1", Token: "tok"}))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	return rec
}

func TestHandler_Get(t *testing.T) {
	type testCase struct {
		name       string
		setupMock  func(m *membership.MockRepository)
		wantStatus int
		wantBody   string
	}

	tests := []testCase{
		{
			name: "Found",
			setupMock: func(m *membership.MockRepository) {
				m.EXPECT().GetMembership(gomock.Any(), "EMR-1").Return(&membership.Membership{
					EMRNumber:     "EMR-1",
					PackageAmount: decimal.NewFromInt(1000),
					Treatments: []membership.Treatment{
						{TreatmentName: "Laser", UnitCount: 2, UnitPrice: decimal.NewFromInt(150)},
					},
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"remaining":"700"`,
		},
		{
			name: "NotFound",
			setupMock: func(m *membership.MockRepository) {
				m.EXPECT().GetMembership(gomock.Any(), "EMR-1").Return(nil, membership.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := membership.NewMockRepository(ctrl)
			tt.setupMock(repo)

			rec := serve(t, repo, httptest.NewRequest(http.MethodGet, "/EMR-1", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestHandler_Transfer(t *testing.T) {
	type testCase struct {
		name       string
		body       string
		setupMock  func(m *membership.MockRepository)
		wantStatus int
	}

	tests := []testCase{
		{
			name:       "SelfTransfer",
			body:       `{"from_emr":"EMR-1","to_emr":"EMR-1","amount":"10"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "InsufficientBalance",
			body: `{"from_emr":"EMR-1","to_emr":"EMR-2","amount":"5000"}`,
			setupMock: func(m *membership.MockRepository) {
				ttx := membership.NewMockTransferTx(gomock.NewController(t))
				ttx.EXPECT().LockMembership(gomock.Any(), "EMR-1").
					Return(&membership.Membership{EMRNumber: "EMR-1", PackageAmount: decimal.NewFromInt(100)}, nil)
				ttx.EXPECT().LockMembership(gomock.Any(), "EMR-2").
					Return(&membership.Membership{EMRNumber: "EMR-2"}, nil)
				ttx.EXPECT().Rollback().Return(nil)

				m.EXPECT().BeginTransfer(gomock.Any()).Return(ttx, nil)
			},
			wantStatus: http.StatusConflict,
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

			rec := serve(t, repo, httptest.NewRequest(http.MethodPost, "/transfers", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
