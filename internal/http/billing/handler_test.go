package billing_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/clinicdesk/internal/billing"
	"github.com/MrJamesThe3rd/clinicdesk/internal/http/auth"
	httpbilling "github.com/MrJamesThe3rd/clinicdesk/internal/http/billing"
	"github.com/MrJamesThe3rd/clinicdesk/internal/permission"
)

func newRouter(t *testing.T, repo billing.Repository, grants permission.CRUD) http.Handler {
	t.Helper()

	ctrl := gomock.NewController(t)
	checker := auth.NewMockChecker(ctrl)
	checker.EXPECT().Check(gomock.Any(), "tok", "billing", gomock.Any()).Return(grants).AnyTimes()

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := auth.WithIdentity(r.Context(), auth.Identity{Subject: "u1", Token: "tok"})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})

	httpbilling.NewHandler(billing.NewService(repo), auth.NewGate(checker)).Routes(r)

	return r
}

func TestHandler_Preview(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := billing.NewMockRepository(ctrl)

	body := `{"amount":"1000","paid":"400","insurance":"No"}`
	req := httptest.NewRequest(http.MethodPost, "/preview", strings.NewReader(body))
	rec := httptest.NewRecorder()

	newRouter(t, repo, permission.CRUD{Read: true}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "600", got["pending"])
	assert.Equal(t, "400", got["paid"])
}

func TestHandler_Register(t *testing.T) {
	type testCase struct {
		name       string
		body       string
		grants     permission.CRUD
		setupMock  func(m *billing.MockRepository)
		wantStatus int
	}

	tests := []testCase{
		{
			name:   "Created",
			body:   `{"emr_number":"EMR-1","patient_name":"Ana","kind":"service","amount":"500","paid":"500","insurance":"No"}`,
			grants: permission.CRUD{Create: true},
			setupMock: func(m *billing.MockRepository) {
				m.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "MissingEMR",
			body:       `{"patient_name":"Ana","amount":"500"}`,
			grants:     permission.CRUD{Create: true},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "UnknownKind",
			body:       `{"emr_number":"EMR-1","kind":"voucher","amount":"500"}`,
			grants:     permission.CRUD{Create: true},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "BadBody",
			body:       `{`,
			grants:     permission.CRUD{Create: true},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Forbidden",
			body:       `{"emr_number":"EMR-1"}`,
			grants:     permission.CRUD{Read: true},
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := billing.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			req := httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			newRouter(t, repo, tt.grants).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_Cancel(t *testing.T) {
	id := uuid.New()

	type testCase struct {
		name       string
		setupMock  func(m *billing.MockRepository)
		wantStatus int
	}

	tests := []testCase{
		{
			name: "Cancelled",
			setupMock: func(m *billing.MockRepository) {
				m.EXPECT().GetInvoice(gomock.Any(), id).Return(&billing.Invoice{ID: id, Status: billing.StatusActive}, nil)
				m.EXPECT().CancelInvoice(gomock.Any(), id, "duplicate").Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name: "AlreadyCancelled",
			setupMock: func(m *billing.MockRepository) {
				m.EXPECT().GetInvoice(gomock.Any(), id).Return(&billing.Invoice{ID: id, Status: billing.StatusCancelled}, nil)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name: "NotFound",
			setupMock: func(m *billing.MockRepository) {
				m.EXPECT().GetInvoice(gomock.Any(), id).Return(nil, billing.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := billing.NewMockRepository(ctrl)
			tt.setupMock(repo)

			req := httptest.NewRequest(http.MethodPost, "/invoices/"+id.String()+"/cancel", strings.NewReader(`{"reason":"duplicate"}`))
			rec := httptest.NewRecorder()

			newRouter(t, repo, permission.CRUD{Create: true}).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_Advance(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := billing.NewMockRepository(ctrl)
	repo.EXPECT().LatestAdvance(gomock.Any(), "EMR-7").Return(decimal.NewFromInt(250), true, nil)

	req := httptest.NewRequest(http.MethodGet, "/advance/EMR-7", nil).WithContext(context.Background())
	rec := httptest.NewRecorder()

	newRouter(t, repo, permission.CRUD{Read: true}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"emr_number":"EMR-7","advance":"250"}`, rec.Body.String())
}
