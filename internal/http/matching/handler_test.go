package matching_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/clinicdesk/internal/http/auth"
	httpmatching "github.com/MrJamesThe3rd/clinicdesk/internal/http/matching"
	"github.com/MrJamesThe3rd/clinicdesk/internal/matching"
	"github.com/MrJamesThe3rd/clinicdesk/internal/permission"
)

func serve(t *testing.T, grants permission.CRUD, setupMock func(m *matching.MockRepository), method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	ctrl := gomock.NewController(t)

	repo := matching.NewMockRepository(ctrl)
	if setupMock != nil {
		setupMock(repo)
	}

	checker := auth.NewMockChecker(ctrl)
	checker.EXPECT().Check(gomock.Any(), "tok", "billing", gomock.Any()).Return(grants)

	r := chi.NewRouter()
	httpmatching.NewHandler(matching.NewService(repo), auth.NewGate(checker)).Routes(r)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req = req.WithContext(auth.WithIdentity(req.Context(), auth.Identity{Subject: "u1", Token: "tok"}))
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	return rec
}

func TestHandler_Learn(t *testing.T) {
	type testCase struct {
		name       string
		body       string
		grants     permission.CRUD
		setupMock  func(m *matching.MockRepository)
		wantStatus int
	}

	tests := []testCase{
		{
			name:   "Created",
			body:   `{"raw_pattern":"laser hr","item_name":"Laser Hair Removal"}`,
			grants: permission.CRUD{Create: true},
			setupMock: func(m *matching.MockRepository) {
				m.EXPECT().CreateMapping(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "MissingItemName",
			body:       `{"raw_pattern":"laser hr"}`,
			grants:     permission.CRUD{Create: true},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "ReadOnly",
			body:       `{"raw_pattern":"laser hr","item_name":"Laser Hair Removal"}`,
			grants:     permission.CRUD{Read: true},
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, tt.grants, tt.setupMock, http.MethodPost, "/", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_List(t *testing.T) {
	id := uuid.MustParse("9b2f6c1e-4a7d-4c3b-8e5f-1a2b3c4d5e6f")
	created := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	rec := serve(t, permission.CRUD{Read: true}, func(m *matching.MockRepository) {
		m.EXPECT().ListMappings(gomock.Any()).Return([]*matching.Mapping{
			{ID: id, RawPattern: "laser hr", ItemName: "Laser Hair Removal", CreatedAt: created},
		}, nil)
	}, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":"9b2f6c1e-4a7d-4c3b-8e5f-1a2b3c4d5e6f","raw_pattern":"laser hr","item_name":"Laser Hair Removal","created_at":"2026-03-02T09:00:00Z"}]`, rec.Body.String())
}

func TestHandler_Forget_NotFound(t *testing.T) {
	rec := serve(t, permission.CRUD{Delete: true}, func(m *matching.MockRepository) {
		m.EXPECT().DeleteMapping(gomock.Any(), gomock.Any()).Return(matching.ErrNotFound)
	}, http.MethodDelete, "/9b2f6c1e-4a7d-4c3b-8e5f-1a2b3c4d5e6f", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
