package catalog_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/clinicdesk/internal/catalog"
	"github.com/MrJamesThe3rd/clinicdesk/internal/http/auth"
	httpcatalog "github.com/MrJamesThe3rd/clinicdesk/internal/http/catalog"
	"github.com/MrJamesThe3rd/clinicdesk/internal/permission"
)

func serve(t *testing.T, grants permission.CRUD, setupMock func(m *catalog.MockRepository), method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	ctrl := gomock.NewController(t)

	repo := catalog.NewMockRepository(ctrl)
	if setupMock != nil {
		setupMock(repo)
	}

	checker := auth.NewMockChecker(ctrl)
	checker.EXPECT().Check(gomock.Any(), "tok", "billing", gomock.Any()).Return(grants)

	r := chi.NewRouter()
	httpcatalog.NewHandler(catalog.NewService(repo), auth.NewGate(checker)).Routes(r)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req = req.WithContext(auth.WithIdentity(req.Context(), auth.Identity{Subject: "u1", Token: "tok"}))
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	return rec
}

func TestHandler_Create(t *testing.T) {
	type testCase struct {
		name       string
		body       string
		grants     permission.CRUD
		setupMock  func(m *catalog.MockRepository)
		wantStatus int
	}

	tests := []testCase{
		{
			name:   "ActiveByDefault",
			body:   `{"name":" Laser   Hair Removal ","kind":"Treatments","unit_price":"1200"}`,
			grants: permission.CRUD{Create: true},
			setupMock: func(m *catalog.MockRepository) {
				m.EXPECT().CreateItem(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, item *catalog.Item) error {
						assert.Equal(t, "Laser Hair Removal", item.Name)
						assert.Equal(t, catalog.KindTreatment, item.Kind)
						assert.True(t, item.Active)
						return nil
					})
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "UnknownKind",
			body:       `{"name":"Facial","kind":"voucher","unit_price":"50"}`,
			grants:     permission.CRUD{Create: true},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "Duplicate",
			body:   `{"name":"Facial","kind":"service","unit_price":"50"}`,
			grants: permission.CRUD{Create: true},
			setupMock: func(m *catalog.MockRepository) {
				m.EXPECT().CreateItem(gomock.Any(), gomock.Any()).Return(catalog.ErrAlreadyExists)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "ReadOnly",
			body:       `{"name":"Facial","kind":"service","unit_price":"50"}`,
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

func TestHandler_List_Filters(t *testing.T) {
	rec := serve(t, permission.CRUD{Read: true}, func(m *catalog.MockRepository) {
		m.EXPECT().ListItems(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, f catalog.ListFilter) ([]*catalog.Item, error) {
				require.NotNil(t, f.Kind)
				require.NotNil(t, f.Active)
				assert.Equal(t, catalog.KindPackage, *f.Kind)
				assert.False(t, *f.Active)
				assert.Equal(t, "gold", f.Query)
				return nil, nil
			})
	}, http.MethodGet, "/?q=gold&kind=packages&active=false", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandler_List_InvalidKind(t *testing.T) {
	rec := serve(t, permission.CRUD{Read: true}, nil, http.MethodGet, "/?kind=voucher", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
