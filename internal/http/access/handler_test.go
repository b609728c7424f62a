package access_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/clinicdesk/internal/access"
	httpaccess "github.com/MrJamesThe3rd/clinicdesk/internal/http/access"
	"github.com/MrJamesThe3rd/clinicdesk/internal/http/auth"
	"github.com/MrJamesThe3rd/clinicdesk/internal/permission"
)

var records = []permission.Record{{
	Module:  "clinic_staff_management",
	Actions: permission.Grants{All: permission.Granted},
	SubModules: []permission.SubModule{
		{Name: "Add EOD Task", Path: "/staff/eod", Actions: permission.Grants{Delete: permission.Denied}},
	},
}}

func serve(t *testing.T, source access.Source, target string, withIdentity bool) *httptest.ResponseRecorder {
	t.Helper()

	r := chi.NewRouter()
	httpaccess.NewHandler(access.NewService(source)).Routes(r)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if withIdentity {
		req = req.WithContext(auth.WithIdentity(req.Context(), auth.Identity{Subject: "u1", Token: "tok"}))
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	return rec
}

func TestHandler_Check(t *testing.T) {
	type testCase struct {
		name       string
		target     string
		identity   bool
		setupMock  func(m *access.MockSource)
		wantStatus int
		wantBody   string
	}

	tests := []testCase{
		{
			name:     "ByName",
			target:   "/check?module=staff_management&sub=eod",
			identity: true,
			setupMock: func(m *access.MockSource) {
				m.EXPECT().FetchPermissions(gomock.Any(), "tok").Return(records, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"module":"staff_management","sub_module":"eod","create":true,"read":true,"update":true,"delete":false}`,
		},
		{
			name:     "ByPath",
			target:   "/check?module=staff_management&path=/staff/eod",
			identity: true,
			setupMock: func(m *access.MockSource) {
				m.EXPECT().FetchPermissions(gomock.Any(), "tok").Return(records, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"module":"staff_management","create":true,"read":true,"update":true,"delete":false}`,
		},
		{
			name:     "UpstreamDown",
			target:   "/check?module=staff_management",
			identity: true,
			setupMock: func(m *access.MockSource) {
				m.EXPECT().FetchPermissions(gomock.Any(), "tok").Return(nil, errors.New("timeout"))
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"module":"staff_management","create":false,"read":false,"update":false,"delete":false}`,
		},
		{
			name:       "MissingModule",
			target:     "/check",
			identity:   true,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Anonymous",
			target:     "/check?module=staff_management",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			source := access.NewMockSource(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(source)
			}

			rec := serve(t, source, tt.target, tt.identity)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestHandler_Sidebar(t *testing.T) {
	nav := []permission.NavItem{
		{ID: "1", Label: "Staff", ModuleKey: "staff_management", SubModules: []permission.NavSubModule{{Label: "Add EOD Task"}}},
		{ID: "2", Label: "Reports", ModuleKey: "reports"},
	}

	t.Run("Filtered", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		source := access.NewMockSource(ctrl)
		gomock.InOrder(
			source.EXPECT().FetchPermissions(gomock.Any(), "tok").Return(records, nil),
			source.EXPECT().FetchNavigation(gomock.Any(), "tok").Return(nav, nil),
		)

		rec := serve(t, source, "/sidebar", true)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"label":"Staff"`)
		assert.NotContains(t, rec.Body.String(), "Reports")
	})

	t.Run("NavigationDown", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		source := access.NewMockSource(ctrl)
		source.EXPECT().FetchPermissions(gomock.Any(), "tok").Return(records, nil)
		source.EXPECT().FetchNavigation(gomock.Any(), "tok").Return(nil, errors.New("502"))

		rec := serve(t, source, "/sidebar", true)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}
