package eodnote_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/clinicdesk/internal/eodnote"
	"github.com/MrJamesThe3rd/clinicdesk/internal/http/auth"
	httpeodnote "github.com/MrJamesThe3rd/clinicdesk/internal/http/eodnote"
	"github.com/MrJamesThe3rd/clinicdesk/internal/permission"
)

func TestHandler_Create(t *testing.T) {
	type testCase struct {
		name       string
		body       string
		grants     permission.CRUD
		setupMock  func(m *eodnote.MockRepository)
		wantStatus int
	}

	tests := []testCase{
		{
			name:   "AuthorFromIdentity",
			body:   `{"date":"2026-03-02","body":"Closed the till","tasks_done":true}`,
			grants: permission.CRUD{Create: true},
			setupMock: func(m *eodnote.MockRepository) {
				m.EXPECT().CreateNote(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, n *eodnote.Note) error {
						assert.Equal(t, "Maria", n.Author)
						assert.Equal(t, "2026-03-02", n.Date.Format("2006-01-02"))
						return nil
					})
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "EmptyBody",
			body:       `{"body":"  "}`,
			grants:     permission.CRUD{Create: true},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "BadDate",
			body:       `{"date":"02/03/2026","body":"x"}`,
			grants:     permission.CRUD{Create: true},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "DeleteOnlyGrant",
			body:       `{"body":"x"}`,
			grants:     permission.CRUD{Delete: true},
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := eodnote.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			checker := auth.NewMockChecker(ctrl)
			checker.EXPECT().Check(gomock.Any(), "tok", "staff_management", gomock.Any()).Return(tt.grants)

			r := chi.NewRouter()
			httpeodnote.NewHandler(eodnote.NewService(repo), auth.NewGate(checker)).Routes(r)

			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			req = req.WithContext(auth.WithIdentity(req.Context(), auth.Identity{Subject: "u1", Name: "Maria", Token: "tok"}))
			rec := httptest.NewRecorder()

			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
