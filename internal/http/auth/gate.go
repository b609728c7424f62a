package auth

import (
	"context"
	"net/http"

	"github.com/MrJamesThe3rd/clinicdesk/internal/permission"
)

//go:generate mockgen -source=gate.go -destination=checker_mock.go -package=auth
type Checker interface {
	Check(ctx context.Context, token, moduleKey string, match permission.Matcher) permission.CRUD
}

// Gate enforces resolved CRUD permissions on routes.
type Gate struct {
	checker Checker
}

func NewGate(checker Checker) *Gate {
	return &Gate{checker: checker}
}

// Require lets a request through only when the caller may perform action on
// the module's submodule called sub. An empty sub checks module grants only.
func (g *Gate) Require(moduleKey, sub string, action permission.Action) func(http.Handler) http.Handler {
	match := permission.MatchNone
	if sub != "" {
		match = permission.MatchName(sub)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := FromContext(r.Context())
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			if !g.checker.Check(r.Context(), id.Token, moduleKey, match).Allows(action) {
				http.Error(w, "access denied", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
