package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/clinicdesk/internal/http/access"
	"github.com/MrJamesThe3rd/clinicdesk/internal/http/auth"
	"github.com/MrJamesThe3rd/clinicdesk/internal/http/billing"
	"github.com/MrJamesThe3rd/clinicdesk/internal/http/catalog"
	"github.com/MrJamesThe3rd/clinicdesk/internal/http/eodnote"
	"github.com/MrJamesThe3rd/clinicdesk/internal/http/export"
	"github.com/MrJamesThe3rd/clinicdesk/internal/http/importcsv"
	"github.com/MrJamesThe3rd/clinicdesk/internal/http/matching"
	"github.com/MrJamesThe3rd/clinicdesk/internal/http/membership"
	"github.com/MrJamesThe3rd/clinicdesk/internal/http/pettycash"
)

type Options struct {
	AllowedOrigins []string
	Timeout        time.Duration
}

type Handlers struct {
	Access     *access.Handler
	Billing    *billing.Handler
	Membership *membership.Handler
	PettyCash  *pettycash.Handler
	EODNotes   *eodnote.Handler
	Catalog    *catalog.Handler
	Import     *importcsv.Handler
	Matching   *matching.Handler
	Export     *export.Handler
}

func New(opts Options, authn *auth.Authenticator, h Handlers) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(middleware.Heartbeat("/healthz"))

	if opts.Timeout > 0 {
		router.Use(middleware.Timeout(opts.Timeout))
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(authn.Middleware)

		r.Route("/access", h.Access.Routes)

		r.Route("/billing", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Billing.Routes(r)
		})

		r.Route("/memberships", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Membership.Routes(r)
		})

		r.Route("/petty-cash", func(r chi.Router) {
			r.Route("/export", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Export.Routes(r)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.PettyCash.Routes(r)
			})
		})

		r.Route("/eod-notes", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.EODNotes.Routes(r)
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Route("/import", h.Import.Routes)

			r.Route("/aliases", h.Matching.Routes)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Catalog.Routes(r)
			})
		})
	})

	return router
}
