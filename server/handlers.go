package server

import (
	"html/template"
	"net/http"

	"github.com/medcamp/portal/gate"
	errs "github.com/medcamp/portal/internal/errors"
	"github.com/rs/zerolog/log"
)

const contentTypeHTML = "text/html; charset=utf-8"

// RootRedirectHandler sends the bare domain to the admin entry point
func (s *Server) RootRedirectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, RouteAdminLogin, http.StatusSeeOther)
	}
}

// AdminRootRedirectHandler sends /admin to the dashboard
func (s *Server) AdminRootRedirectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, RouteAdminDashboard, http.StatusSeeOther)
	}
}

// NotFoundHandler renders the static not-found view for unmatched paths.
// This is a terminal, non-erroring outcome.
func (s *Server) NotFoundHandler() http.HandlerFunc {
	tmpl := mustParseTemplate("not_found.html")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentTypeHTML)
		w.WriteHeader(http.StatusNotFound)
		if err := tmpl.Execute(w, nil); err != nil {
			log.Err(err).Msg("Failed to render not-found template")
		}
	}
}

// redirectIfSessionExpired resolves a failed API call when the failure is a
// server-reported session expiry: the session store has already been cleared
// by the client adapter, so the only thing left is to send the browser to the
// right login entry point (tenant login when the URL carries a slug, admin
// login otherwise). Returns true when the response has been written.
func (s *Server) redirectIfSessionExpired(w http.ResponseWriter, r *http.Request, err error) bool {
	if !errs.Is(err, errs.ErrSessionExpired) {
		return false
	}
	http.Redirect(w, r, gate.LoginPath(gate.ResolveSlug(r)), http.StatusSeeOther)
	return true
}

func (s *Server) renderPage(w http.ResponseWriter, tmpl *template.Template, data any) {
	w.Header().Set("Content-Type", contentTypeHTML)
	if err := tmpl.Execute(w, data); err != nil {
		log.Err(err).Str("template", tmpl.Name()).Msg("Failed to render template")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}
