package server

import (
	"html/template"
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/medcamp/portal/gate"
	errs "github.com/medcamp/portal/internal/errors"
	"github.com/medcamp/portal/users"
	"github.com/rs/zerolog/log"
)

// LoginPageData contains data for rendering the staff and admin login pages
type LoginPageData struct {
	CampSlug  string
	CampName  string
	Error     string
	Email     string // Preserve email on error
	CSRFField template.HTML
}

// CampLoginPageHandler displays the staff login page for one camp
func (s *Server) CampLoginPageHandler() http.HandlerFunc {
	tmpl := mustParseTemplate("login.html")

	return func(w http.ResponseWriter, r *http.Request) {
		campSlug := gate.ResolveSlug(r)
		s.renderPage(w, tmpl, LoginPageData{
			CampSlug:  campSlug,
			CampName:  s.campDisplayName(r, campSlug),
			Error:     r.URL.Query().Get("error"),
			Email:     r.URL.Query().Get("email"),
			CSRFField: csrf.TemplateField(r),
		})
	}
}

// CampLoginSubmitHandler processes the staff login form. A failed login is
// rendered inline on the login page; it never clears the session or triggers
// the global expiry redirect.
func (s *Server) CampLoginSubmitHandler() http.HandlerFunc {
	tmpl := mustParseTemplate("login.html")

	return func(w http.ResponseWriter, r *http.Request) {
		campSlug := gate.ResolveSlug(r)

		renderError := func(message, email string) {
			s.renderPage(w, tmpl, LoginPageData{
				CampSlug:  campSlug,
				CampName:  s.campDisplayName(r, campSlug),
				Error:     message,
				Email:     email,
				CSRFField: csrf.TemplateField(r),
			})
		}

		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		email := r.FormValue("email")
		password := r.FormValue("password")
		if email == "" || password == "" {
			renderError("Email and password are required", email)
			return
		}

		result, err := s.api.Login(r.Context(), email, password, campSlug)
		if err != nil {
			if errs.Is(err, errs.ErrInvalidCredentials) {
				renderError("Invalid email or password", email)
				return
			}
			log.Err(err).Str("campSlug", campSlug).Msg("Staff login failed")
			renderError("Login is unavailable right now, try again shortly", email)
			return
		}

		if !result.User.IsCampStaff() {
			renderError("This account is not camp staff, use the admin login", email)
			return
		}

		// One unified session-mutation entry point: the store binds the
		// token to this camp's slug for tenant-scoped roles.
		clientStore(r).SetAuth(result.User, result.Token, campSlug)

		if result.User.Role == users.RoleCampHead {
			http.Redirect(w, r, "/"+campSlug+"/camp-head", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/"+campSlug+"/doctor", http.StatusSeeOther)
	}
}

// AdminLoginPageHandler displays the admin login page
func (s *Server) AdminLoginPageHandler() http.HandlerFunc {
	tmpl := mustParseTemplate("admin_login.html")

	return func(w http.ResponseWriter, r *http.Request) {
		s.renderPage(w, tmpl, LoginPageData{
			Error:     r.URL.Query().Get("error"),
			Email:     r.URL.Query().Get("email"),
			CSRFField: csrf.TemplateField(r),
		})
	}
}

// AdminLoginSubmitHandler processes the admin login form
func (s *Server) AdminLoginSubmitHandler() http.HandlerFunc {
	tmpl := mustParseTemplate("admin_login.html")

	return func(w http.ResponseWriter, r *http.Request) {
		renderError := func(message, email string) {
			s.renderPage(w, tmpl, LoginPageData{
				Error:     message,
				Email:     email,
				CSRFField: csrf.TemplateField(r),
			})
		}

		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		email := r.FormValue("email")
		password := r.FormValue("password")
		if email == "" || password == "" {
			renderError("Email and password are required", email)
			return
		}

		// Admin login omits the camp slug
		result, err := s.api.Login(r.Context(), email, password, "")
		if err != nil {
			if errs.Is(err, errs.ErrInvalidCredentials) {
				renderError("Invalid email or password", email)
				return
			}
			log.Err(err).Msg("Admin login failed")
			renderError("Login is unavailable right now, try again shortly", email)
			return
		}

		if !result.User.IsAdmin() {
			renderError("This account is not an administrator", email)
			return
		}

		// Admin sessions carry no tenant binding
		clientStore(r).SetAuth(result.User, result.Token, "")
		http.Redirect(w, r, RouteAdminDashboard, http.StatusSeeOther)
	}
}

// LogoutHandler clears the session and returns to the matching login entry
// point (tenant login when the URL carries a slug, admin login otherwise)
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store := clientStore(r); store != nil {
			store.Logout()
		}
		http.Redirect(w, r, gate.LoginPath(gate.ResolveSlug(r)), http.StatusSeeOther)
	}
}

// campDisplayName fetches the camp's name for page headers, falling back to
// the slug when the lookup fails — the login page must render either way.
func (s *Server) campDisplayName(r *http.Request, campSlug string) string {
	camp, err := s.api.GetCampBySlug(r.Context(), campSlug)
	if err != nil || camp.Name == "" {
		return campSlug
	}
	return camp.Name
}
