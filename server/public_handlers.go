package server

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/gorilla/csrf"
	"github.com/medcamp/portal/api"
	"github.com/medcamp/portal/gate"
	errs "github.com/medcamp/portal/internal/errors"
	"github.com/medcamp/portal/visitors"
	"github.com/rs/zerolog/log"
)

// RegistrationPageData contains data for the public self-registration page
type RegistrationPageData struct {
	CampSlug  string
	CampName  string
	Error     string
	Visitor   *visitors.Visitor // Set after a successful registration
	Form      visitors.Registration
	CSRFField template.HTML
}

// RegistrationPageHandler displays the public visitor registration form for
// one camp. Unknown slugs render the not-found view.
func (s *Server) RegistrationPageHandler() http.HandlerFunc {
	tmpl := mustParseTemplate("register.html")
	notFound := s.NotFoundHandler()

	return func(w http.ResponseWriter, r *http.Request) {
		campSlug := gate.ResolveSlug(r)

		camp, err := s.api.GetCampBySlug(r.Context(), campSlug)
		if err != nil {
			var apiErr *api.Error
			if errs.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
				notFound(w, r)
				return
			}
			log.Err(err).Str("campSlug", campSlug).Msg("Failed to load camp for registration page")
			http.Error(w, "Registration is unavailable right now", http.StatusBadGateway)
			return
		}

		s.renderPage(w, tmpl, RegistrationPageData{
			CampSlug:  campSlug,
			CampName:  camp.Name,
			CSRFField: csrf.TemplateField(r),
		})
	}
}

// RegistrationSubmitHandler processes the public registration form and shows
// the issued registration code on success
func (s *Server) RegistrationSubmitHandler() http.HandlerFunc {
	tmpl := mustParseTemplate("register.html")

	return func(w http.ResponseWriter, r *http.Request) {
		campSlug := gate.ResolveSlug(r)

		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		age, _ := strconv.Atoi(r.FormValue("age"))
		form := visitors.Registration{
			Name:      r.FormValue("name"),
			Age:       age,
			Gender:    r.FormValue("gender"),
			Phone:     r.FormValue("phone"),
			Complaint: r.FormValue("complaint"),
		}

		renderError := func(message string) {
			s.renderPage(w, tmpl, RegistrationPageData{
				CampSlug:  campSlug,
				CampName:  s.campDisplayName(r, campSlug),
				Error:     message,
				Form:      form,
				CSRFField: csrf.TemplateField(r),
			})
		}

		if form.Name == "" {
			renderError("Name is required")
			return
		}
		if form.Age <= 0 || form.Age > 120 {
			renderError("Enter a valid age")
			return
		}

		visitor, err := s.api.RegisterVisitor(r.Context(), campSlug, form)
		if err != nil {
			log.Err(err).Str("campSlug", campSlug).Msg("Visitor registration failed")
			renderError("Registration failed, please try again")
			return
		}

		s.renderPage(w, tmpl, RegistrationPageData{
			CampSlug:  campSlug,
			CampName:  s.campDisplayName(r, campSlug),
			Visitor:   &visitor,
			CSRFField: csrf.TemplateField(r),
		})
	}
}
