package server

import (
	"html/template"
	"net/http"
	"net/url"

	"github.com/gorilla/csrf"
	"github.com/medcamp/portal/api"
	"github.com/medcamp/portal/camps"
	"github.com/medcamp/portal/gate"
	"github.com/medcamp/portal/users"
	"github.com/medcamp/portal/visitors"
	"github.com/rs/zerolog/log"
)

// CampHeadPageData contains data for the camp-head analytics console
type CampHeadPageData struct {
	CampSlug string
	HeadName string
	Stats    camps.Stats
}

// CampHeadConsoleHandler displays the camp's analytics summary
func (s *Server) CampHeadConsoleHandler() http.HandlerFunc {
	tmpl := mustParseTemplate("camp_head.html")

	return func(w http.ResponseWriter, r *http.Request) {
		campSlug := gate.ResolveSlug(r)

		stats, err := s.api.CampStats(r.Context(), campSlug)
		if err != nil {
			if s.redirectIfSessionExpired(w, r, err) {
				return
			}
			log.Err(err).Str("campSlug", campSlug).Msg("Failed to load camp stats")
			http.Error(w, "Failed to load camp stats", http.StatusBadGateway)
			return
		}

		data := CampHeadPageData{
			CampSlug: campSlug,
			Stats:    stats,
		}
		if snapshot := clientStore(r).Snapshot(); snapshot.User != nil {
			data.HeadName = snapshot.User.Name
		}
		s.renderPage(w, tmpl, data)
	}
}

// DoctorRosterPageData contains data for the doctor roster page
type DoctorRosterPageData struct {
	CampSlug  string
	Doctors   []users.User
	Error     string
	Imported  *api.ImportResult // Set after a CSV bulk-import
	CSRFField template.HTML
}

// DoctorRosterHandler lists a camp's doctors with single-add and CSV import
// forms
func (s *Server) DoctorRosterHandler() http.HandlerFunc {
	tmpl := mustParseTemplate("doctors.html")

	return func(w http.ResponseWriter, r *http.Request) {
		campSlug := gate.ResolveSlug(r)

		doctors, err := s.api.ListDoctors(r.Context(), campSlug)
		if err != nil {
			if s.redirectIfSessionExpired(w, r, err) {
				return
			}
			log.Err(err).Str("campSlug", campSlug).Msg("Failed to load doctor roster")
			http.Error(w, "Failed to load doctor roster", http.StatusBadGateway)
			return
		}

		s.renderPage(w, tmpl, DoctorRosterPageData{
			CampSlug:  campSlug,
			Doctors:   doctors,
			Error:     r.URL.Query().Get("error"),
			CSRFField: csrf.TemplateField(r),
		})
	}
}

// AddDoctorHandler adds a single doctor to the roster. A missing password is
// replaced by a generated temporary one; a supplied password must pass the
// strength check.
func (s *Server) AddDoctorHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		campSlug := gate.ResolveSlug(r)
		rosterPath := "/" + campSlug + "/camp-head/doctors"

		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		doctor := users.NewDoctor{
			Name:     r.FormValue("name"),
			Email:    r.FormValue("email"),
			Password: r.FormValue("password"),
		}
		if doctor.Name == "" || doctor.Email == "" {
			http.Redirect(w, r, rosterPath+"?error=Name+and+email+are+required", http.StatusSeeOther)
			return
		}
		if doctor.Password == "" {
			password, err := users.GenerateTempPassword()
			if err != nil {
				http.Error(w, "Failed to generate password", http.StatusInternalServerError)
				return
			}
			doctor.Password = password
		} else if err := users.ValidatePasswordStrength(doctor.Password); err != nil {
			http.Redirect(w, r, rosterPath+"?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
			return
		}

		if _, err := s.api.CreateDoctor(r.Context(), campSlug, doctor); err != nil {
			if s.redirectIfSessionExpired(w, r, err) {
				return
			}
			log.Err(err).Str("campSlug", campSlug).Msg("Failed to add doctor")
			http.Redirect(w, r, rosterPath+"?error=Failed+to+add+doctor", http.StatusSeeOther)
			return
		}

		http.Redirect(w, r, rosterPath, http.StatusSeeOther)
	}
}

// ImportDoctorsHandler bulk-imports a CSV doctor roster
func (s *Server) ImportDoctorsHandler() http.HandlerFunc {
	tmpl := mustParseTemplate("doctors.html")

	return func(w http.ResponseWriter, r *http.Request) {
		campSlug := gate.ResolveSlug(r)

		renderError := func(message string) {
			doctors, _ := s.api.ListDoctors(r.Context(), campSlug)
			s.renderPage(w, tmpl, DoctorRosterPageData{
				CampSlug:  campSlug,
				Doctors:   doctors,
				Error:     message,
				CSRFField: csrf.TemplateField(r),
			})
		}

		if err := r.ParseMultipartForm(1 << 20); err != nil {
			renderError("Upload a CSV file of up to 1MB")
			return
		}
		file, _, err := r.FormFile("roster")
		if err != nil {
			renderError("Choose a CSV file to import")
			return
		}
		defer file.Close()

		roster, err := users.ParseDoctorRoster(file)
		if err != nil {
			renderError(err.Error())
			return
		}

		result, err := s.api.ImportDoctors(r.Context(), campSlug, roster)
		if err != nil {
			if s.redirectIfSessionExpired(w, r, err) {
				return
			}
			log.Err(err).Str("campSlug", campSlug).Msg("Doctor import failed")
			renderError("Import failed, no doctors were added")
			return
		}

		doctors, err := s.api.ListDoctors(r.Context(), campSlug)
		if err != nil && s.redirectIfSessionExpired(w, r, err) {
			return
		}

		s.renderPage(w, tmpl, DoctorRosterPageData{
			CampSlug:  campSlug,
			Doctors:   doctors,
			Imported:  &result,
			CSRFField: csrf.TemplateField(r),
		})
	}
}

// VisitorRosterPageData contains data for the visitor roster, shared by camp
// heads and doctors
type VisitorRosterPageData struct {
	CampSlug string
	Visitors []visitors.Visitor
}

// VisitorRosterHandler lists every visitor registered at the camp
func (s *Server) VisitorRosterHandler() http.HandlerFunc {
	tmpl := mustParseTemplate("visitors.html")

	return func(w http.ResponseWriter, r *http.Request) {
		campSlug := gate.ResolveSlug(r)

		list, err := s.api.ListVisitors(r.Context(), campSlug)
		if err != nil {
			if s.redirectIfSessionExpired(w, r, err) {
				return
			}
			log.Err(err).Str("campSlug", campSlug).Msg("Failed to load visitor roster")
			http.Error(w, "Failed to load visitor roster", http.StatusBadGateway)
			return
		}

		s.renderPage(w, tmpl, VisitorRosterPageData{
			CampSlug: campSlug,
			Visitors: list,
		})
	}
}
