package server

import (
	"html/template"
	"net/http"
	"time"

	"github.com/gorilla/csrf"
	"github.com/medcamp/portal/gate"
	"github.com/medcamp/portal/visitors"
	"github.com/rs/zerolog/log"
)

// DoctorConsolePageData contains data for the consultation-recording console
type DoctorConsolePageData struct {
	CampSlug    string
	DoctorName  string
	Visitor     *visitors.Visitor // Looked-up visitor, when a code was entered
	Code        string
	Error       string
	Saved       bool
	TokenExpiry time.Time
	CSRFField   template.HTML
}

// DoctorConsoleHandler displays the doctor console: look up a visitor by
// registration code (typed or pasted from a scanned slip) and record a
// consultation against them.
func (s *Server) DoctorConsoleHandler() http.HandlerFunc {
	tmpl := mustParseTemplate("doctor_console.html")

	return func(w http.ResponseWriter, r *http.Request) {
		campSlug := gate.ResolveSlug(r)
		snapshot := clientStore(r).Snapshot()

		data := DoctorConsolePageData{
			CampSlug:    campSlug,
			Code:        r.URL.Query().Get("code"),
			Saved:       r.URL.Query().Get("saved") == "1",
			TokenExpiry: snapshot.TokenExpiry,
			CSRFField:   csrf.TemplateField(r),
		}
		if snapshot.User != nil {
			data.DoctorName = snapshot.User.Name
		}

		if data.Code != "" {
			visitor, err := s.api.FindVisitorByCode(r.Context(), campSlug, data.Code)
			if err != nil {
				if s.redirectIfSessionExpired(w, r, err) {
					return
				}
				data.Error = "No visitor found for code " + data.Code
			} else {
				data.Visitor = &visitor
			}
		}

		s.renderPage(w, tmpl, data)
	}
}

// RecordConsultationHandler saves a consultation and returns to the console
func (s *Server) RecordConsultationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		campSlug := gate.ResolveSlug(r)

		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		consultation := visitors.Consultation{
			VisitorID:    r.FormValue("visitorId"),
			Diagnosis:    r.FormValue("diagnosis"),
			Prescription: r.FormValue("prescription"),
			Notes:        r.FormValue("notes"),
		}
		if consultation.VisitorID == "" || consultation.Diagnosis == "" {
			http.Redirect(w, r, "/"+campSlug+"/doctor?error=missing-fields", http.StatusSeeOther)
			return
		}

		if _, err := s.api.RecordConsultation(r.Context(), campSlug, consultation); err != nil {
			if s.redirectIfSessionExpired(w, r, err) {
				return
			}
			log.Err(err).Str("campSlug", campSlug).Msg("Failed to record consultation")
			http.Redirect(w, r, "/"+campSlug+"/doctor?error=save-failed&code="+consultation.VisitorID, http.StatusSeeOther)
			return
		}

		http.Redirect(w, r, "/"+campSlug+"/doctor?saved=1", http.StatusSeeOther)
	}
}

// MyPatientsPageData contains data for the doctor's patient list
type MyPatientsPageData struct {
	CampSlug   string
	DoctorName string
	Patients   []visitors.Visitor
}

// MyPatientsHandler lists the visitors the authenticated doctor has seen
func (s *Server) MyPatientsHandler() http.HandlerFunc {
	tmpl := mustParseTemplate("my_patients.html")

	return func(w http.ResponseWriter, r *http.Request) {
		campSlug := gate.ResolveSlug(r)

		patients, err := s.api.MyPatients(r.Context(), campSlug)
		if err != nil {
			if s.redirectIfSessionExpired(w, r, err) {
				return
			}
			log.Err(err).Str("campSlug", campSlug).Msg("Failed to load patient list")
			http.Error(w, "Failed to load patient list", http.StatusBadGateway)
			return
		}

		data := MyPatientsPageData{
			CampSlug: campSlug,
			Patients: patients,
		}
		if snapshot := clientStore(r).Snapshot(); snapshot.User != nil {
			data.DoctorName = snapshot.User.Name
		}
		s.renderPage(w, tmpl, data)
	}
}
