package server

import (
	"html/template"
	"net/http"
	"time"

	"github.com/gorilla/csrf"
	"github.com/medcamp/portal/camps"
	"github.com/rs/zerolog/log"
)

const campDateLayout = "2006-01-02"

// AdminDashboardPageData contains data for the admin dashboard
type AdminDashboardPageData struct {
	AdminName string
	Camps     []camps.Camp
}

// AdminDashboardHandler lists every camp with links to edit and manage them
func (s *Server) AdminDashboardHandler() http.HandlerFunc {
	tmpl := mustParseTemplate("admin_dashboard.html")

	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.api.ListCamps(r.Context())
		if err != nil {
			if s.redirectIfSessionExpired(w, r, err) {
				return
			}
			log.Err(err).Msg("Failed to load camp list")
			http.Error(w, "Failed to load camp list", http.StatusBadGateway)
			return
		}

		data := AdminDashboardPageData{Camps: list}
		if snapshot := clientStore(r).Snapshot(); snapshot.User != nil {
			data.AdminName = snapshot.User.Name
		}
		s.renderPage(w, tmpl, data)
	}
}

// CampFormPageData contains data for the camp create/edit form
type CampFormPageData struct {
	Camp      camps.Camp
	IsEdit    bool
	Error     string
	CSRFField template.HTML
}

// CampFormHandler renders the camp form, blank for creation or pre-filled
// for editing
func (s *Server) CampFormHandler() http.HandlerFunc {
	tmpl := mustParseTemplate("camp_form.html")

	return func(w http.ResponseWriter, r *http.Request) {
		data := CampFormPageData{
			Error:     r.URL.Query().Get("error"),
			CSRFField: csrf.TemplateField(r),
		}

		if campID := r.PathValue("campID"); campID != "" {
			camp, err := s.api.GetCamp(r.Context(), campID)
			if err != nil {
				if s.redirectIfSessionExpired(w, r, err) {
					return
				}
				log.Err(err).Str("campID", campID).Msg("Failed to load camp")
				http.Error(w, "Failed to load camp", http.StatusBadGateway)
				return
			}
			data.Camp = camp
			data.IsEdit = true
		}

		s.renderPage(w, tmpl, data)
	}
}

// CampCreateHandler provisions a new camp; the API issues its slug
func (s *Server) CampCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		camp, ok := s.campFromForm(w, r, RouteAdminCampNew)
		if !ok {
			return
		}

		created, err := s.api.CreateCamp(r.Context(), camp)
		if err != nil {
			if s.redirectIfSessionExpired(w, r, err) {
				return
			}
			log.Err(err).Msg("Failed to create camp")
			http.Redirect(w, r, RouteAdminCampNew+"?error=Failed+to+create+camp", http.StatusSeeOther)
			return
		}

		http.Redirect(w, r, "/admin/camps/"+created.ID+"/manage", http.StatusSeeOther)
	}
}

// CampUpdateHandler saves edits to an existing camp
func (s *Server) CampUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		campID := r.PathValue("campID")
		editPath := "/admin/camps/" + campID + "/edit"

		camp, ok := s.campFromForm(w, r, editPath)
		if !ok {
			return
		}

		if _, err := s.api.UpdateCamp(r.Context(), campID, camp); err != nil {
			if s.redirectIfSessionExpired(w, r, err) {
				return
			}
			log.Err(err).Str("campID", campID).Msg("Failed to update camp")
			http.Redirect(w, r, editPath+"?error=Failed+to+save+changes", http.StatusSeeOther)
			return
		}

		http.Redirect(w, r, "/admin/camps/"+campID+"/manage", http.StatusSeeOther)
	}
}

// CampManagePageData contains data for the per-camp management view
type CampManagePageData struct {
	Camp  camps.Camp
	Stats camps.Stats
}

// CampManageHandler shows one camp's details, staff entry points, and stats
func (s *Server) CampManageHandler() http.HandlerFunc {
	tmpl := mustParseTemplate("camp_manage.html")

	return func(w http.ResponseWriter, r *http.Request) {
		campID := r.PathValue("campID")

		camp, err := s.api.GetCamp(r.Context(), campID)
		if err != nil {
			if s.redirectIfSessionExpired(w, r, err) {
				return
			}
			log.Err(err).Str("campID", campID).Msg("Failed to load camp")
			http.Error(w, "Failed to load camp", http.StatusBadGateway)
			return
		}

		// Stats are best-effort on this page; the camp details still render
		stats, err := s.api.CampStats(r.Context(), camp.Slug)
		if err != nil && s.redirectIfSessionExpired(w, r, err) {
			return
		}

		s.renderPage(w, tmpl, CampManagePageData{Camp: camp, Stats: stats})
	}
}

func (s *Server) campFromForm(w http.ResponseWriter, r *http.Request, errorPath string) (camps.Camp, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return camps.Camp{}, false
	}

	camp := camps.Camp{
		Name:     r.FormValue("name"),
		Location: r.FormValue("location"),
		Active:   r.FormValue("active") == "on",
	}
	if camp.Name == "" {
		http.Redirect(w, r, errorPath+"?error=Camp+name+is+required", http.StatusSeeOther)
		return camps.Camp{}, false
	}

	if start := r.FormValue("startDate"); start != "" {
		parsed, err := time.Parse(campDateLayout, start)
		if err != nil {
			http.Redirect(w, r, errorPath+"?error=Invalid+start+date", http.StatusSeeOther)
			return camps.Camp{}, false
		}
		camp.StartDate = parsed
	}
	if end := r.FormValue("endDate"); end != "" {
		parsed, err := time.Parse(campDateLayout, end)
		if err != nil {
			http.Redirect(w, r, errorPath+"?error=Invalid+end+date", http.StatusSeeOther)
			return camps.Camp{}, false
		}
		camp.EndDate = parsed
	}

	return camp, true
}
