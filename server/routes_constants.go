package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Root
	RouteRoot     = "/{$}"
	RouteCatchAll = "/"

	// Admin Routes
	RouteAdmin           = "/admin"
	RouteAdminLogin      = "/admin/login"
	RouteAdminLogout     = "/admin/logout"
	RouteAdminDashboard  = "/admin/dashboard"
	RouteAdminCamps      = "/admin/camps"
	RouteAdminCampNew    = "/admin/camps/new"
	RouteAdminCampEdit   = "/admin/camps/{campID}/edit"
	RouteAdminCampManage = "/admin/camps/{campID}/manage"

	// Public Camp Routes
	RouteCampPublic = "/{campSlug}"
	RouteCampLogin  = "/{campSlug}/login"
	RouteCampLogout = "/{campSlug}/logout"

	// Doctor Routes
	RouteDoctorConsole       = "/{campSlug}/doctor"
	RouteDoctorMyPatients    = "/{campSlug}/doctor/my-patients"
	RouteDoctorConsultations = "/{campSlug}/doctor/consultations"

	// Camp-Head Routes
	RouteCampHeadConsole      = "/{campSlug}/camp-head"
	RouteCampHeadDoctors      = "/{campSlug}/camp-head/doctors"
	RouteCampHeadDoctorImport = "/{campSlug}/camp-head/doctors/import"
	RouteCampHeadVisitors     = "/{campSlug}/camp-head/visitors"
)
