package server

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET "+RouteRoot, s.RootRedirectHandler())

	// ADMIN LOGIN
	s.RegisterRouteHandler("GET "+RouteAdminLogin, ChainMiddleware(s.AdminLoginPageHandler(), s.HTMLMiddleWare(s.WithClientSession)...))
	s.RegisterRouteHandler("POST "+RouteAdminLogin, ChainMiddleware(s.AdminLoginSubmitHandler(), s.HTMLMiddleWare(s.WithClientSession)...))
	s.RegisterRouteHandler("GET "+RouteAdminLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare(s.WithClientSession)...))

	// ADMIN CONSOLE (requires an admin session)
	s.RegisterRouteFunc("GET "+RouteAdmin, s.AdminRootRedirectHandler())
	s.RegisterRouteHandler("GET "+RouteAdminDashboard, ChainMiddleware(s.AdminDashboardHandler(), s.HTMLMiddleWare(s.RequireAuth(true))...))
	s.RegisterRouteHandler("GET "+RouteAdminCampNew, ChainMiddleware(s.CampFormHandler(), s.HTMLMiddleWare(s.RequireAuth(true))...))
	s.RegisterRouteHandler("POST "+RouteAdminCamps, ChainMiddleware(s.CampCreateHandler(), s.HTMLMiddleWare(s.RequireAuth(true))...))
	s.RegisterRouteHandler("GET "+RouteAdminCampEdit, ChainMiddleware(s.CampFormHandler(), s.HTMLMiddleWare(s.RequireAuth(true))...))
	s.RegisterRouteHandler("POST "+RouteAdminCampEdit, ChainMiddleware(s.CampUpdateHandler(), s.HTMLMiddleWare(s.RequireAuth(true))...))
	s.RegisterRouteHandler("GET "+RouteAdminCampManage, ChainMiddleware(s.CampManageHandler(), s.HTMLMiddleWare(s.RequireAuth(true))...))

	// PUBLIC REGISTRATION & STAFF LOGIN (tenant-scoped, no auth)
	s.RegisterRouteHandler("GET "+RouteCampPublic, ChainMiddleware(s.RegistrationPageHandler(), s.HTMLMiddleWare(s.WithClientSession)...))
	s.RegisterRouteHandler("POST "+RouteCampPublic, ChainMiddleware(s.RegistrationSubmitHandler(), s.HTMLMiddleWare(s.WithClientSession)...))
	s.RegisterRouteHandler("GET "+RouteCampLogin, ChainMiddleware(s.CampLoginPageHandler(), s.HTMLMiddleWare(s.WithClientSession)...))
	s.RegisterRouteHandler("POST "+RouteCampLogin, ChainMiddleware(s.CampLoginSubmitHandler(), s.HTMLMiddleWare(s.WithClientSession)...))
	s.RegisterRouteHandler("GET "+RouteCampLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare(s.WithClientSession)...))

	// DOCTOR CONSOLE (requires a session bound to the camp)
	s.RegisterRouteHandler("GET "+RouteDoctorConsole, ChainMiddleware(s.DoctorConsoleHandler(), s.HTMLMiddleWare(s.RequireAuth(false))...))
	s.RegisterRouteHandler("GET "+RouteDoctorMyPatients, ChainMiddleware(s.MyPatientsHandler(), s.HTMLMiddleWare(s.RequireAuth(false))...))
	s.RegisterRouteHandler("POST "+RouteDoctorConsultations, ChainMiddleware(s.RecordConsultationHandler(), s.HTMLMiddleWare(s.RequireAuth(false))...))

	// CAMP-HEAD CONSOLE (requires a session bound to the camp)
	s.RegisterRouteHandler("GET "+RouteCampHeadConsole, ChainMiddleware(s.CampHeadConsoleHandler(), s.HTMLMiddleWare(s.RequireAuth(false))...))
	s.RegisterRouteHandler("GET "+RouteCampHeadDoctors, ChainMiddleware(s.DoctorRosterHandler(), s.HTMLMiddleWare(s.RequireAuth(false))...))
	s.RegisterRouteHandler("POST "+RouteCampHeadDoctors, ChainMiddleware(s.AddDoctorHandler(), s.HTMLMiddleWare(s.RequireAuth(false))...))
	s.RegisterRouteHandler("POST "+RouteCampHeadDoctorImport, ChainMiddleware(s.ImportDoctorsHandler(), s.HTMLMiddleWare(s.RequireAuth(false))...))
	s.RegisterRouteHandler("GET "+RouteCampHeadVisitors, ChainMiddleware(s.VisitorRosterHandler(), s.HTMLMiddleWare(s.RequireAuth(false))...))

	// Anything else renders the static not-found view
	s.RegisterRouteFunc(RouteCatchAll, s.NotFoundHandler())
}
