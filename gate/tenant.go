package gate

import "net/http"

// AdminLoginPath is the fixed login entry point for tenant-less sessions
const AdminLoginPath = "/admin/login"

// ResolveSlug extracts the camp slug from a tenant-scoped route, verbatim:
// slugs are opaque, case-sensitive identifiers matching exactly what the
// server issued at camp-creation time. Routes without a {campSlug} segment
// (admin routes, root) yield "", the explicit no-tenant value.
func ResolveSlug(r *http.Request) string {
	return r.PathValue("campSlug")
}

// LoginPath returns the login entry point for a tenant, falling back to the
// admin login when no slug is present.
func LoginPath(campSlug string) string {
	if campSlug == "" {
		return AdminLoginPath
	}
	return "/" + campSlug + "/login"
}
