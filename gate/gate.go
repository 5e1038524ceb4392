// Package gate decides, per navigation, whether the current session may
// render a requested view and where to redirect otherwise. It is a pure
// function of (session snapshot, route request): it holds no state of its
// own and is re-evaluated on every request. The session store must be
// initialized before the gate is consulted; the server middleware guarantees
// that ordering.
package gate

import "github.com/medcamp/portal/session"

// Request is the per-navigation tuple the gate decides on. CampSlug is ""
// when the route has no tenant segment.
type Request struct {
	Path          string
	CampSlug      string
	RequiresAuth  bool
	RequiresAdmin bool
}

// Action is the rendering outcome of a route decision
type Action int

const (
	// ActionAllow renders the requested view
	ActionAllow Action = iota
	// ActionRedirect sends the browser to Decision.Location instead
	ActionRedirect
)

// Decision is the gate's verdict for one navigation
type Decision struct {
	Action   Action
	Location string
}

func allow() Decision {
	return Decision{Action: ActionAllow}
}

func redirect(location string) Decision {
	return Decision{Action: ActionRedirect, Location: location}
}

// Decide computes the rendering outcome for a route request.
//
// Admin routes treat any non-admin session — anonymous or tenant staff —
// identically: redirect to the admin login, no partial access. Protected
// tenant routes require an authenticated session bound to the requested
// camp; an unauthenticated visit redirects to that camp's login page (or the
// admin login when no slug is present), and a session bound to a different
// camp is redirected the same way without being cleared — the user may still
// navigate to routes appropriate for their actual camp.
func Decide(sess session.Session, req Request) Decision {
	if req.RequiresAdmin {
		if !sess.IsAdmin() {
			return redirect(AdminLoginPath)
		}
		return allow()
	}

	if !req.RequiresAuth {
		return allow()
	}

	if !sess.IsAuthenticated() {
		return redirect(LoginPath(req.CampSlug))
	}

	// Tenant-scoped route: the session must be bound to the requested camp.
	// Admin sessions have no binding and are not camp staff.
	if req.CampSlug != "" && sess.BoundTenant != req.CampSlug {
		return redirect(LoginPath(req.CampSlug))
	}

	return allow()
}
