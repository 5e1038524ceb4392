package server_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/medcamp/portal/api"
	"github.com/medcamp/portal/camps"
	"github.com/medcamp/portal/internal/config"
	"github.com/medcamp/portal/server"
	"github.com/medcamp/portal/session"
	"github.com/medcamp/portal/users"
	"github.com/medcamp/portal/visitors"
	"github.com/stretchr/testify/require"
)

const (
	testCampSlug = "spring-clinic"
	testToken    = "staff-token"
	adminToken   = "admin-token"
)

// fakeAPI is a stand-in camp API backend. Flip expireTokens to make every
// authenticated call answer 401, simulating a server-side token revocation.
type fakeAPI struct {
	mu           sync.Mutex
	expireTokens bool
}

func (f *fakeAPI) setExpired(expired bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.expireTokens = expired
}

func (f *fakeAPI) authorized(r *http.Request) bool {
	f.mu.Lock()
	expired := f.expireTokens
	f.mu.Unlock()
	if expired {
		return false
	}
	auth := r.Header.Get("Authorization")
	return auth == "Bearer "+testToken || auth == "Bearer "+adminToken
}

func (f *fakeAPI) handler(t *testing.T) http.Handler {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req api.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		var result api.LoginResult
		switch {
		case req.Email == "admin@medcamp.org" && req.Password == "admin-pass":
			result = api.LoginResult{Token: adminToken, User: users.User{
				ID: "u-admin", Email: req.Email, Name: "Asha", Role: users.RoleAdmin,
			}}
		case req.Email == "doctor@medcamp.org" && req.Password == "doctor-pass":
			result = api.LoginResult{Token: testToken, User: users.User{
				ID: "u-doc", Email: req.Email, Name: "Dr Rao", Role: users.RoleDoctor, CampID: "c1",
			}}
		case req.Email == "head@medcamp.org" && req.Password == "head-pass":
			result = api.LoginResult{Token: testToken, User: users.User{
				ID: "u-head", Email: req.Email, Name: "Meera", Role: users.RoleCampHead, CampID: "c1",
			}}
		default:
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
			return
		}
		json.NewEncoder(w).Encode(result)
	})

	mux.HandleFunc("GET /camps/{campSlug}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("campSlug") != testCampSlug {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "camp not found"})
			return
		}
		json.NewEncoder(w).Encode(camps.Camp{ID: "c1", Slug: testCampSlug, Name: "Spring Clinic", Active: true})
	})

	mux.HandleFunc("POST /camps/{campSlug}/visitors", func(w http.ResponseWriter, r *http.Request) {
		var reg visitors.Registration
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reg))
		json.NewEncoder(w).Encode(visitors.Visitor{
			ID: "v1", CampID: "c1", Code: "SC-0042", Name: reg.Name, Age: reg.Age,
		})
	})

	requireAuth := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if !f.authorized(r) {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			next(w, r)
		}
	}
	mux.HandleFunc("GET /camps/{campSlug}/stats", requireAuth(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(camps.Stats{TotalVisitors: 12, TotalConsultations: 7, DoctorsOnRoster: 3})
	}))
	mux.HandleFunc("GET /camps/{campSlug}/visitors", requireAuth(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]visitors.Visitor{})
	}))
	mux.HandleFunc("GET /camps/{campSlug}/doctors", requireAuth(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]users.User{{ID: "u-doc", Name: "Dr Rao", Email: "doctor@medcamp.org", Role: users.RoleDoctor}})
	}))
	mux.HandleFunc("GET /admin/camps", requireAuth(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]camps.Camp{{ID: "c1", Slug: testCampSlug, Name: "Spring Clinic", Active: true}})
	}))

	return mux
}

// browser drives the gateway like a browser would: it carries cookies between
// requests and never follows redirects on its own.
type browser struct {
	t       *testing.T
	srv     *server.Server
	cookies map[string]*http.Cookie
}

// sharedStorageFactory hands out one storage per namespace and remembers it,
// so a rebuilt session manager sees the same durable state a browser's
// localStorage would survive a page reload with.
func sharedStorageFactory() session.StorageFactory {
	var mu sync.Mutex
	storages := map[string]session.Storage{}
	return func(namespace string) session.Storage {
		mu.Lock()
		defer mu.Unlock()
		if storage, ok := storages[namespace]; ok {
			return storage
		}
		storage := session.NewMemoryStorage()
		storages[namespace] = storage
		return storage
	}
}

func newTestBrowser(t *testing.T, backend *fakeAPI) (*browser, session.StorageFactory) {
	t.Helper()
	apiServer := httptest.NewServer(backend.handler(t))
	t.Cleanup(apiServer.Close)

	factory := sharedStorageFactory()
	srv, err := server.New(config.New(), api.New(apiServer.URL), session.NewManager(factory))
	require.NoError(t, err)

	return &browser{t: t, srv: srv, cookies: map[string]*http.Cookie{}}, factory
}

func (b *browser) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	b.t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, cookie := range b.cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	b.srv.ServeHTTP(rec, req)

	for _, cookie := range rec.Result().Cookies() {
		b.cookies[cookie.Name] = cookie
	}
	return rec
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(http.MethodGet, path, nil)
}

func (b *browser) loginAs(email, password, loginPath string) *httptest.ResponseRecorder {
	b.t.Helper()
	return b.do(http.MethodPost, loginPath, url.Values{
		"email":    {email},
		"password": {password},
	})
}

func TestRootRedirectsToAdminEntry(t *testing.T) {
	b, _ := newTestBrowser(t, &fakeAPI{})

	resp := b.get("/")
	require.Equal(t, http.StatusSeeOther, resp.Code)
	require.Equal(t, server.RouteAdminLogin, resp.Header().Get("Location"))
}

func TestUnknownRouteRendersNotFound(t *testing.T) {
	b, _ := newTestBrowser(t, &fakeAPI{})

	resp := b.get("/spring-clinic/no-such-console")
	require.Equal(t, http.StatusNotFound, resp.Code)
	require.Contains(t, resp.Body.String(), "Page not found")
}

func TestAnonymousDeepLinkRedirectsToCampLogin(t *testing.T) {
	b, _ := newTestBrowser(t, &fakeAPI{})

	for _, path := range []string{
		"/spring-clinic/doctor",
		"/spring-clinic/doctor/my-patients",
		"/spring-clinic/camp-head",
		"/spring-clinic/camp-head/visitors",
	} {
		resp := b.get(path)
		require.Equal(t, http.StatusSeeOther, resp.Code, path)
		require.Equal(t, "/spring-clinic/login", resp.Header().Get("Location"), path)
	}
}

func TestAnonymousAdminRouteRedirectsToAdminLogin(t *testing.T) {
	b, _ := newTestBrowser(t, &fakeAPI{})

	resp := b.get("/admin/dashboard")
	require.Equal(t, http.StatusSeeOther, resp.Code)
	require.Equal(t, server.RouteAdminLogin, resp.Header().Get("Location"))
}

func TestDoctorLoginOpensDoctorConsole(t *testing.T) {
	b, _ := newTestBrowser(t, &fakeAPI{})

	resp := b.loginAs("doctor@medcamp.org", "doctor-pass", "/spring-clinic/login")
	require.Equal(t, http.StatusSeeOther, resp.Code)
	require.Equal(t, "/spring-clinic/doctor", resp.Header().Get("Location"))

	console := b.get("/spring-clinic/doctor")
	require.Equal(t, http.StatusOK, console.Code)
	require.Contains(t, console.Body.String(), "Doctor Console")
	require.Contains(t, console.Body.String(), "Dr Rao")
}

func TestCampHeadLoginOpensCampHeadConsole(t *testing.T) {
	b, _ := newTestBrowser(t, &fakeAPI{})

	resp := b.loginAs("head@medcamp.org", "head-pass", "/spring-clinic/login")
	require.Equal(t, http.StatusSeeOther, resp.Code)
	require.Equal(t, "/spring-clinic/camp-head", resp.Header().Get("Location"))

	console := b.get("/spring-clinic/camp-head")
	require.Equal(t, http.StatusOK, console.Code)
	require.Contains(t, console.Body.String(), "Camp Head Console")
}

func TestFailedLoginStaysOnLoginPage(t *testing.T) {
	b, _ := newTestBrowser(t, &fakeAPI{})

	resp := b.loginAs("doctor@medcamp.org", "wrong-pass", "/spring-clinic/login")
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), "doctor@medcamp.org") // email preserved

	// Still anonymous
	console := b.get("/spring-clinic/doctor")
	require.Equal(t, http.StatusSeeOther, console.Code)
}

func TestAdminCredentialsRejectedAtCampLogin(t *testing.T) {
	b, _ := newTestBrowser(t, &fakeAPI{})

	resp := b.loginAs("admin@medcamp.org", "admin-pass", "/spring-clinic/login")
	require.Equal(t, http.StatusOK, resp.Code)

	console := b.get("/spring-clinic/doctor")
	require.Equal(t, http.StatusSeeOther, console.Code)
}

func TestCrossTenantNavigationRedirectsWithoutLogout(t *testing.T) {
	b, _ := newTestBrowser(t, &fakeAPI{})
	b.loginAs("doctor@medcamp.org", "doctor-pass", "/spring-clinic/login")

	// Another camp's console redirects to that camp's login...
	other := b.get("/autumn-clinic/doctor")
	require.Equal(t, http.StatusSeeOther, other.Code)
	require.Equal(t, "/autumn-clinic/login", other.Header().Get("Location"))

	// ...while the bound camp's console still works
	own := b.get("/spring-clinic/doctor")
	require.Equal(t, http.StatusOK, own.Code)
}

func TestNonAdminRejectedFromAdminConsole(t *testing.T) {
	b, _ := newTestBrowser(t, &fakeAPI{})
	b.loginAs("doctor@medcamp.org", "doctor-pass", "/spring-clinic/login")

	resp := b.get("/admin/dashboard")
	require.Equal(t, http.StatusSeeOther, resp.Code)
	require.Equal(t, server.RouteAdminLogin, resp.Header().Get("Location"))
}

func TestAdminLoginOpensDashboard(t *testing.T) {
	b, _ := newTestBrowser(t, &fakeAPI{})

	resp := b.loginAs("admin@medcamp.org", "admin-pass", server.RouteAdminLogin)
	require.Equal(t, http.StatusSeeOther, resp.Code)
	require.Equal(t, server.RouteAdminDashboard, resp.Header().Get("Location"))

	dashboard := b.get(server.RouteAdminDashboard)
	require.Equal(t, http.StatusOK, dashboard.Code)
	require.Contains(t, dashboard.Body.String(), "Spring Clinic")
}

func TestExpiredTokenClearsSessionAndRedirects(t *testing.T) {
	backend := &fakeAPI{}
	b, _ := newTestBrowser(t, backend)
	b.loginAs("head@medcamp.org", "head-pass", "/spring-clinic/login")

	backend.setExpired(true)
	resp := b.get("/spring-clinic/camp-head")
	require.Equal(t, http.StatusSeeOther, resp.Code)
	require.Equal(t, "/spring-clinic/login", resp.Header().Get("Location"))

	// The session was cleared, so even with a valid backend the console
	// demands a fresh login.
	backend.setExpired(false)
	again := b.get("/spring-clinic/camp-head")
	require.Equal(t, http.StatusSeeOther, again.Code)
	require.Equal(t, "/spring-clinic/login", again.Header().Get("Location"))
}

func TestLogoutClearsSession(t *testing.T) {
	b, _ := newTestBrowser(t, &fakeAPI{})
	b.loginAs("doctor@medcamp.org", "doctor-pass", "/spring-clinic/login")

	resp := b.get("/spring-clinic/logout")
	require.Equal(t, http.StatusSeeOther, resp.Code)
	require.Equal(t, "/spring-clinic/login", resp.Header().Get("Location"))

	console := b.get("/spring-clinic/doctor")
	require.Equal(t, http.StatusSeeOther, console.Code)
}

func TestPublicRegistrationShowsCode(t *testing.T) {
	b, _ := newTestBrowser(t, &fakeAPI{})

	page := b.get("/spring-clinic")
	require.Equal(t, http.StatusOK, page.Code)
	require.Contains(t, page.Body.String(), "Spring Clinic")

	resp := b.do(http.MethodPost, "/spring-clinic", url.Values{
		"name": {"Ravi Kumar"},
		"age":  {"54"},
	})
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), "SC-0042")
}

func TestUnknownCampRendersNotFound(t *testing.T) {
	b, _ := newTestBrowser(t, &fakeAPI{})

	resp := b.get("/no-such-camp")
	require.Equal(t, http.StatusNotFound, resp.Code)
	require.Contains(t, resp.Body.String(), "Page not found")
}

func TestSessionSurvivesGatewayRestart(t *testing.T) {
	backend := &fakeAPI{}
	b, factory := newTestBrowser(t, backend)
	b.loginAs("doctor@medcamp.org", "doctor-pass", "/spring-clinic/login")

	// A new gateway over the same durable storage and cookie keys restores
	// the authenticated session from scratch.
	apiServer := httptest.NewServer(backend.handler(t))
	t.Cleanup(apiServer.Close)
	restarted, err := server.New(config.New(), api.New(apiServer.URL), session.NewManager(factory))
	require.NoError(t, err)
	b.srv = restarted

	console := b.get("/spring-clinic/doctor")
	require.Equal(t, http.StatusOK, console.Code)
	require.Contains(t, console.Body.String(), "Dr Rao")
}
