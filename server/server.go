package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/csrf"
	"github.com/gorilla/securecookie"
	"github.com/medcamp/portal/api"
	"github.com/medcamp/portal/internal/config"
	"github.com/medcamp/portal/session"
)

type Server struct {
	env      string // Environment (e.g., "DEV", "production")
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	api      *api.Client
	sessions *session.Manager
	cookies  *securecookie.SecureCookie
}

func New(config config.Config, apiClient *api.Client, sessions *session.Manager) (*Server, error) {
	if apiClient == nil {
		return nil, fmt.Errorf("[Server New] api client is required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("[Server New] session manager is required")
	}

	s := &Server{
		mux:      http.NewServeMux(),
		config:   config,
		api:      apiClient,
		sessions: sessions,
		cookies:  securecookie.New(config.GetSessionHashKey(), config.GetSessionBlockKey()),
	}
	s.env = config.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Handler wraps the server with CSRF protection for form posts. Use this, not
// the Server directly, as the http.Server handler.
func (s *Server) Handler() http.Handler {
	protect := csrf.Protect(s.config.GetCSRFKey(),
		csrf.Secure(s.env != "DEV"),
		csrf.Path("/"),
	)
	return protect(s)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}

func logError(method, path, error string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	errorString := Red + error + ResetColor
	log.Printf("[%-19s] %s %s\n", displayMethod, path, errorString)
}
