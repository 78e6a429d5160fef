package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/robolearn/sso-gateway/apikeys"
	"github.com/robolearn/sso-gateway/clients"
	"github.com/robolearn/sso-gateway/internal/config"
	"github.com/robolearn/sso-gateway/sessions"
	"github.com/robolearn/sso-gateway/trust"
)

type Server struct {
	env      string // Environment (e.g., "DEV", "PROD")
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	registry *clients.Registry
	trust    *trust.Validator
	sessions sessions.Store
	keys     apikeys.Repo
}

func New(config config.Config, registry *clients.Registry, sessionStore sessions.Store, keyRepo apikeys.Repo) (*Server, error) {
	if registry == nil {
		return nil, fmt.Errorf("[Server New] trusted client registry is required")
	}

	s := &Server{
		mux:      http.NewServeMux(),
		config:   config,
		registry: registry,
		trust:    trust.NewValidator(config.GetBaseURL(), registry, config.GetExtraOrigins()),
		sessions: sessionStore,
		keys:     keyRepo,
	}
	s.env = config.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
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

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
