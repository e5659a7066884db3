// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"net/http"

	"axisconv/internal/app"
	"axisconv/internal/domain"
)

// Options tunes how the Server authenticates requests.
type Options struct {
	// OIDC enables single sign-on when non-nil.
	OIDC *OIDCConfig
	// TrustForwardAuth accepts the Remote-User header from a reverse proxy.
	TrustForwardAuth bool
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	axes             *app.AxisService
	authSvc          *app.AuthService
	oidcConfig       *OIDCConfig
	trustForwardAuth bool

	// fixedUser replaces authentication when set.
	fixedUser *domain.User
}

// New creates a Server wired to the given application services.
func New(axes *app.AxisService, authSvc *app.AuthService, opts Options) *Server {
	return &Server{
		axes:             axes,
		authSvc:          authSvc,
		oidcConfig:       opts.OIDC,
		trustForwardAuth: opts.TrustForwardAuth,
	}
}

// WithoutAuth disables authentication and attributes every request to user.
func (s *Server) WithoutAuth(user *domain.User) *Server {
	s.fixedUser = user
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	api.HandleFunc("/presets", s.handlePresets)

	api.Handle("/axes", s.authMiddleware(http.HandlerFunc(s.handleAxes)))
	api.Handle("/axes/{id}", s.authMiddleware(http.HandlerFunc(s.handleAxis)))
	api.Handle("/axes/{id}/convert", s.authMiddleware(http.HandlerFunc(s.handleAxisConvert)))
	api.Handle("/convert", s.authMiddleware(http.HandlerFunc(s.handleConvert)))

	api.HandleFunc("/auth/config", s.handleConfig)
	api.HandleFunc("/auth/login", s.handleLogin)
	api.HandleFunc("/auth/logout", s.handleLogout)
	api.HandleFunc("/auth/setup", s.handleSetupUser)
	api.HandleFunc("/auth/sso/login", s.handleSSOLogin)
	api.HandleFunc("/auth/sso/callback", s.handleSSOCallback)

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))

	return s.loggingMiddleware(withNoCache(root))
}
