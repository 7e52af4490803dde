// Package web provides the JSON HTTP API for rentivo.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/evcraddock/rentivo/internal/app"
	"github.com/evcraddock/rentivo/internal/logging"
)

// maxBodyBytes caps JSON request bodies. Avatar and document uploads have
// their own, larger limit.
const maxBodyBytes = 1 << 20

// maxUploadBytes caps avatar and document uploads.
const maxUploadBytes = 10 << 20

// Options configures the server.
type Options struct {
	AllowedOrigins []string
	// RPS and Burst bound AI calls per client.
	RPS   float64
	Burst int
}

// Server is the API HTTP server.
type Server struct {
	app     *app.App
	router  *mux.Router
	handler http.Handler
	limiter *RateLimiter
}

// NewServer creates an API server over a.
func NewServer(a *app.App, opts Options) *Server {
	s := &Server{
		app:     a,
		router:  mux.NewRouter(),
		limiter: NewRateLimiter(opts.RPS, opts.Burst),
	}
	s.routes()

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	})
	s.handler = logging.RequestLogger(c.Handler(s.router))
	return s
}

func (s *Server) routes() {
	r := s.router
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		apiError(w, "not found", http.StatusNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
	})

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/properties", s.apiListProperties).Methods(http.MethodGet)
	api.HandleFunc("/properties", s.apiCreateProperty).Methods(http.MethodPost)
	api.HandleFunc("/properties/{id}", s.apiGetProperty).Methods(http.MethodGet)
	api.HandleFunc("/locations", s.apiLocations).Methods(http.MethodGet)
	api.HandleFunc("/filters", s.apiGetFilters).Methods(http.MethodGet)
	api.HandleFunc("/filters", s.apiDispatchFilter).Methods(http.MethodPost)
	api.HandleFunc("/selection", s.apiGetSelection).Methods(http.MethodGet)
	api.HandleFunc("/selection", s.apiSelect).Methods(http.MethodPost)
	api.HandleFunc("/selection", s.apiClearSelection).Methods(http.MethodDelete)

	api.HandleFunc("/session", s.apiGetSession).Methods(http.MethodGet)
	api.HandleFunc("/session", s.apiLogin).Methods(http.MethodPost)
	api.HandleFunc("/session", s.apiLogout).Methods(http.MethodDelete)
	api.HandleFunc("/session/profile", s.apiUpdateProfile).Methods(http.MethodPatch)
	api.HandleFunc("/session/avatar", s.apiSetAvatar).Methods(http.MethodPost)

	api.HandleFunc("/inquiries", s.apiListInquiries).Methods(http.MethodGet)
	api.HandleFunc("/inquiries", s.apiSubmitInquiry).Methods(http.MethodPost)
	api.HandleFunc("/inquiries/{id}/status", s.apiDecideInquiry).Methods(http.MethodPost)
	api.HandleFunc("/dashboard", s.apiDashboard).Methods(http.MethodGet)

	ai := api.PathPrefix("/ai").Subrouter()
	ai.Use(s.limiter.Middleware)
	ai.HandleFunc("/description", s.apiDescribe).Methods(http.MethodPost)
	ai.HandleFunc("/analyze", s.apiAnalyze).Methods(http.MethodPost)
	ai.HandleFunc("/banner", s.apiBanner).Methods(http.MethodPost)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe serves on port until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      90 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting API server", "addr", "http://localhost"+srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	slog.Info("shutting down API server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	apiJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
