package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cbodonnell/worldlens/pkg/api/handlers"
	"github.com/cbodonnell/worldlens/pkg/api/middleware"
	"github.com/cbodonnell/worldlens/pkg/log"
	"github.com/cbodonnell/worldlens/pkg/origins"
	"github.com/cbodonnell/worldlens/pkg/state"
	"github.com/gorilla/mux"
)

type APIServer struct {
	server *http.Server
	tls    *TLSConfig
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewAPIServerOptions struct {
	Port  int
	TLS   *TLSConfig
	Store state.SnapshotStore
	// Origins and Lister are optional; the map routes are only served when set.
	Origins handlers.OriginStore
	Lister  handlers.OriginLister
	// Resolver answers origin lookups when set, so lookups can see the same
	// sources as the read loop. Writes always go to Origins.
	Resolver origins.Resolver
}

// NewRouter builds the API routes.
func NewRouter(opts NewAPIServerOptions) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Logging)

	r.HandleFunc("/healthz", handlers.HandleHealthz(opts.Store)).Methods(http.MethodGet)

	read := r.NewRoute().Subrouter()
	read.Use(middleware.CORS("GET, OPTIONS"))
	read.HandleFunc("/snapshot", handlers.HandleGetSnapshot(opts.Store)).Methods(http.MethodGet, http.MethodOptions)
	if opts.Lister != nil {
		read.HandleFunc("/maps", handlers.HandleListOrigins(opts.Lister)).Methods(http.MethodGet, http.MethodOptions)
	}

	if opts.Origins != nil {
		maps := r.PathPrefix("/maps/{name}").Subrouter()
		maps.Use(middleware.CORS("GET, PUT, OPTIONS"))
		var resolver origins.Resolver = opts.Origins
		if opts.Resolver != nil {
			resolver = opts.Resolver
		}
		maps.HandleFunc("/origin", handlers.HandleGetOrigin(resolver)).Methods(http.MethodGet, http.MethodOptions)
		maps.HandleFunc("/origin", handlers.HandlePutOrigin(opts.Origins)).Methods(http.MethodPut)
	}

	return r
}

// NewAPIServer creates a new http.Server for handling API requests
func NewAPIServer(opts NewAPIServerOptions) *APIServer {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: NewRouter(opts),
	}
	return &APIServer{
		server: server,
		tls:    opts.TLS,
	}
}

// Start starts the APIServer
func (s *APIServer) Start() {
	var listenAndServe func() error
	if s.tls != nil {
		log.Info("API server listening on %s with TLS", s.server.Addr)
		listenAndServe = func() error {
			return s.server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Info("API server listening on %s", s.server.Addr)
		listenAndServe = s.server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("API server closed")
			return
		}
		log.Error("API server error: %v", err)
	}
}

// Stop stops the APIServer
func (s *APIServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
