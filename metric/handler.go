package metric

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/c360/seqstreams/errors"
	"github.com/c360/seqstreams/health"
)

// Server represents the metrics HTTP server
type Server struct {
	port        int
	path        string
	server      *http.Server
	registry    *MetricsRegistry
	healthCheck func() health.Status
	mu          sync.Mutex // protects server field
}

// NewServer creates a new metrics server with the provided registry
func NewServer(port int, path string, registry *MetricsRegistry) *Server {
	if path == "" {
		path = "/metrics"
	}
	if port == 0 {
		port = 9090
	}

	return &Server{
		port:     port,
		path:     path,
		registry: registry,
	}
}

// SetHealthCheck makes /health report check as JSON, answering 503 while it is unhealthy.
// It must be called before Start.
func (s *Server) SetHealthCheck(check func() health.Status) {
	s.healthCheck = check
}

// Handler builds the mux served by Start: the Prometheus endpoint, /health and an index page.
func (s *Server) Handler() (http.Handler, error) {
	if s.registry == nil {
		return nil, errors.WrapFatal(
			fmt.Errorf("nil registry"),
			"Server", "Handler", "metrics registry not provided")
	}

	mux := http.NewServeMux()
	mux.Handle(s.path, promhttp.HandlerFor(
		s.registry.PrometheusRegistry(),
		promhttp.HandlerOpts{
			EnableOpenMetrics: true,
		},
	))

	mux.HandleFunc("/health", s.serveHealth)

	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = fmt.Fprintf(w, `<html>
<head><title>seqstreams Metrics</title></head>
<body>
<h1>seqstreams Metrics Server</h1>
<p><a href="%s">Metrics</a></p>
<p><a href="/health">Health</a></p>
</body>
</html>`, s.path)
	})

	return mux, nil
}

func (s *Server) serveHealth(w http.ResponseWriter, _ *http.Request) {
	if s.healthCheck == nil {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
		return
	}

	status := s.healthCheck()
	w.Header().Set("Content-Type", "application/json")
	if status.IsUnhealthy() {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	_ = json.NewEncoder(w).Encode(status)
}

// Start starts the metrics HTTP server and blocks until it stops.
// A server closed through Stop returns nil.
func (s *Server) Start() error {
	srv, err := s.prepare()
	if err != nil {
		return err
	}
	return s.serve(srv)
}

// Run serves until ctx is cancelled, then stops the server.
func (s *Server) Run(ctx context.Context) error {
	srv, err := s.prepare()
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.serve(srv)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		if err := s.Stop(); err != nil {
			return err
		}
		return <-errCh
	}
}

// prepare builds the http.Server and marks this Server as running.
func (s *Server) prepare() (*http.Server, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		return nil, errors.WrapInvalid(
			errors.ErrAlreadyStarted,
			"Server", "Start", "cannot start server that is already running")
	}

	handler, err := s.Handler()
	if err != nil {
		return nil, err
	}

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s.server, nil
}

func (s *Server) serve(srv *http.Server) error {
	if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		s.mu.Lock()
		if s.server == srv {
			s.server = nil
		}
		s.mu.Unlock()
		return errors.WrapFatal(err, "Server", "Start",
			fmt.Sprintf("failed to start server on port %d", s.port))
	}
	return nil
}

// Stop stops the metrics server
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		err := s.server.Close()
		s.server = nil // reset server field to allow restart
		if err != nil {
			return errors.WrapTransient(err, "Server", "Stop",
				"failed to stop HTTP server")
		}
	}
	return nil
}

// Address returns the server address
func (s *Server) Address() string {
	return fmt.Sprintf("http://localhost:%d%s", s.port, s.path)
}
