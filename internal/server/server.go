package server

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"
)

// Server owns the blog's *http.Server and its start/shutdown lifecycle.
type Server struct {
	httpServer *http.Server
}

const (
	maxHeaderBytes    = 1 << 20 // 1 MB
	readHeaderTimeout = 10 * time.Second
	readTimeout       = 30 * time.Second
	idleTimeout       = 60 * time.Second
)

// newHTTPServer applies the blog's limits. Form posts must arrive within
// readTimeout; WriteTimeout stays zero because the /ws feed holds its
// connection open and sets per-frame deadlines itself.
// Request contexts are cancelled on Shutdown so feed loops stop with it.
func newHTTPServer(addr string, handler http.Handler) *http.Server {
	base, cancel := context.WithCancel(context.Background())
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		MaxHeaderBytes:    maxHeaderBytes,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		IdleTimeout:       idleTimeout,
		BaseContext:       func(net.Listener) context.Context { return base },
	}
	srv.RegisterOnShutdown(cancel)
	return srv
}

// normalizeAddr turns the configured port into a listen address.
// A bare "8080" binds all interfaces; anything with a colon is used as given.
func normalizeAddr(port string) string {
	if port == "" || strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}

// Run serves the router on port until Shutdown, which makes it return
// http.ErrServerClosed. main treats that value as a clean exit.
func (s *Server) Run(port string, handler http.Handler) error {
	s.httpServer = newHTTPServer(normalizeAddr(port), handler)
	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting connections, ends open /ws feeds and waits for
// in-flight page renders until ctx expires. Calling it before Run is a no-op.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
