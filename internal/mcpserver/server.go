// Package mcpserver exposes the local gift draft to assistants over MCP so
// they can read, fill in and check it alongside the user.
package mcpserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/bandhan/bandhan/internal/draft"
	"github.com/bandhan/bandhan/internal/logger"
	"github.com/mark3labs/mcp-go/server"
)

var log = logger.With("mcp")

// Server manages an MCP HTTP server whose tools operate on the local draft.
type Server struct {
	drafts     *draft.Storage
	now        func() time.Time
	mcpServer  *server.MCPServer
	httpServer *server.StreamableHTTPServer
	stdServer  *http.Server
	port       int
	mu         sync.Mutex
}

// New creates a server for drafts. The server is not started until Start.
func New(drafts *draft.Storage) *Server {
	s := &Server{drafts: drafts, now: time.Now}
	s.mcpServer = server.NewMCPServer(
		"bandhan-drafts",
		"1.0.0",
		server.WithToolCapabilities(true),
	)
	s.registerTools()
	return s
}

// Start listens on 127.0.0.1:port (0 picks a free port) and serves in the
// background. It returns the bound port.
func (s *Server) Start(ctx context.Context, port int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stdServer != nil {
		return 0, fmt.Errorf("server already started")
	}

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return 0, fmt.Errorf("failed to listen on port %d: %w", port, err)
	}
	s.port = listener.Addr().(*net.TCPAddr).Port

	mux := http.NewServeMux()
	s.httpServer = server.NewStreamableHTTPServer(
		s.mcpServer,
		server.WithStateLess(true),
	)
	mux.Handle("/mcp", s.httpServer)
	s.stdServer = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stdServer := s.stdServer
	go func() {
		if err := stdServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error: %v", err)
		}
	}()

	log.Info("serving on port %d", s.port)
	return s.port, nil
}

// Stop shuts the HTTP server down. Stopping a stopped server is a no-op.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stdServer == nil {
		return nil
	}

	if err := s.stdServer.Shutdown(context.Background()); err != nil {
		log.Warn("stopping server: %v", err)
		return fmt.Errorf("failed to stop server: %w", err)
	}

	s.httpServer = nil
	s.stdServer = nil
	log.Debug("stopped")
	return nil
}

// URL returns the HTTP URL for the MCP endpoint.
func (s *Server) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("http://localhost:%d/mcp", s.port)
}
