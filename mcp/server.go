// Package mcp exposes snipq as a Model Context Protocol tool server.
package mcp

import (
	"log/slog"
	"sync"

	"github.com/arjunmahishi/snipq/scanner"
	"github.com/arjunmahishi/snipq/snipq"
	"github.com/mark3labs/mcp-go/server"
)

// Server implements the MCP server for snipq.
type Server struct {
	mcpServer *server.MCPServer
	scanner   *scanner.Scanner
	defaults  snipq.Options
	logger    *slog.Logger

	// mu serialises extractions, engines share their parsers.
	mu sync.Mutex
}

// NewServer creates a new MCP server. defaults seeds every extraction;
// tool arguments override it.
func NewServer(version string, sc *scanner.Scanner, defaults snipq.Options) *Server {
	s := &Server{scanner: sc, defaults: defaults, logger: defaults.Logger}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}

	s.mcpServer = server.NewMCPServer(
		"snipq",
		version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: extractCodeTool(), Handler: s.handleExtractCode},
		server.ServerTool{Tool: listEnginesTool(), Handler: s.handleListEngines},
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
