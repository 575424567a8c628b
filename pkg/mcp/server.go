// Package mcp exposes the generated component schemas to coding agents
// over the Model Context Protocol.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/gnana997/nativegen/pkg/generator"
	"github.com/gnana997/nativegen/pkg/mcplog"
)

const serverVersion = "0.1.0-dev"

// Server implements the MCP server for nativegen, exposing schema query
// tools over the generator's store.
type Server struct {
	mcpServer *server.MCPServer
	store     *generator.Store
	logger    *mcplog.Logger // nil disables tool-call logging
}

// NewServer creates an MCP server backed by the given store. logger may be
// nil to disable JSONL tool-call logging.
func NewServer(store *generator.Store, logger *mcplog.Logger) *Server {
	s := &Server{store: store, logger: logger}

	opts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	}
	if logger != nil {
		opts = append(opts, server.WithToolHandlerMiddleware(s.loggingMiddleware()))
	}

	s.mcpServer = server.NewMCPServer("nativegen", serverVersion, opts...)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: listComponentsTool(), Handler: s.handleListComponents},
		server.ServerTool{Tool: getComponentSchemaTool(), Handler: s.handleGetComponentSchema},
		server.ServerTool{Tool: getComponentCommandsTool(), Handler: s.handleGetComponentCommands},
		server.ServerTool{Tool: searchComponentsTool(), Handler: s.handleSearchComponents},
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
