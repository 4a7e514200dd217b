package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kaviapp/kavi/internal/rag"
	"github.com/kaviapp/kavi/pkg/logger_i"
)

// Version is the MCP server version.
const Version = "0.1.0"

var logger = logger_i.NewLogger("mcpserver")

// Server exposes the retrieval pipeline to MCP clients over stdio, so
// assistants can search the question corpus and build plans directly.
type Server struct {
	ragService rag.Service
	server     *mcp.Server
}

func NewServer(ragService rag.Service) *Server {
	impl := &mcp.Implementation{
		Name:    "kavi",
		Version: Version,
	}

	s := &Server{
		ragService: ragService,
		server:     mcp.NewServer(impl, nil),
	}

	s.registerTools()
	return s
}

// Run serves MCP over stdio until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	logger.Info("MCP server running on stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
