// Package server exposes the command execution services as MCP tools over
// the stdio transport.
package server

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/commandant-mcp/commandant/service/dispatcher"
)

// Version identifies the MCP server version.
const Version = "0.1.0"

// invoker is the slice of the core façade the tool handlers need.
type invoker interface {
	Invoke(ctx context.Context, service, method string, payload interface{}) (interface{}, error)
}

// Server adapts the action services to the MCP protocol.
type Server struct {
	dispatcher invoker
	mcpServer  *mcp.Server
}

// New builds an MCP server with every tool registered.
func New(name string, d *dispatcher.Service) *Server {
	s := &Server{
		dispatcher: d,
		mcpServer:  mcp.NewServer(&mcp.Implementation{Name: name, Version: Version}, &mcp.ServerOptions{}),
	}
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	s.registerTerminalTools()
	s.registerProcessTools()
	s.registerGateTools()
	s.registerFileTools()
}

// Run serves MCP over stdio until the context is cancelled or the transport
// closes.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
