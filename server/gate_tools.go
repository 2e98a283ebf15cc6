package server

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/commandant-mcp/commandant/service/gate"
)

// BlockCommandInput is the block_command tool input.
type BlockCommandInput struct {
	Command string `json:"command" jsonschema:"command name to block; only the first whitespace-delimited token is used"`
}

// BlockCommandResult reports a block mutation.
type BlockCommandResult struct {
	Command        string `json:"command"`
	AlreadyBlocked bool   `json:"alreadyBlocked" jsonschema:"true when the command was blocked before this call"`
}

// UnblockCommandInput is the unblock_command tool input.
type UnblockCommandInput struct {
	Command string `json:"command" jsonschema:"command name to unblock"`
}

// UnblockCommandResult reports an unblock mutation.
type UnblockCommandResult struct {
	Command    string `json:"command"`
	WasBlocked bool   `json:"wasBlocked" jsonschema:"false when the command was not blocked"`
}

// ListBlockedCommandsInput is the list_blocked_commands tool input.
type ListBlockedCommandsInput struct{}

// ListBlockedCommandsResult carries the blacklist in lexicographic order.
type ListBlockedCommandsResult struct {
	Commands []string `json:"commands"`
}

func (s *Server) registerGateTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "block_command",
		Description: "Add a command to the blacklist so execute_command refuses it; persisted immediately",
	}, s.blockCommand)
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "unblock_command",
		Description: "Remove a command from the blacklist; persisted immediately",
	}, s.unblockCommand)
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_blocked_commands",
		Description: "List blacklisted commands in lexicographic order",
	}, s.listBlockedCommands)
}

func (s *Server) blockCommand(ctx context.Context, _ *mcp.CallToolRequest, input BlockCommandInput) (*mcp.CallToolResult, BlockCommandResult, error) {
	out, err := s.dispatcher.Invoke(ctx, gate.Name, "block", &gate.BlockInput{Command: input.Command})
	if err != nil {
		return nil, BlockCommandResult{}, err
	}
	blocked := out.(*gate.BlockOutput)
	return nil, BlockCommandResult{Command: blocked.Command, AlreadyBlocked: blocked.AlreadyBlocked}, nil
}

func (s *Server) unblockCommand(ctx context.Context, _ *mcp.CallToolRequest, input UnblockCommandInput) (*mcp.CallToolResult, UnblockCommandResult, error) {
	out, err := s.dispatcher.Invoke(ctx, gate.Name, "unblock", &gate.UnblockInput{Command: input.Command})
	if err != nil {
		return nil, UnblockCommandResult{}, err
	}
	unblocked := out.(*gate.UnblockOutput)
	return nil, UnblockCommandResult{Command: unblocked.Command, WasBlocked: unblocked.WasBlocked}, nil
}

func (s *Server) listBlockedCommands(ctx context.Context, _ *mcp.CallToolRequest, input ListBlockedCommandsInput) (*mcp.CallToolResult, ListBlockedCommandsResult, error) {
	out, err := s.dispatcher.Invoke(ctx, gate.Name, "list", &gate.ListInput{})
	if err != nil {
		return nil, ListBlockedCommandsResult{}, err
	}
	listed := out.(*gate.ListOutput)
	return nil, ListBlockedCommandsResult{Commands: listed.Commands}, nil
}
