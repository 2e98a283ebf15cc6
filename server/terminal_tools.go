package server

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/commandant-mcp/commandant/service/terminal"
)

// ExecuteCommandInput is the execute_command tool input.
type ExecuteCommandInput struct {
	Command   string `json:"command" jsonschema:"shell command line to execute"`
	TimeoutMs int    `json:"timeout_ms,omitempty" jsonschema:"milliseconds to wait for completion before the session is backgrounded (default 1000)"`
}

// ExecuteCommandResult reports how the execution settled.
type ExecuteCommandResult struct {
	Pid       int    `json:"pid" jsonschema:"session pid, used by read_output and force_terminate"`
	Output    string `json:"output" jsonschema:"output captured so far"`
	IsBlocked bool   `json:"isBlocked" jsonschema:"true when the command is still running in the background"`
}

// ReadOutputInput is the read_output tool input.
type ReadOutputInput struct {
	Pid int `json:"pid" jsonschema:"pid returned by execute_command"`
}

// ReadOutputResult carries one incremental drain of session output.
type ReadOutputResult struct {
	Pid       int    `json:"pid"`
	Output    string `json:"output" jsonschema:"output produced since the previous read"`
	Completed bool   `json:"completed,omitempty" jsonschema:"true when the session has exited and this is its final output"`
	ExitCode  *int   `json:"exitCode,omitempty" jsonschema:"exit code, present when completed"`
	RuntimeMs int64  `json:"runtimeMs,omitempty" jsonschema:"total runtime in milliseconds, present when completed"`
}

// ForceTerminateInput is the force_terminate tool input.
type ForceTerminateInput struct {
	Pid int `json:"pid" jsonschema:"pid of the session to terminate"`
}

// ForceTerminateResult reports whether termination was initiated.
type ForceTerminateResult struct {
	Pid     int  `json:"pid"`
	Success bool `json:"success" jsonschema:"false when no such session exists"`
}

// ListSessionsInput is the list_sessions tool input.
type ListSessionsInput struct{}

// SessionSummary describes one active session.
type SessionSummary struct {
	Pid       int    `json:"pid"`
	Command   string `json:"command"`
	IsBlocked bool   `json:"isBlocked" jsonschema:"true when the session outlived its execute_command timeout"`
	RuntimeMs int64  `json:"runtimeMs"`
}

// ListSessionsResult lists the active sessions.
type ListSessionsResult struct {
	Sessions []SessionSummary `json:"sessions"`
}

func (s *Server) registerTerminalTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "execute_command",
		Description: "Run a shell command; returns complete output if it finishes within the timeout, otherwise backgrounds the session and returns the partial output with isBlocked true",
	}, s.executeCommand)
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "read_output",
		Description: "Read new output from a backgrounded session since the previous read; delivers the final output exactly once after the session exits",
	}, s.readOutput)
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "force_terminate",
		Description: "Interrupt a running session, escalating to a forced kill after a grace period",
	}, s.forceTerminate)
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_sessions",
		Description: "List active command sessions with pid, command, background flag and runtime",
	}, s.listSessions)
}

func (s *Server) executeCommand(ctx context.Context, _ *mcp.CallToolRequest, input ExecuteCommandInput) (*mcp.CallToolResult, ExecuteCommandResult, error) {
	out, err := s.dispatcher.Invoke(ctx, terminal.Name, "execute", &terminal.ExecuteInput{
		Command:   input.Command,
		TimeoutMs: input.TimeoutMs,
	})
	if err != nil {
		return nil, ExecuteCommandResult{}, err
	}
	executed := out.(*terminal.ExecuteOutput)
	return nil, ExecuteCommandResult{
		Pid:       executed.Pid,
		Output:    executed.Output,
		IsBlocked: executed.Blocked,
	}, nil
}

func (s *Server) readOutput(ctx context.Context, _ *mcp.CallToolRequest, input ReadOutputInput) (*mcp.CallToolResult, ReadOutputResult, error) {
	out, err := s.dispatcher.Invoke(ctx, terminal.Name, "output", &terminal.OutputInput{Pid: input.Pid})
	if err != nil {
		return nil, ReadOutputResult{}, err
	}
	drained := out.(*terminal.OutputOutput)
	return nil, ReadOutputResult{
		Pid:       drained.Pid,
		Output:    drained.Output,
		Completed: drained.Completed,
		ExitCode:  drained.ExitCode,
		RuntimeMs: drained.RuntimeMs,
	}, nil
}

func (s *Server) forceTerminate(ctx context.Context, _ *mcp.CallToolRequest, input ForceTerminateInput) (*mcp.CallToolResult, ForceTerminateResult, error) {
	out, err := s.dispatcher.Invoke(ctx, terminal.Name, "terminate", &terminal.TerminateInput{Pid: input.Pid})
	if err != nil {
		return nil, ForceTerminateResult{}, err
	}
	terminated := out.(*terminal.TerminateOutput)
	return nil, ForceTerminateResult{Pid: terminated.Pid, Success: terminated.Success}, nil
}

func (s *Server) listSessions(ctx context.Context, _ *mcp.CallToolRequest, input ListSessionsInput) (*mcp.CallToolResult, ListSessionsResult, error) {
	out, err := s.dispatcher.Invoke(ctx, terminal.Name, "sessions", &terminal.SessionsInput{})
	if err != nil {
		return nil, ListSessionsResult{}, err
	}
	listed := out.(*terminal.SessionsOutput)
	sessions := make([]SessionSummary, 0, len(listed.Sessions))
	for _, info := range listed.Sessions {
		sessions = append(sessions, SessionSummary{
			Pid:       info.Pid,
			Command:   info.Command,
			IsBlocked: info.Blocked,
			RuntimeMs: info.RuntimeMs,
		})
	}
	return nil, ListSessionsResult{Sessions: sessions}, nil
}
