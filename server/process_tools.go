package server

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/commandant-mcp/commandant/service/process"
)

// ListProcessesInput is the list_processes tool input.
type ListProcessesInput struct{}

// ProcessSummary describes one running OS process.
type ProcessSummary struct {
	Pid     int     `json:"pid"`
	Command string  `json:"command"`
	Cpu     float64 `json:"cpu" jsonschema:"cpu usage percentage"`
	Memory  float64 `json:"memory" jsonschema:"memory usage percentage"`
}

// ListProcessesResult lists running OS processes.
type ListProcessesResult struct {
	Processes []ProcessSummary `json:"processes"`
}

// KillProcessInput is the kill_process tool input.
type KillProcessInput struct {
	Pid int `json:"pid" jsonschema:"pid of the process to terminate; need not be a managed session"`
}

// KillProcessResult reports a kill request.
type KillProcessResult struct {
	Pid     int  `json:"pid"`
	Success bool `json:"success"`
}

func (s *Server) registerProcessTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_processes",
		Description: "List all running processes with pid, command, cpu and memory usage",
	}, s.listProcesses)
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "kill_process",
		Description: "Terminate any process by pid, escalating to a forced kill after a grace period",
	}, s.killProcess)
}

func (s *Server) listProcesses(ctx context.Context, _ *mcp.CallToolRequest, input ListProcessesInput) (*mcp.CallToolResult, ListProcessesResult, error) {
	out, err := s.dispatcher.Invoke(ctx, process.Name, "list", &process.ListInput{})
	if err != nil {
		return nil, ListProcessesResult{}, err
	}
	listed := out.(*process.ListOutput)
	processes := make([]ProcessSummary, 0, len(listed.Processes))
	for _, info := range listed.Processes {
		processes = append(processes, ProcessSummary{
			Pid:     info.Pid,
			Command: info.Command,
			Cpu:     info.Cpu,
			Memory:  info.Memory,
		})
	}
	return nil, ListProcessesResult{Processes: processes}, nil
}

func (s *Server) killProcess(ctx context.Context, _ *mcp.CallToolRequest, input KillProcessInput) (*mcp.CallToolResult, KillProcessResult, error) {
	out, err := s.dispatcher.Invoke(ctx, process.Name, "kill", &process.KillInput{Pid: input.Pid})
	if err != nil {
		return nil, KillProcessResult{}, err
	}
	killed := out.(*process.KillOutput)
	return nil, KillProcessResult{Pid: killed.Pid, Success: killed.Success}, nil
}
