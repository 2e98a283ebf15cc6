package terminal

import (
	"context"
	"reflect"
	"strings"

	"github.com/commandant-mcp/commandant/model/types"
)

const Name = "system/terminal"

// ExecuteInput requests running a shell command under session management
type ExecuteInput struct {
	Command   string `json:"command" required:"true" description:"shell command line to execute"`
	TimeoutMs int    `json:"timeout_ms,omitempty" description:"how long to wait for completion before backgrounding the session, in milliseconds"`
}

// ExecuteOutput reports the settled side of the exit-vs-timeout race
type ExecuteOutput struct {
	Pid     int    `json:"pid"`
	Output  string `json:"output"`
	Blocked bool   `json:"isBlocked"`
}

// OutputInput requests the undelivered output of a session
type OutputInput struct {
	Pid int `json:"pid" required:"true" description:"pid returned by execute"`
}

// OutputOutput carries one drain of a session's delta buffer
type OutputOutput struct {
	Pid       int    `json:"pid"`
	Output    string `json:"output"`
	Completed bool   `json:"completed,omitempty"`
	ExitCode  *int   `json:"exitCode,omitempty"`
	RuntimeMs int64  `json:"runtimeMs,omitempty"`
}

// TerminateInput requests termination of a running session
type TerminateInput struct {
	Pid int `json:"pid" required:"true" description:"pid of the session to terminate"`
}

// TerminateOutput reports whether a termination was initiated
type TerminateOutput struct {
	Pid     int  `json:"pid"`
	Success bool `json:"success"`
}

// SessionsInput requests the active session listing
type SessionsInput struct{}

// SessionInfo describes one active session
type SessionInfo struct {
	Pid       int    `json:"pid"`
	Command   string `json:"command"`
	Blocked   bool   `json:"isBlocked"`
	RuntimeMs int64  `json:"runtimeMs"`
}

// SessionsOutput carries the active sessions ordered by pid
type SessionsOutput struct {
	Sessions []SessionInfo `json:"sessions"`
}

func (s *Service) Name() string {
	return Name
}

func (s *Service) Methods() types.Signatures {
	return []types.Signature{
		{
			Name:        "execute",
			Description: "Runs a shell command; returns complete output on exit within the timeout, or backgrounds the session and returns the partial output with isBlocked true",
			Input:       reflect.TypeOf(&ExecuteInput{}),
			Output:      reflect.TypeOf(&ExecuteOutput{}),
		},
		{
			Name:        "output",
			Description: "Drains new output of a session since the previous read; an exited background session yields its remaining output exactly once",
			Input:       reflect.TypeOf(&OutputInput{}),
			Output:      reflect.TypeOf(&OutputOutput{}),
		},
		{
			Name:        "terminate",
			Description: "Interrupts a running session and force kills it after a grace period unless it exits first",
			Input:       reflect.TypeOf(&TerminateInput{}),
			Output:      reflect.TypeOf(&TerminateOutput{}),
		},
		{
			Name:        "sessions",
			Description: "Lists the active sessions with command, background flag and runtime",
			Input:       reflect.TypeOf(&SessionsInput{}),
			Output:      reflect.TypeOf(&SessionsOutput{}),
		},
	}
}

func (s *Service) execute(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*ExecuteInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*ExecuteOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	return s.Execute(ctx, input, output)
}

func (s *Service) output(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*OutputInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*OutputOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	return s.Output(ctx, input, output)
}

func (s *Service) terminate(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*TerminateInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*TerminateOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	return s.Terminate(ctx, input, output)
}

func (s *Service) listSessions(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*SessionsInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*SessionsOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	return s.Sessions(ctx, input, output)
}

// Method returns method by name
func (s *Service) Method(name string) (types.Executable, error) {
	switch strings.ToLower(name) {
	case "execute":
		return s.execute, nil
	case "output":
		return s.output, nil
	case "terminate":
		return s.terminate, nil
	case "sessions":
		return s.listSessions, nil
	default:
		return nil, types.NewMethodNotFoundError(name)
	}
}
