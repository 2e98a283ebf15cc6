package process

import (
	"context"
	"reflect"
	"strings"

	"github.com/commandant-mcp/commandant/model/types"
)

const Name = "system/process"

// ListInput requests the system process listing
type ListInput struct{}

// ProcessInfo describes one running process
type ProcessInfo struct {
	Pid     int     `json:"pid"`
	Command string  `json:"command"`
	Cpu     float64 `json:"cpu"`
	Memory  float64 `json:"memory"`
}

// ListOutput carries the parsed process table
type ListOutput struct {
	Processes []ProcessInfo `json:"processes"`
}

// KillInput requests terminating an arbitrary process
type KillInput struct {
	Pid int `json:"pid" required:"true" description:"pid of the process to terminate"`
}

// KillOutput reports a kill request
type KillOutput struct {
	Pid     int  `json:"pid"`
	Success bool `json:"success"`
}

func (s *Service) Name() string {
	return Name
}

func (s *Service) Methods() types.Signatures {
	return []types.Signature{
		{
			Name:        "list",
			Description: "Lists running processes with pid, command, cpu and memory usage",
			Input:       reflect.TypeOf(&ListInput{}),
			Output:      reflect.TypeOf(&ListOutput{}),
		},
		{
			Name:        "kill",
			Description: "Terminates a process by pid, escalating to a forced kill after a grace period",
			Input:       reflect.TypeOf(&KillInput{}),
			Output:      reflect.TypeOf(&KillOutput{}),
		},
	}
}

func (s *Service) list(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*ListInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*ListOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	return s.List(ctx, input, output)
}

func (s *Service) kill(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*KillInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*KillOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	return s.Kill(ctx, input, output)
}

// Method returns method by name
func (s *Service) Method(name string) (types.Executable, error) {
	switch strings.ToLower(name) {
	case "list":
		return s.list, nil
	case "kill":
		return s.kill, nil
	default:
		return nil, types.NewMethodNotFoundError(name)
	}
}
