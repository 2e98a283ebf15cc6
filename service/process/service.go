// Package process inspects and signals OS processes outside the managed
// session model.
package process

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/viant/gosh"
	"github.com/viant/gosh/runner"
	"github.com/viant/gosh/runner/local"

	"github.com/commandant-mcp/commandant/internal/platform"
	"github.com/commandant-mcp/commandant/model/types"
)

// commandRunner abstracts the shell used for process listing.
type commandRunner interface {
	Run(ctx context.Context, command string, options ...runner.Option) (string, int, error)
}

// Config holds the process inspector settings.
type Config struct {
	// ListTimeoutMs bounds the process listing command.
	ListTimeoutMs int `json:"listTimeoutMs,omitempty" yaml:"listTimeoutMs,omitempty"`
	// KillGraceMs separates the polite terminate from the forced kill.
	KillGraceMs int `json:"killGraceMs,omitempty" yaml:"killGraceMs,omitempty"`
}

// DefaultConfig returns the inspector defaults.
func DefaultConfig() Config {
	return Config{ListTimeoutMs: 5000, KillGraceMs: 1000}
}

// Service lists running processes through the platform listing command and
// signals arbitrary pids.
type Service struct {
	caps   platform.Capabilities
	config Config
	shell  commandRunner
}

// New creates a process inspector backed by a local shell session.
func New(ctx context.Context, caps platform.Capabilities, config Config) (*Service, error) {
	shell, err := gosh.New(ctx, local.New())
	if err != nil {
		return nil, err
	}
	return newService(caps, config, shell), nil
}

func newService(caps platform.Capabilities, config Config, shell commandRunner) *Service {
	if config.ListTimeoutMs <= 0 {
		config.ListTimeoutMs = DefaultConfig().ListTimeoutMs
	}
	if config.KillGraceMs <= 0 {
		config.KillGraceMs = DefaultConfig().KillGraceMs
	}
	return &Service{caps: caps, config: config, shell: shell}
}

// List runs the platform listing command and parses one entry per process.
func (s *Service) List(ctx context.Context, input *ListInput, output *ListOutput) error {
	command := s.caps.ListCommand
	if command == "" {
		return types.NewSystemCommandError("list processes", errUnsupportedPlatform)
	}
	stdout, status, err := s.shell.Run(ctx, command, runner.WithTimeout(s.config.ListTimeoutMs))
	if err != nil {
		return types.NewSystemCommandError(command, err)
	}
	if status != 0 {
		return types.NewSystemCommandError(command, errNonZeroStatus(status))
	}
	processes, err := parseProcessTable(stdout)
	if err != nil {
		return types.NewSystemCommandError(command, err)
	}
	output.Processes = processes
	return nil
}

// Kill signals a pid with the polite terminate signal and escalates to a
// forced kill after the grace period. The target need not be a managed
// session.
func (s *Service) Kill(ctx context.Context, input *KillInput, output *KillOutput) error {
	if input.Pid <= 0 {
		return types.NewValidationError("pid must be positive")
	}
	target, err := os.FindProcess(input.Pid)
	if err != nil {
		return types.NewNotFoundError(input.Pid)
	}
	if err := target.Signal(s.caps.Terminate); err != nil {
		return types.NewNotFoundError(input.Pid)
	}
	grace := time.Duration(s.config.KillGraceMs) * time.Millisecond
	go func() {
		time.Sleep(grace)
		// Ignore the error: the process exiting in the interim is the
		// expected case.
		if err := target.Kill(); err == nil {
			log.Printf("process %d required a forced kill", input.Pid)
		}
	}()
	output.Pid = input.Pid
	output.Success = true
	return nil
}
