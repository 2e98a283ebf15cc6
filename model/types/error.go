package types

import "fmt"

func NewMethodNotFoundError(name string) error {
	return fmt.Errorf("method %v not found", name)
}

func NewInvalidInputError(in interface{}) error {
	return fmt.Errorf("invalid input %T", in)
}

func NewInvalidOutputError(in interface{}) error {
	return fmt.Errorf("invalid output %T", in)
}

// ValidationError indicates malformed arguments, detected before any
// resource is allocated.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// SecurityError indicates the command base token is blacklisted; raised
// before anything is spawned.
type SecurityError struct {
	Command string
}

func (e *SecurityError) Error() string {
	return fmt.Sprintf("command %q is blocked", e.Command)
}

func NewSecurityError(command string) error {
	return &SecurityError{Command: command}
}

// ProcessSpawnError indicates the OS failed to start a process or allocate
// a process id.
type ProcessSpawnError struct {
	Command string
	Err     error
}

func (e *ProcessSpawnError) Error() string {
	return fmt.Sprintf("failed to spawn %q: %v", e.Command, e.Err)
}

func (e *ProcessSpawnError) Unwrap() error { return e.Err }

func NewProcessSpawnError(command string, err error) error {
	return &ProcessSpawnError{Command: command, Err: err}
}

// NotFoundError indicates an operation referenced an unknown pid.
type NotFoundError struct {
	Pid int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no session with pid %d", e.Pid)
}

func NewNotFoundError(pid int) error {
	return &NotFoundError{Pid: pid}
}

// SystemCommandError indicates a platform level command (such as process
// listing) failed or the platform is unsupported.
type SystemCommandError struct {
	Command string
	Err     error
}

func (e *SystemCommandError) Error() string {
	if e.Command == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("system command %q failed: %v", e.Command, e.Err)
}

func (e *SystemCommandError) Unwrap() error { return e.Err }

func NewSystemCommandError(command string, err error) error {
	return &SystemCommandError{Command: command, Err: err}
}
