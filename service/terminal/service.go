package terminal

import (
	"context"
	"log"
	"os/exec"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/commandant-mcp/commandant/internal/clock"
	"github.com/commandant-mcp/commandant/internal/platform"
	"github.com/commandant-mcp/commandant/model/types"
)

// Guard validates a command line before anything is spawned.
type Guard interface {
	Allowed(commandLine string) bool
}

// Config holds the terminal session manager settings.
type Config struct {
	// DefaultTimeoutMs bounds how long execute waits before returning a
	// still-running session to the caller.
	DefaultTimeoutMs int `json:"defaultTimeoutMs,omitempty" yaml:"defaultTimeoutMs,omitempty"`
	// GracePeriodMs separates the graceful interrupt from the forced kill
	// during termination.
	GracePeriodMs int `json:"gracePeriodMs,omitempty" yaml:"gracePeriodMs,omitempty"`
	// RetainCompleted caps the completed-session table holding undelivered
	// output of backgrounded sessions that have since exited.
	RetainCompleted int `json:"retainCompleted,omitempty" yaml:"retainCompleted,omitempty"`
}

// DefaultConfig returns the settings matching the protocol defaults.
func DefaultConfig() Config {
	return Config{
		DefaultTimeoutMs: 1000,
		GracePeriodMs:    1000,
		RetainCompleted:  100,
	}
}

// completedSession holds what a backgrounded session left behind when it
// exited: the output nobody drained, plus exit metadata.
type completedSession struct {
	pid       int
	residue   string
	code      int
	runtimeMs int64
}

// Service runs shell commands as managed sessions: it validates against the
// guard, spawns, races process exit against the caller's timeout and keeps
// backgrounded sessions pollable until they exit.
type Service struct {
	guard  Guard
	caps   platform.Capabilities
	config Config

	mux       sync.Mutex
	sessions  map[int]*Session
	completed map[int]*completedSession
	order     []int
}

// New creates a terminal service guarded by the supplied command gate.
func New(guard Guard, caps platform.Capabilities, config Config) *Service {
	if config.DefaultTimeoutMs <= 0 {
		config.DefaultTimeoutMs = DefaultConfig().DefaultTimeoutMs
	}
	if config.GracePeriodMs <= 0 {
		config.GracePeriodMs = DefaultConfig().GracePeriodMs
	}
	if config.RetainCompleted <= 0 {
		config.RetainCompleted = DefaultConfig().RetainCompleted
	}
	return &Service{
		guard:     guard,
		caps:      caps,
		config:    config,
		sessions:  make(map[int]*Session),
		completed: make(map[int]*completedSession),
	}
}

// Execute validates, spawns and races the process exit against timeoutMs.
// Exactly one of the two events settles the response: an exit first yields
// the complete output with isBlocked false; a timeout first returns whatever
// has been emitted so far with isBlocked true and leaves the session
// registered and running.
func (s *Service) Execute(ctx context.Context, input *ExecuteInput, output *ExecuteOutput) error {
	command := strings.TrimSpace(input.Command)
	if command == "" {
		return types.NewValidationError("command is required")
	}
	if !s.guard.Allowed(command) {
		return types.NewSecurityError(command)
	}

	timeoutMs := input.TimeoutMs
	if timeoutMs <= 0 {
		timeoutMs = s.config.DefaultTimeoutMs
	}

	session, err := s.spawn(command)
	if err != nil {
		return err
	}

	timer := time.NewTimer(time.Duration(timeoutMs) * time.Millisecond)
	defer timer.Stop()

	select {
	case <-session.done:
	case <-timer.C:
		if session.markBlocked() {
			output.Pid = session.pid
			output.Output = session.snapshot()
			output.Blocked = true
			return nil
		}
		// The process exited at the same instant; the exit settles the
		// race, so wait for its watcher to finish the bookkeeping.
		<-session.done
	}

	output.Pid = session.pid
	output.Output = session.snapshot()
	return nil
}

// watch is the single owner of session removal. It runs once per session,
// strictly ordered: output streams drained, process reaped, registry entry
// removed, then the done channel closed.
func (s *Service) watch(session *Session, readers *sync.WaitGroup) {
	readers.Wait()
	code := 0
	if err := session.cmd.Wait(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			code = exitErr.ExitCode()
		} else {
			code = -1
			log.Printf("session %d wait failed: %v", session.pid, err)
		}
	}
	wasBlocked := session.markExited(code)

	s.mux.Lock()
	delete(s.sessions, session.pid)
	if wasBlocked {
		s.retain(session, code)
	}
	s.mux.Unlock()
	close(session.done)
}

// retain records the undelivered output of an exited background session;
// called with the registry mutex held. The table is bounded: the oldest
// record is evicted first.
func (s *Service) retain(session *Session, code int) {
	runtimeMs := clock.Now().Sub(session.startTime).Milliseconds()
	s.completed[session.pid] = &completedSession{
		pid:       session.pid,
		residue:   session.residue(),
		code:      code,
		runtimeMs: runtimeMs,
	}
	s.order = append(s.order, session.pid)
	for len(s.order) > s.config.RetainCompleted {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.completed, oldest)
	}
}

// Output drains a session's delta buffer. A live session yields everything
// accumulated since the previous drain (possibly nothing). An exited
// background session yields its residue exactly once, flagged completed.
// Anything else is an unknown pid.
func (s *Service) Output(ctx context.Context, input *OutputInput, output *OutputOutput) error {
	s.mux.Lock()
	if session, ok := s.sessions[input.Pid]; ok {
		output.Pid = input.Pid
		output.Output = session.drain()
		s.mux.Unlock()
		return nil
	}
	if record, ok := s.completed[input.Pid]; ok {
		delete(s.completed, input.Pid)
		s.dropOrder(input.Pid)
		s.mux.Unlock()
		code := record.code
		output.Pid = input.Pid
		output.Output = record.residue
		output.Completed = true
		output.ExitCode = &code
		output.RuntimeMs = record.runtimeMs
		return nil
	}
	s.mux.Unlock()
	return types.NewNotFoundError(input.Pid)
}

// dropOrder removes a pid from the eviction order; called with the registry
// mutex held.
func (s *Service) dropOrder(pid int) {
	for i, candidate := range s.order {
		if candidate == pid {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

// Terminate requests asynchronous termination of a registered session: a
// graceful interrupt now and a forced kill after the grace period unless the
// process exits in the interim. It reports false for unknown pids.
func (s *Service) Terminate(ctx context.Context, input *TerminateInput, output *TerminateOutput) error {
	s.mux.Lock()
	session := s.sessions[input.Pid]
	s.mux.Unlock()

	output.Pid = input.Pid
	if session == nil {
		return nil
	}
	if err := session.cmd.Process.Signal(s.caps.Interrupt); err != nil {
		log.Printf("failed to interrupt session %d: %v", session.pid, err)
	}
	grace := time.Duration(s.config.GracePeriodMs) * time.Millisecond
	go func() {
		select {
		case <-session.done:
		case <-time.After(grace):
			log.Printf("session %d did not exit within %v, killing", session.pid, grace)
			if err := session.cmd.Process.Kill(); err != nil {
				log.Printf("failed to kill session %d: %v", session.pid, err)
			}
		}
	}()
	output.Success = true
	return nil
}

// Sessions snapshots the registered sessions ordered by pid.
func (s *Service) Sessions(ctx context.Context, input *SessionsInput, output *SessionsOutput) error {
	now := clock.Now()
	s.mux.Lock()
	infos := make([]SessionInfo, 0, len(s.sessions))
	for _, session := range s.sessions {
		infos = append(infos, SessionInfo{
			Pid:       session.pid,
			Command:   session.command,
			Blocked:   session.isBlocked(),
			RuntimeMs: now.Sub(session.startTime).Milliseconds(),
		})
	}
	s.mux.Unlock()
	sort.Slice(infos, func(i, j int) bool { return infos[i].Pid < infos[j].Pid })
	output.Sessions = infos
	return nil
}
