package terminal

import (
	"errors"
	"os/exec"
	"sync"

	"github.com/commandant-mcp/commandant/internal/clock"
	"github.com/commandant-mcp/commandant/model/types"
)

var errNoPid = errors.New("process started without a pid")

// spawn starts a shell-wrapped process, registers the session under the OS
// assigned pid and attaches the output readers and the exit watcher. There
// is deliberately no cancellation: once spawned, only Terminate affects the
// process.
func (s *Service) spawn(command string) (*Session, error) {
	shell := s.caps.Shell
	args := append(append([]string{}, shell[1:]...), command)
	cmd := exec.Command(shell[0], args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, types.NewProcessSpawnError(command, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, types.NewProcessSpawnError(command, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, types.NewProcessSpawnError(command, err)
	}
	if cmd.Process == nil || cmd.Process.Pid <= 0 {
		_ = cmd.Wait()
		return nil, types.NewProcessSpawnError(command, errNoPid)
	}

	session := newSession(cmd.Process.Pid, command, cmd, clock.Now())
	s.mux.Lock()
	s.sessions[session.pid] = session
	s.mux.Unlock()

	var readers sync.WaitGroup
	readers.Add(2)
	go session.consume(stdout, &readers)
	go session.consume(stderr, &readers)
	go s.watch(session, &readers)
	return session, nil
}
