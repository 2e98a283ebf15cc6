package terminal

import (
	"io"
	"os/exec"
	"sync"
	"time"
)

// Session is the managed record of one spawned, shell-executed command while
// its process has not yet been observed to exit. The process handle is owned
// exclusively by the session and released by its watcher, exactly once.
type Session struct {
	pid       int
	command   string
	cmd       *exec.Cmd
	startTime time.Time

	mux     sync.Mutex
	full    []byte
	pending []byte
	blocked bool
	exited  bool
	code    int

	// done is the settle-once primitive for the exit side of the
	// exit-vs-timeout race: it is closed exactly once, after all buffered
	// output for the exit has been appended and the session has been
	// removed from the registry.
	done chan struct{}
}

func newSession(pid int, command string, cmd *exec.Cmd, startTime time.Time) *Session {
	return &Session{
		pid:       pid,
		command:   command,
		cmd:       cmd,
		startTime: startTime,
		done:      make(chan struct{}),
	}
}

// Pid returns the OS process id, the session's registry key.
func (s *Session) Pid() int {
	return s.pid
}

// consume appends every chunk arriving on one of the output streams. Both
// stdout and stderr feed the same buffers, interleaved in arrival order.
func (s *Session) consume(reader io.Reader, readers *sync.WaitGroup) {
	defer readers.Done()
	buffer := make([]byte, 4096)
	for {
		n, err := reader.Read(buffer)
		if n > 0 {
			s.append(buffer[:n])
		}
		if err != nil {
			return
		}
	}
}

func (s *Session) append(chunk []byte) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.full = append(s.full, chunk...)
	s.pending = append(s.pending, chunk...)
}

// snapshot returns everything emitted so far without affecting the delta
// buffer.
func (s *Session) snapshot() string {
	s.mux.Lock()
	defer s.mux.Unlock()
	return string(s.full)
}

// drain atomically swaps out the delta buffer; an empty result means no new
// output since the previous drain.
func (s *Session) drain() string {
	s.mux.Lock()
	defer s.mux.Unlock()
	out := string(s.pending)
	s.pending = nil
	return out
}

// residue returns the undelivered delta buffer, used when a backgrounded
// session exits before its output was drained.
func (s *Session) residue() string {
	s.mux.Lock()
	defer s.mux.Unlock()
	return string(s.pending)
}

// markBlocked flags the session as running in the background. It reports
// false when the process exit already settled the race, in which case the
// caller should take the completion path instead.
func (s *Session) markBlocked() bool {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.exited {
		return false
	}
	s.blocked = true
	return true
}

// markExited records the exit code and reports whether the session had been
// backgrounded. markBlocked and markExited serialise on the session mutex,
// which is what makes the exit-vs-timeout settlement race free.
func (s *Session) markExited(code int) bool {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.exited = true
	s.code = code
	return s.blocked
}

func (s *Session) isBlocked() bool {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.blocked
}
