package gate

import (
	"context"
	"log"
	"sort"
	"strings"
	"sync"
)

// Service is the command gate: it owns the blacklist of disallowed command
// names and validates every command line before a process is spawned. The
// blacklist is loaded once at construction and persisted back to the store
// on every successful mutation.
type Service struct {
	store   *Store
	mux     sync.RWMutex
	blocked map[string]bool
}

// New creates a command gate backed by the supplied store. A missing
// blacklist document yields an empty blacklist; a corrupt one is reported.
func New(ctx context.Context, store *Store) (*Service, error) {
	blocked, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &Service{store: store, blocked: blocked}, nil
}

// baseToken extracts the first whitespace-delimited token of a command line,
// lower-cased. The blacklist holds base tokens only ("rm", not "rm -rf /").
func baseToken(commandLine string) string {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(fields[0]))
}

// Allowed reports whether the command line may be executed. It is a pure
// membership check with no side effects.
func (s *Service) Allowed(commandLine string) bool {
	token := baseToken(commandLine)
	if token == "" {
		return false
	}
	s.mux.RLock()
	defer s.mux.RUnlock()
	return !s.blocked[token]
}

// Block adds a command to the blacklist and persists the change. Blocking an
// already blocked command reports alreadyBlocked without touching the store.
func (s *Service) Block(ctx context.Context, input *BlockInput, output *BlockOutput) error {
	token := baseToken(input.Command)
	if token == "" {
		return errEmptyCommand()
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	output.Command = token
	if s.blocked[token] {
		output.AlreadyBlocked = true
		return nil
	}
	s.blocked[token] = true
	s.persist(ctx)
	return nil
}

// Unblock removes a command from the blacklist and persists the change.
// Unblocking a command that was never blocked leaves the store untouched.
func (s *Service) Unblock(ctx context.Context, input *UnblockInput, output *UnblockOutput) error {
	token := baseToken(input.Command)
	if token == "" {
		return errEmptyCommand()
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	output.Command = token
	if !s.blocked[token] {
		return nil
	}
	delete(s.blocked, token)
	output.WasBlocked = true
	s.persist(ctx)
	return nil
}

// List returns the blacklist in lexicographic order.
func (s *Service) List(ctx context.Context, input *ListInput, output *ListOutput) error {
	s.mux.RLock()
	defer s.mux.RUnlock()
	commands := make([]string, 0, len(s.blocked))
	for command := range s.blocked {
		commands = append(commands, command)
	}
	sort.Strings(commands)
	output.Commands = commands
	return nil
}

// persist writes the blacklist back to the store. A failed save means the
// in-memory state still governs the current process lifetime but will not
// survive restart; the gate keeps serving.
func (s *Service) persist(ctx context.Context) {
	if err := s.store.Save(ctx, s.blocked); err != nil {
		log.Printf("failed to persist blacklist to %v: %v", s.store.URL, err)
	}
}
