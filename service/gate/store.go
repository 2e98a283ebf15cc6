package gate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
)

// document is the persisted blacklist shape: {"blockedCommands": [...]}.
type document struct {
	BlockedCommands []string `json:"blockedCommands"`
}

// Store persists the blacklist as a JSON document at an afs URL, so the
// backing location may be file://, mem:// (tests) or any other supported
// scheme. The document is rewritten in full on every save.
type Store struct {
	URL string
	fs  afs.Service
}

// NewStore creates a blacklist store for the supplied URL.
func NewStore(URL string) *Store {
	return &Store{URL: URL, fs: afs.New()}
}

// Load reads the persisted blacklist. A missing document is not an error; it
// yields an empty set.
func (s *Store) Load(ctx context.Context) (map[string]bool, error) {
	blocked := make(map[string]bool)
	exists, err := s.fs.Exists(ctx, s.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to check blacklist at %v: %w", s.URL, err)
	}
	if !exists {
		return blocked, nil
	}
	data, err := s.fs.DownloadWithURL(ctx, s.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load blacklist from %v: %w", s.URL, err)
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid blacklist document at %v: %w", s.URL, err)
	}
	for _, command := range doc.BlockedCommands {
		blocked[command] = true
	}
	return blocked, nil
}

// Save rewrites the blacklist document with the supplied set.
func (s *Store) Save(ctx context.Context, blocked map[string]bool) error {
	doc := document{BlockedCommands: make([]string, 0, len(blocked))}
	for command := range blocked {
		doc.BlockedCommands = append(doc.BlockedCommands, command)
	}
	sort.Strings(doc.BlockedCommands)
	data, err := json.MarshalIndent(&doc, "", "  ")
	if err != nil {
		return err
	}
	return s.fs.Upload(ctx, s.URL, file.DefaultFileOsMode, bytes.NewReader(data))
}
