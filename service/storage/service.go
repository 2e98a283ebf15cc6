// Package storage exposes file system operations over viant/afs URLs, so the
// same surface serves local files, memory backed test fixtures and remote
// schemes.
package storage

import (
	"github.com/viant/afs"
)

// Service provides file system operations using viant/afs
type Service struct {
	fs afs.Service
}

// New creates a new storage service
func New() *Service {
	return &Service{fs: afs.New()}
}
