// Package edit applies conflict-marker search/replace blocks to files and
// reports the change as a unified diff.
package edit

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/viant/afs"
	"github.com/viant/afs/file"

	"github.com/commandant-mcp/commandant/model/types"
)

// Service applies edit blocks to afs-addressable files.
type Service struct {
	fs afs.Service
}

// New creates a new edit service
func New() *Service {
	return &Service{fs: afs.New()}
}

// Apply parses the edit block, replaces the first occurrence of its search
// text in the file and reports the resulting unified diff. A dry run computes
// the same diff without touching the file.
func (s *Service) Apply(ctx context.Context, input *ApplyInput, output *ApplyOutput) error {
	if input.URL == "" {
		return types.NewValidationError("url is required")
	}
	if strings.TrimSpace(input.Block) == "" {
		return types.NewValidationError("block is required")
	}
	block, err := ParseBlock(input.Block)
	if err != nil {
		return fmt.Errorf("invalid edit block: %w", err)
	}
	if block.Search == "" {
		return types.NewValidationError("search text must not be empty")
	}

	data, err := s.fs.DownloadWithURL(ctx, input.URL)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", input.URL, err)
	}
	content := string(data)
	if !strings.Contains(content, block.Search) {
		return fmt.Errorf("search text not found in %s", input.URL)
	}
	edited := strings.Replace(content, block.Search, block.Replace, 1)

	diff, err := unifiedDiff(input.URL, content, edited)
	if err != nil {
		return err
	}

	if !input.DryRun {
		err = s.fs.Upload(ctx, input.URL, file.DefaultFileOsMode, bytes.NewReader([]byte(edited)))
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", input.URL, err)
		}
	}

	output.URL = input.URL
	output.Replacements = 1
	output.Diff = diff
	output.DryRun = input.DryRun
	return nil
}

func unifiedDiff(URL, before, after string) (string, error) {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: URL,
		ToFile:   URL,
		Context:  3,
	})
	if err != nil {
		return "", fmt.Errorf("failed to compute diff: %w", err)
	}
	return diff, nil
}
