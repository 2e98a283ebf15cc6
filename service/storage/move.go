package storage

import (
	"context"
	"fmt"

	"github.com/commandant-mcp/commandant/model/types"
)

// MoveInput defines parameters for moving an asset
type MoveInput struct {
	Source string `json:"source" required:"true" description:"URL of the asset to move"`
	Dest   string `json:"dest" required:"true" description:"destination URL"`
}

// MoveOutput reports a completed move
type MoveOutput struct {
	Source string `json:"source"`
	Dest   string `json:"dest"`
}

// Move relocates a file or directory.
func (s *Service) Move(ctx context.Context, input *MoveInput, output *MoveOutput) error {
	if input.Source == "" || input.Dest == "" {
		return types.NewValidationError("source and dest are required")
	}
	exists, err := s.fs.Exists(ctx, input.Source)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", input.Source, err)
	}
	if !exists {
		return fmt.Errorf("source does not exist: %s", input.Source)
	}
	if err := s.fs.Move(ctx, input.Source, input.Dest); err != nil {
		return fmt.Errorf("failed to move %s to %s: %w", input.Source, input.Dest, err)
	}
	output.Source = input.Source
	output.Dest = input.Dest
	return nil
}
