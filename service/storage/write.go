package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/viant/afs/file"
	"github.com/viant/afs/url"

	"github.com/commandant-mcp/commandant/model/types"
)

// WriteInput defines parameters for writing a file
type WriteInput struct {
	URL     string `json:"url" required:"true" description:"URL of the file to write"`
	Content string `json:"content" description:"full content to write; an existing file is replaced"`
}

// WriteOutput contains the written file metadata
type WriteOutput struct {
	Asset *Asset `json:"asset"`
}

// Write replaces the file at the URL with the supplied content, creating
// parent directories as needed.
func (s *Service) Write(ctx context.Context, input *WriteInput, output *WriteOutput) error {
	if input.URL == "" {
		return types.NewValidationError("url is required")
	}
	err := s.fs.Upload(ctx, input.URL, file.DefaultFileOsMode, bytes.NewReader([]byte(input.Content)))
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", input.URL, err)
	}
	object, err := s.fs.Object(ctx, input.URL)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", input.URL, err)
	}
	output.Asset = &Asset{
		URL:         input.URL,
		Name:        path.Base(input.URL),
		Mode:        object.Mode().String(),
		Size:        object.Size(),
		ModTime:     object.ModTime(),
		ContentType: contentTypeFor(url.Path(input.URL)),
	}
	return nil
}
