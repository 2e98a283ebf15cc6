package storage

import (
	"context"
	"fmt"
	"path"

	"github.com/viant/afs/url"

	"github.com/commandant-mcp/commandant/model/types"
)

// ReadInput defines parameters for reading a file
type ReadInput struct {
	URL string `json:"url" required:"true" description:"URL of the file to read"`
}

// ReadOutput contains the file content and metadata
type ReadOutput struct {
	Asset   *Asset `json:"asset"`
	Content string `json:"content"`
}

// Read downloads a single file; directories are rejected.
func (s *Service) Read(ctx context.Context, input *ReadInput, output *ReadOutput) error {
	if input.URL == "" {
		return types.NewValidationError("url is required")
	}
	object, err := s.fs.Object(ctx, input.URL)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", input.URL, err)
	}
	if object.IsDir() {
		return fmt.Errorf("cannot read directory %s, use list instead", input.URL)
	}
	data, err := s.fs.DownloadWithURL(ctx, input.URL)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", input.URL, err)
	}
	output.Asset = &Asset{
		URL:         input.URL,
		Name:        path.Base(input.URL),
		Mode:        object.Mode().String(),
		Size:        object.Size(),
		ModTime:     object.ModTime(),
		ContentType: contentTypeFor(url.Path(input.URL)),
	}
	output.Content = string(data)
	return nil
}
