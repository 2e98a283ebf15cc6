package edit

import (
	"context"
	"reflect"
	"strings"

	"github.com/commandant-mcp/commandant/model/types"
)

const Name = "system/edit"

// ApplyInput defines parameters for applying an edit block
type ApplyInput struct {
	URL    string `json:"url" required:"true" description:"URL of the file to edit"`
	Block  string `json:"block" required:"true" description:"edit block in '<<<<<<< SEARCH / ======= / >>>>>>> REPLACE' form"`
	DryRun bool   `json:"dryRun,omitempty" description:"compute the diff without writing the file"`
}

// ApplyOutput reports an applied (or simulated) edit
type ApplyOutput struct {
	URL          string `json:"url"`
	Replacements int    `json:"replacements"`
	Diff         string `json:"diff"`
	DryRun       bool   `json:"dryRun,omitempty"`
}

func (s *Service) Name() string {
	return Name
}

func (s *Service) Methods() types.Signatures {
	return []types.Signature{
		{
			Name:        "apply",
			Description: "Applies a search/replace edit block to a file and returns the unified diff; dry run previews without writing",
			Input:       reflect.TypeOf(&ApplyInput{}),
			Output:      reflect.TypeOf(&ApplyOutput{}),
		},
	}
}

func (s *Service) apply(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*ApplyInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*ApplyOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	return s.Apply(ctx, input, output)
}

// Method returns method by name
func (s *Service) Method(name string) (types.Executable, error) {
	switch strings.ToLower(name) {
	case "apply":
		return s.apply, nil
	default:
		return nil, types.NewMethodNotFoundError(name)
	}
}
