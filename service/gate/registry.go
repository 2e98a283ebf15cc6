package gate

import (
	"context"
	"reflect"
	"strings"

	"github.com/commandant-mcp/commandant/model/types"
)

const Name = "system/gate"

// BlockInput requests blocking a command
type BlockInput struct {
	Command string `json:"command" required:"true" description:"command name to block; only the first whitespace-delimited token is used"`
}

// BlockOutput reports a block mutation
type BlockOutput struct {
	Command        string `json:"command"`
	AlreadyBlocked bool   `json:"alreadyBlocked"`
}

// UnblockInput requests unblocking a command
type UnblockInput struct {
	Command string `json:"command" required:"true" description:"command name to unblock"`
}

// UnblockOutput reports an unblock mutation
type UnblockOutput struct {
	Command    string `json:"command"`
	WasBlocked bool   `json:"wasBlocked"`
}

// ListInput requests the current blacklist
type ListInput struct{}

// ListOutput carries the blacklist in lexicographic order
type ListOutput struct {
	Commands []string `json:"commands"`
}

func errEmptyCommand() error {
	return types.NewValidationError("command name is required")
}

func (s *Service) Name() string {
	return Name
}

func (s *Service) Methods() types.Signatures {
	return []types.Signature{
		{
			Name:        "block",
			Description: "Adds a command to the blacklist so it can no longer be executed; the change is persisted immediately",
			Input:       reflect.TypeOf(&BlockInput{}),
			Output:      reflect.TypeOf(&BlockOutput{}),
		},
		{
			Name:        "unblock",
			Description: "Removes a command from the blacklist; the change is persisted immediately",
			Input:       reflect.TypeOf(&UnblockInput{}),
			Output:      reflect.TypeOf(&UnblockOutput{}),
		},
		{
			Name:        "list",
			Description: "Lists blacklisted commands in lexicographic order",
			Input:       reflect.TypeOf(&ListInput{}),
			Output:      reflect.TypeOf(&ListOutput{}),
		},
	}
}

func (s *Service) block(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*BlockInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*BlockOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	return s.Block(ctx, input, output)
}

func (s *Service) unblock(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*UnblockInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*UnblockOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	return s.Unblock(ctx, input, output)
}

func (s *Service) list(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*ListInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*ListOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	return s.List(ctx, input, output)
}

// Method returns method by name
func (s *Service) Method(name string) (types.Executable, error) {
	switch strings.ToLower(name) {
	case "block":
		return s.block, nil
	case "unblock":
		return s.unblock, nil
	case "list":
		return s.list, nil
	default:
		return nil, types.NewMethodNotFoundError(name)
	}
}
