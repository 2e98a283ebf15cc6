package storage

import (
	"context"
	"reflect"
	"strings"

	"github.com/commandant-mcp/commandant/model/types"
)

const Name = "system/storage"

func (s *Service) Name() string {
	return Name
}

func (s *Service) Methods() types.Signatures {
	return []types.Signature{
		{
			Name:        "list",
			Description: "Lists files and directories at a URL with name, size and directory flag",
			Input:       reflect.TypeOf(&ListInput{}),
			Output:      reflect.TypeOf(&ListOutput{}),
		},
		{
			Name:        "read",
			Description: "Reads the full content of a file",
			Input:       reflect.TypeOf(&ReadInput{}),
			Output:      reflect.TypeOf(&ReadOutput{}),
		},
		{
			Name:        "write",
			Description: "Writes a file, replacing any existing content and creating parent directories",
			Input:       reflect.TypeOf(&WriteInput{}),
			Output:      reflect.TypeOf(&WriteOutput{}),
		},
		{
			Name:        "move",
			Description: "Moves or renames a file or directory",
			Input:       reflect.TypeOf(&MoveInput{}),
			Output:      reflect.TypeOf(&MoveOutput{}),
		},
	}
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

func (s *Service) read(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*ReadInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*ReadOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	return s.Read(ctx, input, output)
}

func (s *Service) write(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*WriteInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*WriteOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	return s.Write(ctx, input, output)
}

func (s *Service) move(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*MoveInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*MoveOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	return s.Move(ctx, input, output)
}

// Method returns method by name
func (s *Service) Method(name string) (types.Executable, error) {
	switch strings.ToLower(name) {
	case "list":
		return s.list, nil
	case "read":
		return s.read, nil
	case "write":
		return s.write, nil
	case "move":
		return s.move, nil
	default:
		return nil, types.NewMethodNotFoundError(name)
	}
}
