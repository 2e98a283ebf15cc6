package server

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/commandant-mcp/commandant/service/edit"
	"github.com/commandant-mcp/commandant/service/storage"
)

// ListDirectoryInput is the list_directory tool input.
type ListDirectoryInput struct {
	Path      string `json:"path" jsonschema:"directory path or URL to list"`
	Recursive bool   `json:"recursive,omitempty" jsonschema:"descend into subdirectories"`
}

// DirectoryEntry describes one listed file or directory.
type DirectoryEntry struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	IsDir bool   `json:"isDir"`
	Size  int64  `json:"size,omitempty"`
}

// ListDirectoryResult lists directory entries.
type ListDirectoryResult struct {
	Entries []DirectoryEntry `json:"entries"`
}

// ReadFileInput is the read_file tool input.
type ReadFileInput struct {
	Path string `json:"path" jsonschema:"file path or URL to read"`
}

// ReadFileResult carries a file's full content.
type ReadFileResult struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// WriteFileInput is the write_file tool input.
type WriteFileInput struct {
	Path    string `json:"path" jsonschema:"file path or URL to write"`
	Content string `json:"content" jsonschema:"full content; an existing file is replaced"`
}

// WriteFileResult reports a completed write.
type WriteFileResult struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// EditBlockInput is the edit_block tool input.
type EditBlockInput struct {
	Path   string `json:"path" jsonschema:"file path or URL to edit"`
	Block  string `json:"block" jsonschema:"edit block in '<<<<<<< SEARCH / ======= / >>>>>>> REPLACE' form"`
	DryRun bool   `json:"dryRun,omitempty" jsonschema:"preview the diff without writing the file"`
}

// EditBlockResult reports an applied or previewed edit.
type EditBlockResult struct {
	Path         string `json:"path"`
	Replacements int    `json:"replacements"`
	Diff         string `json:"diff" jsonschema:"unified diff of the change"`
	DryRun       bool   `json:"dryRun,omitempty"`
}

func (s *Server) registerFileTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_directory",
		Description: "List files and directories at a path",
	}, s.listDirectory)
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "read_file",
		Description: "Read the full content of a file",
	}, s.readFile)
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "write_file",
		Description: "Write a file, replacing any existing content",
	}, s.writeFile)
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "edit_block",
		Description: "Apply a search/replace edit block to a file and return the unified diff; dryRun previews without writing",
	}, s.editBlock)
}

func (s *Server) listDirectory(ctx context.Context, _ *mcp.CallToolRequest, input ListDirectoryInput) (*mcp.CallToolResult, ListDirectoryResult, error) {
	out, err := s.dispatcher.Invoke(ctx, storage.Name, "list", &storage.ListInput{
		URL:       input.Path,
		Recursive: input.Recursive,
	})
	if err != nil {
		return nil, ListDirectoryResult{}, err
	}
	listed := out.(*storage.ListOutput)
	entries := make([]DirectoryEntry, 0, len(listed.Assets))
	for _, asset := range listed.Assets {
		entries = append(entries, DirectoryEntry{
			Name:  asset.Name,
			Path:  asset.URL,
			IsDir: asset.IsDir,
			Size:  asset.Size,
		})
	}
	return nil, ListDirectoryResult{Entries: entries}, nil
}

func (s *Server) readFile(ctx context.Context, _ *mcp.CallToolRequest, input ReadFileInput) (*mcp.CallToolResult, ReadFileResult, error) {
	out, err := s.dispatcher.Invoke(ctx, storage.Name, "read", &storage.ReadInput{URL: input.Path})
	if err != nil {
		return nil, ReadFileResult{}, err
	}
	read := out.(*storage.ReadOutput)
	return nil, ReadFileResult{Path: input.Path, Content: read.Content}, nil
}

func (s *Server) writeFile(ctx context.Context, _ *mcp.CallToolRequest, input WriteFileInput) (*mcp.CallToolResult, WriteFileResult, error) {
	out, err := s.dispatcher.Invoke(ctx, storage.Name, "write", &storage.WriteInput{
		URL:     input.Path,
		Content: input.Content,
	})
	if err != nil {
		return nil, WriteFileResult{}, err
	}
	written := out.(*storage.WriteOutput)
	return nil, WriteFileResult{Path: input.Path, Size: written.Asset.Size}, nil
}

func (s *Server) editBlock(ctx context.Context, _ *mcp.CallToolRequest, input EditBlockInput) (*mcp.CallToolResult, EditBlockResult, error) {
	out, err := s.dispatcher.Invoke(ctx, edit.Name, "apply", &edit.ApplyInput{
		URL:    input.Path,
		Block:  input.Block,
		DryRun: input.DryRun,
	})
	if err != nil {
		return nil, EditBlockResult{}, err
	}
	applied := out.(*edit.ApplyOutput)
	return nil, EditBlockResult{
		Path:         applied.URL,
		Replacements: applied.Replacements,
		Diff:         applied.Diff,
		DryRun:       applied.DryRun,
	}, nil
}
