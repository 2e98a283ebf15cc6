package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/commandant-mcp/commandant"
	"github.com/commandant-mcp/commandant/service/dispatcher"
)

func newTestServer(t *testing.T, blacklistURL string) *Server {
	t.Helper()
	core, err := commandant.New(context.Background(),
		commandant.WithBlacklistURL(blacklistURL),
		commandant.WithDispatcherOptions(dispatcher.WithListener(nil)))
	assert.NoError(t, err)
	return New("commandant-test", core.Dispatcher())
}

func TestServer_ExecuteCommandTool(t *testing.T) {
	server := newTestServer(t, "mem://localhost/server-test/execute/blacklist.json")

	_, result, err := server.executeCommand(context.Background(), nil, ExecuteCommandInput{
		Command:   "echo from-tool",
		TimeoutMs: 5000,
	})
	assert.NoError(t, err)
	assert.True(t, result.Pid > 0)
	assert.False(t, result.IsBlocked)
	assert.Contains(t, result.Output, "from-tool")
}

func TestServer_BlockedCommandToolError(t *testing.T) {
	ctx := context.Background()
	server := newTestServer(t, "mem://localhost/server-test/gate/blacklist.json")

	_, blocked, err := server.blockCommand(ctx, nil, BlockCommandInput{Command: "rm"})
	assert.NoError(t, err)
	assert.False(t, blocked.AlreadyBlocked)

	_, _, err = server.executeCommand(ctx, nil, ExecuteCommandInput{Command: "rm -rf /tmp/server-test"})
	assert.Error(t, err)

	_, listed, err := server.listBlockedCommands(ctx, nil, ListBlockedCommandsInput{})
	assert.NoError(t, err)
	assert.Equal(t, []string{"rm"}, listed.Commands)

	_, unblocked, err := server.unblockCommand(ctx, nil, UnblockCommandInput{Command: "rm"})
	assert.NoError(t, err)
	assert.True(t, unblocked.WasBlocked)
}

func TestServer_SessionLifecycleTools(t *testing.T) {
	ctx := context.Background()
	server := newTestServer(t, "mem://localhost/server-test/sessions/blacklist.json")

	_, executed, err := server.executeCommand(ctx, nil, ExecuteCommandInput{
		Command:   "sleep 30",
		TimeoutMs: 50,
	})
	assert.NoError(t, err)
	assert.True(t, executed.IsBlocked)

	_, sessions, err := server.listSessions(ctx, nil, ListSessionsInput{})
	assert.NoError(t, err)
	assert.Len(t, sessions.Sessions, 1)
	assert.Equal(t, executed.Pid, sessions.Sessions[0].Pid)

	_, terminated, err := server.forceTerminate(ctx, nil, ForceTerminateInput{Pid: executed.Pid})
	assert.NoError(t, err)
	assert.True(t, terminated.Success)

	_, missing, err := server.forceTerminate(ctx, nil, ForceTerminateInput{Pid: 999999})
	assert.NoError(t, err)
	assert.False(t, missing.Success)
}

func TestServer_ReadOutputUnknownPid(t *testing.T) {
	server := newTestServer(t, "mem://localhost/server-test/output/blacklist.json")
	_, _, err := server.readOutput(context.Background(), nil, ReadOutputInput{Pid: 999999})
	assert.Error(t, err)
}

func TestServer_FileTools(t *testing.T) {
	ctx := context.Background()
	server := newTestServer(t, "mem://localhost/server-test/files/blacklist.json")
	path := "mem://localhost/server-test/files/config.yaml"

	_, written, err := server.writeFile(ctx, nil, WriteFileInput{Path: path, Content: "port: 8080\n"})
	assert.NoError(t, err)
	assert.Equal(t, int64(len("port: 8080\n")), written.Size)

	_, read, err := server.readFile(ctx, nil, ReadFileInput{Path: path})
	assert.NoError(t, err)
	assert.Equal(t, "port: 8080\n", read.Content)

	_, edited, err := server.editBlock(ctx, nil, EditBlockInput{
		Path:  path,
		Block: "<<<<<<< SEARCH\nport: 8080\n=======\nport: 9090\n>>>>>>> REPLACE",
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, edited.Replacements)
	assert.Contains(t, edited.Diff, "+port: 9090")

	_, listed, err := server.listDirectory(ctx, nil, ListDirectoryInput{Path: "mem://localhost/server-test/files"})
	assert.NoError(t, err)
	var names []string
	for _, entry := range listed.Entries {
		names = append(names, entry.Name)
	}
	assert.Contains(t, names, "config.yaml")
}
