package gate

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestGate(t *testing.T) (*Service, *Store) {
	t.Helper()
	store := NewStore(fmt.Sprintf("mem://localhost/gate/%v/config.json", t.Name()))
	service, err := New(context.Background(), store)
	if !assert.NoError(t, err) {
		t.FailNow()
	}
	return service, store
}

func TestService_Allowed(t *testing.T) {
	service, _ := newTestGate(t)
	ctx := context.Background()

	var blocked BlockOutput
	err := service.Block(ctx, &BlockInput{Command: "RM"}, &blocked)
	assert.NoError(t, err)
	assert.False(t, blocked.AlreadyBlocked)
	assert.Equal(t, "rm", blocked.Command)

	testCases := []struct {
		description string
		commandLine string
		expect      bool
	}{
		{description: "blocked base token", commandLine: "rm -rf /", expect: false},
		{description: "blocked base token uppercase", commandLine: "RM file.txt", expect: false},
		{description: "allowed command", commandLine: "ls -la", expect: true},
		{description: "blocked token as argument", commandLine: "echo rm", expect: true},
		{description: "empty command line", commandLine: "   ", expect: false},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, service.Allowed(testCase.commandLine), testCase.description)
	}
}

func TestService_BlockIdempotent(t *testing.T) {
	service, store := newTestGate(t)
	ctx := context.Background()

	var first, second BlockOutput
	assert.NoError(t, service.Block(ctx, &BlockInput{Command: "sudo"}, &first))
	assert.NoError(t, service.Block(ctx, &BlockInput{Command: "sudo reboot"}, &second))
	assert.False(t, first.AlreadyBlocked)
	assert.True(t, second.AlreadyBlocked)

	persisted, err := store.Load(ctx)
	assert.NoError(t, err)
	assert.Len(t, persisted, 1)
}

func TestService_Unblock(t *testing.T) {
	service, store := newTestGate(t)
	ctx := context.Background()

	var notBlocked UnblockOutput
	assert.NoError(t, service.Unblock(ctx, &UnblockInput{Command: "curl"}, &notBlocked))
	assert.False(t, notBlocked.WasBlocked)

	var blocked BlockOutput
	assert.NoError(t, service.Block(ctx, &BlockInput{Command: "curl"}, &blocked))
	assert.False(t, service.Allowed("curl http://example.com"))

	var unblocked UnblockOutput
	assert.NoError(t, service.Unblock(ctx, &UnblockInput{Command: "CURL"}, &unblocked))
	assert.True(t, unblocked.WasBlocked)
	assert.True(t, service.Allowed("curl http://example.com"))

	persisted, err := store.Load(ctx)
	assert.NoError(t, err)
	assert.Empty(t, persisted)
}

func TestService_List(t *testing.T) {
	service, _ := newTestGate(t)
	ctx := context.Background()

	for _, command := range []string{"rm", "dd", "mkfs"} {
		var out BlockOutput
		assert.NoError(t, service.Block(ctx, &BlockInput{Command: command}, &out))
	}

	var listed ListOutput
	assert.NoError(t, service.List(ctx, &ListInput{}, &listed))
	assert.Equal(t, []string{"dd", "mkfs", "rm"}, listed.Commands)
}

func TestService_PersistenceRoundTrip(t *testing.T) {
	service, store := newTestGate(t)
	ctx := context.Background()

	var out BlockOutput
	assert.NoError(t, service.Block(ctx, &BlockInput{Command: "shutdown"}, &out))

	reloaded, err := New(ctx, store)
	assert.NoError(t, err)
	assert.False(t, reloaded.Allowed("shutdown -h now"))
}
