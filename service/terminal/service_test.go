package terminal

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/commandant-mcp/commandant/internal/platform"
	"github.com/commandant-mcp/commandant/model/types"
)

type guardFunc func(string) bool

func (g guardFunc) Allowed(commandLine string) bool {
	return g(commandLine)
}

var allowAll = guardFunc(func(string) bool { return true })

func newTestService(guard Guard) *Service {
	return New(guard, platform.Detect(), DefaultConfig())
}

// pollOutput drains repeatedly until the predicate accepts the accumulated
// state or the deadline passes.
func pollOutput(t *testing.T, service *Service, pid int, accept func(*OutputOutput, string) bool) (*OutputOutput, string) {
	t.Helper()
	var collected strings.Builder
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		output := &OutputOutput{}
		err := service.Output(context.Background(), &OutputInput{Pid: pid}, output)
		if err == nil {
			collected.WriteString(output.Output)
			if accept(output, collected.String()) {
				return output, collected.String()
			}
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("session %d did not reach expected state", pid)
	return nil, ""
}

func TestService_ExecuteValidation(t *testing.T) {
	service := newTestService(allowAll)

	err := service.Execute(context.Background(), &ExecuteInput{Command: "   "}, &ExecuteOutput{})
	assert.Error(t, err)
	var validation *types.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestService_ExecuteBlockedCommand(t *testing.T) {
	service := newTestService(guardFunc(func(string) bool { return false }))

	err := service.Execute(context.Background(), &ExecuteInput{Command: "rm -rf /tmp/x"}, &ExecuteOutput{})
	assert.Error(t, err)
	var security *types.SecurityError
	assert.ErrorAs(t, err, &security)
}

func TestService_ExecuteCompletes(t *testing.T) {
	service := newTestService(allowAll)

	output := &ExecuteOutput{}
	err := service.Execute(context.Background(), &ExecuteInput{Command: "echo hello", TimeoutMs: 5000}, output)
	assert.NoError(t, err)
	assert.True(t, output.Pid > 0)
	assert.False(t, output.Blocked)
	assert.Contains(t, output.Output, "hello")

	// A session that completed in the foreground is gone.
	err = service.Output(context.Background(), &OutputInput{Pid: output.Pid}, &OutputOutput{})
	var notFound *types.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestService_ExecuteTimesOut(t *testing.T) {
	service := newTestService(allowAll)

	output := &ExecuteOutput{}
	err := service.Execute(context.Background(), &ExecuteInput{Command: "echo early; sleep 2", TimeoutMs: 300}, output)
	assert.NoError(t, err)
	assert.True(t, output.Blocked)
	assert.Contains(t, output.Output, "early")

	sessions := &SessionsOutput{}
	assert.NoError(t, service.Sessions(context.Background(), &SessionsInput{}, sessions))
	assert.Len(t, sessions.Sessions, 1)
	assert.Equal(t, output.Pid, sessions.Sessions[0].Pid)
	assert.True(t, sessions.Sessions[0].Blocked)
	assert.Equal(t, "echo early; sleep 2", sessions.Sessions[0].Command)
}

func TestService_OutputResidue(t *testing.T) {
	service := newTestService(allowAll)

	executed := &ExecuteOutput{}
	err := service.Execute(context.Background(), &ExecuteInput{Command: "sleep 0.2; echo late", TimeoutMs: 50}, executed)
	assert.NoError(t, err)
	assert.True(t, executed.Blocked)

	final, collected := pollOutput(t, service, executed.Pid, func(out *OutputOutput, _ string) bool {
		return out.Completed
	})
	assert.Contains(t, collected, "late")
	assert.NotNil(t, final.ExitCode)
	assert.Equal(t, 0, *final.ExitCode)
	assert.True(t, final.RuntimeMs >= 0)

	// The residue is delivered exactly once.
	err = service.Output(context.Background(), &OutputInput{Pid: executed.Pid}, &OutputOutput{})
	var notFound *types.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestService_OutputDrainIsDestructive(t *testing.T) {
	service := newTestService(allowAll)

	executed := &ExecuteOutput{}
	err := service.Execute(context.Background(), &ExecuteInput{Command: "echo first; sleep 2", TimeoutMs: 50}, executed)
	assert.NoError(t, err)
	assert.True(t, executed.Blocked)

	pollOutput(t, service, executed.Pid, func(_ *OutputOutput, collected string) bool {
		return strings.Contains(collected, "first")
	})

	// Everything already delivered; a further drain of the live session is
	// empty.
	again := &OutputOutput{}
	assert.NoError(t, service.Output(context.Background(), &OutputInput{Pid: executed.Pid}, again))
	assert.Equal(t, "", again.Output)
	assert.False(t, again.Completed)
}

func TestService_TerminateUnknown(t *testing.T) {
	service := newTestService(allowAll)

	output := &TerminateOutput{}
	err := service.Terminate(context.Background(), &TerminateInput{Pid: 999999}, output)
	assert.NoError(t, err)
	assert.False(t, output.Success)
}

func TestService_Terminate(t *testing.T) {
	service := newTestService(allowAll)

	executed := &ExecuteOutput{}
	err := service.Execute(context.Background(), &ExecuteInput{Command: "sleep 30", TimeoutMs: 50}, executed)
	assert.NoError(t, err)
	assert.True(t, executed.Blocked)

	terminated := &TerminateOutput{}
	assert.NoError(t, service.Terminate(context.Background(), &TerminateInput{Pid: executed.Pid}, terminated))
	assert.True(t, terminated.Success)

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		sessions := &SessionsOutput{}
		assert.NoError(t, service.Sessions(context.Background(), &SessionsInput{}, sessions))
		if len(sessions.Sessions) == 0 {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("session %d survived termination", executed.Pid)
}

func TestService_CompletedEviction(t *testing.T) {
	config := DefaultConfig()
	config.RetainCompleted = 2
	service := New(allowAll, platform.Detect(), config)

	var pids []int
	for i := 0; i < 3; i++ {
		executed := &ExecuteOutput{}
		err := service.Execute(context.Background(), &ExecuteInput{Command: "sleep 0.1; echo gone", TimeoutMs: 20}, executed)
		assert.NoError(t, err)
		assert.True(t, executed.Blocked)
		pids = append(pids, executed.Pid)
		waitGone(t, service, executed.Pid)
	}

	// With a capacity of two, the first record has been evicted by the third.
	err := service.Output(context.Background(), &OutputInput{Pid: pids[0]}, &OutputOutput{})
	var notFound *types.NotFoundError
	assert.ErrorAs(t, err, &notFound)

	kept := &OutputOutput{}
	assert.NoError(t, service.Output(context.Background(), &OutputInput{Pid: pids[1]}, kept))
	assert.True(t, kept.Completed)
	assert.Contains(t, kept.Output, "gone")
}

// waitGone polls until the session has left the active table, without
// draining its output.
func waitGone(t *testing.T, service *Service, pid int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		sessions := &SessionsOutput{}
		assert.NoError(t, service.Sessions(context.Background(), &SessionsInput{}, sessions))
		active := false
		for _, info := range sessions.Sessions {
			if info.Pid == pid {
				active = true
			}
		}
		if !active {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("session %d never exited", pid)
}

func TestService_Methods(t *testing.T) {
	service := newTestService(allowAll)
	assert.Equal(t, Name, service.Name())
	for _, signature := range service.Methods() {
		executable, err := service.Method(signature.Name)
		assert.NoError(t, err)
		assert.NotNil(t, executable)
	}
	_, err := service.Method("unknown")
	assert.Error(t, err)
}
