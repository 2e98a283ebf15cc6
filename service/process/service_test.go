package process

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/gosh/runner"

	"github.com/commandant-mcp/commandant/internal/platform"
	"github.com/commandant-mcp/commandant/model/types"
)

type stubShell struct {
	stdout string
	status int
	err    error
	ran    string
}

func (s *stubShell) Run(ctx context.Context, command string, options ...runner.Option) (string, int, error) {
	s.ran = command
	return s.stdout, s.status, s.err
}

func TestParseProcessTable(t *testing.T) {
	var testCases = []struct {
		description string
		stdout      string
		expect      []ProcessInfo
		hasError    bool
	}{
		{
			description: "plain rows",
			stdout:      "  1 systemd 0.0 0.1\n 42 nginx 1.5 0.8\n",
			expect: []ProcessInfo{
				{Pid: 1, Command: "systemd", Cpu: 0.0, Memory: 0.1},
				{Pid: 42, Command: "nginx", Cpu: 1.5, Memory: 0.8},
			},
		},
		{
			description: "command with spaces",
			stdout:      "77 Google Chrome Helper 12.3 4.5",
			expect: []ProcessInfo{
				{Pid: 77, Command: "Google Chrome Helper", Cpu: 12.3, Memory: 4.5},
			},
		},
		{
			description: "blank lines ignored",
			stdout:      "\n\n9 sshd 0.0 0.0\n\n",
			expect:      []ProcessInfo{{Pid: 9, Command: "sshd"}},
		},
		{
			description: "too few columns",
			stdout:      "12 bash 0.1",
			hasError:    true,
		},
		{
			description: "non numeric pid",
			stdout:      "abc bash 0.1 0.2",
			hasError:    true,
		},
	}

	for _, testCase := range testCases {
		actual, err := parseProcessTable(testCase.stdout)
		if testCase.hasError {
			assert.Error(t, err, testCase.description)
			continue
		}
		assert.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
}

func TestService_List(t *testing.T) {
	shell := &stubShell{stdout: "1 init 0.0 0.1\n"}
	service := newService(platform.Detect(), DefaultConfig(), shell)

	output := &ListOutput{}
	err := service.List(context.Background(), &ListInput{}, output)
	assert.NoError(t, err)
	assert.Equal(t, service.caps.ListCommand, shell.ran)
	assert.Equal(t, []ProcessInfo{{Pid: 1, Command: "init", Memory: 0.1}}, output.Processes)
}

func TestService_ListFailures(t *testing.T) {
	var testCases = []struct {
		description string
		shell       *stubShell
	}{
		{
			description: "shell error",
			shell:       &stubShell{err: errors.New("no shell")},
		},
		{
			description: "non zero status",
			shell:       &stubShell{status: 1},
		},
		{
			description: "malformed output",
			shell:       &stubShell{stdout: "garbage"},
		},
	}
	for _, testCase := range testCases {
		service := newService(platform.Detect(), DefaultConfig(), testCase.shell)
		err := service.List(context.Background(), &ListInput{}, &ListOutput{})
		assert.Error(t, err, testCase.description)
		var system *types.SystemCommandError
		assert.ErrorAs(t, err, &system, testCase.description)
	}
}

func TestService_KillValidation(t *testing.T) {
	service := newService(platform.Detect(), DefaultConfig(), &stubShell{})
	err := service.Kill(context.Background(), &KillInput{Pid: 0}, &KillOutput{})
	var validation *types.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestService_Methods(t *testing.T) {
	service := newService(platform.Detect(), DefaultConfig(), &stubShell{})
	assert.Equal(t, Name, service.Name())
	for _, signature := range service.Methods() {
		executable, err := service.Method(signature.Name)
		assert.NoError(t, err)
		assert.NotNil(t, executable)
	}
	_, err := service.Method("unknown")
	assert.Error(t, err)
}
