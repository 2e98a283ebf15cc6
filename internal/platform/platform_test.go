package platform

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	posix := detect("linux")
	assert.Equal(t, KindPosix, posix.Kind)
	assert.Equal(t, []string{"/bin/sh", "-c"}, posix.Shell)
	assert.NotEmpty(t, posix.ListCommand)
	assert.Equal(t, os.Interrupt, posix.Interrupt)

	darwin := detect("darwin")
	assert.Equal(t, KindPosix, darwin.Kind)

	windows := detect("windows")
	assert.Equal(t, KindWindows, windows.Kind)
	assert.Equal(t, []string{"cmd", "/C"}, windows.Shell)
	assert.Empty(t, windows.ListCommand)
}
