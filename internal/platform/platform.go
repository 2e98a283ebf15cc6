// Package platform resolves OS specific behaviour once at startup into a
// small capability table, so the services never branch on the OS inline.
package platform

import (
	"os"
	"runtime"
	"syscall"
)

// Kind identifies the platform family relevant to process handling.
type Kind string

const (
	KindPosix   Kind = "posix"
	KindWindows Kind = "windows"
)

// Capabilities describes how to run a shell command, list processes and
// signal processes on the current platform.
type Capabilities struct {
	Kind Kind

	// Shell is the shell invocation prefix the command line is appended to,
	// e.g. {"/bin/sh", "-c"}.
	Shell []string

	// ListCommand produces one process per line as "pid command cpu mem";
	// empty when the platform has no supported listing command.
	ListCommand string

	// Interrupt is the graceful signal sent before escalating to a kill.
	Interrupt os.Signal

	// Terminate is the polite signal for processes outside the session
	// model.
	Terminate os.Signal
}

// Detect resolves the capability table for the current operating system.
func Detect() Capabilities {
	return detect(runtime.GOOS)
}

func detect(goos string) Capabilities {
	if goos == "windows" {
		return Capabilities{
			Kind:  KindWindows,
			Shell: []string{"cmd", "/C"},
			// tasklist output is not parsed; listing is unsupported here.
			ListCommand: "",
			Interrupt:   os.Kill,
			Terminate:   os.Kill,
		}
	}
	return Capabilities{
		Kind:        KindPosix,
		Shell:       []string{"/bin/sh", "-c"},
		ListCommand: "ps -axo pid=,comm=,%cpu=,%mem=",
		Interrupt:   os.Interrupt,
		Terminate:   syscall.SIGTERM,
	}
}
