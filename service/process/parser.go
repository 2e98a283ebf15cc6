package process

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var errUnsupportedPlatform = errors.New("process listing is not supported on this platform")

func errNonZeroStatus(status int) error {
	return fmt.Errorf("exited with status %d", status)
}

// parseProcessTable parses "pid command cpu mem" rows, one process per line.
// The command column may itself contain spaces, so the pid is taken from the
// front and the two usage columns from the back.
func parseProcessTable(stdout string) ([]ProcessInfo, error) {
	var processes []ProcessInfo
	for _, line := range strings.Split(stdout, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, fmt.Errorf("malformed process row %q", line)
		}
		pid, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("malformed pid in row %q: %w", line, err)
		}
		cpu, err := strconv.ParseFloat(fields[len(fields)-2], 64)
		if err != nil {
			return nil, fmt.Errorf("malformed cpu in row %q: %w", line, err)
		}
		memory, err := strconv.ParseFloat(fields[len(fields)-1], 64)
		if err != nil {
			return nil, fmt.Errorf("malformed memory in row %q: %w", line, err)
		}
		processes = append(processes, ProcessInfo{
			Pid:     pid,
			Command: strings.Join(fields[1:len(fields)-2], " "),
			Cpu:     cpu,
			Memory:  memory,
		})
	}
	return processes, nil
}
