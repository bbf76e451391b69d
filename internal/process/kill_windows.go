//go:build windows

package process

import (
	"fmt"
	"os/exec"
	"strconv"
)

// KillProcessGroup kills pid and its child processes with taskkill.
// /F forces termination, /T walks the process tree.
func KillProcessGroup(pid int) error {
	if pid <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPID, pid)
	}
	if err := exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run(); err != nil {
		return fmt.Errorf("killing process tree %d: %w", pid, err)
	}
	return nil
}
