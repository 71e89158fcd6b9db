//go:build !windows

package process

import (
	"fmt"
	"syscall"
)

// KillTree sends SIGKILL to the process group led by pid, which takes the
// browser and its renderer children down together.
func KillTree(pid int) error {
	if pid <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPID, pid)
	}
	return syscall.Kill(-pid, syscall.SIGKILL)
}
