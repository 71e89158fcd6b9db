package process

import (
	"errors"
	"testing"
)

// Real process termination is left to the browser tests; only the guards
// and a PID that cannot exist are checked here.
func TestKillTree(t *testing.T) {
	t.Parallel()

	for _, pid := range []int{0, -1} {
		if err := KillTree(pid); !errors.Is(err, ErrInvalidPID) {
			t.Errorf("KillTree(%d) = %v, want ErrInvalidPID", pid, err)
		}
	}

	if err := KillTree(999999999); err == nil {
		t.Error("KillTree on a missing process should fail")
	}
}
