package scheduler

import (
	"sync"

	"github.com/adamweingram/slurmtail/internal/config"
	"github.com/adamweingram/slurmtail/internal/utils"
)

var (
	activeMu  sync.RWMutex
	activeSch Scheduler
)

// SetActive pins the scheduler used by subsequent Active() calls.
// Mainly useful for tests and for the --scheduler flag.
func SetActive(s Scheduler) {
	activeMu.Lock()
	defer activeMu.Unlock()
	activeSch = s
}

// Active returns the scheduler for this run, resolving it on first use.
// Resolution order: previously pinned backend, explicitly configured
// submit binary, then PATH detection.
func Active() (Scheduler, error) {
	activeMu.RLock()
	s := activeSch
	activeMu.RUnlock()
	if s != nil {
		return s, nil
	}

	activeMu.Lock()
	defer activeMu.Unlock()
	if activeSch != nil {
		return activeSch, nil
	}

	var (
		resolved Scheduler
		err      error
	)
	if bin := config.Global.SchedulerBin; bin != "" {
		resolved, err = DetectSchedulerWithBinary(bin)
	} else {
		resolved, err = DetectScheduler()
	}
	if err != nil {
		return nil, err
	}

	utils.PrintDebug("Active scheduler: %s", resolved.Type())
	activeSch = resolved
	return activeSch, nil
}

// ResetActive clears the pinned scheduler. Test helper.
func ResetActive() {
	activeMu.Lock()
	defer activeMu.Unlock()
	activeSch = nil
}
