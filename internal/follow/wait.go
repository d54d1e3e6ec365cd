package follow

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/adamweingram/slurmtail/internal/utils"
)

// WaitFor blocks until path exists as a regular file, the timeout
// elapses, or ctx is canceled. timeout <= 0 waits forever.
//
// It watches the parent directory with fsnotify and polls at the given
// interval as well. The poll is not optional: parallel filesystems
// common on clusters (NFS, Lustre) do not deliver inotify events for
// writes from other nodes.
func WaitFor(ctx context.Context, path string, timeout, poll time.Duration) error {
	if utils.FileExists(path) {
		return nil
	}

	if poll <= 0 {
		poll = time.Second
	}

	var deadline <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	// nil channels when the watch cannot be set up; the select then
	// runs on polling alone
	var events <-chan fsnotify.Event
	var watchErrs <-chan error
	if watcher, err := fsnotify.NewWatcher(); err == nil {
		dir := filepath.Dir(path)
		if werr := watcher.Add(dir); werr == nil {
			defer watcher.Close()
			events = watcher.Events
			watchErrs = watcher.Errors
		} else {
			// Parent directory may not exist yet
			utils.PrintDebug("cannot watch %s: %v", dir, werr)
			watcher.Close()
		}
	} else {
		utils.PrintDebug("fsnotify unavailable: %v", err)
	}

	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-deadline:
			return fmt.Errorf("%w: %s", ErrWaitTimeout, path)

		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if ev.Name == path && utils.FileExists(path) {
				return nil
			}

		case werr, ok := <-watchErrs:
			if !ok {
				watchErrs = nil
				continue
			}
			utils.PrintDebug("watch error: %v", werr)

		case <-ticker.C:
			if utils.FileExists(path) {
				return nil
			}
		}
	}
}
