// Package follow waits for a scheduler log file to appear and streams
// its contents as the job writes them.
package follow

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/nxadm/tail"
)

// Options configures a Follow run.
type Options struct {
	// TailLines is how many trailing lines of an existing file to print
	// before streaming new output. <= 0 starts at the end of the file.
	TailLines int

	// IdleTimeout aborts the follow when no new line arrives for this
	// long. <= 0 follows forever.
	IdleTimeout time.Duration

	// Poll forces filesystem polling instead of inotify. Needed on
	// network filesystems where writes from other nodes fire no events.
	Poll bool

	// NoFollow prints the trailing lines and returns without streaming.
	NoFollow bool
}

// Follow prints the last Options.TailLines lines of the file at path to
// out, then streams appended lines until the context is canceled, the
// idle timeout fires, or the file goes away for good.
//
// The file must already exist; use WaitFor first.
func Follow(ctx context.Context, path string, out io.Writer, opts Options) error {
	offset, err := tailStartOffset(path, opts.TailLines)
	if err != nil {
		return fmt.Errorf("failed to read log file: %w", err)
	}

	t, err := tail.TailFile(path, tail.Config{
		Location:  &tail.SeekInfo{Offset: offset, Whence: io.SeekStart},
		Follow:    !opts.NoFollow,
		ReOpen:    !opts.NoFollow,
		Poll:      opts.Poll,
		MustExist: true,
		Logger:    tail.DiscardingLogger,
	})
	if err != nil {
		return fmt.Errorf("failed to tail log file: %w", err)
	}
	defer t.Cleanup()

	var idle *time.Timer
	var idleC <-chan time.Time
	if !opts.NoFollow && opts.IdleTimeout > 0 {
		idle = time.NewTimer(opts.IdleTimeout)
		defer idle.Stop()
		idleC = idle.C
	}

	for {
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()

		case <-idleC:
			t.Stop()
			return fmt.Errorf("%w: no output for %s", ErrIdleTimeout, opts.IdleTimeout)

		case line, ok := <-t.Lines:
			if !ok {
				// Channel closes when the tail stops; with NoFollow
				// that means the existing contents were printed.
				return t.Err()
			}
			if line.Err != nil {
				t.Stop()
				return fmt.Errorf("error while tailing: %w", line.Err)
			}
			fmt.Fprintln(out, line.Text)
			if idle != nil {
				if !idle.Stop() {
					<-idle.C
				}
				idle.Reset(opts.IdleTimeout)
			}
		}
	}
}
