package follow

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

func TestFollowNoFollowPrintsTail(t *testing.T) {
	path := writeLog(t, "one\ntwo\nthree\nfour\n")

	var buf strings.Builder
	err := Follow(context.Background(), path, &buf, Options{
		TailLines: 2,
		NoFollow:  true,
	})
	if err != nil {
		t.Fatalf("Follow: %v", err)
	}

	want := "three\nfour\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestFollowStreamsAppendedLines(t *testing.T) {
	path := writeLog(t, "old\n")

	go func() {
		time.Sleep(50 * time.Millisecond)
		f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return
		}
		defer f.Close()
		f.WriteString("new line 1\n")
		f.WriteString("new line 2\n")
	}()

	var buf strings.Builder
	err := Follow(context.Background(), path, &buf, Options{
		TailLines:   10,
		IdleTimeout: 500 * time.Millisecond,
		Poll:        true,
	})
	if !errors.Is(err, ErrIdleTimeout) {
		t.Fatalf("got err %v, want ErrIdleTimeout after output stops", err)
	}

	got := buf.String()
	for _, want := range []string{"old\n", "new line 1\n", "new line 2\n"} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q missing %q", got, want)
		}
	}
}

func TestFollowSurvivesTruncation(t *testing.T) {
	path := writeLog(t, "before 1\nbefore 2\n")

	go func() {
		time.Sleep(100 * time.Millisecond)
		// Truncate in place, the way a re-run job clobbers its own log
		os.WriteFile(path, []byte("after truncate\n"), 0644)
		time.Sleep(400 * time.Millisecond)
		f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return
		}
		defer f.Close()
		f.WriteString("appended after\n")
	}()

	var buf strings.Builder
	err := Follow(context.Background(), path, &buf, Options{
		TailLines:   10,
		IdleTimeout: time.Second,
		Poll:        true,
	})
	if !errors.Is(err, ErrIdleTimeout) {
		t.Fatalf("got err %v, want ErrIdleTimeout after output stops", err)
	}

	got := buf.String()
	for _, want := range []string{"after truncate\n", "appended after\n"} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q missing %q written after truncation", got, want)
		}
	}
}

func TestFollowSurvivesReplacement(t *testing.T) {
	path := writeLog(t, "old file\n")

	go func() {
		time.Sleep(100 * time.Millisecond)
		// Remove and recreate, the rotation case
		os.Remove(path)
		time.Sleep(400 * time.Millisecond)
		os.WriteFile(path, []byte("fresh file\n"), 0644)
	}()

	var buf strings.Builder
	err := Follow(context.Background(), path, &buf, Options{
		TailLines:   10,
		IdleTimeout: 2 * time.Second,
		Poll:        true,
	})
	if !errors.Is(err, ErrIdleTimeout) {
		t.Fatalf("got err %v, want ErrIdleTimeout after output stops", err)
	}

	if got := buf.String(); !strings.Contains(got, "fresh file\n") {
		t.Errorf("output %q missing line from the replacement file", got)
	}
}

func TestFollowIdleTimeout(t *testing.T) {
	path := writeLog(t, "quiet\n")

	var buf strings.Builder
	start := time.Now()
	err := Follow(context.Background(), path, &buf, Options{
		TailLines:   10,
		IdleTimeout: 100 * time.Millisecond,
		Poll:        true,
	})
	if !errors.Is(err, ErrIdleTimeout) {
		t.Fatalf("got err %v, want ErrIdleTimeout", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("idle timeout took %s, expected around 100ms", elapsed)
	}
}

func TestFollowCanceled(t *testing.T) {
	path := writeLog(t, "line\n")

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	var buf strings.Builder
	err := Follow(ctx, path, &buf, Options{
		TailLines: 10,
		Poll:      true,
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got err %v, want context.Canceled", err)
	}
}

func TestFollowMissingFile(t *testing.T) {
	var buf strings.Builder
	err := Follow(context.Background(), "/nonexistent/job.log", &buf, Options{TailLines: 5})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
