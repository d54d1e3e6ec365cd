package scheduler

import (
	"testing"

	"github.com/adamweingram/slurmtail/internal/config"
)

func TestActiveUsesConfiguredBinary(t *testing.T) {
	config.LoadDefaults()
	config.Global.SchedulerBin = "/opt/pbs/bin/qsub"
	t.Cleanup(func() {
		config.Global.SchedulerBin = ""
		ResetActive()
	})
	ResetActive()

	s, err := Active()
	if err != nil {
		t.Fatalf("Active: %v", err)
	}
	if s.Type() != TypePBS {
		t.Errorf("Active() type = %s, want PBS", s.Type())
	}

	// Resolution is cached for the rest of the run
	again, err := Active()
	if err != nil {
		t.Fatalf("Active (second call): %v", err)
	}
	if again != s {
		t.Error("Active() resolved a second time instead of returning the pinned backend")
	}
}

func TestSetActivePins(t *testing.T) {
	t.Cleanup(ResetActive)

	want := NewLSF()
	SetActive(want)

	got, err := Active()
	if err != nil {
		t.Fatalf("Active: %v", err)
	}
	if got != Scheduler(want) {
		t.Error("Active() did not return the pinned scheduler")
	}
}
