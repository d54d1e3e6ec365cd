package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/adamweingram/slurmtail/internal/scheduler"
)

func writeTestScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "job.sh")
	if err := os.WriteFile(path, []byte(content), 0755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}
	return path
}

func TestSchedulerCommandInspectsScript(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{
			name: "slurm",
			script: `#!/bin/bash
#SBATCH --job-name=train
#SBATCH --output=train-%j.out
srun ./train
`,
		},
		{
			name: "pbs",
			script: `#!/bin/bash
#PBS -o run.log
./run
`,
		},
		{
			name: "lsf",
			script: `#!/bin/bash
#BSUB -o out.%J.log
./run
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := []string{writeTestScript(t, tt.script)}
			if err := schedulerCmd.RunE(schedulerCmd, args); err != nil {
				t.Fatalf("scheduler command on %s script: %v", tt.name, err)
			}
		})
	}
}

func TestSchedulerCommandRejectsDirectivelessScript(t *testing.T) {
	path := writeTestScript(t, "#!/bin/bash\ntrue\n")
	err := schedulerCmd.RunE(schedulerCmd, []string{path})
	if !errors.Is(err, scheduler.ErrNoOutputDirective) {
		t.Fatalf("got err %v, want ErrNoOutputDirective", err)
	}
}
