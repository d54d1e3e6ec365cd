package scheduler

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "job.sh")
	if err := os.WriteFile(path, []byte(content), 0755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}
	return path
}

func TestSlurmReadJobScript(t *testing.T) {
	tests := []struct {
		name       string
		script     string
		wantOutput string
		wantName   string
		wantErr    error
	}{
		{
			name: "long option with equals",
			script: `#!/bin/bash
#SBATCH --job-name=train
#SBATCH --output=logs/train-%j.out
srun python train.py
`,
			wantOutput: "logs/train-%j.out",
			wantName:   "train",
		},
		{
			name: "long option with space",
			script: `#!/bin/bash
#SBATCH --output logs/run.log
echo hi
`,
			wantOutput: "logs/run.log",
		},
		{
			name: "short options",
			script: `#!/bin/bash
#SBATCH -J myjob
#SBATCH -o out-%x-%j.txt
sleep 1
`,
			wantOutput: "out-%x-%j.txt",
			wantName:   "myjob",
		},
		{
			name: "quoted value with inline comment",
			script: `#!/bin/bash
#SBATCH --output="result.log" # keep in cwd
true
`,
			wantOutput: "result.log",
		},
		{
			name: "directive after first command is ignored",
			script: `#!/bin/bash
module load gcc
#SBATCH --output=ignored.log
`,
			wantErr: ErrNoOutputDirective,
		},
		{
			name: "no output directive",
			script: `#!/bin/bash
#SBATCH --job-name=noout
echo hi
`,
			wantErr: ErrNoOutputDirective,
		},
		{
			name: "output-dir does not match output",
			script: `#!/bin/bash
#SBATCH --output-dir=logs
echo hi
`,
			wantErr: ErrNoOutputDirective,
		},
	}

	s := NewSlurm()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			js, err := s.ReadJobScript(writeScript(t, tt.script))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got err %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if js.OutputPattern != tt.wantOutput {
				t.Errorf("OutputPattern = %q, want %q", js.OutputPattern, tt.wantOutput)
			}
			if js.JobName != tt.wantName {
				t.Errorf("JobName = %q, want %q", js.JobName, tt.wantName)
			}
		})
	}
}

func TestSlurmReadJobScriptMissingFile(t *testing.T) {
	s := NewSlurm()
	_, err := s.ReadJobScript(filepath.Join(t.TempDir(), "nope.sh"))
	if !errors.Is(err, ErrScriptNotFound) {
		t.Fatalf("got err %v, want ErrScriptNotFound", err)
	}
}

func TestSlurmExpandOutputPattern(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"slurm-%j.out", "slurm-4242.out"},
		{"%x-%j.log", "train-4242.log"},
		{"logs/%j/%x.out", "logs/4242/train.out"},
		{"pct-100%%.out", "pct-100%.out"},
		{"plain.log", "plain.log"},
		{"%q-unknown.log", "%q-unknown.log"},
		{"trailing%", "trailing%"},
	}

	s := NewSlurm()
	job := &Job{ID: "4242", Name: "train"}
	for _, tt := range tests {
		if got := s.ExpandOutputPattern(tt.pattern, job); got != tt.want {
			t.Errorf("ExpandOutputPattern(%q) = %q, want %q", tt.pattern, got, tt.want)
		}
	}
}

func TestSlurmParseJobID(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    string
		wantErr bool
	}{
		{"plain", "Submitted batch job 12345\n", "12345", false},
		{"with banner", "sbatch: verbose mode\nSubmitted batch job 777\n", "777", false},
		{"garbage", "error: invalid partition\n", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseJobID(tt.output, slurmJobIDRegex)
			if tt.wantErr {
				if !errors.Is(err, ErrJobIDParseFailed) {
					t.Fatalf("got err %v, want ErrJobIDParseFailed", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("job ID = %q, want %q", got, tt.want)
			}
		})
	}
}
