package scheduler

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/adamweingram/slurmtail/internal/utils"
)

// PBS implements the Scheduler interface for PBS Pro and Torque.
type PBS struct {
	submitBin string
}

// NewPBS creates a PBS backend using qsub from PATH.
func NewPBS() *PBS {
	return &PBS{submitBin: "qsub"}
}

// NewPBSWithBinary creates a PBS backend using an explicit qsub path.
func NewPBSWithBinary(binPath string) *PBS {
	return &PBS{submitBin: binPath}
}

func (p *PBS) Type() SchedulerType {
	return TypePBS
}

func (p *PBS) IsAvailable() bool {
	_, err := exec.LookPath(p.submitBin)
	return err == nil
}

func (p *PBS) GetInfo() (*SchedulerInfo, error) {
	binPath, err := exec.LookPath(p.submitBin)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSchedulerNotAvailable, p.submitBin)
	}

	info := &SchedulerInfo{
		Type:      TypePBS,
		SubmitBin: binPath,
	}

	// PBS Pro: "pbs_version = 2022.1.3", Torque prints "Version: 6.x"
	if out, err := exec.Command(binPath, "--version").CombinedOutput(); err == nil {
		info.Version = strings.TrimSpace(string(out))
	}

	if id := os.Getenv("PBS_JOBID"); id != "" {
		info.InsideJob = true
		info.CurrentJob = id
	}

	return info, nil
}

// ReadJobScript extracts #PBS directives from a batch script.
// Recognizes -o for the log path and -N for the job name.
func (p *PBS) ReadJobScript(path string) (*JobScript, error) {
	lines, err := readScriptLines(path)
	if err != nil {
		return nil, err
	}

	scan := scanDirectives(lines, "#PBS",
		[]string{"-o"},
		[]string{"-N"})

	if scan.Output == "" {
		return nil, fmt.Errorf("%w (expected '#PBS -o ...')", ErrNoOutputDirective)
	}

	return &JobScript{
		Path:          path,
		JobName:       scan.Name,
		OutputPattern: scan.Output,
		RawDirectives: scan.Directives,
	}, nil
}

func (p *PBS) Submit(ctx context.Context, script *JobScript, extraArgs []string) (*Job, error) {
	args := append([]string{}, extraArgs...)
	args = append(args, script.Path)

	utils.PrintDebug("Executing: %s %s", p.submitBin, strings.Join(args, " "))

	out, err := exec.CommandContext(ctx, p.submitBin, args...).CombinedOutput()
	if err != nil {
		return nil, &SubmissionError{
			Scheduler: string(TypePBS),
			Output:    strings.TrimSpace(string(out)),
			Err:       err,
		}
	}

	// qsub prints the full job ID on the first line, e.g. "12345.pbsserver"
	id := strings.TrimSpace(strings.SplitN(string(out), "\n", 2)[0])
	if id == "" {
		return nil, fmt.Errorf("%w: empty qsub output", ErrJobIDParseFailed)
	}

	return &Job{ID: id, Name: script.JobName}, nil
}

// ExpandOutputPattern is the identity for PBS. qsub output paths carry no
// filename placeholders.
func (p *PBS) ExpandOutputPattern(pattern string, job *Job) string {
	return pattern
}
