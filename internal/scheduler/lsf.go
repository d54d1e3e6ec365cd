package scheduler

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"github.com/adamweingram/slurmtail/internal/utils"
)

// lsfJobIDRegex matches bsub's submit confirmation, e.g.
// "Job <12345> is submitted to queue <normal>."
var lsfJobIDRegex = regexp.MustCompile(`Job <(\d+)> is submitted`)

// LSF implements the Scheduler interface for IBM Spectrum LSF.
type LSF struct {
	submitBin string
}

// NewLSF creates an LSF backend using bsub from PATH.
func NewLSF() *LSF {
	return &LSF{submitBin: "bsub"}
}

// NewLSFWithBinary creates an LSF backend using an explicit bsub path.
func NewLSFWithBinary(binPath string) *LSF {
	return &LSF{submitBin: binPath}
}

func (l *LSF) Type() SchedulerType {
	return TypeLSF
}

func (l *LSF) IsAvailable() bool {
	_, err := exec.LookPath(l.submitBin)
	return err == nil
}

func (l *LSF) GetInfo() (*SchedulerInfo, error) {
	binPath, err := exec.LookPath(l.submitBin)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSchedulerNotAvailable, l.submitBin)
	}

	info := &SchedulerInfo{
		Type:      TypeLSF,
		SubmitBin: binPath,
	}

	// "bsub -V" prints the LSF version banner on stderr
	if out, err := exec.Command(binPath, "-V").CombinedOutput(); err == nil {
		info.Version = strings.TrimSpace(strings.SplitN(string(out), "\n", 2)[0])
	}

	if id := os.Getenv("LSB_JOBID"); id != "" {
		info.InsideJob = true
		info.CurrentJob = id
	}

	return info, nil
}

// ReadJobScript extracts #BSUB directives from a batch script.
// Recognizes -o for the log path and -J for the job name.
func (l *LSF) ReadJobScript(path string) (*JobScript, error) {
	lines, err := readScriptLines(path)
	if err != nil {
		return nil, err
	}

	scan := scanDirectives(lines, "#BSUB",
		[]string{"-o", "-oo"},
		[]string{"-J"})

	if scan.Output == "" {
		return nil, fmt.Errorf("%w (expected '#BSUB -o ...')", ErrNoOutputDirective)
	}

	return &JobScript{
		Path:          path,
		JobName:       scan.Name,
		OutputPattern: scan.Output,
		RawDirectives: scan.Directives,
	}, nil
}

// Submit feeds the script to bsub on stdin, the form that makes bsub
// honor the script's #BSUB directives.
func (l *LSF) Submit(ctx context.Context, script *JobScript, extraArgs []string) (*Job, error) {
	utils.PrintDebug("Executing: %s %s < %s", l.submitBin, strings.Join(extraArgs, " "), script.Path)

	f, err := os.Open(script.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrScriptNotFound, script.Path)
	}
	defer f.Close()

	cmd := exec.CommandContext(ctx, l.submitBin, extraArgs...)
	cmd.Stdin = f

	out, err := cmd.CombinedOutput()
	if err != nil {
		return nil, &SubmissionError{
			Scheduler: string(TypeLSF),
			Output:    strings.TrimSpace(string(out)),
			Err:       err,
		}
	}

	id, err := parseJobID(string(out), lsfJobIDRegex)
	if err != nil {
		return nil, err
	}

	return &Job{ID: id, Name: script.JobName}, nil
}

// ExpandOutputPattern substitutes LSF filename patterns:
// %J is the job ID and %% a literal percent sign.
func (l *LSF) ExpandOutputPattern(pattern string, job *Job) string {
	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '%' || i+1 >= len(pattern) {
			b.WriteByte(pattern[i])
			continue
		}
		switch pattern[i+1] {
		case 'J':
			b.WriteString(job.ID)
			i++
		case '%':
			b.WriteByte('%')
			i++
		default:
			b.WriteByte('%')
		}
	}
	return b.String()
}
