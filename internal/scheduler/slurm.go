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

// slurmJobIDRegex matches sbatch's submit confirmation, e.g.
// "Submitted batch job 12345"
var slurmJobIDRegex = regexp.MustCompile(`Submitted batch job (\d+)`)

// Slurm implements the Scheduler interface for SLURM.
type Slurm struct {
	submitBin string
}

// NewSlurm creates a SLURM backend using sbatch from PATH.
func NewSlurm() *Slurm {
	return &Slurm{submitBin: "sbatch"}
}

// NewSlurmWithBinary creates a SLURM backend using an explicit sbatch path.
func NewSlurmWithBinary(binPath string) *Slurm {
	return &Slurm{submitBin: binPath}
}

func (s *Slurm) Type() SchedulerType {
	return TypeSlurm
}

func (s *Slurm) IsAvailable() bool {
	_, err := exec.LookPath(s.submitBin)
	return err == nil
}

func (s *Slurm) GetInfo() (*SchedulerInfo, error) {
	binPath, err := exec.LookPath(s.submitBin)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSchedulerNotAvailable, s.submitBin)
	}

	info := &SchedulerInfo{
		Type:      TypeSlurm,
		SubmitBin: binPath,
	}

	// "sbatch --version" prints e.g. "slurm 23.02.7"
	if out, err := exec.Command(binPath, "--version").Output(); err == nil {
		info.Version = strings.TrimSpace(string(out))
	}

	if id := os.Getenv("SLURM_JOB_ID"); id != "" {
		info.InsideJob = true
		info.CurrentJob = id
	}

	return info, nil
}

// ReadJobScript extracts #SBATCH directives from a batch script.
// Recognizes --output/-o for the log path and --job-name/-J for the name.
func (s *Slurm) ReadJobScript(path string) (*JobScript, error) {
	lines, err := readScriptLines(path)
	if err != nil {
		return nil, err
	}

	scan := scanDirectives(lines, "#SBATCH",
		[]string{"--output", "-o"},
		[]string{"--job-name", "-J"})

	if scan.Output == "" {
		return nil, fmt.Errorf("%w (expected '#SBATCH --output=...' or '#SBATCH -o ...')", ErrNoOutputDirective)
	}

	return &JobScript{
		Path:          path,
		JobName:       scan.Name,
		OutputPattern: scan.Output,
		RawDirectives: scan.Directives,
	}, nil
}

func (s *Slurm) Submit(ctx context.Context, script *JobScript, extraArgs []string) (*Job, error) {
	args := append([]string{}, extraArgs...)
	args = append(args, script.Path)

	utils.PrintDebug("Executing: %s %s", s.submitBin, strings.Join(args, " "))

	out, err := exec.CommandContext(ctx, s.submitBin, args...).CombinedOutput()
	if err != nil {
		return nil, &SubmissionError{
			Scheduler: string(TypeSlurm),
			Output:    strings.TrimSpace(string(out)),
			Err:       err,
		}
	}

	id, err := parseJobID(string(out), slurmJobIDRegex)
	if err != nil {
		return nil, err
	}

	return &Job{ID: id, Name: script.JobName}, nil
}

// ExpandOutputPattern substitutes SLURM filename patterns:
// %j is the job ID, %x the job name, and %% a literal percent sign.
func (s *Slurm) ExpandOutputPattern(pattern string, job *Job) string {
	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '%' || i+1 >= len(pattern) {
			b.WriteByte(pattern[i])
			continue
		}
		switch pattern[i+1] {
		case 'j':
			b.WriteString(job.ID)
			i++
		case 'x':
			b.WriteString(job.Name)
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
