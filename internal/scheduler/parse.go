package scheduler

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/adamweingram/slurmtail/internal/utils"
)

// readScriptLines reads a job script into memory line by line.
func readScriptLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrScriptNotFound, path)
		}
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	// Job scripts occasionally carry very long lines (inline heredocs)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed reading %s: %w", path, err)
	}
	return lines, nil
}

// directiveScan walks a script's directive comments (lines starting with
// the given prefix, e.g. "#SBATCH") and extracts values for the output
// and name options. Option matching handles all three comment forms:
//
//	#SBATCH --output=out.log
//	#SBATCH --output out.log
//	#SBATCH -o out.log
//
// Scanning stops at the first non-comment, non-blank line since
// schedulers only honor directives in the script header.
type directiveScan struct {
	Output     string
	Name       string
	Directives []string
}

func scanDirectives(lines []string, prefix string, outputOpts, nameOpts []string) directiveScan {
	var res directiveScan
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#!") {
			continue
		}
		if !strings.HasPrefix(trimmed, "#") {
			break
		}
		if !strings.HasPrefix(trimmed, prefix) {
			continue
		}

		rest := strings.TrimSpace(strings.TrimPrefix(trimmed, prefix))
		if rest == "" {
			continue
		}
		res.Directives = append(res.Directives, trimmed)

		if res.Output == "" {
			if v, ok := matchOption(rest, outputOpts); ok {
				res.Output = v
			}
		}
		if res.Name == "" {
			if v, ok := matchOption(rest, nameOpts); ok {
				res.Name = v
			}
		}
	}
	return res
}

// matchOption extracts the value of an option from a directive body.
// opts lists the accepted spellings, e.g. ["--output", "-o"].
func matchOption(body string, opts []string) (string, bool) {
	for _, opt := range opts {
		if !strings.HasPrefix(body, opt) {
			continue
		}
		rest := body[len(opt):]
		switch {
		case strings.HasPrefix(rest, "="):
			return cleanValue(rest[1:]), true
		case rest == "":
			continue // bare option with no value
		case rest[0] == ' ' || rest[0] == '\t':
			return cleanValue(rest), true
		default:
			// Longer option sharing this prefix (e.g. --output-dir)
			continue
		}
	}
	return "", false
}

// cleanValue trims whitespace, surrounding quotes, and inline comments
// from a directive value.
func cleanValue(v string) string {
	v = utils.StripInlineComment(v)
	v = strings.Trim(v, `"'`)
	return strings.TrimSpace(v)
}

// parseJobID applies a submit-output regex and returns the first capture
// group, typically the numeric job ID.
func parseJobID(output string, re *regexp.Regexp) (string, error) {
	m := re.FindStringSubmatch(output)
	if len(m) < 2 {
		return "", fmt.Errorf("%w: %q", ErrJobIDParseFailed, strings.TrimSpace(output))
	}
	return m[1], nil
}
