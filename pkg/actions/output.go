package actions

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
)

var errInvalidOutputName = errors.New("invalid output name")

// Output writes step outputs and the job summary through the files named by
// GITHUB_OUTPUT and GITHUB_STEP_SUMMARY. Empty paths turn writes into no-ops.
type Output struct {
	outputPath  string
	summaryPath string
}

// NewOutput creates an Output writing to the given files.
func NewOutput(outputPath, summaryPath string) *Output {
	return &Output{outputPath: outputPath, summaryPath: summaryPath}
}

// NewOutputFromEnv creates an Output from the runner environment.
func NewOutputFromEnv() *Output {
	return NewOutput(os.Getenv("GITHUB_OUTPUT"), os.Getenv("GITHUB_STEP_SUMMARY"))
}

// Set records a step output. Multi-line values use a random heredoc delimiter.
func (o *Output) Set(name, value string) error {
	if name == "" || strings.ContainsAny(name, "=\n\r") {
		return fmt.Errorf("%w: %q", errInvalidOutputName, name)
	}
	if o.outputPath == "" {
		return nil
	}

	var line string
	if strings.ContainsAny(value, "\n\r") {
		delimiter := "ghadelimiter_" + uuid.NewString()
		line = fmt.Sprintf("%s<<%s\n%s\n%s\n", name, delimiter, value, delimiter)
	} else {
		line = fmt.Sprintf("%s=%s\n", name, value)
	}
	return appendFile(o.outputPath, line)
}

// AppendSummary adds markdown to the job summary.
func (o *Output) AppendSummary(markdown string) error {
	if o.summaryPath == "" || markdown == "" {
		return nil
	}
	if !strings.HasSuffix(markdown, "\n") {
		markdown += "\n"
	}
	return appendFile(o.summaryPath, markdown)
}

func appendFile(path, content string) error {
	// #nosec G304 - the path is provided by the Actions runner
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
