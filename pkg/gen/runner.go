package gen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Runner executes one generation task. The production implementation shells
// out to the per-language generator tool; tests substitute their own.
type Runner interface {
	Run(ctx context.Context, task *Task) *Result
}

// ExecRunner runs generator tools as subprocesses with a bounded timeout
// and captured stderr.
type ExecRunner struct{}

// NewExecRunner creates the subprocess-backed runner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// DefaultTaskTimeout applies when a task carries no timeout of its own.
const DefaultTaskTimeout = 5 * time.Minute

// Run executes the task's generator tool. It always returns a Result; tool
// failure, timeout and cancellation are captured in the Result rather than
// surfaced as a Go error, so one bad task never disturbs its siblings.
func (r *ExecRunner) Run(ctx context.Context, task *Task) *Result {
	result := &Result{
		Zone:      task.Zone,
		Language:  task.Language,
		Status:    StatusRunning,
		OutputDir: task.OutputDir,
	}

	start := time.Now()
	defer func() {
		result.Duration = time.Since(start)
	}()

	if err := ctx.Err(); err != nil {
		return fail(result, fmt.Errorf("%w: %v", ErrCanceled, err), "")
	}

	if err := os.MkdirAll(task.OutputDir, 0755); err != nil {
		return fail(result, fmt.Errorf("failed to create output directory: %w", err), "")
	}

	timeout := task.Timeout
	if timeout <= 0 {
		timeout = DefaultTaskTimeout
	}
	execCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	argv := expandCommand(task.Command, map[string]string{
		"{schema}":   task.SchemaPath,
		"{output}":   task.OutputDir,
		"{zone}":     task.Zone,
		"{language}": task.Language,
	})

	logrus.WithFields(logrus.Fields{
		"zone":     task.Zone,
		"language": task.Language,
		"tool":     argv[0],
	}).Debug("running generator tool")

	cmd := exec.CommandContext(execCtx, argv[0], argv[1:]...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		toolErr := ErrToolFailed
		if errors.Is(execCtx.Err(), context.DeadlineExceeded) {
			toolErr = ErrToolTimeout
		}
		return fail(result, fmt.Errorf("%w: %v", toolErr, err), strings.TrimSpace(stderr.String()))
	}

	files, size, err := collectFiles(task.OutputDir)
	if err != nil {
		return fail(result, err, "")
	}
	if len(files) == 0 {
		return fail(result, ErrNoFiles, strings.TrimSpace(stderr.String()))
	}

	result.Status = StatusSucceeded
	result.Success = true
	result.Files = files
	result.Bytes = size
	return result
}

func fail(result *Result, err error, stderr string) *Result {
	result.Status = StatusFailed
	result.Success = false
	result.Error = err.Error()
	result.Stderr = stderr
	return result
}

// collectFiles walks the task output directory and returns the relative
// paths and total size of everything the tool wrote.
func collectFiles(dir string) ([]string, int64, error) {
	var files []string
	var total int64

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		total += info.Size()
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to inventory generated files: %w", err)
	}

	return files, total, nil
}

func expandCommand(template []string, vars map[string]string) []string {
	argv := make([]string, len(template))
	for i, arg := range template {
		for k, v := range vars {
			arg = strings.ReplaceAll(arg, k, v)
		}
		argv[i] = arg
	}
	return argv
}
