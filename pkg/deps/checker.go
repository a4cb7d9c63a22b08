package deps

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/zonekit/zonekit/pkg/gen/languages"
)

var (
	// ErrNoInstallCommand is returned when a target declares no installer
	ErrNoInstallCommand = errors.New("no install command declared")

	// ErrInstallFailed is returned when an install command exits non-zero
	ErrInstallFailed = errors.New("install command failed")
)

// Requirement names one executable the pipeline needs and where the need
// comes from.
type Requirement struct {
	Tool string
	// UsedBy is "schema extraction" or the language ID.
	UsedBy string
	// InstallCommand remedies a missing tool, when the target declares one.
	InstallCommand []string
}

// MissingDependencyError aggregates every unresolved requirement.
type MissingDependencyError struct {
	Missing []Requirement
}

func (e *MissingDependencyError) Error() string {
	tools := make([]string, len(e.Missing))
	for i, req := range e.Missing {
		tools[i] = fmt.Sprintf("%s (required by %s)", req.Tool, req.UsedBy)
	}
	return "missing required tools: " + strings.Join(tools, ", ")
}

// Requirements collects the executables needed by the schema command and
// every enabled generation target. Duplicate tools are reported once.
func Requirements(schemaCommand []string, targets []*languages.LanguageSpec) []Requirement {
	var reqs []Requirement
	seen := make(map[string]bool)

	if len(schemaCommand) > 0 && !seen[schemaCommand[0]] {
		seen[schemaCommand[0]] = true
		reqs = append(reqs, Requirement{Tool: schemaCommand[0], UsedBy: "schema extraction"})
	}
	for _, spec := range targets {
		if spec.Tool == "" || seen[spec.Tool] {
			continue
		}
		seen[spec.Tool] = true
		reqs = append(reqs, Requirement{
			Tool:           spec.Tool,
			UsedBy:         spec.ID,
			InstallCommand: spec.InstallCommand,
		})
	}
	return reqs
}

// Check resolves every requirement through PATH. It returns a
// *MissingDependencyError naming all unresolved tools, or nil when the
// environment is complete.
func Check(reqs []Requirement) error {
	var missing []Requirement
	for _, req := range reqs {
		if _, err := exec.LookPath(req.Tool); err != nil {
			logrus.WithFields(logrus.Fields{
				"tool":    req.Tool,
				"used_by": req.UsedBy,
			}).Debug("required tool not found on PATH")
			missing = append(missing, req)
		}
	}
	if len(missing) > 0 {
		return &MissingDependencyError{Missing: missing}
	}
	return nil
}

// Install runs the requirement's declared install command, streaming its
// output to the current process.
func Install(ctx context.Context, req Requirement) error {
	if len(req.InstallCommand) == 0 {
		return fmt.Errorf("%w: %s", ErrNoInstallCommand, req.Tool)
	}

	logrus.WithFields(logrus.Fields{
		"tool":    req.Tool,
		"command": strings.Join(req.InstallCommand, " "),
	}).Info("installing missing tool")

	cmd := exec.CommandContext(ctx, req.InstallCommand[0], req.InstallCommand[1:]...)
	cmd.Stdout = os.Stdout
	var stderr bytes.Buffer
	cmd.Stderr = io.MultiWriter(os.Stderr, &stderr)
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("%w: %s: %s", ErrInstallFailed, req.Tool, msg)
		}
		return fmt.Errorf("%w: %s: %v", ErrInstallFailed, req.Tool, err)
	}
	return nil
}
