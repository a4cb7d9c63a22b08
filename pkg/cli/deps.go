package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/zonekit/zonekit/pkg/config"
	"github.com/zonekit/zonekit/pkg/deps"
	"github.com/zonekit/zonekit/pkg/pipeline"
)

func newDepsCommand() *Command {
	cmd := &Command{
		Name:        "deps",
		Description: "Check that the required external tools are installed",
		Flags:       flag.NewFlagSet("deps", flag.ExitOnError),
		Run:         runDeps,
	}

	cmd.Flags.String("config", "zonekit.yaml", "Path to the project configuration file")
	cmd.Flags.Bool("install", false, "Install missing tools using their declared install commands")

	return cmd
}

func runDeps(args []string) error {
	cmd := newDepsCommand()
	if err := cmd.Flags.Parse(args); err != nil {
		return err
	}
	configPath := cmd.Flags.Lookup("config").Value.String()
	install := cmd.Flags.Lookup("install").Value.String() == "true"

	cfg, log, metrics, err := bootstrap(configPath)
	if err != nil {
		return err
	}
	p, err := pipeline.New(cfg, log, metrics)
	if err != nil {
		return err
	}

	reqs := deps.Requirements(cfg.Schema.Command, p.Languages().ListEnabled())
	err = deps.Check(reqs)
	if err == nil {
		fmt.Printf("All %d required tools found\n", len(reqs))
		return nil
	}

	var missing *deps.MissingDependencyError
	if !errors.As(err, &missing) {
		return err
	}

	for _, req := range missing.Missing {
		fmt.Printf("missing: %s (required by %s)\n", req.Tool, req.UsedBy)
	}
	if !install {
		return err
	}

	for _, req := range missing.Missing {
		if err := deps.Install(context.Background(), req); err != nil {
			return err
		}
	}
	return deps.Check(reqs)
}

// preflight verifies the tool environment before a run, installing missing
// tools only when the configuration opts in.
func preflight(ctx context.Context, cfg *config.Config, p *pipeline.Pipeline) error {
	reqs := deps.Requirements(cfg.Schema.Command, p.Languages().ListEnabled())
	err := deps.Check(reqs)
	if err == nil {
		return nil
	}

	var missing *deps.MissingDependencyError
	if !errors.As(err, &missing) || !cfg.AutoInstallDeps {
		return err
	}

	for _, req := range missing.Missing {
		if installErr := deps.Install(ctx, req); installErr != nil {
			return installErr
		}
	}
	return deps.Check(reqs)
}
