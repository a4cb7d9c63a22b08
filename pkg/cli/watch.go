package cli

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/zonekit/zonekit/pkg/pipeline"
)

func newWatchCommand() *Command {
	cmd := &Command{
		Name:        "watch",
		Description: "Rerun the pipeline whenever the route table or config changes",
		Flags:       flag.NewFlagSet("watch", flag.ExitOnError),
		Run:         runWatch,
	}

	cmd.Flags.String("config", "zonekit.yaml", "Path to the project configuration file")
	cmd.Flags.String("zones", "", "Comma-separated zone names to generate (default all)")
	cmd.Flags.String("languages", "", "Comma-separated generation targets (default all enabled)")
	cmd.Flags.Bool("no-archive", false, "Skip the archive stage on each run")

	return cmd
}

func runWatch(args []string) error {
	cmd := newWatchCommand()
	if err := cmd.Flags.Parse(args); err != nil {
		return err
	}
	configPath := cmd.Flags.Lookup("config").Value.String()
	zoneList := splitList(cmd.Flags.Lookup("zones").Value.String())
	langList := splitList(cmd.Flags.Lookup("languages").Value.String())
	noArchive := cmd.Flags.Lookup("no-archive").Value.String() == "true"

	cfg, log, metrics, err := bootstrap(configPath)
	if err != nil {
		return err
	}
	p, err := pipeline.New(cfg, log, metrics)
	if err != nil {
		return err
	}

	paths := []string{cfg.RoutesFile}
	if _, statErr := os.Stat(configPath); statErr == nil {
		paths = append(paths, configPath)
	}

	opts := pipeline.Options{Zones: zoneList, Languages: langList, SkipArchive: noArchive}
	watcher := pipeline.NewWatcher(p, opts, paths, log)
	watcher.OnRun(func(summary *pipeline.Summary) {
		printSummary(os.Stdout, summary)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
