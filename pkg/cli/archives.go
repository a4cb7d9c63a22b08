package cli

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/zonekit/zonekit/pkg/archive"
	"github.com/zonekit/zonekit/pkg/pipeline"
)

func newArchivesCommand() *Command {
	cmd := &Command{
		Name:        "archives",
		Description: "List archived snapshots",
		Flags:       flag.NewFlagSet("archives", flag.ExitOnError),
		Run:         runArchives,
	}

	cmd.Flags.String("config", "zonekit.yaml", "Path to the project configuration file")
	cmd.Flags.Bool("prune", false, "Apply the configured retention policy now")

	return cmd
}

func runArchives(args []string) error {
	cmd := newArchivesCommand()
	if err := cmd.Flags.Parse(args); err != nil {
		return err
	}
	configPath := cmd.Flags.Lookup("config").Value.String()
	prune := cmd.Flags.Lookup("prune").Value.String() == "true"

	cfg, log, metrics, err := bootstrap(configPath)
	if err != nil {
		return err
	}
	p, err := pipeline.New(cfg, log, metrics)
	if err != nil {
		return err
	}
	manager := p.Archiver()

	if prune {
		removed, err := manager.Prune(cfg.Archive.KeepDays)
		if err != nil {
			return err
		}
		fmt.Printf("Pruned %d snapshots\n", len(removed))
	}

	manifests, err := manager.List()
	if err != nil {
		return err
	}
	if len(manifests) == 0 {
		fmt.Println("No snapshots archived yet")
		return nil
	}

	latestID := ""
	if latest, err := manager.Latest(); err == nil {
		latestID = latest.ID
	} else if err != archive.ErrNoLatest {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tCLIENTS\tFAILED\tSIZE\t")
	for _, m := range manifests {
		marker := ""
		if m.ID == latestID {
			marker = "(latest)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\n",
			m.ID, humanize.Time(m.CreatedAt), m.Succeeded, m.Failed,
			humanize.Bytes(uint64(m.Bytes)), marker)
	}
	return tw.Flush()
}
