package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/zonekit/zonekit/pkg/config"
	"github.com/zonekit/zonekit/pkg/observability"
	"github.com/zonekit/zonekit/pkg/pipeline"
)

// ErrRunHadFailures signals a run that completed with at least one failed
// zone or task. The process exits non-zero but the summary is still
// printed in full.
var ErrRunHadFailures = fmt.Errorf("run completed with failures")

func newGenerateCommand() *Command {
	cmd := &Command{
		Name:        "generate",
		Description: "Run the full pipeline: isolate, extract, generate, archive",
		Flags:       flag.NewFlagSet("generate", flag.ExitOnError),
		Run:         runGenerate,
	}

	cmd.Flags.String("config", "zonekit.yaml", "Path to the project configuration file")
	cmd.Flags.String("zones", "", "Comma-separated zone names to generate (default all)")
	cmd.Flags.String("languages", "", "Comma-separated generation targets (default all enabled)")
	cmd.Flags.Int("workers", 0, "Worker pool size override")
	cmd.Flags.Bool("no-archive", false, "Skip the archive stage")
	cmd.Flags.Bool("skip-deps-check", false, "Skip the external tool preflight")

	return cmd
}

func runGenerate(args []string) error {
	cmd := newGenerateCommand()
	if err := cmd.Flags.Parse(args); err != nil {
		return err
	}

	configPath := cmd.Flags.Lookup("config").Value.String()
	zoneList := splitList(cmd.Flags.Lookup("zones").Value.String())
	langList := splitList(cmd.Flags.Lookup("languages").Value.String())
	workers, _ := strconv.Atoi(cmd.Flags.Lookup("workers").Value.String())
	noArchive := cmd.Flags.Lookup("no-archive").Value.String() == "true"
	skipDeps := cmd.Flags.Lookup("skip-deps-check").Value.String() == "true"

	cfg, log, metrics, err := bootstrap(configPath)
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg, log, metrics)
	if err != nil {
		return err
	}

	if !skipDeps {
		if err := preflight(context.Background(), cfg, p); err != nil {
			return err
		}
	}

	summary, err := p.Run(context.Background(), pipeline.Options{
		Zones:       zoneList,
		Languages:   langList,
		Workers:     workers,
		SkipArchive: noArchive,
	})
	if err != nil {
		return err
	}

	printSummary(os.Stdout, summary)

	if !summary.Clean() {
		return ErrRunHadFailures
	}
	return nil
}

// bootstrap loads configuration and builds the shared logger and metrics.
func bootstrap(configPath string) (*config.Config, *observability.Logger, *observability.Metrics, error) {
	path := configPath
	if _, err := os.Stat(path); err != nil && os.IsNotExist(err) && path == "zonekit.yaml" {
		// The default project file is optional; defaults plus environment
		// overrides still make a usable configuration.
		path = ""
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, nil, err
	}

	log := observability.NewLogger(cfg.ParsedLogLevel(), os.Stderr)
	return cfg, log, observability.NewMetrics(), nil
}

func printSummary(w *os.File, summary *pipeline.Summary) {
	fmt.Fprintf(w, "Run %s finished in %s\n\n", summary.RunID, summary.Duration.Round(time.Millisecond))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ZONE\tSCHEMA\tCACHE\tERROR")
	for _, z := range summary.Zones {
		status := "ok"
		if !z.Succeeded() {
			status = "failed"
		}
		cache := ""
		if z.CacheHit {
			cache = "hit"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", z.Zone, status, cache, firstLine(z.Err))
	}
	tw.Flush()
	fmt.Fprintln(w)

	if len(summary.Results) > 0 {
		tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ZONE\tLANGUAGE\tSTATUS\tFILES\tSIZE\tERROR")
		for _, r := range summary.Results {
			size := ""
			if r.Success {
				size = humanize.Bytes(uint64(r.Bytes))
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
				r.Zone, r.Language, r.Status, len(r.Files), size, firstLine(r.Error))
		}
		tw.Flush()
		fmt.Fprintln(w)
	}

	if summary.Archive != nil {
		fmt.Fprintf(w, "Archived snapshot %s (%s, %d clients)\n",
			summary.Archive.ID, humanize.Bytes(uint64(summary.Archive.Bytes)), summary.Archive.Succeeded)
	}
	if len(summary.Pruned) > 0 {
		fmt.Fprintf(w, "Pruned %d old snapshots\n", len(summary.Pruned))
	}
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
