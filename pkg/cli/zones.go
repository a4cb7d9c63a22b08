package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/zonekit/zonekit/pkg/pipeline"
)

func newZonesCommand() *Command {
	cmd := &Command{
		Name:        "zones",
		Description: "List the configured zones",
		Flags:       flag.NewFlagSet("zones", flag.ExitOnError),
		Run:         runZones,
	}

	cmd.Flags.String("config", "zonekit.yaml", "Path to the project configuration file")

	return cmd
}

func runZones(args []string) error {
	cmd := newZonesCommand()
	if err := cmd.Flags.Parse(args); err != nil {
		return err
	}
	configPath := cmd.Flags.Lookup("config").Value.String()

	cfg, log, metrics, err := bootstrap(configPath)
	if err != nil {
		return err
	}
	p, err := pipeline.New(cfg, log, metrics)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTITLE\tVERSION\tPREFIX\tPUBLIC\tAUTH\tAPPS")
	for _, zone := range p.Zones().All() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%v\t%v\t%s\n",
			zone.Name, zone.Title, zone.Version, zone.PathPrefix,
			zone.Public, zone.AuthRequired, strings.Join(zone.Apps, ","))
	}
	return tw.Flush()
}
