package cli

import (
	"flag"
	"fmt"

	"github.com/zonekit/zonekit/pkg/pipeline"
)

func newValidateCommand() *Command {
	cmd := &Command{
		Name:        "validate",
		Description: "Validate the zone partition against the route table",
		Flags:       flag.NewFlagSet("validate", flag.ExitOnError),
		Run:         runValidate,
	}

	cmd.Flags.String("config", "zonekit.yaml", "Path to the project configuration file")

	return cmd
}

func runValidate(args []string) error {
	cmd := newValidateCommand()
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

	table, err := p.Validate()
	if err != nil {
		return err
	}

	fmt.Printf("Zone partition is valid: %d zones over %d apps, %d routes\n",
		p.Zones().Count(), len(table.Apps), len(table.Entries))
	return nil
}
