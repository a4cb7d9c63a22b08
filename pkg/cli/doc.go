// Package cli implements the zonekit command line interface.
//
// Commands:
//
//	generate   Run the full pipeline once and print the run report
//	validate   Check the zone partition against the route table
//	watch      Rerun on route table or configuration changes
//	zones      List the configured zones
//	archives   List archived snapshots, optionally applying retention
//	deps       Verify (and optionally install) the external tools
//
// The generate command exits non-zero when any zone or task failed, while
// still printing the full report; CI pipelines can gate on the exit code
// and humans can read the table.
package cli
