// Package config loads and validates zonekit configuration.
//
// Configuration comes from three layers, later layers winning: compiled-in
// defaults, the YAML project file (zonekit.yaml), and ZONEKIT_* environment
// variables. The resulting Config value is passed explicitly into the
// pipeline; there is no global settings object.
//
// Environment overrides:
//
//	ZONEKIT_OUTPUT_DIR         output root directory
//	ZONEKIT_MAX_WORKERS        generation worker pool size
//	ZONEKIT_AUTO_INSTALL_DEPS  "false"/"0" disables the opt-in installer
//	ZONEKIT_LOG_LEVEL          debug|info|warn|error
//	ZONEKIT_SCHEMA_TIMEOUT     schema tool timeout (Go duration)
//	ZONEKIT_METRICS_TEXTFILE   Prometheus textfile output path
package config
