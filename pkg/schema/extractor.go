package schema

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zonekit/zonekit/pkg/routes"
	"github.com/zonekit/zonekit/pkg/zones"
)

// Document is one zone's extracted interface description.
type Document struct {
	Zone        string
	Path        string
	Fingerprint string
	CacheHit    bool
	Duration    time.Duration
}

// Extractor drives the external schema tool over isolated route tables.
// Each extraction is scoped strictly to its own temp input file and output
// path, so concurrent extractions for different zones cannot observe each
// other.
type Extractor struct {
	command    []string
	timeout    time.Duration
	schemasDir string
	cache      *Cache
}

// NewExtractor creates an extractor writing documents into schemasDir.
// cache may be nil to disable fingerprint-based skipping.
func NewExtractor(command []string, timeout time.Duration, schemasDir string, cache *Cache) (*Extractor, error) {
	if len(command) == 0 {
		return nil, fmt.Errorf("schema tool command is required")
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Extractor{
		command:    command,
		timeout:    timeout,
		schemasDir: schemasDir,
		cache:      cache,
	}, nil
}

// Extract produces the schema document for one zone. Failures are returned
// as *ExtractionError carrying the zone name and the tool's stderr; the
// caller decides how to aggregate them across zones.
func (e *Extractor) Extract(ctx context.Context, zone *zones.Zone, isolated *routes.IsolatedTable) (*Document, error) {
	start := time.Now()
	outPath := filepath.Join(e.schemasDir, zone.Name+".yaml")
	fingerprint := isolated.Fingerprint()

	if e.cache != nil {
		if path, ok := e.cache.Lookup(zone.Name, fingerprint); ok {
			return &Document{
				Zone:        zone.Name,
				Path:        path,
				Fingerprint: fingerprint,
				CacheHit:    true,
				Duration:    time.Since(start),
			}, nil
		}
	}

	if err := os.MkdirAll(e.schemasDir, 0755); err != nil {
		return nil, &ExtractionError{Zone: zone.Name, Err: fmt.Errorf("failed to create schemas directory: %w", err)}
	}

	routesFile, err := e.writeIsolatedTable(zone.Name, isolated)
	if err != nil {
		return nil, &ExtractionError{Zone: zone.Name, Err: err}
	}
	defer os.Remove(routesFile)

	argv := expandCommand(e.command, map[string]string{
		"{routes}":  routesFile,
		"{output}":  outPath,
		"{zone}":    zone.Name,
		"{version}": zone.Version,
	})

	execCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	cmd := exec.CommandContext(execCtx, argv[0], argv[1:]...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		toolErr := ErrToolFailed
		if errors.Is(execCtx.Err(), context.DeadlineExceeded) {
			toolErr = ErrToolTimeout
		}
		return nil, &ExtractionError{
			Zone:   zone.Name,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    fmt.Errorf("%w: %v", toolErr, err),
		}
	}

	if err := verifyDocument(outPath); err != nil {
		return nil, &ExtractionError{Zone: zone.Name, Err: err}
	}

	if e.cache != nil {
		e.cache.Store(zone.Name, fingerprint, outPath)
	}

	return &Document{
		Zone:        zone.Name,
		Path:        outPath,
		Fingerprint: fingerprint,
		Duration:    time.Since(start),
	}, nil
}

// writeIsolatedTable serializes the isolated route table to a private temp
// file handed to the schema tool.
func (e *Extractor) writeIsolatedTable(zone string, isolated *routes.IsolatedTable) (string, error) {
	data, err := yaml.Marshal(isolated)
	if err != nil {
		return "", fmt.Errorf("failed to marshal isolated route table: %w", err)
	}

	f, err := os.CreateTemp("", "zonekit-routes-"+zone+"-*.yaml")
	if err != nil {
		return "", fmt.Errorf("failed to create temp routes file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write temp routes file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to close temp routes file: %w", err)
	}
	return f.Name(), nil
}

// verifyDocument checks the tool wrote a parseable YAML/JSON document.
func verifyDocument(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoOutput, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrNoOutput
	}

	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	if len(doc) == 0 {
		return ErrMalformedOutput
	}
	return nil
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
