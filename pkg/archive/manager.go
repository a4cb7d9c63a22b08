package archive

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/renameio"

	"github.com/zonekit/zonekit/pkg/gen"
	"github.com/zonekit/zonekit/pkg/observability"
)

// Manager publishes and lists snapshots under a single archive root.
// All mutations are serialized; two concurrent runs archiving at once
// cannot interleave a half-written snapshot with the latest pointer.
type Manager struct {
	mu      sync.Mutex
	root    string
	log     *observability.Logger
	metrics *observability.Metrics

	// now is swappable for tests that need deterministic snapshot IDs.
	now func() time.Time
}

// NewManager creates a snapshot manager rooted at dir. log and metrics may
// be nil.
func NewManager(dir string, log *observability.Logger, metrics *observability.Metrics) *Manager {
	return &Manager{
		root:    dir,
		log:     log,
		metrics: metrics,
		now:     time.Now,
	}
}

// Root returns the archive root directory.
func (m *Manager) Root() string {
	return m.root
}

// Archive publishes the outcome of one run as a new snapshot. Successful
// clients are copied in from their output directories; failed tasks are
// recorded in the manifest only. The latest pointer moves after the
// snapshot is fully in place.
func (m *Manager) Archive(runID string, results []*gen.Result) (*Manifest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	manifest := &Manifest{
		RunID:     runID,
		CreatedAt: m.now().UTC(),
	}
	for _, r := range results {
		manifest.Tasks = append(manifest.Tasks, outcomeFromResult(r))
		if r.Success {
			manifest.Succeeded++
			manifest.Bytes += r.Bytes
		} else {
			manifest.Failed++
		}
	}
	if manifest.Succeeded == 0 {
		return nil, ErrNothingToArchive
	}
	manifest.ID = manifest.CreatedAt.Format(SnapshotIDFormat)

	if err := os.MkdirAll(m.root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive root: %w", err)
	}

	final := filepath.Join(m.root, manifest.ID)
	if _, err := os.Stat(final); err == nil {
		// Two runs inside the same second; disambiguate with the run ID.
		manifest.ID = manifest.ID + "_" + shortRunID(runID)
		final = filepath.Join(m.root, manifest.ID)
	}

	staging, err := os.MkdirTemp(m.root, ".staging-")
	if err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer os.RemoveAll(staging)
	if err := os.Chmod(staging, 0755); err != nil {
		return nil, fmt.Errorf("failed to prepare staging directory: %w", err)
	}

	for _, r := range results {
		if !r.Success {
			continue
		}
		dst := filepath.Join(staging, "clients", r.Language, r.Zone)
		if err := copyTree(r.OutputDir, dst); err != nil {
			return nil, fmt.Errorf("failed to copy %s client for zone %s: %w", r.Language, r.Zone, err)
		}
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(staging, ManifestName), data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write manifest: %w", err)
	}

	// Publish: the snapshot appears under its final name in one step, and
	// the pointer moves only after that succeeds.
	if err := os.Rename(staging, final); err != nil {
		return nil, fmt.Errorf("failed to publish snapshot: %w", err)
	}
	if err := m.writeLatestPointer(manifest.ID); err != nil {
		return nil, err
	}

	if m.log != nil {
		m.log.WithFields(map[string]interface{}{
			"snapshot":  manifest.ID,
			"succeeded": manifest.Succeeded,
			"failed":    manifest.Failed,
			"bytes":     manifest.Bytes,
		}).Info("published archive snapshot")
	}
	if m.metrics != nil {
		m.metrics.ArchivesTotal.Inc()
		m.metrics.ArchiveSizeBytes.Set(float64(manifest.Bytes))
	}

	return manifest, nil
}

// writeLatestPointer atomically replaces the latest reference. The pointer
// file is the source of truth; the latest symlink is best-effort
// convenience for shell users.
func (m *Manager) writeLatestPointer(id string) error {
	data, err := json.Marshal(latestPointer{ID: id, UpdatedAt: m.now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to encode latest pointer: %w", err)
	}
	if err := renameio.WriteFile(filepath.Join(m.root, latestPointerName), data, 0644); err != nil {
		return fmt.Errorf("failed to update latest pointer: %w", err)
	}

	link := filepath.Join(m.root, "latest")
	tmp := link + ".tmp"
	_ = os.Remove(tmp)
	if err := os.Symlink(id, tmp); err == nil {
		_ = os.Rename(tmp, link)
	}
	return nil
}

// Latest returns the manifest of the snapshot the latest pointer names.
func (m *Manager) Latest() (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(m.root, latestPointerName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoLatest
		}
		return nil, fmt.Errorf("failed to read latest pointer: %w", err)
	}
	var ptr latestPointer
	if err := json.Unmarshal(data, &ptr); err != nil {
		return nil, fmt.Errorf("failed to decode latest pointer: %w", err)
	}
	return m.Get(ptr.ID)
}

// Get returns the manifest of one snapshot by ID.
func (m *Manager) Get(id string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(m.root, id, ManifestName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
		}
		return nil, fmt.Errorf("failed to read manifest for %s: %w", id, err)
	}
	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to decode manifest for %s: %w", id, err)
	}
	return &manifest, nil
}

// List returns the manifests of all published snapshots, newest first.
// Directories without a manifest (staging leftovers, stray files) are
// skipped.
func (m *Manager) List() ([]*Manifest, error) {
	entries, err := os.ReadDir(m.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read archive root: %w", err)
	}

	var manifests []*Manifest
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		manifest, err := m.Get(entry.Name())
		if err != nil {
			continue
		}
		manifests = append(manifests, manifest)
	}
	sort.Slice(manifests, func(i, j int) bool {
		return manifests[i].CreatedAt.After(manifests[j].CreatedAt)
	})
	return manifests, nil
}

func shortRunID(runID string) string {
	if len(runID) > 8 {
		return runID[:8]
	}
	return runID
}

// copyTree copies src recursively into dst, creating dst.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
