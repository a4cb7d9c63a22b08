package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Prune removes snapshots older than keepDays. The snapshot named by the
// latest pointer is never pruned, regardless of age. Returns the IDs of
// the removed snapshots.
func (m *Manager) Prune(keepDays int) ([]string, error) {
	if keepDays <= 0 {
		return nil, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	manifests, err := m.List()
	if err != nil {
		return nil, err
	}

	latestID := ""
	if latest, err := m.Latest(); err == nil {
		latestID = latest.ID
	}

	cutoff := m.now().UTC().AddDate(0, 0, -keepDays)
	var removed []string
	for _, manifest := range manifests {
		if manifest.ID == latestID {
			continue
		}
		if !manifest.CreatedAt.Before(cutoff) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(m.root, manifest.ID)); err != nil {
			return removed, fmt.Errorf("failed to prune snapshot %s: %w", manifest.ID, err)
		}
		removed = append(removed, manifest.ID)
	}

	if m.log != nil && len(removed) > 0 {
		m.log.WithFields(map[string]interface{}{
			"removed":   len(removed),
			"keep_days": keepDays,
			"cutoff":    cutoff.Format(time.RFC3339),
		}).Info("pruned archive snapshots")
	}
	return removed, nil
}
