package archive

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zonekit/zonekit/pkg/gen"
)

func writeClient(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func successResult(t *testing.T, base, zone, language string, files map[string]string) *gen.Result {
	t.Helper()
	dir := filepath.Join(base, language, zone)
	writeClient(t, dir, files)
	var total int64
	names := make([]string, 0, len(files))
	for name, content := range files {
		names = append(names, name)
		total += int64(len(content))
	}
	return &gen.Result{
		Zone:      zone,
		Language:  language,
		Status:    gen.StatusSucceeded,
		Success:   true,
		OutputDir: dir,
		Files:     names,
		Bytes:     total,
	}
}

func failedResult(zone, language string) *gen.Result {
	return &gen.Result{
		Zone:     zone,
		Language: language,
		Status:   gen.StatusFailed,
		Error:    "generator tool failed: exit status 1",
	}
}

func TestArchivePublishesSnapshot(t *testing.T) {
	work := t.TempDir()
	m := NewManager(filepath.Join(work, "archive"), nil, nil)

	runID := uuid.NewString()
	results := []*gen.Result{
		successResult(t, work, "public", "typescript", map[string]string{"index.ts": "export {}"}),
		successResult(t, work, "public", "python", map[string]string{"models.py": "class User: pass"}),
		failedResult("admin", "typescript"),
	}

	manifest, err := m.Archive(runID, results)
	require.NoError(t, err)

	assert.Equal(t, runID, manifest.RunID)
	assert.Equal(t, 2, manifest.Succeeded)
	assert.Equal(t, 1, manifest.Failed)
	assert.Len(t, manifest.Tasks, 3)

	// Successful clients are copied, failures only recorded.
	snapDir := filepath.Join(m.Root(), manifest.ID)
	assert.FileExists(t, filepath.Join(snapDir, "clients", "typescript", "public", "index.ts"))
	assert.FileExists(t, filepath.Join(snapDir, "clients", "python", "public", "models.py"))
	assert.NoDirExists(t, filepath.Join(snapDir, "clients", "typescript", "admin"))

	latest, err := m.Latest()
	require.NoError(t, err)
	assert.Equal(t, manifest.ID, latest.ID)
}

func TestArchiveNothingToArchive(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "archive"), nil, nil)

	_, err := m.Archive(uuid.NewString(), []*gen.Result{failedResult("public", "typescript")})
	assert.ErrorIs(t, err, ErrNothingToArchive)
	assert.NoDirExists(t, m.Root())
}

func TestArchiveSnapshotsAreImmutable(t *testing.T) {
	work := t.TempDir()
	m := NewManager(filepath.Join(work, "archive"), nil, nil)

	first, err := m.Archive(uuid.NewString(), []*gen.Result{
		successResult(t, filepath.Join(work, "a"), "public", "typescript", map[string]string{"index.ts": "v1"}),
	})
	require.NoError(t, err)

	m.now = func() time.Time { return time.Now().Add(2 * time.Second) }
	_, err = m.Archive(uuid.NewString(), []*gen.Result{
		successResult(t, filepath.Join(work, "b"), "public", "typescript", map[string]string{"index.ts": "v2"}),
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(m.Root(), first.ID, "clients", "typescript", "public", "index.ts"))
	require.NoError(t, err)
	assert.Equal(t, "v1", string(data))
}

func TestLatestPointerSurvivesAbortedPublish(t *testing.T) {
	work := t.TempDir()
	m := NewManager(filepath.Join(work, "archive"), nil, nil)

	first, err := m.Archive(uuid.NewString(), []*gen.Result{
		successResult(t, work, "public", "typescript", map[string]string{"index.ts": "export {}"}),
	})
	require.NoError(t, err)

	// Simulate a crash mid-publish: a snapshot directory exists on disk
	// but the pointer never moved. Readers must still see the previous
	// snapshot.
	aborted := filepath.Join(m.Root(), "29990101_000000")
	require.NoError(t, os.MkdirAll(aborted, 0755))

	latest, err := m.Latest()
	require.NoError(t, err)
	assert.Equal(t, first.ID, latest.ID)
}

func TestLatestWithoutSnapshots(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "archive"), nil, nil)
	_, err := m.Latest()
	assert.ErrorIs(t, err, ErrNoLatest)
}

func TestListNewestFirst(t *testing.T) {
	work := t.TempDir()
	m := NewManager(filepath.Join(work, "archive"), nil, nil)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		offset := time.Duration(i) * time.Minute
		m.now = func() time.Time { return base.Add(offset) }
		_, err := m.Archive(uuid.NewString(), []*gen.Result{
			successResult(t, filepath.Join(work, string(rune('a'+i))), "public", "typescript",
				map[string]string{"index.ts": "export {}"}),
		})
		require.NoError(t, err)
	}

	manifests, err := m.List()
	require.NoError(t, err)
	require.Len(t, manifests, 3)
	assert.Equal(t, "20260801_120200", manifests[0].ID)
	assert.Equal(t, "20260801_120000", manifests[2].ID)
}

func TestListSkipsNonSnapshotEntries(t *testing.T) {
	work := t.TempDir()
	m := NewManager(filepath.Join(work, "archive"), nil, nil)

	_, err := m.Archive(uuid.NewString(), []*gen.Result{
		successResult(t, work, "public", "typescript", map[string]string{"index.ts": "export {}"}),
	})
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(m.Root(), "not-a-snapshot"), 0755))

	manifests, err := m.List()
	require.NoError(t, err)
	assert.Len(t, manifests, 1)
}

func TestPruneKeepsRecentAndLatest(t *testing.T) {
	work := t.TempDir()
	m := NewManager(filepath.Join(work, "archive"), nil, nil)

	old := time.Now().UTC().AddDate(0, 0, -60)
	m.now = func() time.Time { return old }
	stale, err := m.Archive(uuid.NewString(), []*gen.Result{
		successResult(t, filepath.Join(work, "a"), "public", "typescript", map[string]string{"index.ts": "old"}),
	})
	require.NoError(t, err)

	m.now = time.Now
	fresh, err := m.Archive(uuid.NewString(), []*gen.Result{
		successResult(t, filepath.Join(work, "b"), "public", "typescript", map[string]string{"index.ts": "new"}),
	})
	require.NoError(t, err)

	removed, err := m.Prune(30)
	require.NoError(t, err)
	assert.Equal(t, []string{stale.ID}, removed)
	assert.NoDirExists(t, filepath.Join(m.Root(), stale.ID))
	assert.DirExists(t, filepath.Join(m.Root(), fresh.ID))
}

func TestPruneNeverRemovesLatest(t *testing.T) {
	work := t.TempDir()
	m := NewManager(filepath.Join(work, "archive"), nil, nil)

	old := time.Now().UTC().AddDate(0, 0, -90)
	m.now = func() time.Time { return old }
	only, err := m.Archive(uuid.NewString(), []*gen.Result{
		successResult(t, work, "public", "typescript", map[string]string{"index.ts": "export {}"}),
	})
	require.NoError(t, err)

	m.now = time.Now
	removed, err := m.Prune(30)
	require.NoError(t, err)
	assert.Empty(t, removed)
	assert.DirExists(t, filepath.Join(m.Root(), only.ID))
}

func TestPruneDisabled(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "archive"), nil, nil)
	removed, err := m.Prune(0)
	require.NoError(t, err)
	assert.Nil(t, removed)
}
