package observability

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLogLevel("debug"))
	assert.Equal(t, WarnLevel, ParseLogLevel("warning"))
	assert.Equal(t, ErrorLevel, ParseLogLevel("ERROR"))
	assert.Equal(t, InfoLevel, ParseLogLevel(""))
	assert.Equal(t, InfoLevel, ParseLogLevel("bogus"))
}

func TestLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(InfoLevel, &buf)

	log.WithField("zone", "public").Info("schema generated")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "schema generated", entry["msg"])
	assert.Equal(t, "public", entry["zone"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(WarnLevel, &buf)

	log.Debug("dropped")
	log.Info("dropped too")
	assert.Zero(t, buf.Len())

	log.Warnf("kept: %d", 1)
	assert.NotZero(t, buf.Len())
}

func TestLogger_WithFieldsAndError(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(InfoLevel, &buf)

	log.WithFields(map[string]interface{}{"zone": "admin", "language": "python"}).
		WithError(assert.AnError).
		Error("generation failed")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "admin", entry["zone"])
	assert.Equal(t, "python", entry["language"])
	assert.Contains(t, entry["error"], "assert.AnError")
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()

	m.ExtractionsTotal.WithLabelValues("public", OutcomeSuccess).Inc()
	m.GenerationsTotal.WithLabelValues("public", "typescript", OutcomeSuccess).Inc()
	m.GenerationsTotal.WithLabelValues("public", "typescript", OutcomeSuccess).Inc()
	m.GeneratedBytes.WithLabelValues("public", "typescript").Add(1024)
	m.ArchivesTotal.Inc()
	m.ArchiveSizeBytes.Set(2048)

	assert.Equal(t, float64(2),
		testutil.ToFloat64(m.GenerationsTotal.WithLabelValues("public", "typescript", OutcomeSuccess)))
	assert.Equal(t, float64(2048), testutil.ToFloat64(m.ArchiveSizeBytes))
}

func TestMetrics_WriteTextfile(t *testing.T) {
	m := NewMetrics()
	m.ExtractionsTotal.WithLabelValues("public", OutcomeFailure).Inc()

	path := filepath.Join(t.TempDir(), "zonekit.prom")
	require.NoError(t, m.WriteTextfile(path))
	assert.FileExists(t, path)
}
