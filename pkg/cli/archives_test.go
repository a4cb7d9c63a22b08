package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchivesCommandEmpty(t *testing.T) {
	configPath, _ := writeProject(t, `true`)

	// No runs archived yet; listing must not fail.
	err := runArchives([]string{"-config", configPath})
	assert.NoError(t, err)
}

func TestArchivesCommandAfterRun(t *testing.T) {
	configPath, _ := writeProject(t, `echo client > \"$1/index.ts\"`)

	require.NoError(t, runGenerate([]string{"-config", configPath, "-skip-deps-check"}))

	err := runArchives([]string{"-config", configPath})
	assert.NoError(t, err)

	err = runArchives([]string{"-config", configPath, "-prune"})
	assert.NoError(t, err)
}

func TestZonesCommand(t *testing.T) {
	configPath, _ := writeProject(t, `true`)
	assert.NoError(t, runZones([]string{"-config", configPath}))
}

func TestDepsCommand(t *testing.T) {
	configPath, _ := writeProject(t, `true`)

	// The project overrides both generators to sh, which is always
	// present, so the check passes.
	err := runDeps([]string{"-config", configPath})
	assert.NoError(t, err)
}
