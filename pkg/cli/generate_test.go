package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProject(t *testing.T, generatorScript string) (configPath, outputDir string) {
	t.Helper()
	work := t.TempDir()
	outputDir = filepath.Join(work, "openapi")

	routes := `apps: [accounts, admin_panel]
routes:
  - app: accounts
    method: GET
    path: /users/
    handler: accounts.views.list_users
  - app: admin_panel
    method: GET
    path: /stats/
    handler: admin_panel.views.stats
`
	routesFile := filepath.Join(work, "routes.yaml")
	require.NoError(t, os.WriteFile(routesFile, []byte(routes), 0644))

	project := fmt.Sprintf(`routes_file: %s
output:
  base_dir: %s
zones:
  public:
    apps: [accounts]
    public: true
  admin:
    apps: [admin_panel]
    auth_required: true
schema:
  command: ["sh", "-c", "printf 'openapi: 3.0.0\\n' > \"$1\"", "schema-tool", "{output}"]
  timeout: 30s
generators:
  typescript:
    command: ["sh", "-c", "%s", "generator", "{output}"]
  python:
    enabled: false
workers: 2
log_level: error
`, routesFile, outputDir, generatorScript)

	configPath = filepath.Join(work, "zonekit.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(project), 0644))
	return configPath, outputDir
}

func TestGenerateCommand(t *testing.T) {
	configPath, outputDir := writeProject(t, `echo client > \"$1/index.ts\"`)

	err := runGenerate([]string{"-config", configPath, "-skip-deps-check", "-no-archive"})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(outputDir, "clients", "typescript", "public", "index.ts"))
	assert.FileExists(t, filepath.Join(outputDir, "clients", "typescript", "admin", "index.ts"))
	assert.FileExists(t, filepath.Join(outputDir, "schemas", "public.yaml"))
}

func TestGenerateCommandFailureExit(t *testing.T) {
	configPath, _ := writeProject(t, `exit 1`)

	err := runGenerate([]string{"-config", configPath, "-skip-deps-check", "-no-archive"})
	assert.ErrorIs(t, err, ErrRunHadFailures)
}

func TestGenerateCommandZoneFilter(t *testing.T) {
	configPath, outputDir := writeProject(t, `echo client > \"$1/index.ts\"`)

	err := runGenerate([]string{"-config", configPath, "-skip-deps-check", "-no-archive", "-zones", "public"})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(outputDir, "clients", "typescript", "public", "index.ts"))
	assert.NoFileExists(t, filepath.Join(outputDir, "clients", "typescript", "admin", "index.ts"))
}

func TestGenerateCommandArchives(t *testing.T) {
	configPath, outputDir := writeProject(t, `echo client > \"$1/index.ts\"`)

	err := runGenerate([]string{"-config", configPath, "-skip-deps-check"})
	require.NoError(t, err)

	entries, readErr := os.ReadDir(filepath.Join(outputDir, "archive"))
	require.NoError(t, readErr)

	var snapshots int
	for _, e := range entries {
		if e.IsDir() && e.Name() != "latest" {
			snapshots++
		}
	}
	assert.Equal(t, 1, snapshots)
	assert.FileExists(t, filepath.Join(outputDir, "archive", "latest.json"))
}

func TestGenerateCommandUnknownZone(t *testing.T) {
	configPath, _ := writeProject(t, `echo client > \"$1/index.ts\"`)

	err := runGenerate([]string{"-config", configPath, "-skip-deps-check", "-zones", "ghost"})
	assert.Error(t, err)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"a", "b"}, splitList("a,b"))
	assert.Equal(t, []string{"a", "b"}, splitList(" a , b ,"))
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "one", firstLine("one\ntwo"))
	assert.Equal(t, "plain", firstLine("plain"))
}
