package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRootCommand(t *testing.T) {
	root := NewRootCommand()

	assert.Equal(t, "zonekit", root.Name)
	for _, name := range []string{"generate", "validate", "watch", "zones", "archives", "deps"} {
		assert.Contains(t, root.Subcommands, name)
	}
}

func TestSubcommandFlagsParse(t *testing.T) {
	root := NewRootCommand()
	for name, sub := range root.Subcommands {
		if sub.Flags == nil {
			continue
		}
		assert.NoError(t, sub.Flags.Parse([]string{}), "command %s", name)
	}
}
