package resourcelimits

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_Unknown(t *testing.T) {
	for _, name := range []string{"bogus-name", "", "NOFILE", "Core", " nofile"} {
		_, ok := Lookup(name)
		assert.False(t, ok, "name %q", name)
	}
}

func TestNames_MatchRegistry(t *testing.T) {
	names := Names()
	assert.Len(t, names, len(registry))

	seen := map[string]bool{}
	for _, name := range names {
		assert.False(t, seen[name], "duplicate name %q", name)
		seen[name] = true

		r, ok := Lookup(name)
		require.True(t, ok)
		assert.Equal(t, name, r.Name)
		assert.NotEmpty(t, r.Unit)
	}
}

func TestRegistry_PlatformEntries(t *testing.T) {
	switch runtime.GOOS {
	case "linux":
		assert.ElementsMatch(t,
			[]string{"core", "cpu", "data", "fsize", "nofile", "stack", "nproc", "memlock", "rss", "as"},
			Names())
	case "darwin", "openbsd":
		assert.ElementsMatch(t,
			[]string{"core", "cpu", "data", "fsize", "nofile", "stack", "nproc", "memlock", "rss"},
			Names())
	case "windows", "plan9", "js", "wasip1":
		assert.Empty(t, Names())
		assert.False(t, Supported())
		return
	}
	assert.True(t, Supported())
}
