package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCaseInsensitive(t *testing.T) {
	table := Default()

	upper, ok := table.Resolve("TOOTH")
	require.True(t, ok)
	lower, ok := table.Resolve("tooth")
	require.True(t, ok)

	assert.Equal(t, "Dental Specialist", upper)
	assert.Equal(t, upper, lower)
}

func TestResolveTrimsWhitespace(t *testing.T) {
	table := Default()

	label, ok := table.Resolve("  kidney ")
	require.True(t, ok)
	assert.Equal(t, "Kidney Diseases Specialist", label)
}

func TestResolveUnknownTerm(t *testing.T) {
	table := Default()

	label, ok := table.Resolve("unknown-term")
	assert.False(t, ok)
	assert.Empty(t, label)
}

func TestResolveNilTable(t *testing.T) {
	var table *Table

	label, ok := table.Resolve("tooth")
	assert.False(t, ok)
	assert.Empty(t, label)
}

func TestNewCopiesEntries(t *testing.T) {
	entries := map[string]string{"Tooth": "Dental Specialist"}
	table := New(entries)
	entries["tooth"] = "Changed"
	delete(entries, "Tooth")

	label, ok := table.Resolve("tooth")
	require.True(t, ok)
	assert.Equal(t, "Dental Specialist", label)
	assert.Equal(t, 1, table.Len())
}
