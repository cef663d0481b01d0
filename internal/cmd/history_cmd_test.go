package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runger/marks/internal/history"
	"github.com/runger/marks/internal/storage"
)

func TestHistoryCmd_Empty(t *testing.T) {
	env := setupEnv(t)

	out, err := env.run(t, "history", "list")
	require.NoError(t, err)
	assert.Equal(t, "No search history yet.\n", out)
}

func TestHistoryCmd_RemoveAndClear(t *testing.T) {
	env := setupEnv(t)

	_, err := env.run(t, "search", "rust")
	require.NoError(t, err)
	_, err = env.run(t, "search", "xss")
	require.NoError(t, err)

	out, err := env.run(t, "history")
	require.NoError(t, err)
	assert.Equal(t, " 1  xss\n 2  rust\n", out)

	out, err = env.run(t, "history", "remove", "xss")
	require.NoError(t, err)
	assert.Contains(t, out, `Removed "xss"`)

	_, err = env.run(t, "history", "remove", "XSS")
	assert.ErrorContains(t, err, "not in history")

	out, err = env.run(t, "history", "clear")
	require.NoError(t, err)
	assert.Equal(t, "Cleared 1 search(es)\n", out)

	out, err = env.run(t, "history")
	require.NoError(t, err)
	assert.Equal(t, "No search history yet.\n", out)
}

func TestRemoveHistory_ExactMatch(t *testing.T) {
	h := history.New(storage.NewMemory())
	h.Record("Rust")
	var buf bytes.Buffer

	err := removeHistory(&buf, h, "rust")
	assert.Error(t, err)
	assert.Equal(t, []string{"Rust"}, h.List())

	require.NoError(t, removeHistory(&buf, h, "Rust"))
	assert.True(t, h.IsEmpty())
}

func TestPrintHistory(t *testing.T) {
	var buf bytes.Buffer
	printHistory(&buf, []string{"a", "b"})
	assert.Equal(t, " 1  a\n 2  b\n", buf.String())
}
