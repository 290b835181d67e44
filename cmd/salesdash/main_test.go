package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "salesdash ")
}

func TestRenderCommandWritesPageFiles(t *testing.T) {
	t.Setenv("STORAGE_MODE", "local")
	t.Setenv("LOCAL_SNAPSHOTS_DIR", t.TempDir())
	t.Setenv("THEME_SETTLE_DELAY", "0s")
	outDir := t.TempDir()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"render", "--mockup", "--theme", "dark", "--page", "/tiempo", "--out", outDir})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "/tiempo: 5 files")

	for _, name := range []string{"index.html", "sales-heatmap.svg", "sales-heatmap.png", "salesByYearMonthCanvas.html", "salesByDayOfWeekCanvas.html"} {
		_, err := os.Stat(filepath.Join(outDir, "tiempo", name))
		assert.NoError(t, err, name)
	}

	index, err := os.ReadFile(filepath.Join(outDir, "tiempo", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(index), `data-theme="dark"`)
}

func TestRenderUnknownPage(t *testing.T) {
	t.Setenv("STORAGE_MODE", "local")
	t.Setenv("LOCAL_SNAPSHOTS_DIR", t.TempDir())

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"render", "--mockup", "--page", "/nope", "--out", t.TempDir()})
	assert.Error(t, cmd.Execute())
}
