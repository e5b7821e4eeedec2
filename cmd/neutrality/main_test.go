// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/neutrality/internal/config"
	"github.com/katalvlaran/neutrality/series"
)

const sampleCSV = `day,species_1,species_2,species_3
1,50,10,12
2,55,12,9
3,48,9,11
4,60,11,10
5,52,13,12
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

// execute runs the CLI with args and returns what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()

	return out.String(), err
}

func TestRelative(t *testing.T) {
	x := []float64{1, 3}
	assert.Equal(t, []float64{0.25, 0.75}, relative(x))
	assert.Equal(t, []float64{1, 3}, x, "input is left untouched")

	assert.Equal(t, []float64{0, 0}, relative([]float64{0, 0}))
	assert.Empty(t, relative(nil))
}

func TestPickRows(t *testing.T) {
	s, err := series.FromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)

	x, y, err := pickRows(s, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4}, x)
	assert.Equal(t, []float64{1, 2}, y)

	_, _, err = pickRows(s, 0, 2)
	assert.ErrorContains(t, err, "time step 2 out of range")
	_, _, err = pickRows(s, -1, 0)
	assert.Error(t, err)
}

// TestLoadConfig_FlagsOverrideFile runs the same file with and without
// --prefix: the file's prefix matches no column, the flag's does.
func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	data := writeFile(t, "counts.csv", sampleCSV)
	cfgPath := writeFile(t, "neutrality.yaml", "prefix: otu\nlog_level: error\nworkers: 3\n")

	_, err := execute(t, "kl", "--config", cfgPath, data)
	assert.ErrorIs(t, err, series.ErrNoSpeciesColumns)

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"kl", "--config", cfgPath, "--prefix", "species", "--workers", "2", data})
	require.NoError(t, root.Execute())
	assert.True(t, strings.HasPrefix(out.String(), "FILE"), out.String())
	assert.Contains(t, out.String(), data)

	kl, _, err := root.Find([]string{"kl"})
	require.NoError(t, err)
	cfg, _, err := loadConfig(kl)
	require.NoError(t, err)
	assert.Equal(t, "species", cfg.Prefix, "flag wins over file")
	assert.Equal(t, 2, cfg.Workers, "flag wins over file")
	assert.Equal(t, "error", cfg.LogLevel, "file wins over default")
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	data := writeFile(t, "counts.csv", sampleCSV)
	cfgPath := writeFile(t, "neutrality.yaml", "log_level: loud\n")

	_, err := execute(t, "kl", "--config", cfgPath, data)
	assert.ErrorIs(t, err, config.ErrInvalidLogLevel)
}

func TestSubcommands(t *testing.T) {
	data := writeFile(t, "counts.csv", sampleCSV)

	out, err := execute(t, "braycurtis", "--row", "0", "--against", "1", data)
	require.NoError(t, err)
	assert.Contains(t, out, "bray-curtis(row 0, row 1)")

	out, err = execute(t, "braycurtis", "--neutral", "--row", "2", data)
	require.NoError(t, err)
	assert.Contains(t, out, "bray-curtis(row 2, neutral)")

	out, err = execute(t, "jensenshannon", data)
	require.NoError(t, err)
	assert.Contains(t, out, "jensen-shannon(row 0, row 1)")

	out, err = execute(t, "spectrum", "--height", "4", data)
	require.NoError(t, err)
	assert.Contains(t, out, "covariance eigenvalues, S=3 T=5")

	_, err = execute(t, "braycurtis", "--against", "9", data)
	assert.ErrorContains(t, err, "out of range")
}
