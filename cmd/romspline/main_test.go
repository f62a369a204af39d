package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/sgostarter/i/l"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	err := run(args, &out, l.NewNopLoggerWrapper())
	return out.String(), err
}

func TestCommands(t *testing.T) {

	dir := t.TempDir()
	model := filepath.Join(dir, "sin.rom")

	out, err := runCommand(t, "reduce", "-func", "sin", "-n", "300", "-tol", "1e-5", "-out", model)
	require.NoError(t, err)
	require.Contains(t, out, "samples:     300")
	require.Contains(t, out, "converged:   true")
	require.FileExists(t, model)

	out, err = runCommand(t, "info", "-model", model)
	require.NoError(t, err)
	require.Contains(t, out, "degree:    5")
	require.Contains(t, out, "tolerance: 1e-05")

	out, err = runCommand(t, "eval", "-model", model, "-x", "0,1.5707963267948966", "-dx", "0")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)

	_, err = runCommand(t, "verify", "-model", model, "-func", "sin", "-n", "300")
	require.NoError(t, err)

	_, err = runCommand(t, "verify", "-model", model, "-func", "cos", "-n", "300")
	require.ErrorIs(t, err, errNotWithin)

	_, err = runCommand(t, "eval", "-model", model)
	require.Error(t, err)

	_, err = runCommand(t, "info")
	require.Error(t, err)

	_, err = runCommand(t, "compress")
	require.ErrorIs(t, err, errUsage)

	_, err = runCommand(t)
	require.ErrorIs(t, err, errUsage)
}

func TestReduceConfig(t *testing.T) {

	dir := t.TempDir()

	data := filepath.Join(dir, "data.txt")
	var b strings.Builder
	for i := 0; i < 200; i++ {
		x := float64(i) / 199
		b.WriteString(strconv.FormatFloat(x, 'g', -1, 64) + " " + strconv.FormatFloat(x*x*x, 'g', -1, 64) + "\n")
	}
	require.NoError(t, os.WriteFile(data, []byte(b.String()), 0600))

	model := filepath.Join(dir, "cubic.txt")

	config := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(config, []byte(`
parameters:
  degree: 3
  tolerance: 1.0e-8
  relative: true
input:
  file: `+data+`
output:
  path: `+model+`
  slim: true
`), 0600))

	out, err := runCommand(t, "reduce", "-config", config)
	require.NoError(t, err)
	require.Contains(t, out, "samples:     200")
	require.Contains(t, out, "knots:       4")
	require.NoFileExists(t, filepath.Join(model, "errors.txt"))

	out, err = runCommand(t, "info", "-model", model)
	require.NoError(t, err)
	require.Contains(t, out, "degree:    3")
	require.Contains(t, out, "interval:  [0, 1]")

	// Flags override the configuration file.
	out, err = runCommand(t, "reduce", "-config", config, "-deg", "1", "-out", "")
	require.NoError(t, err)
	require.NotContains(t, out, "written")

	_, err = runCommand(t, "reduce", "-params", `{"degree": 9, "tolerance": 1}`)
	require.Error(t, err)
}

func TestLists(t *testing.T) {
	var i intList
	require.NoError(t, i.Set("0, 10,20"))
	require.Equal(t, intList{0, 10, 20}, i)
	require.Error(t, i.Set("1,a"))

	var f floatList
	require.NoError(t, f.Set("0.5,-1e-3"))
	require.Equal(t, floatList{0.5, -1e-3}, f)
}
