package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/linefmt/pkg/linefmt"
	"github.com/randalmurphal/linefmt/pkg/linefmt/config"
)

// execute runs the CLI with args and returns stdout, stderr and the error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRoot_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, "test.txt", "{aa_string}\n{bb_int:05d}\n{aa_float:.2f}\n")

	stdout, _, err := execute(t)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Equal(t, "{aa_string} AA\n{bb_int:05d} 00010\n{aa_float:.2f} -10.02\n",
		readFile(t, filepath.Join(dir, "test-python.txt")))
}

func TestRoot_Flags(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.txt")
	output := filepath.Join(dir, "out.txt")
	writeFile(t, input, "{cc_int}\n")

	_, _, err := execute(t, "--input", input, "-o", output)
	require.NoError(t, err)
	assert.Equal(t, "{cc_int} 12345000\n", readFile(t, output))
}

func TestRoot_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "templates.txt")
	output := filepath.Join(dir, "fixture.txt")
	writeFile(t, input, "{dd_int:,}\n")

	cfgPath := filepath.Join(dir, "linefmt.yaml")
	writeFile(t, cfgPath, "input: "+input+"\noutput: "+output+"\nlog_level: error\n")

	_, _, err := execute(t, "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "{dd_int:,} -12,324,550\n", readFile(t, output))

	// Flags win over the file
	other := filepath.Join(dir, "other.txt")
	_, _, err = execute(t, "--config", cfgPath, "--output", other)
	require.NoError(t, err)
	assert.Equal(t, "{dd_int:,} -12,324,550\n", readFile(t, other))
}

func TestRoot_BadConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "linefmt.yaml")
	writeFile(t, cfgPath, "colour: red\n")

	_, _, err := execute(t, "--config", cfgPath)
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrUnknownKey))
}

func TestRoot_BadLogLevel(t *testing.T) {
	_, _, err := execute(t, "--log-level", "loud")
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrInvalidValue))
}

func TestRoot_RejectsArgs(t *testing.T) {
	_, _, err := execute(t, "extra")
	assert.Error(t, err)
}

func TestRoot_MissingKeyFails(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.txt")
	output := filepath.Join(dir, "out.txt")
	writeFile(t, input, "{aa_string}\n{ee_string}\n")

	_, stderr, err := execute(t, "-i", input, "-o", output)
	require.Error(t, err)
	assert.Equal(t, linefmt.KindMissingKey, linefmt.KindOf(err))
	assert.Equal(t, "{aa_string} AA\n", readFile(t, output))
	assert.Contains(t, stderr, "format run failed")
}

func TestRoot_MissingInput(t *testing.T) {
	dir := t.TempDir()
	_, _, err := execute(t, "-i", filepath.Join(dir, "nope.txt"), "-o", filepath.Join(dir, "out.txt"))
	require.Error(t, err)
	assert.Equal(t, linefmt.KindIO, linefmt.KindOf(err))

	_, statErr := os.Stat(filepath.Join(dir, "out.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestHistoryCmd(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.txt")
	output := filepath.Join(dir, "out.txt")
	db := filepath.Join(dir, "runs.db")
	writeFile(t, input, "{aa_string}\n")

	stdout, _, err := execute(t, "history", "--history", db)
	require.NoError(t, err)
	assert.Contains(t, stdout, "no runs recorded")

	_, _, err = execute(t, "-i", input, "-o", output, "--history", db)
	require.NoError(t, err)

	writeFile(t, input, "{nope}\n")
	_, _, err = execute(t, "-i", input, "-o", output, "--history", db)
	require.Error(t, err)

	stdout, _, err = execute(t, "history", "--history", db)
	require.NoError(t, err)
	assert.Contains(t, stdout, "RUN ID")
	assert.Contains(t, stdout, "succeeded")
	assert.Contains(t, stdout, "failed")
	assert.Contains(t, stdout, "missing_key")

	stdout, _, err = execute(t, "history", "--history", db, "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "failed")
	assert.NotContains(t, stdout, "succeeded")
}

func TestHistoryCmd_NotConfigured(t *testing.T) {
	_, _, err := execute(t, "history")
	assert.ErrorIs(t, err, errNoHistory)
}

func TestPrintError(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	printError(&buf, errors.New("boom"))
	assert.Equal(t, "error: boom\n", buf.String())
}
