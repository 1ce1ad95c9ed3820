package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetGenerateGlobals() {
	generateOut = ""
	generateScales = nil
}

func TestGenerateCommand_SingleScale(t *testing.T) {
	resetGenerateGlobals()
	out := t.TempDir()

	var buf bytes.Buffer
	cmd := newGenerateCommand()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--out", out, "--scale", "small"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), "generated small corpus")
	assert.FileExists(t, filepath.Join(out, "small", "blueprints.caffeine"))
	assert.NoDirExists(t, filepath.Join(out, "medium"))
}

func TestGenerateCommand_MultipleScales(t *testing.T) {
	resetGenerateGlobals()
	out := t.TempDir()

	cmd := newGenerateCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--out", out, "--scale", "small", "--scale", "medium"})
	require.NoError(t, cmd.Execute())

	assert.FileExists(t, filepath.Join(out, "small", "blueprints.caffeine"))
	assert.FileExists(t, filepath.Join(out, "medium", "blueprints.caffeine"))
}

func TestGenerateCommand_UnknownScale(t *testing.T) {
	resetGenerateGlobals()

	cmd := newGenerateCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--out", t.TempDir(), "--scale", "gigantic"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown corpus scale")
}

func TestGenerateCommand_DefaultOutFromConfig(t *testing.T) {
	resetGenerateGlobals()
	t.Chdir(t.TempDir())

	cmd := newGenerateCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--scale", "small"})
	require.NoError(t, cmd.Execute())

	// Default corpus dir comes from the project config.
	assert.FileExists(t, filepath.Join("corpus", "small", "blueprints.caffeine"))
}

func TestGenerateCommand_RejectsPositionalArgs(t *testing.T) {
	resetGenerateGlobals()

	cmd := newGenerateCommand()
	cmd.SetArgs([]string{"small"})
	assert.Error(t, cmd.Execute())
}
