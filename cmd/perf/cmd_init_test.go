package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCommand_WritesConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	var buf bytes.Buffer
	cmd := newInitCommand()
	cmd.SetOut(&buf)
	// Accessible mode: compiler, threshold, scale number (3 = large).
	cmd.SetIn(strings.NewReader("./bin/caffeine\n12.5\n3\n"))
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), "wrote .perf.yaml")

	data, err := os.ReadFile(".perf.yaml")
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "compiler: ./bin/caffeine")
	assert.Contains(t, content, "threshold: 12.5")
	assert.Contains(t, content, "name: complexity")
	assert.Contains(t, content, "scale: large")
	// The scaling suite uses the next scale up.
	assert.Contains(t, content, "name: scaling")
	assert.Contains(t, content, "scale: huge")
}

func TestInitCommand_RefusesToOverwrite(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile(".perf.yaml", []byte("threshold: 5\n"), 0o644))

	cmd := newInitCommand()
	cmd.SetOut(&bytes.Buffer{})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	// The existing config is untouched.
	data, err := os.ReadFile(".perf.yaml")
	require.NoError(t, err)
	assert.Equal(t, "threshold: 5\n", string(data))
}

func TestInitCommand_TooManyArgs(t *testing.T) {
	cmd := newInitCommand()
	cmd.SetArgs([]string{"extra"})
	assert.Error(t, cmd.Execute())
}

func TestNextScaleUp(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"small", "medium"},
		{"large", "huge"},
		{"insane", "absurd"},
		{"absurd", "absurd"}, // largest maps to itself
		{"unknown", "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, nextScaleUp(tt.in), "nextScaleUp(%q)", tt.in)
	}
}
