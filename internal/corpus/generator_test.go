package corpus

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// snapshotTree reads every file under root into a map keyed by relative path.
func snapshotTree(t *testing.T, root string) map[string]string {
	t.Helper()
	files := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files[rel] = string(data)
		return nil
	})
	require.NoError(t, err)
	return files
}

func TestGenerate_UnknownScale(t *testing.T) {
	err := Generate(t.TempDir(), "gigantic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown corpus scale "gigantic"`)
}

func TestGenerate_SmallLayout(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Generate(dir, "small"))

	files := snapshotTree(t, filepath.Join(dir, "small"))

	bp, ok := files["blueprints.caffeine"]
	require.True(t, ok, "blueprints.caffeine missing")
	assert.Contains(t, bp, `Blueprints for "SLO"`)
	assert.Contains(t, bp, "Requires {")
	assert.Contains(t, bp, `vendor: "datadog",`)
	// small has 2 blueprints, drawn from the front of the service pool.
	assert.Contains(t, bp, `* "checkout_slo":`)
	assert.Contains(t, bp, `* "auth_slo":`)

	// 1 org x 1 team x 1 expectations file.
	var expFiles []string
	for rel := range files {
		if strings.HasPrefix(rel, filepath.Join("expectations", "acme", "platform")) {
			expFiles = append(expFiles, rel)
		}
	}
	require.Len(t, expFiles, 1)

	exp := files[expFiles[0]]
	assert.Contains(t, exp, `Expectations for "checkout_slo"`)
	assert.Contains(t, exp, "threshold: 9")
	assert.Contains(t, exp, "window_in_days: ")
}

func TestGenerate_IsDeterministic(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	require.NoError(t, Generate(dirA, "medium"))
	require.NoError(t, Generate(dirB, "medium"))

	assert.Equal(t,
		snapshotTree(t, filepath.Join(dirA, "medium")),
		snapshotTree(t, filepath.Join(dirB, "medium")))
}

func TestGenerate_ReplacesExistingCorpus(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "small", "stale.caffeine")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0o755))
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))

	require.NoError(t, Generate(dir, "small"))

	_, err := os.Stat(stale)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGenerate_ExpectationFieldsMatchBlueprint(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Generate(dir, "large"))

	files := snapshotTree(t, filepath.Join(dir, "large"))
	bp := files["blueprints.caffeine"]

	for rel, content := range files {
		if rel == "blueprints.caffeine" {
			continue
		}
		name := strings.TrimSuffix(filepath.Base(rel), ".caffeine")
		assert.Contains(t, bp, `* "`+name+`":`, "expectations file %s targets an unknown blueprint", rel)
		// Every expectation provides values for the blueprint's params.
		assert.Contains(t, content, name+"_param_0: ")
	}
}

func TestScaleNames_CoversScalesMap(t *testing.T) {
	names := ScaleNames()
	require.Len(t, names, len(Scales))
	for _, n := range names {
		_, ok := Scales[n]
		assert.True(t, ok, "scale %q missing from Scales", n)
	}
}
