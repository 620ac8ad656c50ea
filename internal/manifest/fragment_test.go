package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stylegen-labs/stylegen/internal/jsondoc"
)

func TestFragment_ValueSemantics(t *testing.T) {
	a := Empty().WithScript("lintjs", "eslint .")
	b := a.WithDevDependencies(map[string]string{"eslint": "^9.0.0"})

	assert.Empty(t, a.DevDependencies(), "With* must not modify the receiver")
	assert.Equal(t, map[string]string{"eslint": "^9.0.0"}, b.DevDependencies())
	assert.Equal(t, []string{"lintjs"}, b.ScriptNames())

	b.DevDependencies()["eslint"] = "mutated"
	assert.Equal(t, "^9.0.0", b.DevDependencies()["eslint"])
}

func TestFragment_LastWriterWins(t *testing.T) {
	f := Empty().
		WithDevDependencies(map[string]string{"eslint": "^8.0.0"}).
		WithDevDependencies(map[string]string{"eslint": "^9.0.0"}).
		WithScript("lintjs", "old").
		WithScript("lintjs", "eslint . --ext js --ext jsx")

	assert.Equal(t, "^9.0.0", f.DevDependencies()["eslint"])
	v, _ := jsondoc.Lookup(f.Document(), "scripts.lintjs")
	assert.Equal(t, "eslint . --ext js --ext jsx", v)
}

func TestFragment_Document(t *testing.T) {
	f := Empty().
		WithDevDependencies(map[string]string{"eslint": "^9.0.0", "stylelint": "^16.0.0"}).
		WithScript("lintcss", "stylelint .")

	assert.Equal(t, jsondoc.Document{
		"scripts":         map[string]any{"lintcss": "stylelint ."},
		"devDependencies": map[string]any{"eslint": "^9.0.0", "stylelint": "^16.0.0"},
		"dependencies":    map[string]any{},
	}, f.Document())

	assert.Equal(t, []string{"eslint", "stylelint"}, f.DevDependencyNames())
	assert.Equal(t, []string{"lintcss"}, f.ScriptNames())
}

func TestMergeIntoPackageJSON_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	f := Empty().WithScript("lintjs", "eslint .").WithDevDependencies(map[string]string{"eslint": "^9.1.0"})

	doc, err := MergeIntoPackageJSON(dir, f)
	require.NoError(t, err)

	onDisk, ok, err := jsondoc.Read(filepath.Join(dir, PackageJSON))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, doc, onDisk)
	assert.Equal(t, map[string]any{}, onDisk["dependencies"])
}

func TestMergeIntoPackageJSON_PreservesExisting(t *testing.T) {
	dir := t.TempDir()
	existing := `{
  "name": "demo",
  "version": "1.0.0",
  "scripts": {"test": "jest"},
  "devDependencies": {"jest": "^29.0.0", "eslint": "^7.0.0"}
}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, PackageJSON), []byte(existing), 0644))

	f := Empty().WithScript("lintjs", "eslint .").WithDevDependencies(map[string]string{"eslint": "^9.1.0"})
	doc, err := MergeIntoPackageJSON(dir, f)
	require.NoError(t, err)

	assert.Equal(t, "demo", doc["name"])
	scripts := doc["scripts"].(map[string]any)
	assert.Equal(t, "jest", scripts["test"])
	assert.Equal(t, "eslint .", scripts["lintjs"])
	devDeps := doc["devDependencies"].(map[string]any)
	assert.Equal(t, "^29.0.0", devDeps["jest"])
	assert.Equal(t, "^9.1.0", devDeps["eslint"])
}

func TestMergeIntoPackageJSON_InvalidExisting(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, PackageJSON), []byte("{"), 0644))

	_, err := MergeIntoPackageJSON(dir, Empty())
	assert.Error(t, err)
}
