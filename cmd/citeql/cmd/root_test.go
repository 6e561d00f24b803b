package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsYAMLPathRecognizesBothExtensions(t *testing.T) {
	assert.True(t, isYAMLPath("tables.yaml"))
	assert.True(t, isYAMLPath("tables.yml"))
	assert.False(t, isYAMLPath("tables.json"))
}

func TestBuildEngineUsesEmbeddedDefaultsWhenNoTablesFlag(t *testing.T) {
	tablesPath = ""
	engine, err := buildEngine()
	require.NoError(t, err)
	require.NotNil(t, engine)
}

func TestBuildEngineMergesCustomJSONTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "extra.json")
	custom := `{"reporters":{"Custom. 2d":{"cite_type":"state","name":"Custom Reports, Second Series","editions":{"Custom. 2d":{}}}}}`
	require.NoError(t, os.WriteFile(path, []byte(custom), 0o644))

	tablesPath = path
	defer func() { tablesPath = "" }()

	engine, err := buildEngine()
	require.NoError(t, err)
	require.NotNil(t, engine)
}
