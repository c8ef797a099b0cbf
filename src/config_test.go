package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigMissingFileGivesDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)

	cfg, err = loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}

func TestLoadConfigJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{
		"driver": "postgres",
		"dsn": "postgres://lab@localhost/vulcan?sslmode=disable",
		"log_level": "debug",
		"width": 1200,
		"height": 700
	}`)

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Driver:   "postgres",
		DSN:      "postgres://lab@localhost/vulcan?sslmode=disable",
		LogLevel: "debug",
		Width:    1200,
		Height:   700,
	}, cfg)
}

func TestLoadConfigYAMLFillsBlanks(t *testing.T) {
	path := writeConfig(t, "config.yaml", "dsn: /data/Vulcanization.db\n")

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite3", cfg.Driver)
	assert.Equal(t, "/data/Vulcanization.db", cfg.DSN)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, float32(960), cfg.Width)
	assert.Equal(t, float32(640), cfg.Height)
}

func TestLoadConfigMalformed(t *testing.T) {
	_, err := loadConfig(writeConfig(t, "config.json", `{"driver": `))
	assert.Error(t, err)

	_, err = loadConfig(writeConfig(t, "config.yml", "driver: [sqlite3\n"))
	assert.Error(t, err)
}

func TestLookupTable(t *testing.T) {
	def, ok := lookupTable(componentsTable)
	require.True(t, ok)
	assert.Equal(t, "Компонентный состав образцов", def.Label)

	_, ok = lookupTable("entries")
	assert.False(t, ok)

	assert.Len(t, tableNames(), 4)
}
