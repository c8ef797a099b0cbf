package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// TableDef describes one of the tables the window can load
type TableDef struct {
	Name  string // SQL identifier
	Label string // button caption
}

// vulcanizationTables is the fixed set of tables, in button order.
var vulcanizationTables = []TableDef{
	{Name: "наименование_экспериментальных_образцов", Label: "Наименование экспериментальных образцов"},
	{Name: "компонентный_состав_образцов", Label: "Компонентный состав образцов"},
	{Name: "условия_проведения_температурно_временного_эксперимента", Label: "Условия проведения температурно временного эксперимента"},
	{Name: "условия_проведения_реометрического_эксперимента", Label: "Условия проведения реометрического эксперимента"},
}

func tableNames() []string {
	names := make([]string, 0, len(vulcanizationTables))
	for _, t := range vulcanizationTables {
		names = append(names, t.Name)
	}
	return names
}

func lookupTable(name string) (TableDef, bool) {
	for _, t := range vulcanizationTables {
		if t.Name == name {
			return t, true
		}
	}
	return TableDef{}, false
}

// Config holds the connection and window settings read from the config file
type Config struct {
	Driver   string  `json:"driver" yaml:"driver"`
	DSN      string  `json:"dsn" yaml:"dsn"`
	LogLevel string  `json:"log_level" yaml:"log_level"`
	Width    float32 `json:"width" yaml:"width"`
	Height   float32 `json:"height" yaml:"height"`
}

func defaultConfig() *Config {
	return &Config{
		Driver:   "sqlite3",
		DSN:      "./vulcanization.db",
		LogLevel: "info",
		Width:    960,
		Height:   640,
	}
}

// loadConfig reads a .json or .yaml config file. A missing file is not an
// error: the defaults are returned instead.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
	default:
		if err := json.Unmarshal(b, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
	}

	// fill anything the file left blank
	def := defaultConfig()
	if cfg.Driver == "" {
		cfg.Driver = def.Driver
	}
	if cfg.DSN == "" {
		cfg.DSN = def.DSN
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = def.LogLevel
	}
	if cfg.Width <= 0 {
		cfg.Width = def.Width
	}
	if cfg.Height <= 0 {
		cfg.Height = def.Height
	}
	return cfg, nil
}
