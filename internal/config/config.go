package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/zabdulla/walton-production/internal/parser"
)

// AppConfig is the application configuration, loaded from config.toml next
// to the executable.
type AppConfig struct {
	Server   ServerConfig   `toml:"server"`
	Data     DataConfig     `toml:"data"`
	Business BusinessConfig `toml:"business"`
	Notes    NotesConfig    `toml:"notes"`
}

type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

type DataConfig struct {
	// ReportsDir is scanned for shift report workbooks.
	ReportsDir string `toml:"reports_dir"`
	// OutputDir receives the exported workbooks and CSV.
	OutputDir string `toml:"output_dir"`
	// DataDir holds the SQLite database.
	DataDir string `toml:"data_dir"`
	// LayoutPath points to an optional TOML sheet-layout override.
	LayoutPath string `toml:"layout_path"`
}

type BusinessConfig struct {
	HourlyRate         float64 `toml:"hourly_rate"`
	OverheadMultiplier float64 `toml:"overhead_multiplier"`
	// StrictLayout fails a whole file on a short grid instead of
	// skipping the machine block.
	StrictLayout bool `toml:"strict_layout"`
	// FileMarker selects which workbooks in ReportsDir are shift reports.
	FileMarker string `toml:"file_marker"`
}

type NotesConfig struct {
	// Categories overrides the built-in note keyword table when set.
	Categories []parser.NoteCategory `toml:"categories"`
}

// LoadConfigInfo carries load metadata callers need to resolve flag
// precedence.
type LoadConfigInfo struct {
	PortSpecified bool
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *AppConfig {
	rates := parser.DefaultRates()
	return &AppConfig{
		Server: ServerConfig{
			Port:    20410,
			DevMode: false,
		},
		Data: DataConfig{
			ReportsDir: "reports",
			OutputDir:  "output",
			DataDir:    "data",
		},
		Business: BusinessConfig{
			HourlyRate:         rates.HourlyRate,
			OverheadMultiplier: rates.OverheadMultiplier,
			StrictLayout:       false,
			FileMarker:         "processing weights",
		},
	}
}

// Rates converts the business section into parser rates.
func (c *AppConfig) Rates() parser.Rates {
	return parser.Rates{
		HourlyRate:         c.Business.HourlyRate,
		OverheadMultiplier: c.Business.OverheadMultiplier,
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir returns the directory holding the running executable.
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfigWithInfo loads config.toml and returns load metadata.
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{}
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(config)
			return config, info, nil
		}
		return nil, info, err
	}

	info.PortSpecified = isPortSpecifiedInToml(data)

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, info, err
	}

	applyEnvOverrides(config)
	return config, info, nil
}

// applyEnvOverrides lets local runs redirect the data folders without
// editing config.toml.
func applyEnvOverrides(config *AppConfig) {
	if v := os.Getenv("WALTON_REPORTS_DIR"); v != "" {
		config.Data.ReportsDir = v
	}
	if v := os.Getenv("WALTON_OUTPUT_DIR"); v != "" {
		config.Data.OutputDir = v
	}
	if v := os.Getenv("WALTON_LAYOUT_PATH"); v != "" {
		config.Data.LayoutPath = v
	}
}

// LoadConfig loads config.toml from the executable's directory.
func LoadConfig() (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo()
	return config, err
}

// SaveConfig writes the configuration back to config.toml.
func SaveConfig(config *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// Layout loads the sheet layout, either the configured override or the
// built-in facility layout.
func (c *AppConfig) Layout() (parser.Layout, error) {
	if c.Data.LayoutPath == "" {
		return parser.DefaultLayout(), nil
	}
	return parser.LoadLayout(c.Data.LayoutPath)
}

// EnsureDataDir creates the data directory tree next to the executable.
func EnsureDataDir(config *AppConfig) (string, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	dataDir := filepath.Join(exeDir, config.Data.DataDir)

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	return dataDir, nil
}
