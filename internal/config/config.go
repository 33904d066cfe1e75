package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"todocal/backend"
	"todocal/internal/utils"
	"todocal/internal/views"

	_ "embed"
)

var customConfigPath string // Custom config path set via --config flag

//go:embed config.sample.yaml
var sampleConfig []byte

const (
	CONFIG_DIR_PATH  = "todocal"
	CONFIG_FILE_PATH = "config.yaml"
	CONFIG_DIR_PERM  = 0755
	CONFIG_FILE_PERM = 0644

	// ENV_BASE_URL overrides base_url from the config file
	ENV_BASE_URL = "TODOCAL_BASE_URL"
	// ENV_CONFIG points at an alternative config file
	ENV_CONFIG = "TODOCAL_CONFIG"

	DefaultLogFile = "todocal-debug.log"
)

// Config represents the application configuration
type Config struct {
	BaseURL         string        `yaml:"base_url" validate:"required,url"`
	DefaultCategory string        `yaml:"default_category"`
	DateFormat      string        `yaml:"date_format,omitempty"`
	RequestTimeout  time.Duration `yaml:"request_timeout" validate:"min=0"`
	LogFile         string        `yaml:"log_file,omitempty"`
	UI              UIConfig      `yaml:"ui"`
}

// UIConfig holds terminal UI preferences
type UIConfig struct {
	Theme            string            `yaml:"theme" validate:"omitempty,oneof=classic mono"`
	StartView        string            `yaml:"start_view" validate:"omitempty,oneof=list calendar"`
	StartFilter      string            `yaml:"start_filter" validate:"omitempty,oneof=all incomplete completed"`
	MaxCalendarItems int               `yaml:"max_calendar_items" validate:"min=0,max=10"`
	Fields           map[string]string `yaml:"fields,omitempty"`
}

// Validate checks struct tags and the field format overrides
func (c Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return utils.ErrInvalidConfig(yamlName(fe.Namespace()), fmt.Sprintf("failed on '%s' (value %v)", fe.Tag(), fe.Value()))
		}
		return err
	}

	if err := views.FieldFormats(c.UI.Fields).Validate(); err != nil {
		return utils.ErrInvalidConfig("ui.fields", err.Error())
	}

	return nil
}

// yamlName maps a validator namespace like "Config.UI.Theme" to a rough
// config key for error messages
func yamlName(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	names := map[string]string{
		"BaseURL":          "base_url",
		"RequestTimeout":   "request_timeout",
		"UI":               "ui",
		"Theme":            "theme",
		"StartView":        "start_view",
		"StartFilter":      "start_filter",
		"MaxCalendarItems": "max_calendar_items",
	}
	for i, p := range parts {
		if n, ok := names[p]; ok {
			parts[i] = n
		}
	}
	return strings.Join(parts, ".")
}

// applyDefaults fills optional settings left empty
func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.DefaultCategory) == "" {
		c.DefaultCategory = backend.DefaultCategory
	}
	if c.UI.Theme == "" {
		c.UI.Theme = views.ThemeClassic
	}
	if c.UI.StartView == "" {
		c.UI.StartView = "list"
	}
	if c.UI.StartFilter == "" {
		c.UI.StartFilter = string(backend.FilterAll)
	}
}

// applyEnv lets the environment override file settings
func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(ENV_BASE_URL)); v != "" {
		c.BaseURL = v
	}
}

func (c *Config) GetDateFormat() string {
	if c.DateFormat == "" {
		return "2006. 1. 2. 15:04:05"
	}
	return c.DateFormat
}

// ItemsPerCell returns how many todos a calendar cell shows before "+N"
func (c *Config) ItemsPerCell() int {
	if c.UI.MaxCalendarItems <= 0 {
		return 3
	}
	return c.UI.MaxCalendarItems
}

// GetLogFile returns the expanded TUI log path
func (c *Config) GetLogFile() string {
	if c.LogFile == "" {
		return DefaultLogFile
	}
	expanded, err := utils.ExpandPath(c.LogFile)
	if err != nil {
		return c.LogFile
	}
	return expanded
}

// Marshal renders the config as YAML
func (c *Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LoadDotEnv loads a .env file into the process environment.
// A missing file is not an error; existing variables are never overwritten.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// SetCustomConfigPath sets a custom config path to use instead of the default user config directory.
// If path is a directory, it looks for "config.yaml" inside it.
func SetCustomConfigPath(path string) {
	if path == "" {
		customConfigPath = ""
		return
	}
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		customConfigPath = filepath.Join(path, CONFIG_FILE_PATH)
	} else {
		customConfigPath = path
	}
}

// GetConfigPath resolves the config file: --config, then TODOCAL_CONFIG, then
// the user config directory
func GetConfigPath() (string, error) {
	if customConfigPath != "" {
		return utils.ExpandPath(customConfigPath)
	}

	if env := strings.TrimSpace(os.Getenv(ENV_CONFIG)); env != "" {
		return utils.ExpandPath(env)
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	return filepath.Join(dir, CONFIG_DIR_PATH, CONFIG_FILE_PATH), nil
}

// LoadConfig reads the file at path, falling back to the embedded sample
// when it does not exist, then applies environment overrides and defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		utils.Debugf("config file %s not found, using built-in defaults", path)
		data = sampleConfig
	} else if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	return parseConfig(data, path)
}

func parseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, utils.WrapWithSuggestion(
			fmt.Errorf("invalid YAML in config file %s: %w", path, err),
			"Fix the syntax or run 'todocal config init --force' to start over",
		)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SampleConfig returns the embedded default configuration
func SampleConfig() []byte {
	return sampleConfig
}

// InitConfig writes the sample config to path. An existing file is kept
// unless force is set.
func InitConfig(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return utils.WrapWithSuggestion(
			fmt.Errorf("config file already exists at %s", path),
			"Pass --force to overwrite it",
		)
	}

	if err := utils.EnsureParentDir(path, CONFIG_DIR_PERM); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	return WriteConfigFile(path, sampleConfig)
}

func WriteConfigFile(configPath string, data []byte) error {
	return os.WriteFile(configPath, data, CONFIG_FILE_PERM)
}
