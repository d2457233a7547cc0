/*
Package config manages TOML config for AdaptServe services.
*/
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/bastiangx/adaptserve/internal/utils"
	"github.com/charmbracelet/log"
)

const appDir = "adaptserve"

// Config holds the entire config structure
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Dataset  DatasetConfig  `toml:"dataset"`
	AI       AIConfig       `toml:"ai"`
	Settings SettingsConfig `toml:"settings"`
	CLI      CliConfig      `toml:"cli"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxPrefix         int `toml:"max_prefix"`
	RateLimit         int `toml:"rate_limit"`
	RateWindowSeconds int `toml:"rate_window_seconds"`
}

// RateWindow is the rate limit window as a duration.
func (s ServerConfig) RateWindow() time.Duration {
	return time.Duration(s.RateWindowSeconds) * time.Second
}

// DatasetConfig points at the behavioral log. An empty path uses the embedded sample.
type DatasetConfig struct {
	Path string `toml:"path"`
}

// AIConfig holds options for the hosted completion model.
type AIConfig struct {
	Enabled           bool   `toml:"enabled"`
	Endpoint          string `toml:"endpoint"`
	Deployment        string `toml:"deployment"`
	APIVersion        string `toml:"api_version"`
	APIKeyEnv         string `toml:"api_key_env"`
	TimeoutMs         int    `toml:"timeout_ms"`
	DebounceMs        int    `toml:"debounce_ms"`
	CacheTTLSeconds   int    `toml:"cache_ttl_seconds"`
	CacheSize         int    `toml:"cache_size"`
	RequestsPerSecond int    `toml:"requests_per_second"`
}

// APIKey reads the key from the configured environment variable.
func (a AIConfig) APIKey() string {
	if a.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(a.APIKeyEnv)
}

// Timeout is the per request timeout as a duration.
func (a AIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutMs) * time.Millisecond
}

// Debounce is the AI fetch debounce as a duration.
func (a AIConfig) Debounce() time.Duration {
	return time.Duration(a.DebounceMs) * time.Millisecond
}

// CacheTTL is the response cache lifetime as a duration.
func (a AIConfig) CacheTTL() time.Duration {
	return time.Duration(a.CacheTTLSeconds) * time.Second
}

// SettingsConfig locates the per-user settings database.
// An empty DBPath keeps settings in memory.
type SettingsConfig struct {
	DBPath string `toml:"db_path"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultUser    string `toml:"default_user"`
	SimulateTyping bool   `toml:"simulate_typing"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
// 4. builtin defaults
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		execDir, execErr := utils.GetExecutableDir()
		if execErr != nil {
			return "", execErr
		}
		return execDir, nil
	}
	primaryPath := filepath.Join(homeDir, ".config", appDir)
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	// Not conventional, fallback from ~/.config if not writable
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", appDir)
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from -config flag
// 2. Default path: [UserConfigDir]/adaptserve/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			MaxPrefix:         60,
			RateLimit:         30,
			RateWindowSeconds: 60,
		},
		AI: AIConfig{
			Enabled:           false,
			Deployment:        "gpt-4o-mini",
			APIVersion:        "2024-05-01-preview",
			APIKeyEnv:         "AZURE_OPENAI_API_KEY",
			TimeoutMs:         10000,
			DebounceMs:        300,
			CacheTTLSeconds:   300,
			CacheSize:         1024,
			RequestsPerSecond: 5,
		},
		CLI: CliConfig{
			DefaultUser:    "USER_004_MICHAEL",
			SimulateTyping: true,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse keeps every section that still decodes and defaults the rest.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "dataset"); ok {
		if val, ok := utils.ExtractString(section, "path"); ok {
			config.Dataset.Path = val
		}
	}
	if section, ok := utils.ExtractSection(tempConfig, "ai"); ok {
		extractAIConfig(section, &config.AI)
	}
	if section, ok := utils.ExtractSection(tempConfig, "settings"); ok {
		if val, ok := utils.ExtractString(section, "db_path"); ok {
			config.Settings.DBPath = val
		}
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	return config, nil
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_prefix"); ok {
		server.MaxPrefix = val
	}
	if val, ok := utils.ExtractInt64(data, "rate_limit"); ok {
		server.RateLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "rate_window_seconds"); ok {
		server.RateWindowSeconds = val
	}
}

func extractAIConfig(data map[string]any, ai *AIConfig) {
	if val, ok := utils.ExtractBool(data, "enabled"); ok {
		ai.Enabled = val
	}
	for key, dst := range map[string]*string{
		"endpoint":    &ai.Endpoint,
		"deployment":  &ai.Deployment,
		"api_version": &ai.APIVersion,
		"api_key_env": &ai.APIKeyEnv,
	} {
		if val, ok := utils.ExtractString(data, key); ok {
			*dst = val
		}
	}
	for key, dst := range map[string]*int{
		"timeout_ms":          &ai.TimeoutMs,
		"debounce_ms":         &ai.DebounceMs,
		"cache_ttl_seconds":   &ai.CacheTTLSeconds,
		"cache_size":          &ai.CacheSize,
		"requests_per_second": &ai.RequestsPerSecond,
	} {
		if val, ok := utils.ExtractInt64(data, key); ok {
			*dst = val
		}
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractString(data, "default_user"); ok {
		cli.DefaultUser = val
	}
	if val, ok := utils.ExtractBool(data, "simulate_typing"); ok {
		cli.SimulateTyping = val
	}
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	configDir := filepath.Dir(defaultPath)
	if err := utils.EnsureDir(configDir); err != nil {
		return err
	}
	config := DefaultConfig()
	return utils.SaveTOMLFile(config, defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
