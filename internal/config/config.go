package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/julianstephens/jagruk/internal/constants"
	"github.com/julianstephens/jagruk/internal/utils"
)

// Config holds application configuration.
type Config struct {
	Storage  StorageConfig
	Timezone string
	Log      LogConfig
	API      APIConfig
	Backup   BackupConfig
}

// StorageConfig selects the blob store and the persistence debounce window.
type StorageConfig struct {
	DSN      string
	Debounce time.Duration
}

type LogConfig struct {
	Debug bool
}

type APIConfig struct {
	Addr string
}

type BackupConfig struct {
	Max int
}

// Load reads configuration from an optional TOML file, .env and the environment.
// Environment overrides use the JAGRUK_ prefix (JAGRUK_STORAGE_DSN, JAGRUK_LOG_DEBUG, ...).
// An explicit path that does not exist is an error; the default location is optional.
func Load(path string) (Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault(constants.SettingStorageDSN, constants.DefaultConfigPath)
	v.SetDefault(constants.SettingStorageDebounce, constants.SaveDebounce.String())
	v.SetDefault(constants.SettingTimezone, constants.DefaultTimezone)
	v.SetDefault(constants.SettingLogDebug, false)
	v.SetDefault(constants.SettingAPIAddr, constants.DefaultAPIAddr)
	v.SetDefault(constants.SettingBackupMax, constants.MaxBackups)

	v.SetConfigType("toml")
	if path == "" {
		path = os.Getenv(constants.EnvConfigFile)
	}
	if path != "" {
		v.SetConfigFile(ExpandHome(path))
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.AddConfigPath(ExpandHome(constants.DefaultConfigDir))
		v.SetConfigName("config")
		_ = v.ReadInConfig()
	}

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Save writes cfg as TOML, creating the directory when needed.
func Save(path string, cfg Config) error {
	path = ExpandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set(constants.SettingStorageDSN, cfg.Storage.DSN)
	v.Set(constants.SettingStorageDebounce, cfg.Storage.Debounce.String())
	v.Set(constants.SettingTimezone, cfg.Timezone)
	v.Set(constants.SettingLogDebug, cfg.Log.Debug)
	v.Set(constants.SettingAPIAddr, cfg.API.Addr)
	v.Set(constants.SettingBackupMax, cfg.Backup.Max)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate rejects values the rest of the application cannot work with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Storage.DSN) == "" {
		return fmt.Errorf("%s must not be empty", constants.SettingStorageDSN)
	}
	if c.Storage.Debounce < 0 {
		return fmt.Errorf("%s must not be negative, got %s", constants.SettingStorageDebounce, c.Storage.Debounce)
	}
	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("invalid %s %q", constants.SettingTimezone, c.Timezone)
	}
	if c.Backup.Max < 1 {
		return fmt.Errorf("%s must be at least 1, got %d", constants.SettingBackupMax, c.Backup.Max)
	}
	return nil
}

// Location resolves the configured timezone.
func (c Config) Location() (*time.Location, error) {
	return utils.LoadLocation(c.Timezone)
}

// ConfigDir is the directory holding logs and backups: the directory of a file DSN,
// or the default config directory for network stores.
func (c Config) ConfigDir() string {
	switch StorageKind(c.Storage.DSN) {
	case KindPostgres, KindRedis, KindMemory:
		return ExpandHome(constants.DefaultConfigDir)
	}
	return filepath.Dir(ExpandHome(c.Storage.DSN))
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
