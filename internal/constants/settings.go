package constants

const (
	// Config keys
	SettingStorageDSN      = "storage.dsn"
	SettingStorageDebounce = "storage.debounce"
	SettingTimezone        = "timezone"
	SettingLogDebug        = "log.debug"
	SettingAPIAddr         = "api.addr"
	SettingBackupMax       = "backup.max"

	// EnvPrefix is the prefix for environment overrides (JAGRUK_STORAGE_DSN, ...).
	EnvPrefix = "JAGRUK"
	// EnvConfigFile points at an explicit config file.
	EnvConfigFile = "JAGRUK_CONFIG"
	// EnvDBConnection supplies a full PostgreSQL connection string.
	EnvDBConnection = "JAGRUK_DB_CONNECTION"

	// Default config values
	DefaultTimezone = "Local" // Use system local timezone by default
	DefaultAPIAddr  = "127.0.0.1:7420"

	// Profile defaults
	DefaultReminderMorning = "07:00"
	DefaultDailyBudget     = 500.0
)
