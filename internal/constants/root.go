package constants

import "time"

// Theme is the stored UI theme preference.
type Theme string

const (
	AppName            = "jagruk"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/jagruk"
	DefaultConfigPath  = "~/.config/jagruk/jagruk.db"
	Version            = "v0.3.0"

	// StateKey is the blob-store key holding the serialized AppState.
	StateKey = "jagruk_journal_data"
	// ThemeKey is the blob-store key holding the theme preference.
	ThemeKey = "jagruk_theme"

	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"

	// SaveDebounce is the window in which consecutive mutations collapse into one write.
	SaveDebounce = time.Second

	// MaxImportBytes is the ceiling on a cleaned, serialized imported state.
	MaxImportBytes = 5_000_000

	// Backup constants
	MaxBackups         = 14
	BackupDirName      = "backups"
	BackupFilePrefix   = "jagruk-"
	BackupFileSuffix   = ".json"
	ExportFilePrefix   = "jagruk_backup_"
	LedgerFilePrefix   = "jagruk_ledger_"
	BackupTimestampFmt = "20060102-1504"

	// Streak and trend windows, in days.
	DisciplineThreshold = 5
	MaxStreakLookback   = 365
	WeeklyWindowDays    = 7
	TrendWindowDays     = 30
	SpendSeriesDays     = 7
	PulseWindowDays     = 30
	LedgerLimit         = 30

	// XP rewards
	XPPerLevel        = 100
	MaxLevel          = 10_000
	XPSealDay         = 10
	XPCompleteTodo    = 5
	XPPositiveHabit   = 5
	XPRateDay         = 2
	EnergyCriticalMax = 1
)
