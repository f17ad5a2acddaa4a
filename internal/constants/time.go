package constants

const (
	// DateFormat keys daily entries and names exports (YYYY-MM-DD).
	DateFormat = "2006-01-02"

	// MonthFormat labels monthly summaries (YYYY-MM).
	MonthFormat = "2006-01"

	// TimeFormat is the reminder time of day (HH:MM).
	TimeFormat = "15:04"
)
