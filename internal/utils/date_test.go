package utils

import (
	"testing"
	"time"
)

func TestDayKeyAndAddDays(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	ref := time.Date(2026, 3, 1, 23, 30, 0, 0, ist)

	if got := DayKey(ref); got != "2026-03-01" {
		t.Errorf("DayKey() = %q, want 2026-03-01", got)
	}
	if got := DayKey(AddDays(ref, -1)); got != "2026-02-28" {
		t.Errorf("AddDays(-1) = %q, want 2026-02-28", got)
	}
	if got := AddDays(ref, 2); got.Hour() != 0 || got.Location() != ist {
		t.Errorf("AddDays() = %v, want midnight in IST", got)
	}
}

func TestSameLocalDay(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, ist)

	tests := []struct {
		name string
		ts   time.Time
		want bool
	}{
		{"late evening local is stored as same UTC day", time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC), true},
		{"early morning local is previous UTC day", time.Date(2026, 3, 13, 19, 0, 0, 0, time.UTC), true},
		{"next local day", time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameLocalDay(tt.ts, day); got != tt.want {
				t.Errorf("SameLocalDay(%v) = %v, want %v", tt.ts, got, tt.want)
			}
		})
	}

	if got := LocalDayKey(time.Date(2026, 3, 13, 19, 0, 0, 0, time.UTC), ist); got != "2026-03-14" {
		t.Errorf("LocalDayKey() = %q, want 2026-03-14", got)
	}
	if !SameLocalMonth(time.Date(2026, 2, 28, 19, 0, 0, 0, time.UTC), day) {
		t.Error("SameLocalMonth() = false for 1 March IST, want true")
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"2026-03-14T18:00:00.000Z", false},
		{"2026-03-14T18:00:00Z", false},
		{"2026-03-14T23:30:00+05:30", false},
		{"yesterday", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := ParseTimestamp(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseTimestamp(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDate(t *testing.T) {
	if !ValidateDate("2026-02-28") {
		t.Error("ValidateDate(2026-02-28) = false")
	}
	if ValidateDate("2026-02-30") || ValidateDate("14/03/2026") {
		t.Error("ValidateDate accepted an invalid date")
	}
}
