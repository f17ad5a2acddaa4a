package backup

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/jagruk/internal/constants"
	"github.com/julianstephens/jagruk/internal/models"
)

// LedgerHeader is the first row of an exported ledger.
var LedgerHeader = []string{"Date", "Category", "Type", "Amount", "Note"}

// ExportJSON serializes the full state as an indented backup document.
func ExportJSON(s models.AppState) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to export state: %w", err)
	}
	return data, nil
}

// BackupFileName returns the export name for a backup taken on now's calendar day.
func BackupFileName(now time.Time) string {
	return constants.ExportFilePrefix + now.Format(constants.DateFormat) + ".json"
}

// LedgerFileName returns the export name for a ledger taken on now's calendar day.
func LedgerFileName(now time.Time) string {
	return constants.LedgerFilePrefix + now.Format(constants.DateFormat) + ".csv"
}

// WriteLedgerCSV writes one row per transaction, dated in loc.
func WriteLedgerCSV(w io.Writer, txns []models.Transaction, loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(LedgerHeader); err != nil {
		return fmt.Errorf("failed to write ledger header: %w", err)
	}
	for _, t := range txns {
		row := []string{
			t.Timestamp.In(loc).Format(constants.DateFormat),
			t.Category,
			string(t.Type),
			decimal.NewFromFloat(t.Amount).StringFixed(2),
			t.Note,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write ledger row %s: %w", t.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush ledger: %w", err)
	}
	return nil
}
