package state

import (
	"slices"
	"time"

	"github.com/julianstephens/jagruk/internal/models"
)

// AddTransaction assigns an id, stamps now when no timestamp was given and prepends
// the transaction so the list stays most recent first.
func AddTransaction(s models.AppState, t models.Transaction, now time.Time) (models.AppState, models.Transaction) {
	t.ID = newID()
	if t.Timestamp.IsZero() {
		t.Timestamp = now
	}
	if t.Type == "" {
		t.Type = models.TransactionExpense
	}
	s.Transactions = slices.Insert(slices.Clone(s.Transactions), 0, t)
	return s, t
}
