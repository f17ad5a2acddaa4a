package models

import "time"

type TransactionType string

const (
	TransactionExpense TransactionType = "EXPENSE"
	TransactionIncome  TransactionType = "INCOME"
)

type UnitType string

const (
	UnitStick UnitType = "stick"
	UnitGram  UnitType = "g"
	UnitDrink UnitType = "drink"
	UnitCup   UnitType = "cup"
	UnitUnit  UnitType = "unit"
)

// Transaction is an immutable ledger record. Corrections are new transactions.
type Transaction struct {
	ID           string          `json:"id"`
	Timestamp    time.Time       `json:"timestamp"`
	Amount       float64         `json:"amount"`
	Type         TransactionType `json:"type"`
	Category     string          `json:"category"`
	IsHabit      bool            `json:"isHabit"`
	UnitQuantity float64         `json:"unitQuantity,omitempty"`
	UnitType     UnitType        `json:"unitType,omitempty"`
	Mood         Mood            `json:"mood,omitempty"`
	Note         string          `json:"note,omitempty"`
}

// IsExpense reports whether the transaction counts toward spend.
func (t Transaction) IsExpense() bool {
	return t.Type == TransactionExpense
}
