package models

import "time"

const (
	FinancialKindIncome  = "income"
	FinancialKindExpense = "expense"
)

// FinancialRecord is written when an appointment completes (income, amount
// frozen at completion time) or via the manual income/expense entry.
// Deleting an appointment does not reverse its record.
type FinancialRecord struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AmountMinor int64  `json:"amount_minor"`
	Kind        string `gorm:"size:10;not null" json:"kind"`
	Category    string `gorm:"size:50" json:"category"`
	Description string `gorm:"size:255" json:"description"`

	CreatedAt time.Time `json:"created_at"`
}
