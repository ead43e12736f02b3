package models

import (
	"time"
)

// Trade is one row of the durable trade ledger. ExitPrice and Profit stay
// nil while the trade is open and are filled in on close.
type Trade struct {
	ID         uint      `gorm:"primaryKey"`
	Timestamp  time.Time `gorm:"index;not null"`
	Symbol     string    `gorm:"index;not null"`
	Direction  string    `gorm:"not null"`
	EntryPrice float64   `gorm:"type:decimal(20,8);not null"`
	ExitPrice  *float64  `gorm:"type:decimal(20,8)"`
	Profit     *float64  `gorm:"type:decimal(20,8)"`
	Status     string    `gorm:"not null"`
}

const (
	TradeStatusOpen   = "Open"
	TradeStatusClosed = "Closed"

	TradeDirectionLong  = "Long"
	TradeDirectionShort = "Short"
)

// TableName sets the table name for Trade model
func (Trade) TableName() string {
	return "trades"
}

// Close fills in the exit fields and flips the status.
func (t *Trade) Close(exitPrice, profit float64) {
	t.ExitPrice = &exitPrice
	t.Profit = &profit
	t.Status = TradeStatusClosed
}
