package models

import (
	"time"
)

// Price is one raw candle. A candle is identified by (symbol, timeframe,
// open time); the unique index lets re-fetches skip rows already stored.
type Price struct {
	ID         uint      `gorm:"primaryKey"`
	Symbol     string    `gorm:"uniqueIndex:idx_prices_candle,priority:1;not null"`
	TimeFrame  string    `gorm:"uniqueIndex:idx_prices_candle,priority:2;not null"`
	OpenTime   time.Time `gorm:"uniqueIndex:idx_prices_candle,priority:3;not null"`
	CloseTime  time.Time `gorm:"index"`
	Open       float64   `gorm:"type:decimal(20,8)"`
	Close      float64   `gorm:"type:decimal(20,8)"`
	High       float64   `gorm:"type:decimal(20,8)"`
	Low        float64   `gorm:"type:decimal(20,8)"`
	Volume     float64   `gorm:"type:decimal(20,8)"`
	TradeCount int64
}

const (
	PriceTimeFrame1d = "1d"
)

// TableName sets the table name for Price model
func (Price) TableName() string {
	return "prices"
}
