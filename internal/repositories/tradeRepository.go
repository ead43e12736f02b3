package repositories

import (
	"AlligatorTradeBot/internal/models"
	"errors"

	"gorm.io/gorm"
)

// TradeRepository is the durable trade ledger backed by the trades table.
// It satisfies the backtest package's TradeLedger interface.
type TradeRepository struct {
	db *gorm.DB
}

// NewTradeRepository creates a new instance of TradeRepository
func NewTradeRepository(db *gorm.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

// RecordOpen inserts a freshly opened trade, populating its surrogate ID.
func (r *TradeRepository) RecordOpen(trade *models.Trade) error {
	if trade == nil {
		return errors.New("trade cannot be nil")
	}
	return r.db.Create(trade).Error
}

// RecordClose persists the exit fields of a closed trade. Trades that never
// made it into the table (an earlier failed open) are inserted instead.
func (r *TradeRepository) RecordClose(trade *models.Trade) error {
	if trade == nil {
		return errors.New("trade cannot be nil")
	}
	if trade.ID == 0 {
		return r.db.Create(trade).Error
	}
	return r.db.Save(trade).Error
}

// FindBySymbol retrieves all trades recorded for a symbol.
func (r *TradeRepository) FindBySymbol(symbol string) ([]models.Trade, error) {
	if symbol == "" {
		return nil, errors.New("invalid symbol")
	}
	var trades []models.Trade
	err := r.db.Where("symbol = ?", symbol).Order("timestamp ASC").Find(&trades).Error
	return trades, err
}

// FindOpenTrades retrieves trades still marked open, useful for spotting
// runs that diverged from the in-memory record.
func (r *TradeRepository) FindOpenTrades() ([]models.Trade, error) {
	var trades []models.Trade
	err := r.db.Where("status = ?", models.TradeStatusOpen).Find(&trades).Error
	return trades, err
}

// GetTotalProfit sums realized profit over all closed trades for a symbol.
func (r *TradeRepository) GetTotalProfit(symbol string) (float64, error) {
	var total float64
	err := r.db.Model(&models.Trade{}).
		Where("symbol = ? AND status = ?", symbol, models.TradeStatusClosed).
		Select("COALESCE(SUM(profit), 0) as total").
		Scan(&total).Error
	return total, err
}
