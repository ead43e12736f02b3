package backtest

import (
	"errors"
	"time"

	"AlligatorTradeBot/internal/models"
)

// ErrInsufficientData is returned when the bar sequence is empty or carries
// incomplete feature rows; the simulation loop never starts in that case.
var ErrInsufficientData = errors.New("insufficient feature data for backtest")

// TradeLedger is the durable sink trades are written through to. A failed
// write is logged and tolerated; the in-memory trade list stays the
// authoritative record of a run and Results.LedgerWriteFailures reports
// how many writes were lost.
type TradeLedger interface {
	RecordOpen(trade *models.Trade) error
	RecordClose(trade *models.Trade) error
}

// Config holds the per-run knobs of the simulation.
type Config struct {
	InitialCapital float64
	RiskPerTrade   float64 // fraction of capital risked per entry
	Risk           RiskProfile
}

// NewConfig returns the default simulation config.
func NewConfig() Config {
	return Config{
		InitialCapital: 10000,
		RiskPerTrade:   0.03,
		Risk:           DefaultRiskProfile(),
	}
}

// RiskProfile groups the volatility-regime thresholds and multipliers that
// drive stop, target and sizing decisions.
type RiskProfile struct {
	// Regime bucket boundaries on ATR/close.
	LowVolatility  float64
	HighVolatility float64

	// Stop-loss and take-profit ATR multipliers per bucket.
	LowStopMult  float64
	LowTPMult    float64
	MidStopMult  float64
	MidTPMult    float64
	HighStopMult float64
	HighTPMult   float64

	// Entry sizing: factor = clamp(TargetVolatility/volFactor, min, max).
	TargetVolatility float64
	MinSizeFactor    float64
	MaxSizeFactor    float64

	// Trailing stop ATR multipliers at entry and on ratchet.
	EntryTrailATR   float64
	RatchetTrailATR float64
}

// DefaultRiskProfile returns the production parameter set.
func DefaultRiskProfile() RiskProfile {
	return RiskProfile{
		LowVolatility:    0.01,
		HighVolatility:   0.02,
		LowStopMult:      2.0,
		LowTPMult:        4.0,
		MidStopMult:      1.75,
		MidTPMult:        3.5,
		HighStopMult:     1.5,
		HighTPMult:       3.0,
		TargetVolatility: 0.02,
		MinSizeFactor:    0.5,
		MaxSizeFactor:    1.5,
		EntryTrailATR:    1.0,
		RatchetTrailATR:  1.5,
	}
}

// Multipliers maps a volatility factor (ATR/close) to the stop and
// take-profit ATR multipliers of its regime bucket. The bucket boundaries
// themselves fall into the middle regime.
func (r RiskProfile) Multipliers(volFactor float64) (stopMult, tpMult float64) {
	if volFactor < r.LowVolatility {
		return r.LowStopMult, r.LowTPMult
	}
	if volFactor > r.HighVolatility {
		return r.HighStopMult, r.HighTPMult
	}
	return r.MidStopMult, r.MidTPMult
}

// SizeFactor scales entries inversely with volatility, clamped to
// [MinSizeFactor, MaxSizeFactor].
func (r RiskProfile) SizeFactor(volFactor float64) float64 {
	factor := r.TargetVolatility / volFactor
	if factor < r.MinSizeFactor {
		return r.MinSizeFactor
	}
	if factor > r.MaxSizeFactor {
		return r.MaxSizeFactor
	}
	return factor
}

// EquityPoint tracks portfolio value over the run; points are appended at
// every trade close.
type EquityPoint struct {
	Timestamp time.Time
	Capital   float64
}

// Results is the outcome of a single-instrument run.
type Results struct {
	Symbol         string
	InitialCapital float64
	FinalCapital   float64

	TotalTrades   int
	WinningTrades int
	LosingTrades  int
	WinRate       float64
	TotalProfit   float64
	AverageProfit float64
	MaxDrawdown   float64
	SharpeRatio   float64

	// LedgerWriteFailures counts trade writes the durable sink rejected;
	// those trades exist only in the Trades list.
	LedgerWriteFailures int

	Trades      []*models.Trade
	EquityCurve []EquityPoint
}
