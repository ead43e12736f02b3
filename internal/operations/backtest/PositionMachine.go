package backtest

import (
	"math"

	"AlligatorTradeBot/internal/models"
	"AlligatorTradeBot/internal/services/strategy"

	"github.com/rs/zerolog"
)

// PositionState is the tagged state of the single position slot.
type PositionState int

const (
	StateFlat PositionState = iota
	StateLong
	StateShort
)

// PositionMachine holds the one open position for an instrument. Each bar
// either opens a position while flat or manages the open one, never both.
// Stop and take-profit distances are recomputed from the current bar's ATR,
// so the exit regime adapts with volatility rather than freezing at entry.
type PositionMachine struct {
	symbol       string
	riskPerTrade float64
	risk         RiskProfile

	// sizingCapital is the run's initial capital; entries are sized off it
	// while capital tracks realized profit.
	sizingCapital float64
	capital       float64

	state        PositionState
	entryPrice   float64
	size         float64 // always unsigned; direction lives in state
	trailingStop float64
	openTrade    *models.Trade

	ledger         TradeLedger
	ledgerFailures int
	log            zerolog.Logger
}

func NewPositionMachine(symbol string, config Config, ledger TradeLedger, log zerolog.Logger) *PositionMachine {
	return &PositionMachine{
		symbol:        symbol,
		riskPerTrade:  config.RiskPerTrade,
		risk:          config.Risk,
		sizingCapital: config.InitialCapital,
		capital:       config.InitialCapital,
		state:         StateFlat,
		ledger:        ledger,
		log:           log,
	}
}

// Capital returns the running portfolio value (updated at trade close only).
func (m *PositionMachine) Capital() float64 {
	return m.capital
}

// State returns the current position state.
func (m *PositionMachine) State() PositionState {
	return m.state
}

// LedgerWriteFailures returns how many trade writes the ledger rejected.
func (m *PositionMachine) LedgerWriteFailures() int {
	return m.ledgerFailures
}

// OnBar advances the state machine by one bar. It returns the trade record
// touched on this bar: a fresh Open trade on entry, the in-place Closed
// trade on exit, nil otherwise.
func (m *PositionMachine) OnBar(bar models.Bar, signal strategy.Signal) *models.Trade {
	if !usableVolatility(bar) {
		m.log.Warn().
			Str("symbol", m.symbol).
			Time("bar", bar.Timestamp).
			Float64("atr", bar.ATR).
			Msg("non-positive ATR, skipping bar")
		return nil
	}

	volFactor := bar.ATR / bar.Close
	stopMult, tpMult := m.risk.Multipliers(volFactor)
	stopDistance := bar.ATR * stopMult
	takeProfitDistance := bar.ATR * tpMult

	if m.state == StateFlat {
		switch signal {
		case strategy.SignalLong:
			return m.open(bar, StateLong, volFactor, stopDistance)
		case strategy.SignalShort:
			return m.open(bar, StateShort, volFactor, stopDistance)
		}
		return nil
	}

	return m.manage(bar, takeProfitDistance)
}

// ForceClose flattens a position still open after the last bar, exiting at
// that bar's close. Returns nil when already flat.
func (m *PositionMachine) ForceClose(bar models.Bar) *models.Trade {
	if m.state == StateFlat {
		return nil
	}
	m.log.Warn().
		Str("symbol", m.symbol).
		Str("direction", m.openTrade.Direction).
		Float64("entry", m.entryPrice).
		Float64("exit", bar.Close).
		Msg("position still open at end of data, forcing close")
	return m.close(bar.Close)
}

func (m *PositionMachine) open(bar models.Bar, state PositionState, volFactor, stopDistance float64) *models.Trade {
	factor := m.risk.SizeFactor(volFactor)
	m.size = (m.sizingCapital * m.riskPerTrade * factor) / stopDistance
	m.entryPrice = bar.Close
	m.state = state

	direction := models.TradeDirectionLong
	if state == StateLong {
		m.trailingStop = m.entryPrice - m.risk.EntryTrailATR*bar.ATR
	} else {
		direction = models.TradeDirectionShort
		m.trailingStop = m.entryPrice + m.risk.EntryTrailATR*bar.ATR
	}

	trade := &models.Trade{
		Timestamp:  bar.Timestamp,
		Symbol:     m.symbol,
		Direction:  direction,
		EntryPrice: m.entryPrice,
		Status:     models.TradeStatusOpen,
	}
	m.openTrade = trade

	if err := m.ledger.RecordOpen(trade); err != nil {
		m.ledgerFailures++
		m.log.Warn().Err(err).Str("symbol", m.symbol).Msg("ledger write failed on open")
	}
	m.log.Info().
		Str("symbol", m.symbol).
		Str("direction", direction).
		Float64("entry", m.entryPrice).
		Float64("size", m.size).
		Float64("trailing_stop", m.trailingStop).
		Msg("position opened")
	return trade
}

func (m *PositionMachine) manage(bar models.Bar, takeProfitDistance float64) *models.Trade {
	if m.state == StateLong {
		// Ratchet only tightens: the stop never moves back down.
		if bar.Close > m.entryPrice+bar.ATR {
			m.trailingStop = math.Max(m.trailingStop, bar.Close-m.risk.RatchetTrailATR*bar.ATR)
		}
		if bar.Close >= m.entryPrice+takeProfitDistance || bar.Close <= m.trailingStop {
			return m.close(bar.Close)
		}
		return nil
	}

	if bar.Close < m.entryPrice-bar.ATR {
		m.trailingStop = math.Min(m.trailingStop, bar.Close+m.risk.RatchetTrailATR*bar.ATR)
	}
	if bar.Close <= m.entryPrice-takeProfitDistance || bar.Close >= m.trailingStop {
		return m.close(bar.Close)
	}
	return nil
}

func (m *PositionMachine) close(exitPrice float64) *models.Trade {
	var profit float64
	if m.state == StateLong {
		profit = (exitPrice - m.entryPrice) * m.size
	} else {
		profit = (m.entryPrice - exitPrice) * m.size
	}
	m.capital += profit

	trade := m.openTrade
	trade.Close(exitPrice, profit)

	if err := m.ledger.RecordClose(trade); err != nil {
		m.ledgerFailures++
		m.log.Warn().Err(err).Str("symbol", m.symbol).Msg("ledger write failed on close")
	}
	m.log.Info().
		Str("symbol", m.symbol).
		Str("direction", trade.Direction).
		Float64("entry", m.entryPrice).
		Float64("exit", exitPrice).
		Float64("profit", profit).
		Float64("capital", m.capital).
		Msg("position closed")

	m.state = StateFlat
	m.entryPrice = 0
	m.size = 0
	m.trailingStop = 0
	m.openTrade = nil
	return trade
}

// usableVolatility guards the divisions in sizing and regime bucketing.
func usableVolatility(bar models.Bar) bool {
	return bar.ATR > 0 && bar.Close > 0 &&
		!math.IsNaN(bar.ATR) && !math.IsNaN(bar.Close)
}
