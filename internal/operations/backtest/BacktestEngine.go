package backtest

import (
	"fmt"
	"math"

	"AlligatorTradeBot/internal/models"
	"AlligatorTradeBot/internal/services/strategy"

	"github.com/rs/zerolog"
)

// Engine drives one sequential scan over an instrument's bar sequence:
// signal first, then the position machine, accumulating the trade list and
// the equity curve. Each run gets fresh capital and a fresh machine, so
// separate instruments can run on separate Engines concurrently.
type Engine struct {
	config  Config
	signals *strategy.SignalGenerator
	ledger  TradeLedger
	log     zerolog.Logger
}

func NewEngine(config Config, signals *strategy.SignalGenerator, ledger TradeLedger, log zerolog.Logger) *Engine {
	return &Engine{
		config:  config,
		signals: signals,
		ledger:  ledger,
		log:     log,
	}
}

// Run simulates one instrument over the given time-ascending bars and
// returns the trade list and final portfolio value. The only error it
// returns is ErrInsufficientData; everything else is handled bar-locally.
func (e *Engine) Run(symbol string, bars []models.Bar) (*Results, error) {
	if len(bars) == 0 {
		return nil, fmt.Errorf("%s: empty bar sequence: %w", symbol, ErrInsufficientData)
	}
	for i := range bars {
		if !bars[i].Complete() {
			return nil, fmt.Errorf("%s: bar %d at %s has missing fields: %w",
				symbol, i, bars[i].Timestamp.Format("2006-01-02"), ErrInsufficientData)
		}
	}

	e.log.Info().
		Str("symbol", symbol).
		Int("bars", len(bars)).
		Time("start", bars[0].Timestamp).
		Time("end", bars[len(bars)-1].Timestamp).
		Msg("starting backtest")

	machine := NewPositionMachine(symbol, e.config, e.ledger, e.log)
	trades := make([]*models.Trade, 0)
	equity := []EquityPoint{{Timestamp: bars[0].Timestamp, Capital: e.config.InitialCapital}}

	for _, bar := range bars {
		signal := e.signals.Evaluate(bar)
		trade := machine.OnBar(bar, signal)
		if trade == nil {
			continue
		}
		if trade.Status == models.TradeStatusOpen {
			trades = append(trades, trade)
		} else {
			equity = append(equity, EquityPoint{Timestamp: bar.Timestamp, Capital: machine.Capital()})
		}
	}

	// A run never ends with an open position.
	last := bars[len(bars)-1]
	if trade := machine.ForceClose(last); trade != nil {
		equity = append(equity, EquityPoint{Timestamp: last.Timestamp, Capital: machine.Capital()})
	}

	results := e.calculateResults(symbol, trades, equity, machine.Capital())
	results.LedgerWriteFailures = machine.LedgerWriteFailures()
	return results, nil
}

func (e *Engine) calculateResults(symbol string, trades []*models.Trade, equity []EquityPoint, finalCapital float64) *Results {
	results := &Results{
		Symbol:         symbol,
		InitialCapital: e.config.InitialCapital,
		FinalCapital:   finalCapital,
		Trades:         trades,
		EquityCurve:    equity,
	}
	if len(trades) == 0 {
		return results
	}

	totalProfit := 0.0
	for _, trade := range trades {
		profit := *trade.Profit
		if profit > 0 {
			results.WinningTrades++
		} else {
			results.LosingTrades++
		}
		totalProfit += profit
	}

	results.TotalTrades = len(trades)
	results.WinRate = float64(results.WinningTrades) / float64(results.TotalTrades)
	results.TotalProfit = totalProfit
	results.AverageProfit = totalProfit / float64(results.TotalTrades)
	results.MaxDrawdown = maxDrawdown(equity, e.config.InitialCapital)
	results.SharpeRatio = sharpeRatio(equity)
	return results
}

func maxDrawdown(equity []EquityPoint, initialCapital float64) float64 {
	maxDD := 0.0
	peak := initialCapital
	for _, point := range equity {
		if point.Capital > peak {
			peak = point.Capital
		}
		if peak <= 0 {
			continue
		}
		drawdown := (peak - point.Capital) / peak
		if drawdown > maxDD {
			maxDD = drawdown
		}
	}
	return maxDD
}

func sharpeRatio(equity []EquityPoint) float64 {
	if len(equity) < 2 {
		return 0
	}

	returns := make([]float64, len(equity)-1)
	for i := 1; i < len(equity); i++ {
		if equity[i-1].Capital == 0 {
			return 0
		}
		returns[i-1] = (equity[i].Capital - equity[i-1].Capital) / equity[i-1].Capital
	}

	avgReturn := 0.0
	for _, r := range returns {
		avgReturn += r
	}
	avgReturn /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		variance += math.Pow(r-avgReturn, 2)
	}
	if len(returns) > 1 {
		variance /= float64(len(returns) - 1)
	}
	stdDev := math.Sqrt(variance)
	if stdDev == 0 {
		return 0
	}

	// Annualize assuming daily bars.
	return (avgReturn * 252) / (stdDev * math.Sqrt(252))
}
