package backtest

import (
	"math"
	"testing"
	"time"

	"AlligatorTradeBot/internal/models"
	"AlligatorTradeBot/internal/services/strategy"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(ledger TradeLedger) *Engine {
	return NewEngine(testConfig(), strategy.NewSignalGenerator(), ledger, zerolog.Nop())
}

// entryBar satisfies every long condition of the signal generator.
func entryBar(day int, close, atr float64) models.Bar {
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, day)
	return models.Bar{
		Timestamp: ts,
		Open:      close - 1, High: close + atr, Low: close - atr, Close: close, Volume: 2000,
		Jaw: close * 0.85, Teeth: close * 0.90, Lips: close * 0.95,
		ADX: 40, CMO: 50, StochRSI: 70,
		ATR: atr, VolumeChange: 0.5,
		EMA50: close * 0.90, MACD: 1, MACDSignal: 0.5,
	}
}

// neutralBar is complete but fires no signal.
func neutralBar(day int, close, atr float64) models.Bar {
	b := bar(day, close, atr)
	return b
}

func TestRunEmptyBars(t *testing.T) {
	engine := newTestEngine(&memoryLedger{})
	results, err := engine.Run("BTCUSDT", nil)
	assert.Nil(t, results)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestRunIncompleteBar(t *testing.T) {
	engine := newTestEngine(&memoryLedger{})
	bars := []models.Bar{neutralBar(0, 100, 2), neutralBar(1, 100, 2)}
	bars[1].ATR = math.NaN()

	results, err := engine.Run("BTCUSDT", bars)
	assert.Nil(t, results)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestRunSidewaysMarketProducesNoTrades(t *testing.T) {
	ledger := &memoryLedger{}
	engine := newTestEngine(ledger)

	bars := make([]models.Bar, 0, 30)
	for i := 0; i < 30; i++ {
		bars = append(bars, neutralBar(i, 100+math.Sin(float64(i))*0.5, 0.5))
	}

	results, err := engine.Run("BTCUSDT", bars)
	require.NoError(t, err)
	assert.Empty(t, results.Trades)
	assert.Zero(t, results.TotalTrades)
	assert.Equal(t, results.InitialCapital, results.FinalCapital)
	assert.Empty(t, ledger.opens)
}

func TestRunEntryExitAndForcedClosure(t *testing.T) {
	ledger := &memoryLedger{}
	engine := newTestEngine(ledger)

	bars := []models.Bar{
		entryBar(0, 100, 2),   // opens long
		neutralBar(1, 108, 2), // take-profit exit at 108
		entryBar(2, 100, 2),   // opens a second long
		neutralBar(3, 101, 2), // no exit condition; run ends here
	}

	results, err := engine.Run("BTCUSDT", bars)
	require.NoError(t, err)
	require.Len(t, results.Trades, 2)

	// Every returned trade is closed; the last one by forced closure.
	for _, trade := range results.Trades {
		assert.Equal(t, models.TradeStatusClosed, trade.Status)
		require.NotNil(t, trade.ExitPrice)
		require.NotNil(t, trade.Profit)
	}

	size := 10000 * 0.03 / 3.5
	assert.InDelta(t, 8*size, *results.Trades[0].Profit, 1e-6)
	assert.InDelta(t, 1*size, *results.Trades[1].Profit, 1e-6)

	// Conservation: final capital is the initial plus all realized profit.
	total := 0.0
	for _, trade := range results.Trades {
		total += *trade.Profit
	}
	assert.InDelta(t, results.InitialCapital+total, results.FinalCapital, 1e-9)

	assert.Equal(t, 2, results.TotalTrades)
	assert.Equal(t, 2, results.WinningTrades)
	assert.InDelta(t, 1.0, results.WinRate, 1e-9)
	assert.Zero(t, results.LedgerWriteFailures)
}

func TestRunNeverHoldsTwoPositions(t *testing.T) {
	ledger := &memoryLedger{}
	engine := newTestEngine(ledger)

	// Entry signal on every bar; only one position may be open at a time,
	// so opens and closes must alternate in the ledger write sequence.
	bars := make([]models.Bar, 0, 12)
	for i := 0; i < 12; i++ {
		bars = append(bars, entryBar(i, 100, 2))
	}

	results, err := engine.Run("BTCUSDT", bars)
	require.NoError(t, err)

	assert.Equal(t, len(ledger.opens), len(ledger.closes))
	assert.Len(t, results.Trades, len(ledger.opens))
	for _, trade := range results.Trades {
		assert.Equal(t, models.TradeStatusClosed, trade.Status)
	}
}

func TestRunToleratesLedgerFailures(t *testing.T) {
	engine := newTestEngine(failingLedger{})

	bars := []models.Bar{
		entryBar(0, 100, 2),
		neutralBar(1, 108, 2),
	}

	results, err := engine.Run("BTCUSDT", bars)
	require.NoError(t, err)
	require.Len(t, results.Trades, 1)
	assert.Equal(t, models.TradeStatusClosed, results.Trades[0].Status)
	assert.InDelta(t, 10685.7142857, results.FinalCapital, 1e-6)
	assert.Equal(t, 2, results.LedgerWriteFailures)
}

func TestRunEquityCurveTracksCloses(t *testing.T) {
	engine := newTestEngine(&memoryLedger{})

	bars := []models.Bar{
		entryBar(0, 100, 2),
		neutralBar(1, 108, 2),
		neutralBar(2, 108, 2),
	}

	results, err := engine.Run("BTCUSDT", bars)
	require.NoError(t, err)
	require.Len(t, results.EquityCurve, 2) // starting point + one close
	assert.Equal(t, results.InitialCapital, results.EquityCurve[0].Capital)
	assert.Equal(t, results.FinalCapital, results.EquityCurve[1].Capital)
}

func TestFreshRunsAreIndependent(t *testing.T) {
	engine := newTestEngine(&memoryLedger{})
	bars := []models.Bar{
		entryBar(0, 100, 2),
		neutralBar(1, 108, 2),
	}

	first, err := engine.Run("BTCUSDT", bars)
	require.NoError(t, err)
	second, err := engine.Run("BTCUSDT", bars)
	require.NoError(t, err)

	assert.Equal(t, first.FinalCapital, second.FinalCapital)
	assert.Equal(t, first.InitialCapital, second.InitialCapital)
}
