package strategy

import (
	"testing"
	"time"

	"AlligatorTradeBot/internal/models"

	"github.com/stretchr/testify/assert"
)

func longSetupBar() models.Bar {
	return models.Bar{
		Timestamp:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Open:         99, High: 111, Low: 98, Close: 110, Volume: 1500,
		Lips: 105, Teeth: 100, Jaw: 95,
		ADX: 35, CMO: 50, StochRSI: 70,
		ATR: 2, VolumeChange: 0.2,
		EMA50: 100, MACD: 2, MACDSignal: 1,
	}
}

func shortSetupBar() models.Bar {
	return models.Bar{
		Timestamp:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Open:         91, High: 92, Low: 79, Close: 80, Volume: 1500,
		Lips: 85, Teeth: 90, Jaw: 95,
		ADX: 35, CMO: -50, StochRSI: 30,
		ATR: 2, VolumeChange: -0.2,
		EMA50: 100, MACD: -2, MACDSignal: -1,
	}
}

func TestEvaluateLongSetup(t *testing.T) {
	gen := NewSignalGenerator()
	assert.Equal(t, SignalLong, gen.Evaluate(longSetupBar()))
}

func TestEvaluateShortSetup(t *testing.T) {
	gen := NewSignalGenerator()
	assert.Equal(t, SignalShort, gen.Evaluate(shortSetupBar()))
}

func TestEvaluateSidewaysIsFlat(t *testing.T) {
	gen := NewSignalGenerator()
	bar := longSetupBar()
	bar.Lips, bar.Teeth, bar.Jaw = 100, 100, 100
	assert.Equal(t, SignalFlat, gen.Evaluate(bar))
}

func TestEvaluateLongEachConditionRequired(t *testing.T) {
	breakers := map[string]func(*models.Bar){
		"lips not above teeth":  func(b *models.Bar) { b.Lips = b.Teeth },
		"teeth not above jaw":   func(b *models.Bar) { b.Teeth = b.Jaw },
		"close not above lips":  func(b *models.Bar) { b.Close = b.Lips },
		"weak trend":            func(b *models.Bar) { b.ADX = 30 },
		"weak momentum":         func(b *models.Bar) { b.CMO = 40 },
		"weak stochastic":       func(b *models.Bar) { b.StochRSI = 60 },
		"no volume expansion":   func(b *models.Bar) { b.VolumeChange = 0 },
		"below long-period avg": func(b *models.Bar) { b.EMA50 = b.Close + 1 },
		"macd below signal":     func(b *models.Bar) { b.MACD = b.MACDSignal },
	}

	gen := NewSignalGenerator()
	for name, mutate := range breakers {
		bar := longSetupBar()
		mutate(&bar)
		assert.Equalf(t, SignalFlat, gen.Evaluate(bar), "expected flat when %s", name)
	}
}

func TestEvaluateShortEachConditionRequired(t *testing.T) {
	breakers := map[string]func(*models.Bar){
		"lips not below teeth":  func(b *models.Bar) { b.Lips = b.Teeth },
		"teeth not below jaw":   func(b *models.Bar) { b.Teeth = b.Jaw },
		"close not below lips":  func(b *models.Bar) { b.Close = b.Lips },
		"weak trend":            func(b *models.Bar) { b.ADX = 30 },
		"weak momentum":         func(b *models.Bar) { b.CMO = -40 },
		"strong stochastic":     func(b *models.Bar) { b.StochRSI = 40 },
		"no volume contraction": func(b *models.Bar) { b.VolumeChange = 0 },
		"above long-period avg": func(b *models.Bar) { b.EMA50 = b.Close - 1 },
		"macd above signal":     func(b *models.Bar) { b.MACD = b.MACDSignal },
	}

	gen := NewSignalGenerator()
	for name, mutate := range breakers {
		bar := shortSetupBar()
		mutate(&bar)
		assert.Equalf(t, SignalFlat, gen.Evaluate(bar), "expected flat when %s", name)
	}
}

func TestEvaluateThresholdsAreStrict(t *testing.T) {
	gen := NewSignalGenerator()

	// Exactly at threshold must not fire in either direction.
	bar := longSetupBar()
	bar.ADX = 30
	assert.Equal(t, SignalFlat, gen.Evaluate(bar))

	bar = shortSetupBar()
	bar.StochRSI = 40
	assert.Equal(t, SignalFlat, gen.Evaluate(bar))
}

func TestEvaluateIsStateless(t *testing.T) {
	gen := NewSignalGenerator()
	bar := longSetupBar()
	first := gen.Evaluate(bar)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, gen.Evaluate(bar))
	}
}
