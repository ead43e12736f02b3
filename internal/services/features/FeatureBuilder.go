package features

import (
	"AlligatorTradeBot/internal/models"
	"AlligatorTradeBot/internal/services/indicators"
	"errors"
	"math"
	"sort"
)

// Indicator parameters for the daily feature table.
const (
	ADXPeriod      = 14
	CMOPeriod      = 14
	StochRSIPeriod = 14
	StochRSIFastK  = 3
	ATRPeriod      = 14
	LongEMAPeriod  = 50
	MACDFast       = 12
	MACDSlow       = 26
	MACDSignal     = 9
)

// MinHistory is the shortest raw price series the builder accepts; anything
// less cannot warm up the slowest indicator.
const MinHistory = LongEMAPeriod + 1

var ErrInsufficientHistory = errors.New("not enough price history to build feature table")

// Build turns raw daily candles into the per-bar feature table consumed by
// the backtest. Interior gaps are forward-filled and the indicator warm-up
// rows are dropped, so every returned bar is complete.
func Build(prices []models.Price) ([]models.Bar, error) {
	sorted := make([]models.Price, len(prices))
	copy(sorted, prices)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OpenTime.Before(sorted[j].OpenTime)
	})

	// A store fed by repeated fetch runs can hand back the same candle more
	// than once; keep the newest row per open time so duplicated ingestion
	// cannot distort the indicator columns.
	deduped := sorted[:0]
	for _, p := range sorted {
		if len(deduped) > 0 && deduped[len(deduped)-1].OpenTime.Equal(p.OpenTime) {
			deduped[len(deduped)-1] = p
			continue
		}
		deduped = append(deduped, p)
	}
	sorted = deduped

	if len(sorted) < MinHistory {
		return nil, ErrInsufficientHistory
	}

	n := len(sorted)
	high := make([]float64, n)
	low := make([]float64, n)
	closes := make([]float64, n)
	volume := make([]float64, n)
	for i, p := range sorted {
		high[i] = p.High
		low[i] = p.Low
		closes[i] = p.Close
		volume[i] = p.Volume
	}

	jaw, teeth, lips := indicators.Alligator(closes)
	adx := indicators.ADX(high, low, closes, ADXPeriod)
	cmo := indicators.CMO(closes, CMOPeriod)
	stochRSI := indicators.StochRSI(closes, StochRSIPeriod, StochRSIFastK)
	atr := indicators.ATR(high, low, closes, ATRPeriod)
	volumeChange := indicators.PctChange(volume)
	ema50 := indicators.EMA(closes, LongEMAPeriod)
	macd, macdSignal := indicators.MACD(closes, MACDFast, MACDSlow, MACDSignal)

	columns := [][]float64{jaw, teeth, lips, adx, cmo, stochRSI, atr, volumeChange, ema50, macd, macdSignal}
	for _, col := range columns {
		forwardFill(col)
	}

	bars := make([]models.Bar, 0, n)
	for i, p := range sorted {
		bar := models.Bar{
			Timestamp:    p.OpenTime,
			Open:         p.Open,
			High:         p.High,
			Low:          p.Low,
			Close:        p.Close,
			Volume:       p.Volume,
			Jaw:          jaw[i],
			Teeth:        teeth[i],
			Lips:         lips[i],
			ADX:          adx[i],
			CMO:          cmo[i],
			StochRSI:     stochRSI[i],
			ATR:          atr[i],
			VolumeChange: volumeChange[i],
			EMA50:        ema50[i],
			MACD:         macd[i],
			MACDSignal:   macdSignal[i],
		}
		// Warm-up rows are incomplete even after the fill; skip until the
		// slowest indicator has a value.
		if len(bars) == 0 && !bar.Complete() {
			continue
		}
		bars = append(bars, bar)
	}

	if len(bars) == 0 {
		return nil, ErrInsufficientHistory
	}
	return bars, nil
}

// forwardFill replaces interior NaN values with the last seen value,
// leaving leading NaNs untouched.
func forwardFill(values []float64) {
	last := math.NaN()
	for i, v := range values {
		if math.IsNaN(v) {
			if !math.IsNaN(last) {
				values[i] = last
			}
			continue
		}
		last = v
	}
}
