package models

import (
	"math"
	"time"
)

// Bar is one row of the precomputed feature table: a daily candle plus the
// indicator values derived from it. Bars are built once by the feature
// builder and never mutated afterwards.
type Bar struct {
	Timestamp time.Time

	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64

	// Alligator trend lines (shifted EMAs)
	Jaw   float64
	Teeth float64
	Lips  float64

	ADX          float64
	CMO          float64
	StochRSI     float64
	ATR          float64
	VolumeChange float64
	EMA50        float64
	MACD         float64
	MACDSignal   float64
}

// Complete reports whether every field the simulation reads is present.
func (b Bar) Complete() bool {
	for _, v := range []float64{
		b.Open, b.High, b.Low, b.Close, b.Volume,
		b.Jaw, b.Teeth, b.Lips,
		b.ADX, b.CMO, b.StochRSI, b.ATR,
		b.VolumeChange, b.EMA50, b.MACD, b.MACDSignal,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
