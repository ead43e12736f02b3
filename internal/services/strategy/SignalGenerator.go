package strategy

import (
	"AlligatorTradeBot/internal/models"
)

// SignalGenerator maps one feature bar to a trade signal. It is stateless:
// every call looks at the given bar only.
type SignalGenerator struct {
	thresholds Thresholds
}

func NewSignalGenerator() *SignalGenerator {
	return &SignalGenerator{thresholds: DefaultThresholds()}
}

func NewSignalGeneratorWithThresholds(t Thresholds) *SignalGenerator {
	return &SignalGenerator{thresholds: t}
}

// Evaluate returns the signal for a single bar. Every condition in a
// direction must hold; the short check runs second and overwrites the long
// result when both fire.
func (g *SignalGenerator) Evaluate(bar models.Bar) Signal {
	t := g.thresholds
	signal := SignalFlat

	if bar.Lips > bar.Teeth && bar.Teeth > bar.Jaw &&
		bar.Close > bar.Lips &&
		bar.ADX > t.TrendStrength &&
		bar.CMO > t.MomentumLong &&
		bar.StochRSI > t.StochLong &&
		bar.VolumeChange > 0 &&
		bar.Close > bar.EMA50 &&
		bar.MACD > bar.MACDSignal {
		signal = SignalLong
	}

	if bar.Lips < bar.Teeth && bar.Teeth < bar.Jaw &&
		bar.Close < bar.Lips &&
		bar.ADX > t.TrendStrength &&
		bar.CMO < t.MomentumShort &&
		bar.StochRSI < t.StochShort &&
		bar.VolumeChange < 0 &&
		bar.Close < bar.EMA50 &&
		bar.MACD < bar.MACDSignal {
		signal = SignalShort
	}

	return signal
}
