package strategy

// Signal is the per-bar trade signal. It carries no memory across bars.
type Signal int

const (
	SignalFlat Signal = iota
	SignalLong
	SignalShort
)

func (s Signal) String() string {
	switch s {
	case SignalLong:
		return "long"
	case SignalShort:
		return "short"
	default:
		return "flat"
	}
}

// Thresholds holds the fixed entry filters checked on every bar.
type Thresholds struct {
	TrendStrength float64 // ADX floor for both directions
	MomentumLong  float64 // CMO must exceed this for longs
	MomentumShort float64 // CMO must sit below this for shorts
	StochLong     float64 // Stochastic RSI floor for longs
	StochShort    float64 // Stochastic RSI ceiling for shorts
}

// DefaultThresholds returns the filter set the strategy trades with.
func DefaultThresholds() Thresholds {
	return Thresholds{
		TrendStrength: 30,
		MomentumLong:  40,
		MomentumShort: -40,
		StochLong:     60,
		StochShort:    40,
	}
}
