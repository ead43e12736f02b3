package indicators

import "math"

// ATR computes the Average True Range with Wilder smoothing.
func ATR(high, low, close []float64, period int) []float64 {
	out := nanSlice(len(close))
	if period <= 0 || len(close) <= period {
		return out
	}

	tr := make([]float64, len(close))
	tr[0] = high[0] - low[0]
	for i := 1; i < len(close); i++ {
		tr[i] = trueRange(high[i], low[i], close[i-1])
	}

	// Seed with the average of the first period true ranges.
	sum := 0.0
	for i := 1; i <= period; i++ {
		sum += tr[i]
	}
	out[period] = sum / float64(period)

	for i := period + 1; i < len(close); i++ {
		out[i] = (out[i-1]*float64(period-1) + tr[i]) / float64(period)
	}
	return out
}

func trueRange(high, low, prevClose float64) float64 {
	return math.Max(high-low, math.Max(math.Abs(high-prevClose), math.Abs(low-prevClose)))
}
