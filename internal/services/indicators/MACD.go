package indicators

import "math"

// MACD computes the moving average convergence/divergence line
// (fast EMA minus slow EMA) and its signal line (EMA of the MACD line).
func MACD(values []float64, fast, slow, signalPeriod int) (macd, signal []float64) {
	macd = nanSlice(len(values))
	signal = nanSlice(len(values))

	fastEMA := EMA(values, fast)
	slowEMA := EMA(values, slow)
	for i := range values {
		if math.IsNaN(fastEMA[i]) || math.IsNaN(slowEMA[i]) {
			continue
		}
		macd[i] = fastEMA[i] - slowEMA[i]
	}

	// Signal line: EMA of the MACD line, seeded with the SMA of its first
	// signalPeriod valid values.
	start := slow - 1
	if start+signalPeriod > len(values) {
		return macd, signal
	}
	sum := 0.0
	for i := start; i < start+signalPeriod; i++ {
		sum += macd[i]
	}
	idx := start + signalPeriod - 1
	signal[idx] = sum / float64(signalPeriod)

	multiplier := 2.0 / float64(signalPeriod+1)
	for i := idx + 1; i < len(values); i++ {
		signal[i] = (macd[i]-signal[i-1])*multiplier + signal[i-1]
	}
	return macd, signal
}
