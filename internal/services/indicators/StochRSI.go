package indicators

import "math"

// StochRSI computes the Stochastic RSI fast %K line: the stochastic of the
// RSI over the same period, smoothed with a short SMA. Values range 0-100.
func StochRSI(values []float64, period, fastK int) []float64 {
	rsi := RSI(values, period)

	stoch := nanSlice(len(values))
	for i := range rsi {
		if math.IsNaN(rsi[i]) {
			continue
		}
		lo, hi := rsi[i], rsi[i]
		complete := true
		for j := i - period + 1; j <= i; j++ {
			if j < 0 || math.IsNaN(rsi[j]) {
				complete = false
				break
			}
			lo = math.Min(lo, rsi[j])
			hi = math.Max(hi, rsi[j])
		}
		if !complete {
			continue
		}
		if hi == lo {
			stoch[i] = 0
			continue
		}
		stoch[i] = 100 * (rsi[i] - lo) / (hi - lo)
	}

	return smoothValid(stoch, fastK)
}

// smoothValid applies an SMA over the trailing fastK values. NaN appears
// only as a warm-up prefix here, so the SMA runs on the computed tail.
func smoothValid(values []float64, n int) []float64 {
	out := nanSlice(len(values))
	if n <= 1 {
		copy(out, values)
		return out
	}
	start := 0
	for start < len(values) && math.IsNaN(values[start]) {
		start++
	}
	copy(out[start:], SMA(values[start:], n))
	return out
}
