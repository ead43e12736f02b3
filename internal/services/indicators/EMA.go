package indicators

import "math"

// EMA computes an exponential moving average seeded with the SMA of the
// first period values. Positions before the seed hold NaN.
func EMA(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 || len(values) < period {
		return out
	}

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += values[i]
	}
	out[period-1] = sum / float64(period)

	multiplier := 2.0 / float64(period+1)
	for i := period; i < len(values); i++ {
		out[i] = (values[i]-out[i-1])*multiplier + out[i-1]
	}
	return out
}

// SmoothedEMA computes an EMA seeded with the first value instead of an
// initial SMA, the recursive form used for the Alligator trend lines.
func SmoothedEMA(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 || len(values) == 0 {
		return out
	}

	multiplier := 2.0 / float64(period+1)
	prev := math.NaN()
	for i, v := range values {
		if math.IsNaN(prev) {
			prev = v
		} else {
			prev = (v-prev)*multiplier + prev
		}
		out[i] = prev
	}
	return out
}
