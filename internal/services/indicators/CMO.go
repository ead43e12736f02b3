package indicators

// CMO computes the Chande Momentum Oscillator over a rolling window,
// bounded in [-100, 100].
func CMO(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 || len(values) <= period {
		return out
	}

	gains := make([]float64, len(values))
	losses := make([]float64, len(values))
	for i := 1; i < len(values); i++ {
		delta := values[i] - values[i-1]
		if delta > 0 {
			gains[i] = delta
		} else {
			losses[i] = -delta
		}
	}

	var sumUp, sumDown float64
	for i := 1; i <= period; i++ {
		sumUp += gains[i]
		sumDown += losses[i]
	}
	out[period] = cmoValue(sumUp, sumDown)

	for i := period + 1; i < len(values); i++ {
		sumUp += gains[i] - gains[i-period]
		sumDown += losses[i] - losses[i-period]
		out[i] = cmoValue(sumUp, sumDown)
	}
	return out
}

func cmoValue(sumUp, sumDown float64) float64 {
	if sumUp+sumDown == 0 {
		return 0
	}
	return 100 * (sumUp - sumDown) / (sumUp + sumDown)
}
