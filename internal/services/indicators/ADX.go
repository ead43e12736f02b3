package indicators

import "math"

// ADX computes the Average Directional Index with Wilder smoothing.
// Values range 0-100; readings above 25-30 mark a strong trend.
func ADX(high, low, close []float64, period int) []float64 {
	out := nanSlice(len(close))
	if period <= 0 || len(close) <= 2*period {
		return out
	}

	tr := make([]float64, len(close))
	plusDM := make([]float64, len(close))
	minusDM := make([]float64, len(close))
	for i := 1; i < len(close); i++ {
		tr[i] = trueRange(high[i], low[i], close[i-1])

		upMove := high[i] - high[i-1]
		downMove := low[i-1] - low[i]
		if upMove > downMove && upMove > 0 {
			plusDM[i] = upMove
		}
		if downMove > upMove && downMove > 0 {
			minusDM[i] = downMove
		}
	}

	// Wilder-smoothed running sums, seeded over the first period.
	var smTR, smPlus, smMinus float64
	for i := 1; i <= period; i++ {
		smTR += tr[i]
		smPlus += plusDM[i]
		smMinus += minusDM[i]
	}

	dx := nanSlice(len(close))
	dx[period] = directionalIndex(smPlus, smMinus, smTR)

	for i := period + 1; i < len(close); i++ {
		smTR = smTR - smTR/float64(period) + tr[i]
		smPlus = smPlus - smPlus/float64(period) + plusDM[i]
		smMinus = smMinus - smMinus/float64(period) + minusDM[i]
		dx[i] = directionalIndex(smPlus, smMinus, smTR)
	}

	// ADX is the Wilder smoothing of DX, seeded with its first-period mean.
	sum := 0.0
	for i := period; i < 2*period; i++ {
		sum += dx[i]
	}
	out[2*period-1] = sum / float64(period)
	for i := 2 * period; i < len(close); i++ {
		out[i] = (out[i-1]*float64(period-1) + dx[i]) / float64(period)
	}
	return out
}

func directionalIndex(smPlus, smMinus, smTR float64) float64 {
	if smTR == 0 {
		return 0
	}
	plusDI := 100 * smPlus / smTR
	minusDI := 100 * smMinus / smTR
	if plusDI+minusDI == 0 {
		return 0
	}
	return 100 * math.Abs(plusDI-minusDI) / (plusDI + minusDI)
}
