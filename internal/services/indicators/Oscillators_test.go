package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func risingSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 100 + float64(i)
	}
	return out
}

func fallingSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 200 - float64(i)
	}
	return out
}

func TestCMOBounds(t *testing.T) {
	up := CMO(risingSeries(30), 14)
	assert.InDelta(t, 100.0, up[20], 1e-9)

	down := CMO(fallingSeries(30), 14)
	assert.InDelta(t, -100.0, down[20], 1e-9)
}

func TestRSIExtremes(t *testing.T) {
	up := RSI(risingSeries(30), 14)
	assert.InDelta(t, 100.0, up[20], 1e-9)

	down := RSI(fallingSeries(30), 14)
	assert.InDelta(t, 0.0, down[20], 1e-9)
}

func TestStochRSIStaysBounded(t *testing.T) {
	// Alternating moves keep the RSI window mixed.
	values := make([]float64, 80)
	for i := range values {
		values[i] = 100 + 5*math.Sin(float64(i)/3)
	}

	stoch := StochRSI(values, 14, 3)
	seen := false
	for _, v := range stoch {
		if math.IsNaN(v) {
			continue
		}
		seen = true
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 100.0)
	}
	assert.True(t, seen, "expected at least one computed value")
}

func TestADXDetectsStrongTrend(t *testing.T) {
	n := 80
	high := make([]float64, n)
	low := make([]float64, n)
	closes := make([]float64, n)
	for i := 0; i < n; i++ {
		base := 100 + 2*float64(i)
		high[i] = base + 1
		low[i] = base - 1
		closes[i] = base
	}

	adx := ADX(high, low, closes, 14)
	last := adx[n-1]
	assert.False(t, math.IsNaN(last))
	assert.Greater(t, last, 25.0)
	assert.LessOrEqual(t, last, 100.0)
}

func TestMACDPositiveInUptrend(t *testing.T) {
	values := risingSeries(60)
	macd, signal := MACD(values, 12, 26, 9)

	assert.True(t, math.IsNaN(macd[24]))
	assert.False(t, math.IsNaN(macd[25]))
	assert.False(t, math.IsNaN(signal[33]))
	assert.Greater(t, macd[59], 0.0)
}
