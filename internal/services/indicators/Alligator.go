package indicators

// Alligator trend-line periods and forward offsets.
const (
	JawPeriod   = 13
	JawOffset   = 8
	TeethPeriod = 8
	TeethOffset = 5
	LipsPeriod  = 5
	LipsOffset  = 3
)

// Alligator computes the jaw, teeth and lips trend lines: EMAs of the close
// shifted forward so each line lags price by its offset.
func Alligator(closes []float64) (jaw, teeth, lips []float64) {
	jaw = Shift(SmoothedEMA(closes, JawPeriod), JawOffset)
	teeth = Shift(SmoothedEMA(closes, TeethPeriod), TeethOffset)
	lips = Shift(SmoothedEMA(closes, LipsPeriod), LipsOffset)
	return jaw, teeth, lips
}
