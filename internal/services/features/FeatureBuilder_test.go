package features

import (
	"math"
	"testing"
	"time"

	"AlligatorTradeBot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func syntheticPrices(n int) []models.Price {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	prices := make([]models.Price, 0, n)
	for i := 0; i < n; i++ {
		base := 100 + 0.5*float64(i) + 3*math.Sin(float64(i)/5)
		prices = append(prices, models.Price{
			Symbol:    "BTCUSDT",
			TimeFrame: models.PriceTimeFrame1d,
			OpenTime:  start.AddDate(0, 0, i),
			Open:      base - 0.5,
			High:      base + 2,
			Low:       base - 2,
			Close:     base,
			Volume:    1000 + 50*math.Sin(float64(i)/2),
		})
	}
	return prices
}

func TestBuildDropsWarmupAndFillsGaps(t *testing.T) {
	prices := syntheticPrices(120)
	bars, err := Build(prices)
	require.NoError(t, err)
	require.NotEmpty(t, bars)
	assert.Less(t, len(bars), len(prices), "warm-up rows should be dropped")

	for i, bar := range bars {
		assert.Truef(t, bar.Complete(), "bar %d at %s has missing fields", i, bar.Timestamp)
	}
}

func TestBuildKeepsAscendingOrder(t *testing.T) {
	prices := syntheticPrices(120)
	// Hand the builder a shuffled copy; it must sort by time itself.
	prices[0], prices[60] = prices[60], prices[0]
	prices[10], prices[90] = prices[90], prices[10]

	bars, err := Build(prices)
	require.NoError(t, err)
	for i := 1; i < len(bars); i++ {
		assert.True(t, bars[i-1].Timestamp.Before(bars[i].Timestamp))
	}
}

func TestBuildIgnoresRefetchedCandles(t *testing.T) {
	prices := syntheticPrices(120)
	clean, err := Build(prices)
	require.NoError(t, err)

	// Two fetch runs over the same range hand every candle in twice; the
	// feature table must come out identical to a single run's.
	doubled := append(append([]models.Price{}, prices...), prices...)
	deduped, err := Build(doubled)
	require.NoError(t, err)

	require.Len(t, deduped, len(clean))
	for i := range clean {
		assert.Equal(t, clean[i].Timestamp, deduped[i].Timestamp)
		assert.InDelta(t, clean[i].CMO, deduped[i].CMO, 1e-9)
		assert.InDelta(t, clean[i].ATR, deduped[i].ATR, 1e-9)
		assert.InDelta(t, clean[i].StochRSI, deduped[i].StochRSI, 1e-9)
		assert.InDelta(t, clean[i].EMA50, deduped[i].EMA50, 1e-9)
	}
}

func TestBuildRejectsShortHistory(t *testing.T) {
	bars, err := Build(syntheticPrices(MinHistory - 1))
	assert.Nil(t, bars)
	assert.ErrorIs(t, err, ErrInsufficientHistory)
}

func TestBuildCarriesRawCandleThrough(t *testing.T) {
	prices := syntheticPrices(120)
	bars, err := Build(prices)
	require.NoError(t, err)

	// The last bar corresponds to the last raw candle.
	lastPrice := prices[len(prices)-1]
	lastBar := bars[len(bars)-1]
	assert.Equal(t, lastPrice.OpenTime, lastBar.Timestamp)
	assert.Equal(t, lastPrice.Close, lastBar.Close)
	assert.Equal(t, lastPrice.Volume, lastBar.Volume)
}
