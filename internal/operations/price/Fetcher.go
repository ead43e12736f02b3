package price

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"AlligatorTradeBot/internal/models"
	"AlligatorTradeBot/internal/repositories"

	"github.com/adshao/go-binance/v2/futures"
	"github.com/rs/zerolog"
)

// Fetcher pulls daily klines from Binance futures and stores them through
// the price repository. Acquisition happens before the simulation; the
// backtest itself only reads what the repository holds.
type Fetcher struct {
	client    *futures.Client
	priceRepo *repositories.PriceRepository
	log       zerolog.Logger
}

func NewFetcher(client *futures.Client, priceRepo *repositories.PriceRepository, log zerolog.Logger) *Fetcher {
	return &Fetcher{
		client:    client,
		priceRepo: priceRepo,
		log:       log,
	}
}

// FetchDaily downloads up to historyDays of daily candles for a symbol and
// persists them. Binance caps a kline request at 500 rows, so the range is
// walked in chunks.
func (f *Fetcher) FetchDaily(ctx context.Context, symbol string, historyDays int) (int, error) {
	endTime := time.Now().UTC()
	currentStart := endTime.AddDate(0, 0, -historyDays)
	stored := 0

	for currentStart.Before(endTime) {
		currentEnd := currentStart.Add(500 * 24 * time.Hour)
		if currentEnd.After(endTime) {
			currentEnd = endTime
		}

		klines, err := f.client.NewKlinesService().
			Symbol(symbol).
			Interval(models.PriceTimeFrame1d).
			StartTime(currentStart.UnixMilli()).
			EndTime(currentEnd.UnixMilli()).
			Limit(500).
			Do(ctx)
		if err != nil {
			return stored, fmt.Errorf("fetching daily klines for %s: %w", symbol, err)
		}

		prices := make([]models.Price, 0, len(klines))
		for _, k := range klines {
			prices = append(prices, models.Price{
				Symbol:     symbol,
				TimeFrame:  models.PriceTimeFrame1d,
				OpenTime:   time.Unix(k.OpenTime/1000, 0).UTC(),
				CloseTime:  time.Unix(k.CloseTime/1000, 0).UTC(),
				Open:       f.parseFloat(k.Open),
				High:       f.parseFloat(k.High),
				Low:        f.parseFloat(k.Low),
				Close:      f.parseFloat(k.Close),
				Volume:     f.parseFloat(k.Volume),
				TradeCount: k.TradeNum,
			})
		}
		if err := f.priceRepo.CreateBatch(prices); err != nil {
			return stored, fmt.Errorf("saving daily prices for %s: %w", symbol, err)
		}
		stored += len(prices)

		f.log.Info().
			Str("symbol", symbol).
			Int("candles", len(prices)).
			Time("from", currentStart).
			Time("to", currentEnd).
			Msg("stored daily klines")

		currentStart = currentEnd
		// Small delay to stay clear of rate limits.
		time.Sleep(100 * time.Millisecond)
	}

	if stored == 0 {
		return 0, fmt.Errorf("no daily data returned for %s", symbol)
	}
	return stored, nil
}

func (f *Fetcher) parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		f.log.Warn().Str("value", s).Msg("unparseable kline field, defaulting to 0")
		return 0
	}
	return v
}
