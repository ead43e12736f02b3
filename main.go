package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"AlligatorTradeBot/config"
	"AlligatorTradeBot/internal/models"
	"AlligatorTradeBot/internal/operations/backtest"
	"AlligatorTradeBot/internal/operations/price"
	"AlligatorTradeBot/internal/repositories"
	"AlligatorTradeBot/internal/services/features"
	"AlligatorTradeBot/internal/services/reporting"
	"AlligatorTradeBot/internal/services/strategy"
	"AlligatorTradeBot/internal/util"

	"github.com/adshao/go-binance/v2/futures"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logg := util.NewLogger(cfg.LogLevel)

	// Setup database
	db := setupDatabase(cfg.Database)

	// Initialize repositories
	priceRepo := repositories.NewPriceRepository(db)
	tradeRepo := repositories.NewTradeRepository(db)

	// Initialize Binance client and daily kline fetcher
	futuresClient := futures.NewClient(cfg.Exchange.APIKey, cfg.Exchange.SecretKey)
	fetcher := price.NewFetcher(futuresClient, priceRepo, logg)

	ctx := context.Background()

	backtestConfig := backtest.Config{
		InitialCapital: cfg.Backtest.InitialCapital,
		RiskPerTrade:   cfg.Backtest.RiskPerTrade,
		Risk:           backtest.DefaultRiskProfile(),
	}
	engine := backtest.NewEngine(backtestConfig, strategy.NewSignalGenerator(), tradeRepo, logg)

	console := reporting.NewConsoleReporter()
	var runs []*backtest.Results

	endTime := time.Now().UTC()
	startTime := endTime.AddDate(0, 0, -cfg.Backtest.HistoryDays)

	for _, symbol := range cfg.Symbols {
		if _, err := fetcher.FetchDaily(ctx, symbol, cfg.Backtest.HistoryDays); err != nil {
			logg.Error().Err(err).Str("symbol", symbol).Msg("data fetch failed, skipping symbol")
			continue
		}

		prices, err := priceRepo.GetPricesByTimeFrame(symbol, models.PriceTimeFrame1d, startTime, endTime)
		if err != nil {
			logg.Error().Err(err).Str("symbol", symbol).Msg("failed to load prices, skipping symbol")
			continue
		}

		bars, err := features.Build(prices)
		if err != nil {
			logg.Error().Err(err).Str("symbol", symbol).Msg("feature table build failed, skipping symbol")
			continue
		}

		results, err := engine.Run(symbol, bars)
		if err != nil {
			logg.Error().Err(err).Str("symbol", symbol).Msg("backtest refused to run")
			continue
		}

		if results.LedgerWriteFailures > 0 {
			logg.Warn().
				Str("symbol", symbol).
				Int("failures", results.LedgerWriteFailures).
				Msg("some trades were not persisted to the ledger")
		}

		console.PrintSummary(results)
		console.PrintTrades(results)
		runs = append(runs, results)

		logg.Info().
			Str("symbol", symbol).
			Int("trades", results.TotalTrades).
			Float64("final_capital", results.FinalCapital).
			Float64("net_pnl", results.FinalCapital-results.InitialCapital).
			Msg("backtest finished")
	}

	if len(runs) > 0 {
		excel := reporting.NewExcelReporter()
		if err := excel.WriteWorkbook(runs, cfg.Backtest.ReportPath); err != nil {
			logg.Error().Err(err).Msg("failed to write report workbook")
		} else {
			logg.Info().Str("path", cfg.Backtest.ReportPath).Msg("report workbook written")
		}
	}
}

func setupDatabase(dbConfig config.DatabaseConfig) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		dbConfig.Host,
		dbConfig.Port,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto migrate database schemas
	if err := db.AutoMigrate(&models.Price{}, &models.Trade{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	return db
}
