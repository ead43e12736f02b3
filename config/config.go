package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

func Load() (*config, error) {
	if err := godotenv.Load(); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	return &config{
		Exchange: ExchangeConfig{
			APIKey:    os.Getenv("BINANCE_API_KEY"),
			SecretKey: os.Getenv("BINANCE_SECRET_KEY"),
		},
		Database: DatabaseConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     EnvtoInt(os.Getenv("DB_PORT")),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   os.Getenv("DB_NAME"),
		},
		Backtest: BacktestConfig{
			InitialCapital: EnvtoFloat(os.Getenv("INITIAL_CAPITAL"), 10000),
			RiskPerTrade:   EnvtoFloat(os.Getenv("RISK_PER_TRADE"), 0.03),
			HistoryDays:    EnvtoIntDefault(os.Getenv("HISTORY_DAYS"), 365),
			ReportPath:     envDefault("REPORT_PATH", "reports/backtest.xlsx"),
		},
		Symbols:  getSymbols(),
		LogLevel: envDefault("LOG_LEVEL", "info"),
	}, nil
}

// helper env(string) to int
func EnvtoInt(s string) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return i
}

// helper env(string) to int with fallback
func EnvtoIntDefault(s string, fallback int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return i
}

// helper env(string) to float with fallback
func EnvtoFloat(s string, fallback float64) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return f
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// helper to get symbols
func getSymbols() []string {
	symbols := os.Getenv("TRADING_SYMBOLS")
	if symbols == "" {
		return []string{"BTCUSDT", "ETHUSDT"} // Default pairs if none specified
	}
	return strings.Split(symbols, ",")
}
