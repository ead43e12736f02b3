package config

type config struct {
	Exchange ExchangeConfig
	Database DatabaseConfig
	Backtest BacktestConfig
	Symbols  []string
	LogLevel string
}

type ExchangeConfig struct {
	APIKey    string
	SecretKey string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

type BacktestConfig struct {
	InitialCapital float64
	RiskPerTrade   float64
	HistoryDays    int
	ReportPath     string
}
