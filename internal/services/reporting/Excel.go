package reporting

import (
	"fmt"
	"os"
	"path/filepath"

	"AlligatorTradeBot/internal/operations/backtest"

	"github.com/xuri/excelize/v2"
)

// ExcelReporter writes run results into an xlsx workbook with one Trades
// sheet per symbol and a shared Summary sheet.
type ExcelReporter struct{}

func NewExcelReporter() *ExcelReporter {
	return &ExcelReporter{}
}

const summarySheet = "Summary"

// WriteWorkbook writes all runs to path, creating parent directories as
// needed.
func (r *ExcelReporter) WriteWorkbook(runs []*backtest.Results, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	fx := excelize.NewFile()
	defer fx.Close()

	fx.SetSheetName(fx.GetSheetName(0), summarySheet)
	if err := r.writeSummarySheet(fx, runs); err != nil {
		return err
	}

	for _, results := range runs {
		if err := r.writeTradesSheet(fx, results); err != nil {
			return err
		}
	}

	if err := fx.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func (r *ExcelReporter) writeSummarySheet(fx *excelize.File, runs []*backtest.Results) error {
	header := []interface{}{
		"Symbol", "Initial Capital", "Final Capital", "Net P&L",
		"Trades", "Win Rate", "Avg Profit", "Max Drawdown", "Sharpe",
	}
	if err := fx.SetSheetRow(summarySheet, "A1", &header); err != nil {
		return err
	}

	for i, results := range runs {
		row := []interface{}{
			results.Symbol,
			results.InitialCapital,
			results.FinalCapital,
			results.FinalCapital - results.InitialCapital,
			results.TotalTrades,
			results.WinRate,
			results.AverageProfit,
			results.MaxDrawdown,
			results.SharpeRatio,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := fx.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func (r *ExcelReporter) writeTradesSheet(fx *excelize.File, results *backtest.Results) error {
	sheet := fmt.Sprintf("Trades %s", results.Symbol)
	if _, err := fx.NewSheet(sheet); err != nil {
		return err
	}

	header := []interface{}{"Timestamp", "Symbol", "Direction", "Entry Price", "Exit Price", "Profit", "Status"}
	if err := fx.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, trade := range results.Trades {
		var exit, profit interface{}
		if trade.ExitPrice != nil {
			exit = *trade.ExitPrice
		}
		if trade.Profit != nil {
			profit = *trade.Profit
		}
		row := []interface{}{
			trade.Timestamp.Format("2006-01-02"),
			trade.Symbol,
			trade.Direction,
			trade.EntryPrice,
			exit,
			profit,
			trade.Status,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := fx.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
