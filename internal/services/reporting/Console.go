package reporting

import (
	"fmt"
	"os"

	"AlligatorTradeBot/internal/operations/backtest"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// ConsoleReporter renders run results as tables on stdout.
type ConsoleReporter struct{}

func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{}
}

// PrintSummary renders the headline numbers of a run.
func (r *ConsoleReporter) PrintSummary(results *backtest.Results) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.SetTitle(fmt.Sprintf("Backtest %s", results.Symbol))
	t.AppendRows([]table.Row{
		{"Initial Capital", fmt.Sprintf("$%.2f", results.InitialCapital)},
		{"Final Capital", fmt.Sprintf("$%.2f", results.FinalCapital)},
		{"Net P&L", fmt.Sprintf("$%.2f", results.FinalCapital-results.InitialCapital)},
		{"Total Trades", results.TotalTrades},
		{"Winning Trades", results.WinningTrades},
		{"Losing Trades", results.LosingTrades},
		{"Win Rate", fmt.Sprintf("%.1f%%", results.WinRate*100)},
		{"Average Profit", fmt.Sprintf("$%.2f", results.AverageProfit)},
		{"Max Drawdown", fmt.Sprintf("%.2f%%", results.MaxDrawdown*100)},
		{"Sharpe Ratio", fmt.Sprintf("%.2f", results.SharpeRatio)},
	})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 16, Align: text.AlignLeft},
		{Number: 2, WidthMin: 12, Align: text.AlignRight},
	})
	t.Render()
}

// PrintTrades renders the full trade ledger of a run.
func (r *ConsoleReporter) PrintTrades(results *backtest.Results) {
	if len(results.Trades) == 0 {
		fmt.Printf("No trades executed for %s\n", results.Symbol)
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"#", "Timestamp", "Direction", "Entry", "Exit", "Profit", "Status"})
	for i, trade := range results.Trades {
		exit, profit := "-", "-"
		if trade.ExitPrice != nil {
			exit = fmt.Sprintf("%.4f", *trade.ExitPrice)
		}
		if trade.Profit != nil {
			profit = fmt.Sprintf("%.2f", *trade.Profit)
		}
		t.AppendRow(table.Row{
			i + 1,
			trade.Timestamp.Format("2006-01-02"),
			trade.Direction,
			fmt.Sprintf("%.4f", trade.EntryPrice),
			exit,
			profit,
			trade.Status,
		})
	}
	t.Render()
}
