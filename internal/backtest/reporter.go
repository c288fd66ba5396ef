package backtest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// GenerateConsoleReport formats one league's results for terminal output
func GenerateConsoleReport(result AggregatedResult) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Backtest Report: %s\n", result.League))
	builder.WriteString("========================\n")
	builder.WriteString(fmt.Sprintf("Composite Score: %.2f\n", result.CompositeScore))
	builder.WriteString(fmt.Sprintf("Recommendation: %s\n", result.Recommendation))
	builder.WriteString(fmt.Sprintf("Total Return: %.2f%%\n", result.ReplayMetrics.TotalReturn*100))
	builder.WriteString(fmt.Sprintf("Sum Model EV: %.2f\n", result.ReplayMetrics.SumEV))
	builder.WriteString(fmt.Sprintf("Sharpe Ratio: %.2f\n", result.ReplayMetrics.SharpeRatio))
	builder.WriteString(fmt.Sprintf("Max Drawdown: %.2f%%\n", result.ReplayMetrics.MaxDrawdown*100))
	builder.WriteString(fmt.Sprintf("Win Rate: %.2f%%\n", result.ReplayMetrics.WinRate*100))
	builder.WriteString(fmt.Sprintf("Profit Factor: %.2f\n", result.ReplayMetrics.ProfitFactor))
	builder.WriteString(fmt.Sprintf("Picks: %d (%d settled, %d won)\n",
		result.ReplayMetrics.TotalPicks, result.ReplayMetrics.SettledPicks, result.ReplayMetrics.WinningPicks))
	return builder.String()
}

// WriteJSONReport writes the full aggregated results to outputPath.
func WriteJSONReport(results []AggregatedResult, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}

// WriteEquityCurveCSV exports one run's equity curve for spreadsheets.
func WriteEquityCurveCSV(state *BacktestState, outputPath string) error {
	if state == nil {
		return fmt.Errorf("state is required")
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(outputPath, []byte(state.EquityCurve.ToCSV()), 0o644)
}
