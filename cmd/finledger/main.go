package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kmclean/finledger/internal/app"
)

func main() {
	a, err := app.NewApp("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	if err := run(a); err != nil {
		a.Logger.Error().Err(err).Msg("Run failed")
		a.Close()
		os.Exit(1)
	}
}

func run(a *app.App) error {
	ctx := context.Background()

	account, err := a.SeedSampleLedger(ctx)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	spending, err := a.Reports.SpendingReport(ctx, account.Name)
	if err != nil {
		return fmt.Errorf("spending report: %w", err)
	}
	for category, amount := range spending.BudgetPlan {
		a.Logger.Info().Str("category", category).Float64("budget", amount).Msg("Budget plan")
	}

	forecast, err := a.Reports.ForecastBalance(ctx, account.Name, a.Config.Report.ForecastMonths)
	if err != nil {
		return fmt.Errorf("forecast: %w", err)
	}

	png, err := a.Reports.RenderForecastChart(forecast)
	if err != nil {
		return fmt.Errorf("chart: %w", err)
	}

	chartPath := a.Config.Report.ChartPath
	if err := os.MkdirAll(filepath.Dir(chartPath), 0755); err != nil {
		return fmt.Errorf("chart dir: %w", err)
	}
	if err := os.WriteFile(chartPath, png, 0644); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}

	a.Logger.Info().Str("chart", chartPath).Msg("Forecast chart written")
	return nil
}
