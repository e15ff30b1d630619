// Package report turns account and portfolio history into analytics reports.
// It consumes only the read-only series accessors on the models; no shared
// mutable state crosses the boundary.
package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kmclean/finledger/internal/analytics"
	"github.com/kmclean/finledger/internal/common"
	"github.com/kmclean/finledger/internal/interfaces"
	"github.com/kmclean/finledger/internal/models"
)

// Compile-time interface check
var _ interfaces.ReportService = (*Service)(nil)

// Service implements ReportService.
type Service struct {
	store  interfaces.LedgerStore
	config *common.Config
	logger *common.Logger
}

// NewService creates a new report service.
func NewService(store interfaces.LedgerStore, config *common.Config, logger *common.Logger) *Service {
	return &Service{
		store:  store,
		config: config,
		logger: logger,
	}
}

// monthsBetween returns the first-of-month dates from first to last inclusive.
func monthsBetween(first, last time.Time) []time.Time {
	var months []time.Time
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		months = append(months, m)
	}
	return months
}

// SpendingReport summarizes an account's spending history: per-month net and
// debit series, spending statistics, rolling averages, a proportional budget
// plan against the configured budget total, and per-category correlation.
func (s *Service) SpendingReport(ctx context.Context, accountName string) (*models.SpendingReport, error) {
	account, err := s.store.GetAccount(ctx, accountName)
	if err != nil {
		return nil, err
	}

	first, last, ok := account.MonthRange()
	if !ok {
		return nil, fmt.Errorf("account '%s' has no transactions: %w", accountName, analytics.ErrInsufficientData)
	}

	months := monthsBetween(first, last)
	categories := s.config.Reference.Categories

	rep := &models.SpendingReport{
		AccountName: accountName,
		GeneratedAt: time.Now(),
		Categories:  categories,
	}

	// Monthly series, oldest first. categorySpend rows follow the configured
	// category order.
	categorySpend := make([][]float64, len(categories))
	for i := range categorySpend {
		categorySpend[i] = make([]float64, 0, len(months))
	}
	for _, m := range months {
		rep.Months = append(rep.Months, m.Format("2006-01"))
		rep.MonthlyNet = append(rep.MonthlyNet, account.MonthlyNet(m.Year(), m.Month()).InexactFloat64())

		debits := account.MonthlyDebits(m.Year(), m.Month())
		monthSpend := 0.0
		for _, amount := range debits {
			monthSpend += amount.InexactFloat64()
		}
		rep.MonthlySpend = append(rep.MonthlySpend, monthSpend)

		for i, cat := range categories {
			categorySpend[i] = append(categorySpend[i], debits[cat].InexactFloat64())
		}
	}

	stats, err := analytics.SpendingStatistics(rep.MonthlySpend)
	if err != nil {
		return nil, fmt.Errorf("spending statistics for '%s': %w", accountName, err)
	}
	rep.Stats = models.SpendingStats{Mean: stats.Mean, StdDev: stats.StdDev, Min: stats.Min, Max: stats.Max}

	window := s.config.Report.MovingAverageWindow
	rolling, err := analytics.MovingAverages(rep.MonthlySpend, window)
	if err != nil {
		s.logger.Debug().Err(err).Int("window", window).Int("months", len(months)).
			Msg("Skipping rolling averages")
	} else {
		rep.RollingAverages = rolling
	}

	// Proportional budget plan over total historical category spend.
	historical := make([]float64, len(categories))
	for i := range categories {
		for _, v := range categorySpend[i] {
			historical[i] += v
		}
	}
	plan, err := analytics.OptimizeBudgetAllocation(categories, historical, s.config.Reference.TotalBudget())
	if err != nil {
		return nil, fmt.Errorf("budget allocation for '%s': %w", accountName, err)
	}
	rep.BudgetPlan = plan

	if len(months) >= 2 {
		matrix, err := analytics.CorrelationMatrix(categorySpend)
		if err != nil {
			return nil, fmt.Errorf("category correlation for '%s': %w", accountName, err)
		}
		rep.Correlation = matrix
	}

	s.logger.Info().Str("account", accountName).Int("months", len(months)).
		Float64("mean_spend", rep.Stats.Mean).Msg("Spending report generated")
	return rep, nil
}

// ForecastBalance fits a least-squares trend over the account's running
// balance history and projects monthsAhead further points.
func (s *Service) ForecastBalance(ctx context.Context, accountName string, monthsAhead int) (*models.BalanceForecast, error) {
	account, err := s.store.GetAccount(ctx, accountName)
	if err != nil {
		return nil, err
	}

	history := account.BalanceHistory()
	projected, err := analytics.ProjectFutureBalance(history, monthsAhead)
	if err != nil {
		return nil, fmt.Errorf("balance projection for '%s': %w", accountName, err)
	}

	s.logger.Info().Str("account", accountName).Int("points", len(history)).
		Int("projected", len(projected)).Msg("Balance forecast generated")

	return &models.BalanceForecast{
		AccountName: accountName,
		GeneratedAt: time.Now(),
		History:     history,
		Projected:   projected,
	}, nil
}

// PortfolioReport summarizes a portfolio's valuation and allocation, plus
// risk metrics over the supplied period-return series. Performer entries are
// omitted for an empty portfolio; metrics are omitted for an empty return
// series.
func (s *Service) PortfolioReport(ctx context.Context, portfolioName string, returns []float64) (*models.PortfolioReport, error) {
	portfolio, err := s.store.GetPortfolio(ctx, portfolioName)
	if err != nil {
		return nil, err
	}

	rep := &models.PortfolioReport{
		PortfolioName: portfolioName,
		GeneratedAt:   time.Now(),
		TotalValue:    portfolio.TotalValue(),
		Allocation:    portfolio.AssetAllocation(),
	}

	best, err := portfolio.BestPerformer()
	if err == nil {
		worst, _ := portfolio.WorstPerformer()
		rep.Best = &best
		rep.Worst = &worst
	} else if !errors.Is(err, models.ErrEmptyPortfolio) {
		return nil, err
	}

	if len(returns) > 0 {
		metrics, err := analytics.PortfolioMetrics(returns, s.config.Report.RiskFreeRateAnnual)
		if err != nil {
			return nil, fmt.Errorf("portfolio metrics for '%s': %w", portfolioName, err)
		}
		rep.Metrics = &models.PortfolioMetrics{
			AverageReturn: metrics.AverageReturn,
			Volatility:    metrics.Volatility,
			SharpeRatio:   metrics.SharpeRatio,
		}
	}

	s.logger.Info().Str("portfolio", portfolioName).Float64("total_value", rep.TotalValue).
		Int("holdings", len(portfolio.Holdings)).Msg("Portfolio report generated")
	return rep, nil
}
