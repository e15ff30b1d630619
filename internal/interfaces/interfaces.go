// Package interfaces defines storage and service contracts for finledger.
package interfaces

import (
	"context"

	"github.com/kmclean/finledger/internal/models"
)

// LedgerStore persists account and portfolio snapshots.
type LedgerStore interface {
	// Accounts
	SaveAccount(ctx context.Context, account *models.Account) error
	GetAccount(ctx context.Context, name string) (*models.Account, error)
	ListAccounts(ctx context.Context) ([]string, error)
	DeleteAccount(ctx context.Context, name string) (bool, error)

	// Portfolios
	SavePortfolio(ctx context.Context, portfolio *models.Portfolio) error
	GetPortfolio(ctx context.Context, name string) (*models.Portfolio, error)
	ListPortfolios(ctx context.Context) ([]string, error)
	DeletePortfolio(ctx context.Context, name string) (bool, error)

	// Lifecycle
	Close() error
}

// ReportService turns account and portfolio history into analytics reports.
type ReportService interface {
	// SpendingReport summarizes an account's spending history.
	SpendingReport(ctx context.Context, accountName string) (*models.SpendingReport, error)

	// ForecastBalance projects an account's balance trend.
	ForecastBalance(ctx context.Context, accountName string, monthsAhead int) (*models.BalanceForecast, error)

	// PortfolioReport summarizes a portfolio's valuation, allocation, and
	// risk metrics over the supplied period-return series.
	PortfolioReport(ctx context.Context, portfolioName string, returns []float64) (*models.PortfolioReport, error)

	// RenderForecastChart renders a balance history + projection PNG.
	RenderForecastChart(forecast *models.BalanceForecast) ([]byte, error)
}
