package models

import "time"

// SpendingStats summarizes a numeric series: mean, population standard
// deviation, minimum and maximum.
type SpendingStats struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// PortfolioMetrics contains risk/return metrics over a period-return series.
// SharpeRatio is NaN when volatility is zero.
type PortfolioMetrics struct {
	AverageReturn float64 `json:"average_return"`
	Volatility    float64 `json:"volatility"`
	SharpeRatio   float64 `json:"sharpe_ratio"`
}

// SpendingReport is the analytics summary for one account's spending history.
type SpendingReport struct {
	AccountName     string             `json:"account_name"`
	GeneratedAt     time.Time          `json:"generated_at"`
	Months          []string           `json:"months"`       // "2025-01" labels, oldest first
	MonthlyNet      []float64          `json:"monthly_net"`  // net signed flow per month
	MonthlySpend    []float64          `json:"monthly_spend"` // debit totals per month, positive
	Stats           SpendingStats      `json:"stats"`
	RollingAverages []float64          `json:"rolling_averages"`
	BudgetPlan      map[string]float64 `json:"budget_plan"`
	Categories      []string           `json:"categories"`
	Correlation     [][]float64        `json:"correlation"` // per-category monthly spend correlation
}

// BalanceForecast carries an account's balance history and its least-squares
// projection.
type BalanceForecast struct {
	AccountName string    `json:"account_name"`
	GeneratedAt time.Time `json:"generated_at"`
	History     []float64 `json:"history"`
	Projected   []float64 `json:"projected"`
}

// PortfolioReport is the analytics summary for one portfolio.
type PortfolioReport struct {
	PortfolioName string             `json:"portfolio_name"`
	GeneratedAt   time.Time          `json:"generated_at"`
	TotalValue    float64            `json:"total_value"`
	Allocation    map[string]float64 `json:"allocation"`
	Best          *Holding           `json:"best,omitempty"`
	Worst         *Holding           `json:"worst,omitempty"`
	Metrics       *PortfolioMetrics  `json:"metrics,omitempty"`
}

// SnapshotRecord is the generic persisted form of an account or portfolio:
// a versioned JSON snapshot keyed by kind and name.
type SnapshotRecord struct {
	Kind     string    `json:"kind"` // "account" or "portfolio"
	Key      string    `json:"key"`
	Value    string    `json:"value"` // JSON snapshot
	Version  int       `json:"version"`
	DateTime time.Time `json:"datetime"`
}
