// Package analytics provides stateless statistical and forecasting functions
// over ordered numeric series.
package analytics

import (
	"errors"
	"math"
)

// Precondition errors. Callers branch with errors.Is.
var (
	ErrInvalidWindow     = errors.New("window size is invalid")
	ErrInsufficientData  = errors.New("not enough data points")
	ErrDimensionMismatch = errors.New("series dimensions do not match")
)

// MovingAverages returns the rolling arithmetic mean of each window-sized run
// of consecutive values, in input order: n-w+1 results for n values. The
// window must satisfy 0 < w <= n.
func MovingAverages(values []float64, window int) ([]float64, error) {
	if window <= 0 || window > len(values) {
		return nil, ErrInvalidWindow
	}

	// Cumulative-sum rolling average.
	cumsum := make([]float64, len(values)+1)
	for i, v := range values {
		cumsum[i+1] = cumsum[i] + v
	}

	averages := make([]float64, len(values)-window+1)
	for i := range averages {
		averages[i] = (cumsum[i+window] - cumsum[i]) / float64(window)
	}
	return averages, nil
}

// Stats summarizes a numeric series.
type Stats struct {
	Mean   float64
	StdDev float64 // population standard deviation
	Min    float64
	Max    float64
}

// SpendingStatistics returns mean, population standard deviation, min and max
// of the series. An empty series is ErrInsufficientData, never a crash.
func SpendingStatistics(values []float64) (Stats, error) {
	if len(values) == 0 {
		return Stats{}, ErrInsufficientData
	}

	stats := Stats{Min: values[0], Max: values[0]}
	sum := 0.0
	for _, v := range values {
		sum += v
		if v < stats.Min {
			stats.Min = v
		}
		if v > stats.Max {
			stats.Max = v
		}
	}
	stats.Mean = sum / float64(len(values))

	variance := 0.0
	for _, v := range values {
		d := v - stats.Mean
		variance += d * d
	}
	stats.StdDev = math.Sqrt(variance / float64(len(values)))
	return stats, nil
}

// ProjectFutureBalance fits an ordinary least-squares line over index
// positions 0..n-1 and returns monthsAhead projected values at indices
// n..n+monthsAhead-1. At least 2 points are required; monthsAhead must be
// positive.
func ProjectFutureBalance(values []float64, monthsAhead int) ([]float64, error) {
	if len(values) < 2 {
		return nil, ErrInsufficientData
	}
	if monthsAhead <= 0 {
		return nil, ErrInvalidWindow
	}

	slope, intercept := leastSquares(values)

	projected := make([]float64, monthsAhead)
	for i := range projected {
		x := float64(len(values) + i)
		projected[i] = slope*x + intercept
	}
	return projected, nil
}

// leastSquares fits y = slope*x + intercept with x = 0..n-1.
func leastSquares(values []float64) (slope, intercept float64) {
	n := float64(len(values))
	var sumX, sumY, sumXY, sumXX float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

// Metrics contains risk/return measures for a period-return series.
type Metrics struct {
	AverageReturn float64
	Volatility    float64 // population standard deviation of returns
	SharpeRatio   float64 // NaN when volatility is zero
}

// PortfolioMetrics returns average return, population volatility, and the
// Sharpe ratio (excess over the monthly risk-free rate divided by volatility)
// for a period-return series. Sharpe is NaN when volatility is zero; it is
// never a silent division by zero.
func PortfolioMetrics(returns []float64, riskFreeRateAnnual float64) (Metrics, error) {
	stats, err := SpendingStatistics(returns)
	if err != nil {
		return Metrics{}, err
	}

	m := Metrics{AverageReturn: stats.Mean, Volatility: stats.StdDev}
	if m.Volatility == 0 {
		m.SharpeRatio = math.NaN()
		return m, nil
	}
	m.SharpeRatio = (m.AverageReturn - riskFreeRateAnnual/12) / m.Volatility
	return m, nil
}

// OptimizeBudgetAllocation splits totalBudget across categories in proportion
// to each category's share of total historical expense. When total historical
// expense is zero the budget is split equally. Categories and expenses must
// have the same length.
func OptimizeBudgetAllocation(categories []string, historicalExpenses []float64, totalBudget float64) (map[string]float64, error) {
	if len(categories) != len(historicalExpenses) {
		return nil, ErrDimensionMismatch
	}
	if len(categories) == 0 {
		return map[string]float64{}, nil
	}

	totalExpense := 0.0
	for _, e := range historicalExpenses {
		totalExpense += e
	}

	allocation := make(map[string]float64, len(categories))
	if totalExpense == 0 {
		equal := totalBudget / float64(len(categories))
		for _, cat := range categories {
			allocation[cat] = equal
		}
		return allocation, nil
	}

	for i, cat := range categories {
		allocation[cat] = historicalExpenses[i] / totalExpense * totalBudget
	}
	return allocation, nil
}

// CorrelationMatrix computes pairwise Pearson correlation across multiple
// equal-length series. Rows of unequal length are ErrDimensionMismatch.
// The diagonal is 1; a pair involving a zero-variance series is NaN.
func CorrelationMatrix(series [][]float64) ([][]float64, error) {
	if len(series) == 0 {
		return [][]float64{}, nil
	}
	width := len(series[0])
	for _, row := range series {
		if len(row) != width {
			return nil, ErrDimensionMismatch
		}
	}
	if width < 2 {
		return nil, ErrInsufficientData
	}

	matrix := make([][]float64, len(series))
	for i := range matrix {
		matrix[i] = make([]float64, len(series))
		matrix[i][i] = 1
	}
	for i := 0; i < len(series); i++ {
		for j := i + 1; j < len(series); j++ {
			r := pearson(series[i], series[j])
			matrix[i][j] = r
			matrix[j][i] = r
		}
	}
	return matrix, nil
}

// pearson returns the Pearson correlation coefficient of two equal-length
// series, NaN when either series has zero variance.
func pearson(xs, ys []float64) float64 {
	n := float64(len(xs))
	var meanX, meanY float64
	for i := range xs {
		meanX += xs[i]
		meanY += ys[i]
	}
	meanX /= n
	meanY /= n

	var cov, varX, varY float64
	for i := range xs {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return math.NaN()
	}
	return cov / math.Sqrt(varX*varY)
}

// PeriodReturns converts a value series into simple period-over-period
// returns: (v[i] - v[i-1]) / v[i-1]. Periods starting from a zero value
// contribute a zero return rather than a division by zero.
func PeriodReturns(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		prev := values[i-1]
		if prev == 0 {
			returns = append(returns, 0)
			continue
		}
		returns = append(returns, (values[i]-prev)/prev)
	}
	return returns
}
