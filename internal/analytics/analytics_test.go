package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovingAverages(t *testing.T) {
	got, err := MovingAverages([]float64{1, 2, 3, 4, 5}, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{2.0, 3.0, 4.0}, got)
}

func TestMovingAverages_WindowEqualsLength(t *testing.T) {
	got, err := MovingAverages([]float64{2, 4, 6}, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{4.0}, got)
}

func TestMovingAverages_InvalidWindow(t *testing.T) {
	_, err := MovingAverages([]float64{1, 2, 3}, 0)
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = MovingAverages([]float64{1, 2, 3}, 4)
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = MovingAverages(nil, 1)
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestSpendingStatistics(t *testing.T) {
	stats, err := SpendingStatistics([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	require.NoError(t, err)

	assert.InDelta(t, 5.0, stats.Mean, 1e-9)
	assert.InDelta(t, 2.0, stats.StdDev, 1e-9) // population std-dev
	assert.Equal(t, 2.0, stats.Min)
	assert.Equal(t, 9.0, stats.Max)
}

func TestSpendingStatistics_Empty(t *testing.T) {
	_, err := SpendingStatistics(nil)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestProjectFutureBalance_LinearTrend(t *testing.T) {
	got, err := ProjectFutureBalance([]float64{100, 110, 120}, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.InDelta(t, 130, got[0], 1e-9)
	assert.InDelta(t, 140, got[1], 1e-9)
}

func TestProjectFutureBalance_Preconditions(t *testing.T) {
	_, err := ProjectFutureBalance([]float64{100}, 3)
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = ProjectFutureBalance([]float64{100, 110}, 0)
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestProjectFutureBalance_FlatSeries(t *testing.T) {
	got, err := ProjectFutureBalance([]float64{50, 50, 50, 50}, 3)
	require.NoError(t, err)
	for _, v := range got {
		assert.InDelta(t, 50, v, 1e-9)
	}
}

func TestPortfolioMetrics(t *testing.T) {
	returns := []float64{0.02, 0.04, 0.06}
	m, err := PortfolioMetrics(returns, 0.012) // monthly risk-free = 0.001
	require.NoError(t, err)

	assert.InDelta(t, 0.04, m.AverageReturn, 1e-9)
	expectedVol := math.Sqrt(2.0/3.0) * 0.02
	assert.InDelta(t, expectedVol, m.Volatility, 1e-9)
	assert.InDelta(t, (0.04-0.001)/expectedVol, m.SharpeRatio, 1e-9)
}

func TestPortfolioMetrics_ZeroVolatility(t *testing.T) {
	m, err := PortfolioMetrics([]float64{0.03, 0.03, 0.03}, 0.02)
	require.NoError(t, err)
	assert.Equal(t, 0.0, m.Volatility)
	assert.True(t, math.IsNaN(m.SharpeRatio), "Sharpe must be NaN when volatility is 0")
}

func TestPortfolioMetrics_Empty(t *testing.T) {
	_, err := PortfolioMetrics(nil, 0.02)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestOptimizeBudgetAllocation_Proportional(t *testing.T) {
	got, err := OptimizeBudgetAllocation(
		[]string{"Groceries", "Rent", "Travel"},
		[]float64{100, 300, 100},
		1000,
	)
	require.NoError(t, err)
	assert.InDelta(t, 200, got["Groceries"], 1e-9)
	assert.InDelta(t, 600, got["Rent"], 1e-9)
	assert.InDelta(t, 200, got["Travel"], 1e-9)
}

func TestOptimizeBudgetAllocation_ZeroHistoryFallsBackToEqualSplit(t *testing.T) {
	got, err := OptimizeBudgetAllocation([]string{"A", "B"}, []float64{0, 0}, 500)
	require.NoError(t, err)
	assert.Equal(t, 250.0, got["A"])
	assert.Equal(t, 250.0, got["B"])
}

func TestOptimizeBudgetAllocation_DimensionMismatch(t *testing.T) {
	_, err := OptimizeBudgetAllocation([]string{"A", "B"}, []float64{1}, 500)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestCorrelationMatrix_IdenticalSeries(t *testing.T) {
	series := [][]float64{
		{1, 2, 3, 4},
		{1, 2, 3, 4},
	}
	matrix, err := CorrelationMatrix(series)
	require.NoError(t, err)
	require.Len(t, matrix, 2)

	for i := range matrix {
		for j := range matrix[i] {
			assert.InDelta(t, 1.0, matrix[i][j], 1e-9, "matrix[%d][%d]", i, j)
		}
	}
}

func TestCorrelationMatrix_InverseSeries(t *testing.T) {
	matrix, err := CorrelationMatrix([][]float64{
		{1, 2, 3},
		{3, 2, 1},
	})
	require.NoError(t, err)
	assert.InDelta(t, -1.0, matrix[0][1], 1e-9)
	assert.InDelta(t, -1.0, matrix[1][0], 1e-9)
	assert.InDelta(t, 1.0, matrix[0][0], 1e-9)
}

func TestCorrelationMatrix_RaggedRows(t *testing.T) {
	_, err := CorrelationMatrix([][]float64{
		{1, 2, 3},
		{1, 2},
	})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestCorrelationMatrix_ZeroVariance(t *testing.T) {
	matrix, err := CorrelationMatrix([][]float64{
		{5, 5, 5},
		{1, 2, 3},
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, matrix[0][0])
	assert.True(t, math.IsNaN(matrix[0][1]), "zero-variance pair must be NaN")
}

func TestPeriodReturns(t *testing.T) {
	got := PeriodReturns([]float64{100, 110, 99})
	require.Len(t, got, 2)
	assert.InDelta(t, 0.10, got[0], 1e-9)
	assert.InDelta(t, -0.10, got[1], 1e-9)

	assert.Nil(t, PeriodReturns([]float64{100}))

	// A zero starting value contributes a zero return, not a division by zero.
	withZero := PeriodReturns([]float64{0, 50})
	assert.Equal(t, []float64{0.0}, withZero)
}
