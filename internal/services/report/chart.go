package report

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/kmclean/finledger/internal/models"
)

// RenderForecastChart renders a PNG line chart of the balance history and its
// projection. Two series: History (blue solid) and Projection (gray dashed),
// on a shared index axis. Returns raw PNG bytes.
func (s *Service) RenderForecastChart(forecast *models.BalanceForecast) ([]byte, error) {
	if forecast == nil || len(forecast.History) < 2 {
		return nil, fmt.Errorf("need at least 2 history points to chart")
	}

	historyX := make([]float64, len(forecast.History))
	for i := range forecast.History {
		historyX[i] = float64(i)
	}

	// The projection starts where history ends; prepend the last history
	// point so the two lines join.
	projectedX := make([]float64, 0, len(forecast.Projected)+1)
	projectedY := make([]float64, 0, len(forecast.Projected)+1)
	projectedX = append(projectedX, float64(len(forecast.History)-1))
	projectedY = append(projectedY, forecast.History[len(forecast.History)-1])
	for i, v := range forecast.Projected {
		projectedX = append(projectedX, float64(len(forecast.History)+i))
		projectedY = append(projectedY, v)
	}

	historySeries := chart.ContinuousSeries{
		Name: "Balance",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"), // blue-600
			StrokeWidth: 2.5,
		},
		XValues: historyX,
		YValues: forecast.History,
	}

	projectionSeries := chart.ContinuousSeries{
		Name: "Projection",
		Style: chart.Style{
			StrokeColor:     drawing.ColorFromHex("9ca3af"), // gray-400
			StrokeWidth:     1.5,
			StrokeDashArray: []float64{5.0, 3.0},
		},
		XValues: projectedX,
		YValues: projectedY,
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("Balance Forecast: %s", forecast.AccountName),
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("$%.0f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			historySeries,
			projectionSeries,
		},
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
