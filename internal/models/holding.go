package models

import "time"

// Holding represents one position in a portfolio. AvgPrice is the
// weighted-average cost per share, recomputed on every purchase merge.
type Holding struct {
	Symbol       string    `json:"symbol"`
	Shares       float64   `json:"shares"`
	AvgPrice     float64   `json:"avg_price"`
	CurrentPrice float64   `json:"current_price"`
	PurchaseDate time.Time `json:"purchase_date"`
}

// CostBasis returns the total amount paid for the position.
func (h Holding) CostBasis() float64 {
	return h.Shares * h.AvgPrice
}

// MarketValue returns the position's value at the current price.
func (h Holding) MarketValue() float64 {
	return h.Shares * h.CurrentPrice
}

// GainLoss returns the unrealized profit or loss.
func (h Holding) GainLoss() float64 {
	return h.MarketValue() - h.CostBasis()
}

// ReturnPct returns the unrealized return as a percentage of cost basis.
// A holding with zero cost basis has 0% return.
func (h Holding) ReturnPct() float64 {
	basis := h.CostBasis()
	if basis == 0 {
		return 0
	}
	return (h.GainLoss() / basis) * 100
}
