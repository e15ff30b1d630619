package models

import (
	"sort"
	"time"
)

// CashSymbol is the synthetic allocation entry for uninvested cash.
const CashSymbol = "CASH"

// Portfolio is a collection of holdings keyed by symbol, plus a cash balance.
// Total value = cash + sum of holding market values. Mutate only through the
// methods below; AssetAllocation and MarketValues hand out fresh maps, never
// references into the portfolio.
type Portfolio struct {
	Name     string              `json:"name"`
	Cash     float64             `json:"cash"`
	Holdings map[string]*Holding `json:"holdings"`
}

// NewPortfolio creates an empty portfolio with the given cash balance.
func NewPortfolio(name string, cash float64) (*Portfolio, error) {
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "is required"}
	}
	return &Portfolio{
		Name:     name,
		Cash:     cash,
		Holdings: make(map[string]*Holding),
	}, nil
}

// AddHolding records a purchase. Buying into an existing symbol merges by
// weighted-average cost and overwrites the current price with the latest;
// otherwise a new holding is created. Shares must be positive.
func (p *Portfolio) AddHolding(symbol string, shares, purchasePrice, currentPrice float64, purchaseDate time.Time) error {
	if symbol == "" {
		return &ValidationError{Field: "symbol", Reason: "is required"}
	}
	if shares <= 0 {
		return &ValidationError{Field: "shares", Reason: "must be greater than 0"}
	}
	if purchasePrice < 0 || currentPrice < 0 {
		return &ValidationError{Field: "price", Reason: "must not be negative"}
	}

	if existing, ok := p.Holdings[symbol]; ok {
		totalShares := existing.Shares + shares
		existing.AvgPrice = (existing.Shares*existing.AvgPrice + shares*purchasePrice) / totalShares
		existing.Shares = totalShares
		existing.CurrentPrice = currentPrice
		return nil
	}

	p.Holdings[symbol] = &Holding{
		Symbol:       symbol,
		Shares:       shares,
		AvgPrice:     purchasePrice,
		CurrentPrice: currentPrice,
		PurchaseDate: purchaseDate,
	}
	return nil
}

// RemoveHolding deletes the holding entirely (full liquidation). Returns
// whether the symbol existed.
func (p *Portfolio) RemoveHolding(symbol string) bool {
	if _, ok := p.Holdings[symbol]; !ok {
		return false
	}
	delete(p.Holdings, symbol)
	return true
}

// UpdatePrices sets the current price for each symbol present in both the
// update map and the portfolio. Unknown symbols are ignored.
func (p *Portfolio) UpdatePrices(prices map[string]float64) {
	for symbol, price := range prices {
		if h, ok := p.Holdings[symbol]; ok {
			h.CurrentPrice = price
		}
	}
}

// TotalValue returns cash plus the market value of all holdings.
func (p *Portfolio) TotalValue() float64 {
	total := p.Cash
	for _, h := range p.Holdings {
		total += h.MarketValue()
	}
	return total
}

// AssetAllocation returns each holding's percentage of total value, with a
// synthetic CASH entry when cash is positive. A portfolio whose total value
// is exactly zero yields an empty map.
func (p *Portfolio) AssetAllocation() map[string]float64 {
	total := p.TotalValue()
	allocation := make(map[string]float64)
	if total == 0 {
		return allocation
	}

	for symbol, h := range p.Holdings {
		allocation[symbol] = (h.MarketValue() / total) * 100
	}
	if p.Cash > 0 {
		allocation[CashSymbol] = (p.Cash / total) * 100
	}
	return allocation
}

// BestPerformer returns a copy of the holding with the highest return
// percentage. Returns ErrEmptyPortfolio when there are no holdings.
func (p *Portfolio) BestPerformer() (Holding, error) {
	return p.pickPerformer(func(candidate, best float64) bool { return candidate > best })
}

// WorstPerformer returns a copy of the holding with the lowest return
// percentage. Returns ErrEmptyPortfolio when there are no holdings.
func (p *Portfolio) WorstPerformer() (Holding, error) {
	return p.pickPerformer(func(candidate, best float64) bool { return candidate < best })
}

func (p *Portfolio) pickPerformer(better func(candidate, best float64) bool) (Holding, error) {
	if len(p.Holdings) == 0 {
		return Holding{}, ErrEmptyPortfolio
	}
	symbols := make([]string, 0, len(p.Holdings))
	for symbol := range p.Holdings {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols) // deterministic pick on ties

	var (
		pick    *Holding
		pickPct float64
	)
	for _, symbol := range symbols {
		h := p.Holdings[symbol]
		pct := h.ReturnPct()
		if pick == nil || better(pct, pickPct) {
			pick, pickPct = h, pct
		}
	}
	return *pick, nil
}

// MarketValues returns the current market value per symbol as a fresh map.
func (p *Portfolio) MarketValues() map[string]float64 {
	values := make(map[string]float64, len(p.Holdings))
	for symbol, h := range p.Holdings {
		values[symbol] = h.MarketValue()
	}
	return values
}
