package models

import (
	"errors"
	"math"
	"testing"
	"time"
)

func newTestPortfolio(t *testing.T, cash float64) *Portfolio {
	t.Helper()
	p, err := NewPortfolio("retirement", cash)
	if err != nil {
		t.Fatalf("NewPortfolio failed: %v", err)
	}
	return p
}

func TestPortfolio_AddHolding_MergesWeightedAverage(t *testing.T) {
	p := newTestPortfolio(t, 0)
	d := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	if err := p.AddHolding("VAS", 10, 100, 100, d); err != nil {
		t.Fatalf("AddHolding failed: %v", err)
	}
	if err := p.AddHolding("VAS", 10, 200, 210, d.AddDate(0, 6, 0)); err != nil {
		t.Fatalf("AddHolding merge failed: %v", err)
	}

	h := p.Holdings["VAS"]
	if h.Shares != 20 {
		t.Errorf("Shares = %v, want 20", h.Shares)
	}
	if h.AvgPrice != 150 {
		t.Errorf("AvgPrice = %v, want 150", h.AvgPrice)
	}
	if h.CurrentPrice != 210 {
		t.Errorf("CurrentPrice = %v, want latest 210", h.CurrentPrice)
	}
	if !h.PurchaseDate.Equal(d) {
		t.Errorf("PurchaseDate overwritten on merge: %v", h.PurchaseDate)
	}
}

func TestPortfolio_AddHolding_Validation(t *testing.T) {
	p := newTestPortfolio(t, 0)
	d := time.Now()

	var verr *ValidationError
	if err := p.AddHolding("VAS", 0, 100, 100, d); !errors.As(err, &verr) {
		t.Errorf("zero shares: expected ValidationError, got %v", err)
	}
	if err := p.AddHolding("VAS", -1, 100, 100, d); !errors.As(err, &verr) {
		t.Errorf("negative shares: expected ValidationError, got %v", err)
	}
	if err := p.AddHolding("", 1, 100, 100, d); !errors.As(err, &verr) {
		t.Errorf("empty symbol: expected ValidationError, got %v", err)
	}
	if len(p.Holdings) != 0 {
		t.Error("failed AddHolding mutated the portfolio")
	}
}

func TestPortfolio_RemoveHolding(t *testing.T) {
	p := newTestPortfolio(t, 0)
	_ = p.AddHolding("VAS", 10, 100, 100, time.Now())

	if !p.RemoveHolding("VAS") {
		t.Error("RemoveHolding on present symbol returned false")
	}
	if p.RemoveHolding("VAS") {
		t.Error("RemoveHolding on absent symbol returned true")
	}
}

func TestPortfolio_UpdatePrices(t *testing.T) {
	p := newTestPortfolio(t, 0)
	_ = p.AddHolding("VAS", 10, 100, 100, time.Now())
	_ = p.AddHolding("IVV", 5, 400, 400, time.Now())

	p.UpdatePrices(map[string]float64{"VAS": 110, "UNKNOWN": 999})

	if p.Holdings["VAS"].CurrentPrice != 110 {
		t.Errorf("VAS price = %v, want 110", p.Holdings["VAS"].CurrentPrice)
	}
	if p.Holdings["IVV"].CurrentPrice != 400 {
		t.Errorf("IVV price = %v, want unchanged 400", p.Holdings["IVV"].CurrentPrice)
	}
	if _, ok := p.Holdings["UNKNOWN"]; ok {
		t.Error("UpdatePrices created a holding for an unknown symbol")
	}
}

func TestPortfolio_TotalValueAndAllocation(t *testing.T) {
	p := newTestPortfolio(t, 400)
	_ = p.AddHolding("VAS", 6, 90, 100, time.Now()) // market value 600

	if got := p.TotalValue(); got != 1000 {
		t.Fatalf("TotalValue = %v, want 1000", got)
	}

	allocation := p.AssetAllocation()
	if allocation["VAS"] != 60.0 {
		t.Errorf("VAS allocation = %v, want 60.0", allocation["VAS"])
	}
	if allocation[CashSymbol] != 40.0 {
		t.Errorf("CASH allocation = %v, want 40.0", allocation[CashSymbol])
	}

	sum := 0.0
	for _, pct := range allocation {
		sum += pct
	}
	if math.Abs(sum-100) > 1e-9 {
		t.Errorf("allocation sums to %v, want 100", sum)
	}
}

func TestPortfolio_AssetAllocation_ZeroValue(t *testing.T) {
	p := newTestPortfolio(t, 0)
	if got := p.AssetAllocation(); len(got) != 0 {
		t.Errorf("zero-value portfolio allocation = %v, want empty", got)
	}
}

func TestPortfolio_Performers(t *testing.T) {
	p := newTestPortfolio(t, 0)

	if _, err := p.BestPerformer(); !errors.Is(err, ErrEmptyPortfolio) {
		t.Errorf("BestPerformer on empty portfolio: got %v, want ErrEmptyPortfolio", err)
	}
	if _, err := p.WorstPerformer(); !errors.Is(err, ErrEmptyPortfolio) {
		t.Errorf("WorstPerformer on empty portfolio: got %v, want ErrEmptyPortfolio", err)
	}

	d := time.Now()
	_ = p.AddHolding("WIN", 10, 100, 150, d) // +50%
	_ = p.AddHolding("LOSE", 10, 100, 80, d) // -20%
	_ = p.AddHolding("FLAT", 10, 100, 100, d)

	best, err := p.BestPerformer()
	if err != nil {
		t.Fatalf("BestPerformer failed: %v", err)
	}
	if best.Symbol != "WIN" {
		t.Errorf("best = %s, want WIN", best.Symbol)
	}

	worst, err := p.WorstPerformer()
	if err != nil {
		t.Fatalf("WorstPerformer failed: %v", err)
	}
	if worst.Symbol != "LOSE" {
		t.Errorf("worst = %s, want LOSE", worst.Symbol)
	}
}

func TestHolding_DerivedValues(t *testing.T) {
	h := Holding{Symbol: "VAS", Shares: 10, AvgPrice: 100, CurrentPrice: 120}

	if h.CostBasis() != 1000 {
		t.Errorf("CostBasis = %v, want 1000", h.CostBasis())
	}
	if h.MarketValue() != 1200 {
		t.Errorf("MarketValue = %v, want 1200", h.MarketValue())
	}
	if h.GainLoss() != 200 {
		t.Errorf("GainLoss = %v, want 200", h.GainLoss())
	}
	if h.ReturnPct() != 20 {
		t.Errorf("ReturnPct = %v, want 20", h.ReturnPct())
	}

	// Zero cost basis is defined as 0% return, not a division by zero.
	free := Holding{Symbol: "GIFT", Shares: 10, AvgPrice: 0, CurrentPrice: 50}
	if free.ReturnPct() != 0 {
		t.Errorf("zero-cost ReturnPct = %v, want 0", free.ReturnPct())
	}
}

func TestPortfolio_MarketValues(t *testing.T) {
	p := newTestPortfolio(t, 100)
	_ = p.AddHolding("VAS", 10, 100, 110, time.Now())

	values := p.MarketValues()
	if values["VAS"] != 1100 {
		t.Errorf("VAS market value = %v, want 1100", values["VAS"])
	}

	// The returned map is a copy, not a live reference.
	values["VAS"] = 0
	if p.Holdings["VAS"].MarketValue() != 1100 {
		t.Error("mutating the returned map affected the portfolio")
	}
}
