package common

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := NewDefaultConfig()

	if len(cfg.Reference.Categories) != 5 {
		t.Errorf("default categories = %d, want 5", len(cfg.Reference.Categories))
	}
	if cfg.Report.MovingAverageWindow != 3 {
		t.Errorf("MovingAverageWindow default = %d, want 3", cfg.Report.MovingAverageWindow)
	}
	if total := cfg.Reference.TotalBudget(); total != 2900 {
		t.Errorf("TotalBudget = %v, want 2900", total)
	}
	if len(cfg.Reference.SampleHistory) != 3 {
		t.Errorf("sample history rows = %d, want 3", len(cfg.Reference.SampleHistory))
	}
}

func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("FINLEDGER_LOG_LEVEL", "debug")
	t.Setenv("FINLEDGER_DATA_PATH", "/tmp/elsewhere")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q after env override, want debug", cfg.Logging.Level)
	}
	if cfg.Storage.Path != "/tmp/elsewhere" {
		t.Errorf("Storage.Path = %q after env override, want /tmp/elsewhere", cfg.Storage.Path)
	}
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "finledger.toml")
	content := `
environment = "production"

[storage]
path = "custom/ledger"

[report]
forecast_months = 12

[reference]
categories = ["Groceries", "Rent"]

[reference.budgets]
Groceries = 250.0
Rent = 1200.0
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if !cfg.IsProduction() {
		t.Error("IsProduction() = false, want true")
	}
	if cfg.Storage.Path != "custom/ledger" {
		t.Errorf("Storage.Path = %q, want custom/ledger", cfg.Storage.Path)
	}
	if cfg.Report.ForecastMonths != 12 {
		t.Errorf("ForecastMonths = %d, want 12", cfg.Report.ForecastMonths)
	}
	if len(cfg.Reference.Categories) != 2 {
		t.Errorf("categories = %v, want the 2 configured", cfg.Reference.Categories)
	}
	if cfg.Reference.BudgetFor("Rent") != 1200 {
		t.Errorf("BudgetFor(Rent) = %v, want 1200", cfg.Reference.BudgetFor("Rent"))
	}
	// Unset sections keep their defaults.
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want default info", cfg.Logging.Level)
	}
}

func TestLoadConfig_MissingFileSkipped(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("LoadConfig failed on missing file: %v", err)
	}
	if cfg.Environment != "development" {
		t.Errorf("Environment = %q, want default development", cfg.Environment)
	}
}

func TestReferenceConfig_HasMerchant(t *testing.T) {
	ref := NewDefaultConfig().Reference

	if !ref.HasMerchant("walmart") {
		t.Error("HasMerchant should match case-insensitively")
	}
	if ref.HasMerchant("Corner Store") {
		t.Error("HasMerchant matched an unknown merchant")
	}
}

func TestReferenceConfig_BudgetFor(t *testing.T) {
	ref := NewDefaultConfig().Reference

	if got := ref.BudgetFor("groceries"); got != 400 {
		t.Errorf("BudgetFor(groceries) = %v, want 400", got)
	}
	if got := ref.BudgetFor("Electronics"); got != 0 {
		t.Errorf("BudgetFor(Electronics) = %v, want 0 for unbudgeted category", got)
	}
}
