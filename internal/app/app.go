// Package app wires configuration, logging, storage, and services together.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kmclean/finledger/internal/common"
	"github.com/kmclean/finledger/internal/interfaces"
	"github.com/kmclean/finledger/internal/models"
	"github.com/kmclean/finledger/internal/services/report"
	"github.com/kmclean/finledger/internal/storage/ledgerdb"
)

// DefaultAccountName is the account seeded from the reference history table.
const DefaultAccountName = "everyday"

// defaultOverdraftLimit applies to the seeded checking account.
var defaultOverdraftLimit = decimal.NewFromInt(100)

// App holds the initialized configuration, logger, store, and services.
type App struct {
	Config      *common.Config
	Logger      *common.Logger
	Store       interfaces.LedgerStore
	Reports     interfaces.ReportService
	StartupTime time.Time
}

// NewApp loads configuration (from configPath, FINLEDGER_CONFIG, or defaults),
// opens the ledger store, and constructs the services.
func NewApp(configPath string) (*App, error) {
	if configPath == "" {
		configPath = os.Getenv("FINLEDGER_CONFIG")
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	store, err := ledgerdb.NewStore(logger, config.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger store: %w", err)
	}

	return &App{
		Config:      config,
		Logger:      logger,
		Store:       store,
		Reports:     report.NewService(store, config, logger),
		StartupTime: time.Now(),
	}, nil
}

// SeedSampleLedger builds the default checking account from the configured
// sample history table and persists it. Rows without an id are assigned one.
// Unknown merchants are logged but accepted; the merchant set is advisory.
func (a *App) SeedSampleLedger(ctx context.Context) (*models.Account, error) {
	account, err := models.NewCheckingAccount(DefaultAccountName, decimal.NewFromInt(1000), defaultOverdraftLimit)
	if err != nil {
		return nil, err
	}

	for _, row := range a.Config.Reference.SampleHistory {
		id := row.ID
		if id == "" {
			id = uuid.NewString()
		}

		date, err := time.Parse(time.RFC3339, row.Date)
		if err != nil {
			return nil, fmt.Errorf("sample row '%s' has a bad date: %w", id, err)
		}

		direction := models.Direction(row.Direction)
		if row.Direction == "" {
			direction = models.Debit
		}

		if !a.Config.Reference.HasMerchant(row.Merchant) {
			a.Logger.Debug().Str("merchant", row.Merchant).Msg("Merchant not in reference set")
		}

		tx, err := models.NewTransaction(id, date, decimal.NewFromFloat(row.Amount), direction,
			row.Category, row.Merchant, "", string(account.Kind))
		if err != nil {
			return nil, fmt.Errorf("sample row '%s' is invalid: %w", id, err)
		}

		if err := account.AddTransaction(tx); err != nil {
			return nil, fmt.Errorf("sample row '%s' rejected: %w", id, err)
		}
	}

	if err := a.Store.SaveAccount(ctx, account); err != nil {
		return nil, err
	}

	a.Logger.Info().Str("account", account.Name).Int("transactions", len(account.Transactions)).
		Str("balance", account.Balance.StringFixed(2)).Msg("Sample ledger seeded")
	return account, nil
}

// Close releases all resources.
func (a *App) Close() {
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			a.Logger.Error().Err(err).Msg("Failed to close ledger store")
		}
	}
}
