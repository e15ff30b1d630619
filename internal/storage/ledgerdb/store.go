// Package ledgerdb implements LedgerStore using BadgerHold.
// Accounts and portfolios are stored as versioned JSON snapshot records.
package ledgerdb

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/kmclean/finledger/internal/common"
	"github.com/kmclean/finledger/internal/interfaces"
	"github.com/kmclean/finledger/internal/models"
)

// Compile-time interface check
var _ interfaces.LedgerStore = (*Store)(nil)

const (
	kindAccount   = "account"
	kindPortfolio = "portfolio"
)

// keySep is the composite key separator. A null byte prevents collisions when
// names contain ":" characters.
const keySep = "\x00"

// Store implements interfaces.LedgerStore using BadgerHold.
type Store struct {
	db     *badgerhold.Store
	logger *common.Logger
}

// NewStore opens (creating if needed) the ledger database at path.
func NewStore(logger *common.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create ledgerdb path %s: %w", path, err)
	}
	opts := badgerhold.DefaultOptions
	opts.Dir = path
	opts.ValueDir = path
	opts.Logger = nil
	db, err := badgerhold.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledgerdb at %s: %w", path, err)
	}
	logger.Info().Str("path", path).Msg("Ledger database opened")
	return &Store{db: db, logger: logger}, nil
}

// compositeKey builds the storage key: kind + \x00 + name.
func compositeKey(kind, name string) string {
	return kind + keySep + name
}

// put upserts a snapshot record, incrementing its version.
func (s *Store) put(kind, name string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s '%s': %w", kind, name, err)
	}

	ck := compositeKey(kind, name)
	record := models.SnapshotRecord{
		Kind:     kind,
		Key:      name,
		Value:    string(data),
		Version:  1,
		DateTime: time.Now(),
	}

	var existing models.SnapshotRecord
	if err := s.db.Get(ck, &existing); err == nil {
		record.Version = existing.Version + 1
	}

	if err := s.db.Upsert(ck, record); err != nil {
		return fmt.Errorf("failed to put %s '%s': %w", kind, name, err)
	}
	return nil
}

// get loads a snapshot record into out.
func (s *Store) get(kind, name string, out any) error {
	ck := compositeKey(kind, name)
	var rec models.SnapshotRecord
	if err := s.db.Get(ck, &rec); err != nil {
		if err == badgerhold.ErrNotFound {
			return fmt.Errorf("%s '%s' not found", kind, name)
		}
		return fmt.Errorf("failed to get %s '%s': %w", kind, name, err)
	}
	if err := json.Unmarshal([]byte(rec.Value), out); err != nil {
		return fmt.Errorf("failed to unmarshal %s '%s': %w", kind, name, err)
	}
	return nil
}

// list returns the sorted names of all records of a kind.
func (s *Store) list(kind string) ([]string, error) {
	var all []models.SnapshotRecord
	if err := s.db.Find(&all, nil); err != nil {
		return nil, fmt.Errorf("failed to list %s records: %w", kind, err)
	}
	var names []string
	for _, rec := range all {
		if rec.Kind == kind {
			names = append(names, rec.Key)
		}
	}
	sort.Strings(names)
	return names, nil
}

// delete removes a record, reporting whether it existed.
func (s *Store) delete(kind, name string) (bool, error) {
	ck := compositeKey(kind, name)
	if err := s.db.Delete(ck, models.SnapshotRecord{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete %s '%s': %w", kind, name, err)
	}
	return true, nil
}

func (s *Store) SaveAccount(_ context.Context, account *models.Account) error {
	return s.put(kindAccount, account.Name, account)
}

func (s *Store) GetAccount(_ context.Context, name string) (*models.Account, error) {
	var account models.Account
	if err := s.get(kindAccount, name, &account); err != nil {
		return nil, err
	}
	if account.Transactions == nil {
		account.Transactions = []models.Transaction{}
	}
	return &account, nil
}

func (s *Store) ListAccounts(_ context.Context) ([]string, error) {
	return s.list(kindAccount)
}

func (s *Store) DeleteAccount(_ context.Context, name string) (bool, error) {
	return s.delete(kindAccount, name)
}

func (s *Store) SavePortfolio(_ context.Context, portfolio *models.Portfolio) error {
	return s.put(kindPortfolio, portfolio.Name, portfolio)
}

func (s *Store) GetPortfolio(_ context.Context, name string) (*models.Portfolio, error) {
	var portfolio models.Portfolio
	if err := s.get(kindPortfolio, name, &portfolio); err != nil {
		return nil, err
	}
	if portfolio.Holdings == nil {
		portfolio.Holdings = make(map[string]*models.Holding)
	}
	return &portfolio, nil
}

func (s *Store) ListPortfolios(_ context.Context) ([]string, error) {
	return s.list(kindPortfolio)
}

func (s *Store) DeletePortfolio(_ context.Context, name string) (bool, error) {
	return s.delete(kindPortfolio, name)
}

// Close shuts down the BadgerHold database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
