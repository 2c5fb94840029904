package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"paper-trader/internal/models"
)

// JSONFileStore persists the account as a single JSON document at an
// explicitly injected path.
type JSONFileStore struct {
	path        string
	initialCash float64
	logger      zerolog.Logger
}

// NewJSONFileStore creates a store writing to path. initialCash is used when a
// fresh account has to be created.
func NewJSONFileStore(path string, initialCash float64, logger zerolog.Logger) *JSONFileStore {
	return &JSONFileStore{
		path:        path,
		initialCash: initialCash,
		logger:      logger.With().Str("component", "account_store").Logger(),
	}
}

// Path returns the snapshot location.
func (s *JSONFileStore) Path() string {
	return s.path
}

// Load reads the persisted snapshot, creating a fresh account when no usable
// snapshot exists.
func (s *JSONFileStore) Load() (*models.Account, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Error().Err(err).Str("path", s.path).Msg("Failed to read account file")
		}
		s.logger.Info().Msg("No paper account found. Creating new account.")
		return s.Reset(s.initialCash)
	}

	account := &models.Account{}
	if err := json.Unmarshal(data, account); err != nil {
		s.logger.Error().Err(err).Str("path", s.path).Msg("Failed to parse account file, starting fresh")
		return s.Reset(s.initialCash)
	}
	account.Normalize()
	return account, nil
}

// Save serializes the full account atomically (temp file + rename).
func (s *JSONFileStore) Save(account *models.Account) error {
	data, err := json.MarshalIndent(account, "", "  ")
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to serialize account")
		return fmt.Errorf("serializing account: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		s.logger.Error().Err(err).Str("dir", dir).Msg("Failed to create account directory")
		return fmt.Errorf("creating account directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".paper_account-*.json")
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to create temp account file")
		return fmt.Errorf("creating temp account file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		s.logger.Error().Err(err).Msg("Failed to write account file")
		return fmt.Errorf("writing account file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing account file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		s.logger.Error().Err(err).Str("path", s.path).Msg("Failed to replace account file")
		return fmt.Errorf("replacing account file: %w", err)
	}
	return nil
}

// Reset unconditionally overwrites the snapshot with a fresh account.
func (s *JSONFileStore) Reset(initialCash float64) (*models.Account, error) {
	account := models.NewAccount(initialCash)
	if err := s.Save(account); err != nil {
		return nil, err
	}
	s.logger.Info().Float64("cash", initialCash).Msg("Paper account initialized")
	return account, nil
}

// Ensure JSONFileStore implements AccountStore
var _ AccountStore = (*JSONFileStore)(nil)
