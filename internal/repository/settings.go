package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/sharpcut-pos/sharpcut-pos-service/internal/models"
)

// SettingsStore is the explicit load/save contract for shop-local settings
// (monthly revenue target, closed daily accounts) that the old front-end kept
// scattered in browser local storage.
type SettingsStore interface {
	Load(ctx context.Context) (*models.Settings, error)
	Save(ctx context.Context, settings *models.Settings) error
	SetMonthlyTarget(ctx context.Context, target float64) error
	CloseDailyAccount(ctx context.Context, date string) error
}

const (
	settingsKeyMonthlyTarget = "monthly_target"
	settingsKeyClosedDays    = "closed_daily_accounts"
)

var _ SettingsStore = (*PostgresSettingsStore)(nil)

// PostgresSettingsStore implements SettingsStore on a single key/value table:
//
//	CREATE TABLE shop_settings (
//	    key        TEXT PRIMARY KEY,
//	    value      JSONB NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type PostgresSettingsStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostgresSettingsStore creates a new PostgreSQL settings store.
func NewPostgresSettingsStore(db *sql.DB, logger *zap.Logger) *PostgresSettingsStore {
	return &PostgresSettingsStore{
		db:     db,
		logger: logger.Named("settings-store"),
	}
}

// Load reads the full settings record. Missing keys resolve to zero values,
// never to an error.
func (s *PostgresSettingsStore) Load(ctx context.Context) (*models.Settings, error) {
	settings := &models.Settings{
		ClosedDailyAccounts: []string{},
	}

	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM shop_settings`)
	if err != nil {
		s.logger.Error("Failed to load settings", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}

		switch key {
		case settingsKeyMonthlyTarget:
			if err := json.Unmarshal(value, &settings.MonthlyTarget); err != nil {
				return nil, err
			}
		case settingsKeyClosedDays:
			if err := json.Unmarshal(value, &settings.ClosedDailyAccounts); err != nil {
				return nil, err
			}
		}
	}

	return settings, rows.Err()
}

// Save upserts the full settings record.
func (s *PostgresSettingsStore) Save(ctx context.Context, settings *models.Settings) error {
	if err := s.upsert(ctx, settingsKeyMonthlyTarget, settings.MonthlyTarget); err != nil {
		return err
	}
	closed := settings.ClosedDailyAccounts
	if closed == nil {
		closed = []string{}
	}
	return s.upsert(ctx, settingsKeyClosedDays, closed)
}

// SetMonthlyTarget stores the monthly revenue target.
func (s *PostgresSettingsStore) SetMonthlyTarget(ctx context.Context, target float64) error {
	return s.upsert(ctx, settingsKeyMonthlyTarget, target)
}

// CloseDailyAccount marks one day (YYYY-MM-DD) as closed. Closing an already
// closed day is a no-op.
func (s *PostgresSettingsStore) CloseDailyAccount(ctx context.Context, date string) error {
	settings, err := s.Load(ctx)
	if err != nil {
		return err
	}
	for _, d := range settings.ClosedDailyAccounts {
		if d == date {
			return nil
		}
	}
	settings.ClosedDailyAccounts = append(settings.ClosedDailyAccounts, date)
	return s.upsert(ctx, settingsKeyClosedDays, settings.ClosedDailyAccounts)
}

func (s *PostgresSettingsStore) upsert(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO shop_settings (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`
	if _, err := s.db.ExecContext(ctx, query, key, data); err != nil {
		s.logger.Error("Failed to save setting", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// MemorySettingsStore is an in-memory settings store for testing.
type MemorySettingsStore struct {
	settings models.Settings
}

// NewMemorySettingsStore creates an in-memory settings store.
func NewMemorySettingsStore() *MemorySettingsStore {
	return &MemorySettingsStore{
		settings: models.Settings{ClosedDailyAccounts: []string{}},
	}
}

func (s *MemorySettingsStore) Load(ctx context.Context) (*models.Settings, error) {
	out := s.settings
	out.ClosedDailyAccounts = append([]string{}, s.settings.ClosedDailyAccounts...)
	return &out, nil
}

func (s *MemorySettingsStore) Save(ctx context.Context, settings *models.Settings) error {
	s.settings = *settings
	return nil
}

func (s *MemorySettingsStore) SetMonthlyTarget(ctx context.Context, target float64) error {
	s.settings.MonthlyTarget = target
	return nil
}

func (s *MemorySettingsStore) CloseDailyAccount(ctx context.Context, date string) error {
	for _, d := range s.settings.ClosedDailyAccounts {
		if d == date {
			return nil
		}
	}
	s.settings.ClosedDailyAccounts = append(s.settings.ClosedDailyAccounts, date)
	return nil
}
