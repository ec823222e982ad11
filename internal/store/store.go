// Package store keeps imported audits and their quote sessions for the
// lifetime of the process. The backing database is an in-memory SQLite,
// so nothing survives a restart; there is deliberately no durable
// persistence of profiles or quotes.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"solardevis-pro/internal/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrNotFound = errors.New("not found")

type Store struct {
	db *gorm.DB
}

// Open creates the in-memory database and its schema.
func Open() (*Store, error) {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	if err := db.AutoMigrate(&models.AuditImport{}, &models.ProfileRecord{}); err != nil {
		return nil, fmt.Errorf("migrate session store: %w", err)
	}

	return &Store{db: db}, nil
}

// CreateImport stores the profiles grouped from one uploaded audit file
// and returns the new import session. Every profile starts from the
// default quote config.
func (s *Store) CreateImport(fileName string, profiles []models.ClientProfile) (*models.AuditImport, error) {
	imp := &models.AuditImport{
		ID:        uuid.NewString(),
		FileName:  fileName,
		CreatedAt: time.Now(),
	}

	defaultCfg := models.DefaultQuoteConfig()
	for i, p := range profiles {
		rec, err := recordFromProfile(imp.ID, i, p, defaultCfg)
		if err != nil {
			return nil, err
		}
		imp.Profiles = append(imp.Profiles, *rec)
	}

	if err := s.db.Create(imp).Error; err != nil {
		return nil, fmt.Errorf("create import: %w", err)
	}
	return imp, nil
}

// GetImport loads an import session with its profiles in position order.
func (s *Store) GetImport(id string) (*models.AuditImport, error) {
	var imp models.AuditImport
	err := s.db.Preload("Profiles", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	}).First(&imp, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &imp, nil
}

// GetProfile loads one profile of an import together with its quote config.
func (s *Store) GetProfile(importID string, position int) (*models.ClientProfile, *models.QuoteConfig, error) {
	rec, err := s.profileRecord(importID, position)
	if err != nil {
		return nil, nil, err
	}
	return profileFromRecord(rec)
}

// ReplaceProfile commits an edit: the item list and quote config are
// replaced wholesale and the stored totals refreshed. Partial mutation
// from outside the editing flow is not supported.
func (s *Store) ReplaceProfile(importID string, position int, p models.ClientProfile, cfg models.QuoteConfig) error {
	rec, err := s.profileRecord(importID, position)
	if err != nil {
		return err
	}

	updated, err := recordFromProfile(importID, position, p, cfg)
	if err != nil {
		return err
	}
	updated.ID = rec.ID

	if err := s.db.Save(updated).Error; err != nil {
		return fmt.Errorf("replace profile: %w", err)
	}
	return nil
}

func (s *Store) profileRecord(importID string, position int) (*models.ProfileRecord, error) {
	var rec models.ProfileRecord
	err := s.db.First(&rec, "import_id = ? AND position = ?", importID, position).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func recordFromProfile(importID string, position int, p models.ClientProfile, cfg models.QuoteConfig) (*models.ProfileRecord, error) {
	itemsJSON, err := json.Marshal(p.Items)
	if err != nil {
		return nil, fmt.Errorf("encode items: %w", err)
	}
	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return &models.ProfileRecord{
		ImportID:      importID,
		Position:      position,
		Name:          p.Name,
		Address:       p.Address,
		SiteName:      p.SiteName,
		VisitDate:     p.VisitDate,
		TotalDailyKWh: p.TotalDailyKWh,
		TotalMaxW:     p.TotalMaxW,
		ItemsJSON:     string(itemsJSON),
		ConfigJSON:    string(cfgJSON),
	}, nil
}

func profileFromRecord(rec *models.ProfileRecord) (*models.ClientProfile, *models.QuoteConfig, error) {
	var items []models.LineItem
	if err := json.Unmarshal([]byte(rec.ItemsJSON), &items); err != nil {
		return nil, nil, fmt.Errorf("decode items: %w", err)
	}
	var cfg models.QuoteConfig
	if err := json.Unmarshal([]byte(rec.ConfigJSON), &cfg); err != nil {
		return nil, nil, fmt.Errorf("decode config: %w", err)
	}
	return &models.ClientProfile{
		Name:          rec.Name,
		Address:       rec.Address,
		SiteName:      rec.SiteName,
		VisitDate:     rec.VisitDate,
		Items:         items,
		TotalDailyKWh: rec.TotalDailyKWh,
		TotalMaxW:     rec.TotalMaxW,
	}, &cfg, nil
}
