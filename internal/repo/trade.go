package repo

import (
	"errors"
	"time"

	"github.com/SAMJ447/inspection-proto/internal/models"

	"gorm.io/gorm"
)

type TradeRepo struct {
	db *gorm.DB
}

type TradeRepoInterface interface {
	GetTradeConfig(trade string) (*models.TradeConfig, error)
	GetAllTradeConfigs() ([]models.TradeConfig, error)
	UpsertTradeConfig(config *models.TradeConfig) error
	SeedDefaults() error
}

func NewTradeRepository(db *gorm.DB) TradeRepoInterface {
	return &TradeRepo{db: db}
}

// GetTradeConfig looks up a stored config, falling back to the built-in
// defaults for trades that were never customized.
func (r *TradeRepo) GetTradeConfig(trade string) (*models.TradeConfig, error) {
	var config models.TradeConfig
	err := r.db.Where("trade = ?", trade).First(&config).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if def, ok := models.DefaultTradeConfigs[trade]; ok {
			return &def, nil
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	return &config, nil
}

func (r *TradeRepo) GetAllTradeConfigs() ([]models.TradeConfig, error) {
	var stored []models.TradeConfig
	if err := r.db.Find(&stored).Error; err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(stored))
	for _, c := range stored {
		seen[c.Trade] = true
	}
	for trade, def := range models.DefaultTradeConfigs {
		if !seen[trade] {
			stored = append(stored, def)
		}
	}
	return stored, nil
}

func (r *TradeRepo) UpsertTradeConfig(config *models.TradeConfig) error {
	config.UpdatedAt = time.Now()
	var existing models.TradeConfig
	result := r.db.Where("trade = ?", config.Trade).First(&existing)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		config.CreatedAt = time.Now()
		return r.db.Create(config).Error
	}
	if result.Error != nil {
		return result.Error
	}
	config.CreatedAt = existing.CreatedAt
	return r.db.Model(&existing).Updates(config).Error
}

// SeedDefaults inserts the built-in trade configs that are not yet stored.
func (r *TradeRepo) SeedDefaults() error {
	for _, def := range models.DefaultTradeConfigs {
		var existing models.TradeConfig
		result := r.db.Where("trade = ?", def.Trade).First(&existing)
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			def.CreatedAt = time.Now()
			def.UpdatedAt = time.Now()
			if err := r.db.Create(&def).Error; err != nil {
				return err
			}
			continue
		}
		if result.Error != nil {
			return result.Error
		}
	}
	return nil
}
