// Package catalog implements domain.PlanCatalog on sqlite.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"

	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/domain"
)

// planRecord is the persisted form of a plan. Features are stored as a JSON
// text column to keep the schema flat.
type planRecord struct {
	ID           string `gorm:"primaryKey"`
	Name         string
	Provider     string `gorm:"index"`
	Category     string `gorm:"index"`
	Price        string
	BasePrice    float64
	Features     string // JSON array
	Rating       string
	Country      string
	ExternalLink string
	IsExternal   bool
}

func (planRecord) TableName() string { return "plans" }

type Store struct {
	db *gorm.DB
}

// Open opens (or creates) the catalog database and migrates its schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.AutoMigrate(&planRecord{}); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	return &Store{db: db}, nil
}

// PlansByCategory returns the normalized candidate set for one category.
func (s *Store) PlansByCategory(ctx context.Context, category domain.Category) ([]domain.Plan, error) {
	var records []planRecord
	err := s.db.WithContext(ctx).
		Where("category = ?", string(category)).
		Order("name").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("query plans by category: %w", err)
	}
	return toPlans(records), nil
}

func (s *Store) AllPlans(ctx context.Context) ([]domain.Plan, error) {
	var records []planRecord
	if err := s.db.WithContext(ctx).Order("category, name").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("query all plans: %w", err)
	}
	return toPlans(records), nil
}

// ReplaceAll swaps the whole catalog for a new plan set, transactionally.
// Used by the seed loader.
func (s *Store) ReplaceAll(ctx context.Context, plans []domain.Plan) error {
	records := make([]planRecord, 0, len(plans))
	for _, p := range plans {
		p.Normalize()
		features, _ := json.Marshal(p.Features)
		records = append(records, planRecord{
			ID:           string(p.ID),
			Name:         p.Name,
			Provider:     p.Provider,
			Category:     string(p.Category),
			Price:        p.Price,
			BasePrice:    p.BasePrice,
			Features:     string(features),
			Rating:       p.Rating,
			Country:      p.Country,
			ExternalLink: p.ExternalLink,
			IsExternal:   p.IsExternal,
		})
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&planRecord{}).Error; err != nil {
			return fmt.Errorf("clear plans: %w", err)
		}
		if len(records) == 0 {
			return nil
		}
		if err := tx.Create(&records).Error; err != nil {
			return fmt.Errorf("insert plans: %w", err)
		}
		return nil
	})
}

func toPlans(records []planRecord) []domain.Plan {
	out := make([]domain.Plan, 0, len(records))
	for _, r := range records {
		var features []string
		if r.Features != "" {
			_ = json.Unmarshal([]byte(r.Features), &features)
		}
		p := domain.Plan{
			ID:           domain.PlanID(r.ID),
			Name:         r.Name,
			Provider:     r.Provider,
			Category:     domain.Category(strings.ToLower(r.Category)),
			Price:        r.Price,
			BasePrice:    r.BasePrice,
			Features:     features,
			Rating:       r.Rating,
			Country:      r.Country,
			ExternalLink: r.ExternalLink,
			IsExternal:   r.IsExternal,
		}
		p.Normalize()
		out = append(out, p)
	}
	return out
}
