package repositories

import (
	"context"

	"leaguedash/pkg/database/models"

	"gorm.io/gorm"
)

// ReferenceRepository serves the static filter dimension lists.
type ReferenceRepository interface {
	ActiveLeagues(ctx context.Context) ([]*models.League, error)
	Splits(ctx context.Context) ([]*models.Split, error)
}

type referenceRepository struct {
	db *gorm.DB
}

// NewReferenceRepository creates a reference repository.
func NewReferenceRepository(db *gorm.DB) ReferenceRepository {
	return &referenceRepository{db: db}
}

// ActiveLeagues lists the leagues available as a filter dimension.
func (rr *referenceRepository) ActiveLeagues(ctx context.Context) ([]*models.League, error) {
	var leagues []*models.League
	err := rr.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name asc").
		Find(&leagues).Error
	if err != nil {
		return nil, err
	}

	return leagues, nil
}

// Splits lists every recorded split, newest first.
func (rr *referenceRepository) Splits(ctx context.Context) ([]*models.Split, error) {
	var splits []*models.Split
	err := rr.db.WithContext(ctx).
		Order("season desc, number desc").
		Find(&splits).Error
	if err != nil {
		return nil, err
	}

	return splits, nil
}
