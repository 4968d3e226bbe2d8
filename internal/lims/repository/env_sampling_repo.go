package repository

import (
	"context"

	"github.com/Harshana2/lims/internal/lims/entity"
	"gorm.io/gorm"
)

// EnvSamplingRepository environmental sampling maps
type EnvSamplingRepository struct {
	db *gorm.DB
}

func NewEnvSamplingRepository(db *gorm.DB) *EnvSamplingRepository {
	return &EnvSamplingRepository{db: db}
}

func (r *EnvSamplingRepository) Create(ctx context.Context, e *entity.EnvironmentalSampling) error {
	return translate(r.db.WithContext(ctx).Create(e).Error)
}

func (r *EnvSamplingRepository) FindByID(ctx context.Context, id string) (*entity.EnvironmentalSampling, error) {
	var e entity.EnvironmentalSampling
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&e).Error; err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

func (r *EnvSamplingRepository) FindByCRF(ctx context.Context, crfID string) (*entity.EnvironmentalSampling, error) {
	var e entity.EnvironmentalSampling
	if err := r.db.WithContext(ctx).Where("crf_id = ?", crfID).First(&e).Error; err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

// FindAll filters: map_type, submitted_by
func (r *EnvSamplingRepository) FindAll(ctx context.Context, filters map[string]string) ([]entity.EnvironmentalSampling, error) {
	var items []entity.EnvironmentalSampling

	query := r.db.WithContext(ctx).Model(&entity.EnvironmentalSampling{})
	if mapType := filters["map_type"]; mapType != "" {
		query = query.Where("map_type = ?", mapType)
	}
	if submittedBy := filters["submitted_by"]; submittedBy != "" {
		query = query.Where("submitted_by = ?", submittedBy)
	}

	err := query.Order("submitted_at DESC").Find(&items).Error
	return items, err
}

func (r *EnvSamplingRepository) Update(ctx context.Context, e *entity.EnvironmentalSampling) error {
	return translate(r.db.WithContext(ctx).Save(e).Error)
}

func (r *EnvSamplingRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, &entity.EnvironmentalSampling{}, id)
}

// DeleteByCRF removes the map recorded for a CRF, if any
func (r *EnvSamplingRepository) DeleteByCRF(ctx context.Context, crfID string) error {
	return r.db.WithContext(ctx).Where("crf_id = ?", crfID).Delete(&entity.EnvironmentalSampling{}).Error
}
