package repository

import (
	"context"
	"time"

	"github.com/Harshana2/lims/internal/lims/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CRFRepository chain-of-record forms. Samples are written through SampleRepository.
type CRFRepository struct {
	db *gorm.DB
}

func NewCRFRepository(db *gorm.DB) *CRFRepository {
	return &CRFRepository{db: db}
}

func (r *CRFRepository) Create(ctx context.Context, crf *entity.CRF) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(crf).Error)
}

// FindByID loads the CRF with its samples
func (r *CRFRepository) FindByID(ctx context.Context, id string) (*entity.CRF, error) {
	var crf entity.CRF
	err := r.db.WithContext(ctx).
		Preload("Samples", orderSamples).
		Where("id = ?", id).
		First(&crf).Error
	if err != nil {
		return nil, translate(err)
	}
	sortSamples(crf.Samples)
	return &crf, nil
}

func (r *CRFRepository) FindByCode(ctx context.Context, code string) (*entity.CRF, error) {
	var crf entity.CRF
	err := r.db.WithContext(ctx).
		Preload("Samples", orderSamples).
		Where("crf_code = ?", code).
		First(&crf).Error
	if err != nil {
		return nil, translate(err)
	}
	sortSamples(crf.Samples)
	return &crf, nil
}

func (r *CRFRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	return exists(ctx, r.db, &entity.CRF{}, "crf_code", code)
}

// CRFFilter list criteria; zero values are ignored
type CRFFilter struct {
	Status     string
	Customer   string // case-insensitive substring
	SampleType string
	Priority   string
	From       *time.Time // reception_date >= From
	To         *time.Time // reception_date < To
}

func (r *CRFRepository) FindAll(ctx context.Context, page, pageSize int, f CRFFilter) ([]entity.CRF, int64, error) {
	var items []entity.CRF

	query := r.db.WithContext(ctx).Model(&entity.CRF{})
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.Customer != "" {
		query = query.Where(`LOWER(customer) LIKE ? ESCAPE '\'`, likeContains(f.Customer))
	}
	if f.SampleType != "" {
		query = query.Where("sample_type = ?", f.SampleType)
	}
	if f.Priority != "" {
		query = query.Where("priority = ?", f.Priority)
	}
	if f.From != nil {
		query = query.Where("reception_date >= ?", *f.From)
	}
	if f.To != nil {
		query = query.Where("reception_date < ?", *f.To)
	}

	total, err := paginate(query, page, pageSize, "created_at DESC", &items)
	return items, total, err
}

// Update saves scalar columns only
func (r *CRFRepository) Update(ctx context.Context, crf *entity.CRF) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(crf).Error)
}

func (r *CRFRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, &entity.CRF{}, id)
}

func (r *CRFRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	return countByColumn(ctx, r.db, &entity.CRF{}, "status", status)
}

func (r *CRFRepository) CountGroupByStatus(ctx context.Context) (map[string]int64, error) {
	return groupByStatus(ctx, r.db, &entity.CRF{})
}

func orderSamples(db *gorm.DB) *gorm.DB {
	return db.Order(sampleOrder)
}
