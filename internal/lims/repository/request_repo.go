package repository

import (
	"context"

	"github.com/Harshana2/lims/internal/lims/entity"
	"gorm.io/gorm"
)

// RequestRepository intake requests
type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

func (r *RequestRepository) Create(ctx context.Context, req *entity.Request) error {
	return translate(r.db.WithContext(ctx).Create(req).Error)
}

func (r *RequestRepository) FindByID(ctx context.Context, id string) (*entity.Request, error) {
	var req entity.Request
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&req).Error; err != nil {
		return nil, translate(err)
	}
	return &req, nil
}

func (r *RequestRepository) FindByCode(ctx context.Context, code string) (*entity.Request, error) {
	var req entity.Request
	if err := r.db.WithContext(ctx).Where("request_code = ?", code).First(&req).Error; err != nil {
		return nil, translate(err)
	}
	return &req, nil
}

func (r *RequestRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	return exists(ctx, r.db, &entity.Request{}, "request_code", code)
}

// FindAll filters: status, customer (substring, case-insensitive), priority, sample_type
func (r *RequestRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Request, int64, error) {
	var items []entity.Request

	query := r.db.WithContext(ctx).Model(&entity.Request{})
	if status := filters["status"]; status != "" {
		query = query.Where("status = ?", status)
	}
	if customer := filters["customer"]; customer != "" {
		query = query.Where(`LOWER(customer) LIKE ? ESCAPE '\'`, likeContains(customer))
	}
	if priority := filters["priority"]; priority != "" {
		query = query.Where("priority = ?", priority)
	}
	if sampleType := filters["sample_type"]; sampleType != "" {
		query = query.Where("sample_type = ?", sampleType)
	}

	total, err := paginate(query, page, pageSize, "created_at DESC", &items)
	return items, total, err
}

func (r *RequestRepository) Update(ctx context.Context, req *entity.Request) error {
	return translate(r.db.WithContext(ctx).Save(req).Error)
}

func (r *RequestRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, &entity.Request{}, id)
}

func (r *RequestRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	return countByColumn(ctx, r.db, &entity.Request{}, "status", status)
}

func (r *RequestRepository) CountGroupByStatus(ctx context.Context) (map[string]int64, error) {
	return groupByStatus(ctx, r.db, &entity.Request{})
}
