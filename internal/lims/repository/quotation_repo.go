package repository

import (
	"context"

	"github.com/Harshana2/lims/internal/lims/entity"
	"gorm.io/gorm"
)

// QuotationRepository quotations
type QuotationRepository struct {
	db *gorm.DB
}

func NewQuotationRepository(db *gorm.DB) *QuotationRepository {
	return &QuotationRepository{db: db}
}

func (r *QuotationRepository) Create(ctx context.Context, q *entity.Quotation) error {
	return translate(r.db.WithContext(ctx).Create(q).Error)
}

func (r *QuotationRepository) FindByID(ctx context.Context, id string) (*entity.Quotation, error) {
	var q entity.Quotation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&q).Error; err != nil {
		return nil, translate(err)
	}
	return &q, nil
}

func (r *QuotationRepository) FindByCode(ctx context.Context, code string) (*entity.Quotation, error) {
	var q entity.Quotation
	if err := r.db.WithContext(ctx).Where("quotation_code = ?", code).First(&q).Error; err != nil {
		return nil, translate(err)
	}
	return &q, nil
}

func (r *QuotationRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	return exists(ctx, r.db, &entity.Quotation{}, "quotation_code", code)
}

// FindAll filters: status, request_id, customer
func (r *QuotationRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Quotation, int64, error) {
	var items []entity.Quotation

	query := r.db.WithContext(ctx).Model(&entity.Quotation{})
	if status := filters["status"]; status != "" {
		query = query.Where("status = ?", status)
	}
	if requestID := filters["request_id"]; requestID != "" {
		query = query.Where("request_id = ?", requestID)
	}
	if customer := filters["customer"]; customer != "" {
		query = query.Where(`LOWER(customer) LIKE ? ESCAPE '\'`, likeContains(customer))
	}

	total, err := paginate(query, page, pageSize, "created_at DESC", &items)
	return items, total, err
}

func (r *QuotationRepository) Update(ctx context.Context, q *entity.Quotation) error {
	return translate(r.db.WithContext(ctx).Save(q).Error)
}

func (r *QuotationRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, &entity.Quotation{}, id)
}

func (r *QuotationRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	return countByColumn(ctx, r.db, &entity.Quotation{}, "status", status)
}

func (r *QuotationRepository) CountGroupByStatus(ctx context.Context) (map[string]int64, error) {
	return groupByStatus(ctx, r.db, &entity.Quotation{})
}
