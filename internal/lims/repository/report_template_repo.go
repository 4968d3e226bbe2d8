package repository

import (
	"context"

	"github.com/Harshana2/lims/internal/lims/entity"
	"gorm.io/gorm"
)

// ReportTemplateRepository report layouts
type ReportTemplateRepository struct {
	db *gorm.DB
}

func NewReportTemplateRepository(db *gorm.DB) *ReportTemplateRepository {
	return &ReportTemplateRepository{db: db}
}

func (r *ReportTemplateRepository) Create(ctx context.Context, t *entity.ReportTemplate) error {
	return translate(r.db.WithContext(ctx).Create(t).Error)
}

func (r *ReportTemplateRepository) FindByID(ctx context.Context, id string) (*entity.ReportTemplate, error) {
	var t entity.ReportTemplate
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

func (r *ReportTemplateRepository) FindDefault(ctx context.Context) (*entity.ReportTemplate, error) {
	var t entity.ReportTemplate
	if err := r.db.WithContext(ctx).Where("is_default = ?", true).First(&t).Error; err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

// ReportTemplateFilter list criteria; zero values are ignored
type ReportTemplateFilter struct {
	ActiveOnly   bool
	TemplateType string
	CreatedBy    string
}

func (r *ReportTemplateRepository) FindAll(ctx context.Context, f ReportTemplateFilter) ([]entity.ReportTemplate, error) {
	var items []entity.ReportTemplate

	query := r.db.WithContext(ctx).Model(&entity.ReportTemplate{})
	if f.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if f.TemplateType != "" {
		query = query.Where("template_type = ?", f.TemplateType)
	}
	if f.CreatedBy != "" {
		query = query.Where("created_by = ?", f.CreatedBy)
	}

	err := query.Order("created_at DESC").Find(&items).Error
	return items, err
}

// ClearDefault unsets is_default on every template except keepID
func (r *ReportTemplateRepository) ClearDefault(ctx context.Context, keepID string) error {
	return r.db.WithContext(ctx).
		Model(&entity.ReportTemplate{}).
		Where("is_default = ? AND id <> ?", true, keepID).
		Update("is_default", false).Error
}

func (r *ReportTemplateRepository) Update(ctx context.Context, t *entity.ReportTemplate) error {
	return translate(r.db.WithContext(ctx).Save(t).Error)
}

func (r *ReportTemplateRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, &entity.ReportTemplate{}, id)
}
