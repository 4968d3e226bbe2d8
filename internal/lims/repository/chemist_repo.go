package repository

import (
	"context"

	"github.com/Harshana2/lims/internal/lims/entity"
	"gorm.io/gorm"
)

// ChemistRepository chemist registry
type ChemistRepository struct {
	db *gorm.DB
}

func NewChemistRepository(db *gorm.DB) *ChemistRepository {
	return &ChemistRepository{db: db}
}

func (r *ChemistRepository) Create(ctx context.Context, c *entity.Chemist) error {
	return translate(r.db.WithContext(ctx).Create(c).Error)
}

func (r *ChemistRepository) FindByID(ctx context.Context, id string) (*entity.Chemist, error) {
	var c entity.Chemist
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *ChemistRepository) FindByName(ctx context.Context, name string) (*entity.Chemist, error) {
	var c entity.Chemist
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&c).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *ChemistRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return exists(ctx, r.db, &entity.Chemist{}, "name", name)
}

// FindAll activeOnly restricts to chemists accepting work
func (r *ChemistRepository) FindAll(ctx context.Context, activeOnly bool) ([]entity.Chemist, error) {
	var items []entity.Chemist
	query := r.db.WithContext(ctx).Model(&entity.Chemist{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	err := query.Order("name ASC").Find(&items).Error
	return items, err
}

func (r *ChemistRepository) Update(ctx context.Context, c *entity.Chemist) error {
	return translate(r.db.WithContext(ctx).Save(c).Error)
}

func (r *ChemistRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, &entity.Chemist{}, id)
}
