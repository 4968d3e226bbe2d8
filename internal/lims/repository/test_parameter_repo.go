package repository

import (
	"context"

	"github.com/Harshana2/lims/internal/lims/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TestParameterRepository test parameter catalog
type TestParameterRepository struct {
	db *gorm.DB
}

func NewTestParameterRepository(db *gorm.DB) *TestParameterRepository {
	return &TestParameterRepository{db: db}
}

func (r *TestParameterRepository) Create(ctx context.Context, p *entity.TestParameter) error {
	return translate(r.db.WithContext(ctx).Create(p).Error)
}

// CreateIfAbsent inserts p unless a parameter with the same name exists
func (r *TestParameterRepository) CreateIfAbsent(ctx context.Context, p *entity.TestParameter) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(p)
	return result.RowsAffected > 0, result.Error
}

func (r *TestParameterRepository) FindByID(ctx context.Context, id string) (*entity.TestParameter, error) {
	var p entity.TestParameter
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *TestParameterRepository) FindByName(ctx context.Context, name string) (*entity.TestParameter, error) {
	var p entity.TestParameter
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

// FindByNames loads the named parameters keyed by name
func (r *TestParameterRepository) FindByNames(ctx context.Context, names []string) (map[string]entity.TestParameter, error) {
	out := make(map[string]entity.TestParameter, len(names))
	if len(names) == 0 {
		return out, nil
	}

	var items []entity.TestParameter
	if err := r.db.WithContext(ctx).Where("name IN ?", names).Find(&items).Error; err != nil {
		return nil, err
	}
	for _, p := range items {
		out[p.Name] = p
	}
	return out, nil
}

func (r *TestParameterRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return exists(ctx, r.db, &entity.TestParameter{}, "name", name)
}

// TestParameterFilter list criteria; zero values are ignored
type TestParameterFilter struct {
	ActiveOnly bool
	Category   string
	Search     string // name substring, case-insensitive
}

func (r *TestParameterRepository) FindAll(ctx context.Context, f TestParameterFilter) ([]entity.TestParameter, error) {
	var items []entity.TestParameter

	query := r.db.WithContext(ctx).Model(&entity.TestParameter{})
	if f.ActiveOnly {
		query = query.Where("active = ?", true)
	}
	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}
	if f.Search != "" {
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\'`, likeContains(f.Search))
	}

	err := query.Order("name ASC").Find(&items).Error
	return items, err
}

// FindBySampleType parameters whose applicable sample types include sampleType
func (r *TestParameterRepository) FindBySampleType(ctx context.Context, sampleType string) ([]entity.TestParameter, error) {
	all, err := r.FindAll(ctx, TestParameterFilter{})
	if err != nil {
		return nil, err
	}

	// filtered in memory, jsonb containment has no sqlite equivalent
	items := make([]entity.TestParameter, 0, len(all))
	for i := range all {
		if all[i].AppliesTo(sampleType) {
			items = append(items, all[i])
		}
	}
	return items, nil
}

func (r *TestParameterRepository) Update(ctx context.Context, p *entity.TestParameter) error {
	return translate(r.db.WithContext(ctx).Save(p).Error)
}

func (r *TestParameterRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, &entity.TestParameter{}, id)
}
