package repository

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/Harshana2/lims/internal/lims/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SampleRepository samples
type SampleRepository struct {
	db *gorm.DB
}

func NewSampleRepository(db *gorm.DB) *SampleRepository {
	return &SampleRepository{db: db}
}

func (r *SampleRepository) Create(ctx context.Context, s *entity.Sample) error {
	return translate(r.db.WithContext(ctx).Create(s).Error)
}

// CreateBatch inserts samples in one statement
func (r *SampleRepository) CreateBatch(ctx context.Context, samples []entity.Sample) error {
	if len(samples) == 0 {
		return nil
	}
	return translate(r.db.WithContext(ctx).Create(&samples).Error)
}

func (r *SampleRepository) FindByID(ctx context.Context, id string) (*entity.Sample, error) {
	var s entity.Sample
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

// FindByIDForUpdate row-locks the sample for a read-modify-write inside a transaction
func (r *SampleRepository) FindByIDForUpdate(ctx context.Context, id string) (*entity.Sample, error) {
	var s entity.Sample
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&s).Error
	if err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *SampleRepository) FindByCode(ctx context.Context, code string) (*entity.Sample, error) {
	var s entity.Sample
	if err := r.db.WithContext(ctx).Where("sample_code = ?", code).First(&s).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *SampleRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	return exists(ctx, r.db, &entity.Sample{}, "sample_code", code)
}

// FindAll filters: crf_id, status, assigned_to
func (r *SampleRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Sample, int64, error) {
	var items []entity.Sample

	query := r.db.WithContext(ctx).Model(&entity.Sample{})
	if crfID := filters["crf_id"]; crfID != "" {
		query = query.Where("crf_id = ?", crfID)
	}
	if status := filters["status"]; status != "" {
		query = query.Where("status = ?", status)
	}
	if assignedTo := filters["assigned_to"]; assignedTo != "" {
		query = query.Where("assigned_to = ?", assignedTo)
	}

	total, err := paginate(query, page, pageSize, sampleOrder, &items)
	if err != nil {
		return nil, 0, err
	}
	sortSamples(items)
	return items, total, nil
}

func (r *SampleRepository) FindByCRF(ctx context.Context, crfID string) ([]entity.Sample, error) {
	items, _, err := r.FindAll(ctx, 0, 0, map[string]string{"crf_id": crfID})
	return items, err
}

func (r *SampleRepository) Update(ctx context.Context, s *entity.Sample) error {
	return translate(r.db.WithContext(ctx).Save(s).Error)
}

func (r *SampleRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, &entity.Sample{}, id)
}

// DeleteByCRF removes every sample of a CRF, returning how many went
func (r *SampleRepository) DeleteByCRF(ctx context.Context, crfID string) (int64, error) {
	result := r.db.WithContext(ctx).Where("crf_id = ?", crfID).Delete(&entity.Sample{})
	return result.RowsAffected, result.Error
}

func (r *SampleRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	return countByColumn(ctx, r.db, &entity.Sample{}, "status", status)
}

func (r *SampleRepository) CountByChemist(ctx context.Context, chemist string) (int64, error) {
	return countByColumn(ctx, r.db, &entity.Sample{}, "assigned_to", chemist)
}

func (r *SampleRepository) CountGroupByStatus(ctx context.Context) (map[string]int64, error) {
	return groupByStatus(ctx, r.db, &entity.Sample{})
}

// sampleOrder rows of one fan-out batch share created_at; code length then
// code orders them numerically within one prefix
const sampleOrder = "created_at ASC, LENGTH(sample_code) ASC, sample_code ASC"

// sortSamples orders by code prefix, then numerically by the trailing sequence
func sortSamples(samples []entity.Sample) {
	sort.SliceStable(samples, func(i, j int) bool {
		pi, ni := splitCode(samples[i].SampleCode)
		pj, nj := splitCode(samples[j].SampleCode)
		if pi != pj {
			return pi < pj
		}
		return ni < nj
	})
}

func splitCode(code string) (string, int) {
	idx := strings.LastIndex(code, "/")
	if idx < 0 {
		return code, 0
	}
	n, err := strconv.Atoi(code[idx+1:])
	if err != nil {
		return code, 0
	}
	return code[:idx], n
}
