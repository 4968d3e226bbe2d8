package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Harshana2/lims/internal/lims/entity"
	"github.com/Harshana2/lims/internal/lims/repository"
	"gorm.io/gorm"
)

// SampleService sample assignment and result capture
type SampleService struct {
	repos *repository.Repositories
}

func NewSampleService(repos *repository.Repositories) *SampleService {
	return &SampleService{repos: repos}
}

// UpdateSampleReq nil fields are left unchanged
type UpdateSampleReq struct {
	Description      *string `json:"description"`
	SubmissionDetail *string `json:"submission_detail"`
	Status           *string `json:"status"`
	AssignedTo       *string `json:"assigned_to"`
	Notes            *string `json:"notes"`
}

func (s *SampleService) Get(ctx context.Context, id string) (*entity.Sample, error) {
	sample, err := s.repos.Sample.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "sample", id)
	}
	return sample, nil
}

func (s *SampleService) GetByCode(ctx context.Context, code string) (*entity.Sample, error) {
	sample, err := s.repos.Sample.FindByCode(ctx, code)
	if err != nil {
		return nil, notFound(err, "sample", code)
	}
	return sample, nil
}

// List filters: crf_id, status, assigned_to
func (s *SampleService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Sample, int64, error) {
	items, total, err := s.repos.Sample.FindAll(ctx, page, pageSize, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("list samples: %w", err)
	}
	return items, total, nil
}

func (s *SampleService) ListByCRF(ctx context.Context, crfID string) ([]entity.Sample, error) {
	items, _, err := s.List(ctx, 0, 0, map[string]string{"crf_id": crfID})
	return items, err
}

func (s *SampleService) ListByStatus(ctx context.Context, status string) ([]entity.Sample, error) {
	items, _, err := s.List(ctx, 0, 0, map[string]string{"status": status})
	return items, err
}

func (s *SampleService) ListByChemist(ctx context.Context, chemist string) ([]entity.Sample, error) {
	items, _, err := s.List(ctx, 0, 0, map[string]string{"assigned_to": chemist})
	return items, err
}

// Assign records the chemist by name; the registry is not consulted
func (s *SampleService) Assign(ctx context.Context, id, chemist string) (*entity.Sample, error) {
	return s.mutate(ctx, id, func(sample *entity.Sample, now time.Time) error {
		sample.AssignedTo = &chemist
		sample.Status = entity.SampleStatusAssigned
		sample.AssignedDate = &now
		return nil
	})
}

// SetTestParameters registers parameters as pending; already known parameters keep their status
func (s *SampleService) SetTestParameters(ctx context.Context, id string, params []string) (*entity.Sample, error) {
	return s.mutate(ctx, id, func(sample *entity.Sample, _ time.Time) error {
		status := copyMap(sample.TestStatus.Data())
		for _, p := range params {
			if _, ok := status[p]; !ok {
				status[p] = entity.TestStatusPending
			}
		}
		sample.TestStatus = entity.NewTestMap(status)
		return nil
	})
}

// UpdateTestValues merges values per key and marks each supplied parameter completed.
// The sample completes once every entry of the whole test status map is completed,
// which holds vacuously for an empty map; otherwise it moves to testing.
func (s *SampleService) UpdateTestValues(ctx context.Context, id string, values map[string]string) (*entity.Sample, error) {
	return s.mutate(ctx, id, func(sample *entity.Sample, now time.Time) error {
		merged := copyMap(sample.TestValues.Data())
		status := copyMap(sample.TestStatus.Data())
		for param, value := range values {
			merged[param] = value
			status[param] = entity.TestStatusCompleted
		}
		sample.TestValues = entity.NewTestMap(merged)
		sample.TestStatus = entity.NewTestMap(status)

		if allCompleted(status) {
			sample.Status = entity.SampleStatusCompleted
			if sample.CompletedDate == nil {
				sample.CompletedDate = &now
			}
		} else {
			sample.Status = entity.SampleStatusTesting
		}
		return nil
	})
}

// UpdateStatus overwrites the status, stamping completed_date on the first entry into completed
func (s *SampleService) UpdateStatus(ctx context.Context, id, status string) (*entity.Sample, error) {
	return s.mutate(ctx, id, func(sample *entity.Sample, now time.Time) error {
		sample.Status = status
		stampCompleted(sample, now)
		return nil
	})
}

func (s *SampleService) Update(ctx context.Context, id string, req UpdateSampleReq) (*entity.Sample, error) {
	return s.mutate(ctx, id, func(sample *entity.Sample, now time.Time) error {
		if req.Description != nil {
			sample.Description = *req.Description
		}
		if req.SubmissionDetail != nil {
			sample.SubmissionDetail = *req.SubmissionDetail
		}
		if req.Status != nil {
			sample.Status = *req.Status
			stampCompleted(sample, now)
		}
		if req.AssignedTo != nil {
			sample.AssignedTo = req.AssignedTo
		}
		if req.Notes != nil {
			sample.Notes = *req.Notes
		}
		return nil
	})
}

func (s *SampleService) Delete(ctx context.Context, id string) error {
	if err := s.repos.Sample.Delete(ctx, id); err != nil {
		return notFound(err, "sample", id)
	}
	return nil
}

func (s *SampleService) CountByStatus(ctx context.Context, status string) (int64, error) {
	n, err := s.repos.Sample.CountByStatus(ctx, status)
	if err != nil {
		return 0, fmt.Errorf("count samples: %w", err)
	}
	return n, nil
}

func (s *SampleService) CountByChemist(ctx context.Context, chemist string) (int64, error) {
	n, err := s.repos.Sample.CountByChemist(ctx, chemist)
	if err != nil {
		return 0, fmt.Errorf("count samples: %w", err)
	}
	return n, nil
}

// mutate runs fn against a locked copy of the sample and saves it in the same transaction
func (s *SampleService) mutate(ctx context.Context, id string, fn func(*entity.Sample, time.Time) error) (*entity.Sample, error) {
	var sample *entity.Sample
	err := s.repos.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := s.repos.WithTx(tx)

		found, err := repos.Sample.FindByIDForUpdate(ctx, id)
		if err != nil {
			return notFound(err, "sample", id)
		}
		if err := fn(found, time.Now()); err != nil {
			return err
		}
		if err := repos.Sample.Update(ctx, found); err != nil {
			return saveErr(err, "sample", found.SampleCode)
		}
		sample = found
		return nil
	})
	return sample, err
}

func stampCompleted(sample *entity.Sample, now time.Time) {
	if sample.Status == entity.SampleStatusCompleted && sample.CompletedDate == nil {
		sample.CompletedDate = &now
	}
}

func allCompleted(status map[string]string) bool {
	for _, v := range status {
		if v != entity.TestStatusCompleted {
			return false
		}
	}
	return true
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
