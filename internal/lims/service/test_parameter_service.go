package service

import (
	"context"
	"fmt"

	"github.com/Harshana2/lims/internal/lims/entity"
	"github.com/Harshana2/lims/internal/lims/repository"
	"github.com/shopspring/decimal"
)

// TestParameterService test parameter catalog
type TestParameterService struct {
	repos *repository.Repositories
}

func NewTestParameterService(repos *repository.Repositories) *TestParameterService {
	return &TestParameterService{repos: repos}
}

type CreateTestParameterReq struct {
	Name                  string          `json:"name" binding:"required"`
	Unit                  string          `json:"unit"`
	Method                string          `json:"method"`
	DefaultPrice          decimal.Decimal `json:"default_price"`
	ApplicableSampleTypes []string        `json:"applicable_sample_types"`
	Category              string          `json:"category"`
	Active                *bool           `json:"active"`
	Description           string          `json:"description"`
	Accreditation         string          `json:"accreditation"`
}

// UpdateTestParameterReq nil fields are left unchanged
type UpdateTestParameterReq struct {
	Unit                  *string          `json:"unit"`
	Method                *string          `json:"method"`
	DefaultPrice          *decimal.Decimal `json:"default_price"`
	ApplicableSampleTypes *[]string        `json:"applicable_sample_types"`
	Category              *string          `json:"category"`
	Active                *bool            `json:"active"`
	Description           *string          `json:"description"`
	Accreditation         *string          `json:"accreditation"`
}

func (s *TestParameterService) Create(ctx context.Context, req CreateTestParameterReq) (*entity.TestParameter, error) {
	if req.DefaultPrice.IsNegative() {
		return nil, validation("default_price must not be negative")
	}

	taken, err := s.repos.TestParameter.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, fmt.Errorf("check parameter name: %w", err)
	}
	if taken {
		return nil, fmt.Errorf("test parameter %s: %w", req.Name, ErrDuplicateIdentifier)
	}

	p := newTestParameter(req)
	if err := s.repos.TestParameter.Create(ctx, p); err != nil {
		return nil, saveErr(err, "test parameter", req.Name)
	}
	return p, nil
}

// EnsureDefault inserts req unless the name is already in the catalog
func (s *TestParameterService) EnsureDefault(ctx context.Context, req CreateTestParameterReq) (bool, error) {
	created, err := s.repos.TestParameter.CreateIfAbsent(ctx, newTestParameter(req))
	if err != nil {
		return false, fmt.Errorf("seed test parameter %s: %w", req.Name, err)
	}
	return created, nil
}

func newTestParameter(req CreateTestParameterReq) *entity.TestParameter {
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	return &entity.TestParameter{
		ID:                    generateID(),
		Name:                  req.Name,
		Unit:                  req.Unit,
		Method:                req.Method,
		DefaultPrice:          req.DefaultPrice,
		ApplicableSampleTypes: nonNil(req.ApplicableSampleTypes),
		Category:              req.Category,
		Active:                active,
		Description:           req.Description,
		Accreditation:         req.Accreditation,
	}
}

func (s *TestParameterService) Get(ctx context.Context, id string) (*entity.TestParameter, error) {
	p, err := s.repos.TestParameter.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "test parameter", id)
	}
	return p, nil
}

func (s *TestParameterService) GetByName(ctx context.Context, name string) (*entity.TestParameter, error) {
	p, err := s.repos.TestParameter.FindByName(ctx, name)
	if err != nil {
		return nil, notFound(err, "test parameter", name)
	}
	return p, nil
}

// List filters by active flag, category and name substring
func (s *TestParameterService) List(ctx context.Context, f repository.TestParameterFilter) ([]entity.TestParameter, error) {
	items, err := s.repos.TestParameter.FindAll(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list test parameters: %w", err)
	}
	return items, nil
}

func (s *TestParameterService) ListBySampleType(ctx context.Context, sampleType string) ([]entity.TestParameter, error) {
	items, err := s.repos.TestParameter.FindBySampleType(ctx, sampleType)
	if err != nil {
		return nil, fmt.Errorf("list test parameters: %w", err)
	}
	return items, nil
}

func (s *TestParameterService) Update(ctx context.Context, id string, req UpdateTestParameterReq) (*entity.TestParameter, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Unit != nil {
		p.Unit = *req.Unit
	}
	if req.Method != nil {
		p.Method = *req.Method
	}
	if req.DefaultPrice != nil {
		if req.DefaultPrice.IsNegative() {
			return nil, validation("default_price must not be negative")
		}
		p.DefaultPrice = *req.DefaultPrice
	}
	if req.ApplicableSampleTypes != nil {
		p.ApplicableSampleTypes = *req.ApplicableSampleTypes
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Active != nil {
		p.Active = *req.Active
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Accreditation != nil {
		p.Accreditation = *req.Accreditation
	}

	if err := s.repos.TestParameter.Update(ctx, p); err != nil {
		return nil, saveErr(err, "test parameter", p.Name)
	}
	return p, nil
}

func (s *TestParameterService) Delete(ctx context.Context, id string) error {
	if err := s.repos.TestParameter.Delete(ctx, id); err != nil {
		return notFound(err, "test parameter", id)
	}
	return nil
}
