package service

import (
	"context"
	"fmt"

	"github.com/Harshana2/lims/internal/lims/entity"
	"github.com/Harshana2/lims/internal/lims/repository"
)

// ChemistService chemist registry. Workload counters are written by callers only.
type ChemistService struct {
	repos *repository.Repositories
}

func NewChemistService(repos *repository.Repositories) *ChemistService {
	return &ChemistService{repos: repos}
}

type CreateChemistReq struct {
	Name               string `json:"name" binding:"required"`
	Email              string `json:"email" binding:"omitempty,email"`
	Specialization     string `json:"specialization"`
	ActiveTasks        int    `json:"active_tasks" binding:"gte=0"`
	CompletedThisWeek  int    `json:"completed_this_week" binding:"gte=0"`
	CompletedThisMonth int    `json:"completed_this_month" binding:"gte=0"`
	Active             *bool  `json:"active"`
}

// UpdateChemistReq nil fields are left unchanged
type UpdateChemistReq struct {
	Name               *string `json:"name"`
	Email              *string `json:"email"`
	Specialization     *string `json:"specialization"`
	ActiveTasks        *int    `json:"active_tasks" binding:"omitempty,gte=0"`
	CompletedThisWeek  *int    `json:"completed_this_week" binding:"omitempty,gte=0"`
	CompletedThisMonth *int    `json:"completed_this_month" binding:"omitempty,gte=0"`
	Active             *bool   `json:"active"`
}

func (s *ChemistService) Create(ctx context.Context, req CreateChemistReq) (*entity.Chemist, error) {
	taken, err := s.repos.Chemist.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, fmt.Errorf("check chemist name: %w", err)
	}
	if taken {
		return nil, fmt.Errorf("chemist %s: %w", req.Name, ErrDuplicateIdentifier)
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	c := &entity.Chemist{
		ID:                 generateID(),
		Name:               req.Name,
		Email:              req.Email,
		Specialization:     req.Specialization,
		ActiveTasks:        req.ActiveTasks,
		CompletedThisWeek:  req.CompletedThisWeek,
		CompletedThisMonth: req.CompletedThisMonth,
		Active:             active,
	}
	if err := s.repos.Chemist.Create(ctx, c); err != nil {
		return nil, saveErr(err, "chemist", req.Name)
	}
	return c, nil
}

func (s *ChemistService) Get(ctx context.Context, id string) (*entity.Chemist, error) {
	c, err := s.repos.Chemist.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "chemist", id)
	}
	return c, nil
}

func (s *ChemistService) GetByName(ctx context.Context, name string) (*entity.Chemist, error) {
	c, err := s.repos.Chemist.FindByName(ctx, name)
	if err != nil {
		return nil, notFound(err, "chemist", name)
	}
	return c, nil
}

func (s *ChemistService) List(ctx context.Context) ([]entity.Chemist, error) {
	items, err := s.repos.Chemist.FindAll(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("list chemists: %w", err)
	}
	return items, nil
}

// ListAvailable active chemists
func (s *ChemistService) ListAvailable(ctx context.Context) ([]entity.Chemist, error) {
	items, err := s.repos.Chemist.FindAll(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("list chemists: %w", err)
	}
	return items, nil
}

func (s *ChemistService) Update(ctx context.Context, id string, req UpdateChemistReq) (*entity.Chemist, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != c.Name {
		taken, err := s.repos.Chemist.ExistsByName(ctx, *req.Name)
		if err != nil {
			return nil, fmt.Errorf("check chemist name: %w", err)
		}
		if taken {
			return nil, fmt.Errorf("chemist %s: %w", *req.Name, ErrDuplicateIdentifier)
		}
		c.Name = *req.Name
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.Specialization != nil {
		c.Specialization = *req.Specialization
	}
	if req.ActiveTasks != nil {
		c.ActiveTasks = *req.ActiveTasks
	}
	if req.CompletedThisWeek != nil {
		c.CompletedThisWeek = *req.CompletedThisWeek
	}
	if req.CompletedThisMonth != nil {
		c.CompletedThisMonth = *req.CompletedThisMonth
	}
	if req.Active != nil {
		c.Active = *req.Active
	}

	if err := s.repos.Chemist.Update(ctx, c); err != nil {
		return nil, saveErr(err, "chemist", c.Name)
	}
	return c, nil
}

// UpdateWorkload sets active_tasks directly
func (s *ChemistService) UpdateWorkload(ctx context.Context, id string, activeTasks int) (*entity.Chemist, error) {
	if activeTasks < 0 {
		return nil, validation("active_tasks must not be negative")
	}
	return s.Update(ctx, id, UpdateChemistReq{ActiveTasks: &activeTasks})
}

func (s *ChemistService) Delete(ctx context.Context, id string) error {
	if err := s.repos.Chemist.Delete(ctx, id); err != nil {
		return notFound(err, "chemist", id)
	}
	return nil
}
