package service

import (
	"context"
	"fmt"

	"github.com/Harshana2/lims/internal/lims/entity"
	"github.com/Harshana2/lims/internal/lims/repository"
)

// DashboardService workflow counters for the landing page
type DashboardService struct {
	repos *repository.Repositories
}

func NewDashboardService(repos *repository.Repositories) *DashboardService {
	return &DashboardService{repos: repos}
}

// StatusCounts totals per status plus the overall total
type StatusCounts struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
}

type ChemistLoad struct {
	Name               string `json:"name"`
	ActiveTasks        int    `json:"active_tasks"`
	CompletedThisWeek  int    `json:"completed_this_week"`
	CompletedThisMonth int    `json:"completed_this_month"`
}

type DashboardSummary struct {
	Requests   StatusCounts  `json:"requests"`
	Quotations StatusCounts  `json:"quotations"`
	CRFs       StatusCounts  `json:"crfs"`
	Samples    StatusCounts  `json:"samples"`
	Chemists   []ChemistLoad `json:"chemists"`
}

func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	var (
		out DashboardSummary
		err error
	)

	if out.Requests, err = counts(s.repos.Request.CountGroupByStatus(ctx)); err != nil {
		return nil, fmt.Errorf("count requests: %w", err)
	}
	if out.Quotations, err = counts(s.repos.Quotation.CountGroupByStatus(ctx)); err != nil {
		return nil, fmt.Errorf("count quotations: %w", err)
	}
	if out.CRFs, err = counts(s.repos.CRF.CountGroupByStatus(ctx)); err != nil {
		return nil, fmt.Errorf("count crfs: %w", err)
	}
	if out.Samples, err = counts(s.repos.Sample.CountGroupByStatus(ctx)); err != nil {
		return nil, fmt.Errorf("count samples: %w", err)
	}

	chemists, err := s.repos.Chemist.FindAll(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("list chemists: %w", err)
	}
	out.Chemists = chemistLoads(chemists)
	return &out, nil
}

func counts(byStatus map[string]int64, err error) (StatusCounts, error) {
	if err != nil {
		return StatusCounts{}, err
	}
	c := StatusCounts{ByStatus: byStatus}
	if c.ByStatus == nil {
		c.ByStatus = map[string]int64{}
	}
	for _, n := range c.ByStatus {
		c.Total += n
	}
	return c, nil
}

func chemistLoads(chemists []entity.Chemist) []ChemistLoad {
	out := make([]ChemistLoad, 0, len(chemists))
	for _, c := range chemists {
		out = append(out, ChemistLoad{
			Name:               c.Name,
			ActiveTasks:        c.ActiveTasks,
			CompletedThisWeek:  c.CompletedThisWeek,
			CompletedThisMonth: c.CompletedThisMonth,
		})
	}
	return out
}
