// Package seed loads the demo laboratory data used by limsctl seed.
package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/Harshana2/lims/internal/lims/entity"
	"github.com/Harshana2/lims/internal/lims/repository"
	"github.com/Harshana2/lims/internal/lims/service"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Result counts what a run created
type Result struct {
	Skipped        bool `json:"skipped"`
	Users          int  `json:"users"`
	Chemists       int  `json:"chemists"`
	TestParameters int  `json:"test_parameters"`
	Requests       int  `json:"requests"`
	Quotations     int  `json:"quotations"`
	CRFs           int  `json:"crfs"`
	Templates      int  `json:"templates"`
}

type Seeder struct {
	repos    *repository.Repositories
	svc      *service.Services
	password string
	logger   *zap.Logger
}

func NewSeeder(repos *repository.Repositories, svc *service.Services, password string, logger *zap.Logger) *Seeder {
	return &Seeder{repos: repos, svc: svc, password: password, logger: logger}
}

// Run loads everything unless users already exist. The test parameter
// catalog is upserted on every run.
func (s *Seeder) Run(ctx context.Context) (*Result, error) {
	res := &Result{}

	n, err := s.seedTestParameters(ctx)
	if err != nil {
		return nil, err
	}
	res.TestParameters = n

	users, err := s.repos.User.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if users > 0 {
		s.logger.Info("Database already contains users, skipping demo data", zap.Int64("users", users))
		res.Skipped = true
		return res, nil
	}

	steps := []struct {
		name string
		fn   func(context.Context) (int, error)
		out  *int
	}{
		{"users", s.seedUsers, &res.Users},
		{"chemists", s.seedChemists, &res.Chemists},
		{"requests", s.seedRequests, &res.Requests},
		{"quotations", s.seedQuotations, &res.Quotations},
		{"crfs", s.seedCRFs, &res.CRFs},
		{"templates", s.seedTemplates, &res.Templates},
	}
	for _, step := range steps {
		n, err := step.fn(ctx)
		if err != nil {
			return nil, fmt.Errorf("seed %s: %w", step.name, err)
		}
		*step.out = n
		s.logger.Info("Seeded", zap.String("kind", step.name), zap.Int("count", n))
	}

	return res, nil
}

func (s *Seeder) seedUsers(ctx context.Context) (int, error) {
	users := []service.RegisterReq{
		{Username: "admin", Name: "Admin User", Email: "admin@lims.local", Role: entity.RoleAdmin},
		{Username: "chemist1", Name: "John Smith", Email: "john@lims.local", Role: entity.RoleChemist},
		{Username: "chemist2", Name: "Sarah Johnson", Email: "sarah@lims.local", Role: entity.RoleChemist},
		{Username: "manager", Name: "Mike Manager", Email: "manager@lims.local", Role: entity.RoleManager},
		{Username: "user", Name: "Demo User", Email: "user@lims.local", Role: entity.RoleUser},
	}
	for _, req := range users {
		req.Password = s.password
		u, err := service.NewUser(req)
		if err != nil {
			return 0, err
		}
		if err := s.repos.User.Create(ctx, u); err != nil {
			return 0, fmt.Errorf("create user %s: %w", req.Username, err)
		}
	}
	return len(users), nil
}

func (s *Seeder) seedChemists(ctx context.Context) (int, error) {
	chemists := []service.CreateChemistReq{
		{Name: "John Smith", Specialization: "Chemical Analysis", ActiveTasks: 3, CompletedThisWeek: 8, CompletedThisMonth: 32},
		{Name: "Sarah Johnson", Specialization: "Microbiological Testing", ActiveTasks: 5, CompletedThisWeek: 12, CompletedThisMonth: 45},
		{Name: "Michael Chen", Specialization: "Physical Testing", ActiveTasks: 2, CompletedThisWeek: 6, CompletedThisMonth: 28},
		{Name: "Emily Brown", Specialization: "Environmental Sampling", ActiveTasks: 4, CompletedThisWeek: 10, CompletedThisMonth: 38},
		{Name: "David Lee", Specialization: "Quality Control", ActiveTasks: 1, CompletedThisWeek: 4, CompletedThisMonth: 18},
		{Name: "Lisa Wang", Specialization: "Chemical Analysis", ActiveTasks: 6, CompletedThisWeek: 15, CompletedThisMonth: 52},
	}
	for _, req := range chemists {
		req.Email = strings.ToLower(strings.Fields(req.Name)[0]) + "@lims.local"
		if _, err := s.svc.Chemist.Create(ctx, req); err != nil {
			return 0, err
		}
	}
	return len(chemists), nil
}

type parameterSpec struct {
	name, unit, method, price, category, accreditation string
	sampleTypes                                        []string
}

var catalog = []parameterSpec{
	{"pH", "pH units", "ASTM D1293", "50.00", "Chemical", "ISO 17025", []string{"Water", "Wastewater", "Soil"}},
	{"Conductivity", "µS/cm", "ASTM D1125", "75.00", "Physical", "ISO 17025", []string{"Water", "Wastewater"}},
	{"Total Dissolved Solids", "mg/L", "ASTM D5907", "100.00", "Chemical", "ISO 17025", []string{"Water", "Wastewater"}},
	{"Total Coliform", "MPN/100mL", "APHA 9221", "150.00", "Microbiological", "ISO 17025", []string{"Water", "Food"}},
	{"E. coli", "MPN/100mL", "APHA 9221", "150.00", "Microbiological", "ISO 17025", []string{"Water", "Food"}},
	{"Heavy Metals (Lead)", "mg/L", "EPA 200.8", "200.00", "Chemical", "EPA", []string{"Water", "Soil", "Food"}},
	{"Turbidity", "NTU", "ASTM D1889", "60.00", "Physical", "ISO 17025", []string{"Water", "Wastewater"}},
	{"BOD", "mg/L", "ASTM D5210", "120.00", "Chemical", "ISO 17025", []string{"Wastewater"}},
	{"COD", "mg/L", "ASTM D1252", "120.00", "Chemical", "ISO 17025", []string{"Wastewater"}},
	{"Nitrogen (Total)", "mg/L", "EPA 351.2", "180.00", "Chemical", "EPA", []string{"Water", "Wastewater", "Soil"}},
}

func (s *Seeder) seedTestParameters(ctx context.Context) (int, error) {
	created := 0
	for _, p := range catalog {
		ok, err := s.svc.TestParameter.EnsureDefault(ctx, service.CreateTestParameterReq{
			Name:                  p.name,
			Unit:                  p.unit,
			Method:                p.method,
			DefaultPrice:          decimal.RequireFromString(p.price),
			ApplicableSampleTypes: p.sampleTypes,
			Category:              p.category,
			Accreditation:         p.accreditation,
			Description:           "Testing for " + p.name + " using " + p.method,
		})
		if err != nil {
			return 0, fmt.Errorf("seed test parameter %s: %w", p.name, err)
		}
		if ok {
			created++
		}
	}
	return created, nil
}

func (s *Seeder) seedRequests(ctx context.Context) (int, error) {
	requests := []service.CreateRequestReq{
		{Customer: "ABC Industries", SampleType: "Water", Parameters: []string{"pH", "Conductivity", "Total Dissolved Solids"}, NumberOfSamples: 5, Priority: entity.PriorityNormal, Status: entity.RequestStatusPending},
		{Customer: "XYZ Corporation", SampleType: "Food", Parameters: []string{"Total Coliform", "E. coli"}, NumberOfSamples: 3, Priority: entity.PriorityUrgent, Status: entity.RequestStatusQuoted},
		{Customer: "Green Solutions", SampleType: "Wastewater", Parameters: []string{"BOD", "COD", "pH"}, NumberOfSamples: 10, Priority: entity.PriorityRush, Status: entity.RequestStatusApproved},
	}
	for _, req := range requests {
		req.Contact = "+1234567890"
		req.Email = strings.ToLower(strings.ReplaceAll(req.Customer, " ", "")) + "@example.com"
		req.Notes = "Sample request for testing services"
		if _, err := s.svc.Request.Create(ctx, req); err != nil {
			return 0, err
		}
	}
	return len(requests), nil
}

// seedQuotations drafts priced quotations for the quoted and approved demo
// requests and walks each through the quotation lifecycle
func (s *Seeder) seedQuotations(ctx context.Context) (int, error) {
	lifecycle := map[string][]string{
		entity.RequestStatusQuoted:   {entity.QuotationStatusSent},
		entity.RequestStatusApproved: {entity.QuotationStatusSent, entity.QuotationStatusApproved},
	}

	created := 0
	for _, reqStatus := range []string{entity.RequestStatusQuoted, entity.RequestStatusApproved} {
		requests, err := s.svc.Request.ListByStatus(ctx, reqStatus)
		if err != nil {
			return 0, err
		}
		for _, r := range requests {
			q, err := s.svc.Quotation.DraftFromRequest(ctx, r.ID, "admin")
			if err != nil {
				return 0, err
			}
			for _, status := range lifecycle[reqStatus] {
				if _, err := s.svc.Quotation.UpdateStatus(ctx, q.ID, status); err != nil {
					return 0, err
				}
			}
			created++
		}
	}
	return created, nil
}

func (s *Seeder) seedCRFs(ctx context.Context) (int, error) {
	crfs := []service.CreateCRFReq{
		{CRFType: entity.CRFTypeCS, Customer: "Acme Water Treatment", SampleType: "Water", TestParameters: []string{"pH", "Conductivity", "Turbidity"}, NumberOfSamples: 5, Priority: entity.PriorityNormal, ReceivedBy: "John Smith"},
		{CRFType: entity.CRFTypeCS, Customer: "Fresh Food Factory", SampleType: "Food", TestParameters: []string{"Total Coliform", "E. coli"}, NumberOfSamples: 3, Priority: entity.PriorityUrgent, ReceivedBy: "Sarah Johnson"},
		{CRFType: entity.CRFTypeLS, Customer: "City Wastewater Plant", SampleType: "Wastewater", TestParameters: []string{"BOD", "COD", "pH"}, NumberOfSamples: 4, Priority: entity.PriorityRush, ReceivedBy: "Michael Chen"},
	}
	for _, req := range crfs {
		req.Address = "123 Main Street"
		req.Contact = "+1234567890"
		req.SamplingType = "One Time"
		if _, err := s.svc.CRF.Create(ctx, req); err != nil {
			return 0, err
		}
	}
	return len(crfs), nil
}

func (s *Seeder) seedTemplates(ctx context.Context) (int, error) {
	_, err := s.svc.ReportTemplate.Create(ctx, service.ReportTemplateReq{
		Name:                 "Standard",
		Description:          "Full test report with sample results",
		TemplateType:         "standard",
		IncludeLabDetails:    true,
		IncludeCRFDetails:    true,
		IncludeSampleDetails: true,
		IncludeTestResults:   true,
		IncludeTestMethods:   true,
		IncludeChemistInfo:   true,
		IncludeSignatures:    true,
		IncludeGeneratedDate: true,
		Disclaimer:           "Results relate only to the items tested.",
		IsDefault:            true,
	}, "admin")
	if err != nil {
		return 0, err
	}
	return 1, nil
}
