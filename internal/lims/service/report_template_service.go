package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Harshana2/lims/internal/lims/entity"
	"github.com/Harshana2/lims/internal/lims/repository"
	"gorm.io/gorm"
)

// ReportTemplateService report layouts; at most one template is the default
type ReportTemplateService struct {
	repos *repository.Repositories
}

func NewReportTemplateService(repos *repository.Repositories) *ReportTemplateService {
	return &ReportTemplateService{repos: repos}
}

// ReportTemplateReq full template body, used for both create and update
type ReportTemplateReq struct {
	Name                 string `json:"name" binding:"required"`
	Description          string `json:"description"`
	TemplateType         string `json:"template_type" binding:"omitempty,oneof=standard custom summary"`
	HeaderContent        string `json:"header_content"`
	IncludeCompanyLogo   bool   `json:"include_company_logo"`
	IncludeLabDetails    bool   `json:"include_lab_details"`
	IncludeCRFDetails    bool   `json:"include_crf_details"`
	IncludeSampleDetails bool   `json:"include_sample_details"`
	IncludeTestResults   bool   `json:"include_test_results"`
	IncludeTestMethods   bool   `json:"include_test_methods"`
	IncludeChemistInfo   bool   `json:"include_chemist_info"`
	FooterContent        string `json:"footer_content"`
	IncludeSignatures    bool   `json:"include_signatures"`
	IncludePageNumbers   bool   `json:"include_page_numbers"`
	IncludeGeneratedDate bool   `json:"include_generated_date"`
	PageSize             string `json:"page_size" binding:"omitempty,oneof=A4 Letter Legal"`
	Orientation          string `json:"orientation" binding:"omitempty,oneof=portrait landscape"`
	CustomCSS            string `json:"custom_css"`
	AdditionalNotes      string `json:"additional_notes"`
	Disclaimer           string `json:"disclaimer"`
	IsDefault            bool   `json:"is_default"`
	IsActive             *bool  `json:"is_active"`
}

func (req ReportTemplateReq) apply(t *entity.ReportTemplate) {
	t.Name = req.Name
	t.Description = req.Description
	t.TemplateType = orDefault(req.TemplateType, "standard")
	t.HeaderContent = req.HeaderContent
	t.IncludeCompanyLogo = req.IncludeCompanyLogo
	t.IncludeLabDetails = req.IncludeLabDetails
	t.IncludeCRFDetails = req.IncludeCRFDetails
	t.IncludeSampleDetails = req.IncludeSampleDetails
	t.IncludeTestResults = req.IncludeTestResults
	t.IncludeTestMethods = req.IncludeTestMethods
	t.IncludeChemistInfo = req.IncludeChemistInfo
	t.FooterContent = req.FooterContent
	t.IncludeSignatures = req.IncludeSignatures
	t.IncludePageNumbers = req.IncludePageNumbers
	t.IncludeGeneratedDate = req.IncludeGeneratedDate
	t.PageSize = orDefault(req.PageSize, "A4")
	t.Orientation = orDefault(req.Orientation, "portrait")
	t.CustomCSS = req.CustomCSS
	t.AdditionalNotes = req.AdditionalNotes
	t.Disclaimer = req.Disclaimer
	t.IsDefault = req.IsDefault
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}
}

func (s *ReportTemplateService) Create(ctx context.Context, req ReportTemplateReq, createdBy string) (*entity.ReportTemplate, error) {
	t := &entity.ReportTemplate{ID: generateID(), CreatedBy: createdBy, IsActive: true}
	req.apply(t)

	err := s.repos.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := s.repos.WithTx(tx)
		if err := repos.ReportTemplate.Create(ctx, t); err != nil {
			return saveErr(err, "report template", t.Name)
		}
		if t.IsDefault {
			return repos.ReportTemplate.ClearDefault(ctx, t.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *ReportTemplateService) Get(ctx context.Context, id string) (*entity.ReportTemplate, error) {
	t, err := s.repos.ReportTemplate.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "report template", id)
	}
	return t, nil
}

// GetDefault falls back to the built-in standard layout when none is marked default
func (s *ReportTemplateService) GetDefault(ctx context.Context) (*entity.ReportTemplate, error) {
	t, err := s.repos.ReportTemplate.FindDefault(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		def := entity.DefaultReportTemplate()
		return &def, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load default template: %w", err)
	}
	return t, nil
}

func (s *ReportTemplateService) List(ctx context.Context, f repository.ReportTemplateFilter) ([]entity.ReportTemplate, error) {
	items, err := s.repos.ReportTemplate.FindAll(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list report templates: %w", err)
	}
	return items, nil
}

func (s *ReportTemplateService) Update(ctx context.Context, id string, req ReportTemplateReq) (*entity.ReportTemplate, error) {
	var t *entity.ReportTemplate
	err := s.repos.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := s.repos.WithTx(tx)

		found, err := repos.ReportTemplate.FindByID(ctx, id)
		if err != nil {
			return notFound(err, "report template", id)
		}
		req.apply(found)
		if err := repos.ReportTemplate.Update(ctx, found); err != nil {
			return saveErr(err, "report template", found.Name)
		}
		if found.IsDefault {
			if err := repos.ReportTemplate.ClearDefault(ctx, found.ID); err != nil {
				return err
			}
		}
		t = found
		return nil
	})
	return t, err
}

// SetDefault marks id as the only default template
func (s *ReportTemplateService) SetDefault(ctx context.Context, id string) (*entity.ReportTemplate, error) {
	var t *entity.ReportTemplate
	err := s.repos.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := s.repos.WithTx(tx)

		found, err := repos.ReportTemplate.FindByID(ctx, id)
		if err != nil {
			return notFound(err, "report template", id)
		}
		if err := repos.ReportTemplate.ClearDefault(ctx, found.ID); err != nil {
			return err
		}
		found.IsDefault = true
		if err := repos.ReportTemplate.Update(ctx, found); err != nil {
			return saveErr(err, "report template", found.Name)
		}
		t = found
		return nil
	})
	return t, err
}

func (s *ReportTemplateService) ToggleActive(ctx context.Context, id string) (*entity.ReportTemplate, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	t.IsActive = !t.IsActive
	if err := s.repos.ReportTemplate.Update(ctx, t); err != nil {
		return nil, saveErr(err, "report template", t.Name)
	}
	return t, nil
}

// Delete refuses to remove the default template
func (s *ReportTemplateService) Delete(ctx context.Context, id string) error {
	t, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if t.IsDefault {
		return ErrDefaultTemplate
	}
	if err := s.repos.ReportTemplate.Delete(ctx, id); err != nil {
		return notFound(err, "report template", id)
	}
	return nil
}
