package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Harshana2/lims/internal/lims/entity"
	"github.com/Harshana2/lims/internal/lims/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CRFService chain-of-record forms and their sample fan-out
type CRFService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

func NewCRFService(repos *repository.Repositories, logger *zap.Logger) *CRFService {
	return &CRFService{repos: repos, logger: logger}
}

// CreateCRFReq crf_code is generated when empty; reception_date defaults to now
type CreateCRFReq struct {
	CRFCode         string     `json:"crf_code"`
	CRFType         string     `json:"crf_type" binding:"required,oneof=CS LS"`
	Customer        string     `json:"customer" binding:"required"`
	Address         string     `json:"address"`
	Contact         string     `json:"contact"`
	Email           string     `json:"email" binding:"omitempty,email"`
	SampleType      string     `json:"sample_type"`
	TestParameters  []string   `json:"test_parameters"`
	NumberOfSamples int        `json:"number_of_samples" binding:"gte=0"`
	SamplingType    string     `json:"sampling_type"`
	ReceptionDate   *time.Time `json:"reception_date"`
	ReceivedBy      string     `json:"received_by"`
	Signature       string     `json:"signature"`
	Priority        string     `json:"priority"`
	Status          string     `json:"status"`
	QuotationRef    string     `json:"quotation_ref"`
	SampleImages    []string   `json:"sample_images"`
}

// UpdateCRFReq nil fields are left unchanged. Changing number_of_samples does not add or remove samples.
type UpdateCRFReq struct {
	Customer        *string    `json:"customer"`
	Address         *string    `json:"address"`
	Contact         *string    `json:"contact"`
	Email           *string    `json:"email"`
	SampleType      *string    `json:"sample_type"`
	TestParameters  *[]string  `json:"test_parameters"`
	NumberOfSamples *int       `json:"number_of_samples" binding:"omitempty,gte=0"`
	SamplingType    *string    `json:"sampling_type"`
	ReceptionDate   *time.Time `json:"reception_date"`
	ReceivedBy      *string    `json:"received_by"`
	Signature       *string    `json:"signature"`
	Priority        *string    `json:"priority"`
	Status          *string    `json:"status"`
	QuotationRef    *string    `json:"quotation_ref"`
	SampleImages    *[]string  `json:"sample_images"`
}

// Create writes the CRF and its number_of_samples pending samples in one transaction.
// Sample codes continue the <crf_type>/YY/n sequence.
func (s *CRFService) Create(ctx context.Context, req CreateCRFReq) (*entity.CRF, error) {
	now := time.Now()
	var crf *entity.CRF

	err := s.repos.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := s.repos.WithTx(tx)

		scheme := repository.YearScheme(&entity.CRF{}, "crf_code", "CRF", now)
		code, err := assignCode(ctx, repos.Sequence, scheme, req.CRFCode, repos.CRF.ExistsByCode, "crf")
		if err != nil {
			return err
		}

		receptionDate := now
		if req.ReceptionDate != nil {
			receptionDate = *req.ReceptionDate
		}

		crf = &entity.CRF{
			ID:              generateID(),
			CRFCode:         code,
			CRFType:         req.CRFType,
			Customer:        req.Customer,
			Address:         req.Address,
			Contact:         req.Contact,
			Email:           req.Email,
			SampleType:      req.SampleType,
			TestParameters:  nonNil(req.TestParameters),
			NumberOfSamples: req.NumberOfSamples,
			SamplingType:    req.SamplingType,
			ReceptionDate:   receptionDate,
			ReceivedBy:      req.ReceivedBy,
			Signature:       req.Signature,
			Priority:        orDefault(req.Priority, entity.PriorityNormal),
			Status:          orDefault(req.Status, entity.CRFStatusDraft),
			QuotationRef:    req.QuotationRef,
			SampleImages:    nonNil(req.SampleImages),
		}
		if err := repos.CRF.Create(ctx, crf); err != nil {
			return saveErr(err, "crf", code)
		}

		samples, err := s.fanOut(ctx, repos, crf, now)
		if err != nil {
			return err
		}
		crf.Samples = samples
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("CRF created",
		zap.String("crf_code", crf.CRFCode),
		zap.Int("samples", len(crf.Samples)),
	)
	return crf, nil
}

func (s *CRFService) fanOut(ctx context.Context, repos *repository.Repositories, crf *entity.CRF, now time.Time) ([]entity.Sample, error) {
	if crf.NumberOfSamples <= 0 {
		return []entity.Sample{}, nil
	}

	scheme := repository.YearScheme(&entity.Sample{}, "sample_code", crf.CRFType, now)
	codes, err := repos.Sequence.NextN(ctx, scheme, crf.NumberOfSamples)
	if err != nil {
		return nil, fmt.Errorf("generate sample codes: %w", err)
	}

	samples := make([]entity.Sample, len(codes))
	for i, code := range codes {
		samples[i] = entity.Sample{
			ID:          generateID(),
			SampleCode:  code,
			CRFID:       crf.ID,
			Description: fmt.Sprintf("Sample %d for %s", i+1, crf.Customer),
			Status:      entity.SampleStatusPending,
			TestValues:  entity.NewTestMap(nil),
			TestStatus:  entity.NewTestMap(nil),
		}
	}

	if err := repos.Sample.CreateBatch(ctx, samples); err != nil {
		return nil, saveErr(err, "sample", codes[0])
	}
	return samples, nil
}

// Get loads the CRF with its samples
func (s *CRFService) Get(ctx context.Context, id string) (*entity.CRF, error) {
	crf, err := s.repos.CRF.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "crf", id)
	}
	return crf, nil
}

func (s *CRFService) GetByCode(ctx context.Context, code string) (*entity.CRF, error) {
	crf, err := s.repos.CRF.FindByCode(ctx, code)
	if err != nil {
		return nil, notFound(err, "crf", code)
	}
	return crf, nil
}

func (s *CRFService) List(ctx context.Context, page, pageSize int, f repository.CRFFilter) ([]entity.CRF, int64, error) {
	items, total, err := s.repos.CRF.FindAll(ctx, page, pageSize, f)
	if err != nil {
		return nil, 0, fmt.Errorf("list crfs: %w", err)
	}
	return items, total, nil
}

func (s *CRFService) ListByStatus(ctx context.Context, status string) ([]entity.CRF, error) {
	items, _, err := s.List(ctx, 0, 0, repository.CRFFilter{Status: status})
	return items, err
}

// ListByCustomer case-insensitive substring match
func (s *CRFService) ListByCustomer(ctx context.Context, customer string) ([]entity.CRF, error) {
	items, _, err := s.List(ctx, 0, 0, repository.CRFFilter{Customer: customer})
	return items, err
}

func (s *CRFService) ListBySampleType(ctx context.Context, sampleType string) ([]entity.CRF, error) {
	items, _, err := s.List(ctx, 0, 0, repository.CRFFilter{SampleType: sampleType})
	return items, err
}

func (s *CRFService) Update(ctx context.Context, id string, req UpdateCRFReq) (*entity.CRF, error) {
	crf, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Customer != nil {
		crf.Customer = *req.Customer
	}
	if req.Address != nil {
		crf.Address = *req.Address
	}
	if req.Contact != nil {
		crf.Contact = *req.Contact
	}
	if req.Email != nil {
		crf.Email = *req.Email
	}
	if req.SampleType != nil {
		crf.SampleType = *req.SampleType
	}
	if req.TestParameters != nil {
		crf.TestParameters = *req.TestParameters
	}
	if req.NumberOfSamples != nil {
		crf.NumberOfSamples = *req.NumberOfSamples
	}
	if req.SamplingType != nil {
		crf.SamplingType = *req.SamplingType
	}
	if req.ReceptionDate != nil {
		crf.ReceptionDate = *req.ReceptionDate
	}
	if req.ReceivedBy != nil {
		crf.ReceivedBy = *req.ReceivedBy
	}
	if req.Signature != nil {
		crf.Signature = *req.Signature
	}
	if req.Priority != nil {
		crf.Priority = *req.Priority
	}
	if req.Status != nil {
		crf.Status = *req.Status
	}
	if req.QuotationRef != nil {
		crf.QuotationRef = *req.QuotationRef
	}
	if req.SampleImages != nil {
		crf.SampleImages = *req.SampleImages
	}

	if err := s.repos.CRF.Update(ctx, crf); err != nil {
		return nil, saveErr(err, "crf", crf.CRFCode)
	}
	return crf, nil
}

// UpdateStatus overwrites the status; sample completion is never rolled up here
func (s *CRFService) UpdateStatus(ctx context.Context, id, status string) (*entity.CRF, error) {
	crf, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	crf.Status = status
	if err := s.repos.CRF.Update(ctx, crf); err != nil {
		return nil, saveErr(err, "crf", crf.CRFCode)
	}
	return crf, nil
}

// Delete removes the CRF together with its samples and sampling map
func (s *CRFService) Delete(ctx context.Context, id string) error {
	var removed int64
	err := s.repos.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := s.repos.WithTx(tx)

		if err := repos.EnvSampling.DeleteByCRF(ctx, id); err != nil {
			return fmt.Errorf("delete sampling map: %w", err)
		}
		n, err := repos.Sample.DeleteByCRF(ctx, id)
		if err != nil {
			return fmt.Errorf("delete samples: %w", err)
		}
		removed = n
		if err := repos.CRF.Delete(ctx, id); err != nil {
			return notFound(err, "crf", id)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("CRF deleted", zap.String("crf_id", id), zap.Int64("samples", removed))
	return nil
}

func (s *CRFService) CountByStatus(ctx context.Context, status string) (int64, error) {
	n, err := s.repos.CRF.CountByStatus(ctx, status)
	if err != nil {
		return 0, fmt.Errorf("count crfs: %w", err)
	}
	return n, nil
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
