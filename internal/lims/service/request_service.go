package service

import (
	"context"
	"fmt"

	"github.com/Harshana2/lims/internal/lims/entity"
	"github.com/Harshana2/lims/internal/lims/repository"
)

// RequestService customer intake requests
type RequestService struct {
	repos *repository.Repositories
}

func NewRequestService(repos *repository.Repositories) *RequestService {
	return &RequestService{repos: repos}
}

// CreateRequestReq request_code is generated when empty
type CreateRequestReq struct {
	RequestCode     string   `json:"request_code"`
	Customer        string   `json:"customer" binding:"required"`
	Contact         string   `json:"contact"`
	Email           string   `json:"email" binding:"omitempty,email"`
	Address         string   `json:"address"`
	SampleType      string   `json:"sample_type"`
	Parameters      []string `json:"parameters"`
	NumberOfSamples int      `json:"number_of_samples" binding:"gte=0"`
	Priority        string   `json:"priority"`
	Status          string   `json:"status"`
	Notes           string   `json:"notes"`
}

// UpdateRequestReq nil fields are left unchanged
type UpdateRequestReq struct {
	Customer        *string   `json:"customer"`
	Contact         *string   `json:"contact"`
	Email           *string   `json:"email"`
	Address         *string   `json:"address"`
	SampleType      *string   `json:"sample_type"`
	Parameters      *[]string `json:"parameters"`
	NumberOfSamples *int      `json:"number_of_samples" binding:"omitempty,gte=0"`
	Priority        *string   `json:"priority"`
	Status          *string   `json:"status"`
	Notes           *string   `json:"notes"`
	QuotationID     *string   `json:"quotation_id"`
	CRFID           *string   `json:"crf_id"`
}

func (s *RequestService) Create(ctx context.Context, req CreateRequestReq) (*entity.Request, error) {
	scheme := repository.FlatScheme(&entity.Request{}, "request_code", "REQ")
	code, err := assignCode(ctx, s.repos.Sequence, scheme, req.RequestCode, s.repos.Request.ExistsByCode, "request")
	if err != nil {
		return nil, err
	}

	params := req.Parameters
	if params == nil {
		params = []string{}
	}

	request := &entity.Request{
		ID:              generateID(),
		RequestCode:     code,
		Customer:        req.Customer,
		Contact:         req.Contact,
		Email:           req.Email,
		Address:         req.Address,
		SampleType:      req.SampleType,
		Parameters:      params,
		NumberOfSamples: req.NumberOfSamples,
		Priority:        orDefault(req.Priority, entity.PriorityNormal),
		Status:          orDefault(req.Status, entity.RequestStatusPending),
		Notes:           req.Notes,
	}

	if err := s.repos.Request.Create(ctx, request); err != nil {
		return nil, saveErr(err, "request", code)
	}
	return request, nil
}

func (s *RequestService) Get(ctx context.Context, id string) (*entity.Request, error) {
	req, err := s.repos.Request.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "request", id)
	}
	return req, nil
}

func (s *RequestService) GetByCode(ctx context.Context, code string) (*entity.Request, error) {
	req, err := s.repos.Request.FindByCode(ctx, code)
	if err != nil {
		return nil, notFound(err, "request", code)
	}
	return req, nil
}

// List filters: status, customer, priority, sample_type
func (s *RequestService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Request, int64, error) {
	items, total, err := s.repos.Request.FindAll(ctx, page, pageSize, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("list requests: %w", err)
	}
	return items, total, nil
}

func (s *RequestService) ListByStatus(ctx context.Context, status string) ([]entity.Request, error) {
	items, _, err := s.List(ctx, 0, 0, map[string]string{"status": status})
	return items, err
}

// ListByCustomer case-insensitive substring match
func (s *RequestService) ListByCustomer(ctx context.Context, customer string) ([]entity.Request, error) {
	items, _, err := s.List(ctx, 0, 0, map[string]string{"customer": customer})
	return items, err
}

func (s *RequestService) Update(ctx context.Context, id string, req UpdateRequestReq) (*entity.Request, error) {
	request, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Customer != nil {
		request.Customer = *req.Customer
	}
	if req.Contact != nil {
		request.Contact = *req.Contact
	}
	if req.Email != nil {
		request.Email = *req.Email
	}
	if req.Address != nil {
		request.Address = *req.Address
	}
	if req.SampleType != nil {
		request.SampleType = *req.SampleType
	}
	if req.Parameters != nil {
		request.Parameters = *req.Parameters
	}
	if req.NumberOfSamples != nil {
		request.NumberOfSamples = *req.NumberOfSamples
	}
	if req.Priority != nil {
		request.Priority = *req.Priority
	}
	if req.Status != nil {
		request.Status = *req.Status
	}
	if req.Notes != nil {
		request.Notes = *req.Notes
	}
	if req.QuotationID != nil {
		request.QuotationID = req.QuotationID
	}
	if req.CRFID != nil {
		request.CRFID = req.CRFID
	}

	if err := s.repos.Request.Update(ctx, request); err != nil {
		return nil, saveErr(err, "request", request.RequestCode)
	}
	return request, nil
}

// UpdateStatus overwrites the status; any value may follow any other
func (s *RequestService) UpdateStatus(ctx context.Context, id, status string) (*entity.Request, error) {
	request, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	request.Status = status
	if err := s.repos.Request.Update(ctx, request); err != nil {
		return nil, saveErr(err, "request", request.RequestCode)
	}
	return request, nil
}

func (s *RequestService) Delete(ctx context.Context, id string) error {
	if err := s.repos.Request.Delete(ctx, id); err != nil {
		return notFound(err, "request", id)
	}
	return nil
}

func (s *RequestService) CountByStatus(ctx context.Context, status string) (int64, error) {
	n, err := s.repos.Request.CountByStatus(ctx, status)
	if err != nil {
		return 0, fmt.Errorf("count requests: %w", err)
	}
	return n, nil
}
