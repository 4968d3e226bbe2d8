package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Harshana2/lims/internal/lims/entity"
	"github.com/Harshana2/lims/internal/lims/repository"
	"github.com/shopspring/decimal"
)

// QuotationService priced quotations for requests
type QuotationService struct {
	repos   *repository.Repositories
	taxRate decimal.Decimal
}

func NewQuotationService(repos *repository.Repositories, taxRate float64) *QuotationService {
	return &QuotationService{
		repos:   repos,
		taxRate: decimal.NewFromFloat(taxRate),
	}
}

type QuotationItemReq struct {
	Parameter  string           `json:"parameter" binding:"required"`
	Quantity   int              `json:"quantity" binding:"gte=0"`
	UnitPrice  decimal.Decimal  `json:"unit_price"`
	TotalPrice *decimal.Decimal `json:"total_price"`
}

// CreateQuotationReq subtotal defaults to the item sum, tax to zero and total to subtotal+tax
type CreateQuotationReq struct {
	QuotationCode string             `json:"quotation_code"`
	RequestID     string             `json:"request_id" binding:"required"`
	Customer      string             `json:"customer"`
	Items         []QuotationItemReq `json:"items" binding:"dive"`
	Subtotal      *decimal.Decimal   `json:"subtotal"`
	Tax           *decimal.Decimal   `json:"tax"`
	Total         *decimal.Decimal   `json:"total"`
	Status        string             `json:"status"`
	Notes         string             `json:"notes"`
	PreparedBy    string             `json:"prepared_by"`
}

// UpdateQuotationReq nil fields are left unchanged
type UpdateQuotationReq struct {
	Customer   *string             `json:"customer"`
	Items      *[]QuotationItemReq `json:"items"`
	Subtotal   *decimal.Decimal    `json:"subtotal"`
	Tax        *decimal.Decimal    `json:"tax"`
	Total      *decimal.Decimal    `json:"total"`
	Status     *string             `json:"status"`
	Notes      *string             `json:"notes"`
	PreparedBy *string             `json:"prepared_by"`
	ApprovedBy *string             `json:"approved_by"`
}

func (s *QuotationService) Create(ctx context.Context, req CreateQuotationReq) (*entity.Quotation, error) {
	request, err := s.repos.Request.FindByID(ctx, req.RequestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, validation("request %s does not exist", req.RequestID)
		}
		return nil, fmt.Errorf("load request: %w", err)
	}

	scheme := repository.FlatScheme(&entity.Quotation{}, "quotation_code", "QTN")
	code, err := assignCode(ctx, s.repos.Sequence, scheme, req.QuotationCode, s.repos.Quotation.ExistsByCode, "quotation")
	if err != nil {
		return nil, err
	}

	items := buildItems(req.Items)
	subtotal := sumItems(items)
	if req.Subtotal != nil {
		subtotal = *req.Subtotal
	}
	tax := decimal.Zero
	if req.Tax != nil {
		tax = *req.Tax
	}
	total := subtotal.Add(tax)
	if req.Total != nil {
		total = *req.Total
	}

	q := &entity.Quotation{
		ID:            generateID(),
		QuotationCode: code,
		RequestID:     request.ID,
		Customer:      orDefault(req.Customer, request.Customer),
		Items:         items,
		Subtotal:      subtotal,
		Tax:           tax,
		Total:         total,
		Status:        orDefault(req.Status, entity.QuotationStatusDraft),
		Notes:         req.Notes,
		PreparedBy:    req.PreparedBy,
	}
	stampQuotation(q, time.Now())

	if err := s.repos.Quotation.Create(ctx, q); err != nil {
		return nil, saveErr(err, "quotation", code)
	}
	return q, nil
}

// DraftFromRequest prices every requested parameter at its catalog default price
// for the request's sample count and applies the configured tax rate
func (s *QuotationService) DraftFromRequest(ctx context.Context, requestID, preparedBy string) (*entity.Quotation, error) {
	request, err := s.repos.Request.FindByID(ctx, requestID)
	if err != nil {
		return nil, notFound(err, "request", requestID)
	}

	catalog, err := s.repos.TestParameter.FindByNames(ctx, request.Parameters)
	if err != nil {
		return nil, fmt.Errorf("load test parameters: %w", err)
	}

	qty := request.NumberOfSamples
	if qty < 1 {
		qty = 1
	}

	items := make([]QuotationItemReq, 0, len(request.Parameters))
	for _, name := range request.Parameters {
		p, ok := catalog[name]
		if !ok {
			return nil, validation("parameter %q is not in the catalog", name)
		}
		items = append(items, QuotationItemReq{Parameter: name, Quantity: qty, UnitPrice: p.DefaultPrice})
	}

	subtotal := sumItems(buildItems(items))
	tax := subtotal.Mul(s.taxRate).Round(2)
	return s.Create(ctx, CreateQuotationReq{
		RequestID:  request.ID,
		Items:      items,
		Subtotal:   &subtotal,
		Tax:        &tax,
		PreparedBy: preparedBy,
	})
}

func (s *QuotationService) Get(ctx context.Context, id string) (*entity.Quotation, error) {
	q, err := s.repos.Quotation.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "quotation", id)
	}
	return q, nil
}

func (s *QuotationService) GetByCode(ctx context.Context, code string) (*entity.Quotation, error) {
	q, err := s.repos.Quotation.FindByCode(ctx, code)
	if err != nil {
		return nil, notFound(err, "quotation", code)
	}
	return q, nil
}

// List filters: status, request_id, customer
func (s *QuotationService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Quotation, int64, error) {
	items, total, err := s.repos.Quotation.FindAll(ctx, page, pageSize, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("list quotations: %w", err)
	}
	return items, total, nil
}

func (s *QuotationService) ListByRequest(ctx context.Context, requestID string) ([]entity.Quotation, error) {
	items, _, err := s.List(ctx, 0, 0, map[string]string{"request_id": requestID})
	return items, err
}

func (s *QuotationService) ListByStatus(ctx context.Context, status string) ([]entity.Quotation, error) {
	items, _, err := s.List(ctx, 0, 0, map[string]string{"status": status})
	return items, err
}

func (s *QuotationService) Update(ctx context.Context, id string, req UpdateQuotationReq) (*entity.Quotation, error) {
	q, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Customer != nil {
		q.Customer = *req.Customer
	}
	if req.Items != nil {
		q.Items = buildItems(*req.Items)
	}
	if req.Subtotal != nil {
		q.Subtotal = *req.Subtotal
	}
	if req.Tax != nil {
		q.Tax = *req.Tax
	}
	if req.Total != nil {
		q.Total = *req.Total
	}
	if req.Status != nil {
		q.Status = *req.Status
	}
	if req.Notes != nil {
		q.Notes = *req.Notes
	}
	if req.PreparedBy != nil {
		q.PreparedBy = *req.PreparedBy
	}
	if req.ApprovedBy != nil {
		q.ApprovedBy = *req.ApprovedBy
	}
	stampQuotation(q, time.Now())

	if err := s.repos.Quotation.Update(ctx, q); err != nil {
		return nil, saveErr(err, "quotation", q.QuotationCode)
	}
	return q, nil
}

// UpdateStatus overwrites the status. Entering sent or approved stamps the
// matching date the first time only; stamps survive later status changes.
func (s *QuotationService) UpdateStatus(ctx context.Context, id, status string) (*entity.Quotation, error) {
	q, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	q.Status = status
	stampQuotation(q, time.Now())

	if err := s.repos.Quotation.Update(ctx, q); err != nil {
		return nil, saveErr(err, "quotation", q.QuotationCode)
	}
	return q, nil
}

func (s *QuotationService) Delete(ctx context.Context, id string) error {
	if err := s.repos.Quotation.Delete(ctx, id); err != nil {
		return notFound(err, "quotation", id)
	}
	return nil
}

func (s *QuotationService) CountByStatus(ctx context.Context, status string) (int64, error) {
	n, err := s.repos.Quotation.CountByStatus(ctx, status)
	if err != nil {
		return 0, fmt.Errorf("count quotations: %w", err)
	}
	return n, nil
}

func stampQuotation(q *entity.Quotation, now time.Time) {
	switch q.Status {
	case entity.QuotationStatusSent:
		if q.SentDate == nil {
			q.SentDate = &now
		}
	case entity.QuotationStatusApproved:
		if q.ApprovedDate == nil {
			q.ApprovedDate = &now
		}
	}
}

// buildItems fills total_price as quantity x unit_price when absent
func buildItems(reqs []QuotationItemReq) []entity.QuotationItem {
	items := make([]entity.QuotationItem, 0, len(reqs))
	for _, r := range reqs {
		total := r.UnitPrice.Mul(decimal.NewFromInt(int64(r.Quantity)))
		if r.TotalPrice != nil {
			total = *r.TotalPrice
		}
		items = append(items, entity.QuotationItem{
			Parameter:  r.Parameter,
			Quantity:   r.Quantity,
			UnitPrice:  r.UnitPrice,
			TotalPrice: total,
		})
	}
	return items
}

func sumItems(items []entity.QuotationItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.TotalPrice)
	}
	return sum
}
