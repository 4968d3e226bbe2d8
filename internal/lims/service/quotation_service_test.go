package service

import (
	"testing"
	"time"

	"github.com/Harshana2/lims/internal/lims/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuotationLifecycleForRushRequest(t *testing.T) {
	f := newFixture(t, Deps{})

	req, err := f.svc.Request.Create(f.ctx, CreateRequestReq{
		RequestCode:     "REQ-010",
		Customer:        "Acme Water",
		Parameters:      []string{"pH"},
		NumberOfSamples: 5,
		Priority:        entity.PriorityRush,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PriorityRush, req.Priority)

	q, err := f.svc.Quotation.Create(f.ctx, CreateQuotationReq{
		RequestID: req.ID,
		Items:     []QuotationItemReq{{Parameter: "pH", Quantity: 5, UnitPrice: dec(50)}},
		Tax:       decPtr(25),
	})
	require.NoError(t, err)
	assert.Equal(t, "QTN-0001", q.QuotationCode)
	assert.Equal(t, "Acme Water", q.Customer)
	assert.Equal(t, entity.QuotationStatusDraft, q.Status)
	require.Len(t, q.Items, 1)
	assert.True(t, q.Items[0].TotalPrice.Equal(dec(250)))
	assert.True(t, q.Subtotal.Equal(dec(250)))
	assert.True(t, q.Total.Equal(dec(275)))

	approved, err := f.svc.Quotation.UpdateStatus(f.ctx, q.ID, entity.QuotationStatusApproved)
	require.NoError(t, err)
	assert.Nil(t, approved.SentDate)
	require.NotNil(t, approved.ApprovedDate)

	stored, err := f.svc.Quotation.Get(f.ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.QuotationStatusApproved, stored.Status)
	assert.Nil(t, stored.SentDate)
	assert.NotNil(t, stored.ApprovedDate)
	assert.True(t, stored.Total.Equal(dec(275)))
}

func TestQuotationSentDateStampedOnce(t *testing.T) {
	f := newFixture(t, Deps{})

	req, err := f.svc.Request.Create(f.ctx, CreateRequestReq{Customer: "Acme"})
	require.NoError(t, err)
	q, err := f.svc.Quotation.Create(f.ctx, CreateQuotationReq{RequestID: req.ID})
	require.NoError(t, err)
	assert.Nil(t, q.SentDate)

	sent, err := f.svc.Quotation.UpdateStatus(f.ctx, q.ID, entity.QuotationStatusSent)
	require.NoError(t, err)
	require.NotNil(t, sent.SentDate)
	first := *sent.SentDate

	_, err = f.svc.Quotation.UpdateStatus(f.ctx, q.ID, entity.QuotationStatusDraft)
	require.NoError(t, err)
	again, err := f.svc.Quotation.UpdateStatus(f.ctx, q.ID, entity.QuotationStatusSent)
	require.NoError(t, err)
	require.NotNil(t, again.SentDate)
	assert.WithinDuration(t, first, *again.SentDate, time.Second)
}

func TestQuotationCreateRequiresExistingRequest(t *testing.T) {
	f := newFixture(t, Deps{})

	_, err := f.svc.Quotation.Create(f.ctx, CreateQuotationReq{RequestID: "missing"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestQuotationCreateRejectsDuplicateCode(t *testing.T) {
	f := newFixture(t, Deps{})

	req, err := f.svc.Request.Create(f.ctx, CreateRequestReq{Customer: "Acme"})
	require.NoError(t, err)
	_, err = f.svc.Quotation.Create(f.ctx, CreateQuotationReq{QuotationCode: "QTN-0005", RequestID: req.ID})
	require.NoError(t, err)

	_, err = f.svc.Quotation.Create(f.ctx, CreateQuotationReq{QuotationCode: "QTN-0005", RequestID: req.ID})
	assert.ErrorIs(t, err, ErrDuplicateIdentifier)

	next, err := f.svc.Quotation.Create(f.ctx, CreateQuotationReq{RequestID: req.ID})
	require.NoError(t, err)
	assert.Equal(t, "QTN-0006", next.QuotationCode)
}

func TestQuotationDraftFromRequestUsesCatalogPrices(t *testing.T) {
	f := newFixture(t, Deps{})
	f.seedParameter(t, "pH", "pH units", 50)
	f.seedParameter(t, "Conductivity", "µS/cm", 75)

	req, err := f.svc.Request.Create(f.ctx, CreateRequestReq{
		Customer:        "Acme",
		Parameters:      []string{"pH", "Conductivity"},
		NumberOfSamples: 2,
	})
	require.NoError(t, err)

	q, err := f.svc.Quotation.DraftFromRequest(f.ctx, req.ID, "manager")
	require.NoError(t, err)
	require.Len(t, q.Items, 2)
	assert.True(t, q.Subtotal.Equal(dec(250)))
	assert.True(t, q.Tax.Equal(dec(25)))
	assert.True(t, q.Total.Equal(dec(275)))
	assert.Equal(t, "manager", q.PreparedBy)

	list, err := f.svc.Quotation.ListByRequest(f.ctx, req.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestQuotationDraftFromRequestRejectsUnknownParameter(t *testing.T) {
	f := newFixture(t, Deps{})

	req, err := f.svc.Request.Create(f.ctx, CreateRequestReq{Customer: "Acme", Parameters: []string{"Radon"}})
	require.NoError(t, err)

	_, err = f.svc.Quotation.DraftFromRequest(f.ctx, req.ID, "")
	assert.ErrorIs(t, err, ErrValidation)
}
