package service

import (
	"testing"

	"github.com/Harshana2/lims/internal/lims/entity"
	"github.com/Harshana2/lims/internal/lims/repository"
	"github.com/Harshana2/lims/internal/lims/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRequestCreateGeneratesSequentialCodes(t *testing.T) {
	f := newFixture(t, Deps{})

	first, err := f.svc.Request.Create(f.ctx, CreateRequestReq{Customer: "Acme Water"})
	require.NoError(t, err)
	second, err := f.svc.Request.Create(f.ctx, CreateRequestReq{Customer: "Blue Lake"})
	require.NoError(t, err)

	assert.Equal(t, "REQ-0001", first.RequestCode)
	assert.Equal(t, "REQ-0002", second.RequestCode)
	assert.Equal(t, entity.RequestStatusPending, first.Status)
	assert.Equal(t, entity.PriorityNormal, first.Priority)
	assert.NotNil(t, first.Parameters)
}

func TestRequestCreateContinuesAfterSuppliedCode(t *testing.T) {
	f := newFixture(t, Deps{})

	_, err := f.svc.Request.Create(f.ctx, CreateRequestReq{RequestCode: "REQ-0010", Customer: "Acme"})
	require.NoError(t, err)

	next, err := f.svc.Request.Create(f.ctx, CreateRequestReq{Customer: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "REQ-0011", next.RequestCode)
}

func TestRequestCreateRejectsCodeBeyondSequenceRange(t *testing.T) {
	f := newFixture(t, Deps{})

	for _, code := range []string{"REQ-9223372036854775807", "REQ-99999999999999999999", "REQ-2147483647"} {
		_, err := f.svc.Request.Create(f.ctx, CreateRequestReq{RequestCode: code, Customer: "Acme"})
		assert.ErrorIs(t, err, ErrValidation, code)
	}

	last, err := f.svc.Request.Create(f.ctx, CreateRequestReq{RequestCode: "REQ-2147483646", Customer: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "REQ-2147483646", last.RequestCode)

	next, err := f.svc.Request.Create(f.ctx, CreateRequestReq{Customer: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "REQ-2147483647", next.RequestCode)

	_, err = f.svc.Request.Create(f.ctx, CreateRequestReq{Customer: "Acme"})
	assert.ErrorIs(t, err, repository.ErrSequenceExhausted)

	var n int64
	f.db.Model(&entity.Request{}).Count(&n)
	assert.Equal(t, int64(2), n)
}

func TestRequestCreateRejectsDuplicateCode(t *testing.T) {
	f := newFixture(t, Deps{})

	_, err := f.svc.Request.Create(f.ctx, CreateRequestReq{RequestCode: "REQ-010", Customer: "Acme"})
	require.NoError(t, err)

	_, err = f.svc.Request.Create(f.ctx, CreateRequestReq{RequestCode: "REQ-010", Customer: "Other"})
	assert.ErrorIs(t, err, ErrDuplicateIdentifier)

	var n int64
	f.db.Model(&entity.Request{}).Count(&n)
	assert.Equal(t, int64(1), n)
}

func TestRequestCreateSurfacesInsertConflict(t *testing.T) {
	f := newFixture(t, Deps{})
	testutil.RaceOnCreate(t, f.db, entity.Request{}.TableName(), func(tx *gorm.DB) error {
		return tx.Create(&entity.Request{ID: "concurrent", RequestCode: "REQ-0001", Customer: "Other"}).Error
	})

	_, err := f.svc.Request.Create(f.ctx, CreateRequestReq{Customer: "Acme"})
	assert.ErrorIs(t, err, ErrIdentifierConflict)
	assert.NotErrorIs(t, err, ErrDuplicateIdentifier)

	var n int64
	f.db.Model(&entity.Request{}).Count(&n)
	assert.Equal(t, int64(0), n)

	retry, err := f.svc.Request.Create(f.ctx, CreateRequestReq{Customer: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "REQ-0001", retry.RequestCode)
}

func TestRequestQueries(t *testing.T) {
	f := newFixture(t, Deps{})

	_, err := f.svc.Request.Create(f.ctx, CreateRequestReq{Customer: "Acme Water Board"})
	require.NoError(t, err)
	r2, err := f.svc.Request.Create(f.ctx, CreateRequestReq{Customer: "Blue Lake", Status: entity.RequestStatusQuoted})
	require.NoError(t, err)

	byCustomer, err := f.svc.Request.ListByCustomer(f.ctx, "water")
	require.NoError(t, err)
	require.Len(t, byCustomer, 1)
	assert.Equal(t, "Acme Water Board", byCustomer[0].Customer)

	quoted, err := f.svc.Request.ListByStatus(f.ctx, entity.RequestStatusQuoted)
	require.NoError(t, err)
	require.Len(t, quoted, 1)
	assert.Equal(t, r2.ID, quoted[0].ID)

	got, err := f.svc.Request.GetByCode(f.ctx, r2.RequestCode)
	require.NoError(t, err)
	assert.Equal(t, r2.ID, got.ID)

	n, err := f.svc.Request.CountByStatus(f.ctx, entity.RequestStatusPending)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRequestUpdateStatusIsUnconditional(t *testing.T) {
	f := newFixture(t, Deps{})

	r, err := f.svc.Request.Create(f.ctx, CreateRequestReq{Customer: "Acme", Status: entity.RequestStatusConverted})
	require.NoError(t, err)

	updated, err := f.svc.Request.UpdateStatus(f.ctx, r.ID, entity.RequestStatusPending)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusPending, updated.Status)
}

func TestRequestUpdateAndDelete(t *testing.T) {
	f := newFixture(t, Deps{})

	r, err := f.svc.Request.Create(f.ctx, CreateRequestReq{Customer: "Acme", Parameters: []string{"pH"}})
	require.NoError(t, err)

	params := []string{"pH", "Conductivity"}
	updated, err := f.svc.Request.Update(f.ctx, r.ID, UpdateRequestReq{Parameters: &params, Notes: strPtr("urgent")})
	require.NoError(t, err)
	assert.Equal(t, r.RequestCode, updated.RequestCode)
	assert.Equal(t, "urgent", updated.Notes)

	got, err := f.svc.Request.Get(f.ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"pH", "Conductivity"}, []string(got.Parameters))

	require.NoError(t, f.svc.Request.Delete(f.ctx, r.ID))
	_, err = f.svc.Request.Get(f.ctx, r.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.svc.Request.Delete(f.ctx, r.ID), ErrNotFound)
}
