package service

import (
	"testing"
	"time"

	"github.com/Harshana2/lims/internal/lims/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createSamples(t *testing.T, f *fixture, params []string, n int) []entity.Sample {
	t.Helper()
	crf, err := f.svc.CRF.Create(f.ctx, CreateCRFReq{
		CRFType:         entity.CRFTypeCS,
		Customer:        "Acme",
		TestParameters:  params,
		NumberOfSamples: n,
	})
	require.NoError(t, err)
	if len(params) == 0 {
		return crf.Samples
	}

	samples := make([]entity.Sample, len(crf.Samples))
	for i, sample := range crf.Samples {
		registered, err := f.svc.Sample.SetTestParameters(f.ctx, sample.ID, params)
		require.NoError(t, err)
		samples[i] = *registered
	}
	return samples
}

func TestSampleAssign(t *testing.T) {
	f := newFixture(t, Deps{})
	s := createSamples(t, f, []string{"pH"}, 1)[0]

	assigned, err := f.svc.Sample.Assign(f.ctx, s.ID, "Dr. Silva")
	require.NoError(t, err)
	assert.Equal(t, entity.SampleStatusAssigned, assigned.Status)
	require.NotNil(t, assigned.AssignedTo)
	assert.Equal(t, "Dr. Silva", *assigned.AssignedTo)
	assert.NotNil(t, assigned.AssignedDate)

	mine, err := f.svc.Sample.ListByChemist(f.ctx, "Dr. Silva")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	n, err := f.svc.Sample.CountByChemist(f.ctx, "Dr. Silva")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestSampleUpdateTestValuesPartialThenComplete(t *testing.T) {
	f := newFixture(t, Deps{})
	s := createSamples(t, f, []string{"pH", "Conductivity"}, 1)[0]

	partial, err := f.svc.Sample.UpdateTestValues(f.ctx, s.ID, map[string]string{"pH": "7.2"})
	require.NoError(t, err)
	assert.Equal(t, entity.SampleStatusTesting, partial.Status)
	assert.Nil(t, partial.CompletedDate)
	assert.Equal(t, entity.TestStatusCompleted, partial.TestStatus.Data()["pH"])
	assert.Equal(t, entity.TestStatusPending, partial.TestStatus.Data()["Conductivity"])

	done, err := f.svc.Sample.UpdateTestValues(f.ctx, s.ID, map[string]string{"Conductivity": "410"})
	require.NoError(t, err)
	assert.Equal(t, entity.SampleStatusCompleted, done.Status)
	require.NotNil(t, done.CompletedDate)
	assert.Equal(t, map[string]string{"pH": "7.2", "Conductivity": "410"}, done.TestValues.Data())

	stored, err := f.svc.Sample.Get(f.ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SampleStatusCompleted, stored.Status)
	assert.Equal(t, "7.2", stored.TestValues.Data()["pH"])
}

func TestSampleUpdateTestValuesIsIdempotent(t *testing.T) {
	f := newFixture(t, Deps{})
	s := createSamples(t, f, []string{"pH", "Conductivity"}, 1)[0]
	values := map[string]string{"pH": "7.2"}

	first, err := f.svc.Sample.UpdateTestValues(f.ctx, s.ID, values)
	require.NoError(t, err)
	second, err := f.svc.Sample.UpdateTestValues(f.ctx, s.ID, values)
	require.NoError(t, err)

	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.TestValues.Data(), second.TestValues.Data())
	assert.Equal(t, first.TestStatus.Data(), second.TestStatus.Data())
}

func TestSampleUpdateTestValuesEmptyMapCompletesVacuously(t *testing.T) {
	f := newFixture(t, Deps{})
	s := createSamples(t, f, nil, 1)[0]

	done, err := f.svc.Sample.UpdateTestValues(f.ctx, s.ID, map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, entity.SampleStatusCompleted, done.Status)
	assert.NotNil(t, done.CompletedDate)
}

func TestSampleFromFanOutCompletesOnFirstValues(t *testing.T) {
	f := newFixture(t, Deps{})
	crf, err := f.svc.CRF.Create(f.ctx, CreateCRFReq{
		CRFType:         entity.CRFTypeCS,
		Customer:        "Acme",
		TestParameters:  []string{"pH", "COD"},
		NumberOfSamples: 1,
	})
	require.NoError(t, err)
	require.Empty(t, crf.Samples[0].TestStatus.Data())

	done, err := f.svc.Sample.UpdateTestValues(f.ctx, crf.Samples[0].ID, map[string]string{"pH": "7"})
	require.NoError(t, err)
	assert.Equal(t, entity.SampleStatusCompleted, done.Status)
	assert.Equal(t, map[string]string{"pH": entity.TestStatusCompleted}, done.TestStatus.Data())
}

func TestSampleUpdateTestValuesAddsUnknownParameter(t *testing.T) {
	f := newFixture(t, Deps{})
	s := createSamples(t, f, []string{"pH"}, 1)[0]

	updated, err := f.svc.Sample.UpdateTestValues(f.ctx, s.ID, map[string]string{"Turbidity": "1.1"})
	require.NoError(t, err)
	assert.Equal(t, entity.SampleStatusTesting, updated.Status)
	assert.Equal(t, entity.TestStatusCompleted, updated.TestStatus.Data()["Turbidity"])
}

func TestSampleSetTestParametersKeepsExisting(t *testing.T) {
	f := newFixture(t, Deps{})
	s := createSamples(t, f, []string{"pH"}, 1)[0]

	_, err := f.svc.Sample.UpdateTestValues(f.ctx, s.ID, map[string]string{"pH": "6.8"})
	require.NoError(t, err)

	updated, err := f.svc.Sample.SetTestParameters(f.ctx, s.ID, []string{"pH", "Lead"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"pH":   entity.TestStatusCompleted,
		"Lead": entity.TestStatusPending,
	}, updated.TestStatus.Data())
}

func TestSampleUpdateStatusStampsCompletionOnce(t *testing.T) {
	f := newFixture(t, Deps{})
	s := createSamples(t, f, nil, 1)[0]

	done, err := f.svc.Sample.UpdateStatus(f.ctx, s.ID, entity.SampleStatusCompleted)
	require.NoError(t, err)
	require.NotNil(t, done.CompletedDate)
	stamp := *done.CompletedDate

	_, err = f.svc.Sample.UpdateStatus(f.ctx, s.ID, entity.SampleStatusTesting)
	require.NoError(t, err)
	again, err := f.svc.Sample.UpdateStatus(f.ctx, s.ID, entity.SampleStatusCompleted)
	require.NoError(t, err)
	require.NotNil(t, again.CompletedDate)
	assert.WithinDuration(t, stamp, *again.CompletedDate, time.Second)
}

func TestSampleMissing(t *testing.T) {
	f := newFixture(t, Deps{})

	_, err := f.svc.Sample.Assign(f.ctx, "missing", "Dr. Silva")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.svc.Sample.UpdateTestValues(f.ctx, "missing", map[string]string{"pH": "7"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.svc.Sample.Delete(f.ctx, "missing"), ErrNotFound)
}

func TestSampleListByStatusAndCount(t *testing.T) {
	f := newFixture(t, Deps{})
	samples := createSamples(t, f, []string{"pH"}, 3)

	_, err := f.svc.Sample.Assign(f.ctx, samples[0].ID, "Dr. Silva")
	require.NoError(t, err)

	pending, err := f.svc.Sample.ListByStatus(f.ctx, entity.SampleStatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	n, err := f.svc.Sample.CountByStatus(f.ctx, entity.SampleStatusAssigned)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	byCode, err := f.svc.Sample.GetByCode(f.ctx, samples[1].SampleCode)
	require.NoError(t, err)
	assert.Equal(t, samples[1].ID, byCode.ID)
}

func TestSampleListPagesAreStableWithinBatch(t *testing.T) {
	f := newFixture(t, Deps{})
	crf, err := f.svc.CRF.Create(f.ctx, CreateCRFReq{CRFType: entity.CRFTypeCS, Customer: "Acme", NumberOfSamples: 11})
	require.NoError(t, err)

	batch := time.Now().Truncate(time.Second)
	require.NoError(t, f.db.Model(&entity.Sample{}).Where("crf_id = ?", crf.ID).Update("created_at", batch).Error)

	var codes []string
	for page := 1; page <= 3; page++ {
		items, total, err := f.svc.Sample.List(f.ctx, page, 4, map[string]string{"crf_id": crf.ID})
		require.NoError(t, err)
		assert.Equal(t, int64(11), total)
		for _, s := range items {
			codes = append(codes, s.SampleCode)
		}
	}

	require.Len(t, codes, 11)
	for i, code := range codes {
		assert.Equal(t, yearCode("CS", i+1), code)
	}
}
