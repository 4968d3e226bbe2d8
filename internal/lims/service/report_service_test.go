package service

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/Harshana2/lims/internal/lims/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type mockObjectStore struct {
	mock.Mock
	body []byte
}

func (m *mockObjectStore) Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.body = data
	return m.Called(name, size, contentType).Error(0)
}

func seedCompletedCRF(t *testing.T, f *fixture) *entity.CRF {
	t.Helper()
	f.seedParameter(t, "pH", "pH units", 50)

	crf, err := f.svc.CRF.Create(f.ctx, CreateCRFReq{
		CRFType:         entity.CRFTypeCS,
		Customer:        "Acme Water",
		TestParameters:  []string{"pH"},
		NumberOfSamples: 2,
		Signature:       "J. Doe",
	})
	require.NoError(t, err)

	_, err = f.svc.Sample.Assign(f.ctx, crf.Samples[0].ID, "Dr. Silva")
	require.NoError(t, err)
	_, err = f.svc.Sample.UpdateTestValues(f.ctx, crf.Samples[0].ID, map[string]string{"pH": "7.4"})
	require.NoError(t, err)
	return crf
}

func TestReportWorkbookWithDefaultLayout(t *testing.T) {
	f := newFixture(t, Deps{})
	crf := seedCompletedCRF(t, f)

	wb, fileName, err := f.svc.Report.BuildWorkbook(f.ctx, crf.ID, "")
	require.NoError(t, err)
	defer wb.Close()

	assert.True(t, strings.HasPrefix(fileName, strings.ReplaceAll(crf.CRFCode, "/", "-")+"_"))
	assert.True(t, strings.HasSuffix(fileName, ".xlsx"))
	assert.Equal(t, []string{"CRF", "Results"}, wb.GetSheetList())

	summary, err := wb.GetRows("CRF")
	require.NoError(t, err)
	assert.Equal(t, []string{"Laboratory", "Test Laboratory"}, summary[0])
	assert.Contains(t, flatten(summary), crf.CRFCode)
	assert.Contains(t, flatten(summary), "J. Doe")

	rows, err := wb.GetRows("Results")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Sample Code", "Description", "Status", "Chemist", "Completed", "pH (pH units) [APHA pH]"}, rows[0])
	assert.Equal(t, crf.Samples[0].SampleCode, rows[1][0])
	assert.Equal(t, entity.SampleStatusCompleted, rows[1][2])
	assert.Equal(t, "Dr. Silva", rows[1][3])
	assert.Equal(t, "7.4", rows[1][5])
	assert.Equal(t, entity.SampleStatusPending, rows[2][2])
}

func TestReportWorkbookHonorsTemplateFlags(t *testing.T) {
	f := newFixture(t, Deps{})
	crf := seedCompletedCRF(t, f)

	tmpl, err := f.svc.ReportTemplate.Create(f.ctx, ReportTemplateReq{
		Name:               "Results only",
		TemplateType:       "summary",
		IncludeTestResults: true,
	}, "admin")
	require.NoError(t, err)

	wb, _, err := f.svc.Report.BuildWorkbook(f.ctx, crf.ID, tmpl.ID)
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows("Results")
	require.NoError(t, err)
	assert.Equal(t, []string{"Sample Code", "pH (pH units)"}, rows[0])
	assert.NotContains(t, flatten(mustRows(t, wb, "CRF")), crf.Customer)
}

func TestReportWorkbookUnknownCRF(t *testing.T) {
	f := newFixture(t, Deps{})

	_, _, err := f.svc.Report.BuildWorkbook(f.ctx, "missing", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReportArchiveUploadsWorkbook(t *testing.T) {
	store := &mockObjectStore{}
	store.On("Put", mock.MatchedBy(func(name string) bool {
		return strings.HasPrefix(name, "reports/") && strings.HasSuffix(name, ".xlsx")
	}), mock.Anything, xlsxContentType).Return(nil)

	f := newFixture(t, Deps{Archive: store})
	crf := seedCompletedCRF(t, f)

	res, err := f.svc.Report.Archive(f.ctx, crf.ID, "")
	require.NoError(t, err)
	store.AssertExpectations(t)
	assert.Equal(t, int64(len(store.body)), res.Size)

	wb, err := excelize.OpenReader(bytes.NewReader(store.body))
	require.NoError(t, err)
	defer wb.Close()
	assert.Equal(t, []string{"CRF", "Results"}, wb.GetSheetList())
}

func TestReportArchiveWithoutStorage(t *testing.T) {
	f := newFixture(t, Deps{})
	crf := seedCompletedCRF(t, f)

	_, err := f.svc.Report.Archive(f.ctx, crf.ID, "")
	assert.ErrorIs(t, err, ErrStorageNotConfigured)
}

func mustRows(t *testing.T, wb *excelize.File, sheet string) [][]string {
	t.Helper()
	rows, err := wb.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func flatten(rows [][]string) []string {
	var out []string
	for _, row := range rows {
		out = append(out, row...)
	}
	return out
}
