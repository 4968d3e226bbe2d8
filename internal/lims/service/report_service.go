package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Harshana2/lims/internal/lims/entity"
	"github.com/Harshana2/lims/internal/lims/repository"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportService CRF result workbooks and their archive copies
type ReportService struct {
	repos     *repository.Repositories
	templates *ReportTemplateService
	archive   ObjectStore
	labName   string
	logger    *zap.Logger
}

func NewReportService(repos *repository.Repositories, templates *ReportTemplateService, archive ObjectStore, labName string, logger *zap.Logger) *ReportService {
	return &ReportService{
		repos:     repos,
		templates: templates,
		archive:   archive,
		labName:   labName,
		logger:    logger,
	}
}

// ArchiveResult where an archived workbook was written
type ArchiveResult struct {
	ObjectName string `json:"object_name"`
	Size       int64  `json:"size"`
}

// BuildWorkbook renders the CRF and its sample results. An empty templateID selects the default layout.
func (s *ReportService) BuildWorkbook(ctx context.Context, crfID, templateID string) (*excelize.File, string, error) {
	crf, err := s.repos.CRF.FindByID(ctx, crfID)
	if err != nil {
		return nil, "", notFound(err, "crf", crfID)
	}

	tmpl, err := s.template(ctx, templateID)
	if err != nil {
		return nil, "", err
	}

	catalog, err := s.repos.TestParameter.FindByNames(ctx, crf.TestParameters)
	if err != nil {
		return nil, "", fmt.Errorf("load test parameters: %w", err)
	}

	f := excelize.NewFile()
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	boldStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})

	sheet := "CRF"
	f.SetSheetName("Sheet1", sheet)
	row := s.writeSummary(f, sheet, crf, tmpl, boldStyle)

	if tmpl.IncludeSampleDetails || tmpl.IncludeTestResults {
		results := "Results"
		f.NewSheet(results)
		writeResults(f, results, crf, tmpl, catalog, headerStyle)
	}

	if tmpl.FooterContent != "" || tmpl.AdditionalNotes != "" || tmpl.Disclaimer != "" || tmpl.IncludeSignatures {
		writeFooter(f, sheet, row+1, crf, tmpl, boldStyle)
	}
	f.SetColWidth(sheet, "A", "A", 24)
	f.SetColWidth(sheet, "B", "B", 48)

	fileName := fmt.Sprintf("%s_%s.xlsx", strings.ReplaceAll(crf.CRFCode, "/", "-"), time.Now().Format("20060102"))
	return f, fileName, nil
}

func (s *ReportService) template(ctx context.Context, id string) (*entity.ReportTemplate, error) {
	if id == "" {
		return s.templates.GetDefault(ctx)
	}
	return s.templates.Get(ctx, id)
}

func (s *ReportService) writeSummary(f *excelize.File, sheet string, crf *entity.CRF, tmpl *entity.ReportTemplate, bold int) int {
	row := 1
	put := func(label string, value interface{}) {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), label)
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), bold)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), value)
		row++
	}

	if tmpl.IncludeLabDetails {
		put("Laboratory", s.labName)
	}
	if tmpl.HeaderContent != "" {
		put("", tmpl.HeaderContent)
	}
	if tmpl.IncludeGeneratedDate {
		put("Generated", time.Now().Format("2006-01-02 15:04"))
	}
	if tmpl.IncludeCRFDetails {
		row++
		put("CRF Code", crf.CRFCode)
		put("CRF Type", crf.CRFType)
		put("Customer", crf.Customer)
		put("Address", crf.Address)
		put("Contact", crf.Contact)
		put("Email", crf.Email)
		put("Sample Type", crf.SampleType)
		put("Sampling Type", crf.SamplingType)
		put("Number of Samples", crf.NumberOfSamples)
		put("Reception Date", crf.ReceptionDate.Format("2006-01-02"))
		put("Received By", crf.ReceivedBy)
		put("Priority", crf.Priority)
		put("Status", crf.Status)
		put("Test Parameters", strings.Join(crf.TestParameters, ", "))
	}
	return row
}

func writeResults(f *excelize.File, sheet string, crf *entity.CRF, tmpl *entity.ReportTemplate, catalog map[string]entity.TestParameter, headerStyle int) {
	headers := []string{"Sample Code"}
	if tmpl.IncludeSampleDetails {
		headers = append(headers, "Description", "Status")
	}
	if tmpl.IncludeChemistInfo {
		headers = append(headers, "Chemist", "Completed")
	}

	params := resultParameters(crf)
	if tmpl.IncludeTestResults {
		for _, p := range params {
			headers = append(headers, parameterHeader(p, catalog, tmpl.IncludeTestMethods))
		}
	}

	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
		f.SetColWidth(sheet, col, col, 18)
	}

	for r, sample := range crf.Samples {
		values := []interface{}{sample.SampleCode}
		if tmpl.IncludeSampleDetails {
			values = append(values, sample.Description, sample.Status)
		}
		if tmpl.IncludeChemistInfo {
			chemist, completed := "", ""
			if sample.AssignedTo != nil {
				chemist = *sample.AssignedTo
			}
			if sample.CompletedDate != nil {
				completed = sample.CompletedDate.Format("2006-01-02")
			}
			values = append(values, chemist, completed)
		}
		if tmpl.IncludeTestResults {
			results := sample.TestValues.Data()
			for _, p := range params {
				values = append(values, results[p])
			}
		}

		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(sheet, cell, v)
		}
	}
}

// resultParameters CRF parameters in order, followed by any extra ones recorded on samples
func resultParameters(crf *entity.CRF) []string {
	seen := make(map[string]bool, len(crf.TestParameters))
	params := make([]string, 0, len(crf.TestParameters))
	for _, p := range crf.TestParameters {
		if !seen[p] {
			seen[p] = true
			params = append(params, p)
		}
	}

	var extra []string
	for _, sample := range crf.Samples {
		for p := range sample.TestStatus.Data() {
			if !seen[p] {
				seen[p] = true
				extra = append(extra, p)
			}
		}
	}
	sort.Strings(extra)
	return append(params, extra...)
}

func parameterHeader(name string, catalog map[string]entity.TestParameter, withMethod bool) string {
	p, ok := catalog[name]
	if !ok {
		return name
	}
	header := name
	if p.Unit != "" {
		header += " (" + p.Unit + ")"
	}
	if withMethod && p.Method != "" {
		header += " [" + p.Method + "]"
	}
	return header
}

func writeFooter(f *excelize.File, sheet string, row int, crf *entity.CRF, tmpl *entity.ReportTemplate, bold int) {
	if tmpl.FooterContent != "" {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), tmpl.FooterContent)
		row++
	}
	if tmpl.AdditionalNotes != "" {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), tmpl.AdditionalNotes)
		row++
	}
	if tmpl.IncludeSignatures {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Received By")
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), bold)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), crf.Signature)
		row++
	}
	if tmpl.Disclaimer != "" {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), tmpl.Disclaimer)
	}
}

// Archive builds the workbook and uploads it under reports/<yyyy/mm/dd>/
func (s *ReportService) Archive(ctx context.Context, crfID, templateID string) (*ArchiveResult, error) {
	if s.archive == nil {
		return nil, ErrStorageNotConfigured
	}

	f, fileName, err := s.BuildWorkbook(ctx, crfID, templateID)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render workbook: %w", err)
	}

	objectName := fmt.Sprintf("reports/%s/%s", time.Now().Format("2006/01/02"), fileName)
	size := int64(buf.Len())
	if err := s.archive.Put(ctx, objectName, buf, size, xlsxContentType); err != nil {
		return nil, err
	}

	s.logger.Info("Report archived", zap.String("crf_id", crfID), zap.String("object", objectName))
	return &ArchiveResult{ObjectName: objectName, Size: size}, nil
}

// ContentType of workbooks produced by BuildWorkbook
func (s *ReportService) ContentType() string {
	return xlsxContentType
}
