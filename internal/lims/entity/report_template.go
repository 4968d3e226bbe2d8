package entity

import "time"

// ReportTemplate layout options for generated test reports
type ReportTemplate struct {
	ID           string `json:"id" gorm:"primaryKey;size:32"`
	Name         string `json:"name" gorm:"size:200;not null"`
	Description  string `json:"description" gorm:"type:text"`
	TemplateType string `json:"template_type" gorm:"size:50;not null;index"` // standard/custom/summary

	HeaderContent      string `json:"header_content" gorm:"type:text"`
	IncludeCompanyLogo bool   `json:"include_company_logo"`
	IncludeLabDetails  bool   `json:"include_lab_details"`

	IncludeCRFDetails    bool `json:"include_crf_details" gorm:"column:include_crf_details"`
	IncludeSampleDetails bool `json:"include_sample_details"`
	IncludeTestResults   bool `json:"include_test_results"`
	IncludeTestMethods   bool `json:"include_test_methods"`
	IncludeChemistInfo   bool `json:"include_chemist_info"`

	FooterContent        string `json:"footer_content" gorm:"type:text"`
	IncludeSignatures    bool   `json:"include_signatures"`
	IncludePageNumbers   bool   `json:"include_page_numbers"`
	IncludeGeneratedDate bool   `json:"include_generated_date"`

	PageSize    string `json:"page_size" gorm:"size:20"`   // A4/Letter/Legal
	Orientation string `json:"orientation" gorm:"size:20"` // portrait/landscape
	CustomCSS   string `json:"custom_css" gorm:"column:custom_css;type:text"`

	AdditionalNotes string `json:"additional_notes" gorm:"type:text"`
	Disclaimer      string `json:"disclaimer" gorm:"type:text"`

	CreatedBy string    `json:"created_by" gorm:"size:100"`
	IsDefault bool      `json:"is_default" gorm:"not null;index"`
	IsActive  bool      `json:"is_active" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ReportTemplate) TableName() string {
	return "lims_report_templates"
}

// DefaultReportTemplate the layout used when no template is marked default
func DefaultReportTemplate() ReportTemplate {
	return ReportTemplate{
		Name:                 "Standard",
		TemplateType:         "standard",
		IncludeCompanyLogo:   true,
		IncludeLabDetails:    true,
		IncludeCRFDetails:    true,
		IncludeSampleDetails: true,
		IncludeTestResults:   true,
		IncludeTestMethods:   true,
		IncludeChemistInfo:   true,
		IncludeSignatures:    true,
		IncludePageNumbers:   true,
		IncludeGeneratedDate: true,
		PageSize:             "A4",
		Orientation:          "portrait",
		IsActive:             true,
	}
}
