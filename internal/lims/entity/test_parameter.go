package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// TestParameter catalog entry for a measurable property such as pH
type TestParameter struct {
	ID                    string                      `json:"id" gorm:"primaryKey;size:32"`
	Name                  string                      `json:"name" gorm:"size:100;not null;uniqueIndex"`
	Unit                  string                      `json:"unit" gorm:"size:50"`
	Method                string                      `json:"method" gorm:"size:200"`
	DefaultPrice          decimal.Decimal             `json:"default_price" gorm:"type:decimal(12,2)"`
	ApplicableSampleTypes datatypes.JSONSlice[string] `json:"applicable_sample_types" gorm:"type:jsonb"`
	Category              string                      `json:"category" gorm:"size:50;index"` // Physical/Chemical/Microbiological
	Active                bool                        `json:"active" gorm:"not null;index"`
	Description           string                      `json:"description" gorm:"type:text"`
	Accreditation         string                      `json:"accreditation" gorm:"size:100"`
	CreatedAt             time.Time                   `json:"created_at"`
	UpdatedAt             time.Time                   `json:"updated_at"`
}

func (TestParameter) TableName() string {
	return "lims_test_parameters"
}

// AppliesTo reports whether the parameter is listed for sampleType
func (p *TestParameter) AppliesTo(sampleType string) bool {
	for _, t := range p.ApplicableSampleTypes {
		if t == sampleType {
			return true
		}
	}
	return false
}
