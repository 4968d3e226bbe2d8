package entity

import (
	"time"

	"gorm.io/datatypes"
)

// CRF chain-of-record form, the authoritative testing order
type CRF struct {
	ID              string                      `json:"id" gorm:"primaryKey;size:32"`
	CRFCode         string                      `json:"crf_code" gorm:"column:crf_code;size:32;not null;uniqueIndex"` // CRF/26/7
	CRFType         string                      `json:"crf_type" gorm:"column:crf_type;size:4;not null"`              // CS/LS
	Customer        string                      `json:"customer" gorm:"size:200;not null;index"`
	Address         string                      `json:"address" gorm:"size:500"`
	Contact         string                      `json:"contact" gorm:"size:100"`
	Email           string                      `json:"email" gorm:"size:200"`
	SampleType      string                      `json:"sample_type" gorm:"size:100;index"`
	TestParameters  datatypes.JSONSlice[string] `json:"test_parameters" gorm:"type:jsonb"`
	NumberOfSamples int                         `json:"number_of_samples"`
	SamplingType    string                      `json:"sampling_type" gorm:"size:50"`
	ReceptionDate   time.Time                   `json:"reception_date"`
	ReceivedBy      string                      `json:"received_by" gorm:"size:100"`
	Signature       string                      `json:"signature" gorm:"type:text"` // data URL of the signature pad
	Priority        string                      `json:"priority" gorm:"size:20"`
	Status          string                      `json:"status" gorm:"size:20;index"`
	QuotationRef    string                      `json:"quotation_ref" gorm:"size:32"`
	SampleImages    datatypes.JSONSlice[string] `json:"sample_images" gorm:"type:jsonb"`
	Samples         []Sample                    `json:"samples,omitempty" gorm:"foreignKey:CRFID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time                   `json:"created_at"`
	UpdatedAt       time.Time                   `json:"updated_at"`
}

func (CRF) TableName() string {
	return "lims_crfs"
}

// CRF types, also the prefix of the sample codes they fan out into
const (
	CRFTypeCS = "CS"
	CRFTypeLS = "LS"
)

// CRF statuses
const (
	CRFStatusDraft      = "draft"
	CRFStatusReceived   = "received"
	CRFStatusInProgress = "in_progress"
	CRFStatusCompleted  = "completed"
)
