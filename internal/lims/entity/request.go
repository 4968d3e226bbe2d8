package entity

import (
	"time"

	"gorm.io/datatypes"
)

// Request customer testing request
type Request struct {
	ID              string                      `json:"id" gorm:"primaryKey;size:32"`
	RequestCode     string                      `json:"request_code" gorm:"size:32;not null;uniqueIndex"` // REQ-0001
	Customer        string                      `json:"customer" gorm:"size:200;not null"`
	Contact         string                      `json:"contact" gorm:"size:100"`
	Email           string                      `json:"email" gorm:"size:200"`
	Address         string                      `json:"address" gorm:"size:500"`
	SampleType      string                      `json:"sample_type" gorm:"size:100"`
	Parameters      datatypes.JSONSlice[string] `json:"parameters" gorm:"type:jsonb"`
	NumberOfSamples int                         `json:"number_of_samples"`
	Priority        string                      `json:"priority" gorm:"size:20"` // Normal/Urgent/Rush
	Status          string                      `json:"status" gorm:"size:20;index"`
	QuotationID     *string                     `json:"quotation_id" gorm:"size:32"`
	CRFID           *string                     `json:"crf_id" gorm:"column:crf_id;size:32"`
	Notes           string                      `json:"notes" gorm:"type:text"`
	CreatedAt       time.Time                   `json:"created_at"`
	UpdatedAt       time.Time                   `json:"updated_at"`
}

func (Request) TableName() string {
	return "lims_requests"
}

// Request statuses
const (
	RequestStatusPending   = "pending"
	RequestStatusQuoted    = "quoted"
	RequestStatusApproved  = "approved"
	RequestStatusRejected  = "rejected"
	RequestStatusConverted = "converted"
)

// Priorities shared by requests and CRFs
const (
	PriorityNormal = "Normal"
	PriorityUrgent = "Urgent"
	PriorityRush   = "Rush"
)
