package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Quotation priced offer for a request
type Quotation struct {
	ID            string                             `json:"id" gorm:"primaryKey;size:32"`
	QuotationCode string                             `json:"quotation_code" gorm:"size:32;not null;uniqueIndex"` // QTN-0001
	RequestID     string                             `json:"request_id" gorm:"size:32;not null;index"`
	Customer      string                             `json:"customer" gorm:"size:200;not null"`
	Items         datatypes.JSONSlice[QuotationItem] `json:"items" gorm:"type:jsonb"`
	Subtotal      decimal.Decimal                    `json:"subtotal" gorm:"type:decimal(12,2);not null"`
	Tax           decimal.Decimal                    `json:"tax" gorm:"type:decimal(12,2)"`
	Total         decimal.Decimal                    `json:"total" gorm:"type:decimal(12,2);not null"`
	Status        string                             `json:"status" gorm:"size:20;index"` // draft/sent/approved/rejected
	SentDate      *time.Time                         `json:"sent_date"`
	ApprovedDate  *time.Time                         `json:"approved_date"`
	Notes         string                             `json:"notes" gorm:"type:text"`
	PreparedBy    string                             `json:"prepared_by" gorm:"size:100"`
	ApprovedBy    string                             `json:"approved_by" gorm:"size:100"`
	CreatedAt     time.Time                          `json:"created_at"`
	UpdatedAt     time.Time                          `json:"updated_at"`
}

func (Quotation) TableName() string {
	return "lims_quotations"
}

// QuotationItem one priced line of a quotation
type QuotationItem struct {
	Parameter  string          `json:"parameter"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// Quotation statuses
const (
	QuotationStatusDraft    = "draft"
	QuotationStatusSent     = "sent"
	QuotationStatusApproved = "approved"
	QuotationStatusRejected = "rejected"
)
