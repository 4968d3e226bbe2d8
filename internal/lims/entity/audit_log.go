package entity

import "time"

// AuditLog append-only record of a user action
type AuditLog struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	Username  string    `json:"username" gorm:"size:100;not null;index"`
	Action    string    `json:"action" gorm:"size:50;not null;index"` // CREATE/UPDATE/DELETE/LOGIN...
	Module    string    `json:"module" gorm:"size:50;not null;index"` // request/quotation/crf/sample...
	Details   string    `json:"details" gorm:"type:text"`
	IPAddress string    `json:"ip_address" gorm:"column:ip_address;size:64"`
	Status    string    `json:"status" gorm:"size:20;index"` // Success/Failed
	Timestamp time.Time `json:"timestamp" gorm:"not null;index"`
}

func (AuditLog) TableName() string {
	return "lims_audit_logs"
}

// Audit outcomes
const (
	AuditStatusSuccess = "Success"
	AuditStatusFailed  = "Failed"
)

// Audit actions
const (
	AuditActionCreate = "CREATE"
	AuditActionUpdate = "UPDATE"
	AuditActionDelete = "DELETE"
	AuditActionLogin  = "LOGIN"
	AuditActionExport = "EXPORT"
)
