package entity

import "time"

// User back office account
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	Username  string    `json:"username" gorm:"size:64;not null;uniqueIndex"`
	Password  string    `json:"-" gorm:"size:100;not null"` // bcrypt hash
	Name      string    `json:"name" gorm:"size:100"`
	Email     string    `json:"email" gorm:"size:200;uniqueIndex"`
	Role      string    `json:"role" gorm:"size:20;not null"`
	Active    bool      `json:"active" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "lims_users"
}

// Roles
const (
	RoleAdmin   = "ADMIN"
	RoleManager = "MANAGER"
	RoleChemist = "CHEMIST"
	RoleUser    = "USER"
)

// All lists every persisted entity in migration order
func All() []interface{} {
	return []interface{}{
		&User{},
		&Request{},
		&Quotation{},
		&CRF{},
		&Sample{},
		&Chemist{},
		&AuditLog{},
		&TestParameter{},
		&ReportTemplate{},
		&EnvironmentalSampling{},
	}
}
