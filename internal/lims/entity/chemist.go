package entity

import "time"

// Chemist laboratory analyst. Workload counters are maintained by callers.
type Chemist struct {
	ID                 string    `json:"id" gorm:"primaryKey;size:32"`
	Name               string    `json:"name" gorm:"size:100;not null;uniqueIndex"`
	Email              string    `json:"email" gorm:"size:200"`
	Specialization     string    `json:"specialization" gorm:"size:200"`
	ActiveTasks        int       `json:"active_tasks" gorm:"not null"`
	CompletedThisWeek  int       `json:"completed_this_week" gorm:"not null"`
	CompletedThisMonth int       `json:"completed_this_month" gorm:"not null"`
	Active             bool      `json:"active" gorm:"not null;index"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (Chemist) TableName() string {
	return "lims_chemists"
}
