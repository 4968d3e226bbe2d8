package entity

import (
	"time"

	"gorm.io/datatypes"
)

// TestMap parameter name keyed strings stored as one JSON column
type TestMap = datatypes.JSONType[map[string]string]

// Sample a physical specimen under test
type Sample struct {
	ID               string     `json:"id" gorm:"primaryKey;size:32"`
	SampleCode       string     `json:"sample_code" gorm:"size:32;not null;uniqueIndex"` // CS/26/12
	CRFID            string     `json:"crf_id" gorm:"column:crf_id;size:32;not null;index"`
	Description      string     `json:"description" gorm:"size:500"`
	SubmissionDetail string     `json:"submission_detail" gorm:"type:text"`
	Status           string     `json:"status" gorm:"size:20;index"`
	AssignedTo       *string    `json:"assigned_to" gorm:"size:100;index"` // chemist name, not a foreign key
	TestValues       TestMap    `json:"test_values" gorm:"type:jsonb"`
	TestStatus       TestMap    `json:"test_status" gorm:"type:jsonb"`
	AssignedDate     *time.Time `json:"assigned_date"`
	CompletedDate    *time.Time `json:"completed_date"`
	Notes            string     `json:"notes" gorm:"type:text"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (Sample) TableName() string {
	return "lims_samples"
}

// Sample statuses
const (
	SampleStatusPending   = "pending"
	SampleStatusAssigned  = "assigned"
	SampleStatusTesting   = "testing"
	SampleStatusCompleted = "completed"
)

// Per parameter test statuses
const (
	TestStatusPending   = "pending"
	TestStatusCompleted = "completed"
)

// NewTestMap copies m into a fresh JSON column value
func NewTestMap(m map[string]string) TestMap {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return datatypes.NewJSONType(out)
}
