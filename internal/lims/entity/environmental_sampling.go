package entity

import (
	"time"

	"gorm.io/datatypes"
)

// EnvironmentalSampling sampling point map recorded for a CRF
type EnvironmentalSampling struct {
	ID                 string         `json:"id" gorm:"primaryKey;size:32"`
	CRFID              string         `json:"crf_id" gorm:"column:crf_id;size:32;not null;uniqueIndex"`
	MapType            string         `json:"map_type" gorm:"size:50;index"` // Floor Plan/Site Map
	SamplingPointsData datatypes.JSON `json:"sampling_points_data" gorm:"type:jsonb"`
	MapImage           string         `json:"map_image" gorm:"type:text"` // base64
	SubmittedBy        string         `json:"submitted_by" gorm:"size:100;index"`
	SubmittedAt        time.Time      `json:"submitted_at"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

func (EnvironmentalSampling) TableName() string {
	return "lims_environmental_samplings"
}
