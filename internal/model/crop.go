package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	PlantingStatusActive    = "active"
	PlantingStatusHarvested = "harvested"
)

// CropPlanting records one sowing of a crop on some area of the farm.
type CropPlanting struct {
	BaseModel
	OwnerID              uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	CropName             string    `gorm:"type:varchar(255);not null" json:"crop_name" validate:"required"`
	Variety              string    `gorm:"type:varchar(255)" json:"variety"`
	SownDate             time.Time `gorm:"type:date;not null" json:"sown_date"`
	AreaAcres            float64   `gorm:"type:numeric;not null;default:1" json:"area_acres"`
	ExpectedDurationDays int       `gorm:"not null;default:120" json:"expected_duration_days"`
	Status               string    `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	Notes                string    `json:"notes"`

	Tasks []CropTask `gorm:"foreignKey:PlantingID" json:"tasks,omitempty"`
}

// CropTask is a scheduled field activity for a planting (irrigation,
// fertilizer, harvest and so on). Completed once CompletedDate is set.
type CropTask struct {
	BaseModel
	PlantingID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"planting_id"`
	TaskType      string     `gorm:"type:varchar(100);not null" json:"task_type" validate:"required"`
	ScheduledDate time.Time  `gorm:"type:date;not null" json:"scheduled_date"`
	CompletedDate *time.Time `gorm:"type:date" json:"completed_date,omitempty"`
	Notes         string     `json:"notes"`
}
