package model

import "github.com/google/uuid"

// Laborer is one wage entry: Total = DaysWorked * DailyWage and
// Pending = Total - Paid, both computed server-side at creation.
type Laborer struct {
	BaseModel
	OwnerID    uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	DaysWorked float64   `gorm:"type:numeric;not null" json:"days_worked" validate:"gte=0"`
	DailyWage  float64   `gorm:"type:numeric;not null" json:"daily_wage" validate:"gte=0"`
	Total      float64   `gorm:"type:numeric;not null" json:"total"`
	Paid       float64   `gorm:"type:numeric;not null;default:0" json:"paid" validate:"gte=0"`
	Pending    float64   `gorm:"type:numeric;not null;default:0" json:"pending"`
}
