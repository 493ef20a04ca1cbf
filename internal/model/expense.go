package model

import "github.com/google/uuid"

// Expense is a single farm expenditure; Total is computed as Quantity * Rate
// at creation time and never recalculated.
type Expense struct {
	BaseModel
	OwnerID  uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Category string    `gorm:"type:varchar(100);not null" json:"category" validate:"required"`
	ItemName string    `gorm:"type:varchar(255);not null" json:"item_name" validate:"required"`
	Quantity float64   `gorm:"type:numeric;not null" json:"quantity" validate:"gte=0"`
	Unit     string    `gorm:"type:varchar(20)" json:"unit"`
	Rate     float64   `gorm:"type:numeric;not null" json:"rate" validate:"gte=0"`
	Total    float64   `gorm:"type:numeric;not null" json:"total"`
}
