package model

import (
	"github.com/google/uuid"
)

// StockItem is one trackable inventory item. Balance is only ever written by
// the stock service inside a locked ledger transaction; it must stay >= 0 and
// equal to the opening balance plus the sum of all committed transaction deltas.
type StockItem struct {
	BaseModel
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Unit      string    `gorm:"type:varchar(20)" json:"unit"`
	Threshold float64   `gorm:"type:numeric;not null;default:0" json:"threshold" validate:"gte=0"`
	Balance   float64   `gorm:"type:numeric;not null;default:0" json:"balance"`

	// Derived, not stored: balance < threshold at read time
	BelowThreshold bool `gorm:"-" json:"below_threshold"`

	Transactions []StockTransaction `gorm:"foreignKey:ItemID" json:"transactions,omitempty"`
}

// IsBelowThreshold reports the low-stock condition for the current balance.
func (i *StockItem) IsBelowThreshold() bool {
	return i.Balance < i.Threshold
}
