package model

import "github.com/google/uuid"

type TransactionDirection string

const (
	DirectionIn  TransactionDirection = "in"
	DirectionOut TransactionDirection = "out"
)

// StockTransaction is one append-only ledger entry. Entries are never updated
// or deleted; Seq records commit order per the backing sequence.
type StockTransaction struct {
	BaseModel
	Seq       int64                `gorm:"autoIncrement;uniqueIndex" json:"seq"`
	OwnerID   uuid.UUID            `gorm:"type:uuid;not null;index" json:"owner_id"`
	ItemID    uuid.UUID            `gorm:"type:uuid;not null;index" json:"item_id"`
	Direction TransactionDirection `gorm:"type:varchar(5);not null" json:"direction" validate:"required,oneof=in out"`
	Quantity  float64              `gorm:"type:numeric;not null" json:"quantity" validate:"required,gt=0"`
	Note      string               `json:"note"`
}

// Delta folds the entry into a signed balance change.
func (t *StockTransaction) Delta() float64 {
	if t.Direction == DirectionOut {
		return -t.Quantity
	}
	return t.Quantity
}
