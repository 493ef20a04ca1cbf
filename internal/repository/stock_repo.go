package repository

import (
	"context"

	"go-farm-ledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LedgerTx is the view of the store available inside one atomic ledger unit
// of work. ItemForUpdate is the only way to read a balance that is about to
// be mutated; it holds an exclusive row lock until the unit of work ends.
type LedgerTx interface {
	ItemForUpdate(ownerID, itemID uuid.UUID) (*model.StockItem, error)
	UpdateBalance(itemID uuid.UUID, balance float64) error
	CreateTransaction(stx *model.StockTransaction) error
}

type StockRepository interface {
	CreateItem(item *model.StockItem) error
	FindItemsByOwner(ownerID uuid.UUID) ([]model.StockItem, error)
	FindTransactions(ownerID, itemID uuid.UUID) ([]model.StockTransaction, error)

	// Atomic runs fn inside one store transaction. Everything fn does through
	// the LedgerTx commits together or not at all; cancelling ctx rolls back.
	Atomic(ctx context.Context, fn func(LedgerTx) error) error
}

type stockRepo struct {
	db *gorm.DB
}

func NewStockRepo(db *gorm.DB) StockRepository {
	return &stockRepo{db}
}

func (r *stockRepo) CreateItem(item *model.StockItem) error {
	return r.db.Create(item).Error
}

func (r *stockRepo) FindItemsByOwner(ownerID uuid.UUID) ([]model.StockItem, error) {
	var items []model.StockItem
	err := r.db.Where("owner_id = ?", ownerID).Order("name ASC").Find(&items).Error
	return items, err
}

func (r *stockRepo) FindTransactions(ownerID, itemID uuid.UUID) ([]model.StockTransaction, error) {
	var transactions []model.StockTransaction
	err := r.db.Where("owner_id = ? AND item_id = ?", ownerID, itemID).
		Order("seq DESC").
		Find(&transactions).Error
	return transactions, err
}

func (r *stockRepo) Atomic(ctx context.Context, fn func(LedgerTx) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ledgerTx{tx})
	})
}

type ledgerTx struct {
	tx *gorm.DB
}

// ItemForUpdate locks exactly one item row (SELECT ... FOR UPDATE). A missing
// item and another owner's item both come back as gorm.ErrRecordNotFound.
func (l *ledgerTx) ItemForUpdate(ownerID, itemID uuid.UUID) (*model.StockItem, error) {
	var item model.StockItem
	err := l.tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&item, "id = ? AND owner_id = ?", itemID, ownerID).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (l *ledgerTx) UpdateBalance(itemID uuid.UUID, balance float64) error {
	return l.tx.Model(&model.StockItem{}).
		Where("id = ?", itemID).
		Update("balance", balance).Error
}

func (l *ledgerTx) CreateTransaction(stx *model.StockTransaction) error {
	return l.tx.Create(stx).Error
}
