package service

import (
	"context"
	"errors"

	"go-farm-ledger/internal/model"
	"go-farm-ledger/internal/repository"
	"go-farm-ledger/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RegisterItemRequest struct {
	Name           string  `json:"name" validate:"required"`
	Unit           string  `json:"unit"`
	Threshold      float64 `json:"threshold" validate:"gte=0"`
	OpeningBalance float64 `json:"opening_qty" validate:"gte=0"`
}

type ApplyTransactionRequest struct {
	ItemID    uuid.UUID                  `json:"item_id" validate:"uuid_required"`
	Direction model.TransactionDirection `json:"direction" validate:"required,oneof=in out"`
	Quantity  float64                    `json:"quantity" validate:"required,gt=0"`
	Note      string                     `json:"note"`
}

type ApplyTransactionResult struct {
	Item        *model.StockItem        `json:"item"`
	Transaction *model.StockTransaction `json:"transaction"`
}

type StockService interface {
	RegisterItem(ownerID uuid.UUID, req *RegisterItemRequest) (*model.StockItem, error)
	ListItems(ownerID uuid.UUID) ([]model.StockItem, error)
	ApplyTransaction(ctx context.Context, ownerID uuid.UUID, req *ApplyTransactionRequest) (*ApplyTransactionResult, error)
	ListTransactions(ownerID, itemID uuid.UUID) ([]model.StockTransaction, error)
}

type stockService struct {
	stockRepo repository.StockRepository
	wsHub     *ws.Hub
}

// NewStockService wires the ledger engine. hub may be nil when no push
// channel is attached.
func NewStockService(stockRepo repository.StockRepository, hub *ws.Hub) StockService {
	return &stockService{
		stockRepo: stockRepo,
		wsHub:     hub,
	}
}

func (s *stockService) RegisterItem(ownerID uuid.UUID, req *RegisterItemRequest) (*model.StockItem, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	item := &model.StockItem{
		OwnerID:   ownerID,
		Name:      req.Name,
		Unit:      req.Unit,
		Threshold: req.Threshold,
		Balance:   req.OpeningBalance,
	}

	if err := s.stockRepo.CreateItem(item); err != nil {
		return nil, storeError(err)
	}

	item.BelowThreshold = item.IsBelowThreshold()
	return item, nil
}

func (s *stockService) ListItems(ownerID uuid.UUID) ([]model.StockItem, error) {
	items, err := s.stockRepo.FindItemsByOwner(ownerID)
	if err != nil {
		return nil, storeError(err)
	}
	for i := range items {
		items[i].BelowThreshold = items[i].IsBelowThreshold()
	}
	return items, nil
}

// ApplyTransaction is the only code path that changes a stock balance. It runs
// as one atomic unit of work: lock the item row, compute the new balance,
// reject anything that would go negative, then append the ledger entry and
// persist the balance together. Concurrent calls on the same item serialize on
// the row lock; calls on different items never block each other.
func (s *stockService) ApplyTransaction(ctx context.Context, ownerID uuid.UUID, req *ApplyTransactionRequest) (*ApplyTransactionResult, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	var result *ApplyTransactionResult

	err := s.stockRepo.Atomic(ctx, func(ltx repository.LedgerTx) error {
		item, err := ltx.ItemForUpdate(ownerID, req.ItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return storeError(err)
		}

		delta := req.Quantity
		if req.Direction == model.DirectionOut {
			delta = -req.Quantity
		}

		newBalance := item.Balance + delta
		if newBalance < 0 {
			return ErrInsufficientStock
		}

		stx := &model.StockTransaction{
			OwnerID:   ownerID,
			ItemID:    item.ID,
			Direction: req.Direction,
			Quantity:  req.Quantity,
			Note:      req.Note,
		}
		if err := ltx.CreateTransaction(stx); err != nil {
			return storeError(err)
		}
		if err := ltx.UpdateBalance(item.ID, newBalance); err != nil {
			return storeError(err)
		}

		item.Balance = newBalance
		item.BelowThreshold = item.IsBelowThreshold()
		result = &ApplyTransactionResult{Item: item, Transaction: stx}
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrItemNotFound),
			errors.Is(err, ErrInsufficientStock),
			errors.Is(err, ErrStoreUnavailable):
			return nil, err
		default:
			// Commit failure or context cancellation: fully rolled back
			return nil, storeError(err)
		}
	}

	s.broadcastStockUpdate(result)
	return result, nil
}

func (s *stockService) ListTransactions(ownerID, itemID uuid.UUID) ([]model.StockTransaction, error) {
	transactions, err := s.stockRepo.FindTransactions(ownerID, itemID)
	if err != nil {
		return nil, storeError(err)
	}
	return transactions, nil
}

type stockEvent struct {
	Type        string                  `json:"type"`
	Item        *model.StockItem        `json:"item"`
	Transaction *model.StockTransaction `json:"transaction,omitempty"`
}

// broadcastStockUpdate pushes the committed transaction to connected clients,
// plus a low_stock alert when the balance dipped under the threshold.
func (s *stockService) broadcastStockUpdate(result *ApplyTransactionResult) {
	if s.wsHub == nil {
		return
	}
	go func() {
		s.wsHub.Emit(stockEvent{
			Type:        "stock_update",
			Item:        result.Item,
			Transaction: result.Transaction,
		})
		if result.Item.BelowThreshold {
			s.wsHub.Emit(stockEvent{
				Type: "low_stock",
				Item: result.Item,
			})
		}
	}()
}
