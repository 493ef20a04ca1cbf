package service

import (
	"errors"

	"go-farm-ledger/internal/model"
	"go-farm-ledger/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateExpenseRequest struct {
	Category string  `json:"category" validate:"required"`
	ItemName string  `json:"item_name" validate:"required"`
	Quantity float64 `json:"quantity" validate:"gte=0"`
	Unit     string  `json:"unit"`
	Rate     float64 `json:"rate" validate:"gte=0"`
}

type ExpenseService interface {
	AddExpense(ownerID uuid.UUID, req *CreateExpenseRequest) (*model.Expense, error)
	ListExpenses(ownerID uuid.UUID) ([]model.Expense, error)
	DeleteExpense(ownerID, id uuid.UUID) error
	SummaryByCategory(ownerID uuid.UUID) ([]repository.CategoryTotal, error)
}

type expenseService struct {
	expenseRepo repository.ExpenseRepository
}

func NewExpenseService(expenseRepo repository.ExpenseRepository) ExpenseService {
	return &expenseService{expenseRepo: expenseRepo}
}

func (s *expenseService) AddExpense(ownerID uuid.UUID, req *CreateExpenseRequest) (*model.Expense, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	expense := &model.Expense{
		OwnerID:  ownerID,
		Category: req.Category,
		ItemName: req.ItemName,
		Quantity: req.Quantity,
		Unit:     req.Unit,
		Rate:     req.Rate,
		Total:    req.Quantity * req.Rate,
	}

	if err := s.expenseRepo.Create(expense); err != nil {
		return nil, storeError(err)
	}
	return expense, nil
}

func (s *expenseService) ListExpenses(ownerID uuid.UUID) ([]model.Expense, error) {
	expenses, err := s.expenseRepo.FindByOwner(ownerID)
	if err != nil {
		return nil, storeError(err)
	}
	return expenses, nil
}

func (s *expenseService) DeleteExpense(ownerID, id uuid.UUID) error {
	if err := s.expenseRepo.Delete(ownerID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return storeError(err)
	}
	return nil
}

func (s *expenseService) SummaryByCategory(ownerID uuid.UUID) ([]repository.CategoryTotal, error) {
	summary, err := s.expenseRepo.SumByCategory(ownerID)
	if err != nil {
		return nil, storeError(err)
	}
	return summary, nil
}
