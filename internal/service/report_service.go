package service

import (
	"go-farm-ledger/internal/model"
	"go-farm-ledger/internal/repository"

	"github.com/google/uuid"
)

type ReportService interface {
	ExpensesByCategory(ownerID uuid.UUID) ([]repository.CategoryTotal, error)
	PendingLabor(ownerID uuid.UUID) ([]model.Laborer, error)
	CurrentStock(ownerID uuid.UUID) ([]model.StockItem, error)
}

type reportService struct {
	expenseRepo repository.ExpenseRepository
	laborRepo   repository.LaborRepository
	stockRepo   repository.StockRepository
}

func NewReportService(expenseRepo repository.ExpenseRepository, laborRepo repository.LaborRepository, stockRepo repository.StockRepository) ReportService {
	return &reportService{
		expenseRepo: expenseRepo,
		laborRepo:   laborRepo,
		stockRepo:   stockRepo,
	}
}

func (s *reportService) ExpensesByCategory(ownerID uuid.UUID) ([]repository.CategoryTotal, error) {
	summary, err := s.expenseRepo.SumByCategory(ownerID)
	if err != nil {
		return nil, storeError(err)
	}
	return summary, nil
}

func (s *reportService) PendingLabor(ownerID uuid.UUID) ([]model.Laborer, error) {
	laborers, err := s.laborRepo.FindByOwnerOrderedByName(ownerID)
	if err != nil {
		return nil, storeError(err)
	}
	return laborers, nil
}

func (s *reportService) CurrentStock(ownerID uuid.UUID) ([]model.StockItem, error) {
	items, err := s.stockRepo.FindItemsByOwner(ownerID)
	if err != nil {
		return nil, storeError(err)
	}
	for i := range items {
		items[i].BelowThreshold = items[i].IsBelowThreshold()
	}
	return items, nil
}
