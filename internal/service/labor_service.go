package service

import (
	"errors"

	"go-farm-ledger/internal/model"
	"go-farm-ledger/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateLaborerRequest struct {
	Name       string  `json:"name" validate:"required"`
	DaysWorked float64 `json:"days_worked" validate:"gte=0"`
	DailyWage  float64 `json:"daily_wage" validate:"gte=0"`
	Paid       float64 `json:"paid" validate:"gte=0"`
}

type LaborService interface {
	AddLaborer(ownerID uuid.UUID, req *CreateLaborerRequest) (*model.Laborer, error)
	ListLaborers(ownerID uuid.UUID) ([]model.Laborer, error)
	DeleteLaborer(ownerID, id uuid.UUID) error
	PendingWages(ownerID uuid.UUID) (float64, error)
}

type laborService struct {
	laborRepo repository.LaborRepository
}

func NewLaborService(laborRepo repository.LaborRepository) LaborService {
	return &laborService{laborRepo: laborRepo}
}

func (s *laborService) AddLaborer(ownerID uuid.UUID, req *CreateLaborerRequest) (*model.Laborer, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	total := req.DaysWorked * req.DailyWage
	laborer := &model.Laborer{
		OwnerID:    ownerID,
		Name:       req.Name,
		DaysWorked: req.DaysWorked,
		DailyWage:  req.DailyWage,
		Total:      total,
		Paid:       req.Paid,
		Pending:    total - req.Paid,
	}

	if err := s.laborRepo.Create(laborer); err != nil {
		return nil, storeError(err)
	}
	return laborer, nil
}

func (s *laborService) ListLaborers(ownerID uuid.UUID) ([]model.Laborer, error) {
	laborers, err := s.laborRepo.FindByOwner(ownerID)
	if err != nil {
		return nil, storeError(err)
	}
	return laborers, nil
}

func (s *laborService) DeleteLaborer(ownerID, id uuid.UUID) error {
	if err := s.laborRepo.Delete(ownerID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return storeError(err)
	}
	return nil
}

func (s *laborService) PendingWages(ownerID uuid.UUID) (float64, error) {
	total, err := s.laborRepo.PendingTotal(ownerID)
	if err != nil {
		return 0, storeError(err)
	}
	return total, nil
}
