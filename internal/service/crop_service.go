package service

import (
	"errors"
	"time"

	"go-farm-ledger/internal/model"
	"go-farm-ledger/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type CreatePlantingRequest struct {
	CropName             string  `json:"crop_name" validate:"required"`
	Variety              string  `json:"variety"`
	SownDate             string  `json:"sown_date" validate:"required"`
	AreaAcres            float64 `json:"area_acres" validate:"gte=0"`
	ExpectedDurationDays int     `json:"expected_duration_days" validate:"gte=0"`
	Notes                string  `json:"notes"`
}

// UpdatePlantingRequest patches a planting; nil fields keep their value.
type UpdatePlantingRequest struct {
	CropName             *string  `json:"crop_name"`
	Variety              *string  `json:"variety"`
	SownDate             *string  `json:"sown_date"`
	AreaAcres            *float64 `json:"area_acres"`
	ExpectedDurationDays *int     `json:"expected_duration_days"`
	Status               *string  `json:"status"`
	Notes                *string  `json:"notes"`
}

type CreateTaskRequest struct {
	TaskType      string `json:"task_type" validate:"required"`
	ScheduledDate string `json:"scheduled_date" validate:"required"`
	Notes         string `json:"notes"`
}

type CropSummary struct {
	ActiveCrops   int64 `json:"active_crops"`
	UpcomingTasks int64 `json:"upcoming_tasks"`
}

type CropService interface {
	AddPlanting(ownerID uuid.UUID, req *CreatePlantingRequest) (*model.CropPlanting, error)
	ListPlantings(ownerID uuid.UUID) ([]model.CropPlanting, error)
	UpdatePlanting(ownerID, id uuid.UUID, req *UpdatePlantingRequest) (*model.CropPlanting, error)
	DeletePlanting(ownerID, id uuid.UUID) error
	AddTask(ownerID, plantingID uuid.UUID, req *CreateTaskRequest) (*model.CropTask, error)
	ListTasks(ownerID, plantingID uuid.UUID) ([]model.CropTask, error)
	CompleteTask(ownerID, taskID uuid.UUID, completedDate string) (*model.CropTask, error)
	Summary(ownerID uuid.UUID) (*CropSummary, error)
}

type cropService struct {
	cropRepo repository.CropRepository
}

func NewCropService(cropRepo repository.CropRepository) CropService {
	return &cropService{cropRepo: cropRepo}
}

func parseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, &ValidationError{Field: "sown_date", Rule: "date"}
	}
	return parsed, nil
}

func (s *cropService) AddPlanting(ownerID uuid.UUID, req *CreatePlantingRequest) (*model.CropPlanting, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	sownDate, err := parseDate(req.SownDate)
	if err != nil {
		return nil, err
	}

	planting := &model.CropPlanting{
		OwnerID:              ownerID,
		CropName:             req.CropName,
		Variety:              req.Variety,
		SownDate:             sownDate,
		AreaAcres:            req.AreaAcres,
		ExpectedDurationDays: req.ExpectedDurationDays,
		Status:               model.PlantingStatusActive,
		Notes:                req.Notes,
	}
	if planting.AreaAcres == 0 {
		planting.AreaAcres = 1
	}
	if planting.ExpectedDurationDays == 0 {
		planting.ExpectedDurationDays = 120
	}

	if err := s.cropRepo.CreatePlanting(planting); err != nil {
		return nil, storeError(err)
	}
	return planting, nil
}

func (s *cropService) ListPlantings(ownerID uuid.UUID) ([]model.CropPlanting, error) {
	plantings, err := s.cropRepo.FindPlantings(ownerID)
	if err != nil {
		return nil, storeError(err)
	}
	return plantings, nil
}

func (s *cropService) UpdatePlanting(ownerID, id uuid.UUID, req *UpdatePlantingRequest) (*model.CropPlanting, error) {
	planting, err := s.cropRepo.FindPlantingByID(ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeError(err)
	}

	if req.CropName != nil {
		planting.CropName = *req.CropName
	}
	if req.Variety != nil {
		planting.Variety = *req.Variety
	}
	if req.SownDate != nil {
		sownDate, err := parseDate(*req.SownDate)
		if err != nil {
			return nil, err
		}
		planting.SownDate = sownDate
	}
	if req.AreaAcres != nil {
		planting.AreaAcres = *req.AreaAcres
	}
	if req.ExpectedDurationDays != nil {
		planting.ExpectedDurationDays = *req.ExpectedDurationDays
	}
	if req.Status != nil {
		planting.Status = *req.Status
	}
	if req.Notes != nil {
		planting.Notes = *req.Notes
	}

	if err := s.cropRepo.SavePlanting(planting); err != nil {
		return nil, storeError(err)
	}
	return planting, nil
}

func (s *cropService) DeletePlanting(ownerID, id uuid.UUID) error {
	if err := s.cropRepo.DeletePlanting(ownerID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return storeError(err)
	}
	return nil
}

func (s *cropService) AddTask(ownerID, plantingID uuid.UUID, req *CreateTaskRequest) (*model.CropTask, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	scheduled, err := time.Parse(dateLayout, req.ScheduledDate)
	if err != nil {
		return nil, &ValidationError{Field: "scheduled_date", Rule: "date"}
	}

	// Task must hang off a planting the caller owns
	if _, err := s.cropRepo.FindPlantingByID(ownerID, plantingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeError(err)
	}

	task := &model.CropTask{
		PlantingID:    plantingID,
		TaskType:      req.TaskType,
		ScheduledDate: scheduled,
		Notes:         req.Notes,
	}
	if err := s.cropRepo.CreateTask(task); err != nil {
		return nil, storeError(err)
	}
	return task, nil
}

func (s *cropService) ListTasks(ownerID, plantingID uuid.UUID) ([]model.CropTask, error) {
	tasks, err := s.cropRepo.FindTasks(ownerID, plantingID)
	if err != nil {
		return nil, storeError(err)
	}
	return tasks, nil
}

func (s *cropService) CompleteTask(ownerID, taskID uuid.UUID, completedDate string) (*model.CropTask, error) {
	task, err := s.cropRepo.FindTaskByID(ownerID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeError(err)
	}

	completed := time.Now().Truncate(24 * time.Hour)
	if completedDate != "" {
		completed, err = time.Parse(dateLayout, completedDate)
		if err != nil {
			return nil, &ValidationError{Field: "completed_date", Rule: "date"}
		}
	}
	task.CompletedDate = &completed

	if err := s.cropRepo.SaveTask(task); err != nil {
		return nil, storeError(err)
	}
	return task, nil
}

func (s *cropService) Summary(ownerID uuid.UUID) (*CropSummary, error) {
	active, err := s.cropRepo.CountActivePlantings(ownerID)
	if err != nil {
		return nil, storeError(err)
	}

	today := time.Now().Truncate(24 * time.Hour)
	upcoming, err := s.cropRepo.CountUpcomingTasks(ownerID, today)
	if err != nil {
		return nil, storeError(err)
	}

	return &CropSummary{ActiveCrops: active, UpcomingTasks: upcoming}, nil
}
