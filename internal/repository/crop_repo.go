package repository

import (
	"time"

	"go-farm-ledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CropRepository interface {
	CreatePlanting(planting *model.CropPlanting) error
	FindPlantings(ownerID uuid.UUID) ([]model.CropPlanting, error)
	FindPlantingByID(ownerID, id uuid.UUID) (*model.CropPlanting, error)
	SavePlanting(planting *model.CropPlanting) error
	DeletePlanting(ownerID, id uuid.UUID) error

	CreateTask(task *model.CropTask) error
	FindTasks(ownerID, plantingID uuid.UUID) ([]model.CropTask, error)
	FindTaskByID(ownerID, taskID uuid.UUID) (*model.CropTask, error)
	SaveTask(task *model.CropTask) error

	CountActivePlantings(ownerID uuid.UUID) (int64, error)
	CountUpcomingTasks(ownerID uuid.UUID, from time.Time) (int64, error)
}

type cropRepo struct {
	db *gorm.DB
}

func NewCropRepo(db *gorm.DB) CropRepository {
	return &cropRepo{db}
}

func (r *cropRepo) CreatePlanting(planting *model.CropPlanting) error {
	return r.db.Create(planting).Error
}

func (r *cropRepo) FindPlantings(ownerID uuid.UUID) ([]model.CropPlanting, error) {
	var plantings []model.CropPlanting
	err := r.db.Where("owner_id = ?", ownerID).Order("sown_date DESC").Find(&plantings).Error
	return plantings, err
}

func (r *cropRepo) FindPlantingByID(ownerID, id uuid.UUID) (*model.CropPlanting, error) {
	var planting model.CropPlanting
	err := r.db.First(&planting, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		return nil, err
	}
	return &planting, nil
}

func (r *cropRepo) SavePlanting(planting *model.CropPlanting) error {
	return r.db.Save(planting).Error
}

func (r *cropRepo) DeletePlanting(ownerID, id uuid.UUID) error {
	result := r.db.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&model.CropPlanting{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *cropRepo) CreateTask(task *model.CropTask) error {
	return r.db.Create(task).Error
}

// FindTasks joins through plantings so a task is only visible to the owner
// of its planting.
func (r *cropRepo) FindTasks(ownerID, plantingID uuid.UUID) ([]model.CropTask, error) {
	var tasks []model.CropTask
	err := r.db.
		Joins("JOIN crop_plantings ON crop_plantings.id = crop_tasks.planting_id").
		Where("crop_tasks.planting_id = ? AND crop_plantings.owner_id = ?", plantingID, ownerID).
		Order("crop_tasks.scheduled_date ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *cropRepo) FindTaskByID(ownerID, taskID uuid.UUID) (*model.CropTask, error) {
	var task model.CropTask
	err := r.db.
		Joins("JOIN crop_plantings ON crop_plantings.id = crop_tasks.planting_id").
		Where("crop_tasks.id = ? AND crop_plantings.owner_id = ?", taskID, ownerID).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *cropRepo) SaveTask(task *model.CropTask) error {
	return r.db.Save(task).Error
}

func (r *cropRepo) CountActivePlantings(ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.CropPlanting{}).
		Where("owner_id = ? AND status = ?", ownerID, model.PlantingStatusActive).
		Count(&count).Error
	return count, err
}

func (r *cropRepo) CountUpcomingTasks(ownerID uuid.UUID, from time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.CropTask{}).
		Joins("JOIN crop_plantings ON crop_plantings.id = crop_tasks.planting_id").
		Where("crop_plantings.owner_id = ? AND crop_tasks.completed_date IS NULL AND crop_tasks.scheduled_date >= ?", ownerID, from).
		Count(&count).Error
	return count, err
}
