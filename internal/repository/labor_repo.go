package repository

import (
	"go-farm-ledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LaborRepository interface {
	Create(laborer *model.Laborer) error
	FindByOwner(ownerID uuid.UUID) ([]model.Laborer, error)
	FindByOwnerOrderedByName(ownerID uuid.UUID) ([]model.Laborer, error)
	Delete(ownerID, id uuid.UUID) error
	PendingTotal(ownerID uuid.UUID) (float64, error)
}

type laborRepo struct {
	db *gorm.DB
}

func NewLaborRepo(db *gorm.DB) LaborRepository {
	return &laborRepo{db}
}

func (r *laborRepo) Create(laborer *model.Laborer) error {
	return r.db.Create(laborer).Error
}

func (r *laborRepo) FindByOwner(ownerID uuid.UUID) ([]model.Laborer, error) {
	var laborers []model.Laborer
	err := r.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&laborers).Error
	return laborers, err
}

func (r *laborRepo) FindByOwnerOrderedByName(ownerID uuid.UUID) ([]model.Laborer, error) {
	var laborers []model.Laborer
	err := r.db.Where("owner_id = ?", ownerID).Order("name ASC").Find(&laborers).Error
	return laborers, err
}

func (r *laborRepo) Delete(ownerID, id uuid.UUID) error {
	result := r.db.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&model.Laborer{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *laborRepo) PendingTotal(ownerID uuid.UUID) (float64, error) {
	var total float64
	err := r.db.Model(&model.Laborer{}).
		Where("owner_id = ?", ownerID).
		Select("COALESCE(SUM(pending), 0)").
		Scan(&total).Error
	return total, err
}
