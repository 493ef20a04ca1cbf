package repository

import (
	"go-farm-ledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryTotal is one row of the category-wise expense summary
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

type ExpenseRepository interface {
	Create(expense *model.Expense) error
	FindByOwner(ownerID uuid.UUID) ([]model.Expense, error)
	Delete(ownerID, id uuid.UUID) error
	SumByCategory(ownerID uuid.UUID) ([]CategoryTotal, error)
}

type expenseRepo struct {
	db *gorm.DB
}

func NewExpenseRepo(db *gorm.DB) ExpenseRepository {
	return &expenseRepo{db}
}

func (r *expenseRepo) Create(expense *model.Expense) error {
	return r.db.Create(expense).Error
}

func (r *expenseRepo) FindByOwner(ownerID uuid.UUID) ([]model.Expense, error) {
	var expenses []model.Expense
	err := r.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepo) Delete(ownerID, id uuid.UUID) error {
	result := r.db.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&model.Expense{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *expenseRepo) SumByCategory(ownerID uuid.UUID) ([]CategoryTotal, error) {
	var results []CategoryTotal
	err := r.db.Model(&model.Expense{}).
		Select("category, COALESCE(SUM(total), 0) as total").
		Where("owner_id = ?", ownerID).
		Group("category").
		Order("category ASC").
		Scan(&results).Error
	return results, err
}
