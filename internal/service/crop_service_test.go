package service

import (
	"testing"
	"time"

	"go-farm-ledger/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeCropRepo struct {
	plantings map[uuid.UUID]*model.CropPlanting
	tasks     map[uuid.UUID]*model.CropTask
}

func newFakeCropRepo() *fakeCropRepo {
	return &fakeCropRepo{
		plantings: make(map[uuid.UUID]*model.CropPlanting),
		tasks:     make(map[uuid.UUID]*model.CropTask),
	}
}

func (f *fakeCropRepo) CreatePlanting(planting *model.CropPlanting) error {
	planting.ID = uuid.New()
	f.plantings[planting.ID] = planting
	return nil
}

func (f *fakeCropRepo) FindPlantings(ownerID uuid.UUID) ([]model.CropPlanting, error) {
	var result []model.CropPlanting
	for _, planting := range f.plantings {
		if planting.OwnerID == ownerID {
			result = append(result, *planting)
		}
	}
	return result, nil
}

func (f *fakeCropRepo) FindPlantingByID(ownerID, id uuid.UUID) (*model.CropPlanting, error) {
	planting, ok := f.plantings[id]
	if !ok || planting.OwnerID != ownerID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *planting
	return &copied, nil
}

func (f *fakeCropRepo) SavePlanting(planting *model.CropPlanting) error {
	f.plantings[planting.ID] = planting
	return nil
}

func (f *fakeCropRepo) DeletePlanting(ownerID, id uuid.UUID) error {
	planting, ok := f.plantings[id]
	if !ok || planting.OwnerID != ownerID {
		return gorm.ErrRecordNotFound
	}
	delete(f.plantings, id)
	return nil
}

func (f *fakeCropRepo) CreateTask(task *model.CropTask) error {
	task.ID = uuid.New()
	f.tasks[task.ID] = task
	return nil
}

func (f *fakeCropRepo) FindTasks(ownerID, plantingID uuid.UUID) ([]model.CropTask, error) {
	var result []model.CropTask
	for _, task := range f.tasks {
		planting, ok := f.plantings[task.PlantingID]
		if ok && planting.OwnerID == ownerID && task.PlantingID == plantingID {
			result = append(result, *task)
		}
	}
	return result, nil
}

func (f *fakeCropRepo) FindTaskByID(ownerID, taskID uuid.UUID) (*model.CropTask, error) {
	task, ok := f.tasks[taskID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	planting, ok := f.plantings[task.PlantingID]
	if !ok || planting.OwnerID != ownerID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *task
	return &copied, nil
}

func (f *fakeCropRepo) SaveTask(task *model.CropTask) error {
	f.tasks[task.ID] = task
	return nil
}

func (f *fakeCropRepo) CountActivePlantings(ownerID uuid.UUID) (int64, error) {
	var count int64
	for _, planting := range f.plantings {
		if planting.OwnerID == ownerID && planting.Status == model.PlantingStatusActive {
			count++
		}
	}
	return count, nil
}

func (f *fakeCropRepo) CountUpcomingTasks(ownerID uuid.UUID, from time.Time) (int64, error) {
	var count int64
	for _, task := range f.tasks {
		planting, ok := f.plantings[task.PlantingID]
		if ok && planting.OwnerID == ownerID && task.CompletedDate == nil && !task.ScheduledDate.Before(from) {
			count++
		}
	}
	return count, nil
}

func TestAddPlanting_Defaults(t *testing.T) {
	svc := NewCropService(newFakeCropRepo())

	planting, err := svc.AddPlanting(uuid.New(), &CreatePlantingRequest{
		CropName: "Wheat",
		SownDate: "2026-06-15",
	})

	require.NoError(t, err)
	assert.Equal(t, float64(1), planting.AreaAcres)
	assert.Equal(t, 120, planting.ExpectedDurationDays)
	assert.Equal(t, model.PlantingStatusActive, planting.Status)
}

func TestAddPlanting_BadDate(t *testing.T) {
	svc := NewCropService(newFakeCropRepo())

	_, err := svc.AddPlanting(uuid.New(), &CreatePlantingRequest{
		CropName: "Wheat",
		SownDate: "15/06/2026",
	})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestUpdatePlanting_PatchesOnlyProvidedFields(t *testing.T) {
	repo := newFakeCropRepo()
	svc := NewCropService(repo)
	owner := uuid.New()

	planting, err := svc.AddPlanting(owner, &CreatePlantingRequest{
		CropName: "Wheat",
		Variety:  "HD-2967",
		SownDate: "2026-06-15",
	})
	require.NoError(t, err)

	status := model.PlantingStatusHarvested
	updated, err := svc.UpdatePlanting(owner, planting.ID, &UpdatePlantingRequest{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, model.PlantingStatusHarvested, updated.Status)
	assert.Equal(t, "Wheat", updated.CropName)
	assert.Equal(t, "HD-2967", updated.Variety)
}

func TestUpdatePlanting_OtherOwner(t *testing.T) {
	repo := newFakeCropRepo()
	svc := NewCropService(repo)

	planting, err := svc.AddPlanting(uuid.New(), &CreatePlantingRequest{
		CropName: "Wheat",
		SownDate: "2026-06-15",
	})
	require.NoError(t, err)

	name := "Maize"
	_, err = svc.UpdatePlanting(uuid.New(), planting.ID, &UpdatePlantingRequest{CropName: &name})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTaskLifecycleAndSummary(t *testing.T) {
	repo := newFakeCropRepo()
	svc := NewCropService(repo)
	owner := uuid.New()

	planting, err := svc.AddPlanting(owner, &CreatePlantingRequest{
		CropName: "Wheat",
		SownDate: "2026-06-15",
	})
	require.NoError(t, err)

	future := time.Now().AddDate(0, 0, 10).Format("2006-01-02")
	task, err := svc.AddTask(owner, planting.ID, &CreateTaskRequest{
		TaskType:      "irrigation",
		ScheduledDate: future,
	})
	require.NoError(t, err)

	summary, err := svc.Summary(owner)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.ActiveCrops)
	assert.Equal(t, int64(1), summary.UpcomingTasks)

	done, err := svc.CompleteTask(owner, task.ID, "")
	require.NoError(t, err)
	require.NotNil(t, done.CompletedDate)

	summary, err = svc.Summary(owner)
	require.NoError(t, err)
	assert.Equal(t, int64(0), summary.UpcomingTasks)
}

func TestAddTask_PlantingMustExist(t *testing.T) {
	svc := NewCropService(newFakeCropRepo())

	_, err := svc.AddTask(uuid.New(), uuid.New(), &CreateTaskRequest{
		TaskType:      "irrigation",
		ScheduledDate: "2026-07-01",
	})
	require.ErrorIs(t, err, ErrNotFound)
}
