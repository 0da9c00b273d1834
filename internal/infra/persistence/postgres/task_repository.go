package postgres

import (
	"context"
	"time"

	"focusflow/internal/domain/entity"
	domainerrors "focusflow/internal/domain/errors"
	"focusflow/internal/domain/repository"
	"focusflow/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// taskRepository implements the domain.TaskRepository interface.
type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository is the constructor for taskRepository.
func NewTaskRepository(db *gorm.DB) repository.TaskRepository {
	return &taskRepository{db: db}
}

// FindByID retrieves a task by its unique ID, with its category preloaded.
func (repo *taskRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Task, error) {
	var taskM model.TaskModel
	if err := repo.db.WithContext(ctx).Preload("Category").First(&taskM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTaskNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toTaskDomain(&taskM), nil
}

// ListByOwner retrieves the account's tasks, most recently created first.
func (repo *taskRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Task, error) {
	var taskModels []*model.TaskModel
	if err := repo.db.WithContext(ctx).
		Preload("Category").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&taskModels).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	tasks := make([]*entity.Task, 0, len(taskModels))
	for _, taskM := range taskModels {
		tasks = append(tasks, toTaskDomain(taskM))
	}

	return tasks, nil
}

// Create persists a new task.
func (repo *taskRepository) Create(ctx context.Context, task *entity.Task) error {
	taskM := fromTaskDomain(task)

	if err := repo.db.WithContext(ctx).Create(taskM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrCategoryNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create task")
	}

	task.ID = taskM.ID
	task.CreatedAt = taskM.CreatedAt
	task.UpdatedAt = taskM.UpdatedAt

	return nil
}

// Update modifies an existing task. All mutable columns are written, so
// clearing the category or due date persists the NULL.
func (repo *taskRepository) Update(ctx context.Context, task *entity.Task) error {
	taskM := fromTaskDomain(task)

	result := repo.db.WithContext(ctx).Model(&model.TaskModel{}).
		Where("id = ?", taskM.ID).
		Updates(map[string]any{
			"content":         taskM.Content,
			"category_id":     taskM.CategoryID,
			"due_date":        taskM.DueDate,
			"reminder_active": taskM.ReminderActive,
			"reminder_lead":   taskM.ReminderLead,
			"completed":       taskM.Completed,
		})
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return repository.ErrCategoryNotFound
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update task")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTaskNotFound
	}

	return nil
}

// Delete removes a task permanently.
func (repo *taskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.TaskModel{}, "id = ?", id)
	if result.Error != nil {
		return errors.WithStack(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrTaskNotFound
	}

	return nil
}

// ListDueReminders retrieves incomplete tasks whose reminder is active and
// whose due date has arrived.
func (repo *taskRepository) ListDueReminders(ctx context.Context, now time.Time) ([]*entity.Task, error) {
	var taskModels []*model.TaskModel
	if err := repo.db.WithContext(ctx).
		Preload("Category").
		Where("reminder_active = ? AND completed = ? AND due_date IS NOT NULL AND due_date <= ?", true, false, now).
		Order("due_date ASC").
		Find(&taskModels).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	tasks := make([]*entity.Task, 0, len(taskModels))
	for _, taskM := range taskModels {
		tasks = append(tasks, toTaskDomain(taskM))
	}

	return tasks, nil
}

// --- Mapper Functions ---

func toTaskDomain(data *model.TaskModel) *entity.Task {
	if data == nil {
		return nil
	}

	task := &entity.Task{
		ID:             data.ID,
		OwnerID:        data.OwnerID,
		Content:        data.Content,
		DueDate:        data.DueDate,
		ReminderActive: data.ReminderActive,
		ReminderLead:   data.ReminderLead,
		Completed:      data.Completed,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
	if data.Category != nil {
		task.Category = toCategoryDomain(data.Category)
	}

	return task
}

func fromTaskDomain(data *entity.Task) *model.TaskModel {
	if data == nil {
		return nil
	}

	taskM := &model.TaskModel{
		ID:             data.ID,
		OwnerID:        data.OwnerID,
		Content:        data.Content,
		DueDate:        data.DueDate,
		ReminderActive: data.ReminderActive,
		ReminderLead:   data.ReminderLead,
		Completed:      data.Completed,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
	if data.Category != nil {
		categoryID := data.Category.ID
		taskM.CategoryID = &categoryID
	}

	return taskM
}
