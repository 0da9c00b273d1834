package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "focusflow/internal/delivery/context"
	"focusflow/internal/domain/entity"
	domainerrors "focusflow/internal/domain/errors"
	"focusflow/internal/domain/repository"
	"focusflow/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// taskService implements the TaskUsecase interface.
type taskService struct {
	txManager    repository.TransactionManager
	taskRepo     repository.TaskRepository
	categoryRepo repository.CategoryRepository
	logger       *slog.Logger
}

// TaskServiceParams holds dependencies for taskService, injected by Fx.
type TaskServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	TaskRepo     repository.TaskRepository
	CategoryRepo repository.CategoryRepository
	Logger       *slog.Logger
}

// NewTaskService is the constructor for taskService.
func NewTaskService(params TaskServiceParams) usecase.TaskUsecase {
	return &taskService{
		txManager:    params.TxManager,
		taskRepo:     params.TaskRepo,
		categoryRepo: params.CategoryRepo,
		logger:       params.Logger,
	}
}

func (srv *taskService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// resolveCategory maps a category ID onto the entity, treating the zero UUID
// as "no category".
func (srv *taskService) resolveCategory(ctx context.Context, repo repository.CategoryRepository, categoryID uuid.UUID) (*entity.Category, error) {
	if categoryID == uuid.Nil {
		return nil, nil
	}

	category, err := repo.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, domainerrors.ErrCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to resolve category")
	}

	return category, nil
}

// loadOwnedTask fetches a task and enforces ownership. A task owned by
// someone else fails Forbidden without revealing anything about it.
func (srv *taskService) loadOwnedTask(ctx context.Context, repo repository.TaskRepository, ownerID, taskID uuid.UUID) (*entity.Task, error) {
	task, err := repo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, domainerrors.ErrTaskNotFound
		}

		return nil, errors.Wrap(err, "failed to load task")
	}

	if task.OwnerID != ownerID {
		srv.log(ctx).Warn("Ownership violation",
			slog.Any("taskID", taskID),
			slog.Any("requestedBy", ownerID),
		)

		return nil, domainerrors.ErrForbidden
	}

	return task, nil
}

// Create persists a new task for the authenticated owner.
func (srv *taskService) Create(ctx context.Context, input *usecase.CreateTaskInput) (*entity.Task, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("task content must not be empty")
	}

	reminderLead := entity.DefaultReminderLeadMinutes
	if input.ReminderMinutes != nil {
		reminderLead = *input.ReminderMinutes
	}

	task := &entity.Task{
		OwnerID:        input.OwnerID,
		Content:        content,
		DueDate:        input.DueDate,
		ReminderActive: input.ReminderActive,
		ReminderLead:   reminderLead,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		category, resolveErr := srv.resolveCategory(ctx, repoFactory.CategoryRepo(), input.CategoryID)
		if resolveErr != nil {
			return resolveErr
		}
		task.Category = category

		return repoFactory.TaskRepo().Create(ctx, task)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to create task", slog.Any("ownerID", input.OwnerID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Task created", slog.Any("taskID", task.ID), slog.Any("ownerID", input.OwnerID))

	return task, nil
}

// List returns the owner's tasks, most recently created first.
func (srv *taskService) List(ctx context.Context, ownerID uuid.UUID) ([]*entity.Task, error) {
	tasks, err := srv.taskRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tasks")
	}

	return tasks, nil
}

// SetCompleted sets the completion flag to the caller-supplied state. This is
// an idempotent set, not a flip.
func (srv *taskService) SetCompleted(ctx context.Context, ownerID, taskID uuid.UUID, completed bool) (*entity.Task, error) {
	var task *entity.Task

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		taskRepo := repoFactory.TaskRepo()

		loaded, loadErr := srv.loadOwnedTask(ctx, taskRepo, ownerID, taskID)
		if loadErr != nil {
			return loadErr
		}

		loaded.Completed = completed
		if updateErr := taskRepo.Update(ctx, loaded); updateErr != nil {
			return errors.Wrap(updateErr, "failed to update completion state")
		}
		task = loaded

		return nil
	})
	if err != nil {
		return nil, err
	}

	return task, nil
}

// Update applies a partial update to an owned task. Content is re-validated,
// and the category is re-resolved when the input carries one.
func (srv *taskService) Update(ctx context.Context, input *usecase.UpdateTaskInput) (*entity.Task, error) {
	if input.Content != nil && strings.TrimSpace(*input.Content) == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("task content must not be empty")
	}

	var task *entity.Task

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		taskRepo := repoFactory.TaskRepo()

		loaded, loadErr := srv.loadOwnedTask(ctx, taskRepo, input.OwnerID, input.TaskID)
		if loadErr != nil {
			return loadErr
		}

		if input.Content != nil {
			loaded.Content = strings.TrimSpace(*input.Content)
		}
		if input.CategoryID != nil {
			category, resolveErr := srv.resolveCategory(ctx, repoFactory.CategoryRepo(), *input.CategoryID)
			if resolveErr != nil {
				return resolveErr
			}
			loaded.Category = category
		}
		if input.DueDate != nil {
			loaded.DueDate = input.DueDate
		} else if input.ClearDueDate {
			loaded.DueDate = nil
		}
		if input.ReminderActive != nil {
			loaded.ReminderActive = *input.ReminderActive
		}
		if input.ReminderMinutes != nil {
			loaded.ReminderLead = *input.ReminderMinutes
		}

		if updateErr := taskRepo.Update(ctx, loaded); updateErr != nil {
			return errors.Wrap(updateErr, "failed to update task")
		}
		task = loaded

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Task update rejected", slog.Any("taskID", input.TaskID), slog.Any("error", err))

		return nil, err
	}

	return task, nil
}

// Delete removes an owned task permanently.
func (srv *taskService) Delete(ctx context.Context, ownerID, taskID uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		taskRepo := repoFactory.TaskRepo()

		if _, loadErr := srv.loadOwnedTask(ctx, taskRepo, ownerID, taskID); loadErr != nil {
			return loadErr
		}

		if deleteErr := taskRepo.Delete(ctx, taskID); deleteErr != nil {
			return errors.Wrap(deleteErr, "failed to delete task")
		}

		return nil
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Debug("Task deleted", slog.Any("taskID", taskID), slog.Any("ownerID", ownerID))

	return nil
}

// DueReminders is the side-effect-free candidate query for the external
// reminder job.
func (srv *taskService) DueReminders(ctx context.Context, now time.Time) ([]*entity.Task, error) {
	tasks, err := srv.taskRepo.ListDueReminders(ctx, now)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list due reminders")
	}

	return tasks, nil
}

// ListCategories returns the shared reference categories.
func (srv *taskService) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	categories, err := srv.categoryRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}
