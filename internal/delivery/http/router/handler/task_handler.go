package handler

import (
	"log/slog"
	"net/http"
	"time"

	deliverycontext "focusflow/internal/delivery/context"
	"focusflow/internal/delivery/http/response"
	"focusflow/internal/domain/entity"
	"focusflow/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// TaskHandler holds dependencies for task handlers.
type TaskHandler struct {
	uc     usecase.TaskUsecase
	logger *slog.Logger
}

// NewTaskHandler is the constructor for TaskHandler, injected by Fx.
func NewTaskHandler(uc usecase.TaskUsecase, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{
		uc:     uc,
		logger: logger,
	}
}

// taskView is the task shape exposed over the API.
type taskView struct {
	ID             uuid.UUID  `json:"id"`
	Content        string     `json:"content"`
	CategoryID     *uuid.UUID `json:"category_id,omitempty"`
	CategoryName   string     `json:"category_name,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	ReminderActive bool       `json:"reminder_active"`
	ReminderLead   int        `json:"reminder_minutes"`
	Completed      bool       `json:"completed"`
	CreatedAt      time.Time  `json:"created_at"`
}

func toTaskView(task *entity.Task) taskView {
	view := taskView{
		ID:             task.ID,
		Content:        task.Content,
		DueDate:        task.DueDate,
		ReminderActive: task.ReminderActive,
		ReminderLead:   task.ReminderLead,
		Completed:      task.Completed,
		CreatedAt:      task.CreatedAt,
	}
	if task.Category != nil {
		categoryID := task.Category.ID
		view.CategoryID = &categoryID
		view.CategoryName = task.Category.Name
	}

	return view
}

func toTaskViews(tasks []*entity.Task) []taskView {
	views := make([]taskView, 0, len(tasks))
	for _, task := range tasks {
		views = append(views, toTaskView(task))
	}

	return views
}

// ownerID extracts the authenticated account set by the auth middleware.
func ownerID(c echo.Context) (uuid.UUID, error) {
	id, ok := deliverycontext.GetUserID(c)
	if !ok {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	return id, nil
}

func taskID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid task id")
	}

	return id, nil
}

type createTaskRequest struct {
	Content         string     `json:"content" validate:"required"`
	CategoryID      *uuid.UUID `json:"category_id"`
	DueDate         *time.Time `json:"due_date"`
	ReminderActive  bool       `json:"reminder_active"`
	ReminderMinutes *int       `json:"reminder_minutes" validate:"omitempty,min=0"`
}

// Create handles the task creation request.
func (h *TaskHandler) Create(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid task input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input := &usecase.CreateTaskInput{
		OwnerID:         owner,
		Content:         req.Content,
		DueDate:         req.DueDate,
		ReminderActive:  req.ReminderActive,
		ReminderMinutes: req.ReminderMinutes,
	}
	if req.CategoryID != nil {
		input.CategoryID = *req.CategoryID
	}

	task, err := h.uc.Create(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toTaskView(task), "Task created")
}

// List handles the task listing request.
func (h *TaskHandler) List(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}

	tasks, err := h.uc.List(c.Request().Context(), owner)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toTaskViews(tasks), "")
}

type updateTaskRequest struct {
	Content         *string    `json:"content"`
	CategoryID      *uuid.UUID `json:"category_id"`
	DueDate         *time.Time `json:"due_date"`
	ClearDueDate    bool       `json:"clear_due_date"`
	ReminderActive  *bool      `json:"reminder_active"`
	ReminderMinutes *int       `json:"reminder_minutes" validate:"omitempty,min=0"`
}

// Update handles the partial task update request.
func (h *TaskHandler) Update(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	id, err := taskID(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid task input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	task, err := h.uc.Update(c.Request().Context(), &usecase.UpdateTaskInput{
		OwnerID:         owner,
		TaskID:          id,
		Content:         req.Content,
		CategoryID:      req.CategoryID,
		DueDate:         req.DueDate,
		ClearDueDate:    req.ClearDueDate,
		ReminderActive:  req.ReminderActive,
		ReminderMinutes: req.ReminderMinutes,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toTaskView(task), "Task updated")
}

type completeTaskRequest struct {
	Completed bool `json:"completed"`
}

// Complete handles the explicit completion-state request. The caller supplies
// the desired state; repeating the call is harmless.
func (h *TaskHandler) Complete(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	id, err := taskID(c)
	if err != nil {
		return err
	}

	var req completeTaskRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid completion input")
	}

	task, err := h.uc.SetCompleted(c.Request().Context(), owner, id, req.Completed)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toTaskView(task), "Task updated")
}

// Delete handles the task deletion request.
func (h *TaskHandler) Delete(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	id, err := taskID(c)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), owner, id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Task deleted")
}

// categoryView is the category shape exposed over the API.
type categoryView struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ListCategories handles the category listing request.
func (h *TaskHandler) ListCategories(c echo.Context) error {
	categories, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]categoryView, 0, len(categories))
	for _, category := range categories {
		views = append(views, categoryView{ID: category.ID, Name: category.Name})
	}

	return response.Success(c, http.StatusOK, views, "")
}
