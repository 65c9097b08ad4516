package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/plumbing-backend/internal/dto"
	"github.com/ignatzorin/plumbing-backend/internal/http/handlers/common"
	"github.com/ignatzorin/plumbing-backend/internal/models"
	"github.com/ignatzorin/plumbing-backend/internal/pkg/apperror"
	"github.com/ignatzorin/plumbing-backend/internal/validation"
)

type TaskService interface {
	CreateTask(ctx context.Context, in models.TaskInput) (*models.Task, error)
	GetTask(ctx context.Context, id int64) (*models.Task, error)
	ListTasks(ctx context.Context) ([]models.Task, error)
	UpdateTask(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error)
	RescheduleTask(ctx context.Context, id int64, date models.Date) (*models.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

// TaskHandler обслуживает заявки клиентов.
type TaskHandler struct {
	tasks TaskService
}

func NewTaskHandler(tasks TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// ListTasks GET /tasks
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.tasks.ListTasks(c.Request.Context())
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// GetTask GET /tasks/:id
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, err := common.ParseIDParam(c, "id")
	if err != nil {
		common.Fail(c, err)
		return
	}

	task, err := h.tasks.GetTask(c.Request.Context(), id)
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// CreateTask POST /tasks
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := common.BindJSON(c, &req); err != nil {
		common.Fail(c, err)
		return
	}

	in, err := validation.ParseCreateTask(req)
	if err != nil {
		common.Fail(c, err)
		return
	}

	task, err := h.tasks.CreateTask(c.Request.Context(), in)
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// UpdateTask PUT /tasks/:id
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, err := common.ParseIDParam(c, "id")
	if err != nil {
		common.Fail(c, err)
		return
	}

	var req dto.UpdateTaskRequest
	if err := common.BindJSON(c, &req); err != nil {
		common.Fail(c, err)
		return
	}

	patch, err := validation.ParseUpdateTask(req)
	if err != nil {
		common.Fail(c, err)
		return
	}

	task, err := h.tasks.UpdateTask(c.Request.Context(), id, patch)
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// RescheduleTask PATCH /tasks/:id/reschedule
// new_date берётся из query, а если его там нет, из JSON тела.
func (h *TaskHandler) RescheduleTask(c *gin.Context) {
	id, err := common.ParseIDParam(c, "id")
	if err != nil {
		common.Fail(c, err)
		return
	}

	var req dto.RescheduleTaskRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		common.Fail(c, apperror.Wrap(err, apperror.ErrCodeBadRequest, "некорректные параметры запроса"))
		return
	}
	if req.NewDate == "" && c.Request.ContentLength != 0 {
		if err := common.BindJSON(c, &req); err != nil {
			common.Fail(c, err)
			return
		}
	}

	date, err := validation.ParseDate("new_date", req.NewDate)
	if err != nil {
		common.Fail(c, err)
		return
	}

	task, err := h.tasks.RescheduleTask(c.Request.Context(), id, date)
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// DeleteTask DELETE /tasks/:id
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, err := common.ParseIDParam(c, "id")
	if err != nil {
		common.Fail(c, err)
		return
	}

	if err := h.tasks.DeleteTask(c.Request.Context(), id); err != nil {
		common.Fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
