package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/plumbing-backend/internal/http/middleware"
	"github.com/ignatzorin/plumbing-backend/internal/models"
	"github.com/ignatzorin/plumbing-backend/internal/pkg/apperror"
)

type mockTaskService struct {
	mock.Mock
}

func (m *mockTaskService) CreateTask(ctx context.Context, in models.TaskInput) (*models.Task, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *mockTaskService) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *mockTaskService) ListTasks(ctx context.Context) ([]models.Task, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *mockTaskService) UpdateTask(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *mockTaskService) RescheduleTask(ctx context.Context, id int64, date models.Date) (*models.Task, error) {
	args := m.Called(ctx, id, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *mockTaskService) DeleteTask(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTaskRouter(svc *mockTaskService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler())

	h := NewTaskHandler(svc)
	r.POST("/tasks", h.CreateTask)
	r.PUT("/tasks/:id", h.UpdateTask)
	r.PATCH("/tasks/:id/reschedule", h.RescheduleTask)
	r.DELETE("/tasks/:id", h.DeleteTask)
	return r
}

func serve(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTaskHandler_RescheduleTask_QueryWinsOverBody(t *testing.T) {
	svc := new(mockTaskService)
	r := newTaskRouter(svc)

	date := models.NewDate(2030, time.January, 2)
	svc.On("RescheduleTask", mock.Anything, int64(4), date).Return(&models.Task{ID: 4, AppointmentDate: date}, nil)

	w := serve(r, http.MethodPatch, "/tasks/4/reschedule?new_date=2030-01-02", `{"new_date":"2031-05-05"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"appointment_date":"2030-01-02"`)
	svc.AssertExpectations(t)
}

func TestTaskHandler_RescheduleTask_BadDate(t *testing.T) {
	svc := new(mockTaskService)
	r := newTaskRouter(svc)

	w := serve(r, http.MethodPatch, "/tasks/4/reschedule?new_date=02.01.2030", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "new_date")
	svc.AssertNotCalled(t, "RescheduleTask", mock.Anything, mock.Anything, mock.Anything)
}

func TestTaskHandler_UpdateTask_PassesAbsentFieldsAsUnset(t *testing.T) {
	svc := new(mockTaskService)
	r := newTaskRouter(svc)

	svc.On("UpdateTask", mock.Anything, int64(7), mock.MatchedBy(func(p models.TaskPatch) bool {
		return p.Status == nil && !p.ProfessionalID.Set && p.AgreedPrice.Set && *p.AgreedPrice.Value == 4500
	})).Return(&models.Task{ID: 7}, nil)

	w := serve(r, http.MethodPut, "/tasks/7", `{"agreed_price": 4500}`)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestTaskHandler_CreateTask_ServiceError(t *testing.T) {
	svc := new(mockTaskService)
	r := newTaskRouter(svc)

	svc.On("CreateTask", mock.Anything, mock.Anything).Return(nil, apperror.ErrProfessionalNotFound)

	w := serve(r, http.MethodPost, "/tasks",
		`{"client_name":"Анна","phone":"89990001122","description":"Нет воды","appointment_date":"2030-01-01","professional_id":42}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "мастер не найден")
}

func TestTaskHandler_DeleteTask(t *testing.T) {
	svc := new(mockTaskService)
	r := newTaskRouter(svc)

	svc.On("DeleteTask", mock.Anything, int64(1)).Return(nil)
	svc.On("DeleteTask", mock.Anything, int64(2)).Return(apperror.ErrTaskNotFound)

	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodDelete, "/tasks/1", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodDelete, "/tasks/2", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodDelete, "/tasks/zero", "").Code)
}

type failingPinger struct{}

func (failingPinger) PingContext(ctx context.Context) error { return context.DeadlineExceeded }

func (failingPinger) Stats() sql.DBStats { return sql.DBStats{} }

func TestHealthHandler_Unavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", NewHealthHandler(failingPinger{}).Health)

	w := serve(r, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "unhealthy")
}
