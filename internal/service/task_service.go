package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/plumbing-backend/internal/logger"
	"github.com/ignatzorin/plumbing-backend/internal/models"
	"github.com/ignatzorin/plumbing-backend/internal/pkg/apperror"
)

type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id int64) (*models.Task, error)
	List(ctx context.Context) ([]models.Task, error)
	Update(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error)
	Reschedule(ctx context.Context, id int64, date models.Date) (*models.Task, error)
	Delete(ctx context.Context, id int64) error
	Statistics(ctx context.Context, today models.Date) (*models.TaskStatistics, error)
}

type ProfessionalLookup interface {
	GetByID(ctx context.Context, id int64) (*models.Professional, error)
}

type ServiceCatalog interface {
	Lookup(specialty string) []models.ServiceItem
}

// TaskService управляет жизненным циклом заявок.
type TaskService struct {
	tasks         TaskRepository
	professionals ProfessionalLookup
	catalog       ServiceCatalog
	location      *time.Location
	now           func() time.Time
}

// NewTaskService создаёт сервис; "сегодня" считается в зоне location.
func NewTaskService(tasks TaskRepository, professionals ProfessionalLookup, catalog ServiceCatalog, location *time.Location) *TaskService {
	if location == nil {
		location = time.UTC
	}
	return &TaskService{
		tasks:         tasks,
		professionals: professionals,
		catalog:       catalog,
		location:      location,
		now:           time.Now,
	}
}

// Today текущая календарная дата в зоне сервиса.
func (s *TaskService) Today() models.Date {
	return models.DateOf(s.now().In(s.location))
}

// CreateTask проверяет дату и мастера, вычисляет статус и сохраняет заявку.
func (s *TaskService) CreateTask(ctx context.Context, in models.TaskInput) (*models.Task, error) {
	if err := s.checkNotPast(in.AppointmentDate); err != nil {
		return nil, err
	}

	var professional *models.Professional
	if in.ProfessionalID != nil {
		p, err := s.findProfessional(ctx, *in.ProfessionalID)
		if err != nil {
			return nil, err
		}
		professional = p
	}

	task := &models.Task{
		ClientName:      in.ClientName,
		Phone:           in.Phone,
		Description:     in.Description,
		Address:         in.Address,
		AppointmentDate: in.AppointmentDate,
		AppointmentTime: in.AppointmentTime,
		Status:          models.InitialTaskStatus(in.ProfessionalID),
		ProfessionalID:  in.ProfessionalID,
		AgreedPrice:     in.AgreedPrice,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, translateRepoError(err, "не удалось создать заявку")
	}
	task.Professional = professional
	s.enrich(task)

	if logger.Log != nil {
		logger.Log.WithFields(logrus.Fields{
			"task_id":          task.ID,
			"status":           task.Status,
			"appointment_date": task.AppointmentDate.String(),
		}).Info("task service: заявка создана")
	}

	return task, nil
}

// GetTask возвращает заявку по ID.
func (s *TaskService) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, translateRepoError(err, "не удалось получить заявку")
	}
	s.enrich(task)
	return task, nil
}

// ListTasks возвращает все заявки, новые первыми.
func (s *TaskService) ListTasks(ctx context.Context) ([]models.Task, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, translateRepoError(err, "не удалось получить список заявок")
	}
	for i := range tasks {
		s.enrich(&tasks[i])
	}
	return tasks, nil
}

// UpdateTask применяет частичное обновление. Статус не пересчитывается.
// Неизвестная заявка даёт 404 раньше ошибок валидации полей.
func (s *TaskService) UpdateTask(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error) {
	assignsProfessional := patch.ProfessionalID.Set && patch.ProfessionalID.Value != nil
	if patch.AppointmentDate != nil || assignsProfessional {
		if _, err := s.tasks.GetByID(ctx, id); err != nil {
			return nil, translateRepoError(err, "не удалось получить заявку")
		}
	}

	if patch.AppointmentDate != nil {
		if err := s.checkNotPast(*patch.AppointmentDate); err != nil {
			return nil, err
		}
	}
	if assignsProfessional {
		if _, err := s.findProfessional(ctx, *patch.ProfessionalID.Value); err != nil {
			return nil, err
		}
	}

	task, err := s.tasks.Update(ctx, id, patch)
	if err != nil {
		return nil, translateRepoError(err, "не удалось обновить заявку")
	}
	s.enrich(task)
	return task, nil
}

// RescheduleTask переносит заявку на новую дату, прошлое запрещено.
func (s *TaskService) RescheduleTask(ctx context.Context, id int64, date models.Date) (*models.Task, error) {
	if err := s.checkNotPast(date); err != nil {
		return nil, err
	}

	task, err := s.tasks.Reschedule(ctx, id, date)
	if err != nil {
		return nil, translateRepoError(err, "не удалось перенести заявку")
	}
	s.enrich(task)
	return task, nil
}

// DeleteTask удаляет заявку.
func (s *TaskService) DeleteTask(ctx context.Context, id int64) error {
	if err := s.tasks.Delete(ctx, id); err != nil {
		return translateRepoError(err, "не удалось удалить заявку")
	}

	if logger.Log != nil {
		logger.Log.WithField("task_id", id).Info("task service: заявка удалена")
	}
	return nil
}

// GetStatistics считает статистику заново на каждый вызов.
func (s *TaskService) GetStatistics(ctx context.Context) (*models.TaskStatistics, error) {
	stats, err := s.tasks.Statistics(ctx, s.Today())
	if err != nil {
		return nil, translateRepoError(err, "не удалось посчитать статистику")
	}

	if stats.ByStatus == nil {
		stats.ByStatus = make(map[string]int, len(models.KnownTaskStatuses))
	}
	for status := range models.KnownTaskStatuses {
		if _, ok := stats.ByStatus[status]; !ok {
			stats.ByStatus[status] = 0
		}
	}
	return stats, nil
}

func (s *TaskService) checkNotPast(date models.Date) error {
	if date.IsZero() {
		return apperror.Validation("дата записи обязательна")
	}
	if date.Before(s.Today()) {
		return apperror.ErrPastAppointmentDate
	}
	return nil
}

func (s *TaskService) findProfessional(ctx context.Context, id int64) (*models.Professional, error) {
	p, err := s.professionals.GetByID(ctx, id)
	if err != nil {
		return nil, translateRepoError(err, "не удалось получить мастера")
	}
	return p, nil
}

func (s *TaskService) enrich(task *models.Task) {
	if task.Professional != nil {
		task.Professional.Services = s.catalog.Lookup(task.Professional.Specialty)
	}
}
