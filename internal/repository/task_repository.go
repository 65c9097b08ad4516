package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/plumbing-backend/internal/models"
)

var ErrTaskNotFound = errors.New("task not found")

const taskColumns = `id, client_name, phone, description, address, appointment_date, appointment_time,
	status, professional_id, agreed_price, created_at, updated_at`

type TaskRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db, now: time.Now}
}

// timestamp время изменения строки: UTC с точностью до микросекунды,
// чтобы Postgres и SQLite возвращали одно и то же значение.
func (r *TaskRepository) timestamp() time.Time {
	return r.now().UTC().Truncate(time.Microsecond)
}

// Create сохраняет заявку и заполняет ID и временные метки.
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	now := r.timestamp()
	query := r.db.Rebind(`
		INSERT INTO tasks (client_name, phone, description, address, appointment_date, appointment_time,
			status, professional_id, agreed_price, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`)

	err := r.db.QueryRowxContext(ctx, query,
		task.ClientName, task.Phone, task.Description, task.Address, task.AppointmentDate, task.AppointmentTime,
		task.Status, task.ProfessionalID, task.AgreedPrice, now, now,
	).Scan(&task.ID)
	if err != nil {
		return fmt.Errorf("task repository: create %w", err)
	}

	task.CreatedAt = now
	task.UpdatedAt = now
	return nil
}

// GetByID возвращает заявку вместе с назначенным мастером.
func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	var task models.Task
	query := r.db.Rebind(`SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`)
	if err := r.db.GetContext(ctx, &task, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("task repository: get by id %w", err)
	}

	tasks := []models.Task{task}
	if err := r.attachProfessionals(ctx, tasks); err != nil {
		return nil, err
	}
	return &tasks[0], nil
}

// List возвращает все заявки, новые первыми.
// Мастера подгружаются одним дополнительным запросом.
func (r *TaskRepository) List(ctx context.Context) ([]models.Task, error) {
	tasks := make([]models.Task, 0)
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at DESC, id DESC`
	if err := r.db.SelectContext(ctx, &tasks, query); err != nil {
		return nil, fmt.Errorf("task repository: list %w", err)
	}

	if err := r.attachProfessionals(ctx, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update меняет только переданные поля и всегда обновляет updated_at.
func (r *TaskRepository) Update(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error) {
	sets := make([]string, 0, 6)
	args := make([]interface{}, 0, 7)

	if patch.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *patch.Status)
	}
	if patch.ProfessionalID.Set {
		sets = append(sets, "professional_id = ?")
		args = append(args, patch.ProfessionalID.Value)
	}
	if patch.AgreedPrice.Set {
		sets = append(sets, "agreed_price = ?")
		args = append(args, patch.AgreedPrice.Value)
	}
	if patch.AppointmentDate != nil {
		sets = append(sets, "appointment_date = ?")
		args = append(args, *patch.AppointmentDate)
	}
	if patch.AppointmentTime != nil {
		sets = append(sets, "appointment_time = ?")
		args = append(args, *patch.AppointmentTime)
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, r.timestamp(), id)

	query := r.db.Rebind(`UPDATE tasks SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("task repository: update %w", err)
	}
	if err := requireAffected(res, ErrTaskNotFound); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// Reschedule переносит заявку на другую дату.
func (r *TaskRepository) Reschedule(ctx context.Context, id int64, date models.Date) (*models.Task, error) {
	return r.Update(ctx, id, models.TaskPatch{AppointmentDate: &date})
}

// Delete удаляет заявку.
func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM tasks WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("task repository: delete %w", err)
	}
	return requireAffected(res, ErrTaskNotFound)
}

// Statistics считает заявки одним запросом; предстоящие это заявки с датой не раньше today.
func (r *TaskRepository) Statistics(ctx context.Context, today models.Date) (*models.TaskStatistics, error) {
	var rows []struct {
		Status   string `db:"status"`
		Total    int    `db:"total"`
		Upcoming int    `db:"upcoming"`
	}
	query := r.db.Rebind(`
		SELECT status,
			COUNT(*) AS total,
			COUNT(CASE WHEN appointment_date >= ? THEN 1 END) AS upcoming
		FROM tasks
		GROUP BY status
	`)
	if err := r.db.SelectContext(ctx, &rows, query, today); err != nil {
		return nil, fmt.Errorf("task repository: statistics %w", err)
	}

	stats := &models.TaskStatistics{ByStatus: make(map[string]int, len(rows))}
	for _, row := range rows {
		stats.Total += row.Total
		stats.UpcomingCount += row.Upcoming
		stats.ByStatus[row.Status] = row.Total
	}
	return stats, nil
}

func (r *TaskRepository) attachProfessionals(ctx context.Context, tasks []models.Task) error {
	ids := make([]int64, 0, len(tasks))
	seen := make(map[int64]struct{}, len(tasks))
	for _, t := range tasks {
		if t.ProfessionalID == nil {
			continue
		}
		if _, ok := seen[*t.ProfessionalID]; ok {
			continue
		}
		seen[*t.ProfessionalID] = struct{}{}
		ids = append(ids, *t.ProfessionalID)
	}

	byID, err := listProfessionalsByIDs(ctx, r.db, ids)
	if err != nil {
		return fmt.Errorf("task repository: load professionals %w", err)
	}

	for i := range tasks {
		if tasks[i].ProfessionalID == nil {
			continue
		}
		if p, ok := byID[*tasks[i].ProfessionalID]; ok {
			tasks[i].Professional = &p
		}
	}
	return nil
}

func requireAffected(res sql.Result, notFound error) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
