package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/plumbing-backend/internal/db/dbtest"
	"github.com/ignatzorin/plumbing-backend/internal/models"
)

func int64Ptr(v int64) *int64 { return &v }

func strPtr(v string) *string { return &v }

// stepClock отдаёт время, сдвигающееся на секунду при каждом вызове.
func stepClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

func seedProfessionals(t *testing.T, repo *ProfessionalRepository) []models.Professional {
	t.Helper()

	n, err := repo.CreateBatch(context.Background(), []models.Professional{
		{Name: "Алексей Смирнов", Specialty: models.SpecialtyEmergency, Rating: 5.0, PriceStart: 2000, Experience: 8, Age: 31, Slogan: "Приеду за 30 минут"},
		{Name: "Виктор Петрович", Specialty: models.SpecialtyHeating, Rating: 4.9, PriceStart: 3500, Experience: 25, Age: 55, Slogan: "Тепло в каждый дом"},
	})
	require.NoError(t, err)
	require.Equal(t, 2, n)

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	return list
}

func newTask(date models.Date, professionalID *int64) *models.Task {
	return &models.Task{
		ClientName:      "Ирина",
		Phone:           "+79990001122",
		Description:     "Течёт кран на кухне",
		Address:         "ул. Ленина, 1",
		AppointmentDate: date,
		AppointmentTime: "10:00-12:00",
		Status:          models.InitialTaskStatus(professionalID),
		ProfessionalID:  professionalID,
	}
}

func TestProfessionalRepository_CreateBatchAndList(t *testing.T) {
	conn := dbtest.NewSQLite(t)
	repo := NewProfessionalRepository(conn)
	ctx := context.Background()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	list := seedProfessionals(t, repo)
	require.Len(t, list, 2)
	assert.Equal(t, "Алексей Смирнов", list[0].Name)
	assert.Equal(t, models.SpecialtyHeating, list[1].Specialty)
	assert.Equal(t, 3500, list[1].PriceStart)
	assert.Less(t, list[0].ID, list[1].ID)

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	got, err := repo.GetByID(ctx, list[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "Виктор Петрович", got.Name)

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrProfessionalNotFound)

	byID, err := listProfessionalsByIDs(ctx, repo.db, []int64{list[0].ID, 999})
	require.NoError(t, err)
	assert.Len(t, byID, 1)
	assert.Equal(t, list[0].Name, byID[list[0].ID].Name)

	empty, err := listProfessionalsByIDs(ctx, repo.db, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestProfessionalRepository_CreateBatchDefaultRating(t *testing.T) {
	repo := NewProfessionalRepository(dbtest.NewSQLite(t))
	ctx := context.Background()

	_, err := repo.CreateBatch(ctx, []models.Professional{
		{Name: "Новичок", Specialty: models.SpecialtySanitary, PriceStart: 1000},
		{Name: "Опытный", Specialty: models.SpecialtySanitary, Rating: 4.2, PriceStart: 1500},
	})
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, models.DefaultProfessionalRating, list[0].Rating)
	assert.Equal(t, 4.2, list[1].Rating)
}

func TestProfessionalRepository_CreateBatchEmpty(t *testing.T) {
	repo := NewProfessionalRepository(dbtest.NewSQLite(t))

	n, err := repo.CreateBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestTaskRepository_CreateAndGet(t *testing.T) {
	conn := dbtest.NewSQLite(t)
	pros := seedProfessionals(t, NewProfessionalRepository(conn))
	repo := NewTaskRepository(conn)
	repo.now = stepClock(time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	date := models.NewDate(2026, time.October, 20)
	task := newTask(date, int64Ptr(pros[0].ID))
	task.AgreedPrice = int64Ptr(2500)
	require.NoError(t, repo.Create(ctx, task))
	assert.NotZero(t, task.ID)
	assert.Equal(t, task.CreatedAt, task.UpdatedAt)

	got, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ирина", got.ClientName)
	assert.Equal(t, date, got.AppointmentDate)
	assert.Equal(t, models.TaskStatusInProgress, got.Status)
	assert.Equal(t, int64(2500), *got.AgreedPrice)
	assert.True(t, got.CreatedAt.Equal(task.CreatedAt))
	require.NotNil(t, got.Professional)
	assert.Equal(t, pros[0].Name, got.Professional.Name)

	unassigned := newTask(date, nil)
	require.NoError(t, repo.Create(ctx, unassigned))
	got, err = repo.GetByID(ctx, unassigned.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ProfessionalID)
	assert.Nil(t, got.Professional)
	assert.Nil(t, got.AgreedPrice)
	assert.Equal(t, models.TaskStatusSearching, got.Status)

	_, err = repo.GetByID(ctx, 12345)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskRepository_ListNewestFirst(t *testing.T) {
	conn := dbtest.NewSQLite(t)
	pros := seedProfessionals(t, NewProfessionalRepository(conn))
	repo := NewTaskRepository(conn)
	repo.now = stepClock(time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	date := models.NewDate(2026, time.October, 20)
	first := newTask(date, int64Ptr(pros[0].ID))
	second := newTask(date, nil)
	third := newTask(date, int64Ptr(pros[0].ID))
	for _, task := range []*models.Task{first, second, third} {
		require.NoError(t, repo.Create(ctx, task))
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int64{third.ID, second.ID, first.ID}, []int64{list[0].ID, list[1].ID, list[2].ID})

	require.NotNil(t, list[0].Professional)
	require.NotNil(t, list[2].Professional)
	assert.Equal(t, pros[0].ID, list[0].Professional.ID)
	assert.Nil(t, list[1].Professional)
	assert.NotSame(t, list[0].Professional, list[2].Professional)
}

func TestTaskRepository_ListEmpty(t *testing.T) {
	repo := NewTaskRepository(dbtest.NewSQLite(t))

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestTaskRepository_UpdatePartial(t *testing.T) {
	conn := dbtest.NewSQLite(t)
	pros := seedProfessionals(t, NewProfessionalRepository(conn))
	repo := NewTaskRepository(conn)
	repo.now = stepClock(time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	task := newTask(models.NewDate(2026, time.October, 20), int64Ptr(pros[0].ID))
	task.AgreedPrice = int64Ptr(3000)
	require.NoError(t, repo.Create(ctx, task))

	updated, err := repo.Update(ctx, task.ID, models.TaskPatch{Status: strPtr(models.TaskStatusDone)})
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusDone, updated.Status)
	assert.Equal(t, task.ClientName, updated.ClientName)
	assert.Equal(t, task.AppointmentDate, updated.AppointmentDate)
	assert.Equal(t, pros[0].ID, *updated.ProfessionalID)
	assert.Equal(t, int64(3000), *updated.AgreedPrice)
	assert.True(t, updated.UpdatedAt.After(task.UpdatedAt))
	assert.True(t, updated.CreatedAt.Equal(task.CreatedAt))

	reassigned, err := repo.Update(ctx, task.ID, models.TaskPatch{
		ProfessionalID:  models.NullableOf(pros[1].ID),
		AppointmentTime: strPtr("после 18:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, pros[1].ID, reassigned.Professional.ID)
	assert.Equal(t, "после 18:00", reassigned.AppointmentTime)
	assert.Equal(t, models.TaskStatusDone, reassigned.Status)

	cleared, err := repo.Update(ctx, task.ID, models.TaskPatch{
		ProfessionalID: models.NullOf[int64](),
		AgreedPrice:    models.NullOf[int64](),
	})
	require.NoError(t, err)
	assert.Nil(t, cleared.ProfessionalID)
	assert.Nil(t, cleared.Professional)
	assert.Nil(t, cleared.AgreedPrice)

	touched, err := repo.Update(ctx, task.ID, models.TaskPatch{})
	require.NoError(t, err)
	assert.True(t, touched.UpdatedAt.After(cleared.UpdatedAt))
}

func TestTaskRepository_UpdateUnknown(t *testing.T) {
	repo := NewTaskRepository(dbtest.NewSQLite(t))

	_, err := repo.Update(context.Background(), 42, models.TaskPatch{Status: strPtr(models.TaskStatusDone)})
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskRepository_Reschedule(t *testing.T) {
	conn := dbtest.NewSQLite(t)
	repo := NewTaskRepository(conn)
	ctx := context.Background()

	task := newTask(models.NewDate(2026, time.October, 20), nil)
	require.NoError(t, repo.Create(ctx, task))

	newDate := models.NewDate(2026, time.November, 2)
	got, err := repo.Reschedule(ctx, task.ID, newDate)
	require.NoError(t, err)
	assert.Equal(t, newDate, got.AppointmentDate)
	assert.Equal(t, task.AppointmentTime, got.AppointmentTime)
	assert.Equal(t, task.Status, got.Status)

	_, err = repo.Reschedule(ctx, 999, newDate)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskRepository_Delete(t *testing.T) {
	repo := NewTaskRepository(dbtest.NewSQLite(t))
	ctx := context.Background()

	task := newTask(models.NewDate(2026, time.October, 20), nil)
	require.NoError(t, repo.Create(ctx, task))

	require.NoError(t, repo.Delete(ctx, task.ID))
	assert.ErrorIs(t, repo.Delete(ctx, task.ID), ErrTaskNotFound)

	_, err := repo.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskRepository_Statistics(t *testing.T) {
	conn := dbtest.NewSQLite(t)
	pros := seedProfessionals(t, NewProfessionalRepository(conn))
	repo := NewTaskRepository(conn)
	ctx := context.Background()

	today := models.NewDate(2026, time.October, 16)

	empty, err := repo.Statistics(ctx, today)
	require.NoError(t, err)
	assert.Zero(t, empty.Total)
	assert.Zero(t, empty.UpcomingCount)
	assert.NotNil(t, empty.ByStatus)

	tasks := []*models.Task{
		newTask(today.AddDays(-3), nil),
		newTask(today, int64Ptr(pros[0].ID)),
		newTask(today.AddDays(5), nil),
		newTask(today.AddDays(30), int64Ptr(pros[1].ID)),
	}
	for _, task := range tasks {
		require.NoError(t, repo.Create(ctx, task))
	}
	_, err = repo.Update(ctx, tasks[3].ID, models.TaskPatch{Status: strPtr(models.TaskStatusDone)})
	require.NoError(t, err)

	stats, err := repo.Statistics(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 3, stats.UpcomingCount)
	assert.Equal(t, map[string]int{
		models.TaskStatusSearching:  2,
		models.TaskStatusInProgress: 1,
		models.TaskStatusDone:       1,
	}, stats.ByStatus)
}
