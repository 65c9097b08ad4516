package models

// TaskStatus константы статусов заявок
const (
	TaskStatusSearching  = "поиск_мастера"
	TaskStatusInProgress = "в_работе"
	TaskStatusDone       = "выполнена"
	TaskStatusCancelled  = "отменена"
)

// Специальности мастеров
const (
	SpecialtyEmergency    = "Аварийный сантехник"
	SpecialtyInstallation = "Инженер-монтажник"
	SpecialtySanitary     = "Установка санфаянса"
	SpecialtyHeating      = "Мастер по отоплению"
)

// KnownTaskStatuses статусы, которые всегда присутствуют в статистике.
// Список не ограничивает обновление: статус задаёт вызывающая сторона.
var KnownTaskStatuses = map[string]struct{}{
	TaskStatusSearching:  {},
	TaskStatusInProgress: {},
	TaskStatusDone:       {},
	TaskStatusCancelled:  {},
}

// InitialTaskStatus вычисляет статус новой заявки: назначенный мастер означает работу.
func InitialTaskStatus(professionalID *int64) string {
	if professionalID != nil {
		return TaskStatusInProgress
	}
	return TaskStatusSearching
}
