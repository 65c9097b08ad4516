package models

import "time"

// Task заявка клиента на вызов мастера.
type Task struct {
	ID              int64         `db:"id" json:"id"`
	ClientName      string        `db:"client_name" json:"client_name"`
	Phone           string        `db:"phone" json:"phone"`
	Description     string        `db:"description" json:"description"`
	Address         string        `db:"address" json:"address"`
	AppointmentDate Date          `db:"appointment_date" json:"appointment_date"`
	AppointmentTime string        `db:"appointment_time" json:"appointment_time"`
	Status          string        `db:"status" json:"status"`
	ProfessionalID  *int64        `db:"professional_id" json:"professional_id"`
	AgreedPrice     *int64        `db:"agreed_price" json:"agreed_price"`
	CreatedAt       time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at" json:"updated_at"`
	Professional    *Professional `db:"-" json:"professional"`
}

// TaskInput проверенные данные для создания заявки.
type TaskInput struct {
	ClientName      string
	Phone           string
	Description     string
	Address         string
	AppointmentDate Date
	AppointmentTime string
	ProfessionalID  *int64
	AgreedPrice     *int64
}

// TaskPatch частичное обновление заявки: nil означает "не менять".
type TaskPatch struct {
	Status          *string
	ProfessionalID  Nullable[int64]
	AgreedPrice     Nullable[int64]
	AppointmentDate *Date
	AppointmentTime *string
}

// IsEmpty сообщает, что в патче нет ни одного поля.
func (p TaskPatch) IsEmpty() bool {
	return p.Status == nil &&
		!p.ProfessionalID.Set &&
		!p.AgreedPrice.Set &&
		p.AppointmentDate == nil &&
		p.AppointmentTime == nil
}

// TaskStatistics агрегаты по текущим заявкам.
type TaskStatistics struct {
	Total         int            `json:"total"`
	UpcomingCount int            `json:"upcoming_count"`
	ByStatus      map[string]int `json:"by_status"`
}
