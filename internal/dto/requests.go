package dto

import "github.com/ignatzorin/plumbing-backend/internal/models"

// CreateTaskRequest represents the request to create a task
type CreateTaskRequest struct {
	ClientName      string `json:"client_name"`
	Phone           string `json:"phone"`
	Description     string `json:"description"`
	Address         string `json:"address"`
	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time"`
	ProfessionalID  *int64 `json:"professional_id"`
	AgreedPrice     *int64 `json:"agreed_price"`
}

// UpdateTaskRequest represents a partial task update.
// Absent fields stay untouched; explicit null clears professional_id and agreed_price.
type UpdateTaskRequest struct {
	Status          *string                `json:"status"`
	ProfessionalID  models.Nullable[int64] `json:"professional_id"`
	AgreedPrice     models.Nullable[int64] `json:"agreed_price"`
	AppointmentDate *string                `json:"appointment_date"`
	AppointmentTime *string                `json:"appointment_time"`
}

// RescheduleTaskRequest carries the new date from the query string or JSON body
type RescheduleTaskRequest struct {
	NewDate string `json:"new_date" form:"new_date"`
}
