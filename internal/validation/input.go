package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/ignatzorin/plumbing-backend/internal/dto"
	"github.com/ignatzorin/plumbing-backend/internal/models"
	"github.com/ignatzorin/plumbing-backend/internal/pkg/apperror"
)

// Ограничения полей совпадают с колонками таблицы tasks.
const (
	MaxClientNameLength      = 255
	MaxPhoneLength           = 20
	MaxAddressLength         = 255
	MaxAppointmentTimeLength = 50
	MaxStatusLength          = 50
	MinPhoneDigits           = 5
)

// ValidateLength проверяет длину строки в символах.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return apperror.Validation("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return apperror.Validation("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateRequired проверяет, что поле не пустое после обрезки пробелов.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperror.Validation("поле %s обязательно", fieldName)
	}
	return nil
}

// ValidatePhone допускает цифры, пробелы, "+", "-" и скобки.
func ValidatePhone(phone string) error {
	if err := ValidateLength("phone", phone, 0, MaxPhoneLength); err != nil {
		return err
	}

	digits := 0
	for _, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' || r == '-' || r == '(' || r == ')' || r == ' ':
		default:
			return apperror.Validation("phone содержит недопустимый символ %q", r)
		}
	}
	if digits < MinPhoneDigits {
		return apperror.Validation("phone должен содержать не менее %d цифр", MinPhoneDigits)
	}
	return nil
}

// ParseDate разбирает дату в формате ГГГГ-ММ-ДД.
func ParseDate(fieldName, value string) (models.Date, error) {
	if err := ValidateRequired(fieldName, value); err != nil {
		return models.Date{}, err
	}
	d, err := models.ParseDate(value)
	if err != nil {
		return models.Date{}, apperror.Validation("%s: %v", fieldName, err)
	}
	return d, nil
}

// ParseCreateTask проверяет запрос на создание заявки.
func ParseCreateTask(req dto.CreateTaskRequest) (models.TaskInput, error) {
	in := models.TaskInput{
		ClientName:      strings.TrimSpace(req.ClientName),
		Phone:           strings.TrimSpace(req.Phone),
		Description:     strings.TrimSpace(req.Description),
		Address:         strings.TrimSpace(req.Address),
		AppointmentTime: strings.TrimSpace(req.AppointmentTime),
		ProfessionalID:  req.ProfessionalID,
		AgreedPrice:     req.AgreedPrice,
	}

	required := []struct{ name, value string }{
		{"client_name", in.ClientName},
		{"phone", in.Phone},
		{"description", in.Description},
		{"appointment_date", req.AppointmentDate},
	}
	for _, f := range required {
		if err := ValidateRequired(f.name, f.value); err != nil {
			return models.TaskInput{}, err
		}
	}

	date, err := ParseDate("appointment_date", req.AppointmentDate)
	if err != nil {
		return models.TaskInput{}, err
	}
	in.AppointmentDate = date

	if err := ValidateLength("client_name", in.ClientName, 0, MaxClientNameLength); err != nil {
		return models.TaskInput{}, err
	}
	if err := ValidatePhone(in.Phone); err != nil {
		return models.TaskInput{}, err
	}
	if err := ValidateLength("address", in.Address, 0, MaxAddressLength); err != nil {
		return models.TaskInput{}, err
	}
	if err := ValidateLength("appointment_time", in.AppointmentTime, 0, MaxAppointmentTimeLength); err != nil {
		return models.TaskInput{}, err
	}
	if err := validateProfessionalID(in.ProfessionalID); err != nil {
		return models.TaskInput{}, err
	}
	if err := validatePrice(in.AgreedPrice); err != nil {
		return models.TaskInput{}, err
	}

	return in, nil
}

// ParseUpdateTask проверяет частичное обновление. Пустой запрос допустим.
func ParseUpdateTask(req dto.UpdateTaskRequest) (models.TaskPatch, error) {
	patch := models.TaskPatch{
		ProfessionalID: req.ProfessionalID,
		AgreedPrice:    req.AgreedPrice,
	}

	if req.Status != nil {
		status := strings.TrimSpace(*req.Status)
		if err := ValidateRequired("status", status); err != nil {
			return models.TaskPatch{}, err
		}
		if err := ValidateLength("status", status, 0, MaxStatusLength); err != nil {
			return models.TaskPatch{}, err
		}
		patch.Status = &status
	}

	if req.AppointmentDate != nil {
		date, err := ParseDate("appointment_date", *req.AppointmentDate)
		if err != nil {
			return models.TaskPatch{}, err
		}
		patch.AppointmentDate = &date
	}

	if req.AppointmentTime != nil {
		appointmentTime := strings.TrimSpace(*req.AppointmentTime)
		if err := ValidateLength("appointment_time", appointmentTime, 0, MaxAppointmentTimeLength); err != nil {
			return models.TaskPatch{}, err
		}
		patch.AppointmentTime = &appointmentTime
	}

	if err := validateProfessionalID(req.ProfessionalID.Value); err != nil {
		return models.TaskPatch{}, err
	}
	if err := validatePrice(req.AgreedPrice.Value); err != nil {
		return models.TaskPatch{}, err
	}

	return patch, nil
}

func validateProfessionalID(id *int64) error {
	if id != nil && *id <= 0 {
		return apperror.Validation("professional_id должен быть положительным")
	}
	return nil
}

func validatePrice(price *int64) error {
	if price != nil && *price < 0 {
		return apperror.Validation("agreed_price не может быть отрицательной")
	}
	return nil
}
