package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MaxBrandLength        = 50
	MaxModelLength        = 50
	MaxRegistrationLength = 15
)

// Car - автомобиль, доступный для бронирования
// ВАЖНО: автомобиль нельзя удалить, пока на него есть хотя бы одна бронь
type Car struct {
	ID                  uuid.UUID `json:"id"`
	Brand               string    `json:"brand"`
	Model               string    `json:"model"`
	RegistrationNumber  string    `json:"registration_number"`   // Уникальный регистрационный номер
	NextExaminationDate time.Time `json:"next_examination_date"` // Только дата, время всегда 00:00 UTC
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// NormalizeRegistrationNumber убирает пробелы и приводит номер к верхнему регистру
func NormalizeRegistrationNumber(number string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(number), " ", ""))
}

// Validate проверяет корректность данных автомобиля и нормализует номер
func (c *Car) Validate() error {
	c.Brand = strings.TrimSpace(c.Brand)
	c.Model = strings.TrimSpace(c.Model)

	if c.Brand == "" || utf8.RuneCountInString(c.Brand) > MaxBrandLength {
		return ErrInvalidCarData
	}
	if c.Model == "" || utf8.RuneCountInString(c.Model) > MaxModelLength {
		return ErrInvalidCarData
	}

	c.RegistrationNumber = NormalizeRegistrationNumber(c.RegistrationNumber)
	if c.RegistrationNumber == "" || utf8.RuneCountInString(c.RegistrationNumber) > MaxRegistrationLength {
		return ErrInvalidRegistration
	}

	if c.NextExaminationDate.IsZero() {
		return ErrInvalidExaminationDay
	}
	c.NextExaminationDate = TruncateToDate(c.NextExaminationDate)

	return nil
}
