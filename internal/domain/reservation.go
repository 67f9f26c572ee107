package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MaxBookingPersonLength = 40

	// DateLayout - формат даты техосмотра на входе и выходе API
	DateLayout = "2006-01-02"
	// DateTimeLayout - формат начала и конца брони в ответах API
	DateTimeLayout = time.RFC3339Nano
)

// dateTimeLayouts - допустимые на входе варианты ISO-8601.
// Смещение обязательно во всех вариантах.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04Z07:00",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04Z0700",
}

// Reservation - бронь автомобиля на интервал [DateFrom, DateTo]
type Reservation struct {
	ID            uuid.UUID `json:"id"`
	BookingPerson string    `json:"booking_person"`
	DateFrom      time.Time `json:"date_from"`
	DateTo        time.Time `json:"date_to"`
	CarID         uuid.UUID `json:"car_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Связанные данные (не хранятся в таблице reservations, заполняются при необходимости)
	Car *Car `json:"car,omitempty"`
}

// Period возвращает интервал брони
func (r *Reservation) Period() Period {
	return Period{From: r.DateFrom, To: r.DateTo}
}

// Validate проверяет поля брони, не касаясь пересечений с другими бронями
func (r *Reservation) Validate() error {
	r.BookingPerson = strings.TrimSpace(r.BookingPerson)
	if r.BookingPerson == "" || utf8.RuneCountInString(r.BookingPerson) > MaxBookingPersonLength {
		return ErrInvalidReservationData
	}
	if r.CarID == uuid.Nil {
		return ErrInvalidReservationData
	}
	if r.DateFrom.IsZero() || r.DateTo.IsZero() {
		return ErrInvalidReservationData
	}
	return nil
}

// Period - закрытый интервал времени [From, To]
type Period struct {
	From time.Time
	To   time.Time
}

// Contains сообщает, лежит ли момент t внутри интервала, включая границы
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.From) && !t.After(p.To)
}

// CheckPeriod проверяет, можно ли забронировать автомобиль на [from, to].
//
// existing - интервалы ВСЕХ ОСТАЛЬНЫХ броней автомобиля (при обновлении
// сама обновляемая бронь в список не входит).
//
// Правила:
//  1. from строго раньше to
//  2. дата окончания брони (UTC) не позже даты техосмотра
//  3. ни from, ни to не попадают внутрь (или на границу) существующего интервала
//
// Проверка 3 - проверка вхождения концов, а не полноценное пересечение
// интервалов: бронь, целиком накрывающая существующую, ошибкой не считается.
func CheckPeriod(existing []Period, from, to, examination time.Time) error {
	if !from.Before(to) {
		return ErrInvalidDateRange
	}

	if TruncateToDate(to).After(TruncateToDate(examination)) {
		return ErrReservationAfterExamination
	}

	for _, p := range existing {
		if p.Contains(from) || p.Contains(to) {
			return ErrReservationCollision
		}
	}

	return nil
}

// IsPeriodValid - булева обертка над CheckPeriod
func IsPeriodValid(existing []Period, from, to, examination time.Time) bool {
	return CheckPeriod(existing, from, to, examination) == nil
}

// TruncateToDate отбрасывает время, оставляя календарную дату в UTC
func TruncateToDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDateTime разбирает момент времени в ISO-8601 со смещением:
// 2021-01-10T03:00:00Z, 2021-01-10T03:00Z, 2021-01-10 03:00:00+00:00, 2021-01-10T03:00:00+0000
func ParseDateTime(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: invalid datetime %q, expected ISO-8601 with UTC offset", ErrParse, value)
}

// ParseDate разбирает календарную дату в формате YYYY-MM-DD
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrParse, value)
	}
	return t, nil
}
