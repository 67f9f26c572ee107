package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/frontandrew/carrent/internal/domain"
	"github.com/frontandrew/carrent/internal/usecase/car"
	"github.com/frontandrew/carrent/internal/usecase/reservation"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// В ошибках используем имена полей из JSON
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// CarRequest - тело POST/PUT/PATCH для автомобиля.
// Для POST и PUT все поля обязательны, для PATCH - только переданные.
type CarRequest struct {
	Brand               *string `json:"brand" validate:"omitempty,min=1,max=50"`
	Model               *string `json:"model" validate:"omitempty,min=1,max=50"`
	RegistrationNumber  *string `json:"registration_number" validate:"omitempty,min=1"`
	NextExaminationDate *string `json:"next_examination_date" validate:"omitempty"`
}

func (req *CarRequest) requireAll() map[string]string {
	missing := map[string]string{}
	if req.Brand == nil {
		missing["brand"] = "required"
	}
	if req.Model == nil {
		missing["model"] = "required"
	}
	if req.RegistrationNumber == nil {
		missing["registration_number"] = "required"
	}
	if req.NextExaminationDate == nil {
		missing["next_examination_date"] = "required"
	}
	return missing
}

// toInput преобразует полный запрос в CarInput
func (req *CarRequest) toInput() (car.CarInput, error) {
	date, err := domain.ParseDate(*req.NextExaminationDate)
	if err != nil {
		return car.CarInput{}, err
	}
	return car.CarInput{
		Brand:               *req.Brand,
		Model:               *req.Model,
		RegistrationNumber:  *req.RegistrationNumber,
		NextExaminationDate: date,
	}, nil
}

// toPatch преобразует частичный запрос в CarPatch
func (req *CarRequest) toPatch() (car.CarPatch, error) {
	patch := car.CarPatch{
		Brand:              req.Brand,
		Model:              req.Model,
		RegistrationNumber: req.RegistrationNumber,
	}
	if req.NextExaminationDate != nil {
		date, err := domain.ParseDate(*req.NextExaminationDate)
		if err != nil {
			return car.CarPatch{}, err
		}
		patch.NextExaminationDate = &date
	}
	return patch, nil
}

// ReservationRequest - тело POST/PUT/PATCH для брони
type ReservationRequest struct {
	BookingPerson *string `json:"booking_person" validate:"omitempty,min=1,max=40"`
	DateFrom      *string `json:"date_from" validate:"omitempty"`
	DateTo        *string `json:"date_to" validate:"omitempty"`
}

func (req *ReservationRequest) requireAll() map[string]string {
	missing := map[string]string{}
	if req.BookingPerson == nil {
		missing["booking_person"] = "required"
	}
	if req.DateFrom == nil {
		missing["date_from"] = "required"
	}
	if req.DateTo == nil {
		missing["date_to"] = "required"
	}
	return missing
}

func (req *ReservationRequest) toInput() (reservation.ReservationInput, error) {
	from, err := domain.ParseDateTime(*req.DateFrom)
	if err != nil {
		return reservation.ReservationInput{}, err
	}
	to, err := domain.ParseDateTime(*req.DateTo)
	if err != nil {
		return reservation.ReservationInput{}, err
	}
	return reservation.ReservationInput{
		BookingPerson: *req.BookingPerson,
		DateFrom:      from,
		DateTo:        to,
	}, nil
}

func (req *ReservationRequest) toPatch() (reservation.ReservationPatch, error) {
	patch := reservation.ReservationPatch{BookingPerson: req.BookingPerson}
	if req.DateFrom != nil {
		from, err := domain.ParseDateTime(*req.DateFrom)
		if err != nil {
			return reservation.ReservationPatch{}, err
		}
		patch.DateFrom = &from
	}
	if req.DateTo != nil {
		to, err := domain.ParseDateTime(*req.DateTo)
		if err != nil {
			return reservation.ReservationPatch{}, err
		}
		patch.DateTo = &to
	}
	return patch, nil
}

// validateRequest проверяет теги validate и, для полных запросов, наличие всех полей.
// Возвращает ошибки по полям или nil.
func validateRequest(req interface{ requireAll() map[string]string }, full bool) map[string]string {
	fields := map[string]string{}
	if full {
		fields = req.requireAll()
	}

	var verrs validator.ValidationErrors
	if err := validate.Struct(req); errors.As(err, &verrs) {
		for _, fe := range verrs {
			if _, ok := fields[fe.Field()]; ok {
				continue
			}
			fields[fe.Field()] = describeFieldError(fe)
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fe.Tag()
	}
}

// CarResponse - представление автомобиля
type CarResponse struct {
	ID                  uuid.UUID `json:"id"`
	Brand               string    `json:"brand"`
	Model               string    `json:"model"`
	RegistrationNumber  string    `json:"registration_number"`
	NextExaminationDate string    `json:"next_examination_date"`
}

// MiniReservationResponse - бронь в списке броней автомобиля
type MiniReservationResponse struct {
	ID            uuid.UUID `json:"id"`
	BookingPerson string    `json:"booking_person"`
	DateFrom      string    `json:"date_from"`
	DateTo        string    `json:"date_to"`
}

// ReservationResponse - бронь вместе с ID автомобиля
type ReservationResponse struct {
	MiniReservationResponse
	CarID uuid.UUID `json:"car_id"`
}

// ReservationWithDetailsResponse - бронь с вложенными данными автомобиля
type ReservationWithDetailsResponse struct {
	MiniReservationResponse
	Car CarResponse `json:"car"`
}

func formatDateTime(t time.Time) string {
	return t.UTC().Format(domain.DateTimeLayout)
}

func newCarResponse(c *domain.Car) CarResponse {
	return CarResponse{
		ID:                  c.ID,
		Brand:               c.Brand,
		Model:               c.Model,
		RegistrationNumber:  c.RegistrationNumber,
		NextExaminationDate: c.NextExaminationDate.Format(domain.DateLayout),
	}
}

func newCarListResponse(cars []*domain.Car) []CarResponse {
	out := make([]CarResponse, 0, len(cars))
	for _, c := range cars {
		out = append(out, newCarResponse(c))
	}
	return out
}

func newMiniReservationResponse(r *domain.Reservation) MiniReservationResponse {
	return MiniReservationResponse{
		ID:            r.ID,
		BookingPerson: r.BookingPerson,
		DateFrom:      formatDateTime(r.DateFrom),
		DateTo:        formatDateTime(r.DateTo),
	}
}

func newMiniReservationListResponse(list []*domain.Reservation) []MiniReservationResponse {
	out := make([]MiniReservationResponse, 0, len(list))
	for _, r := range list {
		out = append(out, newMiniReservationResponse(r))
	}
	return out
}

func newReservationResponse(r *domain.Reservation) ReservationResponse {
	return ReservationResponse{
		MiniReservationResponse: newMiniReservationResponse(r),
		CarID:                   r.CarID,
	}
}

func newReservationWithDetailsResponse(r *domain.Reservation) ReservationWithDetailsResponse {
	resp := ReservationWithDetailsResponse{
		MiniReservationResponse: newMiniReservationResponse(r),
	}
	if r.Car != nil {
		resp.Car = newCarResponse(r.Car)
	}
	return resp
}
