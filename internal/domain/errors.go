package domain

import (
	"errors"
	"fmt"
)

// Доменные ошибки - используются во всех слоях приложения

// Базовые категории ошибок. Конкретные ошибки ниже оборачивают одну из них,
// поэтому проверять категорию можно через errors.Is
var (
	ErrNotFound            = errors.New("not found")
	ErrValidation          = errors.New("validation failed")
	ErrSchedulingConflict  = errors.New("scheduling conflict")
	ErrReferentialConflict = errors.New("referential conflict")
	ErrParse               = errors.New("parse error")
	ErrInternal            = errors.New("internal server error")
)

// Car errors
var (
	ErrCarNotFound           = fmt.Errorf("car %w", ErrNotFound)
	ErrCarAlreadyExists      = fmt.Errorf("%w: car with this registration number already exists", ErrValidation)
	ErrInvalidCarData        = fmt.Errorf("%w: invalid car data", ErrValidation)
	ErrInvalidRegistration   = fmt.Errorf("%w: invalid registration number", ErrValidation)
	ErrCarHasReservations    = fmt.Errorf("%w: car has active reservations", ErrReferentialConflict)
	ErrInvalidExaminationDay = fmt.Errorf("%w: invalid next examination date", ErrValidation)
)

// Reservation errors
var (
	ErrReservationNotFound    = fmt.Errorf("reservation %w", ErrNotFound)
	ErrInvalidReservationData = fmt.Errorf("%w: invalid reservation data", ErrValidation)

	ErrInvalidDateRange            = fmt.Errorf("%w: date_from must be earlier than date_to", ErrSchedulingConflict)
	ErrReservationAfterExamination = fmt.Errorf("%w: reservation ends after the car's technical examination", ErrSchedulingConflict)
	ErrReservationCollision        = fmt.Errorf("%w: reservation collides with another reservation", ErrSchedulingConflict)
)
