package http

import (
	"context"
	"net/http"

	"github.com/frontandrew/carrent/internal/domain"
	"github.com/frontandrew/carrent/internal/pkg/logger"
	"github.com/frontandrew/carrent/internal/usecase/car"
	"github.com/google/uuid"
)

// CarService определяет интерфейс для сервиса автомобилей
type CarService interface {
	CreateCar(ctx context.Context, in car.CarInput) (*domain.Car, error)
	GetCarByID(ctx context.Context, id uuid.UUID) (*domain.Car, error)
	ListCars(ctx context.Context) ([]*domain.Car, error)
	UpdateCar(ctx context.Context, id uuid.UUID, in car.CarInput) (*domain.Car, error)
	PatchCar(ctx context.Context, id uuid.UUID, patch car.CarPatch) (*domain.Car, error)
	DeleteCar(ctx context.Context, id uuid.UUID) error
}

// CarHandler обрабатывает запросы связанные с автомобилями
type CarHandler struct {
	carService CarService
	logger     logger.Logger
}

// NewCarHandler создает новый handler
func NewCarHandler(carService CarService, logger logger.Logger) *CarHandler {
	return &CarHandler{
		carService: carService,
		logger:     logger,
	}
}

// ListCars возвращает все автомобили
// GET /api/cars
func (h *CarHandler) ListCars(w http.ResponseWriter, r *http.Request) {
	cars, err := h.carService.ListCars(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "list cars")
		return
	}

	respondData(w, http.StatusOK, newCarListResponse(cars))
}

// CreateCar создает новый автомобиль
// POST /api/cars, POST /api/car/:id (id в пути игнорируется)
func (h *CarHandler) CreateCar(w http.ResponseWriter, r *http.Request) {
	var req CarRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if fields := validateRequest(&req, true); fields != nil {
		respondFieldErrors(w, fields)
		return
	}

	in, err := req.toInput()
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.carService.CreateCar(r.Context(), in)
	if err != nil {
		respondServiceError(w, h.logger, err, "create car")
		return
	}

	respondData(w, http.StatusCreated, newCarResponse(c))
}

// GetCar возвращает автомобиль по ID
// GET /api/car/:id
func (h *CarHandler) GetCar(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid car ID")
		return
	}

	c, err := h.carService.GetCarByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get car")
		return
	}

	respondData(w, http.StatusOK, newCarResponse(c))
}

// UpdateCar полностью заменяет автомобиль
// PUT /api/car/:id
func (h *CarHandler) UpdateCar(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, true)
}

// PatchCar обновляет переданные поля автомобиля
// PATCH /api/car/:id
func (h *CarHandler) PatchCar(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, false)
}

func (h *CarHandler) update(w http.ResponseWriter, r *http.Request, full bool) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid car ID")
		return
	}

	var req CarRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if fields := validateRequest(&req, full); fields != nil {
		respondFieldErrors(w, fields)
		return
	}

	var c *domain.Car
	if full {
		in, err := req.toInput()
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		c, err = h.carService.UpdateCar(r.Context(), id, in)
		if err != nil {
			respondServiceError(w, h.logger, err, "update car")
			return
		}
	} else {
		patch, err := req.toPatch()
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		c, err = h.carService.PatchCar(r.Context(), id, patch)
		if err != nil {
			respondServiceError(w, h.logger, err, "update car")
			return
		}
	}

	respondData(w, http.StatusOK, newCarResponse(c))
}

// DeleteCar удаляет автомобиль без броней
// DELETE /api/car/:id
func (h *CarHandler) DeleteCar(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid car ID")
		return
	}

	if err := h.carService.DeleteCar(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete car")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
