package cached

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/frontandrew/carrent/internal/domain"
	"github.com/frontandrew/carrent/internal/pkg/logger"
	"github.com/frontandrew/carrent/internal/pkg/redis"
	"github.com/frontandrew/carrent/internal/repository"
	"github.com/google/uuid"
)

const carCachePrefix = "car:"

// Cache - минимальный набор операций кэша, который нужен репозиторию
// *redis.Client удовлетворяет этому интерфейсу
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// CarRepository добавляет кэширование автомобилей по ID.
// Автомобиль читается при каждой проверке брони (нужна дата техосмотра),
// поэтому GetByID идет через кэш, а изменения его инвалидируют.
type CarRepository struct {
	repo   repository.CarRepository
	cache  Cache
	ttl    time.Duration
	logger logger.Logger
}

var _ repository.CarRepository = (*CarRepository)(nil)

// NewCarRepository создает новый кэшируемый car repository
func NewCarRepository(repo repository.CarRepository, cache Cache, ttl time.Duration, log logger.Logger) *CarRepository {
	return &CarRepository{
		repo:   repo,
		cache:  cache,
		ttl:    ttl,
		logger: log,
	}
}

func carCacheKey(id uuid.UUID) string {
	return carCachePrefix + id.String()
}

// GetByID возвращает автомобиль по ID (с кэшированием)
func (r *CarRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Car, error) {
	key := carCacheKey(id)

	// 1. Проверяем кэш
	raw, err := r.cache.Get(ctx, key)
	if err == nil {
		car := &domain.Car{}
		if jsonErr := json.Unmarshal(raw, car); jsonErr == nil {
			return car, nil
		}
		// Испорченная запись - удаляем и идем в БД
		r.invalidate(ctx, id)
	} else if !errors.Is(err, redis.ErrCacheMiss) {
		// Ошибка кэша не должна ломать запрос
		r.logger.Warn("Car cache read failed", map[string]interface{}{
			"car_id": id,
			"error":  err.Error(),
		})
	}

	// 2. Cache miss - идем в БД
	car, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3. Сохраняем результат в кэш
	if raw, err := json.Marshal(car); err == nil {
		if err := r.cache.Set(ctx, key, raw, r.ttl); err != nil {
			r.logger.Warn("Car cache write failed", map[string]interface{}{
				"car_id": id,
				"error":  err.Error(),
			})
		}
	}

	return car, nil
}

// Create создает автомобиль (кэш заполняется при первом чтении)
func (r *CarRepository) Create(ctx context.Context, car *domain.Car) error {
	return r.repo.Create(ctx, car)
}

// GetByRegistrationNumber не кэшируется - используется только при проверке уникальности
func (r *CarRepository) GetByRegistrationNumber(ctx context.Context, number string) (*domain.Car, error) {
	return r.repo.GetByRegistrationNumber(ctx, number)
}

// List не кэшируется
func (r *CarRepository) List(ctx context.Context) ([]*domain.Car, error) {
	return r.repo.List(ctx)
}

// Update обновляет автомобиль и инвалидирует кэш
func (r *CarRepository) Update(ctx context.Context, car *domain.Car) error {
	if err := r.repo.Update(ctx, car); err != nil {
		return err
	}

	r.invalidate(ctx, car.ID)
	return nil
}

// Delete удаляет автомобиль и инвалидирует кэш
func (r *CarRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, id); err != nil {
		return err
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *CarRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Del(ctx, carCacheKey(id)); err != nil {
		r.logger.Warn("Car cache invalidation failed", map[string]interface{}{
			"car_id": id,
			"error":  err.Error(),
		})
	}
}
