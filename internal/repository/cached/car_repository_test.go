package cached

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/frontandrew/carrent/internal/domain"
	"github.com/frontandrew/carrent/internal/pkg/logger"
	"github.com/frontandrew/carrent/internal/pkg/redis"
	"github.com/frontandrew/carrent/internal/repository/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeCache - in-memory кэш для тестов
type fakeCache struct {
	data    map[string][]byte
	getErr  error
	delErr  error
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	v, ok := c.data[key]
	if !ok {
		return nil, redis.ErrCacheMiss
	}
	return v, nil
}

func (c *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.data[key] = value
	return nil
}

func (c *fakeCache) Del(_ context.Context, keys ...string) error {
	if c.delErr != nil {
		return c.delErr
	}
	for _, key := range keys {
		delete(c.data, key)
		c.deleted = append(c.deleted, key)
	}
	return nil
}

// warnRecorder запоминает сообщения уровня warn
type warnRecorder struct {
	logger.Logger
	warnings []string
}

func (l *warnRecorder) Warn(msg string, _ ...map[string]interface{}) {
	l.warnings = append(l.warnings, msg)
}

func testCar() *domain.Car {
	return &domain.Car{
		ID:                  uuid.New(),
		Brand:               "Opel",
		Model:               "Astra",
		RegistrationNumber:  "NO9580",
		NextExaminationDate: time.Date(2021, 3, 19, 0, 0, 0, 0, time.UTC),
	}
}

func TestCarRepository_GetByID_ReadThrough(t *testing.T) {
	ctx := context.Background()
	car := testCar()

	repo := new(mocks.CarRepository)
	repo.On("GetByID", mock.Anything, car.ID).Return(car, nil).Once()

	cache := newFakeCache()
	cached := NewCarRepository(repo, cache, time.Minute, logger.NewNoop())

	first, err := cached.GetByID(ctx, car.ID)
	require.NoError(t, err)
	assert.Equal(t, car.RegistrationNumber, first.RegistrationNumber)
	assert.Contains(t, cache.data, "car:"+car.ID.String())

	// Второй вызов обслуживается кэшем, репозиторий больше не вызывается
	second, err := cached.GetByID(ctx, car.ID)
	require.NoError(t, err)
	assert.Equal(t, car.ID, second.ID)
	assert.True(t, car.NextExaminationDate.Equal(second.NextExaminationDate))

	repo.AssertExpectations(t)
}

func TestCarRepository_GetByID_NotFoundIsNotCached(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	repo := new(mocks.CarRepository)
	repo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrCarNotFound).Twice()

	cache := newFakeCache()
	cached := NewCarRepository(repo, cache, time.Minute, logger.NewNoop())

	for i := 0; i < 2; i++ {
		_, err := cached.GetByID(ctx, id)
		assert.ErrorIs(t, err, domain.ErrCarNotFound)
	}
	assert.Empty(t, cache.data)

	repo.AssertExpectations(t)
}

func TestCarRepository_GetByID_CacheFailureFallsBackToDB(t *testing.T) {
	ctx := context.Background()
	car := testCar()

	repo := new(mocks.CarRepository)
	repo.On("GetByID", mock.Anything, car.ID).Return(car, nil)

	cache := newFakeCache()
	cache.getErr = errors.New("connection refused")
	cached := NewCarRepository(repo, cache, time.Minute, logger.NewNoop())

	got, err := cached.GetByID(ctx, car.ID)
	require.NoError(t, err)
	assert.Equal(t, car.ID, got.ID)
}

func TestCarRepository_InvalidatesOnWrite(t *testing.T) {
	ctx := context.Background()
	car := testCar()
	key := "car:" + car.ID.String()

	repo := new(mocks.CarRepository)
	repo.On("Update", mock.Anything, car).Return(nil)
	repo.On("Delete", mock.Anything, car.ID).Return(nil)

	cache := newFakeCache()
	cache.data[key] = []byte(`{}`)
	cached := NewCarRepository(repo, cache, time.Minute, logger.NewNoop())

	require.NoError(t, cached.Update(ctx, car))
	assert.NotContains(t, cache.data, key)

	cache.data[key] = []byte(`{}`)
	require.NoError(t, cached.Delete(ctx, car.ID))
	assert.NotContains(t, cache.data, key)
	assert.Equal(t, []string{key, key}, cache.deleted)
}

func TestCarRepository_DeleteConflictKeepsCache(t *testing.T) {
	ctx := context.Background()
	car := testCar()
	key := "car:" + car.ID.String()

	repo := new(mocks.CarRepository)
	repo.On("Delete", mock.Anything, car.ID).Return(domain.ErrCarHasReservations)

	cache := newFakeCache()
	cache.data[key] = []byte(`{}`)
	cached := NewCarRepository(repo, cache, time.Minute, logger.NewNoop())

	err := cached.Delete(ctx, car.ID)
	assert.ErrorIs(t, err, domain.ErrCarHasReservations)
	assert.Contains(t, cache.data, key)
}

func TestCarRepository_GetByID_CorruptedEntry(t *testing.T) {
	ctx := context.Background()
	car := testCar()
	key := "car:" + car.ID.String()

	t.Run("запись удаляется и читается из БД", func(t *testing.T) {
		repo := new(mocks.CarRepository)
		repo.On("GetByID", mock.Anything, car.ID).Return(car, nil).Once()

		cache := newFakeCache()
		cache.data[key] = []byte("not json")
		cached := NewCarRepository(repo, cache, time.Minute, logger.NewNoop())

		got, err := cached.GetByID(ctx, car.ID)
		require.NoError(t, err)
		assert.Equal(t, car.ID, got.ID)
		assert.Equal(t, []string{key}, cache.deleted)
		repo.AssertExpectations(t)
	})

	t.Run("ошибка удаления пишется в лог", func(t *testing.T) {
		repo := new(mocks.CarRepository)
		repo.On("GetByID", mock.Anything, car.ID).Return(car, nil).Once()

		cache := newFakeCache()
		cache.data[key] = []byte("not json")
		cache.delErr = errors.New("connection reset")
		log := &warnRecorder{Logger: logger.NewNoop()}
		cached := NewCarRepository(repo, cache, time.Minute, log)

		got, err := cached.GetByID(ctx, car.ID)
		require.NoError(t, err)
		assert.Equal(t, car.ID, got.ID)
		assert.Contains(t, log.warnings, "Car cache invalidation failed")
	})
}
