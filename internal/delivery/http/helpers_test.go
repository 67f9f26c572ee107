package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/frontandrew/carrent/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// CreateTestCar создает тестовый автомобиль
func CreateTestCar(id uuid.UUID) *domain.Car {
	return &domain.Car{
		ID:                  id,
		Brand:               "Opel",
		Model:               "Astra",
		RegistrationNumber:  "NO9580",
		NextExaminationDate: time.Date(2021, 3, 19, 0, 0, 0, 0, time.UTC),
	}
}

// CreateTestReservation создает тестовую бронь
func CreateTestReservation(id, carID uuid.UUID) *domain.Reservation {
	return &domain.Reservation{
		ID:            id,
		BookingPerson: "Marcin",
		DateFrom:      time.Date(2021, 1, 10, 3, 0, 0, 0, time.UTC),
		DateTo:        time.Date(2021, 1, 20, 0, 0, 0, 0, time.UTC),
		CarID:         carID,
	}
}

// newRequest собирает запрос с параметрами маршрута chi
func newRequest(t *testing.T, method, target string, body interface{}, params map[string]string) *http.Request {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")

	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// decodeResponse разбирает тело ответа в map
func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &response)
	return response
}

// AssertSuccess проверяет успешный ответ API
func AssertSuccess(t *testing.T, response map[string]interface{}) {
	t.Helper()
	success, ok := response["success"].(bool)
	if !ok || !success {
		t.Errorf("Expected success=true, got %v", response)
	}
}

// AssertError проверяет ошибочный ответ API
func AssertError(t *testing.T, response map[string]interface{}) {
	t.Helper()
	success, ok := response["success"].(bool)
	if !ok || success {
		t.Errorf("Expected success=false, got %v", response)
	}
}
