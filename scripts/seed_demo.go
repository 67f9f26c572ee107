package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/frontandrew/carrent/internal/domain"
	"github.com/frontandrew/carrent/internal/pkg/config"
	"github.com/frontandrew/carrent/internal/pkg/database"
	"github.com/frontandrew/carrent/internal/pkg/logger"
	"github.com/frontandrew/carrent/internal/repository/postgres"
	"github.com/frontandrew/carrent/internal/usecase/car"
	"github.com/frontandrew/carrent/internal/usecase/reservation"
)

// Заполняет БД демонстрационными данными и проверяет правила бронирования
// на живой базе: go run ./scripts/seed_demo.go
func main() {
	fmt.Println("=========================================")
	fmt.Println("Car rental demo data")
	fmt.Println("=========================================")
	fmt.Println()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := database.Connect(ctx, &cfg.Database)
	if err != nil {
		fmt.Printf("❌ Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close(db)

	applied, err := database.Migrate(ctx, db)
	if err != nil {
		fmt.Printf("❌ Failed to apply migrations: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ Migrations: %v\n", applied)
	fmt.Println()

	log := logger.NewNoop()
	carRepo := postgres.NewCarRepository(db)
	reservationRepo := postgres.NewReservationRepository(db)
	carService := car.NewService(carRepo, reservationRepo, log)
	reservationService := reservation.NewService(carRepo, reservationRepo, nil, log)

	// Step 1: автомобиль
	fmt.Println("Step 1: car")
	opel, err := carService.CreateCar(ctx, car.CarInput{
		Brand:               "Opel",
		Model:               "Astra",
		RegistrationNumber:  "NO9580",
		NextExaminationDate: time.Date(2021, 3, 19, 0, 0, 0, 0, time.UTC),
	})
	if errors.Is(err, domain.ErrCarAlreadyExists) {
		opel, err = carRepo.GetByRegistrationNumber(ctx, "NO9580")
	}
	if err != nil {
		fmt.Printf("❌ Failed to create car: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ %s %s %s (id=%s)\n", opel.Brand, opel.Model, opel.RegistrationNumber, opel.ID)
	fmt.Println()

	// Step 2: брони, первая должна пройти, остальные - получить отказ
	fmt.Println("Step 2: reservations")
	attempts := []struct {
		person string
		from   string
		to     string
	}{
		{"Marcin", "2021-01-10T03:00:00Z", "2021-01-20T00:00:00Z"},
		{"Ewelina", "2021-01-11T03:00Z", "2021-01-23T00:00Z"},
		{"Ewelina", "2021-02-24T03:00:00Z", "2021-03-23T00:00:00Z"},
		{"Ewelina", "2021-01-24T03:00:00Z", "2021-01-23T00:00:00Z"},
	}

	for _, a := range attempts {
		from, err := domain.ParseDateTime(a.from)
		if err != nil {
			fmt.Printf("❌ %s: %v\n", a.person, err)
			continue
		}
		to, err := domain.ParseDateTime(a.to)
		if err != nil {
			fmt.Printf("❌ %s: %v\n", a.person, err)
			continue
		}

		r, err := reservationService.CreateReservation(ctx, opel.ID, reservation.ReservationInput{
			BookingPerson: a.person,
			DateFrom:      from,
			DateTo:        to,
		})
		if err != nil {
			fmt.Printf("⛔ %s %s - %s: %v\n", a.person, a.from, a.to, err)
			continue
		}
		fmt.Printf("✅ %s %s - %s (id=%s)\n", r.BookingPerson, a.from, a.to, r.ID)
	}
	fmt.Println()

	// Step 3: удаление автомобиля с бронями запрещено
	fmt.Println("Step 3: delete car with reservations")
	if err := carService.DeleteCar(ctx, opel.ID); err != nil {
		fmt.Printf("✅ Rejected as expected: %v\n", err)
	} else {
		fmt.Println("❌ Car with reservations was deleted")
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("=========================================")
	fmt.Println("Done")
	fmt.Println("=========================================")
}
