package main

import (
	_ "roomly/docs"
	"roomly/internal/bookings/handler"
	"roomly/internal/bookings/repository"
	"roomly/internal/bookings/service"
	"roomly/internal/bookings/validator"
	"roomly/pkg/app"
	"roomly/pkg/config"
)

const ServiceName = "rooms"

// @title Roomly API
// @version 1.0
// @description Meeting room booking service: list, create and cancel bookings per room.
// @BasePath /
func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting Rooms service")

	bookingService, bookingValidator := initServices(cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewHealthHandler(cfg.Log),
		handler.NewBookingHandler(bookingService, bookingValidator, cfg.Log),
	)
	serverApp.Run()
}

func initServices(cfg *config.Config) (service.BookingService, *validator.BookingValidator) {
	bookingValidator := validator.NewBookingValidator(cfg.Log)
	store := repository.NewInMemoryBookingStore()
	locker := repository.NewRoomLocker()
	bookingService := service.NewBookingService(store, locker, cfg.Log)

	cfg.Log.Info("Booking service initialized")
	return bookingService, bookingValidator
}
