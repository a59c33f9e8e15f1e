package service

import (
	"context"
	"errors"
	"time"

	bookingserrors "roomly/internal/bookings/errors"
	"roomly/internal/bookings/repository"
	"roomly/internal/bookings/validator"
	apperrors "roomly/pkg/errors"
	"roomly/pkg/logger"
	"roomly/pkg/model"
)

type BookingService interface {
	ListBookings(ctx context.Context, roomID string) ([]*model.Booking, error)
	RequestBooking(ctx context.Context, roomID, startRaw, endRaw string) (*model.Booking, error)
	CancelBooking(ctx context.Context, roomID, bookingID string) (*model.BookingDeletionResult, error)
}

type bookingService struct {
	store  repository.BookingStore
	locker *repository.RoomLocker
	log    *logger.Logger
	now    func() time.Time
}

func NewBookingService(store repository.BookingStore, locker *repository.RoomLocker, log *logger.Logger) BookingService {
	return &bookingService{
		store:  store,
		locker: locker,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *bookingService) ListBookings(_ context.Context, roomID string) ([]*model.Booking, error) {
	return s.store.ListByRoom(roomID), nil
}

// RequestBooking applies the booking rules in order: both instants must
// parse, the interval must be strictly ordered, the start must lie in the
// future, and the [start, end) interval must not overlap any existing booking
// in the room. Only then is the booking committed.
func (s *bookingService) RequestBooking(_ context.Context, roomID, startRaw, endRaw string) (*model.Booking, error) {
	start, end, err := validator.ParseInterval(startRaw, endRaw)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrInvalidTime) {
			return nil, apperrors.InvalidTime("Invalid date format")
		}
		return nil, apperrors.Internal("Failed to parse booking interval", err)
	}

	if !start.Before(end) {
		return nil, apperrors.InvalidInterval("Start time must be before end time")
	}

	if !start.After(s.now()) {
		return nil, apperrors.PastBooking("Bookings cannot be in the past")
	}

	// The overlap check and the insert must be atomic per room, or two
	// concurrent requests could both pass the check against a stale snapshot.
	s.locker.Lock(roomID)
	defer s.locker.Unlock(roomID)

	for _, b := range s.store.ListByRoom(roomID) {
		if overlaps(start, end, b.StartTime, b.EndTime) {
			return nil, apperrors.Conflict("Booking overlaps with an existing reservation")
		}
	}

	booking := s.store.Create(roomID, start, end)

	s.log.Info("Booking created",
		"id", booking.ID,
		"room_id", roomID,
		"start_time", booking.StartTime,
		"end_time", booking.EndTime,
	)
	return booking, nil
}

func (s *bookingService) CancelBooking(_ context.Context, roomID, bookingID string) (*model.BookingDeletionResult, error) {
	s.locker.Lock(roomID)
	defer s.locker.Unlock(roomID)

	result, ok := s.store.Delete(roomID, bookingID)
	if !ok {
		return nil, apperrors.NotFound("Booking")
	}

	s.log.Info("Booking cancelled", "id", bookingID, "room_id", roomID)
	return result, nil
}

// overlaps reports whether the half-open intervals [start1, end1) and
// [start2, end2) intersect. Touching endpoints do not overlap.
func overlaps(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && end1.After(start2)
}
