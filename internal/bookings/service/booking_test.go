package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"roomly/internal/bookings/repository"
	apperrors "roomly/pkg/errors"
	"roomly/pkg/logger"
)

func newTestService(t *testing.T) BookingService {
	t.Helper()
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
	return NewBookingService(repository.NewInMemoryBookingStore(), repository.NewRoomLocker(), log)
}

func rejectionCode(t *testing.T, err error) string {
	t.Helper()
	if err == nil {
		t.Fatal("expected a rejection, got nil")
	}
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}
	return appErr.Code
}

func TestRequestBooking_Success(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	issued := time.Now().UTC()

	booking, err := svc.RequestBooking(ctx, "R1", "2999-01-01T10:00:00Z", "2999-01-01T11:00:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if booking.ID == "" {
		t.Error("expected a generated id")
	}
	if booking.RoomID != "R1" {
		t.Errorf("roomID = %q, want R1", booking.RoomID)
	}
	if want := time.Date(2999, 1, 1, 10, 0, 0, 0, time.UTC); !booking.StartTime.Equal(want) {
		t.Errorf("startTime = %v, want %v", booking.StartTime, want)
	}
	if want := time.Date(2999, 1, 1, 11, 0, 0, 0, time.UTC); !booking.EndTime.Equal(want) {
		t.Errorf("endTime = %v, want %v", booking.EndTime, want)
	}
	if booking.CreatedAt.Before(issued) {
		t.Errorf("createdAt %v precedes issue time %v", booking.CreatedAt, issued)
	}

	bookings, err := svc.ListBookings(ctx, "R1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bookings) != 1 || bookings[0].ID != booking.ID {
		t.Errorf("expected the new booking to be listed, got %v", bookings)
	}
}

func TestRequestBooking_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		startRaw string
		endRaw   string
		wantCode string
	}{
		{
			name:     "unparseable start",
			startRaw: "not-a-time",
			endRaw:   "2999-01-01T11:00:00Z",
			wantCode: apperrors.CodeInvalidTime,
		},
		{
			name:     "unparseable end",
			startRaw: "2999-01-01T10:00:00Z",
			endRaw:   "2999-01-32T11:00:00Z",
			wantCode: apperrors.CodeInvalidTime,
		},
		{
			name:     "start equals end",
			startRaw: "2999-01-01T10:00:00Z",
			endRaw:   "2999-01-01T10:00:00Z",
			wantCode: apperrors.CodeInvalidInterval,
		},
		{
			name:     "start after end",
			startRaw: "2999-01-01T12:00:00Z",
			endRaw:   "2999-01-01T11:00:00Z",
			wantCode: apperrors.CodeInvalidInterval,
		},
		{
			name:     "start in the past",
			startRaw: "2000-01-01T00:00:00Z",
			endRaw:   "2999-01-01T11:00:00Z",
			wantCode: apperrors.CodePastBooking,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t)

			_, err := svc.RequestBooking(context.Background(), "R1", tt.startRaw, tt.endRaw)
			if code := rejectionCode(t, err); code != tt.wantCode {
				t.Errorf("code = %s, want %s", code, tt.wantCode)
			}

			bookings, _ := svc.ListBookings(context.Background(), "R1")
			if len(bookings) != 0 {
				t.Errorf("rejected request must not mutate the store, found %d bookings", len(bookings))
			}
		})
	}
}

func TestRequestBooking_StartAtNowRejected(t *testing.T) {
	svc := newTestService(t)
	fixed := time.Date(2999, 1, 1, 10, 0, 0, 0, time.UTC)
	svc.(*bookingService).now = func() time.Time { return fixed }

	_, err := svc.RequestBooking(context.Background(), "R1", "2999-01-01T10:00:00Z", "2999-01-01T11:00:00Z")
	if code := rejectionCode(t, err); code != apperrors.CodePastBooking {
		t.Errorf("code = %s, want %s", code, apperrors.CodePastBooking)
	}
}

func TestRequestBooking_OverlapConflict(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.RequestBooking(ctx, "R1", "2999-01-01T10:00:00Z", "2999-01-01T11:00:00Z"); err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}

	tests := []struct {
		name     string
		startRaw string
		endRaw   string
	}{
		{"straddles the end", "2999-01-01T10:30:00Z", "2999-01-01T11:30:00Z"},
		{"straddles the start", "2999-01-01T09:30:00Z", "2999-01-01T10:30:00Z"},
		{"fully inside", "2999-01-01T10:15:00Z", "2999-01-01T10:45:00Z"},
		{"fully covers", "2999-01-01T09:00:00Z", "2999-01-01T12:00:00Z"},
		{"identical interval", "2999-01-01T10:00:00Z", "2999-01-01T11:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RequestBooking(ctx, "R1", tt.startRaw, tt.endRaw)
			if code := rejectionCode(t, err); code != apperrors.CodeBookingConflict {
				t.Errorf("code = %s, want %s", code, apperrors.CodeBookingConflict)
			}
		})
	}
}

func TestRequestBooking_TouchingEndpointsDoNotConflict(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.RequestBooking(ctx, "R1", "2999-01-01T10:00:00Z", "2999-01-01T11:00:00Z"); err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}

	// Starts exactly when the seed ends; half-open semantics admit it.
	if _, err := svc.RequestBooking(ctx, "R1", "2999-01-01T11:00:00Z", "2999-01-01T12:00:00Z"); err != nil {
		t.Fatalf("touching booking rejected: %v", err)
	}

	// Ends exactly when the seed starts.
	if _, err := svc.RequestBooking(ctx, "R1", "2999-01-01T09:00:00Z", "2999-01-01T10:00:00Z"); err != nil {
		t.Fatalf("touching booking rejected: %v", err)
	}
}

func TestRequestBooking_OverlapIsPerRoom(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.RequestBooking(ctx, "R1", "2999-01-01T10:00:00Z", "2999-01-01T11:00:00Z"); err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}
	if _, err := svc.RequestBooking(ctx, "R2", "2999-01-01T10:00:00Z", "2999-01-01T11:00:00Z"); err != nil {
		t.Fatalf("same interval in another room rejected: %v", err)
	}
}

func TestCancelBooking(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	booking, err := svc.RequestBooking(ctx, "R1", "2999-01-01T10:00:00Z", "2999-01-01T11:00:00Z")
	if err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}

	result, err := svc.CancelBooking(ctx, "R1", booking.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ID != booking.ID {
		t.Errorf("result id = %q, want %q", result.ID, booking.ID)
	}
	if result.DeletedAt.IsZero() {
		t.Error("expected a deletion timestamp")
	}

	bookings, _ := svc.ListBookings(ctx, "R1")
	if len(bookings) != 0 {
		t.Errorf("expected no bookings after cancellation, got %d", len(bookings))
	}
}

func TestCancelBooking_NotFound(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	booking, err := svc.RequestBooking(ctx, "R1", "2999-01-01T10:00:00Z", "2999-01-01T11:00:00Z")
	if err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}

	tests := []struct {
		name      string
		roomID    string
		bookingID string
	}{
		{"unknown booking id", "R1", "missing-id"},
		{"wrong room", "R2", booking.ID},
		{"unknown room", "nowhere", "missing-id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CancelBooking(ctx, tt.roomID, tt.bookingID)
			if code := rejectionCode(t, err); code != apperrors.CodeNotFound {
				t.Errorf("code = %s, want %s", code, apperrors.CodeNotFound)
			}
		})
	}

	bookings, _ := svc.ListBookings(ctx, "R1")
	if len(bookings) != 1 {
		t.Errorf("failed cancellations must not mutate the store, got %d bookings", len(bookings))
	}
}

func TestRequestBooking_ConcurrentSameSlot(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	const attempts = 20
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RequestBooking(ctx, "R1", "2999-01-01T10:00:00Z", "2999-01-01T11:00:00Z")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	successes := 0
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		if code := rejectionCode(t, err); code != apperrors.CodeBookingConflict {
			t.Errorf("unexpected rejection code %s", code)
		}
	}

	if successes != 1 {
		t.Errorf("expected exactly one winner for the slot, got %d", successes)
	}

	bookings, _ := svc.ListBookings(ctx, "R1")
	if len(bookings) != 1 {
		t.Errorf("expected one committed booking, got %d", len(bookings))
	}
}
