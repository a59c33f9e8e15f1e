package repository

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"roomly/pkg/model"
)

// BookingStore is the authoritative in-memory keeper of bookings partitioned
// by room identifier. It performs no validation; callers are expected to have
// applied the business rules before mutating.
type BookingStore interface {
	ListByRoom(roomID string) []*model.Booking
	Create(roomID string, startTime, endTime time.Time) *model.Booking
	Delete(roomID, bookingID string) (*model.BookingDeletionResult, bool)
}

type inMemoryBookingStore struct {
	mu             sync.RWMutex
	bookingsByRoom map[string][]*model.Booking
	now            func() time.Time
}

func NewInMemoryBookingStore() BookingStore {
	return &inMemoryBookingStore{
		bookingsByRoom: make(map[string][]*model.Booking),
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// ListByRoom returns the room's bookings in insertion order. Unknown rooms
// yield an empty slice, never an error. The returned slice is a copy so
// callers cannot observe later mutations.
func (s *inMemoryBookingStore) ListByRoom(roomID string) []*model.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bookings := s.bookingsByRoom[roomID]
	out := make([]*model.Booking, len(bookings))
	copy(out, bookings)
	return out
}

// Create allocates a new id, stamps CreatedAt and appends the booking to the
// room's collection, creating the collection on first use.
func (s *inMemoryBookingStore) Create(roomID string, startTime, endTime time.Time) *model.Booking {
	booking := &model.Booking{
		ID:        uuid.NewString(),
		RoomID:    roomID,
		StartTime: startTime.UTC(),
		EndTime:   endTime.UTC(),
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	s.bookingsByRoom[roomID] = append(s.bookingsByRoom[roomID], booking)
	s.mu.Unlock()

	return booking
}

// Delete removes the booking if it exists within the given room. The boolean
// result distinguishes "not found" from success; it is never an error.
// A room left with no bookings is removed from the map entirely.
func (s *inMemoryBookingStore) Delete(roomID, bookingID string) (*model.BookingDeletionResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, ok := s.bookingsByRoom[roomID]
	if !ok {
		return nil, false
	}

	for i, b := range bookings {
		if b.ID != bookingID {
			continue
		}

		remaining := append(bookings[:i:i], bookings[i+1:]...)
		if len(remaining) == 0 {
			delete(s.bookingsByRoom, roomID)
		} else {
			s.bookingsByRoom[roomID] = remaining
		}

		return &model.BookingDeletionResult{
			ID:        bookingID,
			DeletedAt: s.now(),
		}, true
	}

	return nil, false
}
