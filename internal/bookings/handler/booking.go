package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"roomly/internal/bookings/service"
	"roomly/internal/bookings/validator"
	apperrors "roomly/pkg/errors"
	"roomly/pkg/httputil"
	"roomly/pkg/logger"
	"roomly/pkg/model"
)

type BookingHandler struct {
	service   service.BookingService
	validator *validator.BookingValidator
	log       *logger.Logger
}

func NewBookingHandler(service service.BookingService, v *validator.BookingValidator, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service:   service,
		validator: v,
		log:       log,
	}
}

// List godoc
// @Summary List bookings for a room
// @Description Returns all bookings for the room in creation order. Unknown rooms yield an empty array.
// @Tags bookings
// @Produce json
// @Param roomId path string true "Room ID"
// @Success 200 {array} model.Booking
// @Router /rooms/{roomId}/bookings [get]
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	roomID := ps.ByName("roomId")

	bookings, err := h.service.ListBookings(r.Context(), roomID)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write response", "handler", "List", "error", err)
	}
}

// Create godoc
// @Summary Create a booking
// @Description Books the room for [startTime, endTime). Touching endpoints do not conflict.
// @Tags bookings
// @Accept json
// @Produce json
// @Param roomId path string true "Room ID"
// @Param booking body model.CreateBookingRequest true "Booking interval (ISO 8601 UTC, trailing Z required)"
// @Success 201 {object} model.Booking
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_ERROR, INVALID_TIME, INVALID_INTERVAL or PAST_BOOKING"
// @Failure 409 {object} errors.ErrorResponse "BOOKING_CONFLICT"
// @Router /rooms/{roomId}/bookings [post]
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	roomID := ps.ByName("roomId")

	var req model.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Create", apperrors.Validation("Invalid request body", nil))
		return
	}

	if err := h.validator.ValidateCreate(&req); err != nil {
		h.log.Warn("Booking request failed schema validation", "room_id", roomID, "error", err)
		h.writeError(w, "Create", apperrors.Validation("Invalid request body", map[string]any{
			"error": err.Error(),
		}))
		return
	}

	booking, err := h.service.RequestBooking(r.Context(), roomID, req.StartTime, req.EndTime)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.log.Error("failed to write response", "handler", "Create", "error", err)
	}
}

// Delete godoc
// @Summary Cancel a booking
// @Tags bookings
// @Produce json
// @Param roomId path string true "Room ID"
// @Param bookingId path string true "Booking ID"
// @Success 200 {object} model.BookingDeletionResult
// @Failure 404 {object} errors.ErrorResponse "NOT_FOUND"
// @Router /rooms/{roomId}/bookings/{bookingId} [delete]
func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	roomID := ps.ByName("roomId")
	bookingID := ps.ByName("bookingId")

	result, err := h.service.CancelBooking(r.Context(), roomID, bookingID)
	if err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write response", "handler", "Delete", "error", err)
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/rooms/:roomId/bookings", h.List)
	router.POST("/rooms/:roomId/bookings", h.Create)
	router.DELETE("/rooms/:roomId/bookings/:bookingId", h.Delete)
}
