package validator

import (
	"errors"
	"testing"
	"time"

	bookingserrors "roomly/internal/bookings/errors"
	"roomly/pkg/logger"
	"roomly/pkg/model"
)

func newTestValidator() *BookingValidator {
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
	return NewBookingValidator(log)
}

func TestValidateCreate(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name      string
		req       *model.CreateBookingRequest
		wantError bool
	}{
		{
			name: "valid instants",
			req: &model.CreateBookingRequest{
				StartTime: "2999-01-01T10:00:00Z",
				EndTime:   "2999-01-01T11:00:00Z",
			},
			wantError: false,
		},
		{
			name: "fractional seconds allowed",
			req: &model.CreateBookingRequest{
				StartTime: "2999-01-01T10:00:00.250Z",
				EndTime:   "2999-01-01T11:00:00.5Z",
			},
			wantError: false,
		},
		{
			name: "missing start",
			req: &model.CreateBookingRequest{
				EndTime: "2999-01-01T11:00:00Z",
			},
			wantError: true,
		},
		{
			name: "missing end",
			req: &model.CreateBookingRequest{
				StartTime: "2999-01-01T10:00:00Z",
			},
			wantError: true,
		},
		{
			name: "offset instead of Z",
			req: &model.CreateBookingRequest{
				StartTime: "2999-01-01T10:00:00+02:00",
				EndTime:   "2999-01-01T11:00:00Z",
			},
			wantError: true,
		},
		{
			name: "no timezone designator",
			req: &model.CreateBookingRequest{
				StartTime: "2999-01-01T10:00:00",
				EndTime:   "2999-01-01T11:00:00Z",
			},
			wantError: true,
		},
		{
			name: "date only",
			req: &model.CreateBookingRequest{
				StartTime: "2999-01-01",
				EndTime:   "2999-01-01T11:00:00Z",
			},
			wantError: true,
		},
		{
			name: "not a date at all",
			req: &model.CreateBookingRequest{
				StartTime: "next tuesday",
				EndTime:   "2999-01-01T11:00:00Z",
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateCreate(tt.req)
			if (err != nil) != tt.wantError {
				t.Errorf("ValidateCreate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestValidateCreate_ReportsFields(t *testing.T) {
	v := newTestValidator()

	err := v.ValidateCreate(&model.CreateBookingRequest{
		StartTime: "garbage",
		EndTime:   "",
	})
	if err == nil {
		t.Fatal("expected validation error")
	}

	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	if len(verrs) != 2 {
		t.Errorf("expected 2 field errors, got %d: %v", len(verrs), verrs)
	}
}

func TestParseInterval(t *testing.T) {
	start, end, err := ParseInterval("2999-01-01T10:00:00Z", "2999-01-01T11:00:00.5Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantStart := time.Date(2999, 1, 1, 10, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", start, wantStart)
	}
	wantEnd := time.Date(2999, 1, 1, 11, 0, 0, 500_000_000, time.UTC)
	if !end.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", end, wantEnd)
	}
	if start.Location() != time.UTC {
		t.Errorf("start location = %v, want UTC", start.Location())
	}
}

func TestParseInterval_InvalidValues(t *testing.T) {
	tests := []struct {
		name     string
		startRaw string
		endRaw   string
	}{
		{"garbage start", "not-a-time", "2999-01-01T11:00:00Z"},
		{"garbage end", "2999-01-01T10:00:00Z", "not-a-time"},
		{"offset form", "2999-01-01T10:00:00+00:00", "2999-01-01T11:00:00Z"},
		{"impossible date", "2999-13-45T10:00:00Z", "2999-01-01T11:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseInterval(tt.startRaw, tt.endRaw)
			if !errors.Is(err, bookingserrors.ErrInvalidTime) {
				t.Errorf("ParseInterval() error = %v, want ErrInvalidTime", err)
			}
		})
	}
}
