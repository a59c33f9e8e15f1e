package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	bookingserrors "roomly/internal/bookings/errors"
	"roomly/pkg/logger"
	"roomly/pkg/model"
)

// utcDateTimeRegex accepts ISO 8601 UTC instants only: fractional seconds are
// optional, the trailing Z is mandatory.
var utcDateTimeRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?Z$`)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type BookingValidator struct {
	validate *validator.Validate
	log      *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	v := validator.New()

	if err := v.RegisterValidation("utcdatetime", validateUTCDateTime); err != nil {
		log.Fatal("Failed to register 'utcdatetime' validator", "error", err)
	}

	return &BookingValidator{
		validate: v,
		log:      log,
	}
}

func validateUTCDateTime(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return utcDateTimeRegex.MatchString(value)
}

// ValidateCreate checks the structural shape of a create request before any
// business rule runs. Violations surface field by field.
func (v *BookingValidator) ValidateCreate(req *model.CreateBookingRequest) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

// ParseInterval is the defensive fallback contract for direct callers that
// bypass the schema layer: both raw values must be well-formed UTC instants.
func ParseInterval(startRaw, endRaw string) (time.Time, time.Time, error) {
	start, err := parseUTCDateTime(startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseUTCDateTime(endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func parseUTCDateTime(raw string) (time.Time, error) {
	if !utcDateTimeRegex.MatchString(raw) {
		return time.Time{}, fmt.Errorf("%w: %q", bookingserrors.ErrInvalidTime, raw)
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", bookingserrors.ErrInvalidTime, raw)
	}
	return t.UTC(), nil
}

func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "utcdatetime":
			message = fmt.Sprintf("%s must be an ISO 8601 UTC date-time with a trailing Z", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
