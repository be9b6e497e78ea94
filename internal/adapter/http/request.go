// Package http provides the HTTP transport for the flight search API.
// It handles request parsing, validation, response formatting, and error
// mapping.
package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator for transport DTOs. Field names in
// errors come from json tags so messages match the wire format.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// SearchFlightsRequest is the request body for flight search. A journey
// is given either through the flat origin/destination/departureDate
// fields (plus returnDate for a round trip) or through an explicit
// slices list for multi-city itineraries, never both.
type SearchFlightsRequest struct {
	// Origin is the IATA code of the departure airport (e.g., "MEX")
	Origin string `json:"origin,omitempty" validate:"omitempty,alpha,len=3"`

	// Destination is the IATA code of the arrival airport (e.g., "CUN")
	Destination string `json:"destination,omitempty" validate:"omitempty,alpha,len=3"`

	// DepartureDate is the outbound date in YYYY-MM-DD format
	DepartureDate string `json:"departureDate,omitempty" validate:"omitempty,datetime=2006-01-02"`

	// ReturnDate requests a round trip when set (YYYY-MM-DD format)
	ReturnDate string `json:"returnDate,omitempty" validate:"omitempty,datetime=2006-01-02"`

	// Slices lists the journey legs explicitly for multi-city searches
	Slices []SearchSliceDTO `json:"slices,omitempty" validate:"omitempty,max=6,dive"`

	// Passengers is the number of travelers (1-9, default 1)
	Passengers int `json:"passengers,omitempty" validate:"omitempty,min=1,max=9"`

	// CabinClass is the requested cabin class (default economy)
	CabinClass string `json:"cabinClass,omitempty" validate:"omitempty,oneof=economy premium_economy business first"`

	// PreferredAirline is an optional IATA airline designator (e.g., "AM")
	PreferredAirline string `json:"preferredAirline,omitempty" validate:"omitempty,alphanum,len=2"`

	// TimeOfDay narrows first-slice departures to a local time window
	TimeOfDay string `json:"timeOfDay,omitempty" validate:"omitempty,oneof=any early_morning morning afternoon evening night"`
}

// SearchSliceDTO is one leg of a multi-city journey.
type SearchSliceDTO struct {
	// Origin is the IATA code of the departure airport
	Origin string `json:"origin" validate:"required,alpha,len=3"`

	// Destination is the IATA code of the arrival airport
	Destination string `json:"destination" validate:"required,alpha,len=3"`

	// DepartureDate is the desired departure date in YYYY-MM-DD format
	DepartureDate string `json:"departureDate" validate:"required,datetime=2006-01-02"`
}

// ValidationError represents a field-level validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors holds multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	return v.Errors[0].Message
}

// Add adds a validation error.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ToMap converts validation errors to a map for API response.
func (v *ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		result[e.Field] = e.Message
	}
	return result
}

// Normalize canonicalizes codes before validation: airport and airline
// codes to uppercase, cabin class and time of day to lowercase.
func (r *SearchFlightsRequest) Normalize() {
	r.Origin = strings.ToUpper(strings.TrimSpace(r.Origin))
	r.Destination = strings.ToUpper(strings.TrimSpace(r.Destination))
	r.DepartureDate = strings.TrimSpace(r.DepartureDate)
	r.ReturnDate = strings.TrimSpace(r.ReturnDate)
	r.PreferredAirline = strings.ToUpper(strings.TrimSpace(r.PreferredAirline))
	r.CabinClass = strings.ToLower(strings.TrimSpace(r.CabinClass))
	r.TimeOfDay = strings.ToLower(strings.TrimSpace(r.TimeOfDay))

	for i := range r.Slices {
		r.Slices[i].Origin = strings.ToUpper(strings.TrimSpace(r.Slices[i].Origin))
		r.Slices[i].Destination = strings.ToUpper(strings.TrimSpace(r.Slices[i].Destination))
		r.Slices[i].DepartureDate = strings.TrimSpace(r.Slices[i].DepartureDate)
	}
}

// Validate normalizes the request and returns any validation errors.
func (r *SearchFlightsRequest) Validate() error {
	r.Normalize()

	errs := &ValidationErrors{}

	r.validateShape(errs)
	r.validateTags(errs)
	r.validateRoutes(errs)

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// validateShape enforces that exactly one journey form is used.
func (r *SearchFlightsRequest) validateShape(errs *ValidationErrors) {
	if len(r.Slices) > 0 {
		if r.Origin != "" || r.Destination != "" || r.DepartureDate != "" || r.ReturnDate != "" {
			errs.Add("slices", "slices cannot be combined with origin, destination, departureDate or returnDate")
		}
		return
	}

	if r.Origin == "" {
		errs.Add("origin", "origin is required")
	}
	if r.Destination == "" {
		errs.Add("destination", "destination is required")
	}
	if r.DepartureDate == "" {
		errs.Add("departureDate", "departureDate is required")
	}
}

// validateTags runs the struct tag rules and collects per-field messages.
func (r *SearchFlightsRequest) validateTags(errs *ValidationErrors) {
	err := validate.Struct(r)
	if err == nil {
		return
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		errs.Add("request", err.Error())
		return
	}

	for _, fe := range fieldErrs {
		errs.Add(fieldPath(fe), tagMessage(fe))
	}
}

// validateRoutes checks route-level rules the tags cannot express.
func (r *SearchFlightsRequest) validateRoutes(errs *ValidationErrors) {
	if len(r.Slices) == 0 {
		if r.Origin != "" && r.Origin == r.Destination {
			errs.Add("destination", "origin and destination must be different")
		}
		if r.DepartureDate != "" && r.ReturnDate != "" && r.ReturnDate < r.DepartureDate {
			errs.Add("returnDate", "returnDate must not be before departureDate")
		}
		return
	}

	for i, sl := range r.Slices {
		if sl.Origin != "" && sl.Origin == sl.Destination {
			errs.Add(fmt.Sprintf("slices[%d].destination", i), "origin and destination must be different")
		}
	}
}

// fieldPath strips the root struct name from the validator's namespace,
// leaving a json-shaped path like "slices[0].origin".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

// tagMessage renders a readable message for a failed validation tag.
func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", fe.Field(), fe.Param())
	case "alpha":
		return fe.Field() + " must contain only letters"
	case "alphanum":
		return fe.Field() + " must contain only letters and digits"
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "datetime":
		return fe.Field() + " must be a valid date in YYYY-MM-DD format"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s failed validation on %s", fe.Field(), fe.Tag())
	}
}
