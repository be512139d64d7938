package client

import (
	"strings"
	"time"

	"github.com/gestipresence/presence-backend-go/internal/pkg/validator"
)

type CreateClientRequest struct {
	Name          string `json:"name"`
	Service       string `json:"service"`
	Details       string `json:"details"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	ArrivalDate   string `json:"arrival_date"`   // DD/MM/YYYY
	DepartureDate string `json:"departure_date"` // DD/MM/YYYY
	Status        string `json:"status"`

	Arrival   *time.Time `json:"-"`
	Departure *time.Time `json:"-"`
}

func (r *CreateClientRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if !validator.IsInSlice(r.Service, Services) {
		errs = append(errs, validator.ValidationError{
			Field:   "service",
			Message: "service must be one of: " + strings.Join(Services, ", "),
		})
	}
	if r.Email != "" && !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email format",
		})
	}
	if r.Phone != "" && !validator.IsValidPhoneNumber(r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "invalid phone number",
		})
	}
	if r.Status == "" {
		r.Status = string(StatusReserved)
	} else if !Status(r.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(Statuses, ", "),
		})
	}

	errs = append(errs, parseStay(r.ArrivalDate, r.DepartureDate, &r.Arrival, &r.Departure)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateClientRequest struct {
	Code          string  `json:"-"`
	Name          *string `json:"name,omitempty"`
	Service       *string `json:"service,omitempty"`
	Details       *string `json:"details,omitempty"`
	Email         *string `json:"email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	ArrivalDate   *string `json:"arrival_date,omitempty"`
	DepartureDate *string `json:"departure_date,omitempty"`
	Status        *string `json:"status,omitempty"`
}

func (r *UpdateClientRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name cannot be empty",
		})
	}
	if r.Service != nil && !validator.IsInSlice(*r.Service, Services) {
		errs = append(errs, validator.ValidationError{
			Field:   "service",
			Message: "service must be one of: " + strings.Join(Services, ", "),
		})
	}
	if r.Email != nil && *r.Email != "" && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email format",
		})
	}
	if r.Phone != nil && *r.Phone != "" && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "invalid phone number",
		})
	}
	if r.Status != nil && !Status(*r.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(Statuses, ", "),
		})
	}
	for field, value := range map[string]*string{"arrival_date": r.ArrivalDate, "departure_date": r.DepartureDate} {
		if value == nil || *value == "" {
			continue
		}
		if _, ok := validator.IsValidDate(*value); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must be in DD/MM/YYYY format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// parseStay validates the optional arrival/departure pair and stores the
// parsed dates into the given pointers.
func parseStay(arrival, departure string, arrivalOut, departureOut **time.Time) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if arrival != "" {
		if t, ok := validator.IsValidDate(arrival); ok {
			*arrivalOut = &t
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "arrival_date",
				Message: "arrival_date must be in DD/MM/YYYY format",
			})
		}
	}
	if departure != "" {
		if t, ok := validator.IsValidDate(departure); ok {
			*departureOut = &t
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "departure_date",
				Message: "departure_date must be in DD/MM/YYYY format",
			})
		}
	}
	if *arrivalOut != nil && *departureOut != nil && (*departureOut).Before(**arrivalOut) {
		errs = append(errs, validator.ValidationError{
			Field:   "departure_date",
			Message: "departure_date cannot be before arrival_date",
		})
	}
	return errs
}

// CheckStay validates a resolved arrival/departure pair after a partial update.
func CheckStay(arrival, departure *time.Time) error {
	if arrival != nil && departure != nil && departure.Before(*arrival) {
		return validator.ValidationErrors{{
			Field:   "departure_date",
			Message: "departure_date cannot be before arrival_date",
		}}
	}
	return nil
}

type ClientFilter struct {
	Service *string
	Status  *string
	Search  *string
	Page    int
	Limit   int
}

func (f *ClientFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}
	if f.Service != nil && !validator.IsInSlice(*f.Service, Services) {
		errs = append(errs, validator.ValidationError{
			Field:   "service",
			Message: "service must be one of: " + strings.Join(Services, ", "),
		})
	}
	if f.Status != nil && !Status(*f.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(Statuses, ", "),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (f ClientFilter) Matches(c Client) bool {
	if f.Service != nil && c.Service != *f.Service {
		return false
	}
	if f.Status != nil && string(c.Status) != *f.Status {
		return false
	}
	if f.Search != nil && *f.Search != "" {
		q := strings.ToLower(*f.Search)
		if !strings.Contains(strings.ToLower(c.Name), q) &&
			!strings.Contains(strings.ToLower(c.Code), q) &&
			!strings.Contains(strings.ToLower(c.Details), q) {
			return false
		}
	}
	return true
}

type ClientResponse struct {
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Service       string    `json:"service"`
	Details       string    `json:"details"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	ArrivalDate   string    `json:"arrival_date"`
	DepartureDate string    `json:"departure_date"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func NewClientResponse(c Client) ClientResponse {
	resp := ClientResponse{
		Code:      c.Code,
		Name:      c.Name,
		Service:   c.Service,
		Details:   c.Details,
		Email:     c.Email,
		Phone:     c.Phone,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.ArrivalDate != nil {
		resp.ArrivalDate = validator.FormatDate(*c.ArrivalDate)
	}
	if c.DepartureDate != nil {
		resp.DepartureDate = validator.FormatDate(*c.DepartureDate)
	}
	return resp
}

type ListClientResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
	Showing    string           `json:"showing"`
	Clients    []ClientResponse `json:"clients"`
}
