package absence

import (
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gestipresence/presence-backend-go/internal/pkg/validator"
)

// CreateAbsenceRequest mirrors the absence form. Dates are DD/MM/YYYY and the
// end date is inclusive.
type CreateAbsenceRequest struct {
	EmployeeID    string `json:"employee_id"`
	EmployeeName  string `json:"employee_name"`
	Type          string `json:"type"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	Motif         string `json:"motif"`
	Justification string `json:"justification"`
	Status        string `json:"status"`

	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
}

func (r *CreateAbsenceRequest) Validate() error {
	var errs validator.ValidationErrors

	r.EmployeeID = strings.TrimSpace(r.EmployeeID)
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.Type) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type is required",
		})
	} else if !validator.IsInSlice(r.Type, Types) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: " + strings.Join(Types, ", "),
		})
	}

	if validator.IsEmpty(r.Motif) {
		errs = append(errs, validator.ValidationError{
			Field:   "motif",
			Message: "motif is required",
		})
	}

	if r.Status == "" {
		r.Status = string(StatusPending)
	} else if !validator.IsInSlice(r.Status, Statuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(Statuses, ", "),
		})
	}

	start, end, dateErrs := parseRange(r.StartDate, r.EndDate)
	errs = append(errs, dateErrs...)
	r.Start, r.End = start, end

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateAbsenceRequest struct {
	ID            string  `json:"-"`
	Type          *string `json:"type,omitempty"`
	StartDate     *string `json:"start_date,omitempty"`
	EndDate       *string `json:"end_date,omitempty"`
	Motif         *string `json:"motif,omitempty"`
	Justification *string `json:"justification,omitempty"`
	Status        *string `json:"status,omitempty"`
}

func (r *UpdateAbsenceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Type != nil && !validator.IsInSlice(*r.Type, Types) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: " + strings.Join(Types, ", "),
		})
	}
	if r.Motif != nil && validator.IsEmpty(*r.Motif) {
		errs = append(errs, validator.ValidationError{
			Field:   "motif",
			Message: "motif cannot be empty",
		})
	}
	if r.Status != nil && !validator.IsInSlice(*r.Status, Statuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(Statuses, ", "),
		})
	}
	if r.StartDate != nil {
		if _, ok := validator.IsValidDate(*r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in DD/MM/YYYY format",
			})
		}
	}
	if r.EndDate != nil {
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in DD/MM/YYYY format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateRange reports an end date before the start date as a validation error.
func ValidateRange(start, end time.Time) error {
	if end.Before(start) {
		return validator.ValidationErrors{{
			Field:   "end_date",
			Message: "end_date cannot be before start_date",
		}}
	}
	return nil
}

func parseRange(startStr, endStr string) (time.Time, time.Time, validator.ValidationErrors) {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDate(startStr)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required in DD/MM/YYYY format",
		})
	}
	end, okEnd := validator.IsValidDate(endStr)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date is required in DD/MM/YYYY format",
		})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date cannot be before start_date",
		})
	}
	return start, end, errs
}

const maxJustificationSize = 5 << 20

type AttachJustificationRequest struct {
	ID         string
	File       multipart.File
	FileHeader *multipart.FileHeader
}

func (r *AttachJustificationRequest) Validate() error {
	if r.FileHeader == nil || r.File == nil {
		return validator.ValidationErrors{{
			Field:   "file",
			Message: "justification file is required",
		}}
	}
	ext := strings.ToLower(filepath.Ext(r.FileHeader.Filename))
	if !validator.IsInSlice(ext, []string{".pdf", ".jpg", ".jpeg", ".png"}) {
		return ErrInvalidJustificationFile
	}
	if r.FileHeader.Size > maxJustificationSize {
		return ErrJustificationTooLarge
	}
	return nil
}

type AbsenceFilter struct {
	EmployeeID *string
	Type       *string
	Status     *string
	Page       int
	Limit      int
}

func (f *AbsenceFilter) Validate() error {
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
	if f.Type != nil && !validator.IsInSlice(*f.Type, Types) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: " + strings.Join(Types, ", "),
		})
	}
	if f.Status != nil && !validator.IsInSlice(*f.Status, Statuses) {
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

func (f AbsenceFilter) Matches(a Absence) bool {
	if f.EmployeeID != nil && a.EmployeeID != *f.EmployeeID {
		return false
	}
	if f.Type != nil && string(a.Type) != *f.Type {
		return false
	}
	if f.Status != nil && string(a.Status) != *f.Status {
		return false
	}
	return true
}

type AbsenceResponse struct {
	ID            string    `json:"id"`
	EmployeeID    string    `json:"employee_id"`
	EmployeeName  string    `json:"employee_name"`
	Type          string    `json:"type"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	Motif         string    `json:"motif"`
	Justification string    `json:"justification,omitempty"`
	Status        string    `json:"status"`
	AppliedStatus string    `json:"applied_status,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func NewAbsenceResponse(a Absence) AbsenceResponse {
	return AbsenceResponse{
		ID:            a.ID,
		EmployeeID:    a.EmployeeID,
		EmployeeName:  a.EmployeeName,
		Type:          string(a.Type),
		StartDate:     validator.FormatDate(a.StartDate),
		EndDate:       validator.FormatDate(a.EndDate),
		Motif:         a.Motif,
		Justification: a.Justification,
		Status:        string(a.Status),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

type ListAbsenceResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Showing    string            `json:"showing"`
	Absences   []AbsenceResponse `json:"absences"`
}
