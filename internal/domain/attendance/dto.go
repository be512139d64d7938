package attendance

import (
	"strings"
	"time"

	"github.com/gestipresence/presence-backend-go/internal/domain/directory"
	"github.com/gestipresence/presence-backend-go/internal/pkg/validator"
)

// ========================================
// SCAN DTOs
// ========================================

// ScanRequest carries either a bare code or the raw payload read from a
// badge. Payload decoding is left to a scan.Detector.
type ScanRequest struct {
	Code      string    `json:"code"`
	Payload   string    `json:"payload"`
	Direction string    `json:"direction"`
	Mode      string    `json:"mode"`
	At        time.Time `json:"-"`
}

func (r *ScanRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Code = strings.TrimSpace(r.Code)
	if validator.IsEmpty(r.Code) && validator.IsEmpty(r.Payload) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code or payload is required",
		})
	}

	if !Direction(r.Direction).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "direction",
			Message: "direction must be one of: in, out",
		})
	}

	if !directory.ScanMode(r.Mode).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "mode",
			Message: "mode must be one of: barcode, qrcode",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ScanResponse struct {
	Record  AttendanceResponse `json:"record"`
	IsNew   bool               `json:"is_new"`
	Changed bool               `json:"changed"`
	Message string             `json:"message"`
}

type RecentScanResponse struct {
	PersonType string `json:"person_type"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	Direction  string `json:"direction"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Status     string `json:"status"`
	Changed    bool   `json:"changed"`
}

func NewRecentScanResponse(s RecentScan) RecentScanResponse {
	return RecentScanResponse{
		PersonType: string(s.PersonType),
		Code:       s.Code,
		Name:       s.Name,
		Direction:  string(s.Direction),
		Date:       s.Date,
		Time:       s.Time,
		Status:     string(s.Status),
		Changed:    s.Changed,
	}
}

// ========================================
// MANUAL ENTRY DTOs
// ========================================

type CreateAttendanceRequest struct {
	Code    string `json:"code"`
	Date    string `json:"date"`     // DD/MM/YYYY
	TimeIn  string `json:"time_in"`  // HH:MM, optional
	TimeOut string `json:"time_out"` // HH:MM, optional
}

func (r *CreateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Code = strings.TrimSpace(r.Code)
	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code is required",
		})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in DD/MM/YYYY format",
		})
	}
	errs = append(errs, validateClockPair(r.TimeIn, r.TimeOut)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateAttendanceRequest struct {
	ID      string  `json:"-"`
	TimeIn  *string `json:"time_in,omitempty"`
	TimeOut *string `json:"time_out,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.TimeIn == nil && r.TimeOut == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "time_in",
			Message: "time_in or time_out is required",
		})
	}
	if r.TimeIn != nil && *r.TimeIn != "" && !validator.IsValidClock(*r.TimeIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "time_in",
			Message: "time_in must be in HH:MM format",
		})
	}
	if r.TimeOut != nil && *r.TimeOut != "" && !validator.IsValidClock(*r.TimeOut) {
		errs = append(errs, validator.ValidationError{
			Field:   "time_out",
			Message: "time_out must be in HH:MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateClockOrder checks that a check-out does not precede the check-in.
func ValidateClockOrder(timeIn, timeOut string) error {
	if errs := validateClockPair(timeIn, timeOut); len(errs) > 0 {
		return errs
	}
	return nil
}

func validateClockPair(timeIn, timeOut string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if timeIn != "" && !validator.IsValidClock(timeIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "time_in",
			Message: "time_in must be in HH:MM format",
		})
	}
	if timeOut != "" && !validator.IsValidClock(timeOut) {
		errs = append(errs, validator.ValidationError{
			Field:   "time_out",
			Message: "time_out must be in HH:MM format",
		})
	}
	// HH:MM strings compare lexically in clock order.
	if len(errs) == 0 && timeIn != "" && timeOut != "" && timeOut < timeIn {
		errs = append(errs, validator.ValidationError{
			Field:   "time_out",
			Message: "time_out cannot be before time_in",
		})
	}
	return errs
}

// ========================================
// LISTING DTOs
// ========================================

type AttendanceFilter struct {
	Date       *string
	PersonType *string
	Status     *string
	Code       *string
	Search     *string
	Page       int
	Limit      int
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20 // Default limit
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.Status != nil && !Status(*f.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(Statuses, ", "),
		})
	}

	if f.PersonType != nil {
		if !directory.PersonType(*f.PersonType).IsValid() {
			errs = append(errs, validator.ValidationError{
				Field:   "person_type",
				Message: "person_type must be one of: employee, client",
			})
		}
	}

	if f.Date != nil && *f.Date != "" {
		if _, valid := validator.IsValidDate(*f.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in DD/MM/YYYY format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Matches reports whether r passes the non-paging parts of the filter.
func (f AttendanceFilter) Matches(r Record) bool {
	if f.Date != nil && *f.Date != "" && r.Date != *f.Date {
		return false
	}
	if f.PersonType != nil && string(r.PersonType) != *f.PersonType {
		return false
	}
	if f.Status != nil && string(r.Status) != *f.Status {
		return false
	}
	if f.Code != nil && r.Code != *f.Code {
		return false
	}
	if f.Search != nil && *f.Search != "" {
		q := strings.ToLower(*f.Search)
		if !strings.Contains(strings.ToLower(r.Name), q) && !strings.Contains(strings.ToLower(r.Code), q) {
			return false
		}
	}
	return true
}

type AttendanceResponse struct {
	ID         string    `json:"id"`
	PersonType string    `json:"person_type"`
	TypeLabel  string    `json:"type_label"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	Classifier string    `json:"classifier"`
	Date       string    `json:"date"`
	TimeIn     string    `json:"time_in"`
	TimeOut    string    `json:"time_out"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewAttendanceResponse(r Record) AttendanceResponse {
	return AttendanceResponse{
		ID:         r.ID,
		PersonType: string(r.PersonType),
		TypeLabel:  r.PersonType.Label(),
		Code:       r.Code,
		Name:       r.Name,
		Classifier: r.Classifier,
		Date:       r.Date,
		TimeIn:     r.TimeIn,
		TimeOut:    r.TimeOut,
		Status:     string(r.Status),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Showing     string               `json:"showing"`
	Attendances []AttendanceResponse `json:"attendances"`
}
