package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gestipresence/presence-backend-go/internal/domain/absence"
	"github.com/gestipresence/presence-backend-go/internal/domain/attendance"
	"github.com/gestipresence/presence-backend-go/internal/domain/auth"
	"github.com/gestipresence/presence-backend-go/internal/domain/badge"
	"github.com/gestipresence/presence-backend-go/internal/domain/client"
	"github.com/gestipresence/presence-backend-go/internal/domain/dashboard"
	"github.com/gestipresence/presence-backend-go/internal/domain/directory"
	"github.com/gestipresence/presence-backend-go/internal/domain/employee"
	"github.com/gestipresence/presence-backend-go/internal/domain/report"
	"github.com/gestipresence/presence-backend-go/internal/pkg/codegen"
	"github.com/gestipresence/presence-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Directory and scan errors
	case errors.Is(err, directory.ErrPersonNotFound):
		NotFound(w, "Unknown badge code")
	case errors.Is(err, directory.ErrCodeTypeMismatch):
		Conflict(w, err.Error())
	case errors.Is(err, directory.ErrInvalidScanMode):
		ValidationError(w, map[string]string{"mode": err.Error()})
	case errors.Is(err, attendance.ErrUndetectableCode):
		UnprocessableEntity(w, "No badge code could be read from the payload")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrDuplicateRecord):
		Conflict(w, "An attendance record already exists for this code and date")
	case errors.Is(err, attendance.ErrStatusRegression):
		Conflict(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrInvalidStatus):
		ValidationError(w, map[string]string{"status": err.Error()})

	// Client domain errors
	case errors.Is(err, client.ErrClientNotFound):
		NotFound(w, "Client not found")
	case errors.Is(err, client.ErrClientCodeExists):
		Conflict(w, "Client code already exists")
	case errors.Is(err, codegen.ErrCodeSpaceExhausted):
		Conflict(w, "No free badge code is left")

	// Absence domain errors
	case errors.Is(err, absence.ErrAbsenceNotFound):
		NotFound(w, "Absence not found")
	case errors.Is(err, absence.ErrInvalidJustificationFile):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, absence.ErrJustificationTooLarge):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, absence.ErrNoJustificationFile):
		NotFound(w, err.Error())

	// Reports, badges, dashboard
	case errors.Is(err, report.ErrEmptyDataset):
		NotFound(w, err.Error())
	case errors.Is(err, dashboard.ErrInvalidDate):
		ValidationError(w, map[string]string{"date": err.Error()})
	case errors.Is(err, badge.ErrEncodingFailed):
		UnprocessableEntity(w, err.Error())

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
