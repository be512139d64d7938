package attendance

import "errors"

// Attendance domain errors
var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrDuplicateRecord    = errors.New("an attendance record already exists for this code and date")
	ErrStatusRegression   = errors.New("attendance status cannot move backwards")
	ErrInvalidDirection   = errors.New("direction must be in or out")
	ErrUndetectableCode   = errors.New("no badge code could be read from the payload")
)
