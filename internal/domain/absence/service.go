package absence

import (
	"context"
	"io"
	"time"
)

// AbsenceService manages the absence ledger and pushes the status override
// of approved, current absences onto the employee directory.
type AbsenceService interface {
	CreateAbsence(ctx context.Context, req CreateAbsenceRequest) (AbsenceResponse, error)
	UpdateAbsence(ctx context.Context, req UpdateAbsenceRequest) (AbsenceResponse, error)
	GetAbsence(ctx context.Context, id string) (AbsenceResponse, error)
	ListAbsences(ctx context.Context, filter AbsenceFilter) (ListAbsenceResponse, error)
	DeleteAbsence(ctx context.Context, id string) error

	// AttachJustification stores a supporting document and links it to the absence
	AttachJustification(ctx context.Context, req AttachJustificationRequest) (AbsenceResponse, error)
	OpenJustification(ctx context.Context, id string) (JustificationFile, error)

	// ApplyActiveAbsences re-applies every approved absence covering today
	// and returns how many employees were updated
	ApplyActiveAbsences(ctx context.Context, today time.Time) (int, error)
}

// JustificationFile is an uploaded document opened for download. The caller
// closes Body.
type JustificationFile struct {
	Filename    string
	ContentType string
	Body        io.ReadCloser
}
