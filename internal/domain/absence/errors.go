package absence

import "errors"

var (
	ErrAbsenceNotFound          = errors.New("absence record not found")
	ErrInvalidJustificationFile = errors.New("justification must be a pdf, jpg, jpeg or png file")
	ErrJustificationTooLarge    = errors.New("justification file must not exceed 5MB")
	ErrNoJustificationFile      = errors.New("absence has no uploaded justification")
)
