package scan

import (
	"time"

	"github.com/gestipresence/presence-backend-go/internal/domain/directory"
)

// Payload is the JSON document encoded into QR badges.
type Payload struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	Detail    string `json:"detail"`
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
}

// NewPayload builds the badge payload for a person at the given instant.
func NewPayload(p directory.Person, at time.Time) Payload {
	return Payload{
		Code:      p.Code,
		Name:      p.Name,
		Detail:    p.Classifier,
		Type:      p.Type.Label(),
		Timestamp: at.UTC().Format(time.RFC3339),
	}
}

// Detection is what a detector could read from a badge. Type is empty when
// the badge carries only a bare code.
type Detection struct {
	Code string
	Name string
	Type directory.PersonType
}
