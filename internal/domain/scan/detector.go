package scan

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/gestipresence/presence-backend-go/internal/domain/directory"
	"github.com/gestipresence/presence-backend-go/internal/pkg/validator"
)

// Detector turns raw reader output into a badge code. Camera and hardware
// readers live outside this service and only hand over what they decoded.
type Detector interface {
	Detect(payload []byte) (Detection, bool)
}

// BadgeDetector understands the two badge formats we print: QR codes holding
// a JSON Payload and CODE128 barcodes holding the bare code.
type BadgeDetector struct{}

func NewBadgeDetector() *BadgeDetector {
	return &BadgeDetector{}
}

func (d *BadgeDetector) Detect(payload []byte) (Detection, bool) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return Detection{}, false
	}

	if trimmed[0] == '{' {
		var p Payload
		if err := json.Unmarshal(trimmed, &p); err != nil {
			return Detection{}, false
		}
		code := strings.ToUpper(strings.TrimSpace(p.Code))
		if !validator.IsValidPersonCode(code) {
			return Detection{}, false
		}
		det := Detection{Code: code, Name: p.Name}
		if t, ok := directory.ParsePersonType(p.Type); ok {
			det.Type = t
		}
		return det, true
	}

	code := strings.ToUpper(string(trimmed))
	if !validator.IsValidPersonCode(code) {
		return Detection{}, false
	}
	return Detection{Code: code}, true
}
