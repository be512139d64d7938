package badge

import (
	"strings"

	"github.com/gestipresence/presence-backend-go/internal/pkg/validator"
)

type Format string

const (
	FormatQRCode  Format = "qrcode"
	FormatBarcode Format = "barcode"
)

const (
	DefaultQRSize  = 256
	DefaultBarSize = 400
	MinSize        = 64
	MaxSize        = 2048
)

type RenderRequest struct {
	Code   string
	Format string
	Size   int
}

func (r *RenderRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Code = strings.ToUpper(strings.TrimSpace(r.Code))
	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code is required",
		})
	}

	switch Format(r.Format) {
	case "":
		r.Format = string(FormatQRCode)
	case FormatQRCode, FormatBarcode:
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "format",
			Message: "format must be one of: qrcode, barcode",
		})
	}

	if r.Size == 0 {
		if Format(r.Format) == FormatBarcode {
			r.Size = DefaultBarSize
		} else {
			r.Size = DefaultQRSize
		}
	}
	if r.Size < MinSize || r.Size > MaxSize {
		errs = append(errs, validator.ValidationError{
			Field:   "size",
			Message: "size must be between 64 and 2048",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Badge is a rendered PNG image.
type Badge struct {
	Code        string
	Format      Format
	ContentType string
	Filename    string
	Image       []byte
}
