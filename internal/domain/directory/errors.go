package directory

import "errors"

var (
	ErrPersonNotFound   = errors.New("code not recognized")
	ErrCodeTypeMismatch = errors.New("code type does not match scan mode")
	ErrInvalidScanMode  = errors.New("scan mode must be barcode or qrcode")
)
