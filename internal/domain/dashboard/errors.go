package dashboard

import "errors"

var ErrInvalidDate = errors.New("date must be in DD/MM/YYYY format")
