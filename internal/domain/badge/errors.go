package badge

import "errors"

var ErrEncodingFailed = errors.New("failed to encode badge")
