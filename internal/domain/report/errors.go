package report

import "errors"

var ErrEmptyDataset = errors.New("nothing to export for the selected filters")
