package report

import (
	"strings"

	"github.com/gestipresence/presence-backend-go/internal/pkg/validator"
)

type Dataset string

const (
	DatasetAttendance Dataset = "attendance"
	DatasetEmployees  Dataset = "employees"
	DatasetClients    Dataset = "clients"
	DatasetAbsences   Dataset = "absences"
)

var Datasets = []string{
	string(DatasetAttendance),
	string(DatasetEmployees),
	string(DatasetClients),
	string(DatasetAbsences),
}

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

var Formats = []string{string(FormatCSV), string(FormatJSON), string(FormatXLSX)}

func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatJSON:
		return "application/json"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}

// ExportRequest selects a dataset and an output format. Date narrows the
// attendance dataset to a single day.
type ExportRequest struct {
	Dataset string
	Format  string
	Date    string
}

func (r *ExportRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Dataset, Datasets) {
		errs = append(errs, validator.ValidationError{
			Field:   "dataset",
			Message: "dataset must be one of: " + strings.Join(Datasets, ", "),
		})
	}
	if r.Format == "" {
		r.Format = string(FormatCSV)
	}
	if !validator.IsInSlice(r.Format, Formats) {
		errs = append(errs, validator.ValidationError{
			Field:   "format",
			Message: "format must be one of: " + strings.Join(Formats, ", "),
		})
	}
	if r.Date != "" {
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in DD/MM/YYYY format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Table is a dataset flattened to a header row and string cells.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// Export is a rendered file ready to be downloaded.
type Export struct {
	Filename    string
	ContentType string
	Body        []byte
}
