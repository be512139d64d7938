package report

import "context"

type ReportService interface {
	// Export renders a dataset in the requested format
	Export(ctx context.Context, req ExportRequest) (Export, error)
}
