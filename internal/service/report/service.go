package report

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/gestipresence/presence-backend-go/internal/domain/absence"
	"github.com/gestipresence/presence-backend-go/internal/domain/attendance"
	"github.com/gestipresence/presence-backend-go/internal/domain/client"
	"github.com/gestipresence/presence-backend-go/internal/domain/employee"
	"github.com/gestipresence/presence-backend-go/internal/domain/report"
	"github.com/gestipresence/presence-backend-go/internal/pkg/validator"
)

type ReportServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	clientRepo     client.ClientRepository
	absenceRepo    absence.AbsenceRepository
	now            func() time.Time
}

func NewReportService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	clientRepo client.ClientRepository,
	absenceRepo absence.AbsenceRepository,
) report.ReportService {
	return &ReportServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		clientRepo:     clientRepo,
		absenceRepo:    absenceRepo,
		now:            time.Now,
	}
}

// Export implements report.ReportService.
func (s *ReportServiceImpl) Export(ctx context.Context, req report.ExportRequest) (report.Export, error) {
	if err := req.Validate(); err != nil {
		return report.Export{}, err
	}

	var (
		table report.Table
		err   error
	)
	switch report.Dataset(req.Dataset) {
	case report.DatasetAttendance:
		table, err = s.attendanceTable(ctx, req.Date)
	case report.DatasetEmployees:
		table, err = s.employeeTable(ctx)
	case report.DatasetClients:
		table, err = s.clientTable(ctx)
	case report.DatasetAbsences:
		table, err = s.absenceTable(ctx)
	}
	if err != nil {
		return report.Export{}, err
	}
	if len(table.Rows) == 0 {
		return report.Export{}, report.ErrEmptyDataset
	}

	format := report.Format(req.Format)
	body, err := Render(table, format)
	if err != nil {
		return report.Export{}, err
	}

	stamp := s.now()
	if d, ok := validator.IsValidDate(req.Date); ok {
		stamp = d
	}

	slog.Info("Report exported", "dataset", req.Dataset, "format", req.Format, "rows", len(table.Rows))
	return report.Export{
		Filename:    fmt.Sprintf("%s-%s.%s", req.Dataset, stamp.Format("20060102"), format),
		ContentType: format.ContentType(),
		Body:        body,
	}, nil
}

func (s *ReportServiceImpl) attendanceTable(ctx context.Context, date string) (report.Table, error) {
	filter := attendance.AttendanceFilter{}
	if date != "" {
		filter.Date = &date
	}
	records, _, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return report.Table{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	// Oldest day first, then by code.
	sort.SliceStable(records, func(i, j int) bool {
		di, _ := validator.IsValidDate(records[i].Date)
		dj, _ := validator.IsValidDate(records[j].Date)
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return records[i].Code < records[j].Code
	})

	table := report.Table{
		Title:   "Présences",
		Headers: []string{"Type", "Code", "Nom", "Service", "Date", "Entrée", "Sortie", "Statut"},
	}
	for _, r := range records {
		table.Rows = append(table.Rows, []string{
			r.PersonType.Label(), r.Code, r.Name, r.Classifier, r.Date, r.TimeIn, r.TimeOut, string(r.Status),
		})
	}
	return table, nil
}

func (s *ReportServiceImpl) employeeTable(ctx context.Context) (report.Table, error) {
	employees, _, err := s.employeeRepo.List(ctx, employee.EmployeeFilter{})
	if err != nil {
		return report.Table{}, fmt.Errorf("failed to list employees: %w", err)
	}

	table := report.Table{
		Title:   "Employés",
		Headers: []string{"Code", "Nom", "Département", "Poste", "Email", "Téléphone", "Adresse", "Statut"},
	}
	for _, e := range employees {
		table.Rows = append(table.Rows, []string{
			e.Code, e.Name, e.Department, e.Position, e.Email, e.Phone, e.Address, string(e.Status),
		})
	}
	return table, nil
}

func (s *ReportServiceImpl) clientTable(ctx context.Context) (report.Table, error) {
	clients, _, err := s.clientRepo.List(ctx, client.ClientFilter{})
	if err != nil {
		return report.Table{}, fmt.Errorf("failed to list clients: %w", err)
	}

	table := report.Table{
		Title:   "Clients",
		Headers: []string{"Code", "Nom", "Service", "Détails", "Email", "Téléphone", "Arrivée", "Départ", "Statut"},
	}
	for _, c := range clients {
		resp := client.NewClientResponse(c)
		table.Rows = append(table.Rows, []string{
			c.Code, c.Name, c.Service, c.Details, c.Email, c.Phone, resp.ArrivalDate, resp.DepartureDate, string(c.Status),
		})
	}
	return table, nil
}

func (s *ReportServiceImpl) absenceTable(ctx context.Context) (report.Table, error) {
	absences, _, err := s.absenceRepo.List(ctx, absence.AbsenceFilter{})
	if err != nil {
		return report.Table{}, fmt.Errorf("failed to list absences: %w", err)
	}

	sort.SliceStable(absences, func(i, j int) bool {
		if !absences[i].StartDate.Equal(absences[j].StartDate) {
			return absences[i].StartDate.Before(absences[j].StartDate)
		}
		return absences[i].EmployeeID < absences[j].EmployeeID
	})

	table := report.Table{
		Title:   "Absences",
		Headers: []string{"Employé", "Nom", "Type", "Début", "Fin", "Motif", "Justification", "Statut"},
	}
	for _, a := range absences {
		table.Rows = append(table.Rows, []string{
			a.EmployeeID,
			a.EmployeeName,
			string(a.Type),
			validator.FormatDate(a.StartDate),
			validator.FormatDate(a.EndDate),
			a.Motif,
			a.Justification,
			string(a.Status),
		})
	}
	return table, nil
}
