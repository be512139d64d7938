package absence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/gestipresence/presence-backend-go/internal/domain/absence"
	"github.com/gestipresence/presence-backend-go/internal/domain/employee"
	"github.com/gestipresence/presence-backend-go/internal/pkg/database"
	"github.com/gestipresence/presence-backend-go/internal/pkg/pagination"
	"github.com/gestipresence/presence-backend-go/internal/pkg/validator"
	"github.com/gestipresence/presence-backend-go/internal/service/file"
)

type AbsenceServiceImpl struct {
	transactor   database.Transactor
	absenceRepo  absence.AbsenceRepository
	employeeRepo employee.EmployeeRepository
	fileService  file.FileService
	location     *time.Location
	now          func() time.Time
}

func NewAbsenceService(
	transactor database.Transactor,
	absenceRepo absence.AbsenceRepository,
	employeeRepo employee.EmployeeRepository,
	fileService file.FileService,
	location *time.Location,
) absence.AbsenceService {
	if location == nil {
		location = time.Local
	}
	return &AbsenceServiceImpl{
		transactor:   transactor,
		absenceRepo:  absenceRepo,
		employeeRepo: employeeRepo,
		fileService:  fileService,
		location:     location,
		now:          time.Now,
	}
}

func (s *AbsenceServiceImpl) today() time.Time {
	return validator.Truncate(s.now().In(s.location))
}

// CreateAbsence implements absence.AbsenceService.
func (s *AbsenceServiceImpl) CreateAbsence(ctx context.Context, req absence.CreateAbsenceRequest) (absence.AbsenceResponse, error) {
	if err := req.Validate(); err != nil {
		return absence.AbsenceResponse{}, err
	}

	emp, err := s.employeeRepo.GetByCode(ctx, strings.ToUpper(req.EmployeeID))
	if err != nil {
		return absence.AbsenceResponse{}, err
	}

	now := time.Now()
	var (
		created absence.Absence
		applied employee.Status
	)
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.absenceRepo.Create(ctx, absence.Absence{
			EmployeeID:    emp.Code,
			EmployeeName:  emp.Name,
			Type:          absence.Type(req.Type),
			StartDate:     req.Start,
			EndDate:       req.End,
			Motif:         req.Motif,
			Justification: req.Justification,
			Status:        absence.Status(req.Status),
			CreatedAt:     now,
			UpdatedAt:     now,
		})
		if err != nil {
			return fmt.Errorf("failed to create absence: %w", err)
		}
		applied, err = s.applyOne(ctx, created, s.today())
		return err
	})
	if err != nil {
		return absence.AbsenceResponse{}, err
	}

	resp := absence.NewAbsenceResponse(created)
	resp.AppliedStatus = string(applied)

	slog.Info("Absence created", "id", created.ID, "employee", created.EmployeeID, "type", created.Type)
	return resp, nil
}

// UpdateAbsence implements absence.AbsenceService.
func (s *AbsenceServiceImpl) UpdateAbsence(ctx context.Context, req absence.UpdateAbsenceRequest) (absence.AbsenceResponse, error) {
	if err := req.Validate(); err != nil {
		return absence.AbsenceResponse{}, err
	}

	a, err := s.absenceRepo.GetByID(ctx, req.ID)
	if err != nil {
		return absence.AbsenceResponse{}, err
	}

	if req.Type != nil {
		a.Type = absence.Type(*req.Type)
	}
	if req.StartDate != nil {
		a.StartDate, _ = validator.IsValidDate(*req.StartDate)
	}
	if req.EndDate != nil {
		a.EndDate, _ = validator.IsValidDate(*req.EndDate)
	}
	if req.Motif != nil {
		a.Motif = *req.Motif
	}
	if req.Justification != nil {
		a.Justification = *req.Justification
	}
	if req.Status != nil {
		a.Status = absence.Status(*req.Status)
	}
	if err := absence.ValidateRange(a.StartDate, a.EndDate); err != nil {
		return absence.AbsenceResponse{}, err
	}
	a.UpdatedAt = time.Now()

	var applied employee.Status
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.absenceRepo.Update(ctx, a); err != nil {
			return fmt.Errorf("failed to update absence: %w", err)
		}
		var err error
		applied, err = s.applyOne(ctx, a, s.today())
		return err
	})
	if err != nil {
		return absence.AbsenceResponse{}, err
	}

	resp := absence.NewAbsenceResponse(a)
	resp.AppliedStatus = string(applied)
	return resp, nil
}

// GetAbsence implements absence.AbsenceService.
func (s *AbsenceServiceImpl) GetAbsence(ctx context.Context, id string) (absence.AbsenceResponse, error) {
	a, err := s.absenceRepo.GetByID(ctx, id)
	if err != nil {
		return absence.AbsenceResponse{}, err
	}
	return absence.NewAbsenceResponse(a), nil
}

// ListAbsences implements absence.AbsenceService.
func (s *AbsenceServiceImpl) ListAbsences(ctx context.Context, filter absence.AbsenceFilter) (absence.ListAbsenceResponse, error) {
	if err := filter.Validate(); err != nil {
		return absence.ListAbsenceResponse{}, err
	}

	absences, total, err := s.absenceRepo.List(ctx, filter)
	if err != nil {
		return absence.ListAbsenceResponse{}, fmt.Errorf("failed to list absences: %w", err)
	}

	items := make([]absence.AbsenceResponse, 0, len(absences))
	for _, a := range absences {
		items = append(items, absence.NewAbsenceResponse(a))
	}

	totalPages, showing := pagination.Window(total, filter.Page, filter.Limit)
	return absence.ListAbsenceResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Absences:   items,
	}, nil
}

// DeleteAbsence implements absence.AbsenceService. The employee's status is
// left as is; the next manual edit or daily run settles it.
func (s *AbsenceServiceImpl) DeleteAbsence(ctx context.Context, id string) error {
	a, err := s.absenceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.absenceRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.removeFile(ctx, a.Justification)

	slog.Info("Absence deleted", "id", id, "employee", a.EmployeeID)
	return nil
}

// AttachJustification implements absence.AbsenceService.
func (s *AbsenceServiceImpl) AttachJustification(ctx context.Context, req absence.AttachJustificationRequest) (absence.AbsenceResponse, error) {
	if err := req.Validate(); err != nil {
		return absence.AbsenceResponse{}, err
	}
	defer req.File.Close()

	a, err := s.absenceRepo.GetByID(ctx, req.ID)
	if err != nil {
		return absence.AbsenceResponse{}, err
	}

	path, err := s.fileService.UploadJustification(ctx, a.ID, req.File, req.FileHeader.Filename)
	if err != nil {
		return absence.AbsenceResponse{}, err
	}

	previous := a.Justification
	a.Justification = path
	a.UpdatedAt = time.Now()
	if err := s.absenceRepo.Update(ctx, a); err != nil {
		s.removeFile(ctx, path)
		return absence.AbsenceResponse{}, fmt.Errorf("failed to update absence: %w", err)
	}
	s.removeFile(ctx, previous)

	return absence.NewAbsenceResponse(a), nil
}

// OpenJustification implements absence.AbsenceService.
func (s *AbsenceServiceImpl) OpenJustification(ctx context.Context, id string) (absence.JustificationFile, error) {
	a, err := s.absenceRepo.GetByID(ctx, id)
	if err != nil {
		return absence.JustificationFile{}, err
	}
	if !a.HasJustificationFile() {
		return absence.JustificationFile{}, absence.ErrNoJustificationFile
	}

	body, err := s.fileService.Open(ctx, a.Justification)
	if err != nil {
		return absence.JustificationFile{}, fmt.Errorf("failed to open justification: %w", err)
	}

	contentType := mime.TypeByExtension(path.Ext(a.Justification))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return absence.JustificationFile{
		Filename:    path.Base(a.Justification),
		ContentType: contentType,
		Body:        body,
	}, nil
}

// ApplyActiveAbsences implements absence.AbsenceService.
func (s *AbsenceServiceImpl) ApplyActiveAbsences(ctx context.Context, today time.Time) (int, error) {
	active, err := s.absenceRepo.ListActive(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("failed to list active absences: %w", err)
	}

	updated := make(map[string]struct{})
	for _, a := range active {
		status, err := s.applyOne(ctx, a, today)
		if err != nil {
			return len(updated), err
		}
		if status != "" {
			updated[a.EmployeeID] = struct{}{}
		}
	}

	slog.Info("Active absences applied", "date", validator.FormatDate(today), "active", len(active), "employees", len(updated))
	return len(updated), nil
}

// applyOne pushes the override of a onto its employee and returns the status
// written, or "" when the absence has no effect today. A missing employee is
// not an error.
func (s *AbsenceServiceImpl) applyOne(ctx context.Context, a absence.Absence, today time.Time) (employee.Status, error) {
	status, ok := absence.ApplyAbsence(a, today)
	if !ok {
		return "", nil
	}
	err := s.employeeRepo.UpdateStatus(ctx, a.EmployeeID, status)
	if errors.Is(err, employee.ErrEmployeeNotFound) {
		slog.Warn("Absence refers to a missing employee", "id", a.ID, "employee", a.EmployeeID)
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to apply absence to %s: %w", a.EmployeeID, err)
	}
	return status, nil
}

func (s *AbsenceServiceImpl) removeFile(ctx context.Context, path string) {
	if !absence.IsJustificationFile(path) {
		return
	}
	if err := s.fileService.DeleteFile(ctx, path); err != nil {
		slog.Error("Failed to delete justification file", "path", path, "error", err)
	}
}
