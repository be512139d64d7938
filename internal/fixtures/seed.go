package fixtures

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/gestipresence/presence-backend-go/internal/domain/absence"
	"github.com/gestipresence/presence-backend-go/internal/domain/attendance"
	"github.com/gestipresence/presence-backend-go/internal/domain/client"
	"github.com/gestipresence/presence-backend-go/internal/domain/directory"
	"github.com/gestipresence/presence-backend-go/internal/domain/employee"
	"github.com/gestipresence/presence-backend-go/internal/pkg/validator"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

type seedFile struct {
	Employees []struct {
		Code       string `yaml:"code"`
		Name       string `yaml:"name"`
		Department string `yaml:"department"`
		Position   string `yaml:"position"`
		Email      string `yaml:"email"`
		Phone      string `yaml:"phone"`
		Address    string `yaml:"address"`
		Status     string `yaml:"status"`
	} `yaml:"employees"`
	Clients []struct {
		Code          string `yaml:"code"`
		Name          string `yaml:"name"`
		Service       string `yaml:"service"`
		Details       string `yaml:"details"`
		Email         string `yaml:"email"`
		Phone         string `yaml:"phone"`
		ArrivalDate   string `yaml:"arrival_date"`
		DepartureDate string `yaml:"departure_date"`
		Status        string `yaml:"status"`
	} `yaml:"clients"`
	Attendance []struct {
		Code    string `yaml:"code"`
		Type    string `yaml:"type"`
		Date    string `yaml:"date"`
		TimeIn  string `yaml:"time_in"`
		TimeOut string `yaml:"time_out"`
	} `yaml:"attendance"`
	Absences []struct {
		EmployeeID    string `yaml:"employee_id"`
		Type          string `yaml:"type"`
		StartDate     string `yaml:"start_date"`
		EndDate       string `yaml:"end_date"`
		Motif         string `yaml:"motif"`
		Justification string `yaml:"justification"`
		Status        string `yaml:"status"`
	} `yaml:"absences"`
}

// Dataset is the demonstration data converted to domain entities. Records and
// absences carry no ID; the repository assigns one on insert.
type Dataset struct {
	Employees  []employee.Employee
	Clients    []client.Client
	Attendance []attendance.Record
	Absences   []absence.Absence
}

// Raw returns the embedded YAML document.
func Raw() []byte {
	return seedYAML
}

// Load parses the embedded seed file.
func Load() (*Dataset, error) {
	return Parse(seedYAML)
}

// Parse converts a seed document into domain entities. Attendance classifiers
// and names are copied from the seeded directory, absence names likewise.
func Parse(data []byte) (*Dataset, error) {
	var raw seedFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	now := time.Now()
	ds := &Dataset{}
	people := make(map[string]directory.Person)

	for _, e := range raw.Employees {
		status := employee.Status(e.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("employee %s: invalid status %q", e.Code, e.Status)
		}
		emp := employee.Employee{
			Code:       e.Code,
			Name:       e.Name,
			Department: e.Department,
			Position:   e.Position,
			Email:      e.Email,
			Phone:      e.Phone,
			Address:    e.Address,
			Status:     status,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		ds.Employees = append(ds.Employees, emp)
		people[emp.Code] = emp.Person()
	}

	for _, c := range raw.Clients {
		status := client.Status(c.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("client %s: invalid status %q", c.Code, c.Status)
		}
		cl := client.Client{
			Code:      c.Code,
			Name:      c.Name,
			Service:   c.Service,
			Details:   c.Details,
			Email:     c.Email,
			Phone:     c.Phone,
			Status:    status,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if t, ok := validator.IsValidDate(c.ArrivalDate); ok {
			cl.ArrivalDate = &t
		}
		if t, ok := validator.IsValidDate(c.DepartureDate); ok {
			cl.DepartureDate = &t
		}
		ds.Clients = append(ds.Clients, cl)
		people[cl.Code] = cl.Person()
	}

	for _, a := range raw.Attendance {
		person, ok := people[a.Code]
		if !ok {
			return nil, fmt.Errorf("attendance for unknown code %s", a.Code)
		}
		personType, ok := directory.ParsePersonType(a.Type)
		if !ok || personType != person.Type {
			return nil, fmt.Errorf("attendance for %s: type %q does not match directory", a.Code, a.Type)
		}
		if _, ok := validator.IsValidDate(a.Date); !ok {
			return nil, fmt.Errorf("attendance for %s: invalid date %q", a.Code, a.Date)
		}
		ds.Attendance = append(ds.Attendance, attendance.Record{
			PersonType: personType,
			Code:       a.Code,
			Name:       person.Name,
			Classifier: person.Classifier,
			Date:       a.Date,
			TimeIn:     a.TimeIn,
			TimeOut:    a.TimeOut,
			Status:     attendance.DeriveStatus(a.TimeIn, a.TimeOut),
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}

	for _, a := range raw.Absences {
		person, ok := people[a.EmployeeID]
		if !ok || person.Type != directory.PersonTypeEmployee {
			return nil, fmt.Errorf("absence for unknown employee %s", a.EmployeeID)
		}
		start, okStart := validator.IsValidDate(a.StartDate)
		end, okEnd := validator.IsValidDate(a.EndDate)
		if !okStart || !okEnd || end.Before(start) {
			return nil, fmt.Errorf("absence for %s: invalid range %s - %s", a.EmployeeID, a.StartDate, a.EndDate)
		}
		ds.Absences = append(ds.Absences, absence.Absence{
			EmployeeID:    a.EmployeeID,
			EmployeeName:  person.Name,
			Type:          absence.Type(a.Type),
			StartDate:     start,
			EndDate:       end,
			Motif:         a.Motif,
			Justification: a.Justification,
			Status:        absence.Status(a.Status),
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}

	return ds, nil
}
