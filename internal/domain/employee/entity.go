package employee

import (
	"time"

	"github.com/gestipresence/presence-backend-go/internal/domain/directory"
)

// CodePrefix is prepended to the digits of every employee badge code.
const CodePrefix = "EMP"

type Employee struct {
	Code       string
	Name       string
	Department string
	Position   string
	Email      string
	Phone      string
	Address    string
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Person returns the directory view of the employee.
func (e Employee) Person() directory.Person {
	return directory.Person{
		Type:       directory.PersonTypeEmployee,
		Code:       e.Code,
		Name:       e.Name,
		Classifier: e.Department,
		Status:     string(e.Status),
	}
}

// Status is the availability of an employee. It is separate from the daily
// presence held by attendance records.
type Status string

const (
	StatusPresent Status = "Présent"
	StatusAbsent  Status = "Absent"
	StatusLeave   Status = "Congé"
	StatusMission Status = "Mission"
)

var Statuses = []string{
	string(StatusPresent),
	string(StatusAbsent),
	string(StatusLeave),
	string(StatusMission),
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLeave, StatusMission:
		return true
	}
	return false
}

const (
	DepartmentAdministration = "Administration"
	DepartmentRestaurant     = "Restaurant"
	DepartmentHotel          = "Hôtel"
	DepartmentWater          = "Production d'eau"
	DepartmentConference     = "Salle de conférence"
	DepartmentEvents         = "Salle de fête"
)

var Departments = []string{
	DepartmentAdministration,
	DepartmentRestaurant,
	DepartmentHotel,
	DepartmentWater,
	DepartmentConference,
	DepartmentEvents,
}
