package absence

import (
	"strings"
	"time"
)

type Absence struct {
	ID            string
	EmployeeID    string // employee badge code
	EmployeeName  string
	Type          Type
	StartDate     time.Time
	EndDate       time.Time
	Motif         string
	Justification string
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// JustificationPrefix marks justifications that point at an uploaded file
// rather than a free-text note.
const JustificationPrefix = "absences/"

// HasJustificationFile reports whether Justification is a stored file path.
func (a Absence) HasJustificationFile() bool {
	return IsJustificationFile(a.Justification)
}

func IsJustificationFile(justification string) bool {
	return strings.HasPrefix(justification, JustificationPrefix)
}

// Covers reports whether day falls within [StartDate, EndDate], compared by
// calendar date only.
func (a Absence) Covers(day time.Time) bool {
	d := dayNumber(day)
	return dayNumber(a.StartDate) <= d && d <= dayNumber(a.EndDate)
}

func dayNumber(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

type Type string

const (
	TypeSickness    Type = "Maladie"
	TypePaidLeave   Type = "Congé payé"
	TypeUnpaidLeave Type = "Congé sans solde"
	TypeTraining    Type = "Formation"
	TypeMission     Type = "Mission"
	TypePersonal    Type = "Raison personnelle"
	TypeOther       Type = "Autre"
)

var Types = []string{
	string(TypeSickness),
	string(TypePaidLeave),
	string(TypeUnpaidLeave),
	string(TypeTraining),
	string(TypeMission),
	string(TypePersonal),
	string(TypeOther),
}

type Status string

const (
	StatusPending  Status = "En attente"
	StatusApproved Status = "Approuvé"
	StatusRejected Status = "Rejeté"
)

var Statuses = []string{
	string(StatusPending),
	string(StatusApproved),
	string(StatusRejected),
}
