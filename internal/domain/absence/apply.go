package absence

import (
	"time"

	"github.com/gestipresence/presence-backend-go/internal/domain/employee"
)

// ApplyAbsence returns the employee status an absence imposes on today, if
// any. Only approved absences whose range contains today have an effect.
// Sickness maps to Absent, missions to Mission and every other type to Congé.
func ApplyAbsence(a Absence, today time.Time) (employee.Status, bool) {
	if a.Status != StatusApproved || !a.Covers(today) {
		return "", false
	}

	switch a.Type {
	case TypeSickness:
		return employee.StatusAbsent, true
	case TypeMission:
		return employee.StatusMission, true
	default:
		return employee.StatusLeave, true
	}
}
