package attendance

import (
	"testing"

	"github.com/gestipresence/presence-backend-go/internal/domain/directory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanEvent(code string, dir Direction, at string) ScanEvent {
	return ScanEvent{
		PersonType: directory.PersonTypeEmployee,
		Code:       code,
		Name:       "Jean Dupont",
		Direction:  dir,
		Date:       "18/06/2023",
		Time:       at,
	}
}

func TestReconcile_NewCheckIn(t *testing.T) {
	rec, isNew, changed := Reconcile(nil, scanEvent("EMP001", DirectionIn, "08:15"))

	assert.True(t, isNew)
	assert.True(t, changed)
	assert.Equal(t, "EMP001", rec.Code)
	assert.Equal(t, "Jean Dupont", rec.Name)
	assert.Equal(t, "18/06/2023", rec.Date)
	assert.Equal(t, "08:15", rec.TimeIn)
	assert.Empty(t, rec.TimeOut)
	assert.Equal(t, StatusInProgress, rec.Status)
	assert.Equal(t, UnknownClassifier, rec.Classifier)
	assert.Equal(t, directory.PersonTypeEmployee, rec.PersonType)
}

func TestReconcile_InThenOut(t *testing.T) {
	first, isNew, _ := Reconcile(nil, scanEvent("EMP001", DirectionIn, "08:15"))
	require.True(t, isNew)

	second, isNew, changed := Reconcile(&first, scanEvent("EMP001", DirectionOut, "17:30"))

	assert.False(t, isNew)
	assert.True(t, changed)
	assert.Equal(t, "08:15", second.TimeIn)
	assert.Equal(t, "17:30", second.TimeOut)
	assert.Equal(t, StatusComplete, second.Status)
}

func TestReconcile_OutWithoutPriorRecord(t *testing.T) {
	rec, isNew, changed := Reconcile(nil, scanEvent("EMP002", DirectionOut, "17:00"))

	assert.True(t, isNew)
	assert.True(t, changed)
	assert.Empty(t, rec.TimeIn)
	assert.Equal(t, "17:00", rec.TimeOut)
	assert.Equal(t, StatusComplete, rec.Status)
	assert.Equal(t, UnknownClassifier, rec.Classifier)
}

func TestReconcile_CheckInAfterLoneCheckOut(t *testing.T) {
	first, _, _ := Reconcile(nil, scanEvent("EMP004", DirectionOut, "09:00"))
	require.Equal(t, StatusComplete, first.Status)

	second, isNew, changed := Reconcile(&first, scanEvent("EMP004", DirectionIn, "10:00"))

	assert.False(t, isNew)
	assert.True(t, changed)
	assert.Equal(t, "10:00", second.TimeIn)
	assert.Equal(t, "09:00", second.TimeOut)
	assert.Equal(t, StatusInProgress, second.Status)
	assert.False(t, CanTransition(first.Status, second.Status))
}

func TestReconcile_GuardFailuresAreSilentNoOps(t *testing.T) {
	checkedIn := Record{Code: "EMP001", Date: "18/06/2023", TimeIn: "08:15", Status: StatusInProgress}
	absent := Record{Code: "EMP002", Date: "18/06/2023", Status: StatusAbsent}
	complete := Record{Code: "EMP003", Date: "18/06/2023", TimeIn: "08:05", TimeOut: "17:15", Status: StatusComplete}

	tests := []struct {
		name     string
		existing Record
		dir      Direction
	}{
		{"second check-in keeps first time", checkedIn, DirectionIn},
		{"check-out without check-in", absent, DirectionOut},
		{"check-in after completion", complete, DirectionIn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			existing := tt.existing
			rec, isNew, changed := Reconcile(&existing, scanEvent(existing.Code, tt.dir, "12:00"))

			assert.False(t, isNew)
			assert.False(t, changed)
			assert.Equal(t, tt.existing, rec)
		})
	}
}

func TestReconcile_SecondCheckOutOverwritesTime(t *testing.T) {
	existing := Record{Code: "EMP003", Date: "18/06/2023", TimeIn: "08:05", TimeOut: "17:15", Status: StatusComplete}

	rec, _, changed := Reconcile(&existing, scanEvent("EMP003", DirectionOut, "18:00"))

	assert.True(t, changed)
	assert.Equal(t, "18:00", rec.TimeOut)
	assert.Equal(t, StatusComplete, rec.Status)
}

func TestReconcile_DoesNotMutateExisting(t *testing.T) {
	existing := Record{Code: "EMP001", Date: "18/06/2023"}
	_, _, _ = Reconcile(&existing, scanEvent("EMP001", DirectionIn, "08:00"))
	assert.Empty(t, existing.TimeIn)
}

func TestDeriveStatus(t *testing.T) {
	assert.Equal(t, StatusAbsent, DeriveStatus("", ""))
	assert.Equal(t, StatusInProgress, DeriveStatus("08:00", ""))
	assert.Equal(t, StatusComplete, DeriveStatus("08:00", "17:00"))
	assert.Equal(t, StatusComplete, DeriveStatus("", "17:00"))
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusAbsent, StatusInProgress))
	assert.True(t, CanTransition(StatusInProgress, StatusComplete))
	assert.True(t, CanTransition(StatusComplete, StatusComplete))
	assert.False(t, CanTransition(StatusComplete, StatusInProgress))
	assert.False(t, CanTransition(StatusInProgress, StatusAbsent))
}
