package scan

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/gestipresence/presence-backend-go/internal/domain/directory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBadgeDetector_BareCode(t *testing.T) {
	d := NewBadgeDetector()

	det, ok := d.Detect([]byte("  emp001\n"))
	require.True(t, ok)
	assert.Equal(t, "EMP001", det.Code)
	assert.Empty(t, det.Type)
}

func TestBadgeDetector_QRPayload(t *testing.T) {
	person := directory.Person{
		Type:       directory.PersonTypeClient,
		Code:       "CL001",
		Name:       "Patrick Durand",
		Classifier: "Hôtel",
	}
	raw, err := json.Marshal(NewPayload(person, time.Date(2023, 6, 18, 10, 15, 0, 0, time.UTC)))
	require.NoError(t, err)

	det, ok := NewBadgeDetector().Detect(raw)
	require.True(t, ok)
	assert.Equal(t, "CL001", det.Code)
	assert.Equal(t, "Patrick Durand", det.Name)
	assert.Equal(t, directory.PersonTypeClient, det.Type)
}

func TestBadgeDetector_Rejects(t *testing.T) {
	d := NewBadgeDetector()
	for _, in := range []string{"", "   ", "hello", "{not json", `{"code":"X1"}`, "EMP"} {
		_, ok := d.Detect([]byte(in))
		assert.False(t, ok, in)
	}
}

func TestNewPayload(t *testing.T) {
	p := NewPayload(directory.Person{
		Type:       directory.PersonTypeEmployee,
		Code:       "EMP001",
		Name:       "Jean Dupont",
		Classifier: "Administration",
	}, time.Date(2023, 6, 18, 8, 15, 0, 0, time.UTC))

	assert.Equal(t, Payload{
		Code:      "EMP001",
		Name:      "Jean Dupont",
		Detail:    "Administration",
		Type:      "Employé",
		Timestamp: "2023-06-18T08:15:00Z",
	}, p)
}
