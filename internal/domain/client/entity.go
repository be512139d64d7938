package client

import (
	"time"

	"github.com/gestipresence/presence-backend-go/internal/domain/directory"
)

// CodePrefix is prepended to the digits of every client pass code.
const CodePrefix = "CL"

type Client struct {
	Code          string
	Name          string
	Service       string
	Details       string
	Email         string
	Phone         string
	ArrivalDate   *time.Time
	DepartureDate *time.Time
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (c Client) Person() directory.Person {
	return directory.Person{
		Type:       directory.PersonTypeClient,
		Code:       c.Code,
		Name:       c.Name,
		Classifier: c.Service,
		Status:     string(c.Status),
	}
}

type Status string

const (
	StatusActive    Status = "Actif"
	StatusReserved  Status = "Réservé"
	StatusFinished  Status = "Terminé"
	StatusCancelled Status = "Annulé"
)

var Statuses = []string{
	string(StatusActive),
	string(StatusReserved),
	string(StatusFinished),
	string(StatusCancelled),
}

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusReserved, StatusFinished, StatusCancelled:
		return true
	}
	return false
}

const (
	ServiceRestaurant = "Restaurant"
	ServiceHotel      = "Hôtel"
	ServiceWater      = "Production d'eau"
	ServiceConference = "Salle de conférence"
	ServiceEvents     = "Salle de fête"
)

var Services = []string{
	ServiceRestaurant,
	ServiceHotel,
	ServiceWater,
	ServiceConference,
	ServiceEvents,
}
