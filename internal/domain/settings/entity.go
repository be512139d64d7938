package settings

import "time"

// CompanyProfile is the facility identity shown on badges and exports.
type CompanyProfile struct {
	Name            string
	Logo            string
	Description     string
	Address         string
	Phone           string
	Email           string
	Website         string
	OpeningHours    string
	EstablishedYear string
	Theme           Theme
	UpdatedAt       time.Time
}

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// DefaultProfile is served until an administrator saves the first profile.
func DefaultProfile() CompanyProfile {
	return CompanyProfile{
		Name:            "GestiPro",
		Logo:            "GP",
		Description:     "Système de gestion des présences pour hôtel, restaurant, salles et production d'eau",
		Address:         "123 Avenue Principale, Ville",
		Phone:           "+33 1 23 45 67 89",
		Email:           "contact@gestipro.com",
		Website:         "www.gestipro.com",
		OpeningHours:    "Lun-Ven: 8h-18h, Sam: 9h-13h",
		EstablishedYear: "2023",
		Theme:           ThemeLight,
	}
}
