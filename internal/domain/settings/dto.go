package settings

import (
	"time"

	"github.com/gestipresence/presence-backend-go/internal/pkg/validator"
)

type UpdateSettingsRequest struct {
	Name            string `json:"name" validate:"required,max=255"`
	Logo            string `json:"logo" validate:"max=3"`
	Description     string `json:"description" validate:"max=1000"`
	Address         string `json:"address" validate:"max=255"`
	Phone           string `json:"phone" validate:"max=32"`
	Email           string `json:"email" validate:"omitempty,email"`
	Website         string `json:"website" validate:"max=255"`
	OpeningHours    string `json:"opening_hours" validate:"max=255"`
	EstablishedYear string `json:"established_year" validate:"omitempty,numeric,len=4"`
	Theme           string `json:"theme" validate:"omitempty,oneof=light dark system"`
}

func (r *UpdateSettingsRequest) Validate() error {
	if r.Theme == "" {
		r.Theme = string(ThemeLight)
	}
	return validator.Struct(r)
}

func (r UpdateSettingsRequest) ToProfile() CompanyProfile {
	return CompanyProfile{
		Name:            r.Name,
		Logo:            r.Logo,
		Description:     r.Description,
		Address:         r.Address,
		Phone:           r.Phone,
		Email:           r.Email,
		Website:         r.Website,
		OpeningHours:    r.OpeningHours,
		EstablishedYear: r.EstablishedYear,
		Theme:           Theme(r.Theme),
	}
}

type SettingsResponse struct {
	Name            string     `json:"name"`
	Logo            string     `json:"logo"`
	Description     string     `json:"description"`
	Address         string     `json:"address"`
	Phone           string     `json:"phone"`
	Email           string     `json:"email"`
	Website         string     `json:"website"`
	OpeningHours    string     `json:"opening_hours"`
	EstablishedYear string     `json:"established_year"`
	Theme           string     `json:"theme"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

func NewSettingsResponse(p CompanyProfile) SettingsResponse {
	resp := SettingsResponse{
		Name:            p.Name,
		Logo:            p.Logo,
		Description:     p.Description,
		Address:         p.Address,
		Phone:           p.Phone,
		Email:           p.Email,
		Website:         p.Website,
		OpeningHours:    p.OpeningHours,
		EstablishedYear: p.EstablishedYear,
		Theme:           string(p.Theme),
	}
	if !p.UpdatedAt.IsZero() {
		updated := p.UpdatedAt
		resp.UpdatedAt = &updated
	}
	return resp
}
