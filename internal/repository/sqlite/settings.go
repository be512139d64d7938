package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gestipresence/presence-backend-go/internal/domain/settings"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// profileID is the primary key of the single settings row.
const profileID = 1

type companyProfileModel struct {
	ID              uint   `gorm:"primarykey"`
	Name            string `gorm:"not null"`
	Logo            string
	Description     string
	Address         string
	Phone           string
	Email           string
	Website         string
	OpeningHours    string
	EstablishedYear string
	Theme           string    `gorm:"not null;default:light"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (companyProfileModel) TableName() string {
	return "company_profile"
}

func (m companyProfileModel) toEntity() settings.CompanyProfile {
	return settings.CompanyProfile{
		Name:            m.Name,
		Logo:            m.Logo,
		Description:     m.Description,
		Address:         m.Address,
		Phone:           m.Phone,
		Email:           m.Email,
		Website:         m.Website,
		OpeningHours:    m.OpeningHours,
		EstablishedYear: m.EstablishedYear,
		Theme:           settings.Theme(m.Theme),
		UpdatedAt:       m.UpdatedAt,
	}
}

func newCompanyProfileModel(p settings.CompanyProfile) companyProfileModel {
	return companyProfileModel{
		ID:              profileID,
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
}

type settingsRepositoryImpl struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) (settings.SettingsRepository, error) {
	if err := db.AutoMigrate(&companyProfileModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate company_profile table: %w", err)
	}
	return &settingsRepositoryImpl{db: db}, nil
}

// Get implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) Get(ctx context.Context) (settings.CompanyProfile, error) {
	var m companyProfileModel
	err := r.db.WithContext(ctx).First(&m, profileID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return settings.CompanyProfile{}, settings.ErrSettingsNotFound
		}
		return settings.CompanyProfile{}, fmt.Errorf("failed to load company profile: %w", err)
	}
	return m.toEntity(), nil
}

// Save implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) Save(ctx context.Context, profile settings.CompanyProfile) (settings.CompanyProfile, error) {
	m := newCompanyProfileModel(profile)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&m).Error
	if err != nil {
		return settings.CompanyProfile{}, fmt.Errorf("failed to save company profile: %w", err)
	}
	return r.Get(ctx)
}
