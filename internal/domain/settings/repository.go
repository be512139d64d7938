package settings

import "context"

type SettingsRepository interface {
	// Get returns ErrSettingsNotFound when nothing has been saved yet
	Get(ctx context.Context) (CompanyProfile, error)
	Save(ctx context.Context, profile CompanyProfile) (CompanyProfile, error)
}
