package settings

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/gestipresence/presence-backend-go/internal/domain/settings"
	"github.com/gestipresence/presence-backend-go/internal/pkg/validator"
	"github.com/gestipresence/presence-backend-go/internal/repository/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) settings.SettingsService {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err)
	repo, err := sqlite.NewSettingsRepository(db)
	require.NoError(t, err)
	return NewSettingsService(repo)
}

func TestGetSettings_DefaultsBeforeFirstSave(t *testing.T) {
	svc := newService(t)

	got, err := svc.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "GestiPro", got.Name)
	assert.Equal(t, "light", got.Theme)
	assert.Nil(t, got.UpdatedAt)
}

func TestUpdateSettings(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	saved, err := svc.UpdateSettings(ctx, settings.UpdateSettingsRequest{
		Name:            "Domaine des Pins",
		Logo:            "DP",
		Email:           "accueil@domainedespins.fr",
		EstablishedYear: "2019",
		Theme:           "dark",
	})
	require.NoError(t, err)
	assert.Equal(t, "Domaine des Pins", saved.Name)
	assert.NotNil(t, saved.UpdatedAt)

	got, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dark", got.Theme)
	assert.Equal(t, "2019", got.EstablishedYear)
}

func TestUpdateSettings_Validation(t *testing.T) {
	svc := newService(t)

	_, err := svc.UpdateSettings(context.Background(), settings.UpdateSettingsRequest{
		Email: "not-an-email",
		Theme: "neon",
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "theme")
}
