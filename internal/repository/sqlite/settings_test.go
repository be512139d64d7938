package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/gestipresence/presence-backend-go/internal/domain/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) settings.SettingsRepository {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err)
	repo, err := NewSettingsRepository(db)
	require.NoError(t, err)
	return repo
}

func TestSettingsRepository_EmptyIsNotFound(t *testing.T) {
	_, err := newRepo(t).Get(context.Background())
	assert.ErrorIs(t, err, settings.ErrSettingsNotFound)
}

func TestSettingsRepository_SaveOverwritesSingleRow(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	first := settings.DefaultProfile()
	saved, err := repo.Save(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, "GestiPro", saved.Name)
	assert.False(t, saved.UpdatedAt.IsZero())

	second := first
	second.Name = "Hôtel du Lac"
	second.Theme = settings.ThemeDark
	_, err = repo.Save(ctx, second)
	require.NoError(t, err)

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Hôtel du Lac", got.Name)
	assert.Equal(t, settings.ThemeDark, got.Theme)
	assert.Equal(t, first.Address, got.Address)
}
