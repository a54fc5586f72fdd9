package settings

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"farmaapp/m/domain"
	"farmaapp/m/internal/database"
	"farmaapp/m/internal/migrations"
	"farmaapp/m/internal/seed"
)

func newTestStore(t *testing.T, seeded bool) *Store {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "pharmacy_test.db")

	db, err := database.Connect(dsn)
	require.NoError(t, err)
	log := zap.NewNop().Sugar()
	migrations.Run(db, log)
	if seeded {
		seed.DefaultSettings(db, log)
	}
	require.NoError(t, db.Close())

	return New(dsn, log)
}

func TestLoadReturnsDefaultsWhenRowMissing(t *testing.T) {
	store := newTestStore(t, false)

	got := store.Load()
	require.Equal(t, "My Pharmacy", got.PharmacyName)
	require.Equal(t, domain.ThemeLight, got.ThemeMode)
	require.Empty(t, got.DoctorName)
	require.Empty(t, got.DoctorPhone)
}

func TestSaveOverwritesNonBlankFields(t *testing.T) {
	store := newTestStore(t, true)

	err := store.Save(domain.Settings{
		PharmacyName: "Central Pharmacy",
		PhoneNumber:  "0111111111",
		DoctorName:   "Dr. Salma",
		DoctorPhone:  "0122222222",
		ThemeMode:    domain.ThemeDark,
	})
	require.NoError(t, err)

	got := store.Load()
	require.Equal(t, "Central Pharmacy", got.PharmacyName)
	require.Equal(t, "0111111111", got.PhoneNumber)
	require.Equal(t, "Dr. Salma", got.DoctorName)
	require.Equal(t, "0122222222", got.DoctorPhone)
	require.Equal(t, domain.ThemeDark, got.ThemeMode)
}

func TestSaveBlankFieldsKeepPreviousValues(t *testing.T) {
	store := newTestStore(t, true)

	require.NoError(t, store.Save(domain.Settings{
		PharmacyName: "Central Pharmacy",
		DoctorName:   "Dr. Salma",
		ThemeMode:    domain.ThemeDark,
	}))

	require.NoError(t, store.Save(domain.Settings{
		PharmacyName: "   ",
		DoctorName:   "",
		ThemeMode:    domain.ThemeLight,
	}))

	got := store.Load()
	require.Equal(t, "Central Pharmacy", got.PharmacyName)
	require.Equal(t, "Dr. Salma", got.DoctorName)
	require.Equal(t, domain.ThemeLight, got.ThemeMode)
}

func TestSaveInsertsRowWhenMissing(t *testing.T) {
	store := newTestStore(t, false)

	require.NoError(t, store.Save(domain.Settings{
		PharmacyName: "Fresh Install Pharmacy",
		ThemeMode:    domain.ThemeDark,
	}))

	got := store.Load()
	require.Equal(t, "Fresh Install Pharmacy", got.PharmacyName)
	require.Equal(t, domain.ThemeDark, got.ThemeMode)
}
