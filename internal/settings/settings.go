package settings

import (
	"strings"

	"go.uber.org/zap"

	"farmaapp/m/domain"
	"farmaapp/m/internal/database"
)

// Store reads and writes the single settings row (id=1 by convention).
// Like the item repository it opens a fresh connection per call.
type Store struct {
	dsn string
	log *zap.SugaredLogger
}

// New constructs a Store over the database at dsn.
func New(dsn string, log *zap.SugaredLogger) *Store {
	return &Store{dsn: dsn, log: log}
}

const loadQuery = `
SELECT pharmacy_name,
       COALESCE(phone_number, '') AS phone_number,
       COALESCE(doctor_name, '') AS doctor_name,
       COALESCE(doctor_phone, '') AS doctor_phone,
       COALESCE(theme_mode, 'light') AS theme_mode
FROM settings WHERE id = 1`

// Load returns the stored settings, falling back to defaults on a missing
// row or any read error. Read errors are logged, never surfaced.
func (s *Store) Load() domain.Settings {
	out := domain.DefaultSettings()

	db, err := database.Connect(s.dsn)
	if err != nil {
		s.log.Errorw("unable to open database for settings", "error", err)
		return out
	}
	defer db.Close()

	var row domain.Settings
	if err := db.Get(&row, loadQuery); err != nil {
		s.log.Errorw("unable to load settings, using defaults", "error", err)
		return out
	}

	if row.PharmacyName != "" {
		out.PharmacyName = row.PharmacyName
	}
	out.PhoneNumber = row.PhoneNumber
	out.DoctorName = row.DoctorName
	out.DoctorPhone = row.DoctorPhone
	if row.ThemeMode == domain.ThemeDark {
		out.ThemeMode = domain.ThemeDark
	}
	return out
}

// Save upserts the settings row. A text field blank after trimming keeps
// its previous value; fields are only ever replaced, never cleared. The
// theme mode comes from a boolean toggle so it is always light or dark.
func (s *Store) Save(in domain.Settings) error {
	merged := s.Load()
	if v := strings.TrimSpace(in.PharmacyName); v != "" {
		merged.PharmacyName = v
	}
	if v := strings.TrimSpace(in.PhoneNumber); v != "" {
		merged.PhoneNumber = v
	}
	if v := strings.TrimSpace(in.DoctorName); v != "" {
		merged.DoctorName = v
	}
	if v := strings.TrimSpace(in.DoctorPhone); v != "" {
		merged.DoctorPhone = v
	}
	if in.ThemeMode == domain.ThemeLight || in.ThemeMode == domain.ThemeDark {
		merged.ThemeMode = in.ThemeMode
	}

	db, err := database.Connect(s.dsn)
	if err != nil {
		return &domain.StorageError{Op: "open database", Err: err}
	}
	defer db.Close()

	var count int
	if err := db.Get(&count, `SELECT COUNT(*) FROM settings`); err != nil {
		return &domain.StorageError{Op: "count settings", Err: err}
	}

	if count == 0 {
		_, err = db.Exec(
			`INSERT INTO settings (pharmacy_name, phone_number, doctor_name, doctor_phone, theme_mode) VALUES (?, ?, ?, ?, ?)`,
			merged.PharmacyName, merged.PhoneNumber, merged.DoctorName, merged.DoctorPhone, merged.ThemeMode,
		)
	} else {
		_, err = db.Exec(
			`UPDATE settings SET pharmacy_name = ?, phone_number = ?, doctor_name = ?, doctor_phone = ?, theme_mode = ? WHERE id = 1`,
			merged.PharmacyName, merged.PhoneNumber, merged.DoctorName, merged.DoctorPhone, merged.ThemeMode,
		)
	}
	if err != nil {
		return &domain.StorageError{Op: "save settings", Err: err}
	}
	return nil
}
