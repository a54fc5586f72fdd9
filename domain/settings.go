package domain

// Theme modes accepted by the settings row.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Settings is the single per-installation configuration record (id=1 by
// convention).
type Settings struct {
	PharmacyName string `db:"pharmacy_name" json:"pharmacy_name"`
	PhoneNumber  string `db:"phone_number" json:"phone_number"`
	DoctorName   string `db:"doctor_name" json:"doctor_name"`
	DoctorPhone  string `db:"doctor_phone" json:"doctor_phone"`
	ThemeMode    string `db:"theme_mode" json:"theme_mode"`
}

// DefaultSettings returns the values used when no settings row exists or
// it cannot be read.
func DefaultSettings() Settings {
	return Settings{
		PharmacyName: "My Pharmacy",
		ThemeMode:    ThemeLight,
	}
}
