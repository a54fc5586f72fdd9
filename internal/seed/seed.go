package seed

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"farmaapp/m/domain"
)

// medicineTypes is the fixed catalog inserted on first run.
var medicineTypes = []domain.MedicineType{
	{NameEn: "Tablet", NameAr: "أقراص"},
	{NameEn: "Syrup", NameAr: "شراب"},
	{NameEn: "Injection", NameAr: "حقن"},
	{NameEn: "Capsule", NameAr: "كبسولات"},
	{NameEn: "Ointment", NameAr: "مرهم"},
	{NameEn: "Drops", NameAr: "نقط"},
	{NameEn: "Spray", NameAr: "بخاخ"},
	{NameEn: "Cream", NameAr: "كريم"},
}

// Types inserts the fixed medicine type catalog when the types table is
// empty. Seeding is best-effort: failures are logged, never fatal.
func Types(db *sqlx.DB, log *zap.SugaredLogger) {
	var count int
	if err := db.Get(&count, `SELECT COUNT(*) FROM types`); err != nil {
		log.Errorw("unable to count medicine types", "error", err)
		return
	}
	if count > 0 {
		return
	}

	tx, err := db.Beginx()
	if err != nil {
		log.Errorw("unable to start type seed transaction", "error", err)
		return
	}
	stmt, err := tx.Preparex(`INSERT INTO types (name_en, name_ar) VALUES (?, ?)`)
	if err != nil {
		log.Errorw("unable to prepare type insert", "error", err)
		_ = tx.Rollback()
		return
	}
	defer stmt.Close()

	rows := 0
	for _, t := range medicineTypes {
		if _, err := stmt.Exec(t.NameEn, t.NameAr); err != nil {
			log.Errorw("unable to insert medicine type", "name", t.NameEn, "error", err)
		} else {
			rows++
		}
	}

	if err := tx.Commit(); err != nil {
		log.Errorw("unable to commit type seed", "error", err)
		return
	}
	log.Infow("seeded medicine type catalog", "rows", rows)
}

// DefaultSettings inserts the default configuration row when the settings
// table is empty.
func DefaultSettings(db *sqlx.DB, log *zap.SugaredLogger) {
	var count int
	if err := db.Get(&count, `SELECT COUNT(*) FROM settings`); err != nil {
		log.Errorw("unable to count settings rows", "error", err)
		return
	}
	if count > 0 {
		return
	}

	_, err := db.Exec(
		`INSERT INTO settings (pharmacy_name, phone_number, doctor_name, doctor_phone, theme_mode) VALUES (?, ?, ?, ?, ?)`,
		"My Pharmacy", "0100000000", "", "", domain.ThemeLight,
	)
	if err != nil {
		log.Errorw("unable to insert default settings", "error", err)
		return
	}
	log.Infow("seeded default settings row")
}
