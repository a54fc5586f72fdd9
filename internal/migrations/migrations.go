package migrations

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Run creates the database schema. Statement failures are logged and the
// remaining statements still run; only a failure to open the database at
// all (handled by the caller) aborts startup.
func Run(db *sqlx.DB, log *zap.SugaredLogger) {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS types (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            name_en TEXT NOT NULL UNIQUE,
            name_ar TEXT NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS items (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            name TEXT NOT NULL,
            type_id INTEGER NOT NULL,
            quantity INTEGER NOT NULL CHECK(quantity >= 0),
            price REAL NOT NULL CHECK(price >= 0),
            expiry_month INTEGER NOT NULL CHECK(expiry_month BETWEEN 1 AND 12),
            expiry_year INTEGER NOT NULL,
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
            FOREIGN KEY (type_id) REFERENCES types(id) ON DELETE CASCADE
        );`,
		`CREATE TABLE IF NOT EXISTS settings (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            pharmacy_name TEXT NOT NULL,
            phone_number TEXT,
            doctor_name TEXT,
            doctor_phone TEXT,
            theme_mode TEXT CHECK(theme_mode IN ('light', 'dark')) DEFAULT 'light'
        );`,
		`CREATE INDEX IF NOT EXISTS idx_items_name ON items(name);`,
		`CREATE INDEX IF NOT EXISTS idx_items_type ON items(type_id);`,
		`CREATE INDEX IF NOT EXISTS idx_items_expiry ON items(expiry_year, expiry_month);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			log.Errorw("schema statement failed", "error", err)
		}
	}

	ensureDoctorColumns(db, log)
}

// ensureDoctorColumns patches settings tables created before the doctor
// fields existed. Each column is attempted independently and failures are
// swallowed (best-effort additive migration).
func ensureDoctorColumns(db *sqlx.DB, log *zap.SugaredLogger) {
	type columnInfo struct {
		CID          int     `db:"cid"`
		Name         string  `db:"name"`
		Type         string  `db:"type"`
		NotNull      int     `db:"notnull"`
		DefaultValue *string `db:"dflt_value"`
		PK           int     `db:"pk"`
	}

	var cols []columnInfo
	if err := db.Select(&cols, `PRAGMA table_info(settings)`); err != nil {
		log.Warnw("unable to inspect settings columns", "error", err)
		return
	}
	existing := make(map[string]bool, len(cols))
	for _, c := range cols {
		existing[c.Name] = true
	}

	for _, col := range []string{"doctor_name", "doctor_phone"} {
		if existing[col] {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE settings ADD COLUMN %s TEXT", col)
		if _, err := db.Exec(stmt); err != nil {
			log.Warnw("unable to add settings column", "column", col, "error", err)
		}
	}
}
