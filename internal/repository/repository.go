package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"farmaapp/m/domain"
	"farmaapp/m/internal/database"
)

// ExpiryRange is an inclusive month/year window over item expiry dates.
// A range with any zero field is treated as unspecified and ignored.
type ExpiryRange struct {
	StartMonth int `json:"start_month"`
	StartYear  int `json:"start_year"`
	EndMonth   int `json:"end_month"`
	EndYear    int `json:"end_year"`
}

func (r ExpiryRange) complete() bool {
	return r.StartMonth > 0 && r.StartYear > 0 && r.EndMonth > 0 && r.EndYear > 0
}

// Repository performs CRUD over the items/types join. Every call opens a
// fresh connection, commits and closes; no handle outlives a call.
type Repository struct {
	dsn      string
	validate *validator.Validate
	log      *zap.SugaredLogger
}

// New constructs a Repository over the database at dsn.
func New(dsn string, log *zap.SugaredLogger) *Repository {
	return &Repository{dsn: dsn, validate: validator.New(), log: log}
}

func (r *Repository) open() (*sqlx.DB, error) {
	db, err := database.Connect(r.dsn)
	if err != nil {
		r.log.Errorw("unable to open database", "error", err)
		return nil, &domain.StorageError{Op: "open database", Err: err}
	}
	return db, nil
}

const listQuery = `
SELECT items.id, items.name, types.name_en AS type_name, items.quantity,
       items.price, items.expiry_month, items.expiry_year
FROM items
JOIN types ON items.type_id = types.id
ORDER BY items.expiry_year ASC, items.expiry_month ASC`

// List returns all items joined with their type name, ordered by
// (expiry_year, expiry_month) ascending. A fully specified filter
// restricts results to expiry dates inside the window; a partial filter
// is ignored and the full list returned.
func (r *Repository) List(filter *ExpiryRange) ([]domain.ItemRow, error) {
	db, err := r.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	items := make([]domain.ItemRow, 0)
	if err := db.Select(&items, listQuery); err != nil {
		return nil, &domain.StorageError{Op: "list items", Err: err}
	}

	if filter == nil || !filter.complete() {
		return items, nil
	}

	// Day 28 is a fixed month-end sentinel; expiry is stored at month
	// granularity so the exact day never matters.
	start := time.Date(filter.StartYear, time.Month(filter.StartMonth), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(filter.EndYear, time.Month(filter.EndMonth), 28, 0, 0, 0, 0, time.UTC)

	filtered := items[:0]
	for _, it := range items {
		d := time.Date(it.ExpiryYear, time.Month(it.ExpiryMonth), 1, 0, 0, 0, 0, time.UTC)
		if !d.Before(start) && !d.After(end) {
			filtered = append(filtered, it)
		}
	}
	return filtered, nil
}

// Add validates the input and inserts a new item, returning its id.
func (r *Repository) Add(input domain.ItemInput) (int64, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := r.validateInput(input); err != nil {
		return 0, err
	}

	db, err := r.open()
	if err != nil {
		return 0, err
	}
	defer db.Close()

	res, err := db.Exec(
		`INSERT INTO items (name, type_id, quantity, price, expiry_month, expiry_year) VALUES (?, ?, ?, ?, ?, ?)`,
		input.Name, input.TypeID, input.Quantity, input.Price, input.ExpiryMonth, input.ExpiryYear,
	)
	if err != nil {
		return 0, &domain.StorageError{Op: "insert item", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, &domain.StorageError{Op: "insert item", Err: err}
	}
	return id, nil
}

// Update rewrites every mutable field of an existing item. A missing id
// surfaces as NotFoundError.
func (r *Repository) Update(id int64, input domain.ItemInput) error {
	input.Name = strings.TrimSpace(input.Name)
	if err := r.validateInput(input); err != nil {
		return err
	}

	db, err := r.open()
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := db.Exec(
		`UPDATE items SET name = ?, type_id = ?, quantity = ?, price = ?, expiry_month = ?, expiry_year = ? WHERE id = ?`,
		input.Name, input.TypeID, input.Quantity, input.Price, input.ExpiryMonth, input.ExpiryYear, id,
	)
	if err != nil {
		return &domain.StorageError{Op: "update item", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return &domain.StorageError{Op: "update item", Err: err}
	}
	if affected == 0 {
		return &domain.NotFoundError{Entity: "item", ID: id}
	}
	return nil
}

// Delete removes an item. Deleting a missing id is a silent no-op.
func (r *Repository) Delete(id int64) error {
	db, err := r.open()
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec(`DELETE FROM items WHERE id = ?`, id); err != nil {
		return &domain.StorageError{Op: "delete item", Err: err}
	}
	return nil
}

// ListTypes returns the medicine type catalog in insertion order.
func (r *Repository) ListTypes() ([]domain.MedicineType, error) {
	db, err := r.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	types := make([]domain.MedicineType, 0)
	if err := db.Select(&types, `SELECT id, name_en, name_ar FROM types ORDER BY id`); err != nil {
		return nil, &domain.StorageError{Op: "list types", Err: err}
	}
	return types, nil
}

// fieldNames maps struct fields to the names the UI knows them by.
var fieldNames = map[string]string{
	"Name":        "name",
	"TypeID":      "type_id",
	"Quantity":    "quantity",
	"Price":       "price",
	"ExpiryMonth": "expiry_month",
	"ExpiryYear":  "expiry_year",
}

var fieldReasons = map[string]string{
	"name":         "item name is required",
	"type_id":      "a medicine type must be selected",
	"quantity":     "quantity must be a positive integer",
	"price":        "price must be a positive number",
	"expiry_month": "expiry month must be between 1 and 12",
	"expiry_year":  "expiry year is required",
}

func (r *Repository) validateInput(input domain.ItemInput) error {
	err := r.validate.Struct(input)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field := fieldNames[verrs[0].StructField()]
		if field == "" {
			field = verrs[0].StructField()
		}
		reason := fieldReasons[field]
		if reason == "" {
			reason = "value failed validation"
		}
		return &domain.ValidationError{Field: field, Reason: reason}
	}
	return &domain.ValidationError{Field: "input", Reason: err.Error()}
}
