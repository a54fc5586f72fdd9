package domain

import "fmt"

// ItemInput carries the writable fields of an inventory item. All fields
// are validated before any write reaches storage.
type ItemInput struct {
	Name        string  `json:"name" validate:"required"`
	TypeID      int64   `json:"type_id" validate:"required,gt=0"`
	Quantity    int64   `json:"quantity" validate:"required,gt=0"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	ExpiryMonth int     `json:"expiry_month" validate:"required,min=1,max=12"`
	ExpiryYear  int     `json:"expiry_year" validate:"required,gt=0"`
}

// ItemRow is one listing row: an item joined with its type name.
type ItemRow struct {
	ID          int64   `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	TypeName    string  `db:"type_name" json:"type_name"`
	Quantity    int64   `db:"quantity" json:"quantity"`
	Price       float64 `db:"price" json:"price"`
	ExpiryMonth int     `db:"expiry_month" json:"expiry_month"`
	ExpiryYear  int     `db:"expiry_year" json:"expiry_year"`
}

// Expiry renders the month-granularity expiry as MM/YYYY.
func (r ItemRow) Expiry() string {
	return fmt.Sprintf("%02d/%d", r.ExpiryMonth, r.ExpiryYear)
}
