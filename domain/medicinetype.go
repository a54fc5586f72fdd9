package domain

// MedicineType is a fixed category tag for an inventory item.
type MedicineType struct {
	ID     int64  `db:"id" json:"id"`
	NameEn string `db:"name_en" json:"name_en"`
	NameAr string `db:"name_ar" json:"name_ar"`
}
