package repository

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

func newTestRepo(t *testing.T) (*Repository, string) {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "pharmacy_test.db")

	db, err := database.Connect(dsn)
	require.NoError(t, err)
	log := zap.NewNop().Sugar()
	migrations.Run(db, log)
	seed.Types(db, log)
	seed.DefaultSettings(db, log)
	require.NoError(t, db.Close())

	return New(dsn, log), dsn
}

func validItem() domain.ItemInput {
	return domain.ItemInput{
		Name:        "Paracetamol",
		TypeID:      1, // Tablet
		Quantity:    10,
		Price:       5.50,
		ExpiryMonth: 12,
		ExpiryYear:  2025,
	}
}

func TestAddAndListOrderedByExpiry(t *testing.T) {
	repo, _ := newTestRepo(t)

	for _, exp := range [][2]int{{2025, 1}, {2024, 6}, {2024, 1}} {
		in := validItem()
		in.ExpiryYear = exp[0]
		in.ExpiryMonth = exp[1]
		id, err := repo.Add(in)
		require.NoError(t, err)
		require.Greater(t, id, int64(0))
	}

	items, err := repo.List(nil)
	require.NoError(t, err)
	require.Len(t, items, 3)
	require.Equal(t, [2]int{2024, 1}, [2]int{items[0].ExpiryYear, items[0].ExpiryMonth})
	require.Equal(t, [2]int{2024, 6}, [2]int{items[1].ExpiryYear, items[1].ExpiryMonth})
	require.Equal(t, [2]int{2025, 1}, [2]int{items[2].ExpiryYear, items[2].ExpiryMonth})

	first := items[0]
	require.Equal(t, "Paracetamol", first.Name)
	require.Equal(t, "Tablet", first.TypeName)
	require.Equal(t, int64(10), first.Quantity)
	require.InDelta(t, 5.50, first.Price, 0.001)
}

func TestAddRejectsInvalidInput(t *testing.T) {
	repo, _ := newTestRepo(t)

	cases := []struct {
		name   string
		mutate func(*domain.ItemInput)
		field  string
	}{
		{"empty name", func(in *domain.ItemInput) { in.Name = "" }, "name"},
		{"whitespace name", func(in *domain.ItemInput) { in.Name = "   " }, "name"},
		{"zero quantity", func(in *domain.ItemInput) { in.Quantity = 0 }, "quantity"},
		{"negative quantity", func(in *domain.ItemInput) { in.Quantity = -3 }, "quantity"},
		{"zero price", func(in *domain.ItemInput) { in.Price = 0 }, "price"},
		{"negative price", func(in *domain.ItemInput) { in.Price = -1.5 }, "price"},
		{"month too low", func(in *domain.ItemInput) { in.ExpiryMonth = 0 }, "expiry_month"},
		{"month too high", func(in *domain.ItemInput) { in.ExpiryMonth = 13 }, "expiry_month"},
		{"missing type", func(in *domain.ItemInput) { in.TypeID = 0 }, "type_id"},
		{"missing year", func(in *domain.ItemInput) { in.ExpiryYear = 0 }, "expiry_year"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validItem()
			tc.mutate(&in)
			_, err := repo.Add(in)
			ve, ok := domain.AsValidation(err)
			require.True(t, ok, "expected validation error, got %v", err)
			require.Equal(t, tc.field, ve.Field)
		})
	}

	// No partial writes.
	items, err := repo.List(nil)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestUpdateRewritesFields(t *testing.T) {
	repo, _ := newTestRepo(t)

	id, err := repo.Add(validItem())
	require.NoError(t, err)

	updated := domain.ItemInput{
		Name:        "Ibuprofen",
		TypeID:      2, // Syrup
		Quantity:    4,
		Price:       12.25,
		ExpiryMonth: 3,
		ExpiryYear:  2026,
	}
	require.NoError(t, repo.Update(id, updated))

	items, err := repo.List(nil)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Ibuprofen", items[0].Name)
	require.Equal(t, "Syrup", items[0].TypeName)
	require.Equal(t, int64(4), items[0].Quantity)
	require.InDelta(t, 12.25, items[0].Price, 0.001)
	require.Equal(t, "03/2026", items[0].Expiry())
}

func TestUpdateMissingIDReturnsNotFound(t *testing.T) {
	repo, _ := newTestRepo(t)

	err := repo.Update(999, validItem())
	require.True(t, domain.IsNotFound(err), "expected not found, got %v", err)
}

func TestUpdateRejectsInvalidInput(t *testing.T) {
	repo, _ := newTestRepo(t)

	id, err := repo.Add(validItem())
	require.NoError(t, err)

	bad := validItem()
	bad.Quantity = 0
	err = repo.Update(id, bad)
	_, ok := domain.AsValidation(err)
	require.True(t, ok)

	// The stored row is untouched.
	items, err := repo.List(nil)
	require.NoError(t, err)
	require.Equal(t, int64(10), items[0].Quantity)
}

func TestDeleteIsIdempotent(t *testing.T) {
	repo, _ := newTestRepo(t)

	id, err := repo.Add(validItem())
	require.NoError(t, err)

	require.NoError(t, repo.Delete(id))
	require.NoError(t, repo.Delete(id))

	items, err := repo.List(nil)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestFilterRoundTrip(t *testing.T) {
	repo, _ := newTestRepo(t)

	for _, exp := range [][2]int{{2024, 1}, {2024, 6}, {2025, 1}} {
		in := validItem()
		in.ExpiryYear = exp[0]
		in.ExpiryMonth = exp[1]
		_, err := repo.Add(in)
		require.NoError(t, err)
	}

	items, err := repo.List(&ExpiryRange{StartMonth: 3, StartYear: 2024, EndMonth: 1, EndYear: 2025})
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, [2]int{2024, 6}, [2]int{items[0].ExpiryYear, items[0].ExpiryMonth})
	require.Equal(t, [2]int{2025, 1}, [2]int{items[1].ExpiryYear, items[1].ExpiryMonth})
}

func TestPartialFilterReturnsFullList(t *testing.T) {
	repo, _ := newTestRepo(t)

	for _, exp := range [][2]int{{2024, 1}, {2024, 6}, {2025, 1}} {
		in := validItem()
		in.ExpiryYear = exp[0]
		in.ExpiryMonth = exp[1]
		_, err := repo.Add(in)
		require.NoError(t, err)
	}

	items, err := repo.List(&ExpiryRange{StartMonth: 3})
	require.NoError(t, err)
	require.Len(t, items, 3)
}

func TestListTypesInsertionOrder(t *testing.T) {
	repo, _ := newTestRepo(t)

	types, err := repo.ListTypes()
	require.NoError(t, err)
	require.Len(t, types, 8)
	require.Equal(t, "Tablet", types[0].NameEn)
	require.Equal(t, "Cream", types[7].NameEn)
	for i, tp := range types {
		require.Equal(t, int64(i+1), tp.ID)
	}
}

func TestDeletingTypeCascadesToItems(t *testing.T) {
	repo, dsn := newTestRepo(t)

	_, err := repo.Add(validItem())
	require.NoError(t, err)

	db, err := database.Connect(dsn)
	require.NoError(t, err)
	_, err = db.Exec(`DELETE FROM types WHERE id = 1`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	items, err := repo.List(nil)
	require.NoError(t, err)
	require.Empty(t, items)
}
