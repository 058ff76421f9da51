package catalog

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cjovignot/orderNow/internal/domain"
	"github.com/cjovignot/orderNow/internal/store"
)

type fakeSuppliers map[string]struct{}

func (f fakeSuppliers) Exists(id string) bool {
	_, ok := f[id]
	return ok
}

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	kv, err := store.NewFileKV(afero.NewMemMapFs(), "data")
	require.NoError(t, err)
	st := store.New(kv, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewService(context.Background(), st, fakeSuppliers{"s1": {}, "s2": {}}), st
}

func price(v float64) *float64 {
	return &v
}

func validForm() Form {
	return Form{
		Name:       "Arabica Beans 1kg",
		Barcode:    "3017620422003",
		SupplierID: "s1",
		Quantity:   10,
		Price:      price(12.9),
	}
}

func TestCreate_Valid(t *testing.T) {
	svc, st := newTestService(t)

	p, err := svc.Create(context.Background(), validForm())
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	require.NotNil(t, p.Price)
	assert.Equal(t, 12.9, *p.Price)

	persisted := st.Products(context.Background())
	require.Len(t, persisted, 1)
	assert.Equal(t, p.ID, persisted[0].ID)
}

func TestCreate_EmptyFormFailsEveryCheck(t *testing.T) {
	svc, st := newTestService(t)

	_, err := svc.Create(context.Background(), Form{})
	var errs domain.FieldErrors
	require.ErrorAs(t, err, &errs)

	assert.Len(t, errs, 4)
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "barcode")
	assert.Contains(t, errs, "supplierId")
	assert.Equal(t, "quantity must be greater than 0", errs["quantity"])
	assert.Empty(t, st.Products(context.Background()))
}

func TestCreate_UnknownSupplier(t *testing.T) {
	svc, _ := newTestService(t)

	form := validForm()
	form.SupplierID = "missing"

	_, err := svc.Create(context.Background(), form)
	var errs domain.FieldErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "supplier does not exist", errs["supplierId"])
}

func TestCreate_BarcodeUniquePerSupplier(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), validForm())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), validForm())
	var errs domain.FieldErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "barcode already used for this supplier", errs["barcode"])

	// The same barcode under another supplier is a different article.
	form := validForm()
	form.SupplierID = "s2"
	_, err = svc.Create(context.Background(), form)
	require.NoError(t, err)
}

func TestCreate_NonPositivePriceStoredAsAbsent(t *testing.T) {
	svc, _ := newTestService(t)

	form := validForm()
	form.Price = price(0)

	p, err := svc.Create(context.Background(), form)
	require.NoError(t, err)
	assert.Nil(t, p.Price)

	form = validForm()
	form.Barcode = "4012345678901"
	form.Price = nil

	p, err = svc.Create(context.Background(), form)
	require.NoError(t, err)
	assert.Nil(t, p.Price)
}

func TestUpdate_ExcludesSelfFromBarcodeCheck(t *testing.T) {
	svc, _ := newTestService(t)

	p, err := svc.Create(context.Background(), validForm())
	require.NoError(t, err)

	form := validForm()
	form.Quantity = 25

	updated, err := svc.Update(context.Background(), p.ID, form)
	require.NoError(t, err)
	assert.Equal(t, 25, updated.Quantity)
}

func TestUpdate_UnknownID(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Update(context.Background(), "missing", validForm())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFindByBarcode_FirstMatchWins(t *testing.T) {
	svc, _ := newTestService(t)

	first, err := svc.Create(context.Background(), validForm())
	require.NoError(t, err)

	form := validForm()
	form.SupplierID = "s2"
	_, err = svc.Create(context.Background(), form)
	require.NoError(t, err)

	found, ok := svc.FindByBarcode("3017620422003")
	require.True(t, ok)
	assert.Equal(t, first.ID, found.ID)

	_, ok = svc.FindByBarcode("0000000000000")
	assert.False(t, ok)
}

func TestDelete(t *testing.T) {
	svc, st := newTestService(t)

	p, err := svc.Create(context.Background(), validForm())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), p.ID))
	assert.Empty(t, st.Products(context.Background()))

	require.ErrorIs(t, svc.Delete(context.Background(), p.ID), ErrNotFound)
}
