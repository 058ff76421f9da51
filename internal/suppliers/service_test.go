package suppliers

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

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	kv, err := store.NewFileKV(afero.NewMemMapFs(), "data")
	require.NoError(t, err)
	st := store.New(kv, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewService(context.Background(), st), st
}

func validForm() Form {
	return Form{
		Name:    "Acme Foods",
		Address: "12 Market Street, Lyon",
		Email:   "orders@acme.example",
		Phone:   "+33 4 12 34 56 78",
		TaxID:   "73282932000074",
	}
}

func TestCreate_Valid(t *testing.T) {
	svc, st := newTestService(t)

	sup, err := svc.Create(context.Background(), validForm())
	require.NoError(t, err)

	assert.NotEmpty(t, sup.ID)
	assert.Equal(t, "Acme Foods", sup.Name)
	assert.False(t, sup.CreatedAt.IsZero())

	persisted := st.Suppliers(context.Background())
	require.Len(t, persisted, 1)
	assert.Equal(t, sup.ID, persisted[0].ID)
}

func TestCreate_AllFieldsRequired(t *testing.T) {
	svc, st := newTestService(t)

	_, err := svc.Create(context.Background(), Form{})
	require.Error(t, err)

	var errs domain.FieldErrors
	require.ErrorAs(t, err, &errs)
	assert.Len(t, errs, 5)
	for _, field := range []string{"name", "address", "email", "phone", "taxId"} {
		assert.Contains(t, errs, field)
	}
	assert.Empty(t, st.Suppliers(context.Background()))
}

func TestCreate_WhitespaceOnlyFieldsFail(t *testing.T) {
	svc, _ := newTestService(t)

	form := validForm()
	form.Name = "   "

	_, err := svc.Create(context.Background(), form)
	var errs domain.FieldErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "name is required", errs["name"])
}

func TestCreate_EmailFormat(t *testing.T) {
	svc, _ := newTestService(t)

	form := validForm()
	form.Email = "not-an-email"

	_, err := svc.Create(context.Background(), form)
	var errs domain.FieldErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "email is invalid", errs["email"])

	form.Email = "a@b.co"
	_, err = svc.Create(context.Background(), form)
	require.NoError(t, err)
}

func TestUpdate_KeepsID(t *testing.T) {
	svc, _ := newTestService(t)

	sup, err := svc.Create(context.Background(), validForm())
	require.NoError(t, err)

	form := validForm()
	form.Name = "Acme Foods SARL"

	updated, err := svc.Update(context.Background(), sup.ID, form)
	require.NoError(t, err)
	assert.Equal(t, sup.ID, updated.ID)
	assert.Equal(t, "Acme Foods SARL", updated.Name)
	assert.Equal(t, sup.CreatedAt, updated.CreatedAt)
}

func TestUpdate_UnknownID(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Update(context.Background(), "missing", validForm())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc, st := newTestService(t)

	sup, err := svc.Create(context.Background(), validForm())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), sup.ID))
	assert.False(t, svc.Exists(sup.ID))
	assert.Empty(t, st.Suppliers(context.Background()))

	require.ErrorIs(t, svc.Delete(context.Background(), sup.ID), ErrNotFound)
}

func TestReload_PicksUpImportedData(t *testing.T) {
	svc, st := newTestService(t)

	st.SaveSuppliers(context.Background(), []domain.Supplier{{ID: "s1", Name: "Imported"}})
	svc.Reload(context.Background())

	require.True(t, svc.Exists("s1"))
	sup, err := svc.Get("s1")
	require.NoError(t, err)
	assert.Equal(t, "Imported", sup.Name)
}
