package store

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cjovignot/orderNow/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFileKV_RoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	kv, err := NewFileKV(fs, "data")
	require.NoError(t, err)

	_, ok, err := kv.Load(context.Background(), CollectionSuppliers)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Save(context.Background(), CollectionSuppliers, []byte(`[{"id":"s1"}]`)))

	data, ok, err := kv.Load(context.Background(), CollectionSuppliers)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":"s1"}]`, string(data))

	// The temp file never survives a completed write.
	exists, err := afero.Exists(fs, "data/suppliers.json.tmp")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFileKV_Reset(t *testing.T) {
	kv, err := NewFileKV(afero.NewMemMapFs(), "data")
	require.NoError(t, err)

	require.NoError(t, kv.Save(context.Background(), CollectionOrders, []byte(`[]`)))
	require.NoError(t, kv.Reset(context.Background(), Collections...))

	_, ok, err := kv.Load(context.Background(), CollectionOrders)
	require.NoError(t, err)
	assert.False(t, ok)

	// Resetting absent collections is not an error.
	require.NoError(t, kv.Reset(context.Background(), Collections...))
}

func TestStore_EmptyReadsYieldEmptyCollections(t *testing.T) {
	kv, err := NewFileKV(afero.NewMemMapFs(), "data")
	require.NoError(t, err)
	st := New(kv, discardLogger())

	assert.Empty(t, st.Suppliers(context.Background()))
	assert.Empty(t, st.Products(context.Background()))
	assert.Empty(t, st.Orders(context.Background()))
	assert.Equal(t, domain.DefaultPreferences(), st.Preferences(context.Background()))
}

func TestStore_CorruptDocumentYieldsEmptyCollection(t *testing.T) {
	fs := afero.NewMemMapFs()
	kv, err := NewFileKV(fs, "data")
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fs, "data/products.json", []byte("{not json"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "data/preferences.json", []byte("{not json"), 0o644))

	st := New(kv, discardLogger())

	assert.Empty(t, st.Products(context.Background()))
	assert.Equal(t, domain.DefaultPreferences(), st.Preferences(context.Background()))
}

func TestStore_TypedRoundTrip(t *testing.T) {
	kv, err := NewFileKV(afero.NewMemMapFs(), "data")
	require.NoError(t, err)
	st := New(kv, discardLogger())

	st.SaveSuppliers(context.Background(), []domain.Supplier{{ID: "s1", Name: "Acme"}})
	st.SaveProducts(context.Background(), []domain.Product{{ID: "p1", Barcode: "111", SupplierID: "s1", Quantity: 2}})
	st.SaveOrders(context.Background(), []domain.Order{{ID: "o1", SupplierID: "s1", Status: domain.OrderStatusDraft}})
	st.SavePreferences(context.Background(), domain.Preferences{Theme: domain.ThemeDark, Language: "en"})

	require.Len(t, st.Suppliers(context.Background()), 1)
	require.Len(t, st.Products(context.Background()), 1)
	require.Len(t, st.Orders(context.Background()), 1)
	assert.Equal(t, domain.ThemeDark, st.Preferences(context.Background()).Theme)

	st.Clear(context.Background())
	assert.Empty(t, st.Suppliers(context.Background()))
	assert.Equal(t, domain.DefaultPreferences(), st.Preferences(context.Background()))
}
