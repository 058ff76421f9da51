package export

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cjovignot/orderNow/internal/domain"
)

func testDocument() OrderDocument {
	return OrderDocument{
		Order: domain.Order{
			ID:        "a1b2c3d4-0000-0000-0000-000000000000",
			Status:    domain.OrderStatusDraft,
			Total:     44.5,
			CreatedAt: time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC),
		},
		Supplier: domain.Supplier{
			Name:    "Acme Foods",
			Address: "12 Market Street, Lyon",
			Email:   "orders@acme.example",
			Phone:   "+33 4 12 34 56 78",
			TaxID:   "73282932000074",
		},
		Lines: []DocumentLine{
			{Name: "Arabica Beans 1kg", Barcode: "3017620422003", Quantity: 2, Price: 12.5, Subtotal: 25},
			{Name: "Filter Papers", Barcode: "4012345678901", Quantity: 3, Price: 6.5, Subtotal: 19.5},
		},
	}
}

func TestBuildOrderHTML(t *testing.T) {
	html, err := BuildOrderHTML(testDocument())
	require.NoError(t, err)

	assert.Contains(t, html, "Purchase Order")
	assert.Contains(t, html, "Order #: a1b2c3d4")
	assert.Contains(t, html, "March 7, 2025")
	assert.Contains(t, html, "Status: DRAFT")
	assert.Contains(t, html, "Acme Foods")
	assert.Contains(t, html, "Tax ID: 73282932000074")
	assert.Contains(t, html, "Arabica Beans 1kg")
	assert.Contains(t, html, "3017620422003")
	assert.Contains(t, html, "€12.50")
	assert.Contains(t, html, "TOTAL: €44.50")
}

func TestBuildOrderHTML_EscapesContent(t *testing.T) {
	doc := testDocument()
	doc.Supplier.Name = "<script>alert(1)</script>"

	html, err := BuildOrderHTML(doc)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>alert")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestRenderOrder_PostsHTMLToGotenberg(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forms/chromium/convert/html", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.Header.Get("Content-Type"), "multipart/form-data")

		require.NoError(t, r.ParseMultipartForm(10<<20))
		file, _, err := r.FormFile("files")
		require.NoError(t, err)
		defer file.Close()

		html, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Contains(t, string(html), "Purchase Order")
		assert.Contains(t, string(html), "Acme Foods")

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("MOCK-PDF"))
	}))
	defer srv.Close()

	exporter := &PDFExporter{Endpoint: srv.URL, Client: srv.Client()}

	pdf, err := exporter.RenderOrder(context.Background(), testDocument())
	require.NoError(t, err)
	assert.Equal(t, "MOCK-PDF", string(pdf))
}

func TestRenderOrder_EndpointRequired(t *testing.T) {
	exporter := &PDFExporter{}
	_, err := exporter.RenderOrder(context.Background(), testDocument())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "endpoint required")

	var nilExporter *PDFExporter
	_, err = nilExporter.RenderOrder(context.Background(), testDocument())
	require.Error(t, err)
}

func TestRenderOrder_GotenbergFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("conversion failed"))
	}))
	defer srv.Close()

	exporter := &PDFExporter{Endpoint: srv.URL, Client: srv.Client()}

	_, err := exporter.RenderOrder(context.Background(), testDocument())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gotenberg response 500")
	assert.Contains(t, err.Error(), "conversion failed")
}

func TestFilename(t *testing.T) {
	doc := testDocument()
	assert.Equal(t, "order-a1b2c3d4.pdf", Filename(doc.Order))
}
