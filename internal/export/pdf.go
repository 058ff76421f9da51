// Package export produces order documents and mail drafts. The transforms
// are pure; the only I/O is the PDF conversion call.
package export

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/cjovignot/orderNow/internal/domain"
)

// DocumentLine is one row of the order document table.
type DocumentLine struct {
	Name     string
	Barcode  string
	Quantity int
	Price    float64
	Subtotal float64
}

// OrderDocument aggregates everything the fixed document layout needs.
type OrderDocument struct {
	Order    domain.Order
	Supplier domain.Supplier
	Lines    []DocumentLine
}

// PDFExporter wraps Gotenberg interactions for order document generation.
type PDFExporter struct {
	Endpoint string
	Client   *http.Client
}

// NewPDFExporter constructs an exporter against a Gotenberg endpoint.
func NewPDFExporter(endpoint string, client *http.Client) *PDFExporter {
	return &PDFExporter{Endpoint: endpoint, Client: client}
}

// RenderOrder sends the document HTML to Gotenberg and returns PDF bytes.
func (p *PDFExporter) RenderOrder(ctx context.Context, doc OrderDocument) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("pdf exporter not initialised")
	}
	endpoint := strings.TrimRight(strings.TrimSpace(p.Endpoint), "/")
	if endpoint == "" {
		return nil, fmt.Errorf("gotenberg endpoint required")
	}
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}

	html, err := BuildOrderHTML(doc)
	if err != nil {
		return nil, err
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("files", "order.html")
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(part, html); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"/forms/chromium/convert/html", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("gotenberg response %d: %s", resp.StatusCode, string(data))
	}

	return io.ReadAll(resp.Body)
}

// Filename returns the suggested download name for the order document.
func Filename(order domain.Order) string {
	return "order-" + order.ShortID() + ".pdf"
}

var orderTemplate = template.Must(template.New("order_pdf").Funcs(template.FuncMap{
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("January 2, 2006")
	},
	"formatAmount": func(v float64) string {
		return fmt.Sprintf("€%.2f", v)
	},
	"upper": strings.ToUpper,
}).Parse(orderTemplateHTML))

const orderTemplateHTML = `<html><head><meta charset="utf-8"><style>
body{font-family:sans-serif;margin:24px;}h1{font-size:20px;}h2{font-size:14px;margin-top:24px;}
table{width:100%;border-collapse:collapse;margin-top:8px;}th,td{border:1px solid #ddd;padding:6px;text-align:right;}
th{text-align:left;background:#f5f5f5;}td.label{text-align:left;}p{margin:4px 0;font-size:12px;}
.total{font-size:14px;font-weight:bold;text-align:right;margin-top:12px;}
</style></head><body>
<h1>Purchase Order</h1>
<p>Order #: {{.Order.ShortID}}</p>
<p>Date: {{formatDate .Order.CreatedAt}}</p>
<p>Status: {{upper (printf "%s" .Order.Status)}}</p>
<h2>Supplier Information</h2>
<p>Name: {{.Supplier.Name}}</p>
<p>Address: {{.Supplier.Address}}</p>
<p>Email: {{.Supplier.Email}}</p>
<p>Phone: {{.Supplier.Phone}}</p>
<p>Tax ID: {{.Supplier.TaxID}}</p>
<h2>Order Items</h2>
<table><thead><tr><th>Product Name</th><th>Barcode</th><th>Qty</th><th>Price</th><th>Total</th></tr></thead><tbody>
{{range .Lines}}<tr><td class="label">{{.Name}}</td><td class="label">{{.Barcode}}</td><td>{{.Quantity}}</td><td>{{formatAmount .Price}}</td><td>{{formatAmount .Subtotal}}</td></tr>
{{end}}</tbody></table>
<div class="total">TOTAL: {{formatAmount .Order.Total}}</div>
</body></html>`

// BuildOrderHTML renders the fixed document layout. Pure; exposed so tests
// and the exporter share one body.
func BuildOrderHTML(doc OrderDocument) (string, error) {
	var b bytes.Buffer
	if err := orderTemplate.Execute(&b, doc); err != nil {
		return "", fmt.Errorf("render order document: %w", err)
	}
	return b.String(), nil
}
