package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cjovignot/orderNow/internal/domain"
)

func testOrder() (domain.Order, domain.Supplier) {
	order := domain.Order{
		ID:        "a1b2c3d4-0000-0000-0000-000000000000",
		Total:     44.5,
		Status:    domain.OrderStatusDraft,
		CreatedAt: time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC),
		Lines: []domain.OrderLine{
			{ProductID: "p1", Quantity: 2, Price: 12.5},
			{ProductID: "p2", Quantity: 3, Price: 6.5},
		},
	}
	supplier := domain.Supplier{Name: "Acme Foods", Email: "orders@acme.example"}
	return order, supplier
}

func TestComposeOrderMessage(t *testing.T) {
	order, supplier := testOrder()

	msg := ComposeOrderMessage(order, supplier)

	assert.Equal(t, "orders@acme.example", msg.To)
	assert.Equal(t, "Purchase Order #a1b2c3d4", msg.Subject)
	assert.Contains(t, msg.Body, "Dear Acme Foods,")
	assert.Contains(t, msg.Body, "Order #: a1b2c3d4")
	assert.Contains(t, msg.Body, "Date: 03/07/2025")
	assert.Contains(t, msg.Body, "Total: €44.50")
	assert.Contains(t, msg.Body, "1. Quantity: 2 - Price: €12.50")
	assert.Contains(t, msg.Body, "2. Quantity: 3 - Price: €6.50")
	assert.Contains(t, msg.Body, "Best regards,")
}

func TestMailtoURI(t *testing.T) {
	msg := Message{To: "a@b.co", Subject: "Purchase Order #a1b2c3d4", Body: "line one\nline two & more"}

	uri := msg.MailtoURI()

	assert.True(t, strings.HasPrefix(uri, "mailto:a@b.co?subject="))
	// Spaces become %20, never '+'.
	assert.Contains(t, uri, "Purchase%20Order%20%23a1b2c3d4")
	assert.NotContains(t, uri, "+")
	assert.Contains(t, uri, "line%20one%0Aline%20two%20%26%20more")
}
