package export

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/cjovignot/orderNow/internal/domain"
)

// Message is a pre-filled mail draft. Opening the MailtoURI in a client is
// the caller's concern; composition itself has no side effects.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ComposeOrderMessage builds the order mail draft: subject with the short
// order ID, plain-text body enumerating line items and total.
func ComposeOrderMessage(order domain.Order, supplier domain.Supplier) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", supplier.Name)
	b.WriteString("Please find below our purchase order details:\n\n")
	fmt.Fprintf(&b, "Order #: %s\n", order.ShortID())
	fmt.Fprintf(&b, "Date: %s\n", order.CreatedAt.Format("01/02/2006"))
	fmt.Fprintf(&b, "Total: €%.2f\n\n", order.Total)
	b.WriteString("Products:\n")
	for i, line := range order.Lines {
		fmt.Fprintf(&b, "%d. Quantity: %d - Price: €%.2f\n", i+1, line.Quantity, line.Price)
	}
	b.WriteString("\nPlease confirm receipt and expected delivery date.\n\n")
	b.WriteString("Best regards,\nOrder Management Team")

	return Message{
		To:      supplier.Email,
		Subject: "Purchase Order #" + order.ShortID(),
		Body:    b.String(),
	}
}

// MailtoURI percent-encodes the draft into a mailto link.
func (m Message) MailtoURI() string {
	return "mailto:" + m.To + "?subject=" + escape(m.Subject) + "&body=" + escape(m.Body)
}

// escape follows mailto conventions: spaces become %20, not '+'.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
