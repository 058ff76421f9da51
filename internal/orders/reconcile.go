package orders

import "github.com/cjovignot/orderNow/internal/domain"

// Incoming is a scanned or manually entered item before reconciliation.
// Quantity is taken as 1 when non-positive; a negative price counts as
// absent and resolves to zero.
type Incoming struct {
	ProductID string
	Quantity  int
	Price     float64
}

// Reconcile merges the incoming item into the line list and returns the new
// list. catalogPrice is the price from the current catalog lookup, nil when
// the catalog has none.
//
// A line matching the incoming product gains the incoming quantity and
// takes the catalog price when available, keeping its own otherwise. With
// no match a new line is appended with the resolved price: catalog first,
// then the incoming price, then zero. Afterwards the list holds at most one
// line per product and no line with a non-positive quantity.
func Reconcile(lines []domain.OrderLine, in Incoming, catalogPrice *float64) []domain.OrderLine {
	out := normalize(lines)

	qty := in.Quantity
	if qty <= 0 {
		qty = 1
	}

	for i, line := range out {
		if line.ProductID != in.ProductID {
			continue
		}
		line.Quantity += qty
		if catalogPrice != nil {
			line.Price = *catalogPrice
		}
		out[i] = line
		return out
	}

	price := in.Price
	if catalogPrice != nil {
		price = *catalogPrice
	}
	if price < 0 {
		price = 0
	}
	return append(out, domain.OrderLine{ProductID: in.ProductID, Quantity: qty, Price: price})
}

// Total recomputes the order total from its lines. Stored totals are never
// trusted after a mutation.
func Total(lines []domain.OrderLine) float64 {
	var total float64
	for _, line := range lines {
		total += float64(line.Quantity) * line.Price
	}
	return total
}

// SetQuantity replaces one line's quantity. A quantity of zero or below
// removes the line entirely; this rule holds for scan-driven and manual
// edits alike.
func SetQuantity(lines []domain.OrderLine, productID string, quantity int) []domain.OrderLine {
	out := normalize(lines)
	for i, line := range out {
		if line.ProductID != productID {
			continue
		}
		if quantity <= 0 {
			return append(out[:i], out[i+1:]...)
		}
		out[i].Quantity = quantity
		return out
	}
	return out
}

// SetPrice replaces one line's price, substituting zero for invalid
// (negative) input rather than rejecting the edit.
func SetPrice(lines []domain.OrderLine, productID string, price float64) []domain.OrderLine {
	out := normalize(lines)
	if price < 0 {
		price = 0
	}
	for i, line := range out {
		if line.ProductID == productID {
			out[i].Price = price
			break
		}
	}
	return out
}

// normalize collapses duplicate product lines (first occurrence wins the
// position, quantities accumulate) and drops non-positive quantities.
// Imported data is the only way duplicates can appear.
func normalize(lines []domain.OrderLine) []domain.OrderLine {
	out := make([]domain.OrderLine, 0, len(lines))
	index := make(map[string]int, len(lines))
	for _, line := range lines {
		if i, ok := index[line.ProductID]; ok {
			out[i].Quantity += line.Quantity
			continue
		}
		index[line.ProductID] = len(out)
		out = append(out, line)
	}
	kept := out[:0]
	for _, line := range out {
		if line.Quantity > 0 {
			kept = append(kept, line)
		}
	}
	return kept
}
