package backup

import "context"

// DanglingLine points at an order line whose product no longer exists.
type DanglingLine struct {
	OrderID   string `json:"orderId"`
	ProductID string `json:"productId"`
}

// IntegrityReport lists orphaned foreign references. Deleting a supplier
// neither blocks nor cascades, so orphans are legal state; this report
// makes them visible instead of silently ignored.
type IntegrityReport struct {
	OrphanedProducts []string       `json:"orphanedProducts"`
	OrphanedOrders   []string       `json:"orphanedOrders"`
	DanglingLines    []DanglingLine `json:"danglingLines"`
}

// Clean reports whether nothing is orphaned.
func (r IntegrityReport) Clean() bool {
	return len(r.OrphanedProducts) == 0 && len(r.OrphanedOrders) == 0 && len(r.DanglingLines) == 0
}

// Integrity scans the persisted collections for references to missing
// suppliers and products.
func (s *Service) Integrity(ctx context.Context) IntegrityReport {
	supplierIDs := map[string]struct{}{}
	for _, sup := range s.store.Suppliers(ctx) {
		supplierIDs[sup.ID] = struct{}{}
	}
	productIDs := map[string]struct{}{}
	var report IntegrityReport
	for _, p := range s.store.Products(ctx) {
		productIDs[p.ID] = struct{}{}
		if _, ok := supplierIDs[p.SupplierID]; !ok {
			report.OrphanedProducts = append(report.OrphanedProducts, p.ID)
		}
	}
	for _, o := range s.store.Orders(ctx) {
		if _, ok := supplierIDs[o.SupplierID]; !ok {
			report.OrphanedOrders = append(report.OrphanedOrders, o.ID)
		}
		for _, line := range o.Lines {
			if _, ok := productIDs[line.ProductID]; !ok {
				report.DanglingLines = append(report.DanglingLines, DanglingLine{OrderID: o.ID, ProductID: line.ProductID})
			}
		}
	}
	return report
}
