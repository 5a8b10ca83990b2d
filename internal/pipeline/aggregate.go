// Package pipeline consolidates order line items per customer phone number
// and synthesizes WhatsApp confirmation links.
package pipeline

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/deen-commerce/orderlink/internal/model"
	"github.com/deen-commerce/orderlink/internal/normalize"
)

// AggregateResult holds the grouped customers plus everything the run
// isolated along the way: rows without a usable phone and groups whose
// total could not be computed.
type AggregateResult struct {
	Groups      []*model.CustomerGroup
	Rows        int
	SkippedRows int
	GroupErrors []*DataError
}

// columns resolves the ColumnMap against a concrete table once, so the
// row loop works on plain indices. Unmapped or absent columns are -1.
type columns struct {
	phone, name, orderID, product, sku int
	quantity, unitPrice, orderTotal    int
	address, city, paymentMethod       int
}

func resolveColumns(t *model.Table, cm model.ColumnMap) columns {
	idx := func(label string) int {
		i, ok := t.Column(label)
		if !ok {
			return -1
		}
		return i
	}
	return columns{
		phone:         idx(cm.Phone),
		name:          idx(cm.Name),
		orderID:       idx(cm.OrderID),
		product:       idx(cm.Product),
		sku:           idx(cm.SKU),
		quantity:      idx(cm.Quantity),
		unitPrice:     idx(cm.UnitPrice),
		orderTotal:    idx(cm.OrderTotal),
		address:       idx(cm.Address),
		city:          idx(cm.City),
		paymentMethod: idx(cm.PaymentMethod),
	}
}

// Aggregate validates the ColumnMap against the table, normalizes every
// row, groups rows by normalized phone and reconciles per-group totals.
//
// Grouping keeps the first-seen scalar fields (name, address, city,
// payment method), deduplicates order IDs in first-appearance order, and
// keeps the per-line product/quantity/price arrays positionally aligned in
// original row order. The group total sums each unique order ID's total
// exactly once, so a multi-line order never double-counts.
func Aggregate(t *model.Table, cm model.ColumnMap) (*AggregateResult, error) {
	if missing := cm.MissingRequired(t); len(missing) > 0 {
		return nil, &ConfigurationError{MissingColumns: missing}
	}
	cols := resolveColumns(t, cm)

	lines := normalizeRows(t, cols)

	res := &AggregateResult{Rows: len(t.Rows)}
	groups := make(map[string]*model.CustomerGroup)

	for _, line := range lines {
		if line.Phone == "" {
			res.SkippedRows++
			continue
		}

		g, ok := groups[line.Phone]
		if !ok {
			g = &model.CustomerGroup{
				Phone:         line.Phone,
				Name:          line.Name,
				Address:       line.Address,
				City:          line.City,
				PaymentMethod: line.PaymentMethod,
			}
			groups[line.Phone] = g
			res.Groups = append(res.Groups, g)
		}

		if line.OrderID != "" && !contains(g.OrderIDs, line.OrderID) {
			g.OrderIDs = append(g.OrderIDs, line.OrderID)
		}
		g.Products = append(g.Products, line.Product)
		g.Quantities = append(g.Quantities, line.Quantity)
		g.UnitPrices = append(g.UnitPrices, line.UnitPrice)
	}

	if cols.orderTotal >= 0 {
		res.GroupErrors = reconcileTotals(lines, cols, groups)
		if len(res.GroupErrors) > 0 {
			res.Groups = dropFailedGroups(res.Groups, res.GroupErrors)
		}
	}

	if res.SkippedRows > 0 {
		zap.L().Warn("aggregate: rows without phone number dropped",
			zap.Int("skipped", res.SkippedRows),
		)
	}

	return res, nil
}

// normalizeRows applies the normalization pass: phone canonicalization,
// title-cased text fields and the SKU suffix on product names.
func normalizeRows(t *model.Table, cols columns) []model.OrderLine {
	lines := make([]model.OrderLine, 0, len(t.Rows))
	for _, row := range t.Rows {
		product := strings.TrimSpace(model.Cell(row, cols.product))
		if sku := strings.TrimSpace(model.Cell(row, cols.sku)); sku != "" {
			product = product + " - " + sku
		}
		lines = append(lines, model.OrderLine{
			Phone:         normalize.Phone(model.Cell(row, cols.phone)),
			Name:          normalize.Text(model.Cell(row, cols.name)),
			OrderID:       strings.TrimSpace(model.Cell(row, cols.orderID)),
			Product:       product,
			Quantity:      strings.TrimSpace(model.Cell(row, cols.quantity)),
			UnitPrice:     strings.TrimSpace(model.Cell(row, cols.unitPrice)),
			OrderTotal:    strings.TrimSpace(model.Cell(row, cols.orderTotal)),
			Address:       normalize.Text(model.Cell(row, cols.address)),
			City:          normalize.Text(model.Cell(row, cols.city)),
			PaymentMethod: strings.TrimSpace(model.Cell(row, cols.paymentMethod)),
		})
	}
	return lines
}

// reconcileTotals sums order totals per group, counting each unique order
// ID once. Without an order-ID column every line counts as its own order.
// Unparseable totals yield one DataError per affected group; the group's
// total is considered corrupt.
func reconcileTotals(lines []model.OrderLine, cols columns, groups map[string]*model.CustomerGroup) []*DataError {
	var errs []*DataError
	failed := make(map[string]bool)
	seenOrders := make(map[string]bool)

	for _, line := range lines {
		if line.Phone == "" {
			continue
		}
		if cols.orderID >= 0 && line.OrderID != "" {
			if seenOrders[line.OrderID] {
				continue
			}
			seenOrders[line.OrderID] = true
		}

		amount, err := parseAmount(line.OrderTotal)
		if err != nil {
			if !failed[line.Phone] {
				failed[line.Phone] = true
				errs = append(errs, &DataError{Phone: line.Phone, Column: "order_total", Value: line.OrderTotal})
			}
			continue
		}

		g := groups[line.Phone]
		g.OrderTotal += amount
		g.HasTotal = true
	}

	return errs
}

func dropFailedGroups(groups []*model.CustomerGroup, errs []*DataError) []*model.CustomerGroup {
	failed := make(map[string]bool, len(errs))
	for _, e := range errs {
		failed[e.Phone] = true
	}
	kept := groups[:0]
	for _, g := range groups {
		if failed[g.Phone] {
			zap.L().Warn("aggregate: group excluded, total not computable",
				zap.String("phone", g.Phone),
			)
			continue
		}
		kept = append(kept, g)
	}
	return kept
}

// parseAmount parses a monetary cell. Thousands separators are tolerated;
// an empty cell counts as zero (multi-line exports often carry the order
// total on the first line only).
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
