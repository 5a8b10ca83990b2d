package pipeline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/deen-commerce/orderlink/internal/model"
	"github.com/deen-commerce/orderlink/internal/normalize"
)

// DefaultPaidIndicators marks payment methods that mean the order is
// already settled: mobile-wallet gateways, generic online payment and an
// explicit paid flag. Matching is a lower-cased substring test.
var DefaultPaidIndicators = []string{"bkash", "online", "ssl", "paid"}

// Composer renders a CustomerGroup into the confirmation message. Pure:
// the same group always yields the same message.
type Composer struct {
	storeName  string
	storeURL   string
	classifier *normalize.SalutationClassifier
	paid       []string
}

// NewComposer builds a Composer. A nil classifier selects the default
// marker table; nil paid indicators select DefaultPaidIndicators.
func NewComposer(storeName, storeURL string, classifier *normalize.SalutationClassifier, paidIndicators []string) *Composer {
	if classifier == nil {
		classifier = normalize.NewSalutationClassifier(nil)
	}
	if paidIndicators == nil {
		paidIndicators = DefaultPaidIndicators
	}
	lowered := make([]string, len(paidIndicators))
	for i, p := range paidIndicators {
		lowered[i] = strings.ToLower(p)
	}
	return &Composer{
		storeName:  storeName,
		storeURL:   storeURL,
		classifier: classifier,
		paid:       lowered,
	}
}

// Compose renders the message for one group. Field order is fixed: title,
// greeting, name, order IDs, one line per product, total/collectable
// lines, shipping address, closing. Monetary totals use two decimals.
func (c *Composer) Compose(g *model.CustomerGroup) model.ComposedMessage {
	salutation := c.classifier.Salutation(g.Name)

	lines := []string{
		fmt.Sprintf("*Order Verification From %s*", c.storeName),
		"",
		fmt.Sprintf("Assalamu Alaikum, %s!", salutation),
		"",
		fmt.Sprintf("Dear %s,", g.Name),
		"",
		"Please verify your order details:",
		"",
	}

	if len(g.OrderIDs) > 0 {
		lines = append(lines,
			fmt.Sprintf("*Order ID:* %s", g.OrderIDLine()),
			"",
		)
	}

	lines = append(lines, "*Your Order:*")
	for i, product := range g.Products {
		item := "- " + strings.TrimSpace(product)
		if qty := at(g.Quantities, i); qty != "" {
			item += " - Qty: " + qty
		}
		if price := at(g.UnitPrices, i); price != "" {
			item += " - Price: " + formatAmount(price) + " BDT"
		}
		lines = append(lines, item)
	}

	paid := c.isPaid(g.PaymentMethod)
	var collectable float64
	if g.HasTotal {
		lines = append(lines, "")
		if paid {
			lines = append(lines,
				fmt.Sprintf("*Total Amount:* %.2f BDT (PAID)", g.OrderTotal),
				"*Collectable Amount:* 0.00 BDT",
			)
		} else {
			collectable = g.OrderTotal
			lines = append(lines, fmt.Sprintf("*Total Amount:* %.2f BDT", g.OrderTotal))
		}
	}

	if address := shippingAddress(g); len(address) > 0 {
		lines = append(lines, "", "*Shipping Address:*")
		lines = append(lines, address...)
	}

	lines = append(lines,
		"",
		"Please confirm the order and address.",
		"If any correction is needed, please let us know the possible adjustment.",
		"",
		"*Delivery fees apply for returns.*",
		"",
		fmt.Sprintf("Thank you for shopping with %s! Grab our latest collection on: %s", c.storeName, c.storeURL),
	)

	return model.ComposedMessage{
		Lines:       lines,
		TotalAmount: g.OrderTotal,
		Collectable: collectable,
		Paid:        paid,
	}
}

func (c *Composer) isPaid(paymentMethod string) bool {
	method := strings.ToLower(paymentMethod)
	if method == "" {
		return false
	}
	for _, indicator := range c.paid {
		if strings.Contains(method, indicator) {
			return true
		}
	}
	return false
}

// shippingAddress returns the address and city as separate lines, blanks
// omitted.
func shippingAddress(g *model.CustomerGroup) []string {
	var parts []string
	for _, p := range []string{g.Address, g.City} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// at safely indexes a positionally aligned secondary array: out-of-range
// or blank entries drop the sub-field rather than failing the line.
func at(list []string, i int) string {
	if i < 0 || i >= len(list) {
		return ""
	}
	return strings.TrimSpace(list[i])
}

// formatAmount renders a numeric cell with two decimals and passes
// non-numeric values through untouched.
func formatAmount(s string) string {
	cleaned := strings.ReplaceAll(s, ",", "")
	if f, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return fmt.Sprintf("%.2f", f)
	}
	return s
}
