package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deen-commerce/orderlink/internal/model"
)

func testComposer() *Composer {
	return NewComposer("DEEN Commerce", "https://deencommerce.com/", nil, nil)
}

func codGroup() *model.CustomerGroup {
	return &model.CustomerGroup{
		Phone:         "01711000000",
		Name:          "Jane Doe",
		OrderIDs:      []string{"A1"},
		Products:      []string{"Shirt", "Pants"},
		Quantities:    []string{"1", "1"},
		UnitPrices:    []string{"500", "700"},
		Address:       "Islambag",
		City:          "Panchagarh",
		PaymentMethod: "COD",
		OrderTotal:    500,
		HasTotal:      true,
	}
}

func TestCompose_CashOnDelivery(t *testing.T) {
	msg := testComposer().Compose(codGroup())

	assert.False(t, msg.Paid)
	assert.InDelta(t, 500.0, msg.Collectable, 0.001)

	text := msg.Text()
	assert.Contains(t, text, "*Order Verification From DEEN Commerce*")
	assert.Contains(t, text, "Assalamu Alaikum, Sir!")
	assert.Contains(t, text, "Dear Jane Doe,")
	assert.Contains(t, text, "*Order ID:* A1")
	assert.Contains(t, text, "- Shirt - Qty: 1 - Price: 500.00 BDT")
	assert.Contains(t, text, "- Pants - Qty: 1 - Price: 700.00 BDT")
	assert.Contains(t, text, "*Total Amount:* 500.00 BDT")
	assert.NotContains(t, text, "PAID")
	assert.Contains(t, text, "*Shipping Address:*\nIslambag\nPanchagarh")
	assert.Contains(t, text, "Thank you for shopping with DEEN Commerce! Grab our latest collection on: https://deencommerce.com/")
}

func TestCompose_PrepaidMarksPaid(t *testing.T) {
	g := codGroup()
	g.PaymentMethod = "bKash"

	msg := testComposer().Compose(g)

	assert.True(t, msg.Paid)
	assert.InDelta(t, 0.0, msg.Collectable, 0.001)
	assert.InDelta(t, 500.0, msg.TotalAmount, 0.001, "original total still shown for reference")

	text := msg.Text()
	assert.Contains(t, text, "*Total Amount:* 500.00 BDT (PAID)")
	assert.Contains(t, text, "*Collectable Amount:* 0.00 BDT")
}

func TestCompose_PaidIndicatorsSubstringMatch(t *testing.T) {
	c := testComposer()
	for _, method := range []string{"bKash Payment", "SSLCommerz", "Online Gateway", "Paid in full"} {
		g := codGroup()
		g.PaymentMethod = method
		assert.True(t, c.Compose(g).Paid, "method %q", method)
	}
	for _, method := range []string{"COD", "Cash on delivery", ""} {
		g := codGroup()
		g.PaymentMethod = method
		assert.False(t, c.Compose(g).Paid, "method %q", method)
	}
}

func TestCompose_ShortSecondaryArraysOmitSubfields(t *testing.T) {
	g := codGroup()
	g.Quantities = []string{"1"}
	g.UnitPrices = nil

	text := testComposer().Compose(g).Text()
	assert.Contains(t, text, "- Shirt - Qty: 1\n")
	assert.Contains(t, text, "- Pants\n", "missing qty and price drop the sub-fields, not the line")
}

func TestCompose_FeminineSalutation(t *testing.T) {
	g := codGroup()
	g.Name = "Sharmin Akter"

	text := testComposer().Compose(g).Text()
	assert.Contains(t, text, "Assalamu Alaikum, Madam!")
}

func TestCompose_NoTotalColumn(t *testing.T) {
	g := codGroup()
	g.HasTotal = false
	g.OrderTotal = 0

	msg := testComposer().Compose(g)
	assert.InDelta(t, 0.0, msg.Collectable, 0.001)
	assert.NotContains(t, msg.Text(), "*Total Amount:*")
}

func TestCompose_AddressBlanksOmitted(t *testing.T) {
	g := codGroup()
	g.City = ""

	text := testComposer().Compose(g).Text()
	assert.Contains(t, text, "*Shipping Address:*\nIslambag\n")

	g.Address = ""
	text = testComposer().Compose(g).Text()
	assert.NotContains(t, text, "*Shipping Address:*")
}

func TestCompose_NoOrderIDs(t *testing.T) {
	g := codGroup()
	g.OrderIDs = nil

	text := testComposer().Compose(g).Text()
	assert.NotContains(t, text, "*Order ID:*")
}

func TestCompose_Deterministic(t *testing.T) {
	c := testComposer()
	g := codGroup()
	first := c.Compose(g)
	second := c.Compose(g)
	require.Equal(t, first, second)
}

func TestCompose_NonNumericUnitPricePassesThrough(t *testing.T) {
	g := codGroup()
	g.UnitPrices = []string{"free", "700"}

	text := testComposer().Compose(g).Text()
	assert.Contains(t, text, "- Shirt - Qty: 1 - Price: free BDT")
	assert.Contains(t, text, "- Pants - Qty: 1 - Price: 700.00 BDT")
}

func TestCompose_LineOrderFixed(t *testing.T) {
	text := testComposer().Compose(codGroup()).Text()

	order := []string{
		"*Order Verification From",
		"Assalamu Alaikum,",
		"Dear ",
		"*Order ID:*",
		"*Your Order:*",
		"*Total Amount:*",
		"*Shipping Address:*",
		"Please confirm the order and address.",
		"*Delivery fees apply for returns.*",
		"Thank you for shopping with",
	}
	last := -1
	for _, marker := range order {
		idx := strings.Index(text, marker)
		require.GreaterOrEqual(t, idx, 0, "marker %q missing", marker)
		assert.Greater(t, idx, last, "marker %q out of order", marker)
		last = idx
	}
}
