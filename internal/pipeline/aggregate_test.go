package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deen-commerce/orderlink/internal/model"
)

func testColumns() model.ColumnMap {
	return model.ColumnMap{
		Phone:         "Phone",
		Name:          "Name",
		OrderID:       "Order ID",
		Product:       "Product",
		SKU:           "SKU",
		Quantity:      "Qty",
		UnitPrice:     "Price",
		OrderTotal:    "Total",
		Address:       "Address",
		City:          "City",
		PaymentMethod: "Payment",
	}
}

func testTable(rows ...[]string) *model.Table {
	headers := []string{"Phone", "Name", "Order ID", "Product", "SKU", "Qty", "Price", "Total", "Address", "City", "Payment"}
	return model.NewTable(headers, rows)
}

func TestAggregate_GroupsByNormalizedPhone(t *testing.T) {
	table := testTable(
		[]string{"01711000000", "jane doe", "A1", "Shirt", "", "1", "500", "500", "islambag,panchagarh", "dhaka", "COD"},
		[]string{"1711000000", "Jane Doe", "A1", "Pants", "", "1", "700", "500", "", "", ""},
	)

	res, err := Aggregate(table, testColumns())
	require.NoError(t, err)
	require.Len(t, res.Groups, 1)

	g := res.Groups[0]
	assert.Equal(t, "01711000000", g.Phone)
	assert.Equal(t, "Jane Doe", g.Name)
	assert.Equal(t, []string{"A1"}, g.OrderIDs)
	assert.Equal(t, []string{"Shirt", "Pants"}, g.Products)
	assert.Equal(t, []string{"1", "1"}, g.Quantities)
	assert.Equal(t, []string{"500", "700"}, g.UnitPrices)
	assert.Equal(t, "Islambag, Panchagarh", g.Address)
	assert.Equal(t, "Dhaka", g.City)
	assert.Equal(t, "COD", g.PaymentMethod)
}

func TestAggregate_TotalCountedOncePerOrder(t *testing.T) {
	table := testTable(
		[]string{"01711000000", "jane doe", "A1", "Shirt", "", "1", "500", "500", "", "", "COD"},
		[]string{"01711000000", "jane doe", "A1", "Pants", "", "1", "700", "500", "", "", "COD"},
	)

	res, err := Aggregate(table, testColumns())
	require.NoError(t, err)
	require.Len(t, res.Groups, 1)

	g := res.Groups[0]
	assert.True(t, g.HasTotal)
	assert.InDelta(t, 500.0, g.OrderTotal, 0.001, "multi-line order must contribute its total once")
}

func TestAggregate_TotalSumsAcrossOrders(t *testing.T) {
	table := testTable(
		[]string{"01711000000", "jane doe", "A1", "Shirt", "", "1", "500", "500", "", "", ""},
		[]string{"01711000000", "jane doe", "A2", "Cap", "", "1", "300", "300", "", "", ""},
	)

	res, err := Aggregate(table, testColumns())
	require.NoError(t, err)
	require.Len(t, res.Groups, 1)
	assert.InDelta(t, 800.0, res.Groups[0].OrderTotal, 0.001)
	assert.Equal(t, []string{"A1", "A2"}, res.Groups[0].OrderIDs)
}

func TestAggregate_MissingRequiredColumns(t *testing.T) {
	table := model.NewTable([]string{"Order ID", "Total"}, nil)

	_, err := Aggregate(table, testColumns())
	require.Error(t, err)

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, []string{"Phone", "Name", "Product"}, cfgErr.MissingColumns)
}

func TestAggregate_OptionalColumnsDegrade(t *testing.T) {
	headers := []string{"Phone", "Name", "Product"}
	table := model.NewTable(headers, [][]string{
		{"01711000000", "jane doe", "Shirt"},
	})

	res, err := Aggregate(table, testColumns())
	require.NoError(t, err)
	require.Len(t, res.Groups, 1)

	g := res.Groups[0]
	assert.Equal(t, []string{"Shirt"}, g.Products)
	assert.Empty(t, g.OrderIDs)
	assert.False(t, g.HasTotal)
	assert.Empty(t, g.Address)
}

func TestAggregate_SKUSuffix(t *testing.T) {
	table := testTable(
		[]string{"01711000000", "jane doe", "A1", "Shirt", "SH-09", "1", "500", "500", "", "", ""},
		[]string{"01722000000", "john roe", "A2", "Pants", "", "1", "700", "700", "", "", ""},
	)

	res, err := Aggregate(table, testColumns())
	require.NoError(t, err)
	require.Len(t, res.Groups, 2)
	assert.Equal(t, []string{"Shirt - SH-09"}, res.Groups[0].Products)
	assert.Equal(t, []string{"Pants"}, res.Groups[1].Products, "blank SKU adds no suffix")
}

func TestAggregate_DropsRowsWithoutPhone(t *testing.T) {
	table := testTable(
		[]string{"", "jane doe", "A1", "Shirt", "", "1", "500", "500", "", "", ""},
		[]string{"n/a", "john roe", "A2", "Pants", "", "1", "700", "700", "", "", ""},
		[]string{"01711000000", "kim lee", "A3", "Cap", "", "1", "300", "300", "", "", ""},
	)

	res, err := Aggregate(table, testColumns())
	require.NoError(t, err)
	assert.Equal(t, 2, res.SkippedRows)
	require.Len(t, res.Groups, 1)
	assert.Equal(t, "01711000000", res.Groups[0].Phone)
}

func TestAggregate_ArraysAlignedInRowOrder(t *testing.T) {
	table := testTable(
		[]string{"01711000000", "jane doe", "A1", "Shirt", "", "2", "500", "1700", "", "", ""},
		[]string{"01711000000", "jane doe", "A1", "Pants", "", "1", "700", "1700", "", "", ""},
		[]string{"01711000000", "jane doe", "A1", "Shirt", "", "1", "500", "1700", "", "", ""},
	)

	res, err := Aggregate(table, testColumns())
	require.NoError(t, err)
	require.Len(t, res.Groups, 1)

	g := res.Groups[0]
	require.Len(t, g.Products, 3)
	assert.Len(t, g.Quantities, 3)
	assert.Len(t, g.UnitPrices, 3)
	assert.Equal(t, []string{"Shirt", "Pants", "Shirt"}, g.Products, "duplicates preserved in row order")
}

func TestAggregate_UnparseableTotalIsolatesGroup(t *testing.T) {
	table := testTable(
		[]string{"01711000000", "jane doe", "A1", "Shirt", "", "1", "500", "not-a-number", "", "", ""},
		[]string{"01722000000", "john roe", "A2", "Pants", "", "1", "700", "700", "", "", ""},
	)

	res, err := Aggregate(table, testColumns())
	require.NoError(t, err, "a bad group must not abort the run")

	require.Len(t, res.GroupErrors, 1)
	assert.Equal(t, "01711000000", res.GroupErrors[0].Phone)
	assert.Contains(t, res.GroupErrors[0].Error(), "not-a-number")

	require.Len(t, res.Groups, 1)
	assert.Equal(t, "01722000000", res.Groups[0].Phone)
}

func TestAggregate_NoOrderIDColumnCountsEveryRow(t *testing.T) {
	headers := []string{"Phone", "Name", "Product", "Total"}
	table := model.NewTable(headers, [][]string{
		{"01711000000", "jane doe", "Shirt", "500"},
		{"01711000000", "jane doe", "Pants", "700"},
	})

	res, err := Aggregate(table, testColumns())
	require.NoError(t, err)
	require.Len(t, res.Groups, 1)
	assert.InDelta(t, 1200.0, res.Groups[0].OrderTotal, 0.001)
}

func TestAggregate_EmptyTotalCellCountsAsZero(t *testing.T) {
	table := testTable(
		[]string{"01711000000", "jane doe", "A1", "Shirt", "", "1", "500", "1,200", "", "", ""},
		[]string{"01711000000", "jane doe", "A2", "Pants", "", "1", "700", "", "", "", ""},
	)

	res, err := Aggregate(table, testColumns())
	require.NoError(t, err)
	require.Empty(t, res.GroupErrors)
	require.Len(t, res.Groups, 1)
	assert.InDelta(t, 1200.0, res.Groups[0].OrderTotal, 0.001, "thousands separator parsed, blank counts as zero")
}
