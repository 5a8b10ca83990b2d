package model

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// ColumnMap resolves logical order fields to actual header labels of the
// input table. Phone, Name and Product are required; the rest are optional
// and degrade gracefully when unset or absent from the table.
//
// Rows whose phone normalizes to the empty string are dropped from the
// output: a confirmation link needs a recipient, and an empty-key group
// would merge unrelated customers.
type ColumnMap struct {
	Phone         string `yaml:"phone"`
	Name          string `yaml:"name"`
	OrderID       string `yaml:"order_id"`
	Product       string `yaml:"product"`
	SKU           string `yaml:"sku"`
	Quantity      string `yaml:"quantity"`
	UnitPrice     string `yaml:"unit_price"`
	OrderTotal    string `yaml:"order_total"`
	Address       string `yaml:"address"`
	City          string `yaml:"city"`
	PaymentMethod string `yaml:"payment_method"`
}

// MappedField pairs a logical field name with its mapped header label.
type MappedField struct {
	Logical string
	Label   string
}

// Fields lists the mapped fields in canonical output order, skipping
// fields with no label.
func (m ColumnMap) Fields() []MappedField {
	all := []MappedField{
		{"phone", m.Phone},
		{"name", m.Name},
		{"order_id", m.OrderID},
		{"product", m.Product},
		{"quantity", m.Quantity},
		{"unit_price", m.UnitPrice},
		{"order_total", m.OrderTotal},
		{"address", m.Address},
		{"city", m.City},
		{"payment_method", m.PaymentMethod},
	}
	fields := all[:0]
	for _, f := range all {
		if strings.TrimSpace(f.Label) != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

// MissingRequired returns the required fields whose mapped column is
// absent from the table, in declaration order. Unmapped fields are
// reported by logical name, mapped-but-absent ones by their label.
func (m ColumnMap) MissingRequired(t *Table) []string {
	var missing []string
	for _, f := range []MappedField{
		{"phone", m.Phone},
		{"name", m.Name},
		{"product", m.Product},
	} {
		if strings.TrimSpace(f.Label) == "" {
			missing = append(missing, f.Logical)
			continue
		}
		if _, ok := t.Column(f.Label); !ok {
			missing = append(missing, f.Label)
		}
	}
	return missing
}

// LoadColumnMap reads a ColumnMap profile from a YAML file.
func LoadColumnMap(path string) (ColumnMap, error) {
	var m ColumnMap
	data, err := os.ReadFile(path)
	if err != nil {
		return m, eris.Wrap(err, "columnmap: read profile")
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, eris.Wrap(err, "columnmap: parse profile")
	}
	if m.Phone == "" || m.Name == "" || m.Product == "" {
		return m, eris.Errorf("columnmap: profile %s must map phone, name and product", path)
	}
	return m, nil
}

// detectKeywords drives ColumnMap auto-detection: for each logical field,
// the first header containing one of the keywords (case-insensitive) wins.
// Keyword order encodes preference for the more specific export labels.
var detectKeywords = []struct {
	keywords []string
	assign   func(*ColumnMap, string)
}{
	{[]string{"phone (billing)", "mobile", "contact", "cell", "phone"}, func(m *ColumnMap, l string) { m.Phone = l }},
	{[]string{"full name (billing)", "customer name", "receiver", "full name", "name"}, func(m *ColumnMap, l string) { m.Name = l }},
	{[]string{"order id", "order no", "invoice", "#"}, func(m *ColumnMap, l string) { m.OrderID = l }},
	{[]string{"product name (main)", "product", "item", "goods"}, func(m *ColumnMap, l string) { m.Product = l }},
	{[]string{"sku", "code"}, func(m *ColumnMap, l string) { m.SKU = l }},
	{[]string{"quantity", "qty", "count"}, func(m *ColumnMap, l string) { m.Quantity = l }},
	{[]string{"item cost", "order line subtotal", "price", "amount", "rate", "cost"}, func(m *ColumnMap, l string) { m.UnitPrice = l }},
	{[]string{"order total amount", "total", "payable", "amount to pay"}, func(m *ColumnMap, l string) { m.OrderTotal = l }},
	{[]string{"address 1&2 (billing)", "address", "shipping", "street"}, func(m *ColumnMap, l string) { m.Address = l }},
	{[]string{"city, state, zip (billing)", "city", "town", "district"}, func(m *ColumnMap, l string) { m.City = l }},
	{[]string{"payment method title", "payment", "method", "gateway"}, func(m *ColumnMap, l string) { m.PaymentMethod = l }},
}

// DetectColumnMap guesses a ColumnMap from header labels by keyword match.
// Best-effort: unmatched fields stay empty and required-field validation
// happens at pipeline entry.
func DetectColumnMap(headers []string) ColumnMap {
	var m ColumnMap
	for _, entry := range detectKeywords {
		for _, kw := range entry.keywords {
			label := firstContaining(headers, kw)
			if label != "" {
				entry.assign(&m, label)
				break
			}
		}
	}
	return m
}

func firstContaining(headers []string, keyword string) string {
	for _, h := range headers {
		h = strings.TrimSpace(h)
		if strings.Contains(strings.ToLower(h), keyword) {
			return h
		}
	}
	return ""
}
