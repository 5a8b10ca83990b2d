// Package model holds the data types shared across the order pipeline.
package model

import (
	"strings"
	"time"
)

// OrderLine is one input row after the normalization pass. Phone is
// digit-only, name/address/city are title-cased, and Product carries the
// " - SKU" suffix when an SKU column was mapped.
type OrderLine struct {
	Phone         string
	Name          string
	OrderID       string
	Product       string
	Quantity      string
	UnitPrice     string
	OrderTotal    string
	Address       string
	City          string
	PaymentMethod string
}

// CustomerGroup is the aggregation unit: every line item sharing one
// normalized phone number. Products, Quantities and UnitPrices are
// positionally aligned, one entry per original row, in row order.
// OrderTotal sums each unique order ID's total exactly once.
type CustomerGroup struct {
	Phone         string
	Name          string
	OrderIDs      []string
	Products      []string
	Quantities    []string
	UnitPrices    []string
	Address       string
	City          string
	PaymentMethod string
	OrderTotal    float64
	HasTotal      bool

	// Appended after aggregation by the compose/link step.
	Message ComposedMessage
	Link    string
}

// OrderIDLine returns the deduplicated order IDs comma-joined.
func (g *CustomerGroup) OrderIDLine() string {
	return strings.Join(g.OrderIDs, ", ")
}

// ComposedMessage is the rendered confirmation message for one group.
// Collectable is zero when the payment method indicates prepayment.
type ComposedMessage struct {
	Lines       []string
	TotalAmount float64
	Collectable float64
	Paid        bool
}

// Text joins the message lines with single newlines.
func (m ComposedMessage) Text() string {
	return strings.Join(m.Lines, "\n")
}

// RunStatus is the lifecycle state of a recorded conversion run.
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Run is one recorded conversion run.
type Run struct {
	ID        string      `json:"id"`
	Input     string      `json:"input"`
	Status    RunStatus   `json:"status"`
	Summary   *RunSummary `json:"summary,omitempty"`
	Error     string      `json:"error,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// RunSummary holds the outcome counts of a completed run.
type RunSummary struct {
	Rows        int      `json:"rows"`
	Groups      int      `json:"groups"`
	SkippedRows int      `json:"skipped_rows"`
	GroupErrors []string `json:"group_errors,omitempty"`
}
