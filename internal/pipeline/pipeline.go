package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/deen-commerce/orderlink/internal/model"
)

// LinkColumn is the synthesized output column carrying the deep link.
const LinkColumn = "whatsapp_link"

// Pipeline runs the full conversion: validate, normalize, group,
// compose and encode, then shape the output table.
type Pipeline struct {
	columns  model.ColumnMap
	composer *Composer
	workers  int
}

// New builds a Pipeline. workers bounds the per-group compose/link
// fan-out; values below 1 mean sequential.
func New(columns model.ColumnMap, composer *Composer, workers int) *Pipeline {
	if workers < 1 {
		workers = 1
	}
	return &Pipeline{columns: columns, composer: composer, workers: workers}
}

// Result is the outcome of one run.
type Result struct {
	Groups      []*model.CustomerGroup
	Output      *model.Table
	Rows        int
	SkippedRows int
	GroupErrors []*DataError
}

// Summary shapes the result for the run store.
func (r *Result) Summary() model.RunSummary {
	s := model.RunSummary{
		Rows:        r.Rows,
		Groups:      len(r.Groups),
		SkippedRows: r.SkippedRows,
	}
	for _, e := range r.GroupErrors {
		s.GroupErrors = append(s.GroupErrors, e.Error())
	}
	return s
}

// Run converts an input table into one output row per customer group.
// Groups are independent, so message composition fans out across workers;
// the collected output keeps first-appearance order.
func (p *Pipeline) Run(ctx context.Context, t *model.Table) (*Result, error) {
	agg, err := Aggregate(t, p.columns)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for _, group := range agg.Groups {
		group := group
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			group.Message = p.composer.Compose(group)
			group.Link = WhatsAppLink(group.Phone, group.Message.Text())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{
		Groups:      agg.Groups,
		Output:      p.buildOutput(t, agg.Groups),
		Rows:        agg.Rows,
		SkippedRows: agg.SkippedRows,
		GroupErrors: agg.GroupErrors,
	}

	zap.L().Info("pipeline: run complete",
		zap.Int("rows", res.Rows),
		zap.Int("groups", len(res.Groups)),
		zap.Int("skipped_rows", res.SkippedRows),
		zap.Int("group_errors", len(res.GroupErrors)),
	)
	return res, nil
}

// buildOutput shapes one row per group: every mapped column present in the
// input, in canonical field order, plus the link column. Multi-line
// fields use the "\n- " item separator of the source exports.
func (p *Pipeline) buildOutput(t *model.Table, groups []*model.CustomerGroup) *model.Table {
	fields := p.columns.Fields()
	present := fields[:0]
	for _, f := range fields {
		if _, ok := t.Column(f.Label); ok {
			present = append(present, f)
		}
	}

	headers := make([]string, 0, len(present)+1)
	for _, f := range present {
		headers = append(headers, f.Label)
	}
	headers = append(headers, LinkColumn)

	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		row := make([]string, 0, len(headers))
		for _, f := range present {
			row = append(row, groupField(g, f.Logical))
		}
		row = append(row, g.Link)
		rows = append(rows, row)
	}

	return model.NewTable(headers, rows)
}

func groupField(g *model.CustomerGroup, logical string) string {
	switch logical {
	case "phone":
		return g.Phone
	case "name":
		return g.Name
	case "order_id":
		return g.OrderIDLine()
	case "product":
		return joinItems(g.Products)
	case "quantity":
		return joinItems(g.Quantities)
	case "unit_price":
		return joinItems(g.UnitPrices)
	case "order_total":
		if !g.HasTotal {
			return ""
		}
		return fmt.Sprintf("%.2f", g.OrderTotal)
	case "address":
		return g.Address
	case "city":
		return g.City
	case "payment_method":
		return g.PaymentMethod
	default:
		return ""
	}
}

func joinItems(items []string) string {
	out := ""
	for i, item := range items {
		if i > 0 {
			out += "\n- "
		}
		out += item
	}
	return out
}
