package main

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/deen-commerce/orderlink/internal/model"
	"github.com/deen-commerce/orderlink/internal/pipeline"
	"github.com/deen-commerce/orderlink/internal/sheet"
	"github.com/deen-commerce/orderlink/internal/store"
)

var (
	processInput     string
	processOutput    string
	processSheet     string
	processMapping   string
	processNoHistory bool
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Consolidate an order export and generate WhatsApp links",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		table, err := sheet.Read(processInput, sheet.ReadOptions{SheetName: processSheet})
		if err != nil {
			return eris.Wrap(err, "read input")
		}

		cm, err := resolveMapping(table)
		if err != nil {
			return err
		}

		var st store.Store
		var run *model.Run
		if !processNoHistory {
			st, err = openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			run, err = st.CreateRun(ctx, processInput)
			if err != nil {
				return eris.Wrap(err, "record run")
			}
		}

		res, err := newPipeline(cm).Run(ctx, table)
		if err != nil {
			if st != nil {
				if ferr := st.FailRun(ctx, run.ID, err.Error()); ferr != nil {
					zap.L().Warn("record run failure", zap.Error(ferr))
				}
			}
			return eris.Wrap(err, "process")
		}

		outPath := processOutput
		if outPath == "" {
			outPath = defaultOutputPath(processInput)
		}
		if err := sheet.Write(res.Output, outPath); err != nil {
			return eris.Wrap(err, "write output")
		}

		if st != nil {
			if err := st.CompleteRun(ctx, run.ID, res.Summary()); err != nil {
				zap.L().Warn("record run completion", zap.Error(err))
			}
		}

		for _, ge := range res.GroupErrors {
			zap.L().Warn("group excluded", zap.String("phone", ge.Phone), zap.Error(ge))
		}
		zap.L().Info("process complete",
			zap.String("input", processInput),
			zap.String("output", outPath),
			zap.Int("rows", res.Rows),
			zap.Int("groups", len(res.Groups)),
			zap.Int("skipped_rows", res.SkippedRows),
			zap.Int("group_errors", len(res.GroupErrors)),
		)
		return nil
	},
}

// resolveMapping loads the column-map profile when given, otherwise
// auto-detects one from the table headers.
func resolveMapping(table *model.Table) (model.ColumnMap, error) {
	if processMapping != "" {
		return model.LoadColumnMap(processMapping)
	}
	return model.DetectColumnMap(table.Headers), nil
}

func newPipeline(cm model.ColumnMap) *pipeline.Pipeline {
	composer := pipeline.NewComposer(cfg.Message.StoreName, cfg.Message.StoreURL, nil, nil)
	return pipeline.New(cm, composer, cfg.Pipeline.Workers)
}

func openStore(ctx context.Context) (store.Store, error) {
	st, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return nil, eris.Wrap(err, "open run store")
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, eris.Wrap(err, "migrate run store")
	}
	return st, nil
}

// defaultOutputPath derives "<base>_whatsapp<ext>" next to the input.
func defaultOutputPath(input string) string {
	ext := filepath.Ext(input)
	base := strings.TrimSuffix(input, ext)
	if ext == "" {
		ext = ".xlsx"
	}
	return base + "_whatsapp" + ext
}

func init() {
	processCmd.Flags().StringVar(&processInput, "input", "", "path to the order export XLSX (required)")
	processCmd.Flags().StringVar(&processOutput, "output", "", "output path (default <input>_whatsapp.xlsx)")
	processCmd.Flags().StringVar(&processSheet, "sheet", "", "worksheet name (default first sheet)")
	processCmd.Flags().StringVar(&processMapping, "mapping", "", "column-map profile YAML (default auto-detect)")
	processCmd.Flags().BoolVar(&processNoHistory, "no-history", false, "skip recording the run")
	_ = processCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(processCmd)
}
