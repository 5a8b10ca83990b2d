package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/deen-commerce/orderlink/internal/model"
	"github.com/deen-commerce/orderlink/internal/sheet"
)

var (
	columnsInput string
	columnsSheet string
)

var columnsCmd = &cobra.Command{
	Use:   "columns",
	Short: "Inspect an export's headers and the auto-detected column map",
	RunE: func(cmd *cobra.Command, _ []string) error {
		table, err := sheet.Read(columnsInput, sheet.ReadOptions{SheetName: columnsSheet})
		if err != nil {
			return eris.Wrap(err, "read input")
		}

		fmt.Println("Columns:")
		for i, h := range table.Headers {
			fmt.Printf("  %2d  %s\n", i, h)
		}

		detected := model.DetectColumnMap(table.Headers)
		fmt.Println("\nDetected mapping:")
		for _, f := range detected.Fields() {
			fmt.Printf("  %-14s -> %s\n", f.Logical, f.Label)
		}
		if missing := detected.MissingRequired(table); len(missing) > 0 {
			fmt.Printf("\nUnresolved required fields: %v (provide --mapping to process)\n", missing)
		}
		return nil
	},
}

func init() {
	columnsCmd.Flags().StringVar(&columnsInput, "input", "", "path to the order export XLSX (required)")
	columnsCmd.Flags().StringVar(&columnsSheet, "sheet", "", "worksheet name (default first sheet)")
	_ = columnsCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(columnsCmd)
}
