package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartbridge/pkg/cache"
	"github.com/matzehuels/chartbridge/pkg/table"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var sheet string

	cmd := &cobra.Command{
		Use:   "inspect <data-file>",
		Short: "Summarize the columns of a data file",
		Long: `Inspect reads a CSV or XLSX file and prints each column's inferred kind
(numeric or text) with sample values, so you can see which columns the chart
builders would pick up before running build.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl, _, err := loadTable(cmd.Context(), cache.NewNullCache(), args[0], sheet)
			if err != nil {
				return err
			}

			printKeyValue("File", args[0])
			printKeyValue("Shape", fmt.Sprintf("%d rows × %d columns", tbl.RowCount(), tbl.ColumnCount()))
			printNewline()

			fmt.Println(columnSummary(tbl))
			printNewline()
			printNextStep("Build a chart", fmt.Sprintf("chartbridge build %s --type bar", args[0]))
			return nil
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "XLSX sheet name (interactive picker when omitted)")
	return cmd
}

// columnSummary renders the per-column table.
func columnSummary(tbl *table.Table) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := [][]string{}
	for _, col := range tbl.Columns() {
		kind := "text"
		if col.IsNumeric() {
			kind = "numeric"
		}
		rows = append(rows, []string{col.Name, kind, sampleValues(col, 3)})
	}

	return lgtable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Column", "Kind", "Sample").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row < 0 || row >= len(rows) {
				return lipgloss.NewStyle()
			}
			if col == 1 && rows[row][1] == "numeric" {
				return lipgloss.NewStyle().Foreground(colorGreen)
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

// sampleValues formats the first n values of a column.
func sampleValues(col table.Column, n int) string {
	strs := col.Strings()
	if len(strs) > n {
		strs = strs[:n]
		return strings.Join(strs, ", ") + ", …"
	}
	return strings.Join(strs, ", ")
}
