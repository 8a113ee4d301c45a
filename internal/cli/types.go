package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartbridge/pkg/chart"
)

// typesCommand creates the types listing command.
func (c *CLI) typesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List supported chart types",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(StyleTitle.Render("Supported chart types"))
			printNewline()
			for _, typ := range chart.Types {
				printKeyValue(typ.String(), fmt.Sprintf("%s family", typ.Family()))
			}
			return nil
		},
	}
}
