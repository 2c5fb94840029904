package cli

import (
	"github.com/spf13/cobra"

	"paper-trader/pkg/utils"
)

// addMarketDataCommands adds quote retrieval commands.
func addMarketDataCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newQuoteCmd(app))
}

func newQuoteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "quote SYMBOL",
		Short: "Get a current quote for a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			quote, err := app.Engine.GetQuote(cmd.Context(), args[0])
			if err != nil {
				output.Error("Failed to get quote for %s: %v", args[0], err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(quote)
			}

			output.Bold("%s - %s", quote.Symbol, quote.Name)
			output.Printf("  Price:   %s\n", utils.FormatMoney(quote.Price))
			output.Printf("  Change:  %s (%s)\n",
				output.FormatPnL(quote.Change), output.FormatPercent(quote.ChangePercent))
			output.Printf("  Volume:  %s\n", utils.FormatVolume(quote.Volume))
			return nil
		},
	}
}
