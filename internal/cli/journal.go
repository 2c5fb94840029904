package cli

import (
	"time"

	"github.com/spf13/cobra"

	"paper-trader/internal/store"
	"paper-trader/pkg/utils"
)

// addJournalCommands adds trade journal query commands.
func addJournalCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newTradesCmd(app))
}

func newTradesCmd(app *App) *cobra.Command {
	var (
		symbol string
		action string
		days   int
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "trades",
		Short: "Query the trade journal",
		Long: `Query the append-only trade journal.

The journal records every executed trade in SQLite, independently of the
account snapshot, so it survives account resets.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			if app.Journal == nil {
				output.Error("Trade journal is not available.")
				return ErrOperationFailed
			}

			filter := store.TradeFilter{
				Symbol: symbol,
				Action: action,
				Limit:  limit,
			}
			if days > 0 {
				filter.StartDate = time.Now().AddDate(0, 0, -days)
			}

			trades, err := app.Journal.GetTrades(cmd.Context(), filter)
			if err != nil {
				output.Error("Failed to query trades: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(trades)
			}

			if len(trades) == 0 {
				output.Dim("No journaled trades match the filter.")
				return nil
			}

			table := NewTable(output, "Trade ID", "Time", "Symbol", "Action", "Qty", "Price", "Commission")
			for _, t := range trades {
				table.AddRow(
					t.TradeID,
					t.Timestamp.Format("2006-01-02 15:04"),
					t.Symbol,
					string(t.Action),
					utils.FormatQuantity(t.Quantity),
					utils.FormatMoney(t.Price),
					utils.FormatMoney(t.Commission),
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&symbol, "symbol", "", "filter by symbol")
	cmd.Flags().StringVar(&action, "action", "", "filter by action (BUY, SELL, ...)")
	cmd.Flags().IntVar(&days, "days", 0, "limit to the last N days")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of trades to return")
	return cmd
}
