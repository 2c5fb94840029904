package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"paper-trader/pkg/utils"
)

// addAccountCommands adds account management and reporting commands.
func addAccountCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newSetupCmd(app))
	rootCmd.AddCommand(newSummaryCmd(app))
	rootCmd.AddCommand(newAnalyzeCmd(app))
	rootCmd.AddCommand(newHistoryCmd(app))
}

func newSetupCmd(app *App) *cobra.Command {
	var cash float64

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Initialize or reset the paper trading account",
		Long: `Initialize the paper trading account with a cash balance.

If an account already exists it is overwritten with a fresh one. All
positions, orders and trade history are discarded.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			if cash <= 0 {
				cash = app.Config.Trading.InitialCash
			}

			account, err := app.Engine.Setup(cash)
			if err != nil {
				output.Error("Failed to set up account: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(account)
			}
			output.Success("Paper trading account created with %s cash.", utils.FormatMoney(account.Cash))
			return nil
		},
	}

	cmd.Flags().Float64Var(&cash, "cash", 0, "initial cash balance (default from config)")
	return cmd
}

func newSummaryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show account summary with current positions",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			summary, err := app.Engine.Summary(cmd.Context())
			if err != nil {
				output.Error("Failed to load account: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(summary)
			}

			output.Bold("Account Summary")
			output.Printf("  Cash:          %s\n", utils.FormatMoney(summary.Cash))
			output.Printf("  Total Value:   %s\n", utils.FormatMoney(summary.TotalValue))
			output.Printf("  Unrealized P&L: %s\n", output.FormatPnL(summary.UnrealizedPL))
			if summary.TodayPL != nil {
				output.Printf("  Today's P&L:   %s\n", output.FormatPnL(*summary.TodayPL))
			}
			output.Println()

			if len(summary.Positions) == 0 {
				output.Dim("No open positions.")
				return nil
			}

			table := NewTable(output, "Symbol", "Qty", "Cost Basis", "Price", "Value", "P&L")
			for _, pos := range summary.Positions {
				price := "-"
				value := "-"
				pnl := "-"
				if pos.CurrentPrice != nil {
					price = utils.FormatMoney(*pos.CurrentPrice)
				}
				if pos.MarketValue != nil {
					value = utils.FormatMoney(*pos.MarketValue)
				}
				if pos.UnrealizedPL != nil {
					pnl = output.FormatPnL(*pos.UnrealizedPL)
				}
				table.AddRow(
					pos.Symbol,
					utils.FormatQuantity(pos.Quantity),
					utils.FormatMoney(pos.CostBasis),
					price,
					value,
					pnl,
				)
			}
			table.Render()
			return nil
		},
	}
}

func newAnalyzeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Analyze portfolio composition and performance",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			summary, err := app.Engine.AnalyzePortfolio(cmd.Context())
			if err != nil {
				output.Error("Failed to analyze portfolio: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(summary)
			}

			if summary.Empty {
				output.Dim("Portfolio is empty. Nothing to analyze.")
				return nil
			}

			output.Bold("Portfolio Analysis")
			output.Printf("  Total Value:     %s\n", utils.FormatMoney(summary.TotalValue))
			output.Printf("  Cash:            %s (%s)\n",
				utils.FormatMoney(summary.Cash), utils.FormatPercent(summary.CashPercent))
			output.Printf("  Invested:        %s (%s)\n",
				utils.FormatMoney(summary.Invested), utils.FormatPercent(summary.InvestedPercent))
			output.Printf("  Unrealized P&L:  %s (%s)\n",
				output.FormatPnL(summary.TotalUnrealizedPL), output.FormatPercent(summary.TotalUnrealizedPLPercent))
			output.Printf("  Positions:       %d\n", summary.NumPositions)
			output.Println()

			table := NewTable(output, "Symbol", "Value", "Weight", "P&L", "P&L %")
			for _, w := range summary.Positions {
				table.AddRow(
					w.Symbol,
					utils.FormatMoney(w.Value),
					utils.FormatPercent(w.Weight),
					output.FormatPnL(w.UnrealizedPL),
					output.FormatPercent(w.UnrealizedPLPercent),
				)
			}
			table.Render()

			if summary.MostConcentrated != nil {
				output.Println()
				output.Info("Most concentrated: %s at %s of portfolio",
					summary.MostConcentrated.Symbol, utils.FormatPercent(summary.MostConcentrated.Weight))
			}

			if summary.DailyPL != nil {
				output.Println()
				output.Bold("Daily Realized P&L")
				output.Printf("  Average: %s\n", output.FormatPnL(summary.DailyPL.Avg))
				output.Printf("  Best:    %s\n", output.FormatPnL(summary.DailyPL.Best))
				output.Printf("  Worst:   %s\n", output.FormatPnL(summary.DailyPL.Worst))
			}
			return nil
		},
	}
}

func newHistoryCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent trading history",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			trades, err := app.Engine.History(days)
			if err != nil {
				output.Error("Failed to load trading history: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(trades)
			}

			if len(trades) == 0 {
				output.Dim("No trades in the last %d days.", days)
				return nil
			}

			output.Bold(fmt.Sprintf("Trades (last %d days)", days))
			table := NewTable(output, "Time", "Symbol", "Action", "Qty", "Price", "Value", "Commission")
			for _, t := range trades {
				table.AddRow(
					t.Timestamp.Format("2006-01-02 15:04"),
					t.Symbol,
					string(t.Action),
					utils.FormatQuantity(t.Quantity),
					utils.FormatMoney(t.Price),
					utils.FormatMoney(t.Value()),
					utils.FormatMoney(t.Commission),
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 30, "number of days to look back")
	return cmd
}
