package cli

import (
	"errors"
	"sort"

	"github.com/spf13/cobra"

	"paper-trader/internal/ledger"
	"paper-trader/internal/models"
	"paper-trader/pkg/utils"
)

// addTradingCommands adds order submission and management commands.
func addTradingCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newSubmitCmd(app))
	rootCmd.AddCommand(newCancelCmd(app))
	rootCmd.AddCommand(newOrdersCmd(app))
}

func newSubmitCmd(app *App) *cobra.Command {
	var (
		action     string
		quantity   float64
		orderType  string
		limitPrice float64
		stopPrice  float64
	)

	cmd := &cobra.Command{
		Use:   "submit SYMBOL",
		Short: "Submit an order against the paper account",
		Long: `Submit an order for the given symbol.

Market orders execute immediately at the current quoted price, with
commission applied. Limit, stop, stop-limit and trailing-stop orders are
recorded as open; they are not simulated against price movement.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			params := ledger.OrderParams{
				Symbol:    args[0],
				Action:    models.OrderAction(action),
				Quantity:  quantity,
				OrderType: models.OrderType(orderType),
			}
			if cmd.Flags().Changed("limit") {
				params.LimitPrice = models.Float64Ptr(limitPrice)
			}
			if cmd.Flags().Changed("stop") {
				params.StopPrice = models.Float64Ptr(stopPrice)
			}

			result := app.Engine.PlaceOrder(cmd.Context(), params)
			return renderResult(output, result)
		},
	}

	cmd.Flags().StringVar(&action, "action", "BUY", "order action (BUY, SELL, BUY_TO_COVER, SELL_SHORT)")
	cmd.Flags().Float64Var(&quantity, "quantity", 0, "number of shares")
	cmd.Flags().StringVar(&orderType, "type", "MARKET", "order type (MARKET, LIMIT, STOP, STOP_LIMIT, TRAILING_STOP)")
	cmd.Flags().Float64Var(&limitPrice, "limit", 0, "limit price (LIMIT and STOP_LIMIT orders)")
	cmd.Flags().Float64Var(&stopPrice, "stop", 0, "stop price (STOP and STOP_LIMIT orders)")
	cmd.MarkFlagRequired("quantity")
	return cmd
}

func newCancelCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel ORDER_ID",
		Short: "Cancel a pending order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			result := app.Engine.Cancel(cmd.Context(), args[0])
			return renderResult(output, result)
		},
	}
}

func newOrdersCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List orders on the account",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			account, err := app.Engine.Account()
			if err != nil {
				output.Error("Failed to load account: %v", err)
				return err
			}

			orders := make([]*models.Order, 0, len(account.Orders))
			for _, o := range account.Orders {
				if !all && o.Status != models.StatusOpen {
					continue
				}
				orders = append(orders, o)
			}
			sort.Slice(orders, func(i, j int) bool {
				return orders[i].SubmittedAt.After(orders[j].SubmittedAt)
			})

			if output.IsJSON() {
				return output.JSON(orders)
			}

			if len(orders) == 0 {
				if all {
					output.Dim("No orders.")
				} else {
					output.Dim("No open orders. Use --all to include completed orders.")
				}
				return nil
			}

			table := NewTable(output, "Order ID", "Symbol", "Action", "Qty", "Type", "Status", "Submitted")
			for _, o := range orders {
				table.AddRow(
					o.OrderID,
					o.Symbol,
					string(o.Action),
					utils.FormatQuantity(o.Quantity),
					string(o.OrderType),
					string(o.Status),
					o.SubmittedAt.Format("2006-01-02 15:04"),
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include executed, canceled and rejected orders")
	return cmd
}

// renderResult prints an execution result and maps failure kinds onto a
// non-nil error so the process exits non-zero.
func renderResult(output *Output, result *ledger.ExecutionResult) error {
	if output.IsJSON() {
		if err := output.JSON(result); err != nil {
			return err
		}
		if !result.Success {
			return ErrOperationFailed
		}
		return nil
	}

	if !result.Success {
		output.Error("%s", result.Message)
		return ErrOperationFailed
	}

	output.Success("%s", result.Message)
	if result.Trade != nil {
		output.Dim("Trade value: %s, commission: %s",
			utils.FormatMoney(result.Trade.Value()), utils.FormatMoney(result.Trade.Commission))
	}
	if result.Order != nil && result.Order.Status == models.StatusOpen {
		output.Dim("Order ID: %s (use 'papertrader cancel %s' to cancel)",
			result.Order.OrderID, result.Order.OrderID)
	}
	return nil
}

// ErrOperationFailed signals a non-zero exit without duplicate error output;
// the message has already been rendered.
var ErrOperationFailed = errors.New("operation failed")
