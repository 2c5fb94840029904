package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"paper-trader/internal/config"
	"paper-trader/internal/ledger"
	"paper-trader/internal/logging"
	"paper-trader/internal/quotes"
	"paper-trader/internal/store"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2025-08-27"
)

// App holds the application dependencies.
type App struct {
	Config  *config.Config
	Logger  zerolog.Logger
	Engine  *ledger.Engine
	Journal store.TradeJournal
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	accountStore := store.NewJSONFileStore(cfg.Storage.AccountPath, cfg.Trading.InitialCash, logger)

	var source quotes.Source
	switch cfg.Quotes.Provider {
	case "yahoo":
		source = quotes.NewYahooSource(logger)
	default:
		source = quotes.NewSimSource()
	}

	// Initialize trade journal
	if cfg.Storage.JournalPath != "" {
		journal, err := store.NewSQLiteJournal(cfg.Storage.JournalPath)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize trade journal, audit log unavailable")
		} else {
			app.Journal = journal
			logger.Debug().Msg("Trade journal initialized")
		}
	}

	app.Engine = ledger.New(accountStore, source, ledger.Options{
		Commission:      cfg.Trading.Commission,
		MaxPositionSize: cfg.Risk.MaxPositionSize,
		QuoteTimeout:    cfg.Quotes.Timeout,
		Journal:         app.Journal,
	}, logger)

	rootCmd := &cobra.Command{
		Use:   "papertrader",
		Short: "Paper Trader - simulated stock trading CLI",
		Long: `Paper Trader is a paper trading ledger for stocks.

It maintains a simulated account with cash, positions, orders and trade
history, executing market orders at current quoted prices. No real money
is involved and no orders reach a live market.

Use 'papertrader help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Handle debug flag
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/paper-trader)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	addAccountCommands(rootCmd, app)
	addTradingCommands(rootCmd, app)
	addMarketDataCommands(rootCmd, app)
	addJournalCommands(rootCmd, app)
	addUtilityCommands(rootCmd, app)

	return rootCmd
}

// addUtilityCommands adds version and config commands.
func addUtilityCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("Paper Trader v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			showConfig(output, app.Config)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("✓ Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) {
	output.Bold("Trading Configuration")
	output.Printf("  Initial Cash:    %.2f\n", cfg.Trading.InitialCash)
	output.Printf("  Commission:      %.2f\n", cfg.Trading.Commission)
	output.Println()

	output.Bold("Risk Configuration")
	output.Printf("  Max Position:    %.2f\n", cfg.Risk.MaxPositionSize)
	output.Printf("  Max Daily Loss:  %.2f\n", cfg.Risk.MaxDailyLoss)
	output.Println()

	output.Bold("Storage Configuration")
	output.Printf("  Account Path:    %s\n", cfg.Storage.AccountPath)
	output.Printf("  Journal Path:    %s\n", cfg.Storage.JournalPath)
	output.Println()

	output.Bold("Quotes Configuration")
	output.Printf("  Provider:        %s\n", cfg.Quotes.Provider)
	output.Printf("  Timeout:         %s\n", cfg.Quotes.Timeout)
}
