package config

import (
	"os"
	"path/filepath"
)

const configTemplate = `# Paper Trader Configuration

[trading]
# Starting cash balance for a fresh account
initial_cash = 100000.0
# Flat commission charged per executed trade
commission = 4.95

[risk]
# Advisory maximum order value; exceeding it logs a warning
max_position_size = 5000.0
# Advisory daily loss limit
max_daily_loss = 1000.0

[storage]
# Account snapshot path (single JSON document)
# account_path = "~/.config/paper-trader/paper_account.json"
# Trade journal database path
# journal_path = "~/.config/paper-trader/journal.db"

[quotes]
# Quote provider: "sim" (deterministic simulated prices) or "yahoo"
provider = "sim"
# Quote request timeout
timeout = "10s"

[logging]
level = "info"
console = true
file = true
`

// writeTemplate writes a starter config.toml if the config directory has none.
func writeTemplate(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}
	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return os.WriteFile(path, []byte(configTemplate), 0644)
}
