// horsedash is a one-button horse runner: collect exactly the recipient's
// target amount of money, in the terminal, in a window or over SSH.
//
// Usage:
//
//	horsedash list               - List available rulesets
//	horsedash recipients         - List recipients and their targets
//	horsedash play [rules]       - Play in the terminal
//	horsedash window [rules]     - Play in a desktop window
//	horsedash menu               - Pick rules and recipient interactively
//	horsedash serve              - Start SSH server for remote play
//	horsedash results [rules]    - Show the run history
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.horsedash/history.db)
//	--config <path>       - Custom ruleset YAML
//	--recipients <path>   - Custom recipient table YAML
//	--log-level <level>   - debug, info, warn or error (default: warn)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/horse-dash/internal/config"
	_ "github.com/vovakirdan/horse-dash/internal/games/horse" // Registers the rulesets
	"github.com/vovakirdan/horse-dash/internal/registry"
	"github.com/vovakirdan/horse-dash/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagRecipients string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "horsedash",
	Short: "Horse Dash - collect exactly the right amount of New Year money",
	Long: `Horse Dash is a one-button runner. A horse gallops across the field,
jumping over obstacles and collecting coins and bills. Land exactly on the
recipient's target amount to clear the run; collect too much and it is over.

Rulesets:
  stamina  - Every jump costs stamina, carrots restore it; double jump
  gate     - Obstacles and a torii gate; the exact amount must be ready
             when the torii arrives

Available commands:
  list        - Show the rulesets
  recipients  - Show the recipients and their targets
  play        - Play in the terminal
  window      - Play in a desktop window
  menu        - Interactive rules and recipient picker
  serve       - Start SSH server for remote play
  results     - View the run history

Examples:
  horsedash play --id hiko
  horsedash window gate --id taro
  horsedash menu
  horsedash serve --ssh :2222
  horsedash results gate`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.horsedash/history.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom ruleset YAML")
	rootCmd.PersistentFlags().StringVar(&flagRecipients, "recipients", "", "Path to custom recipient table YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(recipientsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resultsCmd)
}

// newLogger builds the CLI logger from --log-level.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "horsedash",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using warn", "level", flagLogLevel)
		level = log.WarnLevel
	}
	logger.SetLevel(level)
	return logger
}

// gameOptions passes the config flags to the ruleset factories.
func gameOptions(logger *log.Logger) registry.Options {
	return registry.Options{
		ConfigPath:     flagConfig,
		RecipientsPath: flagRecipients,
		Logger:         logger,
	}
}

// loadRecipients loads the recipient table, falling back to the defaults.
func loadRecipients(logger *log.Logger) config.RecipientTable {
	table, err := config.LoadRecipients(flagRecipients)
	if err != nil {
		logger.Warn("using default recipients", "error", err)
	}
	return table
}

// openStore opens the run history. The game still works without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run history", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// rulesArg returns the ruleset named on the command line, or the default.
func rulesArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return config.RulesStamina
}

// checkRules exits with a hint when id is not a registered ruleset.
func checkRules(id string) {
	if !registry.Exists(id) {
		fmt.Fprintf(os.Stderr, "Error: unknown rules %q\n", id)
		fmt.Fprintln(os.Stderr, "Run 'horsedash list' to see available rulesets.")
		os.Exit(1)
	}
}
