package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/horse-dash/internal/platform/tui"
	"github.com/vovakirdan/horse-dash/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick rules and recipient interactively",
	Long: `Start in interactive menu mode.

Pick the rules with the arrow keys and the recipient with left/right,
Enter to play. After a run you return to the menu to play again.

Controls:
  Up/Down/j/k     - Rules
  Left/Right/h/l  - Recipient
  Enter/Space     - Play
  Tab             - Results
  Q               - Quit

Examples:
  horsedash menu
  horsedash menu --id hiko
  horsedash menu --fps 30
  horsedash menu --db ./history.db`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagRecipientID, "id", "", "Recipient preselected in the menu")
}

func runMenu(_ *cobra.Command, _ []string) {
	logger := newLogger()
	store := openStore(logger)
	recipients := loadRecipients(logger)
	cfg := terminalConfig()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(recipients, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Keep size changes and the chosen recipient
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsResults {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from results
		}

		if menuResult.GameID == "" {
			break
		}

		game, err := registry.Create(menuResult.GameID, gameOptions(logger))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		// Fresh seed for each run unless fixed on the command line
		runCfg := cfg
		if flagSeed == 0 {
			runCfg.Seed = time.Now().UnixNano()
		}

		goBack, err := tui.Run(game, store, logger, runCfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		if !goBack {
			break
		}
	}

	if store != nil {
		store.Close()
	}
}
