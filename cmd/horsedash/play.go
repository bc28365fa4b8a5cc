package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/horse-dash/internal/core"
	"github.com/vovakirdan/horse-dash/internal/platform/tui"
	"github.com/vovakirdan/horse-dash/internal/registry"
)

var flagRecipientID string

var playCmd = &cobra.Command{
	Use:   "play [rules]",
	Short: "Play in the terminal",
	Long: `Start a run in the terminal. The rules default to "stamina".

Controls:
  Space/Up/Click  - Jump (retry after a finished run)
  R               - Retry after a finished run
  P               - Pause
  Ctrl+S          - Save a screenshot to ~/.horsedash/screenshots
  Esc/B           - Back
  Q/Ctrl+C        - Quit

Examples:
  horsedash play
  horsedash play --id hiko
  horsedash play gate --id taro --seed 42
  horsedash play stamina --config ./my-stamina.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagRecipientID, "id", "", "Recipient id (unknown or empty uses the default recipient)")
}

// terminalConfig builds a runtime config sized to the terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:     width,
		ScreenH:     height,
		TickRate:    flagFPS,
		Seed:        flagSeed,
		RecipientID: flagRecipientID,
	}
}

func runPlay(_ *cobra.Command, args []string) {
	rules := rulesArg(args)
	checkRules(rules)

	logger := newLogger()
	game, err := registry.Create(rules, gameOptions(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore(logger)
	_, runErr := tui.Run(game, store, logger, terminalConfig())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
