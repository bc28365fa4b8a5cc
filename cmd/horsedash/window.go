package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/horse-dash/internal/core"
	"github.com/vovakirdan/horse-dash/internal/platform/window"
	"github.com/vovakirdan/horse-dash/internal/registry"
)

var (
	flagWindowW int
	flagWindowH int
)

var windowCmd = &cobra.Command{
	Use:   "window [rules]",
	Short: "Play in a desktop window",
	Long: `Start a run in a resizable desktop window. The field follows the
window size; resizing keeps the run going.

Controls:
  Space/Up/Click/Tap  - Jump (retry after a finished run)
  R                   - Retry after a finished run
  Esc/Q               - Quit

Examples:
  horsedash window
  horsedash window gate --id ume
  horsedash window --width 1280 --height 720`,
	Args: cobra.MaximumNArgs(1),
	Run:  runWindow,
}

func init() {
	windowCmd.Flags().StringVar(&flagRecipientID, "id", "", "Recipient id (unknown or empty uses the default recipient)")
	windowCmd.Flags().IntVar(&flagWindowW, "width", 960, "Initial window width in pixels")
	windowCmd.Flags().IntVar(&flagWindowH, "height", 540, "Initial window height in pixels")
}

func runWindow(_ *cobra.Command, args []string) {
	rules := rulesArg(args)
	checkRules(rules)

	logger := newLogger()
	game, err := registry.Create(rules, gameOptions(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	cfg := core.RuntimeConfig{
		ScreenW:     flagWindowW,
		ScreenH:     flagWindowH,
		TickRate:    flagFPS,
		Seed:        flagSeed,
		RecipientID: flagRecipientID,
	}

	store := openStore(logger)
	runErr := window.Run(game, store, logger, cfg)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
