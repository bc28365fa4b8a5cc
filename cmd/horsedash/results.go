package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/horse-dash/internal/registry"
	"github.com/vovakirdan/horse-dash/internal/storage"
)

var (
	flagResultsLimit int
	flagResultsClear bool
)

var resultsCmd = &cobra.Command{
	Use:   "results [rules]",
	Short: "Show the run history",
	Long: `Display the most recent finished runs, newest first, with the clear rate.
Without rules, runs of every ruleset are shown.

Examples:
  horsedash results
  horsedash results gate
  horsedash results --id hiko
  horsedash results stamina --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runResults,
}

func init() {
	resultsCmd.Flags().StringVar(&flagRecipientID, "id", "", "Only runs for this recipient")
	resultsCmd.Flags().IntVar(&flagResultsLimit, "limit", 10, "Number of runs to show")
	resultsCmd.Flags().BoolVar(&flagResultsClear, "clear", false, "Delete the history instead of showing it")
}

func runResults(cmd *cobra.Command, args []string) {
	variant := ""
	if len(args) > 0 {
		variant = args[0]
		checkRules(variant)
	}

	logger := newLogger()
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run history: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagResultsClear {
		if err := store.ClearRuns(variant); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Run history cleared.")
		return
	}

	var runs []storage.Run
	title := "All rules"
	switch {
	case cmd.Flags().Changed("id"):
		runs, err = store.RecipientRuns(flagRecipientID, flagResultsLimit)
		title = "Runs for " + recipientName(loadRecipients(logger), flagRecipientID)
	default:
		runs, err = store.RecentRuns(variant, flagResultsLimit)
		if variant != "" {
			title = rulesTitle(variant)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Results - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'horsedash play' to record the first run!")
		return
	}

	nameW := runewidth.StringWidth("Recipient")
	for _, r := range runs {
		nameW = max(nameW, runewidth.StringWidth(runRecipient(r)))
	}

	fmt.Printf("  %-4s  %-8s  %s  %-6s  %-14s  %-5s  %s\n",
		"#", "Rules", runewidth.FillRight("Recipient", nameW), "Result", "Money", "Score", "Date")
	fmt.Printf("  %-4s  %-8s  %s  %-6s  %-14s  %-5s  %s\n",
		"-", "-----", runewidth.FillRight("---------", nameW), "------", "-----", "-----", "----")

	for i, r := range runs {
		result := "MISS"
		if r.Cleared() {
			result = "CLEAR"
		}
		money := fmt.Sprintf("%d/%d yen", r.Total, r.Target)
		fmt.Printf("  %-4d  %-8s  %s  %-6s  %-14s  %-5d  %s\n",
			i+1, r.Variant, runewidth.FillRight(runRecipient(r), nameW), result, money, r.Score,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if variant != "" {
		if stats, err := store.VariantStats(variant); err == nil && stats.Runs > 0 {
			fmt.Println()
			fmt.Printf("Runs: %d  Cleared: %d (%.0f%%)", stats.Runs, stats.Cleared, stats.ClearRate()*100)
			if stats.BestScore > 0 {
				fmt.Printf("  Best score: %d", stats.BestScore)
			}
			fmt.Println()
		}
	}
}

func runRecipient(r storage.Run) string {
	switch {
	case r.Recipient != "":
		return r.Recipient
	case r.RecipientID != "":
		return r.RecipientID
	}
	return "-"
}

func rulesTitle(id string) string {
	for _, g := range registry.List() {
		if g.ID == id {
			return g.Title
		}
	}
	return id
}
