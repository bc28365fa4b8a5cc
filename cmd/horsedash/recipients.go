package main

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/horse-dash/internal/config"
)

var recipientsCmd = &cobra.Command{
	Use:   "recipients",
	Short: "List recipients and their target amounts",
	Long: `Shows the recipient table: who a run can be dedicated to, and the exact
amount that clears it. Unknown ids fall back to the default recipient.

Examples:
  horsedash recipients
  horsedash recipients --recipients ./family.yaml`,
	Run: runRecipients,
}

func runRecipients(_ *cobra.Command, _ []string) {
	table := loadRecipients(newLogger())

	rows := [][3]string{{"(default)", table.Default.Name, yen(table.Default.TargetAmount)}}
	for _, r := range table.Sorted() {
		rows = append(rows, [3]string{r.ID, r.Name, yen(r.TargetAmount)})
	}

	// Names are mostly double-width, so columns are measured in cells
	idW, nameW := runewidth.StringWidth("ID"), runewidth.StringWidth("Name")
	for _, row := range rows {
		idW = max(idW, runewidth.StringWidth(row[0]))
		nameW = max(nameW, runewidth.StringWidth(row[1]))
	}

	fmt.Println("Recipients:")
	fmt.Println()
	printRow(idW, nameW, "ID", "Name", "Target")
	printRow(idW, nameW, "--", "----", "------")
	for _, row := range rows {
		printRow(idW, nameW, row[0], row[1], row[2])
	}

	fmt.Println()
	fmt.Println("Run 'horsedash play --id <id>' to play for someone.")
}

func printRow(idW, nameW int, id, name, target string) {
	fmt.Printf("  %s  %s  %s\n",
		runewidth.FillRight(id, idW),
		runewidth.FillRight(name, nameW),
		target,
	)
}

func yen(amount int) string {
	return fmt.Sprintf("%d円", amount)
}

// recipientName returns the display name for a stored recipient id.
func recipientName(table config.RecipientTable, id string) string {
	r, ok := table.Lookup(id)
	if !ok && id != "" {
		return id
	}
	return strings.TrimSpace(r.Name)
}
