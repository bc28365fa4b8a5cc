package config

import (
	"fmt"
	"sort"
)

// Recipient is the player a run is dedicated to: who receives the money,
// how much exactly, and what the clear screen says.
type Recipient struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	TargetAmount int    `yaml:"target_amount"`
	Message      string `yaml:"message"`
}

// RecipientTable is the fixed lookup selected from at startup.
type RecipientTable struct {
	Default    Recipient   `yaml:"default"`
	Recipients []Recipient `yaml:"recipients"`
}

// Lookup returns the recipient with the given id, or the default record for
// an unknown or empty id. The bool reports whether the id was found.
func (t RecipientTable) Lookup(id string) (Recipient, bool) {
	if id == "" {
		return t.Default, false
	}
	for _, r := range t.Recipients {
		if r.ID == id {
			return r, true
		}
	}
	return t.Default, false
}

// Sorted returns the recipients ordered by id.
func (t RecipientTable) Sorted() []Recipient {
	out := make([]Recipient, len(t.Recipients))
	copy(out, t.Recipients)
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

// Validate checks that every record has a positive target and that ids are
// unique.
func (t RecipientTable) Validate() error {
	if t.Default.TargetAmount <= 0 {
		return fmt.Errorf("config: default recipient needs a positive target_amount")
	}
	seen := make(map[string]bool, len(t.Recipients))
	for _, r := range t.Recipients {
		if r.ID == "" {
			return fmt.Errorf("config: recipient %q has no id", r.Name)
		}
		if seen[r.ID] {
			return fmt.Errorf("config: duplicate recipient id %q", r.ID)
		}
		seen[r.ID] = true
		if r.TargetAmount <= 0 {
			return fmt.Errorf("config: recipient %q needs a positive target_amount", r.ID)
		}
	}
	return nil
}
