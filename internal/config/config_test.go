package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedRulesMatchDefaults(t *testing.T) {
	for _, name := range []string{RulesStamina, RulesGate} {
		t.Run(name, func(t *testing.T) {
			var fromYAML Rules
			if err := yaml.Unmarshal(GetDefaultYAML(name), &fromYAML); err != nil {
				t.Fatalf("embedded %s.yaml does not parse: %v", name, err)
			}
			want, _ := DefaultRules(name)
			if !reflect.DeepEqual(fromYAML, want) {
				t.Errorf("embedded %s.yaml differs from hard-coded defaults:\n yaml: %+v\n code: %+v", name, fromYAML, want)
			}
			if err := fromYAML.Validate(); err != nil {
				t.Errorf("default rules invalid: %v", err)
			}
		})
	}
}

func TestEmbeddedRecipientsMatchDefaults(t *testing.T) {
	var table RecipientTable
	if err := yaml.Unmarshal(GetDefaultYAML("recipients"), &table); err != nil {
		t.Fatalf("embedded recipients.yaml does not parse: %v", err)
	}
	if !reflect.DeepEqual(table, DefaultRecipients()) {
		t.Errorf("embedded recipients differ from defaults:\n yaml: %+v\n code: %+v", table, DefaultRecipients())
	}
}

func TestRecipientLookup(t *testing.T) {
	table := DefaultRecipients()

	tests := []struct {
		id         string
		wantTarget int
		wantFound  bool
	}{
		{"hiko", 505, true},
		{"taro", 115, true},
		{"ume", 880, true},
		{"", 300, false},
		{"nobody", 300, false},
	}

	for _, tc := range tests {
		r, found := table.Lookup(tc.id)
		if r.TargetAmount != tc.wantTarget || found != tc.wantFound {
			t.Errorf("Lookup(%q) = (%d, %v), expected (%d, %v)", tc.id, r.TargetAmount, found, tc.wantTarget, tc.wantFound)
		}
	}

	hiko, _ := table.Lookup("hiko")
	if hiko.Message != "ひこさん、ぴったりお年玉達成！今年もよろしくお願いします！" {
		t.Errorf("hiko message = %q", hiko.Message)
	}
}

func TestRecipientTableValidate(t *testing.T) {
	table := DefaultRecipients()
	table.Recipients = append(table.Recipients, Recipient{ID: "hiko", Name: "dup", TargetAmount: 5})
	if err := table.Validate(); err == nil {
		t.Error("duplicate ids should be rejected")
	}

	table = DefaultRecipients()
	table.Recipients[0].TargetAmount = 0
	if err := table.Validate(); err == nil {
		t.Error("zero target should be rejected")
	}
}

func TestRulesValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Rules)
		substr string
	}{
		{"no jumps", func(r *Rules) { r.Horse.MaxJumps = 0 }, "max_jumps"},
		{"no values", func(r *Rules) { r.Items.Values = nil }, "items.values"},
		{"bad probability", func(r *Rules) { r.Items.MoneyProbability = 1.5 }, "money_probability"},
		{"unknown gate", func(r *Rules) { r.Obstacles.Gate = "shrine" }, "obstacles.gate"},
		{"no obstacle weights", func(r *Rules) { r.Obstacles.Kinds = nil }, "total weight"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := DefaultGateRules()
			tc.mutate(&r)
			err := r.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.substr) {
				t.Errorf("error %q does not mention %q", err, tc.substr)
			}
		})
	}
}

func TestLoadRulesCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fast.yaml")

	rules := DefaultStaminaRules()
	rules.Stamina.DecayPerFrame = 1
	data, err := yaml.Marshal(rules)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	loaded, err := LoadRules(RulesStamina, path)
	if err != nil {
		t.Fatalf("LoadRules() failed: %v", err)
	}
	if loaded.Stamina.DecayPerFrame != 1 {
		t.Errorf("DecayPerFrame = %v, expected 1", loaded.Stamina.DecayPerFrame)
	}
}

func TestLoadRulesErrorsFallBack(t *testing.T) {
	if _, err := LoadRules("rodeo", ""); err == nil {
		t.Error("unknown ruleset should fail")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(path, []byte("horse: [not, a, map"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	rules, err := LoadRules(RulesGate, path)
	if err == nil {
		t.Fatal("broken YAML should fail")
	}
	if rules.Name != RulesGate || !rules.Obstacles.Enabled {
		t.Errorf("fallback rules should be the gate defaults, got %+v", rules)
	}

	if _, err := LoadRules(RulesGate, filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom file should fail")
	}
}

func TestLoadRecipientsCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "recipients.yaml")
	content := `
default:
  name: Guest
  target_amount: 55
  message: done
recipients:
  - id: jiro
    name: Jiro
    target_amount: 1005
    message: Jiro wins
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	table, err := LoadRecipients(path)
	if err != nil {
		t.Fatalf("LoadRecipients() failed: %v", err)
	}
	r, ok := table.Lookup("jiro")
	if !ok || r.TargetAmount != 1005 {
		t.Errorf("Lookup(jiro) = %+v, %v", r, ok)
	}
	if d, _ := table.Lookup("hiko"); d.TargetAmount != 55 {
		t.Errorf("unknown id should use custom default, got %+v", d)
	}
}
