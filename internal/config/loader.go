package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// loadYAML fills out from the first readable source.
// Search order: customPath -> ~/.horsedash/configs/<file> -> ./configs/<file> -> embedded.
// A custom path that cannot be read or parsed is an error; the other
// locations are skipped silently.
func loadYAML(customPath, file string, embedded []byte, out any) error {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return nil
	}

	if userCfgPath := userConfigPath(file); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, out); err == nil {
				return nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", file)); err == nil {
		if err := yaml.Unmarshal(data, out); err == nil {
			return nil
		}
	}

	if err := yaml.Unmarshal(embedded, out); err != nil {
		return fmt.Errorf("failed to parse embedded %s: %w", file, err)
	}
	return nil
}

// LoadRules loads the named ruleset ("stamina" or "gate").
// Search order: customPath -> ~/.horsedash/configs/<name>.yaml -> ./configs/<name>.yaml -> embedded default.
// On error the hard-coded default for the name is returned alongside it so
// callers can warn and keep going.
func LoadRules(name, customPath string) (Rules, error) {
	fallback, ok := DefaultRules(name)
	if !ok {
		return Rules{}, fmt.Errorf("config: unknown ruleset %q", name)
	}

	var rules Rules
	if err := loadYAML(customPath, name+".yaml", GetDefaultYAML(name), &rules); err != nil {
		return fallback, err
	}
	if rules.Name == "" {
		rules.Name = name
	}
	if err := rules.Validate(); err != nil {
		return fallback, err
	}
	return rules, nil
}

// LoadRecipients loads the recipient table.
// Search order: customPath -> ~/.horsedash/configs/recipients.yaml -> ./configs/recipients.yaml -> embedded default.
func LoadRecipients(customPath string) (RecipientTable, error) {
	var table RecipientTable
	if err := loadYAML(customPath, "recipients.yaml", defaultRecipientsYAML, &table); err != nil {
		return DefaultRecipients(), err
	}
	if err := table.Validate(); err != nil {
		return DefaultRecipients(), err
	}
	return table, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".horsedash", "configs", filename)
}
