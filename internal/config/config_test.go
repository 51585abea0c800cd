package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/danmuck/dlsgctl/internal/currency"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaultsAndOverrides(t *testing.T) {
	path := writeConfig(t, `
input = " 2023.dc3 "
output = "2023-out.dc3"
log_level = "debug"

[dividend]
income_description = "Дивиденды (иностранные)"

[[currency]]
alpha = "TRY"
code = "949"
name = "Турецкая лира"
country = "792"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Input != "2023.dc3" {
		t.Fatalf("unexpected input: %q", cfg.Input)
	}
	if cfg.Output != "2023-out.dc3" {
		t.Fatalf("unexpected output: %q", cfg.Output)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("unexpected log level: %q", cfg.LogLevel)
	}
	if cfg.Dump {
		t.Fatalf("expected dump disabled by default")
	}
	if cfg.Dividend.IncomeCode != "1010" || cfg.Dividend.IncomeType != "14" {
		t.Fatalf("dividend defaults lost: %+v", cfg.Dividend)
	}
	if cfg.Dividend.IncomeDescription != "Дивиденды (иностранные)" {
		t.Fatalf("unexpected dividend description: %q", cfg.Dividend.IncomeDescription)
	}
	if len(cfg.Currencies) != 1 || cfg.Currencies[0].Alpha != "TRY" {
		t.Fatalf("unexpected currencies: %+v", cfg.Currencies)
	}

	catalog, err := cfg.Catalog()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	lira, err := catalog.Lookup("try")
	if err != nil || lira.Units != currency.DefaultUnits {
		t.Fatalf("configured currency not in catalog: %+v err=%v", lira, err)
	}
	if _, err := catalog.Lookup("USD"); err != nil {
		t.Fatalf("builtin currency lost: %v", err)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	cases := map[string]string{
		"missing input":  `log_level = "info"`,
		"bad level":      "input = \"a.dc3\"\nlog_level = \"loud\"",
		"unknown key":    "input = \"a.dc3\"\nverbose = true",
		"bad currency":   "input = \"a.dc3\"\n[[currency]]\nalpha = \"TRY\"\ncode = \"9\"\nname = \"x\"\ncountry = \"792\"",
		"empty dividend": "input = \"a.dc3\"\n[dividend]\nincome_code = \"\"",
	}
	for name, content := range cases {
		_, err := Load(writeConfig(t, content))
		if !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("%s: expected ErrInvalidConfig, got %v", name, err)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}

func TestTemplateLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dlsgctl.toml")
	if err := WriteTemplate(path, false); err != nil {
		t.Fatalf("write template: %v", err)
	}
	if err := WriteTemplate(path, false); err == nil {
		t.Fatalf("expected existing template to be kept")
	}
	if err := WriteTemplate(path, true); err != nil {
		t.Fatalf("overwrite template: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	if cfg.Input != "declaration.dc3" || cfg.LogLevel != "warning" {
		t.Fatalf("unexpected template config: %+v", cfg)
	}
}
