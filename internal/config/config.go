package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/dlsgctl/internal/currency"
	"github.com/danmuck/dlsgctl/internal/dividend"
	"github.com/danmuck/dlsgctl/internal/logging"
)

var ErrInvalidConfig = errors.New("config: invalid config")

// Config drives one dlsgctl run.
type Config struct {
	Input      string
	Output     string
	LogLevel   string
	Dump       bool
	Dividend   dividend.Options
	Currencies []currency.Currency
}

type fileConfig struct {
	Input      string              `toml:"input"`
	Output     string              `toml:"output"`
	LogLevel   string              `toml:"log_level"`
	Dump       bool                `toml:"dump"`
	Dividend   dividendConfig      `toml:"dividend"`
	Currencies []currency.Currency `toml:"currency"`
}

type dividendConfig struct {
	IncomeType        string `toml:"income_type"`
	IncomeCode        string `toml:"income_code"`
	IncomeDescription string `toml:"income_description"`
	AutoCurrencyRate  string `toml:"auto_currency_rate"`
}

func DefaultConfig() Config {
	return Config{
		LogLevel: "warning",
		Dividend: dividend.DefaultOptions(),
	}
}

// Load reads and validates path.
func Load(path string) (Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return Config{}, err
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Read decodes path over DefaultConfig without validating the result. Keys
// absent from the file keep their defaults.
func Read(path string) (Config, error) {
	cfg := DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%w: unknown key %q in %s", ErrInvalidConfig, undecoded[0].String(), path)
	}

	if meta.IsDefined("input") {
		cfg.Input = strings.TrimSpace(raw.Input)
	}
	if meta.IsDefined("output") {
		cfg.Output = strings.TrimSpace(raw.Output)
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("dump") {
		cfg.Dump = raw.Dump
	}
	if meta.IsDefined("dividend", "income_type") {
		cfg.Dividend.IncomeType = strings.TrimSpace(raw.Dividend.IncomeType)
	}
	if meta.IsDefined("dividend", "income_code") {
		cfg.Dividend.IncomeCode = strings.TrimSpace(raw.Dividend.IncomeCode)
	}
	if meta.IsDefined("dividend", "income_description") {
		cfg.Dividend.IncomeDescription = strings.TrimSpace(raw.Dividend.IncomeDescription)
	}
	if meta.IsDefined("dividend", "auto_currency_rate") {
		cfg.Dividend.AutoCurrencyRate = strings.TrimSpace(raw.Dividend.AutoCurrencyRate)
	}
	if meta.IsDefined("currency") {
		cfg.Currencies = raw.Currencies
	}
	return cfg, nil
}

// Validate checks a config before a run. Input is required; everything else
// has a usable default.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.Input) == "" {
		return fmt.Errorf("%w: input is required", ErrInvalidConfig)
	}
	if _, ok := logging.ParseLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, cfg.LogLevel)
	}
	if strings.TrimSpace(cfg.Dividend.IncomeCode) == "" {
		return fmt.Errorf("%w: dividend income_code is required", ErrInvalidConfig)
	}
	for i, cur := range cfg.Currencies {
		if err := currency.Validate(cur); err != nil {
			return fmt.Errorf("%w: currency[%d]: %w", ErrInvalidConfig, i, err)
		}
	}
	return nil
}

// Catalog returns the built-in currencies with the configured entries on top.
func (c Config) Catalog() (*currency.Catalog, error) {
	catalog, err := currency.Builtin()
	if err != nil {
		return nil, err
	}
	for i, cur := range c.Currencies {
		if err := catalog.Add(cur); err != nil {
			return nil, fmt.Errorf("currency[%d]: %w", i, err)
		}
	}
	return catalog, nil
}
