// dlsgctl reads a DLSG declaration file, optionally appends a foreign
// dividend entry, and writes the result back or dumps it as YAML.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/danmuck/dlsgctl/internal/config"
	"github.com/danmuck/dlsgctl/internal/dividend"
	"github.com/danmuck/dlsgctl/internal/dlsg"
	"github.com/danmuck/dlsgctl/internal/dump"
	"github.com/danmuck/dlsgctl/internal/logging"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
)

func main() {
	logging.ConfigureRuntime()
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		log.Error().Err(err).Msg("dlsgctl failed")
		fmt.Fprintf(os.Stderr, "dlsgctl: %v\n", err)
		os.Exit(1)
	}
}

var errUsage = errors.New("invalid usage")

type options struct {
	configPath string
	initConfig string
	input      string
	output     string
	logLevel   string
	dump       bool

	description string
	amount      string
	amountRub   string
	tax         string
	taxRub      string
	rate        string
	currency    string
	date        string
}

func newFlagSet(opts *options) *pflag.FlagSet {
	fs := pflag.NewFlagSet("dlsgctl", pflag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "", "path to a TOML run configuration")
	fs.StringVar(&opts.initConfig, "init-config", "", "write a starter configuration to this path and exit")
	fs.StringVarP(&opts.input, "file", "f", "", "declaration file to read (.dcX)")
	fs.StringVarP(&opts.output, "out", "o", "", "path to write the declaration to")
	fs.StringVar(&opts.logLevel, "log-level", "", "log threshold: debug|info|warning|error|off")
	fs.BoolVar(&opts.dump, "dump", false, "print the parsed declaration as YAML")

	fs.StringVar(&opts.description, "dividend-description", "", "append a dividend with this description")
	fs.StringVar(&opts.amount, "dividend-amount", "0", "dividend amount in currency")
	fs.StringVar(&opts.amountRub, "dividend-amount-rub", "0", "dividend amount in roubles")
	fs.StringVar(&opts.tax, "dividend-tax", "0", "tax withheld in currency")
	fs.StringVar(&opts.taxRub, "dividend-tax-rub", "0", "tax withheld in roubles")
	fs.StringVar(&opts.rate, "dividend-rate", "", "exchange rate for one unit of currency")
	fs.StringVar(&opts.currency, "dividend-currency", "USD", "dividend currency alpha code")
	fs.StringVar(&opts.date, "dividend-date", "", "payment date, YYYY-MM-DD")
	return fs
}

func run(args []string, stdout io.Writer) error {
	var opts options
	fs := newFlagSet(&opts)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if opts.initConfig != "" {
		if err := config.WriteTemplate(opts.initConfig, false); err != nil {
			return err
		}
		log.Info().Str("path", opts.initConfig).Msg("wrote config template")
		return nil
	}

	if err := checkDividendFlags(fs, opts); err != nil {
		return err
	}

	cfg, err := resolveConfig(fs, opts)
	if err != nil {
		return err
	}
	if err := logging.SetLevel(cfg.LogLevel); err != nil {
		return err
	}

	doc, err := dlsg.ReadFile(cfg.Input)
	if err != nil {
		return err
	}

	if opts.description != "" {
		d, err := parseDividend(opts)
		if err != nil {
			return err
		}
		catalog, err := cfg.Catalog()
		if err != nil {
			return err
		}
		if _, err := dividend.NewBuilder(catalog, cfg.Dividend).Append(doc, d); err != nil {
			return err
		}
	}

	if cfg.Dump {
		if err := dump.Write(stdout, doc); err != nil {
			return err
		}
	}

	if cfg.Output != "" {
		return doc.WriteFile(cfg.Output)
	}
	return nil
}

// resolveConfig loads the config file, if any, and applies flags set on the
// command line on top of it.
func resolveConfig(fs *pflag.FlagSet, opts options) (config.Config, error) {
	cfg := config.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := config.Read(opts.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	if fs.Changed("file") {
		cfg.Input = opts.input
	}
	if fs.Changed("out") {
		cfg.Output = opts.output
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if fs.Changed("dump") {
		cfg.Dump = opts.dump
	}
	if err := config.Validate(cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

var dividendFlags = []string{
	"dividend-amount",
	"dividend-amount-rub",
	"dividend-tax",
	"dividend-tax-rub",
	"dividend-rate",
	"dividend-currency",
	"dividend-date",
}

// checkDividendFlags rejects dividend values given without a description,
// which would otherwise be dropped.
func checkDividendFlags(fs *pflag.FlagSet, opts options) error {
	if opts.description != "" {
		return nil
	}
	for _, name := range dividendFlags {
		if fs.Changed(name) {
			return fmt.Errorf("%w: --%s requires --dividend-description", errUsage, name)
		}
	}
	return nil
}

func parseDividend(opts options) (dividend.Dividend, error) {
	d := dividend.Dividend{
		Description: opts.description,
		Currency:    opts.currency,
	}
	fields := []struct {
		name string
		raw  string
		dst  *decimal.Decimal
	}{
		{"dividend-amount", opts.amount, &d.Amount},
		{"dividend-amount-rub", opts.amountRub, &d.AmountRub},
		{"dividend-tax", opts.tax, &d.Tax},
		{"dividend-tax-rub", opts.taxRub, &d.TaxRub},
		{"dividend-rate", opts.rate, &d.Rate},
	}
	for _, f := range fields {
		v, err := decimal.NewFromString(f.raw)
		if err != nil {
			return dividend.Dividend{}, fmt.Errorf("--%s: %w", f.name, err)
		}
		*f.dst = v
	}
	date, err := time.Parse(time.DateOnly, opts.date)
	if err != nil {
		return dividend.Dividend{}, fmt.Errorf("--dividend-date: %w", err)
	}
	d.Date = date
	return d, nil
}
