package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danmuck/dlsgctl/internal/config"
	"github.com/danmuck/dlsgctl/internal/dlsg"
	"github.com/danmuck/dlsgctl/internal/dlsg/record"
	"github.com/danmuck/dlsgctl/internal/testutil/testlog"
	"github.com/spf13/pflag"
)

func writeDeclaration(t *testing.T) string {
	t.Helper()
	recs := []record.Record{
		"@DeclInfo", "7701", "0",
		"@PersonName", "Иванов", "Иван", "Иванович", "770000000000", "г. Москва", "30000",
		"@DeclForeign", "0",
		"@DeclWhereReturn", "0",
	}
	body, err := record.Encode(recs, 4)
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	raw := append([]byte("DLSG            Decl20230102FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF"), body...)
	path := filepath.Join(t.TempDir(), "in.dc3")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestRunRoundTripWritesIdenticalFile(t *testing.T) {
	testlog.Start(t)
	in := writeDeclaration(t)
	out := filepath.Join(t.TempDir(), "out.dc3")

	if err := run([]string{"--file", in, "--out", out, "--log-level", "off"}, &bytes.Buffer{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	want, _ := os.ReadFile(in)
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("output differs from input:\n got=%q\nwant=%q", got, want)
	}
}

func TestRunAppendsDividendAndDumps(t *testing.T) {
	testlog.Start(t)
	in := writeDeclaration(t)
	out := filepath.Join(t.TempDir(), "out.dc3")

	var stdout bytes.Buffer
	args := []string{
		"-f", in, "-o", out, "--dump", "--log-level", "off",
		"--dividend-description", "AAPL",
		"--dividend-amount", "1.234",
		"--dividend-amount-rub", "92.55",
		"--dividend-tax", "0.12",
		"--dividend-tax-rub", "9.25",
		"--dividend-rate", "75",
		"--dividend-currency", "usd",
		"--dividend-date", "2020-12-01",
	}
	if err := run(args, &stdout); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(stdout.String(), "AAPL") {
		t.Fatalf("dump missing appended dividend:\n%s", stdout.String())
	}

	doc, err := dlsg.ReadFile(out)
	if err != nil {
		t.Fatalf("re-read output: %v", err)
	}
	foreign, ok := doc.Foreign()
	if !ok || len(foreign.Incomes) != 1 {
		t.Fatalf("expected one foreign income, got %+v", foreign)
	}
	income := foreign.Incomes[0]
	if income.Description != "AAPL" || income.CurrencyCode != "840" || income.IncomeDate.Value != 44166 {
		t.Fatalf("unexpected income: %+v", income)
	}
}

func TestRunConfigFileWithFlagOverride(t *testing.T) {
	testlog.Start(t)
	in := writeDeclaration(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "dlsgctl.toml")
	if err := os.WriteFile(cfgPath, []byte("output = \"\"\nlog_level = \"off\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	// input comes only from the flag; the file alone would not validate.
	if _, err := config.Load(cfgPath); !errors.Is(err, config.ErrInvalidConfig) {
		t.Fatalf("expected config without input to be invalid, got %v", err)
	}
	var stdout bytes.Buffer
	if err := run([]string{"--config", cfgPath, "--file", in, "--dump"}, &stdout); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(stdout.String(), "year: 2023") {
		t.Fatalf("unexpected dump:\n%s", stdout.String())
	}
}

func TestRunErrors(t *testing.T) {
	testlog.Start(t)
	in := writeDeclaration(t)

	if err := run(nil, &bytes.Buffer{}); !errors.Is(err, config.ErrInvalidConfig) {
		t.Fatalf("expected missing input to fail validation, got %v", err)
	}
	if err := run([]string{"--file", filepath.Join(t.TempDir(), "nope.dc3")}, &bytes.Buffer{}); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
	if err := run([]string{"--file", in, "--dividend-description", "x", "--dividend-rate", "abc", "--dividend-date", "2020-12-01"}, &bytes.Buffer{}); err == nil || !strings.Contains(err.Error(), "--dividend-rate") {
		t.Fatalf("expected bad rate error, got %v", err)
	}
	if err := run([]string{"--file", in, "--dividend-description", "x", "--dividend-rate", "1", "--dividend-date", "01.12.2020"}, &bytes.Buffer{}); err == nil || !strings.Contains(err.Error(), "--dividend-date") {
		t.Fatalf("expected bad date error, got %v", err)
	}
	if err := run([]string{"--help"}, &bytes.Buffer{}); !errors.Is(err, pflag.ErrHelp) {
		t.Fatalf("expected pflag.ErrHelp, got %v", err)
	}
}

func TestRunInitConfig(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "dlsgctl.toml")
	if err := run([]string{"--init-config", path}, &bytes.Buffer{}); err != nil {
		t.Fatalf("init config: %v", err)
	}
	if _, err := config.Load(path); err != nil {
		t.Fatalf("template does not load: %v", err)
	}
}

func TestRunRejectsDividendFlagsWithoutDescription(t *testing.T) {
	testlog.Start(t)
	in := writeDeclaration(t)
	out := filepath.Join(t.TempDir(), "out.dc3")

	err := run([]string{"--file", in, "--out", out, "--dividend-amount", "1.5", "--dividend-date", "2020-12-01"}, &bytes.Buffer{})
	if !errors.Is(err, errUsage) {
		t.Fatalf("expected errUsage, got %v", err)
	}
	if !strings.Contains(err.Error(), "--dividend-amount") {
		t.Fatalf("error does not name the flag: %v", err)
	}
	if _, statErr := os.Stat(out); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatalf("output written despite rejected flags: %v", statErr)
	}
}
