package dividend

import (
	"errors"
	"testing"
	"time"

	"github.com/danmuck/dlsgctl/internal/currency"
	"github.com/danmuck/dlsgctl/internal/dlsg"
	"github.com/danmuck/dlsgctl/internal/dlsg/section"
	"github.com/danmuck/dlsgctl/internal/testutil/testlog"
	"github.com/shopspring/decimal"
)

func newBuilder(t *testing.T) *Builder {
	t.Helper()
	catalog, err := currency.Builtin()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return NewBuilder(catalog, DefaultOptions())
}

func testDividend() Dividend {
	return Dividend{
		Description: "TEST",
		Amount:      decimal.NewFromInt(123),
		AmountRub:   decimal.NewFromInt(654),
		Tax:         decimal.NewFromInt(11),
		TaxRub:      decimal.NewFromInt(65),
		Rate:        decimal.NewFromInt(75),
		Currency:    "USD",
		Date:        time.Date(2020, time.December, 1, 0, 0, 0, 0, time.UTC),
	}
}

func docWithForeign(n int) *dlsg.Document {
	foreign := &section.DeclForeign{}
	for i := 0; i < n; i++ {
		foreign.Incomes = append(foreign.Incomes, &section.CurrencyIncome{ID: i})
	}
	return &dlsg.Document{
		Year:     2020,
		Sections: []section.Section{&section.DeclInfo{Inspection: "7701"}, foreign},
	}
}

func TestDays(t *testing.T) {
	if got := Days(time.Date(2020, time.December, 1, 0, 0, 0, 0, time.UTC)); got != 44166 {
		t.Fatalf("unexpected day count: %d", got)
	}
	if got := Days(time.Date(1899, time.December, 31, 23, 59, 0, 0, time.UTC)); got != 1 {
		t.Fatalf("time of day must be ignored: %d", got)
	}
}

func TestAppendDividend(t *testing.T) {
	testlog.Start(t)
	doc := docWithForeign(2)
	income, err := newBuilder(t).Append(doc, testDividend())
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	foreign, ok := doc.Foreign()
	if !ok {
		t.Fatalf("foreign section missing")
	}
	if foreign.Count() != 3 || foreign.Incomes[2] != income {
		t.Fatalf("unexpected foreign section: count=%d", foreign.Count())
	}
	if income.ID != 2 {
		t.Fatalf("unexpected id: %d", income.ID)
	}
	if income.CurrencyCode != "840" || income.CurrencyName != "Доллар США" {
		t.Fatalf("unexpected currency: code=%q name=%q", income.CurrencyCode, income.CurrencyName)
	}
	if income.IncomeUnits.Value != 100 || income.TaxUnits.Value != 100 {
		t.Fatalf("unexpected units: %d/%d", income.IncomeUnits.Value, income.TaxUnits.Value)
	}
	rate := decimal.NewFromInt(7500)
	if !income.IncomeRate.Value.Equal(rate) || !income.TaxRate.Value.Equal(rate) {
		t.Fatalf("unexpected rates: %s/%s", income.IncomeRate, income.TaxRate)
	}
	if income.Description != "TEST" || income.IncomeDate.Value != 44166 || income.TaxPaymentDate.Value != 44166 {
		t.Fatalf("unexpected description or dates: %+v", income)
	}
	if !income.IncomeCurrency.Value.Equal(decimal.NewFromInt(123)) ||
		!income.IncomeRub.Value.Equal(decimal.NewFromInt(654)) ||
		!income.TaxCurrency.Value.Equal(decimal.NewFromInt(11)) ||
		!income.TaxRub.Value.Equal(decimal.NewFromInt(65)) {
		t.Fatalf("unexpected amounts: %+v", income)
	}
	if len(income.Reserved) != reservedFields {
		t.Fatalf("unexpected reserved block: %q", income.Reserved)
	}
}

func TestAppendedDividendSurvivesWrite(t *testing.T) {
	testlog.Start(t)
	doc := docWithForeign(0)
	if _, err := newBuilder(t).Append(doc, testDividend()); err != nil {
		t.Fatalf("append: %v", err)
	}
	raw, err := doc.Write()
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	again, err := dlsg.Read(raw)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	foreign, ok := again.Foreign()
	if !ok || foreign.Count() != 1 {
		t.Fatalf("unexpected foreign section after re-read")
	}
	income := foreign.Incomes[0]
	if income.CurrencyName != "Доллар США" || income.IncomeRate.String() != "7500" {
		t.Fatalf("unexpected re-read entry: %+v", income)
	}
}

func TestAppendWithoutForeignSection(t *testing.T) {
	doc := &dlsg.Document{Year: 2020, Sections: []section.Section{&section.DeclInfo{}}}
	if _, err := newBuilder(t).Append(doc, testDividend()); !errors.Is(err, ErrMissingForeignSection) {
		t.Fatalf("expected ErrMissingForeignSection, got %v", err)
	}
}

func TestBuildRejectsBadInput(t *testing.T) {
	b := newBuilder(t)

	d := testDividend()
	d.Currency = "XYZ"
	if _, err := b.Build(d); !errors.Is(err, currency.ErrUnknownCurrency) {
		t.Fatalf("expected ErrUnknownCurrency, got %v", err)
	}

	d = testDividend()
	d.Description = " "
	if _, err := b.Build(d); !errors.Is(err, ErrInvalidDividend) {
		t.Fatalf("expected ErrInvalidDividend for description, got %v", err)
	}

	d = testDividend()
	d.Rate = decimal.Zero
	if _, err := b.Build(d); !errors.Is(err, ErrInvalidDividend) {
		t.Fatalf("expected ErrInvalidDividend for rate, got %v", err)
	}

	d = testDividend()
	d.Date = time.Time{}
	if _, err := b.Build(d); !errors.Is(err, ErrInvalidDividend) {
		t.Fatalf("expected ErrInvalidDividend for date, got %v", err)
	}
}
