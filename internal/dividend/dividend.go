// Package dividend adds foreign dividend income to a declaration.
package dividend

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danmuck/dlsgctl/internal/currency"
	"github.com/danmuck/dlsgctl/internal/dlsg"
	"github.com/danmuck/dlsgctl/internal/dlsg/record"
	"github.com/danmuck/dlsgctl/internal/dlsg/section"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var (
	ErrMissingForeignSection = errors.New("dividend: declaration has no foreign income section")
	ErrInvalidDividend       = errors.New("dividend: invalid dividend")
)

// Epoch is day zero of declaration date fields.
var Epoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

const reservedFields = 6

// Options are the fixed classification fields written into every entry.
type Options struct {
	IncomeType        string
	IncomeCode        string
	IncomeDescription string
	AutoCurrencyRate  string
}

func DefaultOptions() Options {
	return Options{
		IncomeType:        "14",
		IncomeCode:        "1010",
		IncomeDescription: "Дивиденды",
		AutoCurrencyRate:  "0",
	}
}

// Dividend is one dividend payment. Rate is the exchange rate for one unit of
// Currency; it is stored per the currency's quotation units.
type Dividend struct {
	Description string
	Amount      decimal.Decimal
	AmountRub   decimal.Decimal
	Tax         decimal.Decimal
	TaxRub      decimal.Decimal
	Rate        decimal.Decimal
	Currency    string
	Date        time.Time
}

// Builder turns dividends into CurrencyIncome entries.
type Builder struct {
	Catalog *currency.Catalog
	Options Options
}

func NewBuilder(catalog *currency.Catalog, opts Options) *Builder {
	return &Builder{Catalog: catalog, Options: opts}
}

// Days converts t to a day count from Epoch, ignoring the time of day.
func Days(t time.Time) int {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return int(day.Sub(Epoch) / (24 * time.Hour))
}

// Build creates the entry without attaching it to a document.
func (b *Builder) Build(d Dividend) (*section.CurrencyIncome, error) {
	if strings.TrimSpace(d.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInvalidDividend)
	}
	if d.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidDividend)
	}
	if !d.Rate.IsPositive() {
		return nil, fmt.Errorf("%w: rate must be positive, got %s", ErrInvalidDividend, d.Rate)
	}
	cur, err := b.Catalog.Lookup(d.Currency)
	if err != nil {
		return nil, err
	}

	days := Days(d.Date)
	rate := d.Rate.Mul(decimal.NewFromInt(int64(cur.Units)))
	reserved := make([]record.Record, reservedFields)
	for i := range reserved {
		reserved[i] = "0"
	}
	return &section.CurrencyIncome{
		Type:              b.Options.IncomeType,
		IncomeCode:        b.Options.IncomeCode,
		IncomeDescription: b.Options.IncomeDescription,
		Description:       d.Description,
		CountryCode:       cur.Country,
		IncomeDate:        section.NewInteger(days),
		TaxPaymentDate:    section.NewInteger(days),
		AutoCurrencyRate:  b.Options.AutoCurrencyRate,
		CurrencyCode:      cur.Code,
		IncomeRate:        section.NewDecimal(rate),
		IncomeUnits:       section.NewInteger(cur.Units),
		TaxRate:           section.NewDecimal(rate),
		TaxUnits:          section.NewInteger(cur.Units),
		CurrencyName:      cur.Name,
		IncomeCurrency:    section.NewDecimal(d.Amount),
		IncomeRub:         section.NewDecimal(d.AmountRub),
		TaxCurrency:       section.NewDecimal(d.Tax),
		TaxRub:            section.NewDecimal(d.TaxRub),
		Reserved:          reserved,
	}, nil
}

// Append builds the entry and adds it to the document's DeclForeign section.
func (b *Builder) Append(doc *dlsg.Document, d Dividend) (*section.CurrencyIncome, error) {
	if _, ok := doc.Foreign(); !ok {
		return nil, ErrMissingForeignSection
	}
	income, err := b.Build(d)
	if err != nil {
		return nil, err
	}
	if err := doc.AppendChild(section.TagDeclForeign, income); err != nil {
		return nil, err
	}
	log.Info().
		Int("id", income.ID).
		Str("description", d.Description).
		Str("currency", d.Currency).
		Str("amount", d.Amount.String()).
		Msg("dividend appended")
	return income, nil
}
