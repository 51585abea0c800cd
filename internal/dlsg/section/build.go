package section

import (
	"fmt"
	"strings"

	"github.com/danmuck/dlsgctl/internal/dlsg/record"
	"github.com/rs/zerolog/log"
)

// Build consumes every record from c and returns the top-level sections in
// file order. Each section reads exactly the records its layout declares, so
// a single malformed section fails the whole build.
func Build(c *record.Cursor) ([]Section, error) {
	var sections []Section
	for c.Len() > 0 {
		s, err := buildOne(c)
		if err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}
	log.Debug().Int("sections", len(sections)).Msg("sections loaded")
	for _, s := range sections {
		log.Debug().Str("tag", s.Tag()).Msg("section")
	}
	return sections, nil
}

func buildOne(c *record.Cursor) (Section, error) {
	index := c.Offset()
	marker, err := c.Next()
	if err != nil {
		return nil, err
	}
	if !marker.IsMarker() {
		log.Error().Int("record", index).Str("value", string(marker)).Msg("invalid section prefix")
		return nil, &PrefixError{Record: string(marker), Index: index}
	}
	name := strings.TrimPrefix(string(marker), record.SectionPrefix)
	p := &parser{c: c, tag: name}

	var s Section
	switch name {
	case TagDeclInfo:
		s = p.declInfo()
	case TagPersonName:
		s = p.personName()
	case TagHomePhone:
		s = &HomePhone{Phone: p.phone()}
	case TagWorkPhone:
		s = &WorkPhone{Phone: p.phone()}
	case TagDeclInquiry:
		s = p.declInquiry()
	case TagDeclForeign:
		s = p.declForeign()
	case TagDeclWhereReturn:
		s = p.declWhereReturn()
	default:
		log.Debug().Str("tag", name).Msg("unknown section kept opaque")
		s = &Unknown{Name: name, Reserved: c.TakeUntilMarker()}
	}
	if p.err != nil {
		return nil, p.err
	}
	return s, nil
}

// parser reads the fields of one section. The first failure sticks and turns
// every later read into a no-op.
type parser struct {
	c   *record.Cursor
	tag string
	err error
}

func (p *parser) fail(field, value string, err error) {
	if p.err == nil {
		p.err = &FieldError{Section: p.tag, Field: field, Value: value, Err: err}
	}
}

func (p *parser) text(field string) string {
	if p.err != nil {
		return ""
	}
	rec, err := p.c.Next()
	if err != nil {
		p.fail(field, "", fmt.Errorf("%w: %w", ErrTruncatedSection, err))
		return ""
	}
	return string(rec)
}

func (p *parser) integer(field string) Integer {
	raw := p.text(field)
	if p.err != nil {
		return Integer{}
	}
	n, err := parseInteger(raw)
	if err != nil {
		p.fail(field, raw, ErrMalformedNumericField)
		return Integer{}
	}
	return n
}

func (p *parser) decimal(field string) Decimal {
	raw := p.text(field)
	if p.err != nil {
		return Decimal{}
	}
	d, err := parseDecimal(raw)
	if err != nil {
		p.fail(field, raw, ErrMalformedNumericField)
		return Decimal{}
	}
	return d
}

func (p *parser) count() Integer {
	n := p.integer("count")
	if p.err == nil && n.Value < 0 {
		p.fail("count", n.String(), ErrMalformedNumericField)
		return Integer{}
	}
	return n
}

func (p *parser) reserved(n int) []record.Record {
	if p.err != nil {
		return nil
	}
	recs, err := p.c.Take(n)
	if err != nil {
		p.fail("reserved", "", fmt.Errorf("%w: %w", ErrTruncatedSection, err))
		return nil
	}
	return recs
}

func (p *parser) tail() []record.Record {
	if p.err != nil {
		return nil
	}
	return p.c.TakeUntilMarker()
}

// child checks that the next record is the marker computed for a child and
// returns a parser for the child's fields.
func (p *parser) child(tag string, ids ...int) *parser {
	if p.err != nil {
		return nil
	}
	want := Marker(tag, ids...)
	got, err := p.c.Next()
	if err != nil {
		p.fail(tag, "", fmt.Errorf("%w: %w", ErrTruncatedSection, err))
		return nil
	}
	if got != want {
		log.Error().Str("parent", p.tag).Str("got", string(got)).Str("want", string(want)).Msg("invalid subsection")
		p.err = &ChildTagError{Parent: p.tag, Expected: string(want), Actual: string(got)}
		return nil
	}
	return &parser{c: p.c, tag: strings.TrimPrefix(string(want), record.SectionPrefix)}
}

// adopt copies a child parser's failure into p.
func (p *parser) adopt(child *parser) bool {
	if child == nil {
		return false
	}
	if child.err != nil {
		p.err = child.err
		return false
	}
	return true
}

func (p *parser) declInfo() *DeclInfo {
	s := &DeclInfo{Inspection: p.text("inspection")}
	s.Reserved = p.tail()
	return s
}

func (p *parser) personName() *PersonName {
	return &PersonName{
		Surname:    p.text("surname"),
		Name:       p.text("name"),
		MiddleName: p.text("middle_name"),
		INN:        p.text("inn"),
		BirthPlace: p.text("birth_place"),
		BirthDate:  p.text("birth_date"),
	}
}

func (p *parser) phone() Phone {
	return Phone{
		Code:   p.text("code"),
		Number: p.text("number"),
	}
}

func (p *parser) declInquiry() *DeclInquiry {
	s := &DeclInquiry{}
	s.count = p.count()
	for i := 0; i < s.count.Value && p.err == nil; i++ {
		cp := p.child(TagThirteenPercent, i)
		if cp == nil {
			break
		}
		child := cp.thirteenPercent(i)
		if !p.adopt(cp) {
			break
		}
		s.Sources = append(s.Sources, child)
	}
	s.Reserved = p.tail()
	return s
}

func (p *parser) thirteenPercent(id int) *ThirteenPercent {
	s := &ThirteenPercent{
		ID:       id,
		Standard: p.text("standard"),
		INN:      p.text("inn"),
		KPP:      p.text("kpp"),
		OKTMO:    p.text("oktmo"),
		Name:     p.text("name"),
	}
	s.Reserved = p.reserved(thirteenPercentReserved)
	s.count = p.count()
	for i := 0; i < s.count.Value && p.err == nil; i++ {
		cp := p.child(TagSourceIncome, id, i)
		if cp == nil {
			break
		}
		child := cp.sourceIncome(i)
		if !p.adopt(cp) {
			break
		}
		s.Incomes = append(s.Incomes, child)
	}
	return s
}

func (p *parser) sourceIncome(id int) *SourceIncome {
	s := &SourceIncome{
		ID:                id,
		IncomeCode:        p.text("income_code"),
		IncomeDescription: p.text("income_description"),
		Amount:            p.text("amount"),
		DeductionCode:     p.text("deduction_code"),
		DeductionAmount:   p.text("deduction_amount"),
		Unknown:           p.text("unknown"),
		Month:             p.text("month"),
	}
	s.Reserved = p.reserved(sourceIncomeReserved)
	return s
}

func (p *parser) declForeign() *DeclForeign {
	s := &DeclForeign{}
	s.count = p.count()
	for i := 0; i < s.count.Value && p.err == nil; i++ {
		cp := p.child(TagCurrencyIncome, i)
		if cp == nil {
			break
		}
		child := cp.currencyIncome(i)
		if !p.adopt(cp) {
			break
		}
		s.Incomes = append(s.Incomes, child)
	}
	return s
}

func (p *parser) currencyIncome(id int) *CurrencyIncome {
	s := &CurrencyIncome{
		ID:                id,
		Type:              p.text("type"),
		IncomeCode:        p.text("income_code"),
		IncomeDescription: p.text("income_description"),
		Description:       p.text("description"),
		CountryCode:       p.text("country_code"),
		IncomeDate:        p.integer("income_date"),
		TaxPaymentDate:    p.integer("tax_payment_date"),
		AutoCurrencyRate:  p.text("auto_currency_rate"),
		CurrencyCode:      p.text("currency_code"),
		IncomeRate:        p.decimal("income_rate"),
		IncomeUnits:       p.integer("income_units"),
		TaxRate:           p.decimal("tax_rate"),
		TaxUnits:          p.integer("tax_units"),
		CurrencyName:      p.text("currency_name"),
		IncomeCurrency:    p.decimal("income_currency"),
		IncomeRub:         p.decimal("income_rub"),
		TaxCurrency:       p.decimal("tax_currency"),
		TaxRub:            p.decimal("tax_rub"),
	}
	s.Reserved = p.reserved(currencyIncomeReserved)
	return s
}

func (p *parser) declWhereReturn() *DeclWhereReturn {
	s := &DeclWhereReturn{}
	s.count = p.count()
	for i := 0; i < s.count.Value && p.err == nil; i++ {
		cp := p.child(TagReturn, i)
		if cp == nil {
			break
		}
		child := &Return{ID: i, Reserved: cp.tail()}
		s.Returns = append(s.Returns, child)
	}
	return s
}
