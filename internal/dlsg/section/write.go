package section

import (
	"strconv"

	"github.com/danmuck/dlsgctl/internal/dlsg/record"
)

// Write flattens sections back into records in the order Build reads them.
// Child markers and counts come from each child's position, never from stored
// ids.
func Write(sections []Section) []record.Record {
	w := &writer{}
	for _, s := range sections {
		s.encode(w)
	}
	return w.out
}

type writer struct {
	out []record.Record
}

func (w *writer) text(values ...string) {
	for _, v := range values {
		w.out = append(w.out, record.Record(v))
	}
}

func (w *writer) marker(tag string, ids ...int) {
	w.out = append(w.out, Marker(tag, ids...))
}

// count writes n, keeping the source text of stored while its value is
// still n.
func (w *writer) count(stored Integer, n int) {
	if stored.Value != n {
		w.text(strconv.Itoa(n))
		return
	}
	w.text(stored.String())
}

func (w *writer) records(recs []record.Record) {
	w.out = append(w.out, recs...)
}

// fixed writes a reserved block of exactly n records, padding with empty
// records or dropping extras so the layout stays readable.
func (w *writer) fixed(recs []record.Record, n int) {
	for i := 0; i < n; i++ {
		if i < len(recs) {
			w.out = append(w.out, recs[i])
			continue
		}
		w.out = append(w.out, "")
	}
}

func (s *DeclInfo) encode(w *writer) {
	w.marker(TagDeclInfo)
	w.text(s.Inspection)
	w.records(s.Reserved)
}

func (s *PersonName) encode(w *writer) {
	w.marker(TagPersonName)
	w.text(s.Surname, s.Name, s.MiddleName, s.INN, s.BirthPlace, s.BirthDate)
}

func (s *HomePhone) encode(w *writer) {
	w.marker(TagHomePhone)
	w.text(s.Code, s.Number)
}

func (s *WorkPhone) encode(w *writer) {
	w.marker(TagWorkPhone)
	w.text(s.Code, s.Number)
}

func (s *DeclInquiry) encode(w *writer) {
	w.marker(TagDeclInquiry)
	w.count(s.count, len(s.Sources))
	for i, child := range s.Sources {
		child.encodeAt(w, i)
	}
	w.records(s.Reserved)
}

func (s *ThirteenPercent) encode(w *writer) {
	s.encodeAt(w, s.ID)
}

func (s *ThirteenPercent) encodeAt(w *writer, id int) {
	w.marker(TagThirteenPercent, id)
	w.text(s.Standard, s.INN, s.KPP, s.OKTMO, s.Name)
	w.fixed(s.Reserved, thirteenPercentReserved)
	w.count(s.count, len(s.Incomes))
	for i, child := range s.Incomes {
		child.encodeAt(w, id, i)
	}
}

func (s *SourceIncome) encode(w *writer) {
	w.marker(TagSourceIncome, s.ID)
	s.encodeFields(w)
}

func (s *SourceIncome) encodeAt(w *writer, parent, id int) {
	w.marker(TagSourceIncome, parent, id)
	s.encodeFields(w)
}

func (s *SourceIncome) encodeFields(w *writer) {
	w.text(
		s.IncomeCode,
		s.IncomeDescription,
		s.Amount,
		s.DeductionCode,
		s.DeductionAmount,
		s.Unknown,
		s.Month,
	)
	w.fixed(s.Reserved, sourceIncomeReserved)
}

func (s *DeclForeign) encode(w *writer) {
	w.marker(TagDeclForeign)
	w.count(s.count, len(s.Incomes))
	for i, child := range s.Incomes {
		child.encodeAt(w, i)
	}
}

func (s *CurrencyIncome) encode(w *writer) {
	s.encodeAt(w, s.ID)
}

func (s *CurrencyIncome) encodeAt(w *writer, id int) {
	w.marker(TagCurrencyIncome, id)
	w.text(
		s.Type,
		s.IncomeCode,
		s.IncomeDescription,
		s.Description,
		s.CountryCode,
		s.IncomeDate.String(),
		s.TaxPaymentDate.String(),
		s.AutoCurrencyRate,
		s.CurrencyCode,
		s.IncomeRate.String(),
		s.IncomeUnits.String(),
		s.TaxRate.String(),
		s.TaxUnits.String(),
		s.CurrencyName,
		s.IncomeCurrency.String(),
		s.IncomeRub.String(),
		s.TaxCurrency.String(),
		s.TaxRub.String(),
	)
	w.fixed(s.Reserved, currencyIncomeReserved)
}

func (s *DeclWhereReturn) encode(w *writer) {
	w.marker(TagDeclWhereReturn)
	w.count(s.count, len(s.Returns))
	for i, child := range s.Returns {
		child.encodeAt(w, i)
	}
}

func (s *Return) encode(w *writer) {
	s.encodeAt(w, s.ID)
}

func (s *Return) encodeAt(w *writer, id int) {
	w.marker(TagReturn, id)
	w.records(s.Reserved)
}

func (s *Unknown) encode(w *writer) {
	w.marker(s.Name)
	w.records(s.Reserved)
}
