package section

import (
	"fmt"

	"github.com/danmuck/dlsgctl/internal/dlsg/record"
)

// Known section tags.
const (
	TagDeclInfo        = "DeclInfo"
	TagPersonName      = "PersonName"
	TagHomePhone       = "HomePhone"
	TagWorkPhone       = "WorkPhone"
	TagDeclInquiry     = "DeclInquiry"
	TagThirteenPercent = "ThirteenPercent"
	// TagSourceIncome is spelt the way the declaration program writes it.
	TagSourceIncome    = "SourseIncome"
	TagDeclForeign     = "DeclForeign"
	TagCurrencyIncome  = "CurrencyIncome"
	TagDeclWhereReturn = "DeclWhereReturn"
	TagReturn          = "Return"
)

// Fixed reserved block sizes.
const (
	thirteenPercentReserved = 17
	sourceIncomeReserved    = 4
	currencyIncomeReserved  = 6
)

// Section is one node of the declaration tree.
type Section interface {
	Tag() string
	encode(w *writer)
}

// Parent is a section holding indexed children.
type Parent interface {
	Section
	Count() int
	AppendChild(child Section) error
}

// Marker renders a section marker record for tag and its index suffixes.
func Marker(tag string, ids ...int) record.Record {
	s := record.SectionPrefix + tag
	for _, id := range ids {
		s += fmt.Sprintf("%03d", id)
	}
	return record.Record(s)
}

// DeclInfo holds the declaration's inspection code followed by records this
// package does not interpret.
type DeclInfo struct {
	Inspection string
	Reserved   []record.Record
}

func (*DeclInfo) Tag() string { return TagDeclInfo }

// PersonName is the declarant's identity block.
type PersonName struct {
	Surname    string
	Name       string
	MiddleName string
	INN        string
	BirthPlace string
	BirthDate  string
}

func (*PersonName) Tag() string { return TagPersonName }

// Phone is the shared layout of HomePhone and WorkPhone.
type Phone struct {
	Code   string
	Number string
}

type HomePhone struct{ Phone }

func (*HomePhone) Tag() string { return TagHomePhone }

type WorkPhone struct{ Phone }

func (*WorkPhone) Tag() string { return TagWorkPhone }

// DeclInquiry groups income taxed at the domestic rate, one ThirteenPercent
// child per tax agent.
type DeclInquiry struct {
	Sources  []*ThirteenPercent
	Reserved []record.Record

	// count is the child count as read. Its text is written back while it
	// still matches len(Sources).
	count Integer
}

func (*DeclInquiry) Tag() string { return TagDeclInquiry }

func (s *DeclInquiry) Count() int { return len(s.Sources) }

// ThirteenPercent describes one tax agent and the incomes it paid.
type ThirteenPercent struct {
	ID       int
	Standard string
	INN      string
	KPP      string
	OKTMO    string
	Name     string
	Reserved []record.Record
	Incomes  []*SourceIncome

	count Integer
}

func (*ThirteenPercent) Tag() string { return TagThirteenPercent }

func (s *ThirteenPercent) Count() int { return len(s.Incomes) }

// SourceIncome is one monthly income line of a ThirteenPercent agent.
type SourceIncome struct {
	ID                int
	IncomeCode        string
	IncomeDescription string
	Amount            string
	DeductionCode     string
	DeductionAmount   string
	Unknown           string
	Month             string
	Reserved          []record.Record
}

func (*SourceIncome) Tag() string { return TagSourceIncome }

// DeclForeign groups income received abroad.
type DeclForeign struct {
	Incomes []*CurrencyIncome

	count Integer
}

func (*DeclForeign) Tag() string { return TagDeclForeign }

func (s *DeclForeign) Count() int { return len(s.Incomes) }

// CurrencyIncome is one foreign income entry. Dates are days since
// 1899-12-30; rates are quoted per Units of currency.
type CurrencyIncome struct {
	ID                int
	Type              string
	IncomeCode        string
	IncomeDescription string
	Description       string
	CountryCode       string
	IncomeDate        Integer
	TaxPaymentDate    Integer
	AutoCurrencyRate  string
	CurrencyCode      string
	IncomeRate        Decimal
	IncomeUnits       Integer
	TaxRate           Decimal
	TaxUnits          Integer
	CurrencyName      string
	IncomeCurrency    Decimal
	IncomeRub         Decimal
	TaxCurrency       Decimal
	TaxRub            Decimal
	Reserved          []record.Record
}

func (*CurrencyIncome) Tag() string { return TagCurrencyIncome }

// DeclWhereReturn lists refund destinations.
type DeclWhereReturn struct {
	Returns []*Return

	count Integer
}

func (*DeclWhereReturn) Tag() string { return TagDeclWhereReturn }

func (s *DeclWhereReturn) Count() int { return len(s.Returns) }

// Return is one refund destination, kept as raw records.
type Return struct {
	ID       int
	Reserved []record.Record
}

func (*Return) Tag() string { return TagReturn }

// Unknown preserves a section whose tag is not in the catalog.
type Unknown struct {
	Name     string
	Reserved []record.Record
}

func (s *Unknown) Tag() string { return s.Name }
