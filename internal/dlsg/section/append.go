package section

import "fmt"

// AppendChild adds a ThirteenPercent agent and assigns its id.
func (s *DeclInquiry) AppendChild(child Section) error {
	c, ok := child.(*ThirteenPercent)
	if !ok || c == nil {
		return childError(s, child)
	}
	c.ID = len(s.Sources)
	s.Sources = append(s.Sources, c)
	return nil
}

// AppendChild adds a SourceIncome line and assigns its id.
func (s *ThirteenPercent) AppendChild(child Section) error {
	c, ok := child.(*SourceIncome)
	if !ok || c == nil {
		return childError(s, child)
	}
	c.ID = len(s.Incomes)
	s.Incomes = append(s.Incomes, c)
	return nil
}

// AppendChild adds a CurrencyIncome entry and assigns its id.
func (s *DeclForeign) AppendChild(child Section) error {
	c, ok := child.(*CurrencyIncome)
	if !ok || c == nil {
		return childError(s, child)
	}
	c.ID = len(s.Incomes)
	s.Incomes = append(s.Incomes, c)
	return nil
}

// AppendChild adds a Return entry and assigns its id.
func (s *DeclWhereReturn) AppendChild(child Section) error {
	c, ok := child.(*Return)
	if !ok || c == nil {
		return childError(s, child)
	}
	c.ID = len(s.Returns)
	s.Returns = append(s.Returns, c)
	return nil
}

func childError(parent, child Section) error {
	return fmt.Errorf("%w: %s cannot hold %T", ErrChildNotSupported, parent.Tag(), child)
}
