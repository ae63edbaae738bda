package pom

import (
	"fmt"
	"strings"

	"github.com/tebeka/selenium"
)

// SelectBox wraps a <select> element located on the current page. The element
// is re-found on every operation so a stale reference after a page reload
// only requires the locator to still match.
type SelectBox struct {
	base    *Base
	loc     Locator
	isMulti bool
}

// Select binds a SelectBox to the element matched by l. It is an error if
// the element is not a <select>.
func (b *Base) Select(l Locator) (*SelectBox, error) {
	el, err := b.Element(l)
	if err != nil {
		return nil, err
	}
	tag, err := el.TagName()
	if err != nil {
		return nil, fmt.Errorf("tag name of %v: %v", l, err)
	}
	if strings.ToLower(tag) != "select" {
		return nil, fmt.Errorf("%v: expected a select element, got %q", l, tag)
	}
	mult, err := el.GetAttribute("multiple")
	isMulti := err == nil && mult != "" && strings.ToLower(mult) != "false"
	return &SelectBox{base: b, loc: l, isMulti: isMulti}, nil
}

// IsMultiple reports whether the select supports multiple selections.
func (s *SelectBox) IsMultiple() bool {
	return s.isMulti
}

// Options returns all options of the select.
func (s *SelectBox) Options() ([]selenium.WebElement, error) {
	el, err := s.base.Element(s.loc)
	if err != nil {
		return nil, err
	}
	opts, err := el.FindElements(selenium.ByTagName, "option")
	if err != nil {
		return nil, fmt.Errorf("options of %v: %v", s.loc, err)
	}
	return opts, nil
}

// SelectedOptions returns the options that are currently selected.
func (s *SelectBox) SelectedOptions() ([]selenium.WebElement, error) {
	opts, err := s.Options()
	if err != nil {
		return nil, err
	}
	var selected []selenium.WebElement
	for _, o := range opts {
		sel, err := o.IsSelected()
		if err != nil {
			return nil, fmt.Errorf("selected state of option in %v: %v", s.loc, err)
		}
		if sel {
			selected = append(selected, o)
		}
	}
	return selected, nil
}

// FirstSelectedOption returns the first selected option.
func (s *SelectBox) FirstSelectedOption() (selenium.WebElement, error) {
	selected, err := s.SelectedOptions()
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("%v: no option is selected", s.loc)
	}
	return selected[0], nil
}

// SelectByText selects every option whose visible text matches text exactly.
// In a single select, the first match ends the operation.
func (s *SelectBox) SelectByText(text string) error {
	return s.setByText(text, true)
}

// SelectByValue selects every option whose value attribute matches value.
func (s *SelectBox) SelectByValue(value string) error {
	return s.setByValue(value, true)
}

// SelectByIndex selects the option at the given position in document order.
func (s *SelectBox) SelectByIndex(idx int) error {
	return s.setByIndex(idx, true)
}

// DeselectAll clears every selection. Only valid on a multi-select.
func (s *SelectBox) DeselectAll() error {
	if !s.isMulti {
		return fmt.Errorf("%v: only a multi-select can be deselected", s.loc)
	}
	opts, err := s.Options()
	if err != nil {
		return err
	}
	for _, o := range opts {
		if err := setSelected(o, false); err != nil {
			return fmt.Errorf("deselect option in %v: %v", s.loc, err)
		}
	}
	return nil
}

// DeselectByText deselects every option whose visible text matches text.
// Only valid on a multi-select.
func (s *SelectBox) DeselectByText(text string) error {
	if !s.isMulti {
		return fmt.Errorf("%v: only a multi-select can be deselected", s.loc)
	}
	return s.setByText(text, false)
}

// DeselectByValue deselects every option whose value attribute matches value.
// Only valid on a multi-select.
func (s *SelectBox) DeselectByValue(value string) error {
	if !s.isMulti {
		return fmt.Errorf("%v: only a multi-select can be deselected", s.loc)
	}
	return s.setByValue(value, false)
}

// DeselectByIndex deselects the option at the given position. Only valid on
// a multi-select.
func (s *SelectBox) DeselectByIndex(idx int) error {
	if !s.isMulti {
		return fmt.Errorf("%v: only a multi-select can be deselected", s.loc)
	}
	return s.setByIndex(idx, false)
}

func (s *SelectBox) setByText(text string, selected bool) error {
	el, err := s.base.Element(s.loc)
	if err != nil {
		return err
	}
	opts, err := el.FindElements(selenium.ByXPATH,
		`.//option[normalize-space(.) = "`+escapeQuotes(text)+`"]`)
	if err != nil {
		return fmt.Errorf("options of %v: %v", s.loc, err)
	}
	if len(opts) == 0 {
		return fmt.Errorf("%v: no option with text %q", s.loc, text)
	}
	for _, o := range opts {
		if err := setSelected(o, selected); err != nil {
			return fmt.Errorf("option %q in %v: %v", text, s.loc, err)
		}
		if !s.isMulti {
			return nil
		}
	}
	return nil
}

func (s *SelectBox) setByValue(value string, selected bool) error {
	el, err := s.base.Element(s.loc)
	if err != nil {
		return err
	}
	opts, err := el.FindElements(selenium.ByXPATH,
		`.//option[@value = "`+escapeQuotes(value)+`"]`)
	if err != nil {
		return fmt.Errorf("options of %v: %v", s.loc, err)
	}
	if len(opts) == 0 {
		return fmt.Errorf("%v: no option with value %q", s.loc, value)
	}
	for _, o := range opts {
		if err := setSelected(o, selected); err != nil {
			return fmt.Errorf("option value %q in %v: %v", value, s.loc, err)
		}
		if !s.isMulti {
			return nil
		}
	}
	return nil
}

func (s *SelectBox) setByIndex(idx int, selected bool) error {
	opts, err := s.Options()
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(opts) {
		return fmt.Errorf("%v: option index %d out of range [0, %d)", s.loc, idx, len(opts))
	}
	if err := setSelected(opts[idx], selected); err != nil {
		return fmt.Errorf("option %d in %v: %v", idx, s.loc, err)
	}
	return nil
}

// setSelected toggles an option by clicking it, but only when its state
// differs from the desired one.
func setSelected(option selenium.WebElement, selected bool) error {
	sel, err := option.IsSelected()
	if err != nil {
		return err
	}
	if sel != selected {
		return option.Click()
	}
	return nil
}

func escapeQuotes(s string) string {
	return strings.Replace(s, `"`, `\"`, -1)
}
