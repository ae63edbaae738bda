package pom

import (
	"fmt"

	"github.com/tebeka/selenium"
)

// Locator pairs a WebDriver location strategy with the value to match. It is
// the only piece of state a page object needs to describe an element; the
// lookup itself is always delegated to the underlying driver.
type Locator struct {
	By    string
	Value string
}

func (l Locator) String() string {
	return fmt.Sprintf("%s=%q", l.By, l.Value)
}

// ID locates an element by its id attribute.
func ID(value string) Locator { return Locator{selenium.ByID, value} }

// XPath locates an element by an XPath expression.
func XPath(value string) Locator { return Locator{selenium.ByXPATH, value} }

// CSS locates an element by a CSS selector.
func CSS(value string) Locator { return Locator{selenium.ByCSSSelector, value} }

// Name locates an element by its name attribute.
func Name(value string) Locator { return Locator{selenium.ByName, value} }

// LinkText locates an anchor element by its exact visible text.
func LinkText(value string) Locator { return Locator{selenium.ByLinkText, value} }

// PartialLinkText locates an anchor element by a substring of its visible
// text.
func PartialLinkText(value string) Locator { return Locator{selenium.ByPartialLinkText, value} }

// TagName locates an element by its tag name.
func TagName(value string) Locator { return Locator{selenium.ByTagName, value} }

// ClassName locates an element by a single class name.
func ClassName(value string) Locator { return Locator{selenium.ByClassName, value} }
