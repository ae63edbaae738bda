package pom

import (
	"fmt"
	"time"

	"github.com/tebeka/selenium"
)

// Base provides the low-level element interaction helpers shared by all page
// objects. Every method is a direct delegation to the wrapped WebDriver; the
// only behavior added here is optional polling for an element to appear and
// the inclusion of the locator in returned errors.
type Base struct {
	wd   selenium.WebDriver
	wait time.Duration
}

// NewBase wraps wd. If wait is non-zero, element lookups poll until the
// element is present or the wait elapses.
func NewBase(wd selenium.WebDriver, wait time.Duration) *Base {
	return &Base{wd: wd, wait: wait}
}

// Driver returns the wrapped WebDriver for operations not covered by the
// helpers.
func (b *Base) Driver() selenium.WebDriver {
	return b.wd
}

// Element finds the element matched by l, polling for its presence if a wait
// is configured.
func (b *Base) Element(l Locator) (selenium.WebElement, error) {
	if b.wait > 0 {
		err := b.wd.WaitWithTimeout(func(wd selenium.WebDriver) (bool, error) {
			_, err := wd.FindElement(l.By, l.Value)
			return err == nil, nil
		}, b.wait)
		if err != nil {
			return nil, fmt.Errorf("wait for %v: %v", l, err)
		}
	}
	el, err := b.wd.FindElement(l.By, l.Value)
	if err != nil {
		return nil, fmt.Errorf("find %v: %v", l, err)
	}
	return el, nil
}

// Elements finds all elements matched by l. No polling is performed; an
// empty result is not an error.
func (b *Base) Elements(l Locator) ([]selenium.WebElement, error) {
	els, err := b.wd.FindElements(l.By, l.Value)
	if err != nil {
		return nil, fmt.Errorf("find all %v: %v", l, err)
	}
	return els, nil
}

// Click clicks the element matched by l.
func (b *Base) Click(l Locator) error {
	el, err := b.Element(l)
	if err != nil {
		return err
	}
	if err := el.Click(); err != nil {
		return fmt.Errorf("click %v: %v", l, err)
	}
	return nil
}

// SendKeys types text into the element matched by l without clearing it
// first. Use Fill to replace existing content.
func (b *Base) SendKeys(l Locator, text string) error {
	el, err := b.Element(l)
	if err != nil {
		return err
	}
	if err := el.SendKeys(text); err != nil {
		return fmt.Errorf("send keys to %v: %v", l, err)
	}
	return nil
}

// Clear clears the element matched by l.
func (b *Base) Clear(l Locator) error {
	el, err := b.Element(l)
	if err != nil {
		return err
	}
	if err := el.Clear(); err != nil {
		return fmt.Errorf("clear %v: %v", l, err)
	}
	return nil
}

// Fill clears the element matched by l and types text into it.
func (b *Base) Fill(l Locator, text string) error {
	el, err := b.Element(l)
	if err != nil {
		return err
	}
	if err := el.Clear(); err != nil {
		return fmt.Errorf("clear %v: %v", l, err)
	}
	if err := el.SendKeys(text); err != nil {
		return fmt.Errorf("send keys to %v: %v", l, err)
	}
	return nil
}

// Submit submits the form containing the element matched by l.
func (b *Base) Submit(l Locator) error {
	el, err := b.Element(l)
	if err != nil {
		return err
	}
	if err := el.Submit(); err != nil {
		return fmt.Errorf("submit %v: %v", l, err)
	}
	return nil
}

// Text returns the visible text of the element matched by l.
func (b *Base) Text(l Locator) (string, error) {
	el, err := b.Element(l)
	if err != nil {
		return "", err
	}
	text, err := el.Text()
	if err != nil {
		return "", fmt.Errorf("text of %v: %v", l, err)
	}
	return text, nil
}

// Attribute returns the named attribute of the element matched by l.
func (b *Base) Attribute(l Locator, name string) (string, error) {
	el, err := b.Element(l)
	if err != nil {
		return "", err
	}
	value, err := el.GetAttribute(name)
	if err != nil {
		return "", fmt.Errorf("attribute %q of %v: %v", name, l, err)
	}
	return value, nil
}

// IsDisplayed reports whether the element matched by l is displayed.
func (b *Base) IsDisplayed(l Locator) (bool, error) {
	el, err := b.Element(l)
	if err != nil {
		return false, err
	}
	shown, err := el.IsDisplayed()
	if err != nil {
		return false, fmt.Errorf("displayed state of %v: %v", l, err)
	}
	return shown, nil
}

// WaitVisible polls until the element matched by l is present and displayed,
// or timeout elapses.
func (b *Base) WaitVisible(l Locator, timeout time.Duration) error {
	err := b.wd.WaitWithTimeout(func(wd selenium.WebDriver) (bool, error) {
		el, err := wd.FindElement(l.By, l.Value)
		if err != nil {
			return false, nil
		}
		shown, err := el.IsDisplayed()
		if err != nil {
			return false, nil
		}
		return shown, nil
	}, timeout)
	if err != nil {
		return fmt.Errorf("wait for %v to be visible: %v", l, err)
	}
	return nil
}

// Title returns the current page title.
func (b *Base) Title() (string, error) {
	return b.wd.Title()
}

// CurrentURL returns the browser's current URL.
func (b *Base) CurrentURL() (string, error) {
	return b.wd.CurrentURL()
}

// Screenshot takes a screenshot of the browser window.
func (b *Base) Screenshot() ([]byte, error) {
	return b.wd.Screenshot()
}
