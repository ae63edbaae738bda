// Package pomtest provides an in-memory WebDriver fake for exercising page
// objects without a live browser. Elements are registered under the exact
// strategy/value pair a test expects to be used for lookup; interactions are
// recorded on the element so tests can assert on them.
package pomtest

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/log"
)

// ErrNotImplemented is returned by fake methods that no test exercises.
var ErrNotImplemented = errors.New("pomtest: not implemented")

// Key builds the lookup key elements are registered under.
func Key(by, value string) string {
	return by + "=" + value
}

// Element is a fake WebElement. Interactions are recorded in the exported
// counters.
type Element struct {
	Tag        string
	TextValue  string
	Attributes map[string]string
	Displayed  bool
	Enabled    bool
	Selected   bool

	// Children holds nested elements, keyed with Key. FindElements on the
	// element returns the slice registered under the exact key used.
	Children map[string][]*Element

	mu        sync.Mutex
	Clicks    int
	Keys      []string
	Clears    int
	Submits   int
	FailClick error // if set, Click returns this error.
}

// NewElement returns a displayed, enabled element with the given tag.
func NewElement(tag string) *Element {
	return &Element{
		Tag:        tag,
		Attributes: make(map[string]string),
		Displayed:  true,
		Enabled:    true,
		Children:   make(map[string][]*Element),
	}
}

// Click records a click. On an option element it also toggles the selected
// state, mirroring how a real select behaves.
func (e *Element) Click() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.FailClick != nil {
		return e.FailClick
	}
	e.Clicks++
	if e.Tag == "option" {
		e.Selected = !e.Selected
	}
	return nil
}

// SendKeys records the typed text.
func (e *Element) SendKeys(keys string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Keys = append(e.Keys, keys)
	return nil
}

func (e *Element) Submit() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Submits++
	return nil
}

// Clear records the clear and drops previously typed text.
func (e *Element) Clear() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Clears++
	e.Keys = nil
	return nil
}

// Typed returns everything typed into the element since the last Clear.
func (e *Element) Typed() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.Keys...)
}

func (e *Element) MoveTo(xOffset, yOffset int) error { return nil }

func (e *Element) FindElement(by, value string) (selenium.WebElement, error) {
	els, ok := e.Children[Key(by, value)]
	if !ok || len(els) == 0 {
		return nil, fmt.Errorf("no such element: %s=%q", by, value)
	}
	return els[0], nil
}

func (e *Element) FindElements(by, value string) ([]selenium.WebElement, error) {
	els := e.Children[Key(by, value)]
	out := make([]selenium.WebElement, 0, len(els))
	for _, el := range els {
		out = append(out, el)
	}
	return out, nil
}

func (e *Element) TagName() (string, error) { return e.Tag, nil }
func (e *Element) Text() (string, error) { return e.TextValue, nil }

func (e *Element) IsSelected() (bool, error) { return e.Selected, nil }
func (e *Element) IsEnabled() (bool, error) { return e.Enabled, nil }
func (e *Element) IsDisplayed() (bool, error) { return e.Displayed, nil }

func (e *Element) GetAttribute(name string) (string, error) {
	v, ok := e.Attributes[name]
	if !ok {
		return "", fmt.Errorf("attribute %q not set", name)
	}
	return v, nil
}

func (e *Element) Location() (*selenium.Point, error) { return &selenium.Point{}, nil }
func (e *Element) LocationInView() (*selenium.Point, error) { return &selenium.Point{}, nil }
func (e *Element) Size() (*selenium.Size, error) { return &selenium.Size{}, nil }

func (e *Element) CSSProperty(name string) (string, error) {
	return "", ErrNotImplemented
}

func (e *Element) Screenshot(scroll bool) ([]byte, error) {
	return []byte{}, nil
}

// Driver is a fake selenium.WebDriver backed by a locator-keyed element
// table.
type Driver struct {
	mu sync.Mutex

	// Elements holds page elements, keyed with Key.
	Elements map[string][]*Element

	URL        string
	Visits     []string
	PageTitle  string
	Source     string
	QuitCalled bool
	Cookies    []selenium.Cookie

	asyncScriptTimeout  time.Duration
	implicitWaitTimeout time.Duration
	pageLoadTimeout     time.Duration
}

// New returns an empty fake driver.
func New() *Driver {
	return &Driver{Elements: make(map[string][]*Element)}
}

// Add registers el for lookup under the given strategy and value.
func (d *Driver) Add(by, value string, el *Element) {
	d.mu.Lock()
	defer d.mu.Unlock()
	k := Key(by, value)
	d.Elements[k] = append(d.Elements[k], el)
}

func (d *Driver) Status() (*selenium.Status, error) {
	return &selenium.Status{Ready: true}, nil
}

func (d *Driver) NewSession() (string, error) { return "pomtest-session", nil }
func (d *Driver) SessionId() string { return "pomtest-session" }
func (d *Driver) SessionID() string { return "pomtest-session" }

func (d *Driver) SwitchSession(sessionID string) error { return nil }

func (d *Driver) Capabilities() (selenium.Capabilities, error) {
	return selenium.Capabilities{"browserName": "pomtest"}, nil
}

func (d *Driver) SetAsyncScriptTimeout(timeout time.Duration) error {
	d.asyncScriptTimeout = timeout
	return nil
}

func (d *Driver) SetImplicitWaitTimeout(timeout time.Duration) error {
	d.implicitWaitTimeout = timeout
	return nil
}

func (d *Driver) SetPageLoadTimeout(timeout time.Duration) error {
	d.pageLoadTimeout = timeout
	return nil
}

func (d *Driver) Quit() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.QuitCalled {
		return errors.New("invalid session id")
	}
	d.QuitCalled = true
	return nil
}

func (d *Driver) CurrentWindowHandle() (string, error) { return "window-0", nil }
func (d *Driver) WindowHandles() ([]string, error) { return []string{"window-0"}, nil }

func (d *Driver) CurrentURL() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.URL, nil
}

func (d *Driver) Title() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.PageTitle, nil
}

func (d *Driver) PageSource() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.Source, nil
}

func (d *Driver) Close() error { return nil }

func (d *Driver) SwitchFrame(frame interface{}) error { return ErrNotImplemented }
func (d *Driver) SwitchWindow(name string) error { return ErrNotImplemented }
func (d *Driver) CloseWindow(name string) error { return ErrNotImplemented }
func (d *Driver) MaximizeWindow(name string) error { return nil }
func (d *Driver) ResizeWindow(name string, w, h int) error { return nil }

// Get records the navigation. It fails after Quit, as a real session would.
func (d *Driver) Get(url string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.QuitCalled {
		return errors.New("invalid session id")
	}
	d.URL = url
	d.Visits = append(d.Visits, url)
	return nil
}

func (d *Driver) Forward() error { return nil }
func (d *Driver) Back() error { return nil }
func (d *Driver) Refresh() error { return nil }

func (d *Driver) FindElement(by, value string) (selenium.WebElement, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.QuitCalled {
		return nil, errors.New("invalid session id")
	}
	els, ok := d.Elements[Key(by, value)]
	if !ok || len(els) == 0 {
		return nil, fmt.Errorf("no such element: %s=%q", by, value)
	}
	return els[0], nil
}

func (d *Driver) FindElements(by, value string) ([]selenium.WebElement, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.QuitCalled {
		return nil, errors.New("invalid session id")
	}
	els := d.Elements[Key(by, value)]
	out := make([]selenium.WebElement, 0, len(els))
	for _, el := range els {
		out = append(out, el)
	}
	return out, nil
}

func (d *Driver) ActiveElement() (selenium.WebElement, error) {
	return nil, ErrNotImplemented
}

func (d *Driver) DecodeElement([]byte) (selenium.WebElement, error) {
	return nil, ErrNotImplemented
}

func (d *Driver) DecodeElements([]byte) ([]selenium.WebElement, error) {
	return nil, ErrNotImplemented
}

func (d *Driver) GetCookies() ([]selenium.Cookie, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]selenium.Cookie(nil), d.Cookies...), nil
}

func (d *Driver) GetCookie(name string) (selenium.Cookie, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, c := range d.Cookies {
		if c.Name == name {
			return c, nil
		}
	}
	return selenium.Cookie{}, fmt.Errorf("no cookie named %q", name)
}

func (d *Driver) AddCookie(cookie *selenium.Cookie) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Cookies = append(d.Cookies, *cookie)
	return nil
}

func (d *Driver) DeleteAllCookies() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Cookies = nil
	return nil
}

func (d *Driver) DeleteCookie(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	cookies := d.Cookies[:0]
	for _, c := range d.Cookies {
		if c.Name != name {
			cookies = append(cookies, c)
		}
	}
	d.Cookies = cookies
	return nil
}

func (d *Driver) Click(button int) error { return nil }
func (d *Driver) DoubleClick() error { return nil }
func (d *Driver) ButtonDown() error { return nil }
func (d *Driver) ButtonUp() error { return nil }
func (d *Driver) SendModifier(modifier string, isDown bool) error { return ErrNotImplemented }
func (d *Driver) KeyDown(keys string) error { return nil }
func (d *Driver) KeyUp(keys string) error { return nil }

func (d *Driver) Screenshot() ([]byte, error) { return []byte{}, nil }

func (d *Driver) Log(typ log.Type) ([]log.Message, error) {
	return nil, ErrNotImplemented
}

func (d *Driver) DismissAlert() error { return ErrNotImplemented }
func (d *Driver) AcceptAlert() error { return ErrNotImplemented }
func (d *Driver) AlertText() (string, error) { return "", ErrNotImplemented }
func (d *Driver) SetAlertText(text string) error { return ErrNotImplemented }

func (d *Driver) ExecuteScript(script string, args []interface{}) (interface{}, error) {
	return nil, ErrNotImplemented
}

func (d *Driver) ExecuteScriptAsync(script string, args []interface{}) (interface{}, error) {
	return nil, ErrNotImplemented
}

func (d *Driver) ExecuteScriptRaw(script string, args []interface{}) ([]byte, error) {
	return nil, ErrNotImplemented
}

func (d *Driver) ExecuteScriptAsyncRaw(script string, args []interface{}) ([]byte, error) {
	return nil, ErrNotImplemented
}

// WaitWithTimeoutAndInterval polls the condition, matching the semantics of
// the real driver's wait.
func (d *Driver) WaitWithTimeoutAndInterval(condition selenium.Condition, timeout, interval time.Duration) error {
	start := time.Now()
	for {
		ok, err := condition(d)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		if time.Since(start) >= timeout {
			return fmt.Errorf("timeout after %v", timeout)
		}
		time.Sleep(interval)
	}
}

func (d *Driver) WaitWithTimeout(condition selenium.Condition, timeout time.Duration) error {
	return d.WaitWithTimeoutAndInterval(condition, timeout, 10*time.Millisecond)
}

func (d *Driver) Wait(condition selenium.Condition) error {
	return d.WaitWithTimeout(condition, time.Second)
}
