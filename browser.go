package pom

import (
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
	"github.com/tebeka/selenium/firefox"
)

// Browser names accepted in Config.Browser. These are the values the
// WebDriver protocol expects in the browserName capability.
const (
	Chrome  = "chrome"
	Firefox = "firefox"
	Edge    = "MicrosoftEdge"
	Safari  = "safari"
)

// ErrClosed is returned by Browser operations after Quit has been called.
// A quit session must never be reused.
var ErrClosed = errors.New("pom: browser session has been quit")

// PageFunc constructs a page object over the shared base page. It is invoked
// at most once per Browser for a given page name; the result is memoized.
type PageFunc func(*Base) interface{}

// Browser owns a single WebDriver session and the page objects built on top
// of it. Page objects are created lazily and cached by name for the lifetime
// of the session.
type Browser struct {
	cfg  Config
	wd   selenium.WebDriver
	base *Base

	mu     sync.Mutex
	pages  map[string]interface{}
	closed bool
}

// New builds capabilities for the configured browser and opens a session
// against the configured WebDriver server.
func New(cfg Config) (*Browser, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	caps, err := capabilitiesFor(cfg)
	if err != nil {
		return nil, err
	}
	wd, err := selenium.NewRemote(caps, cfg.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("new %s session on %s: %v", cfg.Browser, cfg.ServerURL, err)
	}
	return NewWithDriver(wd, cfg), nil
}

// NewWithDriver wraps an already-created session. The Browser takes ownership
// of the session; calling Quit on the Browser quits the driver.
func NewWithDriver(wd selenium.WebDriver, cfg Config) *Browser {
	return &Browser{
		cfg:   cfg,
		wd:    wd,
		base:  NewBase(wd, cfg.Wait),
		pages: make(map[string]interface{}),
	}
}

// capabilitiesFor translates the configuration into session capabilities.
// Chrome and Firefox get their browser-specific option structs; Edge and
// Safari are requested by name only. An unrecognized browser name is an
// error rather than a session with undefined capabilities.
func capabilitiesFor(cfg Config) (selenium.Capabilities, error) {
	caps := selenium.Capabilities{"browserName": cfg.Browser}
	switch cfg.Browser {
	case Chrome:
		c := chrome.Capabilities{
			Args: append([]string{}, cfg.ChromeArgs...),
			W3C:  true,
		}
		if cfg.Headless {
			c.Args = append(c.Args, "--headless")
		}
		caps.AddChrome(c)
	case Firefox:
		f := firefox.Capabilities{
			Args: append([]string{}, cfg.FirefoxArgs...),
		}
		if cfg.Headless {
			f.Args = append(f.Args, "-headless")
		}
		caps.AddFirefox(f)
	case Edge, Safari:
		// No browser-specific options; the name alone selects the browser.
	default:
		return nil, fmt.Errorf("unsupported browser %q", cfg.Browser)
	}
	if cfg.Proxy != nil {
		caps.AddProxy(*cfg.Proxy)
	}
	for k, v := range cfg.Extra {
		caps[k] = v
	}
	return caps, nil
}

// Base returns the shared base page for this session.
func (b *Browser) Base() *Base {
	return b.base
}

// Driver returns the underlying WebDriver session.
func (b *Browser) Driver() selenium.WebDriver {
	return b.wd
}

// Page returns the page object registered under name, invoking build on
// first use and returning the cached instance thereafter.
func (b *Browser) Page(name string, build PageFunc) (interface{}, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrClosed
	}
	if p, ok := b.pages[name]; ok {
		return p, nil
	}
	p := build(b.base)
	b.pages[name] = p
	return p, nil
}

// Navigate drives the session to the configured base URL.
func (b *Browser) Navigate() error {
	return b.NavigatePath("")
}

// NavigatePath drives the session to path resolved against the base URL.
func (b *Browser) NavigatePath(path string) error {
	b.mu.Lock()
	closed := b.closed
	b.mu.Unlock()
	if closed {
		return ErrClosed
	}
	target, err := resolveURL(b.cfg.BaseURL, path)
	if err != nil {
		return err
	}
	if err := b.wd.Get(target); err != nil {
		return fmt.Errorf("navigate to %s: %v", target, err)
	}
	return nil
}

// Quit ends the session and drops the page cache. The Browser must not be
// used afterwards; all further operations return ErrClosed.
func (b *Browser) Quit() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}
	b.closed = true
	b.pages = nil
	b.mu.Unlock()
	if err := b.wd.Quit(); err != nil {
		return fmt.Errorf("quit session: %v", err)
	}
	return nil
}

func resolveURL(base, ref string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base URL %q: %v", base, err)
	}
	if ref == "" {
		return baseURL.String(), nil
	}
	refURL, err := baseURL.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("parse URL %q: %v", ref, err)
	}
	return refURL.String(), nil
}
