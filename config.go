package pom

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/tebeka/selenium"
)

// Defaults used when neither the environment nor a configuration file
// provides a value.
const (
	DefaultBaseURL   = "http://localhost:8000"
	DefaultServerURL = "http://127.0.0.1:4444/wd/hub"
	DefaultBrowser   = Chrome
)

// Environment variables consumed by FromEnv and LoadFile.
const (
	EnvBaseURL   = "BASE_URL"
	EnvServerURL = "SELENIUM_URL"
	EnvBrowser   = "BROWSER"
	EnvHeadless  = "HEADLESS"
)

// Config describes a browser session to create: where the application under
// test lives, which WebDriver server to talk to and which browser to request
// from it. The zero value is not usable; obtain one from DefaultConfig,
// FromEnv or LoadFile.
type Config struct {
	// BaseURL is the root URL of the application under test. Navigate and
	// NavigatePath resolve against it.
	BaseURL string `yaml:"base-url"`
	// ServerURL is the WebDriver endpoint to create sessions on, e.g. a
	// local chromedriver or a remote Selenium hub.
	ServerURL string `yaml:"server-url"`
	// Browser is the browser name to request in the session capabilities.
	// One of Chrome, Firefox, Edge or Safari.
	Browser string `yaml:"browser"`
	// Headless requests a headless browser where the browser supports it.
	Headless bool `yaml:"headless"`
	// Wait bounds how long element lookups poll for an element to appear
	// before giving up. Zero disables polling; lookups then fail
	// immediately, exactly as the driver reports them.
	Wait time.Duration `yaml:"wait"`

	// ChromeArgs and FirefoxArgs are extra command-line arguments passed to
	// the browser binary, in addition to the driver-supplied ones.
	ChromeArgs  []string `yaml:"chrome-args"`
	FirefoxArgs []string `yaml:"firefox-args"`

	// Proxy, if set, is attached to the session capabilities.
	Proxy *selenium.Proxy `yaml:"-"`

	// Extra entries are merged verbatim into the session capabilities. Grid
	// job metadata (see package grid) is supplied this way.
	Extra map[string]interface{} `yaml:"extra"`
}

// DefaultConfig returns a Config populated with the package defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		ServerURL: DefaultServerURL,
		Browser:   DefaultBrowser,
	}
}

// FromEnv returns the default configuration with any values set in the
// environment applied on top.
func FromEnv() Config {
	c := DefaultConfig()
	c.applyEnv()
	return c
}

// LoadFile reads a YAML suite configuration from path. Values set in the
// environment override the file.
func LoadFile(path string) (Config, error) {
	c := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %q: %v", path, err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse config %q: %v", path, err)
	}
	c.applyEnv()
	return c, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvServerURL); v != "" {
		c.ServerURL = v
	}
	if v := os.Getenv(EnvBrowser); v != "" {
		c.Browser = v
	}
	if v := os.Getenv(EnvHeadless); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			c.Headless = b
		}
	}
}

// Validate reports whether the configuration can produce a session.
func (c Config) Validate() error {
	if _, err := url.Parse(c.BaseURL); err != nil {
		return fmt.Errorf("invalid base URL %q: %v", c.BaseURL, err)
	}
	if c.ServerURL == "" {
		return fmt.Errorf("server URL is required")
	}
	switch c.Browser {
	case Chrome, Firefox, Edge, Safari:
		return nil
	case "":
		return fmt.Errorf("browser name is required")
	default:
		return fmt.Errorf("unsupported browser %q", c.Browser)
	}
}
