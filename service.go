package pom

import (
	"fmt"

	"github.com/tebeka/selenium"
)

// ServiceConfig describes a locally-run WebDriver service to start for a
// test run: the right driver binary (or Selenium server JAR) for the
// configured browser, and the port it should listen on.
type ServiceConfig struct {
	// Browser selects which service to start: chromedriver for Chrome,
	// geckodriver for Firefox. Edge and Safari sessions require a Selenium
	// server; set JarPath for those.
	Browser string
	// Path is the path to the driver binary.
	Path string
	// JarPath is the path to the Selenium server standalone JAR. When set,
	// a Selenium server is started instead of a browser-specific driver.
	JarPath string
	// Port is the port the service listens on.
	Port int
	// Options are passed through to the service, e.g.
	// selenium.StartFrameBuffer or selenium.Output.
	Options []selenium.ServiceOption
}

// ServerURL returns the WebDriver endpoint the started service listens on,
// suitable for Config.ServerURL. Geckodriver serves the protocol at the
// root; chromedriver and the Selenium server serve it under /wd/hub.
func (c ServiceConfig) ServerURL() string {
	if c.JarPath == "" && c.Browser == Firefox {
		return fmt.Sprintf("http://localhost:%d", c.Port)
	}
	return fmt.Sprintf("http://localhost:%d/wd/hub", c.Port)
}

// StartService starts the WebDriver service matching the configuration. The
// caller owns the returned service and must Stop it when the run is done.
func StartService(c ServiceConfig) (*selenium.Service, error) {
	if c.JarPath != "" {
		opts := c.Options
		if c.Path != "" {
			switch c.Browser {
			case Chrome:
				opts = append(opts, selenium.ChromeDriver(c.Path))
			case Firefox:
				opts = append(opts, selenium.GeckoDriver(c.Path))
			}
		}
		svc, err := selenium.NewSeleniumService(c.JarPath, c.Port, opts...)
		if err != nil {
			return nil, fmt.Errorf("start selenium server on port %d: %v", c.Port, err)
		}
		return svc, nil
	}

	switch c.Browser {
	case Chrome:
		svc, err := selenium.NewChromeDriverService(c.Path, c.Port, c.Options...)
		if err != nil {
			return nil, fmt.Errorf("start chromedriver on port %d: %v", c.Port, err)
		}
		return svc, nil
	case Firefox:
		svc, err := selenium.NewGeckoDriverService(c.Path, c.Port, c.Options...)
		if err != nil {
			return nil, fmt.Errorf("start geckodriver on port %d: %v", c.Port, err)
		}
		return svc, nil
	case Edge, Safari:
		return nil, fmt.Errorf("%s sessions require a Selenium server; set JarPath", c.Browser)
	default:
		return nil, fmt.Errorf("unsupported browser %q", c.Browser)
	}
}
