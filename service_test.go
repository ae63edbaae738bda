package pom

import (
	"testing"
)

func TestServiceServerURL(t *testing.T) {
	for _, tc := range []struct {
		name string
		cfg  ServiceConfig
		want string
	}{
		{"chromedriver", ServiceConfig{Browser: Chrome, Port: 9515}, "http://localhost:9515/wd/hub"},
		{"geckodriver", ServiceConfig{Browser: Firefox, Port: 4445}, "http://localhost:4445"},
		{"selenium server", ServiceConfig{Browser: Firefox, JarPath: "selenium-server.jar", Port: 4444}, "http://localhost:4444/wd/hub"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cfg.ServerURL(); got != tc.want {
				t.Errorf("ServerURL() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestStartServiceUnknownBrowser(t *testing.T) {
	if _, err := StartService(ServiceConfig{Browser: "netscape", Path: "driver", Port: 4444}); err == nil {
		t.Error("StartService with an unknown browser did not return an error")
	}
}

func TestStartServiceEdgeNeedsServer(t *testing.T) {
	for _, browser := range []string{Edge, Safari} {
		if _, err := StartService(ServiceConfig{Browser: browser, Port: 4444}); err == nil {
			t.Errorf("StartService(%q) without a JAR did not return an error", browser)
		}
	}
}
