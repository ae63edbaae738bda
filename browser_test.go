package pom

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
	"github.com/tebeka/selenium/firefox"

	"github.com/gopom/pom/internal/pomtest"
)

func TestCapabilitiesForChrome(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Headless = true
	cfg.ChromeArgs = []string{"--no-sandbox"}

	caps, err := capabilitiesFor(cfg)
	if err != nil {
		t.Fatalf("capabilitiesFor(%+v) returned error: %v", cfg, err)
	}
	if got := caps["browserName"]; got != Chrome {
		t.Errorf("browserName = %v, want %q", got, Chrome)
	}
	want := chrome.Capabilities{
		Args: []string{"--no-sandbox", "--headless"},
		W3C:  true,
	}
	got, ok := caps[chrome.CapabilitiesKey].(chrome.Capabilities)
	if !ok {
		t.Fatalf("capabilities have no %q entry", chrome.CapabilitiesKey)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("chrome options mismatch (-want +got):\n%s", diff)
	}
}

func TestCapabilitiesForFirefox(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Browser = Firefox
	cfg.Headless = true

	caps, err := capabilitiesFor(cfg)
	if err != nil {
		t.Fatalf("capabilitiesFor(%+v) returned error: %v", cfg, err)
	}
	want := firefox.Capabilities{
		Args: []string{"-headless"},
	}
	got, ok := caps[firefox.CapabilitiesKey].(firefox.Capabilities)
	if !ok {
		t.Fatalf("capabilities have no %q entry", firefox.CapabilitiesKey)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("firefox options mismatch (-want +got):\n%s", diff)
	}
}

func TestCapabilitiesForNameOnlyBrowsers(t *testing.T) {
	for _, browser := range []string{Edge, Safari} {
		cfg := DefaultConfig()
		cfg.Browser = browser

		caps, err := capabilitiesFor(cfg)
		if err != nil {
			t.Fatalf("capabilitiesFor(%q) returned error: %v", browser, err)
		}
		if len(caps) != 1 || caps["browserName"] != browser {
			t.Errorf("capabilitiesFor(%q) = %v, want browserName only", browser, caps)
		}
	}
}

func TestCapabilitiesForUnknownBrowser(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Browser = "netscape"

	if _, err := capabilitiesFor(cfg); err == nil {
		t.Error("capabilitiesFor with an unknown browser did not return an error")
	}
}

func TestCapabilitiesProxyAndExtra(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Proxy = &selenium.Proxy{Type: selenium.Manual, HTTP: "proxy:3128"}
	cfg.Extra = map[string]interface{}{"name": "smoke run"}

	caps, err := capabilitiesFor(cfg)
	if err != nil {
		t.Fatalf("capabilitiesFor(%+v) returned error: %v", cfg, err)
	}
	proxy, ok := caps["proxy"].(selenium.Proxy)
	if !ok {
		t.Fatal("capabilities have no proxy entry")
	}
	if proxy.HTTP != "proxy:3128" {
		t.Errorf("proxy.HTTP = %q, want %q", proxy.HTTP, "proxy:3128")
	}
	if caps["name"] != "smoke run" {
		t.Errorf(`caps["name"] = %v, want "smoke run"`, caps["name"])
	}
}

type fakePage struct {
	base *Base
}

func TestPageMemoization(t *testing.T) {
	b := NewWithDriver(pomtest.New(), DefaultConfig())

	builds := 0
	build := func(base *Base) interface{} {
		builds++
		return &fakePage{base: base}
	}

	first, err := b.Page("fake", build)
	if err != nil {
		t.Fatalf("Page(_) returned error: %v", err)
	}
	second, err := b.Page("fake", build)
	if err != nil {
		t.Fatalf("Page(_) returned error: %v", err)
	}
	if builds != 1 {
		t.Errorf("page built %d times, want 1", builds)
	}
	if first != second {
		t.Error("Page returned distinct instances for the same name")
	}

	if _, err := b.Page("other", build); err != nil {
		t.Fatalf("Page(_) returned error: %v", err)
	}
	if builds != 2 {
		t.Errorf("page built %d times after a second name, want 2", builds)
	}
}

func TestNavigate(t *testing.T) {
	d := pomtest.New()
	cfg := DefaultConfig()
	cfg.BaseURL = "http://app.example.test"
	b := NewWithDriver(d, cfg)

	if err := b.Navigate(); err != nil {
		t.Fatalf("Navigate() returned error: %v", err)
	}
	if err := b.NavigatePath("/login"); err != nil {
		t.Fatalf("NavigatePath(_) returned error: %v", err)
	}

	want := []string{"http://app.example.test", "http://app.example.test/login"}
	if diff := cmp.Diff(want, d.Visits); diff != "" {
		t.Errorf("visited URLs mismatch (-want +got):\n%s", diff)
	}
}

func TestQuit(t *testing.T) {
	d := pomtest.New()
	b := NewWithDriver(d, DefaultConfig())

	if err := b.Quit(); err != nil {
		t.Fatalf("Quit() returned error: %v", err)
	}
	if !d.QuitCalled {
		t.Error("Quit did not quit the underlying session")
	}

	if _, err := b.Page("fake", func(base *Base) interface{} { return &fakePage{} }); !errors.Is(err, ErrClosed) {
		t.Errorf("Page after Quit returned %v, want ErrClosed", err)
	}
	if err := b.Navigate(); !errors.Is(err, ErrClosed) {
		t.Errorf("Navigate after Quit returned %v, want ErrClosed", err)
	}
	if err := b.Quit(); !errors.Is(err, ErrClosed) {
		t.Errorf("second Quit returned %v, want ErrClosed", err)
	}
}

func TestResolveURL(t *testing.T) {
	for _, tc := range []struct {
		base, ref, want string
	}{
		{"http://app.example.test", "", "http://app.example.test"},
		{"http://app.example.test", "/login", "http://app.example.test/login"},
		{"http://app.example.test/admin/", "users", "http://app.example.test/admin/users"},
		{"http://app.example.test", "http://other.example.test/x", "http://other.example.test/x"},
	} {
		got, err := resolveURL(tc.base, tc.ref)
		if err != nil {
			t.Errorf("resolveURL(%q, %q) returned error: %v", tc.base, tc.ref, err)
			continue
		}
		if got != tc.want {
			t.Errorf("resolveURL(%q, %q) = %q, want %q", tc.base, tc.ref, got, tc.want)
		}
	}
}
