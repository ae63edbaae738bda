package pom

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvBaseURL, EnvServerURL, EnvBrowser, EnvHeadless} {
		t.Setenv(k, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	got := FromEnv()
	want := Config{
		BaseURL:   DefaultBaseURL,
		ServerURL: DefaultServerURL,
		Browser:   DefaultBrowser,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FromEnv() mismatch (-want +got):\n%s", diff)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvBaseURL, "http://staging.example.test")
	t.Setenv(EnvServerURL, "http://hub.example.test/wd/hub")
	t.Setenv(EnvBrowser, Firefox)
	t.Setenv(EnvHeadless, "true")

	got := FromEnv()
	if got.BaseURL != "http://staging.example.test" {
		t.Errorf("BaseURL = %q, want the environment value", got.BaseURL)
	}
	if got.ServerURL != "http://hub.example.test/wd/hub" {
		t.Errorf("ServerURL = %q, want the environment value", got.ServerURL)
	}
	if got.Browser != Firefox {
		t.Errorf("Browser = %q, want %q", got.Browser, Firefox)
	}
	if !got.Headless {
		t.Error("Headless = false, want true")
	}
}

func TestFromEnvBadHeadless(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvHeadless, "yep")

	if got := FromEnv(); got.Headless {
		t.Error("Headless = true for an unparseable value, want the default")
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "suite.yaml")
	data := []byte(`base-url: http://app.example.test
browser: firefox
headless: true
firefox-args:
  - "-devtools"
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("os.WriteFile(_) returned error: %v", err)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile(%q) returned error: %v", path, err)
	}
	if got.BaseURL != "http://app.example.test" {
		t.Errorf("BaseURL = %q, want the file value", got.BaseURL)
	}
	if got.Browser != Firefox {
		t.Errorf("Browser = %q, want %q", got.Browser, Firefox)
	}
	if !got.Headless {
		t.Error("Headless = false, want true")
	}
	if got.ServerURL != DefaultServerURL {
		t.Errorf("ServerURL = %q, want the default", got.ServerURL)
	}
	if len(got.FirefoxArgs) != 1 || got.FirefoxArgs[0] != "-devtools" {
		t.Errorf("FirefoxArgs = %v, want [-devtools]", got.FirefoxArgs)
	}
}

func TestLoadFileEnvWins(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvBrowser, Safari)

	path := filepath.Join(t.TempDir(), "suite.yaml")
	if err := os.WriteFile(path, []byte("browser: firefox\n"), 0644); err != nil {
		t.Fatalf("os.WriteFile(_) returned error: %v", err)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile(%q) returned error: %v", path, err)
	}
	if got.Browser != Safari {
		t.Errorf("Browser = %q, want the environment to override the file", got.Browser)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadFile on a missing file did not return an error")
	}
}

func TestValidate(t *testing.T) {
	for _, tc := range []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"firefox", func(c *Config) { c.Browser = Firefox }, false},
		{"edge", func(c *Config) { c.Browser = Edge }, false},
		{"safari", func(c *Config) { c.Browser = Safari }, false},
		{"empty browser", func(c *Config) { c.Browser = "" }, true},
		{"unknown browser", func(c *Config) { c.Browser = "netscape" }, true},
		{"empty server URL", func(c *Config) { c.ServerURL = "" }, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Error("Validate() = nil, want error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("Validate() returned error: %v", err)
			}
		})
	}
}
