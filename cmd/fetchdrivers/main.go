// Binary fetchdrivers downloads the binaries a browser test run needs: the
// Selenium server JAR, chromedriver, the latest geckodriver release and,
// optionally, a matching Chromium build.
package main

import (
	"context"
	"flag"

	"github.com/blang/semver"
	"github.com/golang/glog"

	"github.com/gopom/pom/internal/download"
)

var (
	dir             = flag.String("dir", "drivers", "Directory to download into.")
	downloadBrowser = flag.Bool("download_browser", false, "If true, also download a Chromium build.")
	chromeBuild     = flag.String("chrome_build", "", "Chromium snapshot build to download; empty means latest.")
	minGeckoVersion = flag.String("min_gecko_version", "0.24.0", "Reject geckodriver releases older than this version.")
)

func main() {
	flag.Parse()
	ctx := context.Background()

	minGecko, err := semver.Parse(*minGeckoVersion)
	if err != nil {
		glog.Exitf("Invalid --min_gecko_version %q: %v", *minGeckoVersion, err)
	}

	files := []download.File{download.Selenium, download.ChromeDriver}

	gecko, err := download.GeckodriverLatest(ctx, minGecko)
	if err != nil {
		glog.Exitf("Resolving geckodriver release: %v", err)
	}
	files = append(files, gecko)

	if *downloadBrowser {
		chrome, err := download.ChromeSnapshot(ctx, *chromeBuild)
		if err != nil {
			glog.Exitf("Resolving Chromium snapshot: %v", err)
		}
		files = append(files, chrome)
	}

	if err := download.FetchAll(files, *dir); err != nil {
		glog.Exit(err.Error())
	}
	glog.Infof("Done. %d files in %q", len(files), *dir)
}
