// Package download fetches the binaries a browser test run depends on: the
// Selenium server JAR, browser drivers and, optionally, a browser build.
// Downloads are hash-verified where a stable hash is known, unpacked and
// renamed into place, and skipped when already present.
package download

import (
	"context"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/blang/semver"
	"github.com/golang/glog"
	"github.com/google/go-github/v27/github"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"
)

// File describes one file to fetch from the Web.
type File struct {
	URL  string
	Name string
	// Hash is the expected hex digest of the file contents; empty disables
	// verification. HashType selects the algorithm (md5, sha1, sha256;
	// sha256 is the default).
	Hash     string
	HashType string
	// Rename, when it holds two entries, renames the first path to the
	// second after the archive is unpacked.
	Rename []string

	// The directory in which to store the file.
	dir string
}

// Path returns the location the file is written to.
func (f File) Path() string {
	if f.dir != "" {
		return filepath.Join(f.dir, f.Name)
	}
	return f.Name
}

var (
	// Selenium describes the Selenium server standalone JAR.
	Selenium = File{
		URL:  "https://selenium-release.storage.googleapis.com/3.141/selenium-server-standalone-3.141.59.jar",
		Name: "selenium-server.jar",
		Hash: "acf71b77d1b66b55db6fb0bed6d8bae2bbd481311bcbedfeff472c0d15e8f3cb",
	}

	// ChromeDriver describes a ChromeDriver binary known to match the
	// pinned Chromium snapshot below.
	ChromeDriver = File{
		URL:  "https://chromedriver.storage.googleapis.com/76.0.3809.25/chromedriver_linux64.zip",
		Name: "chromedriver.zip",
		Hash: "0a264a8b2fa881edf33657ba88709ae3dbaec72d8b41beebf1c89d5e3bc3e594",
	}
)

// GeckodriverLatest resolves the latest geckodriver release on GitHub and
// returns a File for its linux64 asset. Releases older than min are
// rejected, so a stale "latest" cannot silently downgrade a test
// environment.
func GeckodriverLatest(ctx context.Context, min semver.Version) (File, error) {
	client := github.NewClient(nil)
	rel, _, err := client.Repositories.GetLatestRelease(ctx, "mozilla", "geckodriver")
	if err != nil {
		return File{}, fmt.Errorf("resolve latest geckodriver release: %v", err)
	}
	tag := strings.TrimPrefix(rel.GetTagName(), "v")
	ver, err := semver.Parse(tag)
	if err != nil {
		return File{}, fmt.Errorf("parse geckodriver release tag %q: %v", rel.GetTagName(), err)
	}
	if ver.LT(min) {
		return File{}, fmt.Errorf("latest geckodriver release %s is older than required %s", ver, min)
	}

	assetRE := regexp.MustCompile(`geckodriver-.*linux64\.tar\.gz$`)
	for _, a := range rel.Assets {
		if !assetRE.MatchString(a.GetName()) {
			continue
		}
		u := a.GetBrowserDownloadURL()
		if u == "" {
			return File{}, fmt.Errorf("geckodriver asset %s has no download URL", a.GetName())
		}
		return File{URL: u, Name: "geckodriver.tar.gz"}, nil
	}
	return File{}, fmt.Errorf("no linux64 asset in geckodriver release %s", rel.GetTagName())
}

// ChromeSnapshot resolves a Chromium build from the
// chromium-browser-snapshots bucket. If build is empty the latest build is
// used.
func ChromeSnapshot(ctx context.Context, build string) (File, error) {
	const (
		bucketName     = "chromium-browser-snapshots"
		prefixLinux64  = "Linux_x64"
		lastChangeFile = "Linux_x64/LAST_CHANGE"
		chromeFilename = "chrome-linux.zip"
	)

	client, err := storage.NewClient(ctx, option.WithHTTPClient(http.DefaultClient))
	if err != nil {
		return File{}, fmt.Errorf("create storage client: %v", err)
	}
	bkt := client.Bucket(bucketName)

	if build == "" {
		r, err := bkt.Object(lastChangeFile).NewReader(ctx)
		if err != nil {
			return File{}, fmt.Errorf("open gs://%s/%s: %v", bucketName, lastChangeFile, err)
		}
		defer r.Close()
		data, err := io.ReadAll(r)
		if err != nil {
			return File{}, fmt.Errorf("read gs://%s/%s: %v", bucketName, lastChangeFile, err)
		}
		build = string(data)
	}

	object := path.Join(prefixLinux64, build, chromeFilename)
	attrs, err := bkt.Object(object).Attrs(ctx)
	if err != nil {
		return File{}, fmt.Errorf("stat gs://%s/%s: %v", bucketName, object, err)
	}
	return File{
		URL:      attrs.MediaLink,
		Name:     chromeFilename,
		Hash:     hex.EncodeToString(attrs.MD5),
		HashType: "md5",
	}, nil
}

// Fetch downloads file into dir if it is not already present with the
// expected hash, then unpacks and renames it.
func Fetch(file File, dir string) error {
	file.dir = dir

	if file.Hash != "" && sameHash(file) {
		glog.Infof("Skipping %q which has already been downloaded.", file.Name)
	} else {
		glog.Infof("Downloading %q from %q", file.Name, file.URL)
		if err := fetchFile(file); err != nil {
			return err
		}
	}

	if err := unpack(file); err != nil {
		return err
	}

	if rename := file.Rename; len(rename) == 2 {
		from := filepath.Join(file.dir, rename[0])
		to := filepath.Join(file.dir, rename[1])
		glog.Infof("Renaming %q to %q", from, to)
		os.RemoveAll(to) // Ignore error.
		if err := os.Rename(from, to); err != nil {
			glog.Warningf("Error renaming %q to %q: %v", from, to, err)
		}
	}
	return nil
}

// FetchAll downloads every file into dir in parallel.
func FetchAll(files []File, dir string) error {
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %q: %v", dir, err)
		}
	}
	var wg errgroup.Group
	for _, file := range files {
		file := file
		wg.Go(func() error {
			if err := Fetch(file, dir); err != nil {
				return fmt.Errorf("%s: %v", file.Name, err)
			}
			return nil
		})
	}
	return wg.Wait()
}

func fetchFile(file File) (err error) {
	f, err := os.Create(file.Path())
	if err != nil {
		return fmt.Errorf("create %q: %v", file.Path(), err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %q: %v", file.Path(), closeErr)
		}
	}()

	resp, err := http.Get(file.URL)
	if err != nil {
		return fmt.Errorf("download %q: %v", file.URL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %q: %s", file.URL, resp.Status)
	}

	if file.Hash == "" {
		if _, err := io.Copy(f, resp.Body); err != nil {
			return fmt.Errorf("download %q: %v", file.URL, err)
		}
		return nil
	}

	h := newHash(file.HashType)
	if _, err := io.Copy(io.MultiWriter(f, h), resp.Body); err != nil {
		return fmt.Errorf("download %q: %v", file.URL, err)
	}
	if sum := hex.EncodeToString(h.Sum(nil)); sum != file.Hash {
		return fmt.Errorf("got %s hash %q, want %q", file.HashType, sum, file.Hash)
	}
	return nil
}

func newHash(hashType string) hash.Hash {
	switch strings.ToLower(hashType) {
	case "md5":
		return md5.New()
	case "sha1":
		return sha1.New()
	default:
		return sha256.New()
	}
}

func sameHash(file File) bool {
	if _, err := os.Stat(file.Path()); err != nil {
		return false
	}
	f, err := os.Open(file.Path())
	if err != nil {
		return false
	}
	defer f.Close()

	h := newHash(file.HashType)
	if _, err := io.Copy(h, f); err != nil {
		return false
	}
	sum := hex.EncodeToString(h.Sum(nil))
	if sum != file.Hash {
		glog.Warningf("File %q: got hash %q, want %q", file.Name, sum, file.Hash)
		return false
	}
	return true
}

// unpack extracts the archive next to itself. Non-archive files are left as
// downloaded.
func unpack(file File) error {
	dir := "."
	if file.dir != "" {
		dir = file.dir
	}

	var cmd []string
	switch path.Ext(file.Name) {
	case ".zip":
		cmd = []string{"unzip", "-d", dir, "-o", file.Path()}
	case ".gz":
		cmd = []string{"tar", "-xzf", file.Path(), "-C", dir}
	case ".bz2":
		cmd = []string{"tar", "-xjf", file.Path(), "-C", dir}
	default:
		return nil
	}

	glog.Infof("Unpacking %q", file.Path())
	if err := exec.Command(cmd[0], cmd[1:]...).Run(); err != nil {
		return fmt.Errorf("unpack %q: %v", file.Name, err)
	}
	return nil
}
