package download

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFilePath(t *testing.T) {
	f := File{Name: "chromedriver.zip", dir: "drivers"}
	want := filepath.Join("drivers", "chromedriver.zip")
	if got := f.Path(); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}

	f.dir = ""
	if got := f.Path(); got != "chromedriver.zip" {
		t.Errorf("Path() = %q, want %q", got, "chromedriver.zip")
	}
}

func TestSameHash(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blob")
	if err := os.WriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatalf("os.WriteFile(_) returned error: %v", err)
	}

	// sha256("hello")
	const helloSHA256 = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"

	f := File{Name: "blob", Hash: helloSHA256, dir: dir}
	if !sameHash(f) {
		t.Error("sameHash = false for a matching file")
	}

	f.Hash = "0000000000000000000000000000000000000000000000000000000000000000"
	if sameHash(f) {
		t.Error("sameHash = true for a mismatched hash")
	}

	f.Name = "absent"
	if sameHash(f) {
		t.Error("sameHash = true for a missing file")
	}
}

func TestSameHashMD5(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blob")
	if err := os.WriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatalf("os.WriteFile(_) returned error: %v", err)
	}

	// md5("hello")
	f := File{Name: "blob", Hash: "5d41402abc4b2a76b9719d911017c592", HashType: "md5", dir: dir}
	if !sameHash(f) {
		t.Error("sameHash = false for a matching md5 file")
	}
}

func TestUnpackIgnoresNonArchives(t *testing.T) {
	if err := unpack(File{Name: "selenium-server.jar"}); err != nil {
		t.Errorf("unpack on a non-archive returned error: %v", err)
	}
}
