package grid

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"
)

// Tunnel manages a grid-provided tunnel binary that lets the hosted grid
// reach HTTP endpoints on the local machine.
type Tunnel struct {
	// Path is the path to the tunnel binary.
	Path string
	// UserName and AccessKey authenticate the tunnel with the grid.
	UserName, AccessKey string
	// Port is the local port to listen on for WebDriver connections.
	Port int
	// LogFile is where the tunnel binary should write its log.
	LogFile string
	// Verbose controls the verbosity of the tunnel binary's output.
	Verbose bool
	// Args are additional arguments to pass to the tunnel binary.
	Args []string

	cmd *exec.Cmd
}

// Start launches the tunnel binary and waits for it to accept connections.
func (t *Tunnel) Start() error {
	t.cmd = exec.Command(t.Path, t.Args...)
	if t.UserName != "" {
		t.cmd.Args = append(t.cmd.Args, "--user", t.UserName)
	}
	if t.AccessKey != "" {
		t.cmd.Args = append(t.cmd.Args, "--api-key", t.AccessKey)
	}
	if t.Port > 0 {
		t.cmd.Args = append(t.cmd.Args, "--se-port", strconv.Itoa(t.Port))
	}
	if t.Verbose {
		t.cmd.Args = append(t.cmd.Args, "-v")
		t.cmd.Stdout = os.Stdout
		t.cmd.Stderr = os.Stderr
	}
	if t.LogFile != "" {
		t.cmd.Args = append(t.cmd.Args, "--logfile", t.LogFile)
	}

	dir, err := os.MkdirTemp("", "pom-tunnel")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir) // ignore error.

	// The tunnel binary touches this path once it is ready to accept
	// connections.
	readyPath := filepath.Join(dir, "ready")
	t.cmd.Args = append(t.cmd.Args, "--readyfile", readyPath)

	if err := t.cmd.Start(); err != nil {
		return err
	}

	for i := 0; i < 60; i++ {
		time.Sleep(time.Second)
		if _, err := os.Stat(readyPath); err == nil {
			return nil
		}
	}
	t.Stop() // ignore error.
	return fmt.Errorf("tunnel did not become ready before the timeout")
}

// Addr returns the local WebDriver endpoint the tunnel listens on.
func (t *Tunnel) Addr() string {
	return fmt.Sprintf("http://%s:%s@localhost:%d/wd/hub", t.UserName, t.AccessKey, t.Port)
}

// Stop terminates the tunnel process.
func (t *Tunnel) Stop() error {
	return t.cmd.Process.Kill()
}
