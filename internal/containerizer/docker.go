package containerizer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"time"

	"preflight/pkg/logging"
)

const dockerSubsystem = "Docker"

// Variables to allow mocking in tests.
var (
	execCommandContext = exec.CommandContext
	lookPath           = exec.LookPath
)

// maxScriptSize caps how much of a fetched install script we are willing
// to hold in memory.
const maxScriptSize = 4 << 20

// Installer installs the container runtime via the vendor's convenience
// script.
type Installer struct {
	// Binary is the runtime binary looked up on PATH for the idempotency
	// gate, e.g. "docker".
	Binary string
	// ScriptURL serves the install script, e.g. https://get.docker.com.
	ScriptURL string
	// Version is exported as VERSION to the install script.
	Version string

	client *http.Client
}

// NewInstaller creates an Installer with a bounded fetch timeout.
func NewInstaller(binary, scriptURL, version string) *Installer {
	return &Installer{
		Binary:    binary,
		ScriptURL: scriptURL,
		Version:   version,
		client:    &http.Client{Timeout: 2 * time.Minute},
	}
}

// Installed reports whether the runtime binary resolves on PATH.
func (i *Installer) Installed() bool {
	path, err := lookPath(i.Binary)
	if err != nil {
		return false
	}
	logging.Debug(dockerSubsystem, "%s already installed at %s", i.Binary, path)
	return true
}

// ProbeHost checks that the install-script host answers at all. Any
// response counts; the point is to fail with a clear diagnostic before
// attempting the install.
func (i *Installer) ProbeHost(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, i.ScriptURL, nil)
	if err != nil {
		return err
	}
	resp, err := i.client.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// Install fetches the install script and pipes it to sh with VERSION
// exported. The script's stdout/stderr stream straight to the operator.
func (i *Installer) Install(ctx context.Context) error {
	script, err := i.fetchScript(ctx)
	if err != nil {
		return err
	}

	logging.Info(dockerSubsystem, "Running install script from %s (VERSION=%s)", i.ScriptURL, i.Version)

	cmd := execCommandContext(ctx, "sh", "-s")
	cmd.Stdin = strings.NewReader(script)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), fmt.Sprintf("VERSION=%s", i.Version))

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("install script failed: %w", err)
	}
	return nil
}

// fetchScript downloads the install script body.
func (i *Installer) fetchScript(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, i.ScriptURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := i.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch install script: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch install script: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxScriptSize))
	if err != nil {
		return "", fmt.Errorf("read install script: %w", err)
	}
	if len(body) == 0 {
		return "", fmt.Errorf("install script from %s is empty", i.ScriptURL)
	}
	return string(body), nil
}
