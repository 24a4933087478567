// Package installer invokes the vendor's platform installer with the
// addresses and settings resolved by the rest of the pipeline. The
// installer's internal behavior is owned by the vendor; our
// responsibility ends at argument assembly and transport of the script.
package installer

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

const installerSubsystem = "Installer"

// execCommandContext is a variable to allow mocking in tests
var execCommandContext = exec.CommandContext

// maxScriptSize caps how much of a fetched installer script we hold in
// memory.
const maxScriptSize = 16 << 20

// Args carries everything the delegated installer is invoked with.
type Args struct {
	// PrivateAddress is the container bridge IP.
	PrivateAddress string
	// PublicAddress is the host's routable IPv4.
	PublicAddress string
	// Tags are the fixed feature tags enabled for this install.
	Tags []string
	// UIPort is the web UI port.
	UIPort int
}

// CommandLine renders the positional/keyword arguments exactly as the
// vendor installer expects them.
func (a Args) CommandLine() []string {
	return []string{
		fmt.Sprintf("private-address=%s", a.PrivateAddress),
		fmt.Sprintf("public-address=%s", a.PublicAddress),
		fmt.Sprintf("tags=%s", strings.Join(a.Tags, ",")),
		fmt.Sprintf("ui-port=%d", a.UIPort),
	}
}

// Runner fetches the vendor installer over HTTPS and pipes it to bash.
type Runner struct {
	// ScriptURL serves the installer script.
	ScriptURL string

	client *http.Client
}

// NewRunner creates a Runner with a bounded fetch timeout.
func NewRunner(scriptURL string) *Runner {
	return &Runner{
		ScriptURL: scriptURL,
		client:    &http.Client{Timeout: 5 * time.Minute},
	}
}

// Run fetches the installer script and executes it with the assembled
// arguments, streaming its output to the operator.
func (r *Runner) Run(ctx context.Context, args Args) error {
	script, err := r.fetchScript(ctx)
	if err != nil {
		return err
	}

	cmdline := args.CommandLine()
	logging.Info(installerSubsystem, "Invoking installer from %s with %s",
		r.ScriptURL, strings.Join(cmdline, " "))

	bashArgs := append([]string{"-s", "--"}, cmdline...)
	cmd := execCommandContext(ctx, "bash", bashArgs...)
	cmd.Stdin = strings.NewReader(script)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("installer exited with error: %w", err)
	}
	return nil
}

func (r *Runner) fetchScript(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.ScriptURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch installer script: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch installer script: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxScriptSize))
	if err != nil {
		return "", fmt.Errorf("read installer script: %w", err)
	}
	if len(body) == 0 {
		return "", fmt.Errorf("installer script from %s is empty", r.ScriptURL)
	}
	return string(body), nil
}
