package containerizer

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockExecCommandContext routes exec calls through TestHelperProcess.
func mockExecCommandContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	cs := []string{"-test.run=TestHelperProcess", "--", name}
	cs = append(cs, args...)
	cmd := exec.Command(os.Args[0], cs...)
	cmd.Env = []string{"GO_WANT_HELPER_PROCESS=1"}
	return cmd
}

// TestHelperProcess is a helper process for mocking exec.Command
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	args := os.Args
	for i, arg := range args {
		if arg == "--" {
			args = args[i+1:]
			break
		}
	}
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "No command\n")
		os.Exit(2)
	}

	if args[0] == "sh" {
		// The install script arrives on stdin; pretend it ran.
		os.Exit(0)
	}
	os.Exit(1)
}

func TestInstalled_GateSkipsWhenBinaryOnPath(t *testing.T) {
	originalLookPath := lookPath
	defer func() { lookPath = originalLookPath }()

	lookPath = func(file string) (string, error) {
		if file == "docker" {
			return "/usr/bin/docker", nil
		}
		return "", exec.ErrNotFound
	}

	i := NewInstaller("docker", "https://get.docker.com", "24.0")
	assert.True(t, i.Installed())

	i = NewInstaller("missing-runtime", "https://get.docker.com", "24.0")
	assert.False(t, i.Installed())
}

func TestProbeHost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	i := NewInstaller("docker", srv.URL, "24.0")
	assert.NoError(t, i.ProbeHost(context.Background()))

	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := dead.URL
	dead.Close()

	i = NewInstaller("docker", deadURL, "24.0")
	assert.Error(t, i.ProbeHost(context.Background()))
}

func TestInstall_FetchesAndRunsScript(t *testing.T) {
	originalExec := execCommandContext
	defer func() { execCommandContext = originalExec }()
	execCommandContext = mockExecCommandContext

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "#!/bin/sh\necho installing")
	}))
	defer srv.Close()

	i := NewInstaller("docker", srv.URL, "24.0")
	assert.NoError(t, i.Install(context.Background()))
}

func TestInstall_EmptyScriptRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	i := NewInstaller("docker", srv.URL, "24.0")
	err := i.Install(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestInstall_HTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	i := NewInstaller("docker", srv.URL, "24.0")
	err := i.Install(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}
