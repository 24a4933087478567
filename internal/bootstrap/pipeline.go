package bootstrap

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"preflight/internal/config"
	"preflight/internal/containerizer"
	"preflight/internal/discover"
	"preflight/internal/installer"
	"preflight/internal/netcheck"
	"preflight/internal/storage"
	"preflight/internal/sysctl"
	"preflight/pkg/logging"

	"github.com/briandowns/spinner"
	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/term"
)

const bootstrapSubsystem = "Bootstrap"

// ErrDeclined means the operator answered "no" to the storage warning.
// It maps to exit code 0: declining is not a failure.
var ErrDeclined = errors.New("installation declined by operator")

// geteuid is a variable to allow mocking in tests.
var geteuid = os.Geteuid

// Pipeline runs the host preparation steps in a fixed order:
// privilege check, network probe, kernel tuning, runtime install,
// address discovery, delegated install. Strictly linear; the first
// failure aborts.
type Pipeline struct {
	cfg         config.Config
	runID       string
	assumeYes   bool
	in          io.Reader
	out         io.Writer
	interactive bool

	bridge       *discover.BridgeResolver
	hostAddress  func() string
	runInstaller func(ctx context.Context, args installer.Args) error
}

// New assembles a Pipeline with production wiring.
func New(cfg config.Config, assumeYes bool) *Pipeline {
	return &Pipeline{
		cfg:         cfg,
		runID:       uuid.New().String()[:8],
		assumeYes:   assumeYes,
		in:          os.Stdin,
		out:         os.Stdout,
		interactive: term.IsTerminal(int(os.Stdout.Fd())),
		bridge:      discover.NewBridgeResolver(),
		hostAddress: discover.HostAddress,
		runInstaller: func(ctx context.Context, args installer.Args) error {
			return installer.NewRunner(cfg.Installer.ScriptURL).Run(ctx, args)
		},
	}
}

// RunID identifies this provisioning run in logs and the final summary.
func (p *Pipeline) RunID() string { return p.runID }

// Run executes the whole pipeline.
func (p *Pipeline) Run(ctx context.Context) error {
	logging.Info(bootstrapSubsystem, "Starting preflight run %s", p.runID)

	if err := p.checkPrivilege(); err != nil {
		return err
	}
	if err := p.CheckNetwork(ctx); err != nil {
		return err
	}
	if err := p.tuneKernel(); err != nil {
		return err
	}
	if err := p.installRuntime(ctx); err != nil {
		return err
	}
	privateAddr, publicAddr, err := p.discoverAddresses(ctx)
	if err != nil {
		return err
	}
	if err := p.confirmStorage(); err != nil {
		return err
	}
	if err := p.delegateInstall(ctx, privateAddr, publicAddr); err != nil {
		return err
	}

	logging.Info(bootstrapSubsystem, "Preflight run %s complete", p.runID)
	return nil
}

func (p *Pipeline) checkPrivilege() error {
	if uid := geteuid(); uid != 0 {
		return &PermissionDeniedError{UID: uid}
	}
	return nil
}

// CheckNetwork probes every configured endpoint and prints the report.
// Exported separately so the check subcommand can run it on its own.
func (p *Pipeline) CheckNetwork(ctx context.Context) error {
	stop := p.startSpinner(" Probing vendor endpoints...")
	checker := netcheck.NewChecker(time.Duration(p.cfg.Probe.TimeoutSeconds) * time.Second)
	results := checker.ProbeAll(ctx, p.cfg.Endpoints)
	stop()

	netcheck.WriteReport(p.out, results)

	if failed := netcheck.Unreachable(results); len(failed) > 0 {
		return &NetworkUnreachableError{Endpoints: failed}
	}
	return nil
}

func (p *Pipeline) tuneKernel() error {
	enforcer := &sysctl.Enforcer{
		Parameter: p.cfg.Kernel.Parameter,
		Value:     p.cfg.Kernel.Value,
		ConfPath:  p.cfg.Kernel.ConfPath,
	}

	if _, err := enforcer.EnsurePersistent(); err != nil {
		return &ConfigWriteFailedError{Path: p.cfg.Kernel.ConfPath, Reason: err}
	}
	if _, err := enforcer.EnsureLive(); err != nil {
		return &ParameterApplyFailedError{Parameter: p.cfg.Kernel.Parameter, Reason: err}
	}
	return nil
}

func (p *Pipeline) installRuntime(ctx context.Context) error {
	inst := containerizer.NewInstaller(p.cfg.Runtime.Binary, p.cfg.Runtime.ScriptURL, p.cfg.Runtime.Version)
	if inst.Installed() {
		logging.Info(bootstrapSubsystem, "Container runtime %s already installed, skipping", p.cfg.Runtime.Binary)
		return nil
	}

	if err := inst.ProbeHost(ctx); err != nil {
		return &InstallerUnreachableError{URL: p.cfg.Runtime.ScriptURL, Reason: err}
	}

	stop := p.startSpinner(" Installing container runtime...")
	err := inst.Install(ctx)
	stop()
	if err != nil {
		return &InstallFailedError{Component: p.cfg.Runtime.Binary, Reason: err}
	}
	return nil
}

func (p *Pipeline) discoverAddresses(ctx context.Context) (string, string, error) {
	bridgeAddr, tried := p.bridge.Resolve(ctx)
	if bridgeAddr == "" {
		return "", "", &BridgeAddressNotFoundError{Tried: tried}
	}

	hostAddr := p.hostAddress()
	if hostAddr == "" {
		return "", "", &HostAddressNotFoundError{}
	}
	return bridgeAddr, hostAddr, nil
}

func (p *Pipeline) confirmStorage() error {
	res := storage.Check{
		DataRoot:  p.cfg.Storage.DataRoot,
		MinFreeGB: p.cfg.Storage.MinFreeGB,
	}.Run()
	if res.ProductionReady {
		return nil
	}

	logging.Warn(bootstrapSubsystem, "%s", res.Detail)
	if p.assumeYes {
		return nil
	}

	timeout := time.Duration(p.cfg.Storage.PromptTimeoutSeconds) * time.Second
	if !confirmContinue(p.in, p.out, res.Detail, timeout) {
		return ErrDeclined
	}
	return nil
}

func (p *Pipeline) delegateInstall(ctx context.Context, privateAddr, publicAddr string) error {
	args := installer.Args{
		PrivateAddress: privateAddr,
		PublicAddress:  publicAddr,
		Tags:           p.cfg.Installer.Tags,
		UIPort:         p.cfg.Installer.UIPort,
	}
	if err := p.runInstaller(ctx, args); err != nil {
		return &InstallFailedError{Component: "platform", Reason: err}
	}

	if p.interactive {
		io.WriteString(p.out, text.FgGreen.Sprintf("Host prepared, installer finished (run %s)\n", p.runID))
	}
	return nil
}

// startSpinner shows a progress spinner on interactive terminals and is a
// no-op otherwise. The returned func stops it.
func (p *Pipeline) startSpinner(suffix string) func() {
	if !p.interactive {
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = suffix
	s.Start()
	return s.Stop
}
