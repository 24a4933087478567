package bootstrap

import (
	"fmt"
	"strings"
)

// PermissionDeniedError indicates the process is not running with the
// privileges the pipeline needs.
type PermissionDeniedError struct {
	// UID is the effective user ID the process ran with.
	UID int
}

// Error returns a user-friendly error message with actionable guidance.
func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("preflight must run as root (effective UID %d); re-run with sudo", e.UID)
}

// Is allows errors.Is() to work with wrapped errors.
func (e *PermissionDeniedError) Is(target error) bool {
	_, ok := target.(*PermissionDeniedError)
	return ok
}

// NetworkUnreachableError aggregates every endpoint that failed the
// reachability probe, in the original list order.
type NetworkUnreachableError struct {
	// Endpoints are the unreachable URLs, in probe order.
	Endpoints []string
}

func (e *NetworkUnreachableError) Error() string {
	return fmt.Sprintf(`cannot reach %d required endpoint(s):
  %s

Check firewall rules and proxy settings, then re-run preflight.`,
		len(e.Endpoints), strings.Join(e.Endpoints, "\n  "))
}

func (e *NetworkUnreachableError) Is(target error) bool {
	_, ok := target.(*NetworkUnreachableError)
	return ok
}

// ConfigWriteFailedError indicates the persistent sysctl configuration
// could not be updated.
type ConfigWriteFailedError struct {
	Path   string
	Reason error
}

func (e *ConfigWriteFailedError) Error() string {
	return fmt.Sprintf("failed to update %s: %v", e.Path, e.Reason)
}

func (e *ConfigWriteFailedError) Unwrap() error { return e.Reason }

// ParameterApplyFailedError indicates the kernel parameter could not be
// applied to the running kernel.
type ParameterApplyFailedError struct {
	Parameter string
	Reason    error
}

func (e *ParameterApplyFailedError) Error() string {
	return fmt.Sprintf("failed to apply kernel parameter %s: %v", e.Parameter, e.Reason)
}

func (e *ParameterApplyFailedError) Unwrap() error { return e.Reason }

// InstallerUnreachableError indicates the host serving an install script
// could not be reached.
type InstallerUnreachableError struct {
	URL    string
	Reason error
}

func (e *InstallerUnreachableError) Error() string {
	return fmt.Sprintf("installer host %s is unreachable: %v", e.URL, e.Reason)
}

func (e *InstallerUnreachableError) Unwrap() error { return e.Reason }

// InstallFailedError indicates a fetched install script exited non-zero
// or could not be executed.
type InstallFailedError struct {
	// Component names what was being installed (e.g. "docker", "kestrel").
	Component string
	Reason    error
}

func (e *InstallFailedError) Error() string {
	return fmt.Sprintf("%s installation failed: %v", e.Component, e.Reason)
}

func (e *InstallFailedError) Unwrap() error { return e.Reason }

// BridgeAddressNotFoundError indicates every bridge-address discovery
// strategy came up empty.
type BridgeAddressNotFoundError struct {
	// Tried lists the strategies attempted, in order.
	Tried []string
}

func (e *BridgeAddressNotFoundError) Error() string {
	return fmt.Sprintf("could not determine the container bridge address (tried: %s)",
		strings.Join(e.Tried, ", "))
}

func (e *BridgeAddressNotFoundError) Is(target error) bool {
	_, ok := target.(*BridgeAddressNotFoundError)
	return ok
}

// HostAddressNotFoundError indicates no non-loopback IPv4 address exists
// on any interface.
type HostAddressNotFoundError struct{}

func (e *HostAddressNotFoundError) Error() string {
	return "could not determine the host's routable IPv4 address: no non-loopback interface found"
}

func (e *HostAddressNotFoundError) Is(target error) bool {
	_, ok := target.(*HostAddressNotFoundError)
	return ok
}
