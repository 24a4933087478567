package sysctl

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"preflight/pkg/logging"
)

const sysctlSubsystem = "Sysctl"

// procSysRoot is a variable to allow redirection in tests.
var procSysRoot = "/proc/sys"

// Enforcer ensures a kernel parameter is set both persistently and in the
// running kernel. The two checks are independent: a host may have the
// line in sysctl.conf without a reboot, or a manually applied value with
// no persistent line.
type Enforcer struct {
	// Parameter is the sysctl key, e.g. "vm.max_map_count".
	Parameter string
	// Value is the required minimum.
	Value int
	// ConfPath is the persistent configuration file, e.g. /etc/sysctl.conf.
	ConfPath string
}

// Outcome reports what Ensure actually did, so the caller can log it and
// tests can assert idempotency.
type Outcome struct {
	ConfAppended bool
	LiveApplied  bool
}

// Ensure makes the parameter persistent and active. It is idempotent:
// when both checks already pass, nothing is written.
func (e *Enforcer) Ensure() (Outcome, error) {
	var out Outcome

	appended, err := e.EnsurePersistent()
	if err != nil {
		return out, err
	}
	out.ConfAppended = appended

	applied, err := e.EnsureLive()
	if err != nil {
		return out, err
	}
	out.LiveApplied = applied

	return out, nil
}

// EnsurePersistent appends "key=value" to the configuration file unless a
// line already sets the key. Returns true if a line was appended.
func (e *Enforcer) EnsurePersistent() (bool, error) {
	data, err := os.ReadFile(e.ConfPath)
	if err != nil && !os.IsNotExist(err) {
		return false, fmt.Errorf("read %s: %w", e.ConfPath, err)
	}

	if hasParameterLine(string(data), e.Parameter) {
		logging.Debug(sysctlSubsystem, "%s already configured in %s", e.Parameter, e.ConfPath)
		return false, nil
	}

	f, err := os.OpenFile(e.ConfPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return false, fmt.Errorf("open %s: %w", e.ConfPath, err)
	}
	defer f.Close()

	line := fmt.Sprintf("%s=%d\n", e.Parameter, e.Value)
	if len(data) > 0 && !strings.HasSuffix(string(data), "\n") {
		line = "\n" + line
	}
	if _, err := f.WriteString(line); err != nil {
		return false, fmt.Errorf("append to %s: %w", e.ConfPath, err)
	}

	logging.Info(sysctlSubsystem, "Appended %s=%d to %s", e.Parameter, e.Value, e.ConfPath)
	return true, nil
}

// EnsureLive reads the running kernel's value and raises it if below the
// requirement. Returns true if a write happened.
func (e *Enforcer) EnsureLive() (bool, error) {
	path := e.procPath()

	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}

	current, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return false, fmt.Errorf("parse %s value %q: %w", e.Parameter, strings.TrimSpace(string(data)), err)
	}

	if current >= e.Value {
		logging.Debug(sysctlSubsystem, "%s already %d in running kernel", e.Parameter, current)
		return false, nil
	}

	if err := os.WriteFile(path, []byte(strconv.Itoa(e.Value)), 0644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}

	logging.Info(sysctlSubsystem, "Applied %s=%d to running kernel (was %d)", e.Parameter, e.Value, current)
	return true, nil
}

// procPath maps "vm.max_map_count" to /proc/sys/vm/max_map_count.
func (e *Enforcer) procPath() string {
	parts := strings.Split(e.Parameter, ".")
	return filepath.Join(append([]string{procSysRoot}, parts...)...)
}

// hasParameterLine reports whether any non-comment line sets the key,
// regardless of the value or spacing around "=".
func hasParameterLine(content, key string) bool {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		k, _, found := strings.Cut(trimmed, "=")
		if found && strings.TrimSpace(k) == key {
			return true
		}
	}
	return false
}
