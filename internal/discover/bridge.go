package discover

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"os/exec"
	"strings"

	"preflight/pkg/logging"
)

const discoverSubsystem = "Discover"

// commandOutput is a variable to allow mocking in tests.
var commandOutput = func(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// BridgeResolver finds the IP of the container runtime's virtual bridge
// interface.
type BridgeResolver struct {
	// Interface is the bridge device name (default docker0).
	Interface string
	// DaemonConfigPath is the Docker daemon configuration file consulted
	// as a fallback (default /etc/docker/daemon.json).
	DaemonConfigPath string
	// NetworkName is the runtime network inspected as the last resort
	// (default bridge).
	NetworkName string
}

// NewBridgeResolver creates a resolver with the standard Docker defaults.
func NewBridgeResolver() *BridgeResolver {
	return &BridgeResolver{
		Interface:        "docker0",
		DaemonConfigPath: "/etc/docker/daemon.json",
		NetworkName:      "bridge",
	}
}

type bridgeStrategy struct {
	name string
	fn   func(ctx context.Context) (string, error)
}

func (r *BridgeResolver) strategies() []bridgeStrategy {
	return []bridgeStrategy{
		{"ip addr", r.fromIPAddr},
		{"ifconfig", r.fromIfconfig},
		{"daemon.json", r.fromDaemonConfig},
		{"docker network inspect", r.fromNetworkInspect},
	}
}

// Resolve tries each strategy in order and returns the first address
// found, plus the names of every strategy attempted. When all strategies
// come up empty, the address is "" and tried covers the full list.
func (r *BridgeResolver) Resolve(ctx context.Context) (string, []string) {
	var tried []string
	for _, s := range r.strategies() {
		tried = append(tried, s.name)
		addr, err := s.fn(ctx)
		if err != nil {
			logging.Debug(discoverSubsystem, "Bridge strategy %q failed: %v", s.name, err)
			continue
		}
		if addr == "" {
			continue
		}
		logging.Info(discoverSubsystem, "Bridge address %s found via %s", addr, s.name)
		return addr, tried
	}
	return "", tried
}

// fromIPAddr parses `ip -4 addr show docker0` output:
//
//	inet 172.17.0.1/16 brd 172.17.255.255 scope global docker0
func (r *BridgeResolver) fromIPAddr(ctx context.Context) (string, error) {
	out, err := commandOutput(ctx, "ip", "-4", "addr", "show", r.Interface)
	if err != nil {
		return "", err
	}
	return parseInetField(string(out))
}

// fromIfconfig parses both modern and legacy ifconfig formats:
//
//	inet 172.17.0.1  netmask 255.255.0.0
//	inet addr:172.17.0.1  Bcast:172.17.255.255
func (r *BridgeResolver) fromIfconfig(ctx context.Context) (string, error) {
	out, err := commandOutput(ctx, "ifconfig", r.Interface)
	if err != nil {
		return "", err
	}
	return parseInetField(string(out))
}

// fromDaemonConfig reads the "bip" key from the Docker daemon
// configuration file.
func (r *BridgeResolver) fromDaemonConfig(context.Context) (string, error) {
	data, err := os.ReadFile(r.DaemonConfigPath)
	if err != nil {
		return "", err
	}
	var cfg struct {
		BIP string `json:"bip"`
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return "", fmt.Errorf("parse %s: %w", r.DaemonConfigPath, err)
	}
	if cfg.BIP == "" {
		return "", nil
	}
	return stripCIDR(cfg.BIP)
}

// fromNetworkInspect asks the running daemon for the bridge gateway.
func (r *BridgeResolver) fromNetworkInspect(ctx context.Context) (string, error) {
	out, err := commandOutput(ctx, "docker", "network", "inspect", r.NetworkName,
		"--format", "{{range .IPAM.Config}}{{.Gateway}}{{end}}")
	if err != nil {
		return "", err
	}
	addr := strings.TrimSpace(string(out))
	if addr == "" {
		return "", nil
	}
	return validateIPv4(addr)
}

// parseInetField extracts the first IPv4 after an "inet" token,
// tolerating both "inet a.b.c.d/nn" and "inet addr:a.b.c.d".
func parseInetField(out string) (string, error) {
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		for i, f := range fields {
			if f != "inet" {
				if strings.HasPrefix(f, "addr:") {
					return stripCIDR(strings.TrimPrefix(f, "addr:"))
				}
				continue
			}
			if i+1 < len(fields) {
				next := fields[i+1]
				if strings.HasPrefix(next, "addr:") {
					next = strings.TrimPrefix(next, "addr:")
				}
				return stripCIDR(next)
			}
		}
	}
	return "", nil
}

// stripCIDR drops a /nn suffix and validates the remainder as IPv4.
func stripCIDR(addr string) (string, error) {
	if idx := strings.Index(addr, "/"); idx >= 0 {
		addr = addr[:idx]
	}
	return validateIPv4(addr)
}

func validateIPv4(addr string) (string, error) {
	ip := net.ParseIP(addr)
	if ip == nil || ip.To4() == nil {
		return "", fmt.Errorf("%q is not an IPv4 address", addr)
	}
	return ip.To4().String(), nil
}
