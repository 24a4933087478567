package config

// Built-in defaults. The endpoint order matters: unreachable endpoints are
// reported in exactly this order.
var defaultEndpoints = []string{
	"https://get.kestrel.io",
	"https://packages.kestrel.io",
	"https://registry.kestrel.io",
	"https://license.kestrel.io",
	"https://hub.docker.com",
	"https://download.docker.com",
}

// GetDefaultConfig returns the default configuration for preflight.
func GetDefaultConfig() Config {
	return Config{
		Endpoints: append([]string(nil), defaultEndpoints...),
		Probe: ProbeConfig{
			TimeoutSeconds: 10,
		},
		Kernel: KernelConfig{
			Parameter: "vm.max_map_count",
			Value:     262144,
			ConfPath:  "/etc/sysctl.conf",
		},
		Runtime: RuntimeConfig{
			Binary:    "docker",
			ScriptURL: "https://get.docker.com",
			Version:   "24.0",
		},
		Installer: InstallerConfig{
			ScriptURL: "https://get.kestrel.io/install.sh",
			Tags:      []string{"search", "metrics"},
			UIPort:    8800,
		},
		Storage: StorageConfig{
			DataRoot:             "/var/lib/docker",
			MinFreeGB:            10,
			PromptTimeoutSeconds: 10,
		},
	}
}
