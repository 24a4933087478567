package config

// Config is the top-level configuration structure for preflight.
type Config struct {
	Endpoints []string        `yaml:"endpoints,omitempty"` // Vendor endpoints probed before anything else runs
	Probe     ProbeConfig     `yaml:"probe,omitempty"`
	Kernel    KernelConfig    `yaml:"kernel,omitempty"`
	Runtime   RuntimeConfig   `yaml:"runtime,omitempty"`
	Installer InstallerConfig `yaml:"installer,omitempty"`
	Storage   StorageConfig   `yaml:"storage,omitempty"`
}

// ProbeConfig controls the reachability probe.
type ProbeConfig struct {
	TimeoutSeconds int `yaml:"timeoutSeconds,omitempty"` // Per-endpoint request timeout (default: 10)
}

// KernelConfig describes the kernel parameter required by the embedded
// search engine.
type KernelConfig struct {
	Parameter string `yaml:"parameter,omitempty"` // sysctl key (default: vm.max_map_count)
	Value     int    `yaml:"value,omitempty"`     // required minimum value (default: 262144)
	ConfPath  string `yaml:"confPath,omitempty"`  // persistent sysctl file (default: /etc/sysctl.conf)
}

// RuntimeConfig describes the container runtime installation.
type RuntimeConfig struct {
	Binary    string `yaml:"binary,omitempty"`    // runtime binary looked up on PATH (default: docker)
	ScriptURL string `yaml:"scriptURL,omitempty"` // vendor install script (default: https://get.docker.com)
	Version   string `yaml:"version,omitempty"`   // exported as VERSION to the install script
}

// InstallerConfig describes the delegated platform installer.
type InstallerConfig struct {
	ScriptURL string   `yaml:"scriptURL,omitempty"` // installer script (default: https://get.kestrel.io/install.sh)
	Tags      []string `yaml:"tags,omitempty"`      // feature tags passed to the installer
	UIPort    int      `yaml:"uiPort,omitempty"`    // web UI port passed to the installer (default: 8800)
}

// StorageConfig controls the non-production storage warning.
type StorageConfig struct {
	DataRoot             string `yaml:"dataRoot,omitempty"`             // runtime data root checked for capacity (default: /var/lib/docker)
	MinFreeGB            int    `yaml:"minFreeGB,omitempty"`            // free-space floor below which the operator is warned (default: 10)
	PromptTimeoutSeconds int    `yaml:"promptTimeoutSeconds,omitempty"` // bounded wait before continuing (default: 10)
}
