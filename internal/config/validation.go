package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks a loaded configuration for values the pipeline cannot
// work with. Defaults always validate.
func Validate(c Config) error {
	if len(c.Endpoints) == 0 {
		return fmt.Errorf("endpoints: at least one endpoint is required")
	}
	for i, e := range c.Endpoints {
		if err := validateURL(e); err != nil {
			return fmt.Errorf("endpoints[%d]: %w", i, err)
		}
	}
	if c.Probe.TimeoutSeconds <= 0 {
		return fmt.Errorf("probe.timeoutSeconds must be positive, got %d", c.Probe.TimeoutSeconds)
	}
	if strings.TrimSpace(c.Kernel.Parameter) == "" {
		return fmt.Errorf("kernel.parameter is required")
	}
	if c.Kernel.Value <= 0 {
		return fmt.Errorf("kernel.value must be positive, got %d", c.Kernel.Value)
	}
	if c.Kernel.ConfPath == "" {
		return fmt.Errorf("kernel.confPath is required")
	}
	if c.Runtime.Binary == "" {
		return fmt.Errorf("runtime.binary is required")
	}
	if err := validateURL(c.Runtime.ScriptURL); err != nil {
		return fmt.Errorf("runtime.scriptURL: %w", err)
	}
	if err := validateURL(c.Installer.ScriptURL); err != nil {
		return fmt.Errorf("installer.scriptURL: %w", err)
	}
	if c.Installer.UIPort <= 0 || c.Installer.UIPort > 65535 {
		return fmt.Errorf("installer.uiPort must be in 1-65535, got %d", c.Installer.UIPort)
	}
	if c.Storage.PromptTimeoutSeconds <= 0 {
		return fmt.Errorf("storage.promptTimeoutSeconds must be positive, got %d", c.Storage.PromptTimeoutSeconds)
	}
	return nil
}

func validateURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("URL is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL %q must use http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("URL %q has no host", raw)
	}
	return nil
}
