// Package config loads the static TOML configuration for the QE suite:
// where the Kiali console lives, how to authenticate against it, and which
// namespaces the suite exercises.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"k8s.io/klog/v2"
)

// StaticConfig is the suite configuration read once at startup.
type StaticConfig struct {
	LogLevel int `toml:"log_level,omitzero"`

	// KialiURL is the base URL of the Kiali console API.
	KialiURL string `toml:"kiali_url,omitempty"`
	// KialiInsecure skips TLS verification against the console.
	KialiInsecure bool `toml:"kiali_insecure,omitempty"`
	// CertificateAuthority is a PEM file with the CA that signed the
	// console's serving certificate. Relative paths resolve against the
	// config file's directory.
	CertificateAuthority string `toml:"certificate_authority,omitempty"`
	// BearerToken authenticates REST calls against the console.
	BearerToken string `toml:"bearer_token,omitempty"`

	// KubeConfig is the kubeconfig used for the cluster API collaborator.
	KubeConfig string `toml:"kubeconfig,omitempty"`
	// Namespaces restricts the suite to the given namespaces. Empty means
	// every namespace the console reports.
	Namespaces []string `toml:"namespaces,omitempty"`

	// Internal: the config.toml directory, to help resolve relative file paths
	configDirPath string
}

func Default() *StaticConfig {
	return &StaticConfig{}
}

type ReadConfigOpt func(cfg *StaticConfig)

// WithDirPath returns a ReadConfigOpt that sets the config directory path.
func WithDirPath(path string) ReadConfigOpt {
	return func(cfg *StaticConfig) {
		cfg.configDirPath = path
	}
}

// Read reads the toml file and returns the StaticConfig with any opts applied.
func Read(configPath string, opts ...ReadConfigOpt) (*StaticConfig, error) {
	configData, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path to config file: %w", err)
	}
	klog.V(2).Infof("loading config from: %s", configPath)
	return ReadToml(configData, append([]ReadConfigOpt{WithDirPath(filepath.Dir(absPath))}, opts...)...)
}

// ReadToml reads the toml data and returns the validated StaticConfig.
func ReadToml(configData []byte, opts ...ReadConfigOpt) (*StaticConfig, error) {
	config := Default()
	for _, opt := range opts {
		opt(config)
	}
	md, err := toml.Decode(string(configData), config)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return nil, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	// Resolve the CA file relative to the config directory if needed
	if config.CertificateAuthority != "" && config.configDirPath != "" && !filepath.IsAbs(config.CertificateAuthority) {
		config.CertificateAuthority = filepath.Join(config.configDirPath, config.CertificateAuthority)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *StaticConfig) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.KialiURL != "" {
		u, err := url.Parse(c.KialiURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return errors.New("kiali_url must be a valid URL")
		}
		if strings.EqualFold(u.Scheme, "https") && !c.KialiInsecure && strings.TrimSpace(c.CertificateAuthority) == "" {
			return errors.New("certificate_authority is required for https when kiali_insecure is false")
		}
	}
	if caValue := strings.TrimSpace(c.CertificateAuthority); caValue != "" {
		if _, err := os.Stat(caValue); err != nil {
			return fmt.Errorf("certificate_authority must be a valid file path: %w", err)
		}
	}
	return nil
}
