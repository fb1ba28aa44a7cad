// Package config holds the swnetcfg run configuration: where the managed
// files live and how the wizard behaves. Values come from built-in
// defaults, an optional YAML file, environment variables and flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/swnetcfg/pkg/defaults"
	swerrors "github.com/NVIDIA/swnetcfg/pkg/errors"
)

var (
	ErrConfigFileUnreadable     = errors.New("config file is unreadable")
	ErrConfigFileUnmarshallable = errors.New("config file is unmarshallable")
	ErrMaxAttemptsInvalid       = errors.New("maxAttempts must be at least 1")
	ErrProbeTimeoutInvalid      = errors.New("probeTimeout must be positive")
	ErrPathMissing              = errors.New("managed file path is empty")
)

// Paths locates the managed configuration files.
type Paths struct {
	FramestoreMap string `yaml:"framestoreMap"`
	StorageConfig string `yaml:"storageConfig"`
	NetworkConfig string `yaml:"networkConfig"`
}

// Config is the complete run configuration.
type Config struct {
	Paths Paths `yaml:"paths"`

	// Hostname is the framestore name; empty means os.Hostname().
	Hostname string `yaml:"hostname,omitempty"`

	// DisplayName is written to network.cfg when set.
	DisplayName string `yaml:"displayName,omitempty"`

	ExcludeInterfaces []string      `yaml:"excludeInterfaces,omitempty"`
	SkipProbe         bool          `yaml:"skipProbe"`
	ProbeTimeout      time.Duration `yaml:"probeTimeout"`
	MaxAttempts       int           `yaml:"maxAttempts"`

	DryRun          bool     `yaml:"dryRun"`
	RestartServices bool     `yaml:"restartServices"`
	Services        []string `yaml:"services,omitempty"`

	MetricsFile string `yaml:"metricsFile,omitempty"`
	ReportFile  string `yaml:"reportFile,omitempty"`
}

// Option is a functional option for configuring Config instances.
type Option func(*Config)

// WithFramestoreMap overrides the sw_framestore_map path.
func WithFramestoreMap(path string) Option {
	return func(c *Config) { c.Paths.FramestoreMap = path }
}

// WithStorageConfig overrides the sw_storage.cfg path.
func WithStorageConfig(path string) Option {
	return func(c *Config) { c.Paths.StorageConfig = path }
}

// WithNetworkConfig overrides the network.cfg path.
func WithNetworkConfig(path string) Option {
	return func(c *Config) { c.Paths.NetworkConfig = path }
}

// WithHostname sets the framestore name.
func WithHostname(name string) Option {
	return func(c *Config) { c.Hostname = name }
}

// WithDisplayName sets the network.cfg DisplayName.
func WithDisplayName(name string) Option {
	return func(c *Config) { c.DisplayName = name }
}

// WithExcludeInterfaces replaces the interface exclusion patterns.
func WithExcludeInterfaces(patterns []string) Option {
	return func(c *Config) { c.ExcludeInterfaces = patterns }
}

// WithSkipProbe disables the reachability gate.
func WithSkipProbe(skip bool) Option {
	return func(c *Config) { c.SkipProbe = skip }
}

// WithProbeTimeout sets the per-address probe timeout.
func WithProbeTimeout(d time.Duration) Option {
	return func(c *Config) { c.ProbeTimeout = d }
}

// WithMaxAttempts bounds invalid answers per prompt.
func WithMaxAttempts(n int) Option {
	return func(c *Config) { c.MaxAttempts = n }
}

// WithDryRun renders without backing up or writing.
func WithDryRun(dry bool) Option {
	return func(c *Config) { c.DryRun = dry }
}

// WithRestartServices enables restarting services after a successful run.
func WithRestartServices(restart bool) Option {
	return func(c *Config) { c.RestartServices = restart }
}

// WithServices replaces the systemd units to restart.
func WithServices(units []string) Option {
	return func(c *Config) { c.Services = units }
}

// WithMetricsFile sets the node-exporter textfile output path.
func WithMetricsFile(path string) Option {
	return func(c *Config) { c.MetricsFile = path }
}

// WithReportFile sets the run report output path.
func WithReportFile(path string) Option {
	return func(c *Config) { c.ReportFile = path }
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Paths: Paths{
			FramestoreMap: defaults.FramestoreMapPath,
			StorageConfig: defaults.StorageConfigPath,
			NetworkConfig: defaults.NetworkConfigPath,
		},
		ExcludeInterfaces: append([]string(nil), defaults.ExcludedInterfaces...),
		ProbeTimeout:      defaults.ProbeTimeout,
		MaxAttempts:       defaults.MaxSelectionAttempts,
		Services:          append([]string(nil), defaults.Services...),
	}
}

// New returns the default configuration with opts applied.
func New(opts ...Option) *Config {
	c := Default()
	c.Apply(opts...)
	return c
}

// Apply applies opts in order.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// Load reads a YAML file over the defaults. Keys absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	c := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, swerrors.WrapWithContext(swerrors.ErrCodeNotFound,
				fmt.Sprintf("unable to locate config file %s", path), err, map[string]any{"path": path})
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigFileUnreadable, path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigFileUnmarshallable, path, err)
	}

	return c, nil
}

// Validate checks values that do not depend on the filesystem.
func (c *Config) Validate() error {
	if c.MaxAttempts < 1 {
		return swerrors.Wrap(swerrors.ErrCodeInvalidRequest, "invalid configuration", ErrMaxAttemptsInvalid)
	}
	if c.ProbeTimeout <= 0 {
		return swerrors.Wrap(swerrors.ErrCodeInvalidRequest, "invalid configuration", ErrProbeTimeoutInvalid)
	}
	for _, np := range c.Paths.ordered() {
		if strings.TrimSpace(np.path) == "" {
			return swerrors.Wrap(swerrors.ErrCodeInvalidRequest, fmt.Sprintf("invalid configuration: %s", np.name), ErrPathMissing)
		}
	}
	return nil
}

// ValidatePaths checks that every managed file exists and is a regular
// file. The first missing file is reported with ErrCodeNotFound.
func (c *Config) ValidatePaths() error {
	for _, np := range c.Paths.ordered() {
		info, err := os.Stat(np.path)
		if err != nil {
			if os.IsNotExist(err) {
				return swerrors.WrapWithContext(swerrors.ErrCodeNotFound,
					fmt.Sprintf("unable to locate %s at %s", np.name, np.path), err,
					map[string]any{"file": np.name, "path": np.path})
			}
			return swerrors.Wrap(swerrors.ErrCodeInternal, fmt.Sprintf("failed to stat %s", np.path), err)
		}
		if !info.Mode().IsRegular() {
			return swerrors.Newf(swerrors.ErrCodeInvalidRequest, "%s at %s is not a regular file", np.name, np.path)
		}
	}
	return nil
}

// ResolveHostname returns Hostname or, when empty, the system host name.
func (c *Config) ResolveHostname() (string, error) {
	if c.Hostname != "" {
		return c.Hostname, nil
	}
	h, err := os.Hostname()
	if err != nil || h == "" {
		return "", swerrors.Wrap(swerrors.ErrCodeInternal, "unable to obtain hostname", err)
	}
	return h, nil
}

type namedPath struct {
	name string
	path string
}

func (p Paths) ordered() []namedPath {
	return []namedPath{
		{"sw_framestore_map", p.FramestoreMap},
		{"sw_storage.cfg", p.StorageConfig},
		{"network.cfg", p.NetworkConfig},
	}
}
