package configloader

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"contract_cli/internal/domain/entity"
)

// DefaultConfigFile is the project configuration file name created by init.
const DefaultConfigFile = "chain.config.json"

const (
	defaultProjectVersion    = "0.1.0"
	defaultCompilerVersion   = "0.8.20"
	defaultContractExtension = ".sol"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// CompilerConfig holds compiler settings. Version is persisted for the remote service only.
type CompilerConfig struct {
	Version   string `yaml:"version" json:"version"`
	Extension string `yaml:"extension,omitempty" json:"extension,omitempty"`
}

// NetworkConfig is one entry of the networks mapping.
type NetworkConfig struct {
	Endpoint  string           `yaml:"endpoint" json:"endpoint"`
	ChainType entity.ChainType `yaml:"chainType" json:"chainType"`
}

// ProjectConfig is the project document. init writes JSON; YAML documents with the same keys are also accepted.
type ProjectConfig struct {
	Name     string                   `yaml:"name" json:"name"`
	Version  string                   `yaml:"version" json:"version"`
	Compiler CompilerConfig           `yaml:"compiler" json:"compiler"`
	Networks map[string]NetworkConfig `yaml:"networks" json:"networks"`
}

// Load reads the project configuration file from the given path and unmarshals it.
func Load(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}
	logrus.Debugf("Configuration loaded from %s (%d networks)", path, len(cfg.Networks))
	return cfg, nil
}

// Parse unmarshals a JSON or YAML project document and applies defaults.
func Parse(data []byte) (*ProjectConfig, error) {
	var cfg ProjectConfig
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &cfg); err != nil {
			return nil, err
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := applyDefaults(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *ProjectConfig) error {
	if cfg.Version == "" {
		cfg.Version = defaultProjectVersion
		logrus.Debugf("version not set, defaulting to %s", cfg.Version)
	}
	if cfg.Compiler.Version == "" {
		cfg.Compiler.Version = defaultCompilerVersion
		logrus.Debugf("compiler.version not set, defaulting to %s", cfg.Compiler.Version)
	}
	if cfg.Compiler.Extension == "" {
		cfg.Compiler.Extension = defaultContractExtension
	}
	if cfg.Networks == nil {
		cfg.Networks = make(map[string]NetworkConfig)
	}

	for name, network := range cfg.Networks {
		chainType, err := entity.ParseChainType(string(network.ChainType))
		if err != nil {
			return fmt.Errorf("network %q: %w", name, err)
		}
		network.ChainType = chainType
		if network.Endpoint == "" {
			logrus.Warnf("Network '%s' has no endpoint configured. Commands targeting it will fail.", name)
		}
		cfg.Networks[name] = network
	}
	return nil
}

// Save writes cfg to path as indented JSON, creating parent directories.
func Save(path string, cfg *ProjectConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}

// NewProjectConfig returns the configuration written by init for a new project.
func NewProjectConfig(name string, networks map[string]entity.NetworkProfile) *ProjectConfig {
	cfg := &ProjectConfig{
		Name:    name,
		Version: defaultProjectVersion,
		Compiler: CompilerConfig{
			Version:   defaultCompilerVersion,
			Extension: defaultContractExtension,
		},
		Networks: make(map[string]NetworkConfig, len(networks)),
	}
	for key, p := range networks {
		cfg.Networks[key] = NetworkConfig{Endpoint: p.Endpoint, ChainType: p.ChainType}
	}
	return cfg
}
