package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"contract_cli/internal/app/port"
	"contract_cli/internal/app/service"
	"contract_cli/internal/infrastructure/configloader"
	"contract_cli/internal/infrastructure/network/client"
	networkdefinition "contract_cli/internal/infrastructure/network/definition"
	"contract_cli/internal/pkg/logger"
)

// Dependencies are everything a Dispatcher needs from the process.
type Dependencies struct {
	// Out receives user-facing output. Err receives the final error line; nil means Out.
	Out io.Writer
	Err io.Writer

	Logger    port.Logger
	ZapLogger *zap.Logger
	Settings  configloader.Settings
	// WorkDir anchors relative paths. Empty means the process working directory.
	WorkDir string
	Version string

	// ClientProvider builds API clients. Nil means the HTTP client.
	ClientProvider port.ContractAPIClientProvider
	// ProbeTimeout overrides service.DefaultProbeTimeout when positive.
	ProbeTimeout time.Duration
}

// Dispatcher maps command lines to the services. It holds no state between runs.
type Dispatcher struct {
	deps Dependencies
}

// NewDispatcher fills unset dependencies with defaults.
func NewDispatcher(deps Dependencies) *Dispatcher {
	if deps.Out == nil {
		deps.Out = io.Discard
	}
	if deps.Err == nil {
		deps.Err = deps.Out
	}
	if deps.Logger == nil {
		deps.Logger = logger.NewNopLogger()
	}
	if deps.ZapLogger == nil {
		deps.ZapLogger = zap.NewNop()
	}
	if deps.Settings.ConfigPath == "" {
		deps.Settings.ConfigPath = configloader.DefaultConfigFile
	}
	if deps.Version == "" {
		deps.Version = "dev"
	}
	if deps.ClientProvider == nil {
		deps.ClientProvider = client.NewAPIClientProvider(deps.ZapLogger, deps.Logger)
	}
	return &Dispatcher{deps: deps}
}

// Run executes one command line. A non-nil error has already been printed.
func (d *Dispatcher) Run(ctx context.Context, args []string) error {
	root := d.newRootCmd()
	root.SetArgs(args)
	root.SetOut(d.deps.Out)
	root.SetErr(d.deps.Err)

	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(d.deps.Err, "Error: %v\n", err)
	}
	return err
}

// ExitCode maps the result of Run to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

// invocation carries the global flags of a single Run.
type invocation struct {
	deps       Dependencies
	configPath string
	apiKey     string
}

func (d *Dispatcher) newRootCmd() *cobra.Command {
	inv := &invocation{deps: d.deps}

	root := &cobra.Command{
		Use:           "contract_cli",
		Short:         "Scaffold smart-contract projects and deploy them through a blockchain API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&inv.configPath, "config", d.deps.Settings.ConfigPath, "path to the project configuration file")
	root.PersistentFlags().StringVar(&inv.apiKey, "api-key", d.deps.Settings.APIKey, "bearer token sent to the API")

	root.AddCommand(
		newInitCmd(inv),
		newCompileCmd(inv),
		newDeployCmd(inv),
		newValidateCmd(inv),
		newVersionCmd(inv),
		newCallCmd(inv),
		newContractCmd(inv),
		newBalanceCmd(inv),
		newStatusCmd(inv),
		newNetworksCmd(inv),
		newDevnetCmd(inv),
	)
	return root
}

func (inv *invocation) workDir() (string, error) {
	if inv.deps.WorkDir != "" {
		return inv.deps.WorkDir, nil
	}
	return os.Getwd()
}

func (inv *invocation) resolvePath(path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}
	wd, err := inv.workDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, path), nil
}

// loadProject loads the configuration and returns it with the project root.
func (inv *invocation) loadProject() (*configloader.ProjectConfig, string, error) {
	path, err := inv.resolvePath(inv.configPath)
	if err != nil {
		return nil, "", err
	}
	cfg, err := configloader.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", fmt.Errorf("no project configuration at %s (run init first): %w", path, err)
		}
		return nil, "", err
	}
	return cfg, filepath.Dir(path), nil
}

func (inv *invocation) resolver() (*networkdefinition.ProfileResolver, error) {
	cfg, _, err := inv.loadProject()
	if err != nil {
		return nil, err
	}
	return networkdefinition.NewProfileResolver(cfg, inv.deps.Logger), nil
}

func (inv *invocation) connect(network string) (port.ContractAPIClient, error) {
	cfg, _, err := inv.loadProject()
	if err != nil {
		return nil, err
	}
	return inv.connectProject(cfg, network)
}

func (inv *invocation) connectProject(cfg *configloader.ProjectConfig, network string) (port.ContractAPIClient, error) {
	resolver := networkdefinition.NewProfileResolver(cfg, inv.deps.Logger)
	connector := service.NewConnector(resolver, inv.deps.ClientProvider, inv.apiKey, inv.deps.Settings.RequestTimeout)
	_, c, err := connector.Connect(network)
	return c, err
}
