package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"contract_cli/internal/app/service"
	"contract_cli/internal/domain/entity"
	networkdefinition "contract_cli/internal/infrastructure/network/definition"
	"contract_cli/internal/pkg/utils"
)

func newInitCmd(inv *invocation) *cobra.Command {
	return &cobra.Command{
		Use:   "init <name>",
		Short: "Create a new contract project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wd, err := inv.workDir()
			if err != nil {
				return err
			}
			result, err := service.NewProjectService(inv.deps.Logger).Init(wd, args[0], networkdefinition.BuiltinProfiles())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created project %s\n", result.Root)
			for _, dir := range result.Directories {
				fmt.Fprintf(out, "  %s/\n", dir)
			}
			fmt.Fprintf(out, "  %s\n", result.ContractPath)
			fmt.Fprintf(out, "  %s\n", result.ConfigPath)
			fmt.Fprintf(out, "\nNext: cd %s && contract_cli compile\n", args[0])
			return nil
		},
	}
}

func newCompileCmd(inv *invocation) *cobra.Command {
	return &cobra.Command{
		Use:   "compile",
		Short: "List and check the contract sources of the project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, root, err := inv.loadProject()
			if err != nil {
				return err
			}
			report, err := service.NewProjectService(inv.deps.Logger).Compile(root, cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Compiler %s, sources *%s\n", report.CompilerVersion, report.Extension)
			if len(report.Sources) == 0 {
				fmt.Fprintf(out, "No contract sources found in %s\n", filepath.Join(root, service.ContractsDir))
				return nil
			}
			for _, src := range report.Sources {
				rel, err := filepath.Rel(root, src.Path)
				if err != nil {
					rel = src.Path
				}
				if src.LooksLikeContract {
					fmt.Fprintf(out, "  ok       %s\n", rel)
				} else {
					fmt.Fprintf(out, "  warning  %s does not look like a contract\n", rel)
				}
			}
			fmt.Fprintf(out, "Checked %d source(s); no artifacts written to %s\n", len(report.Sources), report.BuildDir)
			return nil
		},
	}
}

func newDeployCmd(inv *invocation) *cobra.Command {
	var (
		network   string
		contracts []string
		rawArgs   []string
	)
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy contract sources to a network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			args, err := parseValues(rawArgs)
			if err != nil {
				return err
			}
			cfg, root, err := inv.loadProject()
			if err != nil {
				return err
			}

			sources := make([]string, 0, len(contracts))
			for _, c := range contracts {
				path, err := inv.resolvePath(c)
				if err != nil {
					return err
				}
				sources = append(sources, path)
			}
			if len(sources) == 0 {
				sources, err = utils.FilesWithExtension(filepath.Join(root, service.ContractsDir), cfg.Compiler.Extension)
				if err != nil {
					return err
				}
			}

			c, err := inv.connectProject(cfg, network)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Deploying %d contract(s) to %s (%s)\n", len(sources), network, c.Config().Endpoint)
			deployed, err := service.NewDeployService(inv.deps.Logger).DeploySources(cmd.Context(), c, sources, args)
			for _, d := range deployed {
				fmt.Fprintf(out, "  %s => %s\n", filepath.Base(d.Source), d.Address)
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&network, "network", "n", networkdefinition.DefaultNetwork, "network to deploy to")
	cmd.Flags().StringArrayVarP(&contracts, "contract", "c", nil, "contract source to deploy (repeatable, default: all)")
	cmd.Flags().StringArrayVarP(&rawArgs, "arg", "a", nil, "constructor argument as type:value (repeatable)")
	return cmd
}

func parseValues(raw []string) ([]entity.Value, error) {
	values := make([]entity.Value, 0, len(raw))
	for _, r := range raw {
		v, err := entity.ParseValue(r)
		if err != nil {
			return nil, entity.NewInvalidInput("invalid argument", "%v", err)
		}
		values = append(values, v)
	}
	return values, nil
}
