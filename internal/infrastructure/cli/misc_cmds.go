package cli

import (
	"fmt"
	"runtime"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	networkdefinition "contract_cli/internal/infrastructure/network/definition"
)

func newVersionCmd(inv *invocation) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "contract_cli %s (%s %s/%s)\n", inv.deps.Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}

func newNetworksCmd(inv *invocation) *cobra.Command {
	return &cobra.Command{
		Use:   "networks",
		Short: "List the configured networks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resolver, err := inv.resolver()
			if err != nil {
				return err
			}
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Name", "Chain Type", "Endpoint")
			for _, name := range resolver.Names() {
				p, err := resolver.Resolve(name)
				if err != nil {
					return err
				}
				if name == networkdefinition.DefaultNetwork {
					name += " (default)"
				}
				if err := table.Append([]string{name, string(p.ChainType), p.Endpoint}); err != nil {
					return err
				}
			}
			return table.Render()
		},
	}
}
