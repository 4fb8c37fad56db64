package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"contract_cli/internal/domain/entity"
	networkdefinition "contract_cli/internal/infrastructure/network/definition"
	"contract_cli/internal/pkg/utils"
)

func addNetworkFlag(cmd *cobra.Command, network *string) {
	cmd.Flags().StringVarP(network, "network", "n", networkdefinition.DefaultNetwork, "network to use")
}

func newCallCmd(inv *invocation) *cobra.Command {
	var (
		network string
		rawArgs []string
	)
	cmd := &cobra.Command{
		Use:   "call <address> <method>",
		Short: "Call a method of a deployed contract",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseValues(rawArgs)
			if err != nil {
				return err
			}
			c, err := inv.connect(network)
			if err != nil {
				return err
			}
			result, err := c.CallContract(cmd.Context(), args[0], entity.CallRequest{Method: args[1], Args: values})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if result.Result != nil {
				fmt.Fprintf(out, "Result: %s\n", result.Result)
			}
			if result.TxHash != "" {
				fmt.Fprintf(out, "Transaction: %s\n", result.TxHash)
			}
			return nil
		},
	}
	addNetworkFlag(cmd, &network)
	cmd.Flags().StringArrayVarP(&rawArgs, "arg", "a", nil, "call argument as type:value (repeatable)")
	return cmd
}

func newContractCmd(inv *invocation) *cobra.Command {
	var network string
	cmd := &cobra.Command{
		Use:   "contract <address>",
		Short: "Show a deployed contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := inv.connect(network)
			if err != nil {
				return err
			}
			record, err := c.GetContract(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Address:    %s\n", record.Address)
			if record.ChainType != "" {
				fmt.Fprintf(out, "Chain type: %s\n", record.ChainType)
			}
			if record.Deployer != "" {
				fmt.Fprintf(out, "Deployer:   %s\n", record.Deployer)
			}
			if record.DeployedAt != "" {
				fmt.Fprintf(out, "Deployed:   %s\n", record.DeployedAt)
			}
			fmt.Fprintf(out, "Code:       %d bytes\n", len(record.Code))
			return nil
		},
	}
	addNetworkFlag(cmd, &network)
	return cmd
}

func newBalanceCmd(inv *invocation) *cobra.Command {
	var network string
	cmd := &cobra.Command{
		Use:   "balance <address>",
		Short: "Show the balance of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := inv.connect(network)
			if err != nil {
				return err
			}
			balance, err := c.GetBalance(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", args[0], utils.FormatAmount(balance))
			return nil
		},
	}
	addNetworkFlag(cmd, &network)
	return cmd
}

func newStatusCmd(inv *invocation) *cobra.Command {
	var network string
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the status of a network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := inv.connect(network)
			if err != nil {
				return err
			}
			status, err := c.GetNetworkStatus(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Network:      %s (%s)\n", network, c.Config().Endpoint)
			fmt.Fprintf(out, "Status:       %s\n", status.Status)
			fmt.Fprintf(out, "Block height: %d\n", status.BlockHeight)
			return nil
		},
	}
	addNetworkFlag(cmd, &network)
	return cmd
}
