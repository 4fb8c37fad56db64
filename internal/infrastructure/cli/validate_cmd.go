package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"contract_cli/internal/app/service"
	"contract_cli/internal/domain/entity"
	networkdefinition "contract_cli/internal/infrastructure/network/definition"
	"contract_cli/internal/infrastructure/walletloader"
	"contract_cli/internal/pkg/utils"
)

func newValidateCmd(inv *invocation) *cobra.Command {
	var (
		network     string
		addresses   []string
		addressFile string
		endpoints   []string
		allNetworks bool
	)
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check validator stake and network connectivity",
		Long: `Check validator stake and network connectivity.

With --address or --address-file, the balance of each account on --network is
compared with the minimum validator stake. Connectivity is then probed on every
--endpoint. Without --endpoint only the --network endpoint is probed, or every
configured network with --all-networks. At least half of the probed endpoints
must answer for validation to pass. The testnet and mainnet entries written by
init are placeholders, so --all-networks fails until they point at live nodes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			opts := []service.ValidatorOption{service.WithProbeAPIKey(inv.apiKey)}
			if inv.deps.ProbeTimeout > 0 {
				opts = append(opts, service.WithProbeTimeout(inv.deps.ProbeTimeout))
			}
			validator := service.NewValidatorService(inv.deps.ClientProvider, inv.deps.Logger, opts...)

			accounts := utils.UniqueStrings(addresses)
			if addressFile != "" {
				path, err := inv.resolvePath(addressFile)
				if err != nil {
					return err
				}
				loaded, err := walletloader.NewValidatorFileLoader(inv.deps.Logger).LoadFile(path)
				if err != nil {
					return err
				}
				accounts = utils.UniqueStrings(append(accounts, loaded...))
			}

			if len(accounts) > 0 {
				c, err := inv.connect(network)
				if err != nil {
					return err
				}
				for _, address := range accounts {
					stake, err := validator.CheckStakeRequirement(ctx, c, address)
					if err != nil {
						return err
					}
					if stake.Sufficient {
						fmt.Fprintf(out, "Stake: %s has %s (required %s)\n",
							address, utils.FormatAmount(stake.Balance), utils.FormatAmount(stake.Required))
					} else {
						fmt.Fprintf(out, "Stake: %v: %s has %s, required %s\n", entity.KindInsufficientStake,
							address, utils.FormatAmount(stake.Balance), utils.FormatAmount(stake.Required))
					}
				}
			}

			targets := utils.UniqueStrings(endpoints)
			if len(targets) == 0 {
				resolver, err := inv.resolver()
				if err != nil {
					return err
				}
				if allNetworks {
					targets = utils.UniqueStrings(resolver.Endpoints())
				} else {
					profile, err := resolver.Resolve(network)
					if err != nil {
						return err
					}
					targets = []string{profile.Endpoint}
				}
			}

			result, err := validator.ValidateNetworkConnectivity(ctx, targets)
			if err != nil {
				return err
			}
			for _, p := range result.Probes {
				if p.Reachable {
					fmt.Fprintf(out, "  reachable    %s (block %d)\n", p.Endpoint, p.Status.BlockHeight)
				} else {
					fmt.Fprintf(out, "  unreachable  %s: %v\n", p.Endpoint, p.Err)
				}
			}
			fmt.Fprintf(out, "Connectivity: %d/%d endpoints reachable (%.1f%%)\n",
				result.ReachableCount, result.TotalCount, result.Percentage)

			if !result.Passed() {
				return &entity.ChainError{
					Kind:    entity.KindValidationFailed,
					Op:      "validation failed",
					Message: fmt.Sprintf("%.1f%% of endpoints reachable, %.0f%% required", result.Percentage, entity.ConnectivityThreshold),
				}
			}
			fmt.Fprintln(out, "Validation passed")
			return nil
		},
	}
	cmd.Flags().StringVarP(&network, "network", "n", networkdefinition.DefaultNetwork, "network used for the stake check and the default probe")
	cmd.Flags().StringArrayVar(&addresses, "address", nil, "validator account to check the stake of (repeatable)")
	cmd.Flags().StringVar(&addressFile, "address-file", "", "file with one validator account per line")
	cmd.Flags().StringArrayVarP(&endpoints, "endpoint", "e", nil, "endpoint to probe (repeatable, default: the --network endpoint)")
	cmd.Flags().BoolVar(&allNetworks, "all-networks", false, "probe every configured network when no --endpoint is given")
	return cmd
}
