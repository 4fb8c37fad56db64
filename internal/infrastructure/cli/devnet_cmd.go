package cli

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"contract_cli/internal/domain/entity"
	"contract_cli/internal/infrastructure/restapi"
	"contract_cli/internal/pkg/utils"
)

func newDevnetCmd(inv *invocation) *cobra.Command {
	var (
		addr      string
		name      string
		chainType string
		funds     []string
		rateLimit float64
		burst     int
	)
	cmd := &cobra.Command{
		Use:   "devnet",
		Short: "Run a local in-memory contract API",
		Long: `Run a local in-memory implementation of the contract API.

Contracts deployed to the devnet live until it stops. Accounts can be funded at
startup with --fund address=amount so that validate --address has something to
check. The server stops on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ct, err := entity.ParseChainType(chainType)
			if err != nil {
				return entity.NewInvalidInput("devnet failed", "%v", err)
			}

			gin.SetMode(gin.ReleaseMode)
			srv, err := restapi.NewServer(restapi.Config{
				Network:   name,
				ChainType: ct,
				APIKey:    inv.apiKey,
				RateLimit: rateLimit,
				Burst:     burst,
			}, inv.deps.ZapLogger)
			if err != nil {
				return err
			}

			for _, f := range funds {
				address, raw, ok := strings.Cut(f, "=")
				if !ok {
					return entity.NewInvalidInput("devnet failed", "--fund %q must be address=amount", f)
				}
				amount, err := utils.ParseAmount(raw)
				if err != nil {
					return entity.NewInvalidInput("devnet failed", "--fund %q: %v", f, err)
				}
				if err := srv.Fund(address, amount); err != nil {
					return entity.NewInvalidInput("devnet failed", "%v", err)
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.OutOrStdout(), "Devnet %q (%s) listening on http://%s\n", name, ct, addr)
			return srv.ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:7545", "listen address")
	cmd.Flags().StringVar(&name, "name", "devnet", "network name reported by /health")
	cmd.Flags().StringVar(&chainType, "chain-type", string(entity.ChainTypePrivate), "chain type reported by /health")
	cmd.Flags().StringArrayVar(&funds, "fund", nil, "initial balance as address=amount (repeatable)")
	cmd.Flags().Float64Var(&rateLimit, "rate-limit", 0, "requests per second, 0 disables limiting")
	cmd.Flags().IntVar(&burst, "burst", 10, "rate limiter burst size")
	return cmd
}
