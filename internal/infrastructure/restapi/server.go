package restapi

import (
	"context"
	"errors"
	"math/big"
	"net"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"contract_cli/internal/domain/entity"
)

// DefaultDeployer is the account devnet contracts are deployed from.
const DefaultDeployer = "0x00000000000000000000000000000000000dE7e7"

const shutdownTimeout = 5 * time.Second

// Config configures a devnet Server.
type Config struct {
	Network   string
	ChainType entity.ChainType
	Deployer  string
	APIKey    string
	RateLimit float64
	Burst     int
}

// Server is a local, in-memory implementation of the contract API.
type Server struct {
	store   *Store
	handler http.Handler
	logger  *zap.Logger
}

// NewServer creates a devnet server.
func NewServer(cfg Config, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Network == "" {
		cfg.Network = "devnet"
	}
	if cfg.ChainType == "" {
		cfg.ChainType = entity.ChainTypePrivate
	}
	if cfg.Deployer == "" {
		cfg.Deployer = DefaultDeployer
	}
	if !common.IsHexAddress(cfg.Deployer) {
		return nil, entity.NewInvalidInput("devnet failed", "invalid deployer address %q", cfg.Deployer)
	}

	logger = logger.Named("Devnet")
	store := NewStore(common.HexToAddress(cfg.Deployer))
	handler := NewContractHandler(store, cfg.Network, cfg.ChainType, logger)
	router := SetupRouter(handler, NewMetrics(), RouterOptions{
		APIKey:    cfg.APIKey,
		RateLimit: cfg.RateLimit,
		Burst:     cfg.Burst,
	}, logger)

	return &Server{store: store, handler: router, logger: logger}, nil
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Fund credits amount to address.
func (s *Server) Fund(address string, amount *big.Int) error {
	return s.store.Fund(address, amount)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Devnet listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down devnet...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// ListenAndServe listens on addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}
