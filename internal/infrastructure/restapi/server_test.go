package restapi_test

import (
	"context"
	"io"
	"math/big"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"contract_cli/internal/domain/entity"
	"contract_cli/internal/infrastructure/network/client"
	"contract_cli/internal/infrastructure/restapi"
)

const validator = "0x1111111111111111111111111111111111111111"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func startDevnet(t *testing.T, cfg restapi.Config) (*restapi.Server, string) {
	t.Helper()
	srv, err := restapi.NewServer(cfg, zap.NewNop())
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts.URL
}

func apiClient(t *testing.T, endpoint, apiKey string) *client.APIClient {
	t.Helper()
	c, err := client.NewAPIClient(entity.ClientConfig{
		Endpoint:       endpoint,
		ChainType:      entity.ChainTypePrivate,
		APIKey:         apiKey,
		RequestTimeout: 5 * time.Second,
	}, nil)
	require.NoError(t, err)
	return c
}

func TestDeployAndFetch(t *testing.T) {
	_, url := startDevnet(t, restapi.Config{})
	c := apiClient(t, url, "")
	ctx := context.Background()

	first, err := c.DeployContract(ctx, entity.DeployRequest{Code: "contract A {}"})
	require.NoError(t, err)
	second, err := c.DeployContract(ctx, entity.DeployRequest{Code: "contract B {}"})
	require.NoError(t, err)

	deployer := common.HexToAddress(restapi.DefaultDeployer)
	require.Equal(t, crypto.CreateAddress(deployer, 0).Hex(), first)
	require.Equal(t, crypto.CreateAddress(deployer, 1).Hex(), second)

	record, err := c.GetContract(ctx, first)
	require.NoError(t, err)
	require.Equal(t, "contract A {}", record.Code)
	require.Equal(t, entity.ChainTypePrivate, record.ChainType)
	require.Equal(t, deployer.Hex(), record.Deployer)
	require.NotEmpty(t, record.DeployedAt)

	status, err := c.GetNetworkStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", status.Status)
	require.Equal(t, "devnet", status.Network)
	require.Equal(t, uint64(2), status.BlockHeight)
}

func TestGetUnknownContract(t *testing.T) {
	_, url := startDevnet(t, restapi.Config{})

	_, err := apiClient(t, url, "").GetContract(context.Background(), "0x2222222222222222222222222222222222222222")
	require.ErrorIs(t, err, entity.ErrRemoteRejection)
	require.EqualError(t, err, "failed to fetch contract: contract not found")
}

func TestDeployRejectsEmptyCode(t *testing.T) {
	_, url := startDevnet(t, restapi.Config{})

	resp, err := http.Post(url+"/api/contracts/deploy", "application/json", strings.NewReader(`{"code":""}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.JSONEq(t, `{"message":"contract code is empty"}`, string(body))
}

func TestCallContract(t *testing.T) {
	_, url := startDevnet(t, restapi.Config{})
	c := apiClient(t, url, "")
	ctx := context.Background()

	address, err := c.DeployContract(ctx, entity.DeployRequest{Code: "contract A {}"})
	require.NoError(t, err)

	result, err := c.CallContract(ctx, address, entity.CallRequest{Method: "ping"})
	require.NoError(t, err)
	require.Equal(t, entity.StringValue("pong"), *result.Result)

	result, err = c.CallContract(ctx, address, entity.CallRequest{Method: "echo", Args: []entity.Value{entity.IntValue(9)}})
	require.NoError(t, err)
	require.Equal(t, entity.IntValue(9), *result.Result)

	result, err = c.CallContract(ctx, address, entity.CallRequest{Method: "setMessage"})
	require.NoError(t, err)
	require.Nil(t, result.Result)
	require.Len(t, result.TxHash, 66)

	_, err = c.CallContract(ctx, "0x3333333333333333333333333333333333333333", entity.CallRequest{Method: "ping"})
	require.ErrorIs(t, err, entity.ErrRemoteRejection)
	require.Contains(t, err.Error(), "contract not found")
}

func TestBalances(t *testing.T) {
	srv, url := startDevnet(t, restapi.Config{})
	require.NoError(t, srv.Fund(validator, big.NewInt(60000)))
	require.NoError(t, srv.Fund(validator, big.NewInt(40000)))
	require.Error(t, srv.Fund("nope", big.NewInt(1)))
	require.Error(t, srv.Fund(validator, big.NewInt(-1)))

	c := apiClient(t, url, "")
	balance, err := c.GetBalance(context.Background(), validator)
	require.NoError(t, err)
	require.Equal(t, 0, balance.Cmp(big.NewInt(100000)))

	balance, err = c.GetBalance(context.Background(), "0x4444444444444444444444444444444444444444")
	require.NoError(t, err)
	require.Zero(t, balance.Sign())

	_, err = c.GetBalance(context.Background(), "not-an-address")
	require.ErrorIs(t, err, entity.ErrRemoteRejection)
}

func TestAPIKeyRequired(t *testing.T) {
	_, url := startDevnet(t, restapi.Config{APIKey: "secret"})
	ctx := context.Background()

	_, err := apiClient(t, url, "").DeployContract(ctx, entity.DeployRequest{Code: "contract A {}"})
	require.ErrorIs(t, err, entity.ErrRemoteRejection)
	require.Contains(t, err.Error(), "unauthorized")

	_, err = apiClient(t, url, "wrong").GetBalance(ctx, validator)
	require.ErrorIs(t, err, entity.ErrRemoteRejection)

	_, err = apiClient(t, url, "secret").DeployContract(ctx, entity.DeployRequest{Code: "contract A {}"})
	require.NoError(t, err)

	// Health stays open for probes without credentials.
	_, err = apiClient(t, url, "").GetNetworkStatus(ctx)
	require.NoError(t, err)
}

func TestRateLimit(t *testing.T) {
	_, url := startDevnet(t, restapi.Config{RateLimit: 0.001, Burst: 1})
	c := apiClient(t, url, "")

	_, err := c.GetNetworkStatus(context.Background())
	require.NoError(t, err)

	_, err = c.GetNetworkStatus(context.Background())
	require.ErrorIs(t, err, entity.ErrRemoteRejection)
	require.Contains(t, err.Error(), "rate limit exceeded")
}

func TestMetricsEndpoint(t *testing.T) {
	_, url := startDevnet(t, restapi.Config{})
	_, err := apiClient(t, url, "").GetNetworkStatus(context.Background())
	require.NoError(t, err)

	resp, err := http.Get(url + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), `devnet_requests_total{method="GET",route="/health",status="200"} 1`)
}

func TestSwaggerUI(t *testing.T) {
	_, url := startDevnet(t, restapi.Config{APIKey: "secret"})

	get := func(path string) (int, string) {
		resp, err := http.Get(url + path)
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, string(body)
	}

	status, body := get("/docs/swagger.yaml")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, "/api/contracts/deploy:")
	require.Contains(t, body, "/api/wallet/balance/{address}:")

	status, body = get("/swagger/index.html")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, "swagger-ui")
}

func TestNewServerRejectsBadDeployer(t *testing.T) {
	_, err := restapi.NewServer(restapi.Config{Deployer: "0x12"}, nil)
	require.ErrorIs(t, err, entity.ErrInvalidInput)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	srv, err := restapi.NewServer(restapi.Config{Network: "local-dev", ChainType: entity.ChainTypePublic}, nil)
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	status, err := apiClient(t, "http://"+ln.Addr().String(), "").GetNetworkStatus(context.Background())
	require.NoError(t, err)
	require.Equal(t, "local-dev", status.Network)
	require.Equal(t, entity.ChainTypePublic, status.ChainType)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
