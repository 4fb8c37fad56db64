package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"contract_cli/internal/app/service"
	"contract_cli/internal/domain/entity"
	"contract_cli/internal/infrastructure/configloader"
	networkdefinition "contract_cli/internal/infrastructure/network/definition"
	"contract_cli/internal/pkg/logger"
)

func writeSources(t *testing.T, names ...string) []string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("contract "+name+" {}"), 0o644))
		paths = append(paths, path)
	}
	return paths
}

func TestDeploySources(t *testing.T) {
	sources := writeSources(t, "A.sol", "B.sol")
	args := []entity.Value{entity.StringValue("hello")}

	c := &mockClient{cfg: entity.ClientConfig{ChainType: entity.ChainTypePrivate}}
	c.On("DeployContract", mock.Anything, entity.DeployRequest{
		Code: "contract A.sol {}", ConstructorArgs: args, ChainType: entity.ChainTypePrivate,
	}).Return("0xa", nil).Once()
	c.On("DeployContract", mock.Anything, entity.DeployRequest{
		Code: "contract B.sol {}", ConstructorArgs: args, ChainType: entity.ChainTypePrivate,
	}).Return("0xb", nil).Once()

	deployed, err := service.NewDeployService(logger.NewNopLogger()).DeploySources(context.Background(), c, sources, args)
	require.NoError(t, err)
	require.Equal(t, []service.DeployedContract{
		{Source: sources[0], Address: "0xa"},
		{Source: sources[1], Address: "0xb"},
	}, deployed)
	c.AssertExpectations(t)
}

func TestDeploySourcesStopsAtFirstFailure(t *testing.T) {
	sources := writeSources(t, "A.sol", "B.sol", "C.sol")
	rejection := &entity.ChainError{Kind: entity.KindRemoteRejection, Op: "deployment failed", Message: "bad code"}

	c := &mockClient{}
	c.On("DeployContract", mock.Anything, mock.MatchedBy(func(r entity.DeployRequest) bool {
		return r.Code == "contract A.sol {}"
	})).Return("0xa", nil)
	c.On("DeployContract", mock.Anything, mock.MatchedBy(func(r entity.DeployRequest) bool {
		return r.Code == "contract B.sol {}"
	})).Return("", rejection)

	deployed, err := service.NewDeployService(logger.NewNopLogger()).DeploySources(context.Background(), c, sources, nil)
	require.ErrorIs(t, err, entity.ErrRemoteRejection)
	require.Contains(t, err.Error(), "bad code")
	require.Contains(t, err.Error(), "B.sol")
	require.Len(t, deployed, 1)
	c.AssertNumberOfCalls(t, "DeployContract", 2)
}

func TestDeploySourcesNothingToDeploy(t *testing.T) {
	_, err := service.NewDeployService(logger.NewNopLogger()).DeploySources(context.Background(), &mockClient{}, nil, nil)
	require.ErrorIs(t, err, entity.ErrInvalidInput)
}

func TestDeploySourcesMissingFile(t *testing.T) {
	c := &mockClient{}
	_, err := service.NewDeployService(logger.NewNopLogger()).
		DeploySources(context.Background(), c, []string{filepath.Join(t.TempDir(), "Gone.sol")}, nil)
	require.ErrorIs(t, err, os.ErrNotExist)
	c.AssertNotCalled(t, "DeployContract", mock.Anything, mock.Anything)
}

func testResolver() *networkdefinition.ProfileResolver {
	cfg := configloader.NewProjectConfig("demo", networkdefinition.BuiltinProfiles())
	return networkdefinition.NewProfileResolver(cfg, logger.NewNopLogger())
}

func TestConnectorConnect(t *testing.T) {
	provider := &recordingProvider{client: &mockClient{}}
	connector := service.NewConnector(testResolver(), provider, "key", 3*time.Second)

	profile, c, err := connector.Connect("testnet")
	require.NoError(t, err)
	require.Same(t, provider.client, c)
	require.Equal(t, networkdefinition.Testnet, profile)
	require.Equal(t, []entity.ClientConfig{{
		Endpoint:       networkdefinition.Testnet.Endpoint,
		ChainType:      entity.ChainTypePublic,
		APIKey:         "key",
		RequestTimeout: 3 * time.Second,
	}}, provider.configs)
}

func TestConnectorUnknownNetwork(t *testing.T) {
	provider := &recordingProvider{client: &mockClient{}}
	_, c, err := service.NewConnector(testResolver(), provider, "", 0).Connect("nowhere")
	require.ErrorIs(t, err, entity.ErrNetworkNotFound)
	require.Nil(t, c)
	require.Empty(t, provider.configs)
}

func TestConnectorProviderFailure(t *testing.T) {
	provider := &recordingProvider{err: errors.New("boom")}
	_, _, err := service.NewConnector(testResolver(), provider, "", 0).Connect("local")
	require.EqualError(t, err, "boom")
}
