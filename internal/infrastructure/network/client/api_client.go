package client

import (
	"context"
	"fmt"
	"math/big"
	"net/url"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"contract_cli/internal/app/port"
	"contract_cli/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// User-facing prefixes of the errors returned by each operation.
const (
	OpDeploy      = "deployment failed"
	OpGetContract = "failed to fetch contract"
	OpCall        = "contract call failed"
	OpStatus      = "network unreachable"
	OpBalance     = "balance check failed"
)

// Wire paths relative to the endpoint.
const (
	pathDeploy   = "/api/contracts/deploy"
	pathContract = "/api/contracts/%s"
	pathCall     = "/api/contracts/%s/call"
	pathHealth   = "/health"
	pathBalance  = "/api/wallet/balance/%s"
)

// APIClient implements port.ContractAPIClient over plain HTTP/JSON.
type APIClient struct {
	client  *fasthttp.Client
	cfg     entity.ClientConfig
	baseURL string
	logger  *zap.Logger
}

// NewAPIClient creates a client bound to cfg.Endpoint. The endpoint must be an absolute http(s) URL.
func NewAPIClient(cfg entity.ClientConfig, logger *zap.Logger) (*APIClient, error) {
	baseURL, err := normalizeEndpoint(cfg.Endpoint)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &APIClient{
		client:  &fasthttp.Client{DisablePathNormalizing: true},
		cfg:     cfg,
		baseURL: baseURL,
		logger:  logger.Named("ContractAPIClient").With(zap.String("endpoint", baseURL)),
	}, nil
}

func normalizeEndpoint(endpoint string) (string, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return "", entity.NewInvalidInput("invalid endpoint", "endpoint is empty")
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", entity.NewInvalidInput("invalid endpoint", "%q: %v", endpoint, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", entity.NewInvalidInput("invalid endpoint", "%q must be an absolute http(s) URL", endpoint)
	}
	return strings.TrimRight(endpoint, "/"), nil
}

// Config returns the configuration the client was built with.
func (c *APIClient) Config() entity.ClientConfig {
	return c.cfg
}

// DeployContract submits code and constructor args, returning the new contract address.
func (c *APIClient) DeployContract(ctx context.Context, req entity.DeployRequest) (string, error) {
	if req.ChainType == "" {
		req.ChainType = c.cfg.ChainType
	}
	if err := req.Validate(); err != nil {
		return "", err
	}

	var resp entity.DeployResponse
	if err := c.do(ctx, OpDeploy, fasthttp.MethodPost, pathDeploy, req, &resp); err != nil {
		return "", err
	}
	if resp.Address == "" {
		return "", &entity.ChainError{Kind: entity.KindRemoteRejection, Op: OpDeploy, Message: "response has no contract address"}
	}
	c.logger.Info("Contract deployed", zap.String("address", resp.Address))
	return resp.Address, nil
}

// GetContract fetches a deployed contract record.
func (c *APIClient) GetContract(ctx context.Context, address string) (*entity.ContractRecord, error) {
	segment, err := pathSegment(OpGetContract, "contract address", address)
	if err != nil {
		return nil, err
	}
	var record entity.ContractRecord
	if err := c.do(ctx, OpGetContract, fasthttp.MethodGet, fmt.Sprintf(pathContract, segment), nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// CallContract invokes method on the contract at address.
func (c *APIClient) CallContract(ctx context.Context, address string, req entity.CallRequest) (*entity.CallResult, error) {
	segment, err := pathSegment(OpCall, "contract address", address)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var result entity.CallResult
	if err := c.do(ctx, OpCall, fasthttp.MethodPost, fmt.Sprintf(pathCall, segment), req, &result); err != nil {
		return nil, err
	}
	if result.Result != nil {
		if err := result.Result.Validate(); err != nil {
			return nil, &entity.ChainError{Kind: entity.KindRemoteRejection, Op: OpCall, Message: "malformed result", Err: err}
		}
	}
	return &result, nil
}

// GetNetworkStatus probes the liveness path. Any failure is reported as "network unreachable".
func (c *APIClient) GetNetworkStatus(ctx context.Context) (*entity.NetworkStatus, error) {
	var status entity.NetworkStatus
	if err := c.do(ctx, OpStatus, fasthttp.MethodGet, pathHealth, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// GetBalance fetches the balance of address.
func (c *APIClient) GetBalance(ctx context.Context, address string) (*big.Int, error) {
	segment, err := pathSegment(OpBalance, "account address", address)
	if err != nil {
		return nil, err
	}
	var resp entity.BalanceResponse
	if err := c.do(ctx, OpBalance, fasthttp.MethodGet, fmt.Sprintf(pathBalance, segment), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Balance == nil {
		return nil, &entity.ChainError{Kind: entity.KindRemoteRejection, Op: OpBalance, Message: "response has no balance field"}
	}
	return new(big.Int).Set((*big.Int)(resp.Balance)), nil
}

// pathSegment escapes an address for use as a single path element.
// Separators and dot segments are rejected so the request cannot reach another route.
func pathSegment(op, what, address string) (string, error) {
	if strings.TrimSpace(address) == "" {
		return "", entity.NewInvalidInput(op, "%s is empty", what)
	}
	if strings.ContainsAny(address, `/\`) || address == "." || address == ".." {
		return "", entity.NewInvalidInput(op, "%s %q is not a single path segment", what, address)
	}
	return url.PathEscape(address), nil
}

// do sends exactly one request. Transport errors and non-2xx answers become *entity.ChainError.
func (c *APIClient) do(ctx context.Context, op, method, path string, body, out any) error {
	requestURL := c.baseURL + path

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(method)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+c.cfg.APIKey)
	}
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &entity.ChainError{Kind: entity.KindInvalidInput, Op: op, Message: "failed to encode request", Err: err}
		}
		req.Header.SetContentType("application/json")
		req.SetBodyRaw(data)
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if err := ctx.Err(); err != nil {
		return &entity.ChainError{Kind: entity.KindTransportFailure, Op: op, Err: err}
	}

	c.logger.Debug("Sending request", zap.String("method", method), zap.String("url", requestURL))

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else if c.cfg.RequestTimeout > 0 {
		err = c.client.DoTimeout(req, resp, c.cfg.RequestTimeout)
	} else {
		err = c.client.Do(req, resp)
	}
	if err != nil {
		c.logger.Debug("Request failed", zap.String("url", requestURL), zap.Error(err))
		return &entity.ChainError{Kind: entity.KindTransportFailure, Op: op, Err: err}
	}

	statusCode := resp.StatusCode()
	rawBody := resp.Body()

	if statusCode < fasthttp.StatusOK || statusCode >= fasthttp.StatusMultipleChoices {
		c.logger.Debug("Remote rejected request",
			zap.String("url", requestURL),
			zap.Int("statusCode", statusCode),
			zap.ByteString("responseBody", rawBody))
		return &entity.ChainError{
			Kind:       entity.KindRemoteRejection,
			Op:         op,
			StatusCode: statusCode,
			Message:    remoteMessage(statusCode, rawBody),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(rawBody, out); err != nil {
		c.logger.Debug("Failed to decode response", zap.String("url", requestURL), zap.ByteString("responseBody", rawBody), zap.Error(err))
		return &entity.ChainError{Kind: entity.KindRemoteRejection, Op: op, StatusCode: statusCode, Message: "malformed response", Err: err}
	}
	return nil
}

// remoteMessage prefers the remote-provided message, else the HTTP status text.
func remoteMessage(statusCode int, body []byte) string {
	var remote entity.RemoteError
	if err := json.Unmarshal(body, &remote); err == nil {
		if remote.Message != "" {
			return remote.Message
		}
		if remote.Error != "" {
			return remote.Error
		}
	}
	return fmt.Sprintf("%d %s", statusCode, fasthttp.StatusMessage(statusCode))
}

var _ port.ContractAPIClient = (*APIClient)(nil)
