package service_test

import (
	"context"
	"math/big"
	"sync"

	"github.com/stretchr/testify/mock"

	"contract_cli/internal/app/port"
	"contract_cli/internal/domain/entity"
)

type mockClient struct {
	mock.Mock
	cfg entity.ClientConfig
}

func (m *mockClient) DeployContract(ctx context.Context, req entity.DeployRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *mockClient) GetContract(ctx context.Context, address string) (*entity.ContractRecord, error) {
	args := m.Called(ctx, address)
	record, _ := args.Get(0).(*entity.ContractRecord)
	return record, args.Error(1)
}

func (m *mockClient) CallContract(ctx context.Context, address string, req entity.CallRequest) (*entity.CallResult, error) {
	args := m.Called(ctx, address, req)
	result, _ := args.Get(0).(*entity.CallResult)
	return result, args.Error(1)
}

func (m *mockClient) GetNetworkStatus(ctx context.Context) (*entity.NetworkStatus, error) {
	args := m.Called(ctx)
	status, _ := args.Get(0).(*entity.NetworkStatus)
	return status, args.Error(1)
}

func (m *mockClient) GetBalance(ctx context.Context, address string) (*big.Int, error) {
	args := m.Called(ctx, address)
	balance, _ := args.Get(0).(*big.Int)
	return balance, args.Error(1)
}

func (m *mockClient) Config() entity.ClientConfig {
	return m.cfg
}

// recordingProvider hands out one client and remembers the configs it was asked for.
type recordingProvider struct {
	mu      sync.Mutex
	client  port.ContractAPIClient
	err     error
	configs []entity.ClientConfig
}

func (p *recordingProvider) GetClient(cfg entity.ClientConfig) (port.ContractAPIClient, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.configs = append(p.configs, cfg)
	if p.err != nil {
		return nil, p.err
	}
	return p.client, nil
}

type logEntry struct {
	level string
	msg   string
	args  []any
}

// recordingLogger keeps every record, including args bound through With.
type recordingLogger struct {
	mu      *sync.Mutex
	entries *[]logEntry
	bound   []any
}

func newRecordingLogger() *recordingLogger {
	return &recordingLogger{mu: &sync.Mutex{}, entries: &[]logEntry{}}
}

func (l *recordingLogger) record(level, msg string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	all := append(append([]any{}, l.bound...), args...)
	*l.entries = append(*l.entries, logEntry{level: level, msg: msg, args: all})
}

func (l *recordingLogger) Info(msg string, args ...any)  { l.record("info", msg, args) }
func (l *recordingLogger) Debug(msg string, args ...any) { l.record("debug", msg, args) }
func (l *recordingLogger) Warn(msg string, args ...any)  { l.record("warn", msg, args) }
func (l *recordingLogger) Error(msg string, args ...any) { l.record("error", msg, args) }

func (l *recordingLogger) With(args ...any) port.Logger {
	return &recordingLogger{mu: l.mu, entries: l.entries, bound: append(append([]any{}, l.bound...), args...)}
}

// find returns the first record with msg.
func (l *recordingLogger) find(msg string) (logEntry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range *l.entries {
		if e.msg == msg {
			return e, true
		}
	}
	return logEntry{}, false
}
