package solbc

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/mock"
)

// MockRPCAPI implements rpcAPI
type MockRPCAPI struct {
	mock.Mock
}

func (m *MockRPCAPI) GetAccountInfoWithOpts(ctx context.Context, account solana.PublicKey, opts *rpc.GetAccountInfoOpts) (*rpc.GetAccountInfoResult, error) {
	args := m.Called(ctx, account, opts)
	res, _ := args.Get(0).(*rpc.GetAccountInfoResult)
	return res, args.Error(1)
}

func (m *MockRPCAPI) GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error) {
	args := m.Called(ctx, commitment)
	res, _ := args.Get(0).(*rpc.GetLatestBlockhashResult)
	return res, args.Error(1)
}

func (m *MockRPCAPI) SendTransactionWithOpts(ctx context.Context, tx *solana.Transaction, opts rpc.TransactionOpts) (solana.Signature, error) {
	args := m.Called(ctx, tx, opts)
	return args.Get(0).(solana.Signature), args.Error(1)
}

func (m *MockRPCAPI) GetSignatureStatuses(ctx context.Context, searchTransactionHistory bool, signatures ...solana.Signature) (*rpc.GetSignatureStatusesResult, error) {
	args := m.Called(ctx, searchTransactionHistory, signatures)
	res, _ := args.Get(0).(*rpc.GetSignatureStatusesResult)
	return res, args.Error(1)
}

func (m *MockRPCAPI) GetBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetBalanceResult, error) {
	args := m.Called(ctx, account, commitment)
	res, _ := args.Get(0).(*rpc.GetBalanceResult)
	return res, args.Error(1)
}

func (m *MockRPCAPI) GetTokenAccountBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetTokenAccountBalanceResult, error) {
	args := m.Called(ctx, account, commitment)
	res, _ := args.Get(0).(*rpc.GetTokenAccountBalanceResult)
	return res, args.Error(1)
}

// newTestClient builds a client over mocked endpoints with fast polling.
func newTestClient(metrics *Metrics, apis ...*MockRPCAPI) *Client {
	nodes := make([]*node, 0, len(apis))
	for i, api := range apis {
		nodes = append(nodes, &node{url: "http://node-" + string(rune('a'+i)), api: api})
	}
	return newClient(newPoolFromNodes(nodes...), nil, Config{
		MaxRetries:     3,
		ConfirmTimeout: 2 * time.Second,
		PollInterval:   time.Millisecond,
	}, metrics)
}
