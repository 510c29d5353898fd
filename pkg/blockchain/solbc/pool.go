// pkg/blockchain/solbc/pool.go
package solbc

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// rpcAPI is the subset of *rpc.Client used by Client.
type rpcAPI interface {
	GetAccountInfoWithOpts(ctx context.Context, account solana.PublicKey, opts *rpc.GetAccountInfoOpts) (*rpc.GetAccountInfoResult, error)
	GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error)
	SendTransactionWithOpts(ctx context.Context, tx *solana.Transaction, opts rpc.TransactionOpts) (solana.Signature, error)
	GetSignatureStatuses(ctx context.Context, searchTransactionHistory bool, signatures ...solana.Signature) (*rpc.GetSignatureStatusesResult, error)
	GetBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetBalanceResult, error)
	GetTokenAccountBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetTokenAccountBalanceResult, error)
}

// node is one RPC endpoint with its health and call statistics.
type node struct {
	url string
	api rpcAPI

	mutex        sync.RWMutex
	active       bool
	successCount uint64
	errorCount   uint64
	latency      time.Duration
}

func (n *node) setActive(state bool) {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	n.active = state
}

func (n *node) isActive() bool {
	n.mutex.RLock()
	defer n.mutex.RUnlock()
	return n.active
}

func (n *node) updateMetrics(success bool, latency time.Duration) {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	if success {
		n.successCount++
	} else {
		n.errorCount++
	}
	n.latency = (n.latency + latency) / 2 // moving average
}

// Stats returns the call counters and average latency of an endpoint.
func (n *node) Stats() (successCount uint64, errorCount uint64, avgLatency time.Duration) {
	n.mutex.RLock()
	defer n.mutex.RUnlock()
	return n.successCount, n.errorCount, n.latency
}

// Pool rotates requests over a list of RPC endpoints.
type Pool struct {
	nodes []*node
	mutex sync.Mutex
	index int
}

// NewPool creates a pool with one client per endpoint URL.
func NewPool(rpcList []string) (*Pool, error) {
	if len(rpcList) == 0 {
		return nil, ErrNoEndpoints
	}

	nodes := make([]*node, 0, len(rpcList))
	for _, rpcURL := range rpcList {
		parsed, err := url.Parse(rpcURL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return nil, fmt.Errorf("invalid RPC URL: %s", rpcURL)
		}
		nodes = append(nodes, &node{url: rpcURL, api: rpc.New(rpcURL), active: true})
	}
	return &Pool{nodes: nodes}, nil
}

func newPoolFromNodes(nodes ...*node) *Pool {
	for _, n := range nodes {
		n.active = true
	}
	return &Pool{nodes: nodes}
}

// next returns the next active endpoint in round-robin order.
func (p *Pool) next() (*node, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	for i := 0; i < len(p.nodes); i++ {
		n := p.nodes[p.index]
		p.index = (p.index + 1) % len(p.nodes)
		if n.isActive() {
			return n, nil
		}
	}
	return nil, ErrNoActiveClients
}

// Size returns the number of endpoints in the pool.
func (p *Pool) Size() int {
	return len(p.nodes)
}

// EndpointStats is a snapshot of one endpoint's call statistics.
type EndpointStats struct {
	URL        string
	Active     bool
	Success    uint64
	Errors     uint64
	AvgLatency time.Duration
}

// Stats returns a snapshot for every endpoint in pool order.
func (p *Pool) Stats() []EndpointStats {
	stats := make([]EndpointStats, 0, len(p.nodes))
	for _, n := range p.nodes {
		success, errs, latency := n.Stats()
		stats = append(stats, EndpointStats{
			URL:        n.url,
			Active:     n.isActive(),
			Success:    success,
			Errors:     errs,
			AvgLatency: latency,
		})
	}
	return stats
}

// HealthCheck probes every endpoint and marks unreachable ones inactive.
// It returns the number of active endpoints.
func (p *Pool) HealthCheck(ctx context.Context, timeout time.Duration) int {
	active := 0
	for _, n := range p.nodes {
		checkCtx, cancel := context.WithTimeout(ctx, timeout)
		_, err := n.api.GetLatestBlockhash(checkCtx, rpc.CommitmentFinalized)
		cancel()

		n.setActive(err == nil)
		if err == nil {
			active++
		}
	}
	return active
}
