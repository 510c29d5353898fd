// pkg/blockchain/solbc/analyzer.go
package solbc

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
)

// AnchorError is a program error reported through the Anchor log format.
type AnchorError struct {
	Code int
	Name string
	Msg  string
}

// SimulationFailure describes a transaction rejected during preflight simulation.
type SimulationFailure struct {
	Message string
	Logs    []string
	Anchor  *AnchorError
}

// AnalyzeSendError extracts the simulation logs and any Anchor error from a
// send failure. It returns nil when err is not a preflight simulation failure.
func AnalyzeSendError(err error) *SimulationFailure {
	var rpcErr *jsonrpc.RPCError
	if !errors.As(err, &rpcErr) {
		return nil
	}
	if !strings.Contains(rpcErr.Message, "Transaction simulation failed") {
		return nil
	}

	failure := &SimulationFailure{Message: rpcErr.Message}

	dataMap, ok := rpcErr.Data.(map[string]interface{})
	if !ok {
		return failure
	}
	logs, ok := dataMap["logs"].([]interface{})
	if !ok {
		return failure
	}

	for _, entry := range logs {
		logStr, ok := entry.(string)
		if !ok {
			continue
		}
		failure.Logs = append(failure.Logs, logStr)
		if failure.Anchor == nil && strings.Contains(logStr, "AnchorError occurred") {
			anchorErr := parseAnchorErrorLog(logStr)
			failure.Anchor = &anchorErr
		}
	}
	return failure
}

// parseAnchorErrorLog parses an Anchor error log line.
// Example: "Program log: AnchorError occurred. Error Code: TooMuchSolRequired. Error Number: 6002. Error Message: slippage: Too much SOL required to buy the given amount of tokens."
func parseAnchorErrorLog(logStr string) AnchorError {
	result := AnchorError{}

	if _, rest, ok := strings.Cut(logStr, "Error Number:"); ok {
		num, _, _ := strings.Cut(rest, ".")
		if code, err := strconv.Atoi(strings.TrimSpace(num)); err == nil {
			result.Code = code
		}
	}

	if _, rest, ok := strings.Cut(logStr, "Error Code:"); ok {
		name, _, _ := strings.Cut(rest, ".")
		result.Name = strings.TrimSpace(name)
	}

	if _, rest, ok := strings.Cut(logStr, "Error Message:"); ok {
		result.Msg = strings.TrimSuffix(strings.TrimSpace(rest), ".")
	}

	return result
}
