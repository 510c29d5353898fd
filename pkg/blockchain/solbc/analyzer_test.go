package solbc

import (
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	"github.com/stretchr/testify/assert"
)

func TestParseAnchorErrorLog(t *testing.T) {
	tests := []struct {
		name string
		log  string
		want AnchorError
	}{
		{
			name: "full line",
			log:  "Program log: AnchorError occurred. Error Code: TooLittleSolReceived. Error Number: 6003. Error Message: slippage: Too little SOL received to sell the given amount of tokens.",
			want: AnchorError{Code: 6003, Name: "TooLittleSolReceived", Msg: "slippage: Too little SOL received to sell the given amount of tokens"},
		},
		{
			name: "unreadable number leaves code zero",
			log:  "Program log: AnchorError occurred. Error Code: NotAuthorized. Error Number: 60x1. Error Message: bad.",
			want: AnchorError{Code: 0, Name: "NotAuthorized", Msg: "bad"},
		},
		{
			name: "no fields",
			log:  "Program log: AnchorError occurred",
			want: AnchorError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseAnchorErrorLog(tt.log))
		})
	}
}

func TestAnalyzeSendErrorIgnoresOtherErrors(t *testing.T) {
	assert.Nil(t, AnalyzeSendError(errors.New("connection reset")))
	assert.Nil(t, AnalyzeSendError(&jsonrpc.RPCError{Code: -32601, Message: "Method not found"}))

	failure := AnalyzeSendError(&jsonrpc.RPCError{Message: "Transaction simulation failed: Blockhash not found"})
	if assert.NotNil(t, failure) {
		assert.Nil(t, failure.Anchor)
		assert.Empty(t, failure.Logs)
	}
}
