package token

import (
	"context"

	"Solagent-Core/internal/actions"
	xerrors "Solagent-Core/internal/errors"

	"github.com/gagliardetto/solana-go"
)

// airdropLamports 是每次向水龙头申请的固定额度（5 SOL）。
const airdropLamports = 5 * solana.LAMPORTS_PER_SOL

// RequestFundsAction 向水龙头申请测试用 SOL，仅对 devnet/testnet
// 端点有意义。
type RequestFundsAction struct {
	meta actions.Metadata
}

// NewRequestFundsAction 创建 REQUEST_FUNDS。
func NewRequestFundsAction() *RequestFundsAction {
	return &RequestFundsAction{
		meta: actions.Metadata{
			Name: "REQUEST_FUNDS",
			Similes: []string{
				"request sol",
				"get test sol",
				"use faucet",
				"request test tokens",
				"get devnet sol",
			},
			Description: "Request SOL from Solana faucet (devnet/testnet only)",
			Examples: []actions.Example{
				{
					Input: map[string]any{},
					Output: map[string]any{
						"status":    "success",
						"message":   "Successfully requested faucet funds",
						"signature": "5abc123...",
					},
					Explanation: "Request SOL from the devnet faucet",
				},
			},
			InputSchema: map[string]any{
				"type":                 "object",
				"properties":           map[string]any{},
				"additionalProperties": false,
			},
		},
	}
}

// Metadata 返回静态元数据。
func (a *RequestFundsAction) Metadata() actions.Metadata {
	return a.meta
}

// Execute 请求一次空投。
func (a *RequestFundsAction) Execute(ctx context.Context, ag actions.Agent, input map[string]any) (map[string]any, error) {
	if err := actions.DecodeInput(input, &struct{}{}); err != nil {
		return nil, err
	}

	sig, err := ag.Client().RequestAirdrop(ctx, ag.Wallet().Address(), airdropLamports)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.CodeExternalFailure, err, "请求空投失败")
	}

	return map[string]any{
		"status":    "success",
		"message":   "Successfully requested faucet funds",
		"signature": sig.String(),
	}, nil
}
