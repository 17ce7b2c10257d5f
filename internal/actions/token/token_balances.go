package token

import (
	"context"

	"Solagent-Core/internal/actions"
	xerrors "Solagent-Core/internal/errors"

	"github.com/gagliardetto/solana-go"
)

// TokenBalancesAction 列出一个钱包的全部代币余额（SOL + SPL）。
type TokenBalancesAction struct {
	meta actions.Metadata
}

// NewTokenBalancesAction 创建 TOKEN_BALANCE_ACTION。
func NewTokenBalancesAction() *TokenBalancesAction {
	return &TokenBalancesAction{
		meta: actions.Metadata{
			Name: "TOKEN_BALANCE_ACTION",
			Similes: []string{
				"check token balances",
				"get wallet token balances",
				"view token balances",
				"show token balances",
				"all balances",
			},
			Description: "Get all token balances (SOL + SPL tokens) for a Solana wallet",
			Examples: []actions.Example{
				{
					Input: map[string]any{},
					Output: map[string]any{
						"status": "success",
						"balance": map[string]any{
							"sol": 5.5,
							"tokens": []any{
								map[string]any{
									"tokenAddress": "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
									"balance":      100.0,
									"decimals":     6,
								},
							},
						},
					},
					Explanation: "Get all token balances for the agent's wallet",
				},
			},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"walletAddress": map[string]any{
						"type":        "string",
						"description": "Optional wallet address to check; defaults to agent wallet",
					},
				},
				"additionalProperties": false,
			},
		},
	}
}

// Metadata 返回静态元数据。
func (a *TokenBalancesAction) Metadata() actions.Metadata {
	return a.meta
}

// Execute 查询 SOL 余额与全部 SPL 持仓。
func (a *TokenBalancesAction) Execute(ctx context.Context, ag actions.Agent, input map[string]any) (map[string]any, error) {
	var in struct {
		WalletAddress string `json:"walletAddress"`
	}
	if err := actions.DecodeInput(input, &in); err != nil {
		return nil, err
	}

	owner := ag.Wallet().Address()
	if in.WalletAddress != "" {
		pub, err := actions.ParsePublicKey("walletAddress", in.WalletAddress)
		if err != nil {
			return nil, err
		}
		owner = pub
	}

	lamports, err := ag.Client().Balance(ctx, owner)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.CodeExternalFailure, err, "查询 SOL 余额失败")
	}

	holdings, err := ag.Client().TokenAccounts(ctx, owner)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.CodeExternalFailure, err, "查询代币账户失败")
	}

	tokens := make([]any, 0, len(holdings))
	for _, holding := range holdings {
		tokens = append(tokens, map[string]any{
			"tokenAddress": holding.Mint,
			"balance":      holding.Balance,
			"decimals":     holding.Decimals,
			"account":      holding.Account,
		})
	}

	return map[string]any{
		"status": "success",
		"balance": map[string]any{
			"sol":    float64(lamports) / float64(solana.LAMPORTS_PER_SOL),
			"tokens": tokens,
		},
	}, nil
}
