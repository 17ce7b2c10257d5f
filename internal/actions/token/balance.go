package token

import (
	"context"
	"fmt"

	"Solagent-Core/internal/actions"

	"github.com/gagliardetto/solana-go"
)

// BalanceAction 查询钱包的 SOL 或 SPL 代币余额。
type BalanceAction struct {
	meta actions.Metadata
}

// NewBalanceAction 创建 BALANCE_ACTION。
func NewBalanceAction() *BalanceAction {
	return &BalanceAction{
		meta: actions.Metadata{
			Name: "BALANCE_ACTION",
			Similes: []string{
				"check balance",
				"get wallet balance",
				"view balance",
				"show balance",
				"check token balance",
			},
			Description: "Get the balance of a Solana wallet or token account. If no tokenAddress is provided, the balance is returned in SOL.",
			Examples: []actions.Example{
				{
					Input: map[string]any{},
					Output: map[string]any{
						"status":  "success",
						"balance": "100",
						"token":   "SOL",
					},
					Explanation: "Get SOL balance of the wallet",
				},
				{
					Input: map[string]any{
						"tokenAddress": "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
					},
					Output: map[string]any{
						"status":  "success",
						"balance": "1000",
						"token":   "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
					},
					Explanation: "Get USDC token balance",
				},
			},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"tokenAddress": map[string]any{
						"type":        "string",
						"description": "Optional SPL token mint address; if omitted, SOL balance is returned",
					},
				},
				"required":             []string{},
				"additionalProperties": false,
			},
		},
	}
}

// Metadata 返回静态元数据。
func (a *BalanceAction) Metadata() actions.Metadata {
	return a.meta
}

// Execute 查询余额。
func (a *BalanceAction) Execute(ctx context.Context, ag actions.Agent, input map[string]any) (map[string]any, error) {
	var in struct {
		TokenAddress string `json:"tokenAddress"`
	}
	if err := actions.DecodeInput(input, &in); err != nil {
		return nil, err
	}

	var mint *solana.PublicKey
	tokenName := "SOL"
	if in.TokenAddress != "" {
		pub, err := actions.ParsePublicKey("tokenAddress", in.TokenAddress)
		if err != nil {
			return nil, err
		}
		mint = &pub
		tokenName = in.TokenAddress
	}

	balance, err := ag.GetBalance(ctx, mint)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"status":  "success",
		"balance": balance,
		"token":   tokenName,
		"message": fmt.Sprintf("Balance: %v %s", balance, tokenName),
	}, nil
}
