package defi

import (
	"context"

	"Solagent-Core/internal/actions"
	xerrors "Solagent-Core/internal/errors"
	"Solagent-Core/internal/providers/jupiter"
)

// FetchPriceAction 通过 Jupiter 价格接口查询代币的 USDC 计价。
// 纯只读动作，不触碰钱包。
type FetchPriceAction struct {
	meta actions.Metadata
	jup  *jupiter.Client
}

// NewFetchPriceAction 创建 FETCH_PRICE。
func NewFetchPriceAction(jup *jupiter.Client) *FetchPriceAction {
	if jup == nil {
		jup = jupiter.NewClient(jupiter.Config{})
	}
	return &FetchPriceAction{
		jup: jup,
		meta: actions.Metadata{
			Name: "FETCH_PRICE",
			Similes: []string{
				"get token price",
				"check token price",
				"token price in usdc",
			},
			Description: "Fetch the current price of a Solana token in USDC using Jupiter API",
			Examples: []actions.Example{
				{
					Input: map[string]any{
						"tokenAddress": "So11111111111111111111111111111111111111112",
					},
					Output: map[string]any{
						"status":       "success",
						"price":        "23.45",
						"tokenAddress": "So11111111111111111111111111111111111111112",
					},
					Explanation: "Get the current price of SOL in USDC",
				},
			},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"tokenAddress": map[string]any{
						"type":        "string",
						"description": "Mint address of the token to price",
					},
				},
				"required":             []string{"tokenAddress"},
				"additionalProperties": false,
			},
		},
	}
}

// Metadata 返回静态元数据。
func (a *FetchPriceAction) Metadata() actions.Metadata {
	return a.meta
}

// Execute 校验 mint 地址后向 Jupiter 询价。
func (a *FetchPriceAction) Execute(ctx context.Context, ag actions.Agent, input map[string]any) (map[string]any, error) {
	raw, err := actions.RequireString(input, "tokenAddress")
	if err != nil {
		return nil, err
	}
	mint, err := actions.ParsePublicKey("tokenAddress", raw)
	if err != nil {
		return nil, err
	}

	price, err := a.jup.Price(ctx, mint.String())
	if err != nil {
		return nil, xerrors.Wrap(xerrors.CodeExternalFailure, err, "查询代币价格失败")
	}

	return map[string]any{
		"status":       "success",
		"price":        price,
		"tokenAddress": mint.String(),
	}, nil
}
