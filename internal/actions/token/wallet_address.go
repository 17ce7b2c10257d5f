package token

import (
	"context"

	"Solagent-Core/internal/actions"
)

// WalletAddressAction 返回代理钱包的地址。
type WalletAddressAction struct {
	meta actions.Metadata
}

// NewWalletAddressAction 创建 WALLET_ADDRESS。
func NewWalletAddressAction() *WalletAddressAction {
	return &WalletAddressAction{
		meta: actions.Metadata{
			Name: "WALLET_ADDRESS",
			Similes: []string{
				"get wallet address",
				"show wallet address",
				"display wallet address",
				"my wallet address",
			},
			Description: "Get your wallet address.",
			Examples: []actions.Example{
				{
					Input: map[string]any{},
					Output: map[string]any{
						"status":  "success",
						"message": "Wallet address retrieved successfully",
						"address": "8x2dR8Mpzuz2YqyZyZjUbYWKSWesBo5jMx2Q9Y86udVk",
					},
					Explanation: "Get your wallet address",
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
func (a *WalletAddressAction) Metadata() actions.Metadata {
	return a.meta
}

// Execute 读取钱包地址，纯读取，不触网。
func (a *WalletAddressAction) Execute(ctx context.Context, ag actions.Agent, input map[string]any) (map[string]any, error) {
	if err := actions.DecodeInput(input, &struct{}{}); err != nil {
		return nil, err
	}
	return map[string]any{
		"status":  "success",
		"message": "Wallet address retrieved successfully",
		"address": ag.Wallet().Address().String(),
	}, nil
}
