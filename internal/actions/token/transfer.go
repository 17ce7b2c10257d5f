package token

import (
	"context"

	"Solagent-Core/internal/actions"
	xerrors "Solagent-Core/internal/errors"

	"github.com/gagliardetto/solana-go"
)

// TransferAction 从代理钱包向另一个地址转账 SOL 或 SPL 代币。
// 这是一个状态变更动作：输入校验在任何签名或广播之前完成，
// 一次调用至多广播一次。
type TransferAction struct {
	meta actions.Metadata
}

// NewTransferAction 创建 TRANSFER。
func NewTransferAction() *TransferAction {
	return &TransferAction{
		meta: actions.Metadata{
			Name: "TRANSFER",
			Similes: []string{
				"send sol",
				"send tokens",
				"transfer to another wallet",
			},
			Description: "Transfer SOL or SPL tokens from the agent's wallet to another address",
			Examples: []actions.Example{
				{
					Input: map[string]any{
						"to":     "ExampleDestination1111111111111111111111111111",
						"amount": 0.1,
					},
					Output: map[string]any{
						"signature": "example_signature",
					},
					Explanation: "Transfer 0.1 SOL to the given address",
				},
				{
					Input: map[string]any{
						"to":     "ExampleDestination1111111111111111111111111111",
						"amount": 5.0,
						"mint":   "So11111111111111111111111111111111111111112",
					},
					Output: map[string]any{
						"signature": "example_token_signature",
					},
					Explanation: "Transfer 5 units of the given SPL token",
				},
			},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"to": map[string]any{
						"type":        "string",
						"description": "Destination Solana address",
					},
					"amount": map[string]any{
						"type":        "number",
						"description": "Amount of SOL or tokens to transfer",
					},
					"mint": map[string]any{
						"type":        []string{"string", "null"},
						"description": "SPL token mint address; null or omitted for native SOL",
					},
				},
				"required":             []string{"to", "amount"},
				"additionalProperties": false,
			},
		},
	}
}

// Metadata 返回静态元数据。
func (a *TransferAction) Metadata() actions.Metadata {
	return a.meta
}

// Execute 校验输入后执行转账。
func (a *TransferAction) Execute(ctx context.Context, ag actions.Agent, input map[string]any) (map[string]any, error) {
	var in struct {
		To     string   `json:"to"`
		Amount *float64 `json:"amount"`
		Mint   *string  `json:"mint"`
	}
	if err := actions.DecodeInput(input, &in); err != nil {
		return nil, err
	}
	if in.To == "" {
		return nil, xerrors.New(xerrors.CodeInvalidInput, "缺少必填字段 to")
	}
	if in.Amount == nil {
		return nil, xerrors.New(xerrors.CodeInvalidInput, "缺少必填字段 amount")
	}
	if *in.Amount <= 0 {
		return nil, xerrors.New(xerrors.CodeInvalidInput, "amount 必须大于零")
	}

	to, err := actions.ParsePublicKey("to", in.To)
	if err != nil {
		return nil, err
	}

	var mint *solana.PublicKey
	if in.Mint != nil && *in.Mint != "" {
		pub, err := actions.ParsePublicKey("mint", *in.Mint)
		if err != nil {
			return nil, err
		}
		mint = &pub
	}

	sig, err := ag.Transfer(ctx, to, *in.Amount, mint)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"signature": sig.String(),
	}, nil
}
