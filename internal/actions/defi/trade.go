package defi

import (
	"context"
	"math"

	"Solagent-Core/internal/actions"
	xerrors "Solagent-Core/internal/errors"
	"Solagent-Core/internal/providers/jupiter"

	"github.com/gagliardetto/solana-go"
)

// wsolMint 是包装 SOL 的 mint 地址，作为兑换的默认输入代币。
const wsolMint = "So11111111111111111111111111111111111111112"

// TradeAction 通过 Jupiter 聚合器把一种代币兑换为另一种。
// 状态变更动作：报价与交易构建可重试，签名与广播恰好一次。
type TradeAction struct {
	meta actions.Metadata
	jup  *jupiter.Client
}

// NewTradeAction 创建 TRADE。
func NewTradeAction(jup *jupiter.Client) *TradeAction {
	if jup == nil {
		jup = jupiter.NewClient(jupiter.Config{})
	}
	return &TradeAction{
		jup: jup,
		meta: actions.Metadata{
			Name: "TRADE",
			Similes: []string{
				"swap tokens",
				"exchange tokens",
				"convert sol to token",
			},
			Description: "Swap tokens using Jupiter's aggregator for the best routes",
			Examples: []actions.Example{
				{
					Input: map[string]any{
						"outputMint":  "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
						"inputAmount": 1.0,
					},
					Output: map[string]any{
						"status":    "success",
						"signature": "example_swap_signature",
					},
					Explanation: "Swap 1 SOL for USDC",
				},
				{
					Input: map[string]any{
						"outputMint":  "So11111111111111111111111111111111111111112",
						"inputAmount": 10.0,
						"inputMint":   "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
					},
					Output: map[string]any{
						"status":    "success",
						"signature": "example_swap_signature",
					},
					Explanation: "Swap 10 USDC for SOL",
				},
			},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"outputMint": map[string]any{
						"type":        "string",
						"description": "Mint address of the token to receive",
					},
					"inputAmount": map[string]any{
						"type":        "number",
						"description": "Amount of the input token to swap",
					},
					"inputMint": map[string]any{
						"type":        []string{"string", "null"},
						"description": "Mint address of the token to spend; defaults to wrapped SOL",
					},
				},
				"required":             []string{"outputMint", "inputAmount"},
				"additionalProperties": false,
			},
		},
	}
}

// Metadata 返回静态元数据。
func (a *TradeAction) Metadata() actions.Metadata {
	return a.meta
}

// Execute 校验输入、询价、构建并签名广播兑换交易。
func (a *TradeAction) Execute(ctx context.Context, ag actions.Agent, input map[string]any) (map[string]any, error) {
	var in struct {
		OutputMint  string   `json:"outputMint"`
		InputAmount *float64 `json:"inputAmount"`
		InputMint   *string  `json:"inputMint"`
	}
	if err := actions.DecodeInput(input, &in); err != nil {
		return nil, err
	}
	if in.OutputMint == "" {
		return nil, xerrors.New(xerrors.CodeInvalidInput, "缺少必填字段 outputMint")
	}
	if in.InputAmount == nil {
		return nil, xerrors.New(xerrors.CodeInvalidInput, "缺少必填字段 inputAmount")
	}
	if *in.InputAmount <= 0 {
		return nil, xerrors.New(xerrors.CodeInvalidInput, "inputAmount 必须大于零")
	}

	outputMint, err := actions.ParsePublicKey("outputMint", in.OutputMint)
	if err != nil {
		return nil, err
	}

	inputMintStr := wsolMint
	if in.InputMint != nil && *in.InputMint != "" {
		inputMintStr = *in.InputMint
	}
	inputMint, err := actions.ParsePublicKey("inputMint", inputMintStr)
	if err != nil {
		return nil, err
	}

	// 把输入金额换算到最小单位：WSOL 固定 9 位，其他代币查链上精度。
	var baseUnits uint64
	if inputMintStr == wsolMint {
		baseUnits = uint64(*in.InputAmount * float64(solana.LAMPORTS_PER_SOL))
	} else {
		decimals, err := ag.Client().MintDecimals(ctx, inputMint)
		if err != nil {
			return nil, xerrors.Wrap(xerrors.CodeExternalFailure, err, "查询输入代币精度失败")
		}
		baseUnits = uint64(*in.InputAmount * math.Pow10(int(decimals)))
	}
	if baseUnits == 0 {
		return nil, xerrors.New(xerrors.CodeInvalidInput, "兑换金额过小")
	}

	quote, err := a.jup.Quote(ctx, inputMint.String(), outputMint.String(), baseUnits)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.CodeExternalFailure, err, "获取兑换报价失败")
	}

	encoded, err := a.jup.Swap(ctx, quote, ag.Wallet().Address().String())
	if err != nil {
		return nil, xerrors.Wrap(xerrors.CodeExternalFailure, err, "构建兑换交易失败")
	}

	tx, err := solana.TransactionFromBase64(encoded)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.CodeExternalFailure, err, "解码兑换交易失败")
	}

	// Jupiter 返回的交易携带旧的 blockhash，签名前刷新。
	blockhash, err := ag.Client().LatestBlockhash(ctx)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.CodeExternalFailure, err, "获取最新 blockhash 失败")
	}
	tx.Message.RecentBlockhash = blockhash
	tx.Signatures = nil

	sig, err := ag.SignAndSubmit(ctx, tx, "trade")
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"status":     "success",
		"signature":  sig.String(),
		"inputMint":  inputMint.String(),
		"outputMint": outputMint.String(),
	}, nil
}
