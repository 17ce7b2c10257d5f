package token

import (
	"context"
	"fmt"

	"Solagent-Core/internal/actions"
	xerrors "Solagent-Core/internal/errors"
)

// GetTPSAction 查询 Solana 网络当前的每秒交易数。
type GetTPSAction struct {
	meta actions.Metadata
}

// NewGetTPSAction 创建 GET_TPS。
func NewGetTPSAction() *GetTPSAction {
	return &GetTPSAction{
		meta: actions.Metadata{
			Name: "GET_TPS",
			Similes: []string{
				"get transactions per second",
				"check network speed",
				"network performance",
				"transaction throughput",
				"network tps",
			},
			Description: "Get the current transactions per second (TPS) of the Solana network",
			Examples: []actions.Example{
				{
					Input: map[string]any{},
					Output: map[string]any{
						"status":  "success",
						"tps":     3500,
						"message": "Current network TPS: 3500",
					},
					Explanation: "Get the current TPS of the Solana network",
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
func (a *GetTPSAction) Metadata() actions.Metadata {
	return a.meta
}

// Execute 读取最近的性能样本并换算为 TPS。
func (a *GetTPSAction) Execute(ctx context.Context, ag actions.Agent, input map[string]any) (map[string]any, error) {
	if err := actions.DecodeInput(input, &struct{}{}); err != nil {
		return nil, err
	}

	tps, err := ag.Client().RecentTPS(ctx)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.CodeExternalFailure, err, "查询网络 TPS 失败")
	}

	return map[string]any{
		"status":  "success",
		"tps":     tps,
		"message": fmt.Sprintf("Current network TPS: %.0f", tps),
	}, nil
}
