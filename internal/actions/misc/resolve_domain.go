package misc

import (
	"context"
	"strings"

	"Solagent-Core/internal/actions"
	xerrors "Solagent-Core/internal/errors"
	"Solagent-Core/internal/providers/bonfida"
)

// ResolveDomainAction 把 .sol 域名解析为所有者地址。只读动作。
type ResolveDomainAction struct {
	meta actions.Metadata
	sns  *bonfida.Client
}

// NewResolveDomainAction 创建 RESOLVE_SOL_DOMAIN。
func NewResolveDomainAction(sns *bonfida.Client) *ResolveDomainAction {
	if sns == nil {
		sns = bonfida.NewClient(bonfida.Config{})
	}
	return &ResolveDomainAction{
		sns: sns,
		meta: actions.Metadata{
			Name: "RESOLVE_SOL_DOMAIN",
			Similes: []string{
				"resolve sol domain",
				"lookup .sol address",
				"get wallet for domain",
			},
			Description: "Resolve a .sol domain name to the owner's Solana address",
			Examples: []actions.Example{
				{
					Input: map[string]any{
						"domain": "example.sol",
					},
					Output: map[string]any{
						"status": "success",
						"owner":  "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM",
					},
					Explanation: "Resolve example.sol to the owner's address",
				},
			},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"domain": map[string]any{
						"type":        "string",
						"description": "Domain name to resolve, with or without the .sol suffix",
					},
				},
				"required":             []string{"domain"},
				"additionalProperties": false,
			},
		},
	}
}

// Metadata 返回静态元数据。
func (a *ResolveDomainAction) Metadata() actions.Metadata {
	return a.meta
}

// Execute 校验域名后调用解析服务。
func (a *ResolveDomainAction) Execute(ctx context.Context, ag actions.Agent, input map[string]any) (map[string]any, error) {
	domain, err := actions.RequireString(input, "domain")
	if err != nil {
		return nil, err
	}
	domain = strings.TrimSuffix(strings.TrimSpace(domain), ".sol")
	if domain == "" {
		return nil, xerrors.New(xerrors.CodeInvalidInput, "域名不能为空")
	}

	owner, err := a.sns.Resolve(ctx, domain)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.CodeExternalFailure, err, "解析域名失败")
	}

	return map[string]any{
		"status": "success",
		"domain": domain + ".sol",
		"owner":  owner,
	}, nil
}
