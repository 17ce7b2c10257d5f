package agent

import (
	"context"
	"math"

	"Solagent-Core/internal/chain"
	xerrors "Solagent-Core/internal/errors"
	"Solagent-Core/internal/wallet"
	"Solagent-Core/pkg/logger"

	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
)

// Agent 是一次运行会话的执行上下文：一个共享的钱包和一个绑定到
// 单一 RPC 端点的链客户端。构造后不可变，可被任意多个并发执行的
// 动作以引用方式共享。
type Agent struct {
	wallet wallet.Wallet
	client chain.Client
}

// New 创建一个 Agent。钱包与客户端在整个生命周期内不再更换。
func New(w wallet.Wallet, client chain.Client) (*Agent, error) {
	if w == nil {
		return nil, xerrors.New(xerrors.CodeInitializationFailure, "未配置钱包")
	}
	if client == nil {
		return nil, xerrors.New(xerrors.CodeInitializationFailure, "未配置链客户端")
	}
	return &Agent{wallet: w, client: client}, nil
}

// Wallet 返回共享的钱包引用。
func (a *Agent) Wallet() wallet.Wallet {
	return a.wallet
}

// Client 返回链客户端句柄。
func (a *Agent) Client() chain.Client {
	return a.client
}

// Endpoint 返回会话绑定的 RPC 端点。
func (a *Agent) Endpoint() string {
	return a.client.Endpoint()
}

// GetBalance 查询钱包余额。mint 为空时返回 SOL 余额（单位 SOL），
// 否则返回对应 SPL 代币的 UI 余额。
func (a *Agent) GetBalance(ctx context.Context, mint *solana.PublicKey) (float64, error) {
	owner := a.wallet.Address()
	if mint == nil {
		lamports, err := a.client.Balance(ctx, owner)
		if err != nil {
			return 0, xerrors.Wrap(xerrors.CodeExternalFailure, err, "查询 SOL 余额失败")
		}
		return float64(lamports) / float64(solana.LAMPORTS_PER_SOL), nil
	}
	balance, err := a.client.TokenBalance(ctx, owner, *mint)
	if err != nil {
		return 0, xerrors.Wrap(xerrors.CodeExternalFailure, err, "查询代币余额失败")
	}
	return balance, nil
}

// Transfer 从代理钱包向 to 转账。mint 为空时转 SOL，否则转对应的
// SPL 代币。签名与广播在一次调用内恰好发生一次；广播失败不会重试，
// 因为失败交易的最终状态未知。
func (a *Agent) Transfer(ctx context.Context, to solana.PublicKey, amount float64, mint *solana.PublicKey) (solana.Signature, error) {
	from := a.wallet.Address()
	var instructions []solana.Instruction

	if mint == nil {
		lamports := uint64(amount * float64(solana.LAMPORTS_PER_SOL))
		if lamports == 0 {
			return solana.Signature{}, xerrors.New(xerrors.CodeInvalidInput, "转账金额过小")
		}
		instructions = append(instructions,
			system.NewTransferInstruction(lamports, from, to).Build())
	} else {
		decimals, err := a.client.MintDecimals(ctx, *mint)
		if err != nil {
			return solana.Signature{}, xerrors.Wrap(xerrors.CodeExternalFailure, err, "查询代币精度失败")
		}
		baseUnits := uint64(amount * math.Pow10(int(decimals)))
		if baseUnits == 0 {
			return solana.Signature{}, xerrors.New(xerrors.CodeInvalidInput, "转账金额过小")
		}

		sourceATA, _, err := solana.FindAssociatedTokenAddress(from, *mint)
		if err != nil {
			return solana.Signature{}, xerrors.Wrap(xerrors.CodeInvalidInput, err, "推导源代币账户失败")
		}
		destATA, _, err := solana.FindAssociatedTokenAddress(to, *mint)
		if err != nil {
			return solana.Signature{}, xerrors.Wrap(xerrors.CodeInvalidInput, err, "推导目标代币账户失败")
		}

		exists, err := a.client.AccountExists(ctx, destATA)
		if err != nil {
			return solana.Signature{}, xerrors.Wrap(xerrors.CodeExternalFailure, err, "检查目标代币账户失败")
		}
		if !exists {
			instructions = append(instructions,
				associatedtokenaccount.NewCreateInstruction(from, to, *mint).Build())
		}
		instructions = append(instructions,
			token.NewTransferCheckedInstruction(baseUnits, decimals, sourceATA, *mint, destATA, from, nil).Build())
	}

	blockhash, err := a.client.LatestBlockhash(ctx)
	if err != nil {
		return solana.Signature{}, xerrors.Wrap(xerrors.CodeExternalFailure, err, "获取最新区块哈希失败")
	}

	tx, err := solana.NewTransaction(instructions, blockhash, solana.TransactionPayer(from))
	if err != nil {
		return solana.Signature{}, xerrors.Wrap(xerrors.CodeInvalidInput, err, "构建交易失败")
	}

	if err := a.wallet.SignTransaction(ctx, tx); err != nil {
		return solana.Signature{}, err
	}

	sig, err := a.client.SubmitTransaction(ctx, tx)
	if err != nil {
		return solana.Signature{}, xerrors.Wrap(xerrors.CodeExternalFailure, err, "广播交易失败",
			xerrors.WithRetryable(false))
	}

	logger.Audit().Info("transaction submitted",
		"kind", "transfer",
		"signature", sig.String(),
		"from", from.String(),
		"to", to.String(),
	)
	return sig, nil
}

// SignAndSubmit 签署并广播一笔外部构建的交易（例如聚合器返回的
// 交换交易）。同样保证恰好广播一次。
func (a *Agent) SignAndSubmit(ctx context.Context, tx *solana.Transaction, kind string) (solana.Signature, error) {
	if tx == nil {
		return solana.Signature{}, xerrors.New(xerrors.CodeInvalidInput, "交易为空")
	}
	if err := a.wallet.SignTransaction(ctx, tx); err != nil {
		return solana.Signature{}, err
	}
	sig, err := a.client.SubmitTransaction(ctx, tx)
	if err != nil {
		return solana.Signature{}, xerrors.Wrap(xerrors.CodeExternalFailure, err, "广播交易失败",
			xerrors.WithRetryable(false))
	}
	logger.Audit().Info("transaction submitted",
		"kind", kind,
		"signature", sig.String(),
		"from", a.wallet.Address().String(),
	)
	return sig, nil
}
