package actions

import (
	"context"

	"Solagent-Core/internal/chain"
	"Solagent-Core/internal/wallet"

	"github.com/gagliardetto/solana-go"
)

// Agent 描述动作执行时可见的会话上下文。动作只依赖这个接口，
// 不依赖具体的 Agent 实现，测试可以注入桩实现。
//
// 上下文从调度层视角是只读的：动作不得更换钱包或客户端。
type Agent interface {
	// Wallet 返回会话共享的钱包引用。
	Wallet() wallet.Wallet
	// Client 返回链客户端句柄。
	Client() chain.Client
	// Endpoint 返回会话绑定的 RPC 端点。
	Endpoint() string
	// GetBalance 查询钱包余额，mint 为空时查询 SOL。
	GetBalance(ctx context.Context, mint *solana.PublicKey) (float64, error)
	// Transfer 签署并广播一笔转账，恰好广播一次。
	Transfer(ctx context.Context, to solana.PublicKey, amount float64, mint *solana.PublicKey) (solana.Signature, error)
	// SignAndSubmit 签署并广播一笔外部构建的交易，恰好广播一次。
	SignAndSubmit(ctx context.Context, tx *solana.Transaction, kind string) (solana.Signature, error)
}

// Action 是一个可按名字调用的行为单元：静态元数据 + 异步执行。
//
// Execute 的约定：
//   - 在产生任何外部可见副作用之前完成输入校验，校验失败返回
//     INVALID_INPUT；
//   - 不得修改 Agent 上下文；
//   - 每次调用恰好返回一个终态结果（成功值或结构化错误），
//     不吞掉子错误；
//   - 只有幂等的只读子步骤可以在动作内部重试，签名与状态变更
//     类操作绝不重复执行。
type Action interface {
	// Metadata 返回静态元数据，对同一实例的任意多次调用返回相同值。
	Metadata() Metadata
	// Execute 以未类型化的输入执行动作，返回未类型化的输出。
	Execute(ctx context.Context, ag Agent, input map[string]any) (map[string]any, error)
}
