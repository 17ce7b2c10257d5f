package wallet

import (
	"context"

	"github.com/gagliardetto/solana-go"
)

// Wallet 抽象了智能体的签名身份。实现可以是本地密钥对，
// 也可以是远程签名服务或多签方案，上层代码不感知差异。
//
// 同一个 Wallet 实例会被多个并发执行的动作共享，实现必须保证
// 并发签名不破坏内部状态；若内部存在需要串行化的计数器，
// 由实现自行加锁，调用方不参与同步。
type Wallet interface {
	// Address 返回钱包公钥，永不失败。
	Address() solana.PublicKey
	// SignMessage 对任意字节负载签名。密钥材料不可用时返回
	// SIGNING_UNAVAILABLE，签名方明确拒绝时返回 SIGNING_REJECTED。
	SignMessage(ctx context.Context, payload []byte) (solana.Signature, error)
	// SignTransaction 对交易消息签名并把签名追加到交易上。
	SignTransaction(ctx context.Context, tx *solana.Transaction) error
	// SignAllTransactions 依次签署一组交易。任一失败立即返回，
	// 已签署的交易保持原样。
	SignAllTransactions(ctx context.Context, txs []*solana.Transaction) error
}
