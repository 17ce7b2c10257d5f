package wallet

import (
	"context"
	"sync"

	xerrors "Solagent-Core/internal/errors"

	"github.com/gagliardetto/solana-go"
)

// KeypairWallet 基于本地 ed25519 密钥对实现 Wallet。
// 签名内部串行化，签名计数单调递增，不会在并发下重复或跳号。
type KeypairWallet struct {
	pub  solana.PublicKey
	priv solana.PrivateKey

	mu        sync.Mutex
	signCount uint64
}

// NewKeypairWallet 使用给定私钥构建钱包。
func NewKeypairWallet(priv solana.PrivateKey) (*KeypairWallet, error) {
	if len(priv) == 0 {
		return nil, xerrors.New(xerrors.CodeSigningUnavailable, "私钥为空")
	}
	return &KeypairWallet{pub: priv.PublicKey(), priv: priv}, nil
}

// LoadKeypairWallet 从 solana-keygen 生成的 JSON 文件加载钱包。
func LoadKeypairWallet(path string) (*KeypairWallet, error) {
	priv, err := solana.PrivateKeyFromSolanaKeygenFile(path)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.CodeSigningUnavailable, err, "读取密钥文件失败")
	}
	return NewKeypairWallet(priv)
}

// KeypairWalletFromBase58 从 base58 字符串恢复钱包。
func KeypairWalletFromBase58(encoded string) (*KeypairWallet, error) {
	priv, err := solana.PrivateKeyFromBase58(encoded)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.CodeSigningUnavailable, err, "解析 base58 私钥失败")
	}
	return NewKeypairWallet(priv)
}

// Address 返回钱包公钥。
func (w *KeypairWallet) Address() solana.PublicKey {
	return w.pub
}

// SignMessage 对负载签名。持锁期间完成签名与计数，保证计数与
// 签名一一对应。
func (w *KeypairWallet) SignMessage(ctx context.Context, payload []byte) (solana.Signature, error) {
	if err := ctx.Err(); err != nil {
		return solana.Signature{}, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.priv) == 0 {
		return solana.Signature{}, xerrors.New(xerrors.CodeSigningUnavailable, "密钥材料不可用")
	}
	sig, err := w.priv.Sign(payload)
	if err != nil {
		return solana.Signature{}, xerrors.Wrap(xerrors.CodeSigningUnavailable, err, "签名失败")
	}
	w.signCount++
	return sig, nil
}

// SignTransaction 序列化交易消息、签名并追加签名。
func (w *KeypairWallet) SignTransaction(ctx context.Context, tx *solana.Transaction) error {
	if tx == nil {
		return xerrors.New(xerrors.CodeInvalidInput, "交易为空")
	}
	message, err := tx.Message.MarshalBinary()
	if err != nil {
		return xerrors.Wrap(xerrors.CodeInvalidInput, err, "序列化交易消息失败")
	}
	sig, err := w.SignMessage(ctx, message)
	if err != nil {
		return err
	}
	tx.Signatures = append(tx.Signatures, sig)
	return nil
}

// SignAllTransactions 依次签署全部交易。
func (w *KeypairWallet) SignAllTransactions(ctx context.Context, txs []*solana.Transaction) error {
	for _, tx := range txs {
		if err := w.SignTransaction(ctx, tx); err != nil {
			return err
		}
	}
	return nil
}

// SignCount 返回已完成的签名次数。
func (w *KeypairWallet) SignCount() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.signCount
}
