package agent

import (
	"context"
	"errors"
	"testing"

	"Solagent-Core/internal/chain"
	xerrors "Solagent-Core/internal/errors"
	"Solagent-Core/internal/wallet"

	"github.com/gagliardetto/solana-go"
)

// mockChain 记录广播次数，用于验证一次转账恰好广播一次。
type mockChain struct {
	lamports      uint64
	tokenBalance  float64
	decimals      uint8
	accountExists bool
	submitErr     error
	submits       int
	lastTx        *solana.Transaction
}

func (m *mockChain) Endpoint() string { return "http://localhost:8899" }

func (m *mockChain) Balance(ctx context.Context, addr solana.PublicKey) (uint64, error) {
	return m.lamports, nil
}

func (m *mockChain) TokenBalance(ctx context.Context, owner, mint solana.PublicKey) (float64, error) {
	return m.tokenBalance, nil
}

func (m *mockChain) TokenAccounts(ctx context.Context, owner solana.PublicKey) ([]chain.TokenAccountBalance, error) {
	return nil, nil
}

func (m *mockChain) MintDecimals(ctx context.Context, mint solana.PublicKey) (uint8, error) {
	return m.decimals, nil
}

func (m *mockChain) AccountExists(ctx context.Context, addr solana.PublicKey) (bool, error) {
	return m.accountExists, nil
}

func (m *mockChain) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	return solana.HashFromBytes(make([]byte, 32)), nil
}

func (m *mockChain) SubmitTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	m.submits++
	m.lastTx = tx
	if m.submitErr != nil {
		return solana.Signature{}, m.submitErr
	}
	return solana.Signature{}, nil
}

func (m *mockChain) RequestAirdrop(ctx context.Context, addr solana.PublicKey, lamports uint64) (solana.Signature, error) {
	return solana.Signature{}, nil
}

func (m *mockChain) RecentTPS(ctx context.Context) (float64, error) { return 0, nil }

func (m *mockChain) Close() {}

func newTestAgent(t *testing.T, c chain.Client) (*Agent, *wallet.KeypairWallet) {
	t.Helper()
	priv, err := solana.NewRandomPrivateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	w, err := wallet.NewKeypairWallet(priv)
	if err != nil {
		t.Fatalf("create wallet: %v", err)
	}
	ag, err := New(w, c)
	if err != nil {
		t.Fatalf("create agent: %v", err)
	}
	return ag, w
}

func TestNewRequiresWalletAndClient(t *testing.T) {
	priv, _ := solana.NewRandomPrivateKey()
	w, _ := wallet.NewKeypairWallet(priv)

	if _, err := New(nil, &mockChain{}); xerrors.CodeOf(err) != xerrors.CodeInitializationFailure {
		t.Errorf("expected INITIALIZATION_FAILURE for nil wallet, got %v", err)
	}
	if _, err := New(w, nil); xerrors.CodeOf(err) != xerrors.CodeInitializationFailure {
		t.Errorf("expected INITIALIZATION_FAILURE for nil client, got %v", err)
	}
}

func TestGetBalanceSOL(t *testing.T) {
	ag, _ := newTestAgent(t, &mockChain{lamports: 3 * solana.LAMPORTS_PER_SOL / 2})

	balance, err := ag.GetBalance(context.Background(), nil)
	if err != nil {
		t.Fatalf("GetBalance failed: %v", err)
	}
	if balance != 1.5 {
		t.Errorf("unexpected balance: %v", balance)
	}
}

func TestGetBalanceToken(t *testing.T) {
	ag, _ := newTestAgent(t, &mockChain{tokenBalance: 42.5})

	mint := solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	balance, err := ag.GetBalance(context.Background(), &mint)
	if err != nil {
		t.Fatalf("GetBalance failed: %v", err)
	}
	if balance != 42.5 {
		t.Errorf("unexpected balance: %v", balance)
	}
}

func TestTransferSOLSignsAndSubmitsOnce(t *testing.T) {
	c := &mockChain{}
	ag, w := newTestAgent(t, c)

	dest, _ := solana.NewRandomPrivateKey()
	_, err := ag.Transfer(context.Background(), dest.PublicKey(), 0.5, nil)
	if err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}
	if c.submits != 1 {
		t.Errorf("expected exactly one broadcast, got %d", c.submits)
	}
	if got := w.SignCount(); got != 1 {
		t.Errorf("expected exactly one signature, got %d", got)
	}
	if c.lastTx == nil || len(c.lastTx.Message.Instructions) != 1 {
		t.Errorf("unexpected transaction shape: %+v", c.lastTx)
	}
}

func TestTransferRejectsDustAmount(t *testing.T) {
	c := &mockChain{}
	ag, w := newTestAgent(t, c)

	dest, _ := solana.NewRandomPrivateKey()
	_, err := ag.Transfer(context.Background(), dest.PublicKey(), 0, nil)
	if xerrors.CodeOf(err) != xerrors.CodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
	if c.submits != 0 || w.SignCount() != 0 {
		t.Error("rejected transfer must not sign or broadcast")
	}
}

func TestTransferTokenCreatesMissingDestination(t *testing.T) {
	c := &mockChain{decimals: 6, accountExists: false}
	ag, _ := newTestAgent(t, c)

	dest, _ := solana.NewRandomPrivateKey()
	mint := solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	_, err := ag.Transfer(context.Background(), dest.PublicKey(), 10, &mint)
	if err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}
	// 目标代币账户缺失时需要先创建再转账，共两条指令。
	if len(c.lastTx.Message.Instructions) != 2 {
		t.Errorf("expected create + transfer instructions, got %d", len(c.lastTx.Message.Instructions))
	}
}

func TestTransferTokenReusesExistingDestination(t *testing.T) {
	c := &mockChain{decimals: 6, accountExists: true}
	ag, _ := newTestAgent(t, c)

	dest, _ := solana.NewRandomPrivateKey()
	mint := solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	_, err := ag.Transfer(context.Background(), dest.PublicKey(), 10, &mint)
	if err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}
	if len(c.lastTx.Message.Instructions) != 1 {
		t.Errorf("expected single transfer instruction, got %d", len(c.lastTx.Message.Instructions))
	}
}

func TestTransferBroadcastFailureNotRetried(t *testing.T) {
	c := &mockChain{submitErr: errors.New("blockhash not found")}
	ag, _ := newTestAgent(t, c)

	dest, _ := solana.NewRandomPrivateKey()
	_, err := ag.Transfer(context.Background(), dest.PublicKey(), 0.5, nil)
	if err == nil {
		t.Fatal("expected broadcast error")
	}
	if xerrors.CodeOf(err) != xerrors.CodeExternalFailure {
		t.Errorf("unexpected error code: %s", xerrors.CodeOf(err))
	}
	if xerrors.RetryableError(err) {
		t.Error("broadcast failure must not be marked retryable")
	}
	if c.submits != 1 {
		t.Errorf("expected exactly one broadcast attempt, got %d", c.submits)
	}
}

func TestSignAndSubmitNilTransaction(t *testing.T) {
	ag, _ := newTestAgent(t, &mockChain{})
	if _, err := ag.SignAndSubmit(context.Background(), nil, "trade"); xerrors.CodeOf(err) != xerrors.CodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}
