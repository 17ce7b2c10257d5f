package chain

import (
	"context"

	"github.com/gagliardetto/solana-go"
)

// TokenAccountBalance summarises one SPL token holding of a wallet.
type TokenAccountBalance struct {
	Mint     string
	Account  string
	Balance  float64
	Decimals uint8
}

// Client defines the RPC surface the agent context holds a handle to.
// Actions depend on this interface only, so tests can substitute stubs
// and alternative backends can be plugged in without touching the
// registry or the agent context.
type Client interface {
	// Endpoint returns the RPC endpoint the client is bound to.
	Endpoint() string
	// Balance returns the lamport balance of an account.
	Balance(ctx context.Context, addr solana.PublicKey) (uint64, error)
	// TokenBalance returns the UI balance of the owner's associated
	// token account for mint. A missing account reads as zero.
	TokenBalance(ctx context.Context, owner, mint solana.PublicKey) (float64, error)
	// TokenAccounts lists all non-empty SPL token holdings of owner.
	TokenAccounts(ctx context.Context, owner solana.PublicKey) ([]TokenAccountBalance, error)
	// MintDecimals returns the decimal precision of a token mint.
	MintDecimals(ctx context.Context, mint solana.PublicKey) (uint8, error)
	// AccountExists reports whether an account is present on chain.
	AccountExists(ctx context.Context, addr solana.PublicKey) (bool, error)
	// LatestBlockhash fetches a recent blockhash for transaction assembly.
	LatestBlockhash(ctx context.Context) (solana.Hash, error)
	// SubmitTransaction broadcasts a fully signed transaction. Callers
	// must not resubmit on failure; the outcome of a failed broadcast
	// is unknown.
	SubmitTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
	// RequestAirdrop asks the faucet for lamports (devnet/testnet only).
	RequestAirdrop(ctx context.Context, addr solana.PublicKey, lamports uint64) (solana.Signature, error)
	// RecentTPS derives transactions-per-second from the most recent
	// performance sample.
	RecentTPS(ctx context.Context) (float64, error)
	// Close releases underlying connections.
	Close()
}
