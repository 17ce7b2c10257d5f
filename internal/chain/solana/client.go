package solanachain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"Solagent-Core/internal/chain"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// Config describes how to construct a Solana RPC client.
type Config struct {
	Endpoint   string
	Commitment rpc.CommitmentType
}

// Client implements the chain.Client interface over the Solana JSON-RPC API.
type Client struct {
	endpoint   string
	commitment rpc.CommitmentType
	rpc        *rpc.Client
}

// NewClient dials the configured RPC endpoint and returns a ready-to-use client.
func NewClient(cfg Config) (*Client, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, errors.New("未配置 Solana RPC 地址")
	}
	commitment := cfg.Commitment
	if commitment == "" {
		commitment = rpc.CommitmentConfirmed
	}
	return &Client{
		endpoint:   endpoint,
		commitment: commitment,
		rpc:        rpc.New(endpoint),
	}, nil
}

// Endpoint returns the RPC endpoint the client is bound to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Close releases the underlying HTTP connections.
func (c *Client) Close() {
	if c == nil || c.rpc == nil {
		return
	}
	_ = c.rpc.Close()
}

// Balance returns the lamport balance of addr.
func (c *Client) Balance(ctx context.Context, addr solana.PublicKey) (uint64, error) {
	out, err := c.rpc.GetBalance(ctx, addr, c.commitment)
	if err != nil {
		return 0, fmt.Errorf("查询余额失败: %w", err)
	}
	return out.Value, nil
}

// TokenBalance returns the UI balance of the owner's associated token
// account. A missing account is treated as a zero balance, matching the
// behaviour wallets expect for tokens never received.
func (c *Client) TokenBalance(ctx context.Context, owner, mint solana.PublicKey) (float64, error) {
	ata, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return 0, fmt.Errorf("推导关联代币账户失败: %w", err)
	}
	out, err := c.rpc.GetTokenAccountBalance(ctx, ata, c.commitment)
	if err != nil {
		return 0, nil
	}
	if out.Value == nil || out.Value.UiAmount == nil {
		return 0, nil
	}
	return *out.Value.UiAmount, nil
}

// parsedTokenAccount mirrors the jsonParsed layout of an SPL token account.
type parsedTokenAccount struct {
	Parsed struct {
		Info struct {
			Mint        string `json:"mint"`
			TokenAmount struct {
				UIAmount *float64 `json:"uiAmount"`
				Decimals uint8    `json:"decimals"`
			} `json:"tokenAmount"`
		} `json:"info"`
	} `json:"parsed"`
}

// TokenAccounts lists all non-empty SPL token holdings of owner.
func (c *Client) TokenAccounts(ctx context.Context, owner solana.PublicKey) ([]chain.TokenAccountBalance, error) {
	out, err := c.rpc.GetTokenAccountsByOwner(
		ctx,
		owner,
		&rpc.GetTokenAccountsConfig{ProgramId: solana.TokenProgramID.ToPointer()},
		&rpc.GetTokenAccountsOpts{Encoding: solana.EncodingJSONParsed, Commitment: c.commitment},
	)
	if err != nil {
		return nil, fmt.Errorf("查询代币账户失败: %w", err)
	}

	balances := make([]chain.TokenAccountBalance, 0, len(out.Value))
	for _, account := range out.Value {
		raw := account.Account.Data.GetRawJSON()
		if len(raw) == 0 {
			continue
		}
		var parsed parsedTokenAccount
		if err := json.Unmarshal(raw, &parsed); err != nil {
			continue
		}
		amount := parsed.Parsed.Info.TokenAmount
		if amount.UIAmount == nil || *amount.UIAmount <= 0 {
			continue
		}
		balances = append(balances, chain.TokenAccountBalance{
			Mint:     parsed.Parsed.Info.Mint,
			Account:  account.Pubkey.String(),
			Balance:  *amount.UIAmount,
			Decimals: amount.Decimals,
		})
	}
	return balances, nil
}

// MintDecimals returns the decimal precision of mint via getTokenSupply,
// which avoids decoding the raw mint account layout.
func (c *Client) MintDecimals(ctx context.Context, mint solana.PublicKey) (uint8, error) {
	out, err := c.rpc.GetTokenSupply(ctx, mint, c.commitment)
	if err != nil {
		return 0, fmt.Errorf("查询代币精度失败: %w", err)
	}
	if out.Value == nil {
		return 0, errors.New("代币精度响应为空")
	}
	return out.Value.Decimals, nil
}

// AccountExists reports whether addr is present on chain. RPC transport
// errors are surfaced; a plain not-found reads as false.
func (c *Client) AccountExists(ctx context.Context, addr solana.PublicKey) (bool, error) {
	out, err := c.rpc.GetAccountInfoWithOpts(ctx, addr, &rpc.GetAccountInfoOpts{Commitment: c.commitment})
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("查询账户失败: %w", err)
	}
	return out != nil && out.Value != nil, nil
}

// LatestBlockhash fetches a recent blockhash for transaction assembly.
func (c *Client) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	out, err := c.rpc.GetLatestBlockhash(ctx, c.commitment)
	if err != nil {
		return solana.Hash{}, fmt.Errorf("获取最新区块哈希失败: %w", err)
	}
	if out.Value == nil {
		return solana.Hash{}, errors.New("区块哈希响应为空")
	}
	return out.Value.Blockhash, nil
}

// SubmitTransaction broadcasts a fully signed transaction exactly once.
func (c *Client) SubmitTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	sig, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		PreflightCommitment: c.commitment,
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("广播交易失败: %w", err)
	}
	return sig, nil
}

// RequestAirdrop asks the faucet for lamports. Only meaningful against
// devnet or testnet endpoints.
func (c *Client) RequestAirdrop(ctx context.Context, addr solana.PublicKey, lamports uint64) (solana.Signature, error) {
	sig, err := c.rpc.RequestAirdrop(ctx, addr, lamports, c.commitment)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("请求空投失败: %w", err)
	}
	return sig, nil
}

// RecentTPS derives transactions-per-second from the newest performance sample.
func (c *Client) RecentTPS(ctx context.Context) (float64, error) {
	limit := uint(1)
	samples, err := c.rpc.GetRecentPerformanceSamples(ctx, &limit)
	if err != nil {
		return 0, fmt.Errorf("查询性能样本失败: %w", err)
	}
	if len(samples) == 0 {
		return 0, errors.New("没有可用的性能样本")
	}
	sample := samples[0]
	if sample.SamplePeriodSecs == 0 {
		return 0, nil
	}
	return float64(sample.NumTransactions) / float64(sample.SamplePeriodSecs), nil
}
